package fetch

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/notes2pdf/internal/pipeline"
)

// ExtractArticle parses an HTML page and returns the outer HTML of the
// first <article> whose class list contains markdown-body. The boolean is
// false when no such element exists.
func ExtractArticle(r io.Reader) (string, bool, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", false, err
	}

	node := findArticle(doc)
	if node == nil {
		return "", false, nil
	}

	var b strings.Builder
	if err := html.Render(&b, node); err != nil {
		return "", false, err
	}
	return b.String(), true, nil
}

// findArticle returns the first matching article in document order.
func findArticle(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Article && hasClass(n, pipeline.ArticleClass) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findArticle(c); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Namespace != "" || a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}
