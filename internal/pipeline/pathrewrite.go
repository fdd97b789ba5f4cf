package pipeline

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths resolves relative img[src] and a[href] values
// against base. The page is printed from memory, so a relative reference
// would otherwise point nowhere. If base is nil, returns the HTML unchanged.
//
// With a file:// base (see DirURL), root-relative paths are left alone and
// references escaping the base directory are not rewritten.
// With an http(s) base, root-relative paths resolve against the host.
func RewriteRelativePaths(htmlContent string, base *url.URL) (string, error) {
	if base == nil {
		return htmlContent, nil
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	rewriteNode(doc, base)

	return renderHTML(doc, isFragment)
}

// DirURL returns the file:// URL of dir with a trailing slash, suitable as
// a base for RewriteRelativePaths.
func DirURL(dir string) (*url.URL, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // Windows drive letter
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return &url.URL{Scheme: "file", Path: p}, nil
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node and whether it was a fragment.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Parse with body context to avoid the <html><body> wrapper.
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	return container, true, nil
}

// renderHTML renders the document back to string.
// For fragments, only the children are rendered.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func rewriteNode(n *html.Node, base *url.URL) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", base)
		case atom.A:
			rewriteAttr(n, "href", base)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, base)
	}
}

func rewriteAttr(n *html.Node, attrName string, base *url.URL) {
	for i, attr := range n.Attr {
		if attr.Key != attrName {
			continue
		}
		if resolved, ok := resolveReference(attr.Val, base); ok {
			n.Attr[i].Val = resolved
		}
	}
}

// resolveReference returns ref resolved against base, or false when ref
// must be left as is.
func resolveReference(ref string, base *url.URL) (string, bool) {
	if !isRelativePath(ref) {
		return "", false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}

	if base.Scheme != "file" {
		return base.ResolveReference(u).String(), true
	}

	if strings.HasPrefix(ref, "/") {
		return "", false
	}
	resolved := base.ResolveReference(u)
	if !isPathUnderDir(resolved.Path, base.Path) {
		return "", false
	}
	return resolved.String(), true
}

// isRelativePath reports whether ref carries no scheme and is not an anchor.
// Windows drive letters parse as a scheme and are treated as absolute.
func isRelativePath(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	i := strings.IndexByte(ref, ':')
	return i <= 0 || strings.ContainsAny(ref[:i], "/?#")
}

// isPathUnderDir checks that the slash path p is dir or below it.
func isPathUnderDir(p, dir string) bool {
	cleanPath := path.Clean(p)
	cleanDir := path.Clean(dir)
	if !strings.HasSuffix(cleanDir, "/") {
		cleanDir += "/"
	}
	return strings.HasPrefix(cleanPath+"/", cleanDir)
}
