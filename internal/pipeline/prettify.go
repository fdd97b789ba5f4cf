package pipeline

import (
	"fmt"
	"html"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// indentUnit is the indentation added per nesting level.
const indentUnit = " "

// voidElements never have content or a closing tag.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Source: true, atom.Track: true,
	atom.Wbr: true,
}

// verbatimElements are rendered as-is: reindenting would change the content
// of pre and textarea, and the rest hold raw text that must not be escaped.
var verbatimElements = map[atom.Atom]bool{
	atom.Pre: true, atom.Textarea: true, atom.Script: true, atom.Style: true,
	atom.Noscript: true, atom.Iframe: true, atom.Noembed: true,
	atom.Noframes: true, atom.Xmp: true, atom.Plaintext: true,
}

// Prettify parses an HTML document and writes it back with one node per
// line, indented one space per depth. Text is trimmed. Contents of pre,
// textarea and raw text elements such as script and style are kept verbatim. Output is deterministic for
// a given input.
func Prettify(document string) (string, error) {
	doc, err := nethtml.Parse(strings.NewReader(document))
	if err != nil {
		return "", fmt.Errorf("parsing rendered page: %w", err)
	}

	var b strings.Builder
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := prettyNode(&b, c, 0); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func prettyNode(b *strings.Builder, n *nethtml.Node, depth int) error {
	indent := strings.Repeat(indentUnit, depth)

	switch n.Type {
	case nethtml.DoctypeNode:
		// Render keeps public and system identifiers, which select quirks mode.
		if err := nethtml.Render(b, n); err != nil {
			return err
		}
		b.WriteString("\n")

	case nethtml.CommentNode:
		b.WriteString(indent + "<!--" + n.Data + "-->\n")

	case nethtml.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return nil
		}
		b.WriteString(indent + html.EscapeString(text) + "\n")

	case nethtml.ElementNode:
		if verbatimElements[n.DataAtom] {
			b.WriteString(indent)
			if err := nethtml.Render(b, n); err != nil {
				return err
			}
			b.WriteString("\n")
			return nil
		}

		b.WriteString(indent + openTag(n) + "\n")
		if voidElements[n.DataAtom] {
			return nil
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := prettyNode(b, c, depth+1); err != nil {
				return err
			}
		}
		b.WriteString(indent + "</" + n.Data + ">\n")
	}
	return nil
}

func openTag(n *nethtml.Node) string {
	var b strings.Builder
	b.WriteString("<" + n.Data)
	for _, a := range n.Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + key
		}
		b.WriteString(" " + key + `="` + html.EscapeString(a.Val) + `"`)
	}
	b.WriteString(">")
	return b.String()
}
