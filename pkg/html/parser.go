package html

import (
	"fmt"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses markup into a Document. The tokenizer and tree builder come
// from golang.org/x/net/html, so malformed markup is repaired the way a
// browser would; the result is then reduced to the renderer's node shape.
//
// <style> and <script> contents and <link rel="stylesheet"> hrefs are
// collected on the Document rather than added to the tree. <head> and
// comment nodes are dropped, and whitespace-only text is discarded.
func Parse(src string) (*Document, error) {
	root, err := nethtml.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	doc := &Document{}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.ElementNode && c.DataAtom == atom.Html {
			doc.Root = convert(doc, c)
			break
		}
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("parsing HTML: document has no root element")
	}
	return doc, nil
}

// convert builds a Node for an element and recursively for its children.
func convert(doc *Document, src *nethtml.Node) *Node {
	node := NewElement(src.Data)
	for _, attr := range src.Attr {
		switch attr.Key {
		case "id":
			node.ID = attr.Val
		case "class":
			node.SetClassAttr(attr.Val)
		}
	}

	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case nethtml.TextNode:
			text := collapseWhitespace(c.Data)
			if strings.TrimSpace(text) == "" {
				continue
			}
			node.AddChild(NewText(text))
		case nethtml.ElementNode:
			if collect(doc, c) {
				continue
			}
			node.AddChild(convert(doc, c))
		}
	}
	return node
}

// collect records resource-bearing elements on the document and reports
// whether the element should be left out of the tree.
func collect(doc *Document, n *nethtml.Node) bool {
	switch n.DataAtom {
	case atom.Head:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == nethtml.ElementNode {
				collect(doc, c)
			}
		}
		return true
	case atom.Style:
		doc.Stylesheets = append(doc.Stylesheets, innerText(n))
		return true
	case atom.Script:
		doc.Scripts = append(doc.Scripts, innerText(n))
		return true
	case atom.Link:
		if strings.Contains(strings.ToLower(attr(n, "rel")), "stylesheet") {
			if href := attr(n, "href"); href != "" {
				doc.Links = append(doc.Links, href)
			}
		}
		return true
	case atom.Title, atom.Meta:
		return true
	}
	return false
}

func innerText(n *nethtml.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

func attr(n *nethtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// collapseWhitespace replaces every run of whitespace with a single space.
func collapseWhitespace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				sb.WriteByte(' ')
			}
			space = true
		default:
			sb.WriteRune(r)
			space = false
		}
	}
	return sb.String()
}
