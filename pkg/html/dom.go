package html

import (
	"strings"
)

// ElementKind identifies the element type of a node. Text nodes carry
// KindText; tags the renderer has no special knowledge of map to KindOther.
type ElementKind int

const (
	KindUndefined ElementKind = iota
	KindHTML
	KindBody
	KindDiv
	KindSpan
	KindP
	KindH1
	KindH2
	KindH3
	KindH4
	KindA
	KindEm
	KindLabel
	KindInput
	KindText
	KindOther
)

var kindNames = map[string]ElementKind{
	"html":  KindHTML,
	"body":  KindBody,
	"div":   KindDiv,
	"span":  KindSpan,
	"p":     KindP,
	"h1":    KindH1,
	"h2":    KindH2,
	"h3":    KindH3,
	"h4":    KindH4,
	"a":     KindA,
	"em":    KindEm,
	"label": KindLabel,
	"input": KindInput,
	"text":  KindText,
}

// KindOf maps a tag name to its ElementKind. Matching is case-insensitive.
func KindOf(tag string) ElementKind {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return KindUndefined
	}
	if k, ok := kindNames[tag]; ok {
		return k
	}
	return KindOther
}

func (k ElementKind) String() string {
	for name, kind := range kindNames {
		if kind == k {
			return name
		}
	}
	switch k {
	case KindOther:
		return "other"
	default:
		return "undefined"
	}
}

// Node is a document tree node. The pipeline treats it as read-only; the
// mutation helpers exist for the loader and the script engine, which run
// before styling.
type Node struct {
	Kind     ElementKind
	Tag      string // original tag name, kept for diagnostics
	Text     string
	ID       string
	Classes  []string
	Children []*Node
	Parent   *Node
}

// Document is the loader's output: the root node plus the raw stylesheet
// and script sources collected from the markup, in document order.
type Document struct {
	Root        *Node
	Stylesheets []string
	Scripts     []string
	Links       []string // href of <link rel="stylesheet">
}

// NewElement creates an element node for the given tag.
func NewElement(tag string) *Node {
	return &Node{
		Kind:     KindOf(tag),
		Tag:      strings.ToLower(tag),
		Children: make([]*Node, 0),
	}
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// IsText reports whether the node is a text node.
func (n *Node) IsText() bool {
	return n.Kind == KindText
}

// HasClass reports whether class appears in the node's class list.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// SetClassAttr replaces the class list from a whitespace-separated attribute value.
func (n *Node) SetClassAttr(value string) {
	n.Classes = strings.Fields(value)
}

// ClassAttr returns the class list joined as an attribute value.
func (n *Node) ClassAttr() string {
	return strings.Join(n.Classes, " ")
}

// AddClass appends class if not already present.
func (n *Node) AddClass(class string) {
	if class == "" || n.HasClass(class) {
		return
	}
	n.Classes = append(n.Classes, class)
}

// RemoveClass drops every occurrence of class.
func (n *Node) RemoveClass(class string) {
	kept := n.Classes[:0]
	for _, c := range n.Classes {
		if c != class {
			kept = append(kept, c)
		}
	}
	n.Classes = kept
}

// AddChild adds a child node and sets up the parent relationship
func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// AppendText creates a text node and adds it as a child
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	n.AddChild(NewText(text))
}

// RemoveChild removes the given child from this node's children list,
// clears its parent pointer, and returns the removed child.
// Returns nil if child is not found.
func (n *Node) RemoveChild(child *Node) *Node {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return child
		}
	}
	return nil
}

// TextContent concatenates the text of this node and all descendants.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var sb strings.Builder
	sb.WriteString(n.Text)
	for _, child := range n.Children {
		sb.WriteString(child.TextContent())
	}
	return sb.String()
}

// SetTextContent replaces all children with a single text node.
func (n *Node) SetTextContent(text string) {
	if n.IsText() {
		n.Text = text
		return
	}
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = n.Children[:0]
	n.Text = ""
	n.AppendText(text)
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// GetElementByID returns the first element in pre-order with the given id.
func (n *Node) GetElementByID(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if !c.IsText() && c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// GetElementsByClassName collects all elements carrying class.
func (n *Node) GetElementsByClassName(class string) []*Node {
	var result []*Node
	n.Walk(func(c *Node) bool {
		if !c.IsText() && c.HasClass(class) {
			result = append(result, c)
		}
		return true
	})
	return result
}

// GetElementsByKind collects all elements of the given kind.
func (n *Node) GetElementsByKind(kind ElementKind) []*Node {
	var result []*Node
	n.Walk(func(c *Node) bool {
		if c.Kind == kind {
			result = append(result, c)
		}
		return true
	})
	return result
}
