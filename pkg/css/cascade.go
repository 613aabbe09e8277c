package css

import (
	"tessera/pkg/html"
)

// Display is the resolved display mode of a styled node.
type Display int

const (
	DisplayInline Display = iota
	DisplayBlock
	DisplayNone
)

func (d Display) String() string {
	switch d {
	case DisplayBlock:
		return "block"
	case DisplayNone:
		return "none"
	default:
		return "inline"
	}
}

// StyledNode pairs a DOM node with its specified values. It references the
// node without owning it; the DOM must stay unchanged while styled trees
// built from it are in use.
type StyledNode struct {
	Node     *html.Node
	Children []*StyledNode

	values map[string]Value
}

// NewStyledNode builds a styled node directly from a property map. The map
// is copied.
func NewStyledNode(node *html.Node, values map[string]Value, children ...*StyledNode) *StyledNode {
	copied := make(map[string]Value, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &StyledNode{Node: node, Children: children, values: copied}
}

// Value returns the specified value for a property name.
func (s *StyledNode) Value(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Lookup returns the value of name, else the value of fallback, else def.
func (s *StyledNode) Lookup(name, fallback string, def Value) Value {
	if v, ok := s.Value(name); ok {
		return v
	}
	if v, ok := s.Value(fallback); ok {
		return v
	}
	return def
}

// Display maps the display keyword to a Display. Absent or unrecognized
// values are inline.
func (s *StyledNode) Display() Display {
	v, ok := s.Value("display")
	if !ok {
		return DisplayInline
	}
	if k, ok := v.(Keyword); ok {
		switch k {
		case "block":
			return DisplayBlock
		case "none":
			return DisplayNone
		}
	}
	return DisplayInline
}

// Color returns the color value of a property, if one was resolved.
func (s *StyledNode) Color(name string) (Color, bool) {
	v, ok := s.Value(name)
	if !ok {
		return Color{}, false
	}
	switch v := v.(type) {
	case ColorValue:
		return v.Color, true
	case Keyword, Length, Undefined:
		return Color{}, false
	default:
		panic("css: unhandled value type")
	}
}

// Len returns the number of specified values.
func (s *StyledNode) Len() int {
	return len(s.values)
}

// ComputeStyle resolves the property map for a single node. Matching blocks
// are applied in ascending specificity, so for each property the highest
// specificity wins and the later block wins a tie. Text nodes always
// resolve to an empty map.
func ComputeStyle(node *html.Node, sheet *Stylesheet) map[string]Value {
	values := make(map[string]Value)
	if node.IsText() {
		return values
	}

	for _, m := range FindMatchingBlocks(node, sheet) {
		for _, decl := range m.Block.Declarations {
			values[decl.Property.String()] = decl.Value
		}
	}
	return values
}

// StyleTree resolves styles for node and all of its descendants.
func StyleTree(node *html.Node, sheet *Stylesheet) *StyledNode {
	styled := &StyledNode{
		Node:     node,
		values:   ComputeStyle(node, sheet),
		Children: make([]*StyledNode, 0, len(node.Children)),
	}
	for _, child := range node.Children {
		styled.Children = append(styled.Children, StyleTree(child, sheet))
	}
	return styled
}
