package layout

import (
	"errors"
	"fmt"

	"tessera/pkg/css"
)

var (
	// ErrHiddenRoot is the panic value when the root styled node has
	// display: none.
	ErrHiddenRoot = errors.New("layout: root node has display: none")

	// ErrAnonymousStyle is the panic value when style is requested from an
	// anonymous block.
	ErrAnonymousStyle = errors.New("layout: anonymous block has no style")
)

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// ExpandedBy grows the rect outward by the edge sizes.
func (r Rect) ExpandedBy(e EdgeSizes) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

// EdgeSizes holds the four sides of a margin, border or padding.
type EdgeSizes struct {
	Left, Right, Top, Bottom float64
}

// Dimensions is the box model of a laid out box.
type Dimensions struct {
	// Content is the content area, relative to the canvas origin.
	Content Rect

	Padding EdgeSizes
	Border  EdgeSizes
	Margin  EdgeSizes
}

// PaddingBox is the content area plus padding.
func (d Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// BorderBox is the padding box plus borders.
func (d Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

// MarginBox is the border box plus margins.
func (d Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

// Viewport returns containing-block dimensions for a canvas of the given
// size.
func Viewport(width, height float64) Dimensions {
	return Dimensions{Content: Rect{Width: width, Height: height}}
}

// BoxKind distinguishes styled boxes from the synthetic blocks that wrap
// runs of inline children.
type BoxKind int

const (
	BlockBox BoxKind = iota
	InlineBox
	AnonymousBlock
)

func (k BoxKind) String() string {
	switch k {
	case BlockBox:
		return "block"
	case InlineBox:
		return "inline"
	case AnonymousBlock:
		return "anonymous"
	}
	return fmt.Sprintf("BoxKind(%d)", int(k))
}

// Box is a node of the layout tree. Styled is nil exactly when Kind is
// AnonymousBlock.
type Box struct {
	Kind   BoxKind
	Styled *css.StyledNode
	Dimensions

	Children []*Box
}

func newBox(kind BoxKind, styled *css.StyledNode) *Box {
	return &Box{
		Kind:     kind,
		Styled:   styled,
		Children: make([]*Box, 0),
	}
}

// Style returns the styled node the box was built from. Calling it on an
// anonymous block panics with ErrAnonymousStyle.
func (b *Box) Style() *css.StyledNode {
	switch b.Kind {
	case BlockBox, InlineBox:
		return b.Styled
	case AnonymousBlock:
		panic(ErrAnonymousStyle)
	}
	panic(fmt.Sprintf("layout: unhandled box kind %v", b.Kind))
}

// Walk visits b and its descendants in pre-order.
func (b *Box) Walk(fn func(box *Box, depth int)) {
	b.walk(fn, 0)
}

func (b *Box) walk(fn func(*Box, int), depth int) {
	fn(b, depth)
	for _, child := range b.Children {
		child.walk(fn, depth+1)
	}
}
