package layout

import (
	"tessera/pkg/css"
)

var zeroPx css.Value = css.PxLength(0)

// Layout positions b and its descendants inside the containing block. The
// containing block's content height is the vertical cursor: b is placed
// below everything already laid out in it.
func (b *Box) Layout(containing Dimensions) {
	switch b.Kind {
	case BlockBox, InlineBox:
		b.layoutBlock(containing)
	case AnonymousBlock:
		b.layoutAnonymous(containing)
	default:
		panic("layout: unhandled box kind " + b.Kind.String())
	}
}

// layoutBlock runs width, position, children and height in that order.
// Width depends on the parent, height on the children.
func (b *Box) layoutBlock(containing Dimensions) {
	b.calculateWidth(containing)
	b.calculatePosition(containing)
	b.layoutChildren()
	b.calculateHeight()
}

// layoutAnonymous places an anonymous block at the containing block's cursor
// with the full containing width. It has no edges of its own.
func (b *Box) layoutAnonymous(containing Dimensions) {
	b.Dimensions = Dimensions{
		Content: Rect{
			X:     containing.Content.X,
			Y:     containing.Content.Y + containing.Content.Height,
			Width: containing.Content.Width,
		},
	}
	b.layoutChildren()
}

// calculatePosition sets the vertical edges and the content origin.
func (b *Box) calculatePosition(containing Dimensions) {
	style := b.Style()
	d := &b.Dimensions

	d.Margin.Top = css.ToPx(style.Lookup("margin-top", "margin", zeroPx))
	d.Margin.Bottom = css.ToPx(style.Lookup("margin-bottom", "margin", zeroPx))
	d.Border.Top = css.ToPx(style.Lookup("border-top-width", "border-width", zeroPx))
	d.Border.Bottom = css.ToPx(style.Lookup("border-bottom-width", "border-width", zeroPx))
	d.Padding.Top = css.ToPx(style.Lookup("padding-top", "padding", zeroPx))
	d.Padding.Bottom = css.ToPx(style.Lookup("padding-bottom", "padding", zeroPx))

	d.Content.X = containing.Content.X + d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = containing.Content.Y + containing.Content.Height +
		d.Margin.Top + d.Border.Top + d.Padding.Top
}

// layoutChildren lays out each child below the previous one, growing the
// content height by each child's margin box.
func (b *Box) layoutChildren() {
	for _, child := range b.Children {
		child.Layout(b.Dimensions)
		b.Content.Height += child.MarginBox().Height
	}
}

// calculateHeight lets an explicit height override the accumulated one.
func (b *Box) calculateHeight() {
	if v, ok := b.Style().Value("height"); ok {
		if l, ok := v.(css.Length); ok {
			b.Content.Height = css.ToPx(l)
		}
	}
}
