package layout

import (
	"tessera/pkg/css"
)

// calculateWidth resolves width and the horizontal edges so that the margin
// box exactly fills the containing block's content width.
func (b *Box) calculateWidth(containing Dimensions) {
	style := b.Style()

	width, ok := style.Value("width")
	if !ok {
		width = css.Auto
	}
	marginLeft := style.Lookup("margin-left", "margin", css.Auto)
	marginRight := style.Lookup("margin-right", "margin", css.Auto)
	borderLeft := style.Lookup("border-left-width", "border-width", zeroPx)
	borderRight := style.Lookup("border-right-width", "border-width", zeroPx)
	paddingLeft := style.Lookup("padding-left", "padding", zeroPx)
	paddingRight := style.Lookup("padding-right", "padding", zeroPx)

	total := 0.0
	for _, v := range []css.Value{marginLeft, marginRight, borderLeft, borderRight, paddingLeft, paddingRight, width} {
		total += css.ToPx(v)
	}

	// an overflowing box with a fixed width gets no auto margins
	if !css.IsAuto(width) && total > containing.Content.Width {
		if css.IsAuto(marginLeft) {
			marginLeft = zeroPx
		}
		if css.IsAuto(marginRight) {
			marginRight = zeroPx
		}
	}

	underflow := containing.Content.Width - total

	switch autoWidth, autoLeft, autoRight := css.IsAuto(width), css.IsAuto(marginLeft), css.IsAuto(marginRight); {
	case !autoWidth && !autoLeft && !autoRight:
		// overconstrained: the left margin takes the slack
		marginLeft = css.PxLength(css.ToPx(marginRight) + underflow)
	case !autoWidth && !autoLeft && autoRight:
		marginRight = css.PxLength(underflow)
	case !autoWidth && autoLeft && !autoRight:
		marginLeft = css.PxLength(underflow)
	case autoWidth:
		if autoLeft {
			marginLeft = zeroPx
		}
		if autoRight {
			marginRight = zeroPx
		}
		if underflow >= 0 {
			width = css.PxLength(underflow)
		} else {
			width = zeroPx
			marginRight = css.PxLength(css.ToPx(marginRight) + underflow)
		}
	default:
		// both margins auto: center
		marginLeft = css.PxLength(underflow / 2)
		marginRight = css.PxLength(underflow / 2)
	}

	d := &b.Dimensions
	d.Content.Width = css.ToPx(width)
	d.Padding.Left = css.ToPx(paddingLeft)
	d.Padding.Right = css.ToPx(paddingRight)
	d.Border.Left = css.ToPx(borderLeft)
	d.Border.Right = css.ToPx(borderRight)
	d.Margin.Left = css.ToPx(marginLeft)
	d.Margin.Right = css.ToPx(marginRight)
}
