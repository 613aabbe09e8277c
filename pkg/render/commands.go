package render

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"tessera/pkg/css"
	"tessera/pkg/layout"
	"tessera/pkg/text"
)

// Command is a single paint operation. The set of implementations is
// closed: SolidColor and FontGlyph.
type Command interface {
	isCommand()
}

// SolidColor fills a rectangle with an opaque color.
type SolidColor struct {
	Color css.Color
	Rect  layout.Rect
}

// FontGlyph composites one glyph's subpixel coverage in Color. Metrics
// carries the pen position.
type FontGlyph struct {
	Color   css.Color
	Metrics text.Metrics
	Bitmap  []byte
}

func (SolidColor) isCommand() {}
func (FontGlyph) isCommand()  {}

// DisplayList is an ordered list of commands. Later commands paint over
// earlier ones.
type DisplayList []Command

// BuildDisplayList walks the box tree in pre-order and emits each box's
// background, then its border, then its text, before its children.
// fontSize applies to text with no resolved font-size.
func BuildDisplayList(root *layout.Box, raster text.Rasterizer, fontSize float64) DisplayList {
	b := &displayListBuilder{raster: raster, logger: zap.NewNop()}
	return b.build(root, fontSize)
}

type displayListBuilder struct {
	raster text.Rasterizer
	logger *zap.Logger
	list   DisplayList
}

// textStyle is the inherited part of the style: the nearest resolved color
// and font size up the box tree.
type textStyle struct {
	color css.Color
	size  float64
}

func (b *displayListBuilder) build(root *layout.Box, fontSize float64) DisplayList {
	b.list = make(DisplayList, 0)
	b.renderBox(root, textStyle{color: css.Black, size: fontSize})
	return b.list
}

func (b *displayListBuilder) renderBox(box *layout.Box, inherited textStyle) {
	ts := inherited
	if box.Kind != layout.AnonymousBlock {
		style := box.Style()
		if c, ok := style.Color("color"); ok {
			ts.color = c
		}
		if v, ok := style.Value("font-size"); ok {
			if size := css.ToPx(v); size > 0 {
				ts.size = size
			}
		}

		b.renderBackground(box, style)
		b.renderBorders(box)
		if style.Node != nil && style.Node.Text != "" {
			b.renderText(box, style.Node.Text, ts)
		}
	}

	for _, child := range box.Children {
		b.renderBox(child, ts)
	}
}

func (b *displayListBuilder) renderBackground(box *layout.Box, style *css.StyledNode) {
	c, ok := style.Color("background-color")
	if !ok {
		return
	}
	b.list = append(b.list, SolidColor{Color: c, Rect: box.BorderBox()})
}

// renderBorders is where border painting hooks in. Borders take up layout
// space but are not painted yet.
func (b *displayListBuilder) renderBorders(*layout.Box) {}

// renderText emits one glyph per character, starting at the content origin
// with the baseline one font size below it.
func (b *displayListBuilder) renderText(box *layout.Box, s string, ts textStyle) {
	penX := box.Content.X
	penY := box.Content.Y + ts.size

	for _, ch := range s {
		m, bitmap, err := b.raster.Rasterize(ch, ts.size)
		if err != nil {
			b.logger.Debug("skipping glyph", zap.String("char", string(ch)), zap.Error(err))
			continue
		}
		m.PenX, m.PenY = penX, penY
		if len(bitmap) > 0 {
			b.list = append(b.list, FontGlyph{Color: ts.color, Metrics: m, Bitmap: bitmap})
		}
		penX += m.Advance
	}
}

func (c SolidColor) String() string {
	return fmt.Sprintf("SolidColor(%s, %g,%g %gx%g)", c.Color, c.Rect.X, c.Rect.Y, c.Rect.Width, c.Rect.Height)
}

func (g FontGlyph) String() string {
	return fmt.Sprintf("FontGlyph(%s, pen=%g,%g %dx%d)", g.Color, g.Metrics.PenX, g.Metrics.PenY, g.Metrics.Width, g.Metrics.Height)
}

// origin returns the canvas pixel of the glyph bitmap's top-left corner.
func (g FontGlyph) origin() (int, int) {
	x := int(math.Floor(g.Metrics.PenX)) + g.Metrics.XBearing
	y := int(math.Floor(g.Metrics.PenY)) - g.Metrics.YBearing
	return x, y
}
