package render

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"tessera/pkg/css"
	"tessera/pkg/layout"
)

// Canvas is a row-major pixel buffer. Pixel (x, y) is Pixels[y*Width+x].
type Canvas struct {
	Pixels []css.Color
	Width  int
	Height int
}

// NewCanvas returns an opaque white canvas.
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	pixels := make([]css.Color, width*height)
	for i := range pixels {
		pixels[i] = css.White
	}
	return &Canvas{Pixels: pixels, Width: width, Height: height}
}

// At returns the pixel at (x, y).
func (c *Canvas) At(x, y int) css.Color {
	return c.Pixels[y*c.Width+x]
}

// Paint executes the commands in order.
func (c *Canvas) Paint(list DisplayList) {
	for _, cmd := range list {
		c.Execute(cmd)
	}
}

// Execute applies a single command.
func (c *Canvas) Execute(cmd Command) {
	switch cmd := cmd.(type) {
	case SolidColor:
		c.fillRect(cmd.Color, cmd.Rect)
	case FontGlyph:
		c.drawGlyph(cmd)
	default:
		panic("render: unhandled command type")
	}
}

// fillRect overwrites the part of rect that lies on the canvas. Each edge
// is clamped independently.
func (c *Canvas) fillRect(color css.Color, rect layout.Rect) {
	x0 := clamp(rect.X, 0, float64(c.Width))
	y0 := clamp(rect.Y, 0, float64(c.Height))
	x1 := clamp(rect.X+rect.Width, 0, float64(c.Width))
	y1 := clamp(rect.Y+rect.Height, 0, float64(c.Height))

	for y := y0; y < y1; y++ {
		row := c.Pixels[y*c.Width : (y+1)*c.Width]
		for x := x0; x < x1; x++ {
			row[x] = color
		}
	}
}

// drawGlyph blends the glyph color into the canvas using the strongest of
// the three subpixel coverages as alpha. Pixels off the canvas are skipped.
func (c *Canvas) drawGlyph(g FontGlyph) {
	m := g.Metrics
	if len(g.Bitmap) < 3*m.Width*m.Height {
		return
	}
	ox, oy := g.origin()

	for by := 0; by < m.Height; by++ {
		y := oy + by
		if y < 0 || y >= c.Height {
			continue
		}
		for bx := 0; bx < m.Width; bx++ {
			x := ox + bx
			if x < 0 || x >= c.Width {
				continue
			}
			i := 3 * (by*m.Width + bx)
			alpha := max(g.Bitmap[i], g.Bitmap[i+1], g.Bitmap[i+2])
			if alpha == 0 {
				continue
			}
			p := &c.Pixels[y*c.Width+x]
			*p = css.Blend(g.Color, *p, alpha)
		}
	}
}

func clamp(v, lo, hi float64) int {
	return int(math.Max(lo, math.Min(v, hi)))
}

// ToImage copies the canvas into an NRGBA image.
func (c *Canvas) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))
	for i, p := range c.Pixels {
		j := 4 * i
		img.Pix[j] = p.R
		img.Pix[j+1] = p.G
		img.Pix[j+2] = p.B
		img.Pix[j+3] = p.A
	}
	return img
}

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	return gg.SavePNG(path, c.ToImage())
}
