package text

// Metrics describes a rasterized glyph. The bitmap's top-left pixel lands
// at (PenX+XBearing, PenY-YBearing) on the canvas, where PenY is the
// baseline.
type Metrics struct {
	// PenX and PenY are the pen position on the canvas. A rasterizer leaves
	// them zero; the display list builder fills them in.
	PenX, PenY float64

	// XBearing is the offset from the pen to the bitmap's left edge.
	XBearing int
	// YBearing is the distance from the baseline up to the bitmap's top edge.
	YBearing int

	// Width and Height are the bitmap size in pixels.
	Width, Height int

	// Advance is how far the pen moves after this glyph.
	Advance float64
}

// Rasterizer turns a character into subpixel coverage. The bitmap holds
// three coverage bytes (R, G, B) per pixel, rows top to bottom, so its
// length is 3*Width*Height. Glyphs with no ink return an empty bitmap and a
// non-zero advance.
type Rasterizer interface {
	Rasterize(ch rune, size float64) (Metrics, []byte, error)
}

// RasterizerFunc adapts a function to the Rasterizer interface.
type RasterizerFunc func(ch rune, size float64) (Metrics, []byte, error)

// Rasterize calls f.
func (f RasterizerFunc) Rasterize(ch rune, size float64) (Metrics, []byte, error) {
	return f(ch, size)
}
