package text

import (
	"fmt"
	"image"
	"math"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// DefaultFontSize is the glyph size used when nothing else is configured.
const DefaultFontSize = 16

// FontConfig selects the font used for glyph rasterization.
type FontConfig struct {
	// Path is a TrueType or OpenType file. Empty selects the bundled Go
	// Regular face.
	Path string
	// Size is the default size in pixels per em.
	Size float64
}

// DefaultFontConfig returns the bundled Go Regular face at DefaultFontSize.
func DefaultFontConfig() FontConfig {
	return FontConfig{Size: DefaultFontSize}
}

// FontRasterizer rasterizes glyphs from an sfnt font at three times the
// horizontal resolution, one sample per color channel. It is safe for
// concurrent use.
type FontRasterizer struct {
	font *sfnt.Font

	mu  sync.Mutex
	buf sfnt.Buffer
}

// NewFontRasterizer loads the font named by cfg.
func NewFontRasterizer(cfg FontConfig) (*FontRasterizer, error) {
	data := goregular.TTF
	if cfg.Path != "" {
		var err error
		data, err = os.ReadFile(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font: %w", err)
		}
	}

	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %q: %w", cfg.Path, err)
	}
	return &FontRasterizer{font: f}, nil
}

// Rasterize renders ch at size pixels per em. Characters missing from the
// font render as the font's fallback glyph.
func (r *FontRasterizer) Rasterize(ch rune, size float64) (Metrics, []byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ppem := fixed.Int26_6(math.Round(size * 64))

	idx, err := r.font.GlyphIndex(&r.buf, ch)
	if err != nil {
		return Metrics{}, nil, fmt.Errorf("glyph index for %q: %w", ch, err)
	}

	bounds, advance, err := r.font.GlyphBounds(&r.buf, idx, ppem, font.HintingNone)
	if err != nil {
		return Metrics{}, nil, fmt.Errorf("glyph bounds for %q: %w", ch, err)
	}

	minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	maxX, maxY := bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()
	m := Metrics{
		XBearing: minX,
		YBearing: -minY,
		Width:    maxX - minX,
		Height:   maxY - minY,
		Advance:  fixedToFloat64(advance),
	}
	if m.Width <= 0 || m.Height <= 0 {
		return Metrics{Advance: m.Advance}, nil, nil
	}

	segments, err := r.font.LoadGlyph(&r.buf, idx, ppem, nil)
	if err != nil {
		return Metrics{}, nil, fmt.Errorf("load glyph %q: %w", ch, err)
	}

	// x is scaled by three so each output byte covers one subpixel
	ras := vector.NewRasterizer(3*m.Width, m.Height)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return 3 * (float32(p.X)/64 - float32(minX)), float32(p.Y)/64 - float32(minY)
	}
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			ras.ClosePath()
			ras.MoveTo(pt(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			ras.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			ras.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			dx, dy := pt(seg.Args[2])
			ras.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	ras.ClosePath()

	dst := image.NewAlpha(image.Rect(0, 0, 3*m.Width, m.Height))
	ras.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return m, dst.Pix, nil
}

func fixedToFloat64(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
