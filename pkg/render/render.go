package render

import (
	"fmt"

	"go.uber.org/zap"

	"tessera/pkg/css"
	"tessera/pkg/html"
	"tessera/pkg/layout"
	"tessera/pkg/text"
)

// Renderer runs the pipeline: style, layout, display list, paint. A
// Renderer holds no per-render state and may be shared between goroutines
// if its rasterizer can.
type Renderer struct {
	width  int
	height int
	opts   options
}

// NewRenderer returns a renderer producing width x height canvases.
func NewRenderer(width, height int, opts ...Option) (*Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.raster == nil {
		fr, err := text.NewFontRasterizer(text.FontConfig{Size: o.fontSize})
		if err != nil {
			return nil, fmt.Errorf("failed to create rasterizer: %w", err)
		}
		o.raster = fr
	}
	return &Renderer{width: width, height: height, opts: o}, nil
}

// Size returns the canvas size.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Layout styles root against sheet and lays it out in the viewport.
func (r *Renderer) Layout(root *html.Node, sheet *css.Stylesheet) (box *layout.Box, err error) {
	defer recoverError(&err)
	return r.layout(root, sheet), nil
}

// Render runs the whole pipeline and returns the painted canvas. Builder
// invariant violations, such as a hidden root, are returned as errors.
func (r *Renderer) Render(root *html.Node, sheet *css.Stylesheet) (canvas *Canvas, err error) {
	defer recoverError(&err)

	box := r.layout(root, sheet)

	b := &displayListBuilder{raster: r.opts.raster, logger: r.opts.logger}
	list := b.build(box, r.opts.fontSize)
	r.opts.logger.Debug("display list built", zap.Int("commands", len(list)))

	canvas = NewCanvas(r.width, r.height)
	canvas.Paint(list)
	return canvas, nil
}

func (r *Renderer) layout(root *html.Node, sheet *css.Stylesheet) *layout.Box {
	if r.opts.userAgent {
		sheet = css.WithUserAgent(sheet)
	}
	if sheet != nil {
		for _, d := range sheet.Dropped {
			r.opts.logger.Debug("dropped from stylesheet", zap.Error(d))
		}
	}

	styled := css.StyleTree(root, sheet)
	box := layout.LayoutTree(styled, layout.Viewport(float64(r.width), float64(r.height)))

	count := 0
	box.Walk(func(*layout.Box, int) { count++ })
	r.opts.logger.Debug("layout complete",
		zap.Int("boxes", count),
		zap.Float64("height", box.MarginBox().Height))
	return box
}

func recoverError(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(error); ok {
		*err = fmt.Errorf("render failed: %w", e)
		return
	}
	*err = fmt.Errorf("render failed: %v", r)
}
