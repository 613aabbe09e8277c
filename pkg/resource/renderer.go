package resource

import (
	"context"
	"image"

	"github.com/fogleman/gg"

	"tessera/pkg/render"
)

// PageRenderer loads markup and renders it to a canvas.
type PageRenderer struct {
	loader *Loader
	opts   []render.Option
}

// NewPageRenderer creates a renderer that loads pages through loader and
// renders them with opts.
func NewPageRenderer(loader *Loader, opts ...render.Option) *PageRenderer {
	return &PageRenderer{loader: loader, opts: opts}
}

// Render loads src and paints it onto a width x height canvas.
func (r *PageRenderer) Render(ctx context.Context, src string, width, height int) (*render.Canvas, error) {
	page, err := r.loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	renderer, err := render.NewRenderer(width, height, r.opts...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(page.Document.Root, page.Stylesheet)
}

// RenderTo renders src onto target. The viewport is the target's size.
func (r *PageRenderer) RenderTo(ctx context.Context, src string, target *image.RGBA) error {
	bounds := target.Bounds()
	canvas, err := r.Render(ctx, src, bounds.Dx(), bounds.Dy())
	if err != nil {
		return err
	}

	dc := gg.NewContextForRGBA(target)
	dc.DrawImage(canvas.ToImage(), 0, 0)
	return nil
}
