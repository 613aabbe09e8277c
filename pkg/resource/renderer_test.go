package resource

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"tessera/pkg/render"
)

func TestPageRenderer_RenderTo(t *testing.T) {
	src := page(t,
		[]g.Node{h.StyleEl(g.Raw(`.bar { height: 10px; background-color: #00ff00; }`))},
		h.Div(h.Class("bar")),
	)

	r := NewPageRenderer(NewLoader(nil, nil), render.WithUserAgentStyles(true))
	target := image.NewRGBA(image.Rect(0, 0, 40, 30))
	require.NoError(t, r.RenderTo(context.Background(), src, target))

	assert.Equal(t, color.RGBA{G: 255, A: 255}, target.RGBAAt(5, 5))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, target.RGBAAt(5, 20))
}

func TestPageRenderer_LoadError(t *testing.T) {
	src := page(t, []g.Node{h.StyleEl(g.Raw(`div { height: auto-ish; }`))}, h.Div())

	_, err := NewPageRenderer(NewLoader(nil, nil)).Render(context.Background(), src, 10, 10)
	assert.Error(t, err)
}
