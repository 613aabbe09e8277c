package render

import (
	"go.uber.org/zap"

	"tessera/pkg/text"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := render.NewRenderer(800, 600,
//		render.WithFontSize(14),
//		render.WithUserAgentStyles(true),
//	)
type Option func(*options)

type options struct {
	raster    text.Rasterizer
	fontSize  float64
	userAgent bool
	logger    *zap.Logger
}

func defaultOptions() options {
	return options{
		fontSize: text.DefaultFontSize,
		logger:   zap.NewNop(),
	}
}

// WithRasterizer sets the glyph rasterizer. The default is a FontRasterizer
// on the bundled Go Regular face.
func WithRasterizer(r text.Rasterizer) Option {
	return func(o *options) {
		o.raster = r
	}
}

// WithFontSize sets the size used for text with no resolved font-size.
func WithFontSize(size float64) Option {
	return func(o *options) {
		if size > 0 {
			o.fontSize = size
		}
	}
}

// WithUserAgentStyles prepends the user-agent stylesheet to every sheet
// rendered.
func WithUserAgentStyles(enabled bool) Option {
	return func(o *options) {
		o.userAgent = enabled
	}
}

// WithLogger sets the logger for pipeline diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
