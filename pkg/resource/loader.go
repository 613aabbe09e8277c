package resource

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tessera/pkg/css"
	"tessera/pkg/html"
	"tessera/pkg/js"
)

// Page is a loaded document and the stylesheet assembled from it.
type Page struct {
	Document   *html.Document
	Stylesheet *css.Stylesheet
}

// Loader turns markup into a Page: it parses the document, optionally runs
// its scripts, and resolves linked and inline stylesheets.
type Loader struct {
	fetcher Fetcher
	logger  *zap.Logger
	scripts bool
}

// NewLoader creates a loader. A nil fetcher means linked stylesheets are
// skipped; a nil logger discards diagnostics.
func NewLoader(fetcher Fetcher, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fetcher: fetcher, logger: logger}
}

// EnableScripts makes Load run the document's <script> blocks before
// stylesheets are resolved.
func (l *Loader) EnableScripts(enabled bool) {
	l.scripts = enabled
}

// Load parses src and builds its stylesheet. Linked sheets come first,
// followed by <style> blocks. A link that cannot be fetched is logged and
// skipped. A sheet with an invalid length fails the load. A script error
// is logged; only an interrupted script stops the load.
func (l *Loader) Load(ctx context.Context, src string) (*Page, error) {
	doc, err := html.Parse(src)
	if err != nil {
		return nil, err
	}

	if l.scripts && len(doc.Scripts) > 0 {
		if err := js.New(l.logger).Execute(ctx, doc); err != nil {
			if errors.Is(err, js.ErrInterrupted) || ctx.Err() != nil {
				return nil, err
			}
			l.logger.Warn("script failed", zap.Error(err))
		}
	}

	sheet := &css.Stylesheet{}
	for _, href := range doc.Links {
		if l.fetcher == nil {
			l.logger.Debug("no fetcher, skipping stylesheet", zap.String("href", href))
			continue
		}
		text, err := FetchCSS(ctx, l.fetcher, href)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			l.logger.Warn("stylesheet fetch failed", zap.String("href", href), zap.Error(err))
			continue
		}
		if err := appendSheet(sheet, text); err != nil {
			return nil, fmt.Errorf("stylesheet %s: %w", href, err)
		}
	}
	for i, text := range doc.Stylesheets {
		if err := appendSheet(sheet, text); err != nil {
			return nil, fmt.Errorf("style block %d: %w", i, err)
		}
	}

	l.logger.Debug("page loaded",
		zap.Int("links", len(doc.Links)),
		zap.Int("styles", len(doc.Stylesheets)),
		zap.Int("blocks", len(sheet.Blocks)))
	return &Page{Document: doc, Stylesheet: sheet}, nil
}

func appendSheet(sheet *css.Stylesheet, text string) error {
	parsed, err := css.ParseStylesheet(text)
	if err != nil {
		return err
	}
	sheet.Append(parsed)
	return nil
}
