package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"tessera/internal/config"
	"tessera/internal/observability"
	"tessera/pkg/render"
	"tessera/pkg/resource"
	stdnet "tessera/std/net"
)

func main() {
	cfg, err := config.Load(os.Getenv("TESSERA_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger := observability.Initialize(cfg.Logger)

	a := app.New()
	w := a.NewWindow("tessera")
	w.Resize(fyne.NewSize(float32(cfg.Viewport.Width), float32(cfg.Viewport.Height+68)))

	// Blank initial render target
	target := image.NewRGBA(image.Rect(0, 0, cfg.Viewport.Width, cfg.Viewport.Height))
	canvasImg := canvas.NewImageFromImage(target)
	canvasImg.FillMode = canvas.ImageFillOriginal

	status := widget.NewLabel("Enter a URL or file path and press Enter")

	entry := widget.NewEntry()
	entry.SetPlaceHolder("https://example.com or ./page.html")
	entry.OnSubmitted = func(input string) {
		status.SetText("Loading " + input + "...")
		go func() {
			renderTarget, err := load(cfg, logger, input)
			fyne.Do(func() {
				if err != nil {
					status.SetText("Error: " + err.Error())
					return
				}
				canvasImg.Image = renderTarget
				canvasImg.Refresh()
				status.SetText(input)
				w.SetTitle(fmt.Sprintf("tessera - %s", input))
			})
		}()
	}

	// URL bar on top, status at bottom, image fills center
	content := container.NewBorder(entry, status, nil, nil, canvasImg)
	w.SetContent(content)

	// Keep focus on the entry to prevent Tab freeze with no other focusable widgets
	w.Canvas().Focus(entry)

	if len(os.Args) > 1 {
		entry.SetText(os.Args[1])
		entry.OnSubmitted(os.Args[1])
	}

	w.ShowAndRun()
}

// load fetches input and renders it to a new image of the viewport size.
func load(cfg *config.Config, logger *zap.Logger, input string) (*image.RGBA, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Render.Timeout)
	defer cancel()

	var src, base string
	if stdnet.IsNetworkURL(input) {
		body, _, err := stdnet.Fetch(ctx, input)
		if err != nil {
			return nil, err
		}
		src, base = string(body), input
	} else {
		body, err := os.ReadFile(input)
		if err != nil {
			return nil, err
		}
		src, base = string(body), filepath.Dir(input)
	}

	loader := resource.NewLoader(resource.NewFetcher(base), logger.Named("loader"))
	loader.EnableScripts(cfg.Render.Scripts)
	r := resource.NewPageRenderer(loader,
		render.WithFontSize(cfg.Font.Size),
		render.WithUserAgentStyles(cfg.Render.UserAgent),
		render.WithLogger(logger.Named("render")))

	target := image.NewRGBA(image.Rect(0, 0, cfg.Viewport.Width, cfg.Viewport.Height))
	if err := r.RenderTo(ctx, src, target); err != nil {
		return nil, err
	}
	return target, nil
}
