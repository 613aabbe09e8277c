package visualtest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"tessera/pkg/render"
	"tessera/pkg/resource"
)

// RenderHTMLToFile renders HTML content to a PNG file
func RenderHTMLToFile(htmlContent string, outputPath string, width, height int) error {
	return RenderHTMLToFileWithBase(htmlContent, outputPath, width, height, "")
}

// RenderHTMLToFileWithBase renders HTML content to a PNG file, resolving
// linked stylesheets against basePath.
func RenderHTMLToFileWithBase(htmlContent string, outputPath string, width, height int, basePath string) error {
	var fetcher resource.Fetcher
	if basePath != "" {
		fetcher = resource.NewFetcher(basePath)
	}

	r := resource.NewPageRenderer(resource.NewLoader(fetcher, zap.NewNop()),
		render.WithUserAgentStyles(true))
	canvas, err := r.Render(context.Background(), htmlContent, width, height)
	if err != nil {
		return fmt.Errorf("render error: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := canvas.SavePNG(outputPath); err != nil {
		return fmt.Errorf("save error: %w", err)
	}

	return nil
}

// RenderHTMLFile renders an HTML file to a PNG file
func RenderHTMLFile(htmlPath, outputPath string, width, height int) error {
	htmlContent, err := os.ReadFile(htmlPath)
	if err != nil {
		return fmt.Errorf("failed to read HTML file: %w", err)
	}

	return RenderHTMLToFileWithBase(string(htmlContent), outputPath, width, height, filepath.Dir(htmlPath))
}

// UpdateReferenceImage generates a new reference image
// Use this when you've intentionally changed rendering behavior
func UpdateReferenceImage(htmlPath, referencePath string, width, height int) error {
	fmt.Printf("Updating reference image: %s\n", referencePath)
	return RenderHTMLFile(htmlPath, referencePath, width, height)
}
