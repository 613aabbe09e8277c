package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tessera/pkg/visualtest"
)

// Simple tool to generate reference images for visual regression tests
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Reference Image Generator for tessera")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/update-references <dir> [width] [height]")
		fmt.Println()
		fmt.Println("Every <dir>/*.html is rendered to <dir>/reference/<name>.png.")
		os.Exit(1)
	}

	width, height := 800, 600
	if len(os.Args) >= 3 {
		fmt.Sscanf(os.Args[2], "%d", &width)
	}
	if len(os.Args) >= 4 {
		fmt.Sscanf(os.Args[3], "%d", &height)
	}

	n, err := generateReferences(os.Args[1], width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d reference images generated\n", n)
}

func generateReferences(dir string, width, height int) (int, error) {
	pages, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return 0, err
	}

	for _, page := range pages {
		name := strings.TrimSuffix(filepath.Base(page), ".html") + ".png"
		ref := filepath.Join(dir, "reference", name)
		if err := visualtest.UpdateReferenceImage(page, ref, width, height); err != nil {
			return 0, fmt.Errorf("failed to generate %s: %w", ref, err)
		}
	}
	return len(pages), nil
}
