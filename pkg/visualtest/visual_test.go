package visualtest

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/gg"
)

// solid returns a w x h image filled with one color.
func solid(w, h, r, g, b int) image.Image {
	dc := gg.NewContext(w, h)
	dc.SetRGB255(r, g, b)
	dc.Clear()
	return dc.Image()
}

func saveTestImage(t *testing.T, img image.Image, path string) {
	t.Helper()
	if err := gg.SavePNG(path, img); err != nil {
		t.Fatalf("failed to save image: %v", err)
	}
}

func TestCompareImages_Identical(t *testing.T) {
	img := solid(10, 10, 255, 0, 0)

	tmpDir := t.TempDir()
	path1 := filepath.Join(tmpDir, "img1.png")
	path2 := filepath.Join(tmpDir, "img2.png")
	saveTestImage(t, img, path1)
	saveTestImage(t, img, path2)

	result, err := CompareImages(path1, path2, DefaultOptions())
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match {
		t.Errorf("expected images to match")
	}
	if result.DifferentPixels != 0 {
		t.Errorf("expected 0 different pixels, got %d", result.DifferentPixels)
	}
	if result.TotalPixels != 100 {
		t.Errorf("expected 100 total pixels, got %d", result.TotalPixels)
	}
}

func TestCompareImages_Different(t *testing.T) {
	tmpDir := t.TempDir()
	path1 := filepath.Join(tmpDir, "img1.png")
	path2 := filepath.Join(tmpDir, "img2.png")
	saveTestImage(t, solid(10, 10, 255, 0, 0), path1)
	saveTestImage(t, solid(10, 10, 0, 0, 255), path2)

	opts := DefaultOptions()
	opts.SaveDiffImage = true
	opts.DiffImagePath = filepath.Join(tmpDir, "diff.png")

	result, err := CompareImages(path1, path2, opts)
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if result.Match {
		t.Errorf("expected images to not match")
	}
	if result.DifferentPixels != 100 {
		t.Errorf("expected 100 different pixels, got %d", result.DifferentPixels)
	}
	if result.MaxDifference != 255 {
		t.Errorf("expected max difference 255, got %d", result.MaxDifference)
	}
	if _, err := os.Stat(opts.DiffImagePath); os.IsNotExist(err) {
		t.Errorf("diff image was not created")
	}
}

func TestCompare_WithTolerance(t *testing.T) {
	img1 := solid(10, 10, 100, 100, 100)
	img2 := solid(10, 10, 102, 102, 102)

	result, err := Compare(img1, img2, DefaultOptions())
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match {
		t.Errorf("expected images to match with tolerance=2")
	}

	result, err = Compare(img1, img2, ExactOptions())
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if result.Match {
		t.Errorf("expected images to not match with tolerance=0")
	}
}

func TestCompare_DifferentDimensions(t *testing.T) {
	result, err := Compare(solid(10, 10, 0, 0, 0), solid(20, 20, 0, 0, 0), DefaultOptions())
	if err == nil {
		t.Errorf("expected error for different dimensions")
	}
	if result != nil && result.Match {
		t.Errorf("expected images with different dimensions to not match")
	}
}

func TestCompare_FuzzyRadius(t *testing.T) {
	// a single dark pixel, shifted by one column
	actual := gg.NewContext(5, 5)
	actual.SetRGB(1, 1, 1)
	actual.Clear()
	actual.SetRGB(0, 0, 0)
	actual.SetPixel(2, 2)

	expected := gg.NewContext(5, 5)
	expected.SetRGB(1, 1, 1)
	expected.Clear()
	expected.SetRGB(0, 0, 0)
	expected.SetPixel(3, 2)

	result, err := Compare(actual.Image(), expected.Image(), ExactOptions())
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if result.Match || result.DifferentPixels != 2 {
		t.Errorf("expected 2 different pixels without fuzz, got %d", result.DifferentPixels)
	}

	opts := ExactOptions()
	opts.FuzzyRadius = 1
	result, err = Compare(actual.Image(), expected.Image(), opts)
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match {
		t.Errorf("expected fuzzy match, got %d different pixels", result.DifferentPixels)
	}
}

func TestCompare_MaxDifferentPercent(t *testing.T) {
	actual := gg.NewContext(10, 10)
	actual.SetRGB(1, 1, 1)
	actual.Clear()
	actual.SetRGB(0, 0, 0)
	actual.SetPixel(0, 0)

	opts := ExactOptions()
	opts.MaxDifferentPercent = 1
	result, err := Compare(actual.Image(), solid(10, 10, 255, 255, 255), opts)
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match {
		t.Errorf("expected 1%% difference to be accepted")
	}
}

func TestCompare_OffsetBounds(t *testing.T) {
	base := solid(10, 10, 0, 255, 0).(*image.RGBA)
	sub := base.SubImage(image.Rect(2, 2, 6, 6))

	result, err := Compare(sub, solid(4, 4, 0, 255, 0), ExactOptions())
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match {
		t.Errorf("expected sub-image to match, got %d different pixels", result.DifferentPixels)
	}
}
