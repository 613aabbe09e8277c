package visualtest

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// CompareResult contains the results of an image comparison
type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // Max color channel difference found
}

// CompareOptions configures the image comparison
type CompareOptions struct {
	// Tolerance: maximum allowed difference per color channel (0-255)
	// Recommended: 2-5 for glyph edges, 0 for exact match
	Tolerance int

	// FuzzyRadius: if > 0, a pixel matches if it matches any pixel within this radius
	// Useful for text with small positional differences (e.g., 1px pen rounding)
	FuzzyRadius int

	// MaxDifferentPercent: if > 0, pass if the percentage of different pixels is <= this value
	MaxDifferentPercent float64

	// SaveDiffImage: if true, saves a diff image highlighting differences
	SaveDiffImage bool
	DiffImagePath string
}

// DefaultOptions returns sensible defaults for image comparison
func DefaultOptions() CompareOptions {
	return CompareOptions{
		Tolerance:     2,
		SaveDiffImage: false,
	}
}

// ExactOptions requires every channel of every pixel to match.
func ExactOptions() CompareOptions {
	return CompareOptions{}
}

// CompareImages compares two PNG files pixel-by-pixel
func CompareImages(actualPath, expectedPath string, opts CompareOptions) (*CompareResult, error) {
	actualImg, err := gg.LoadPNG(actualPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load actual image: %w", err)
	}

	expectedImg, err := gg.LoadPNG(expectedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load expected image: %w", err)
	}

	return Compare(actualImg, expectedImg, opts)
}

// Compare compares two images pixel-by-pixel. Images of different sizes
// never match.
func Compare(actualImg, expectedImg image.Image, opts CompareOptions) (*CompareResult, error) {
	actualBounds := actualImg.Bounds()
	expectedBounds := expectedImg.Bounds()
	if actualBounds.Size() != expectedBounds.Size() {
		return &CompareResult{
			Match: false,
		}, fmt.Errorf("image dimensions differ: actual=%v, expected=%v", actualBounds, expectedBounds)
	}

	// expected pixels are addressed relative to the actual image's origin
	offset := expectedBounds.Min.Sub(actualBounds.Min)

	result := &CompareResult{
		Match:       true,
		TotalPixels: actualBounds.Dx() * actualBounds.Dy(),
	}

	var diffImg *image.RGBA
	if opts.SaveDiffImage {
		diffImg = image.NewRGBA(actualBounds)
	}

	for y := actualBounds.Min.Y; y < actualBounds.Max.Y; y++ {
		for x := actualBounds.Min.X; x < actualBounds.Max.X; x++ {
			ac := rgba8(actualImg.At(x, y))
			diff := channelDiff(ac, rgba8(expectedImg.At(x+offset.X, y+offset.Y)))

			if diff > result.MaxDifference {
				result.MaxDifference = diff
			}

			gray := color.RGBA{ac[0], ac[0], ac[0], 255}
			if diff <= opts.Tolerance {
				if diffImg != nil {
					diffImg.Set(x, y, gray)
				}
				continue
			}

			// If fuzzy matching is enabled, check nearby pixels
			if opts.FuzzyRadius > 0 && fuzzyMatch(actualImg, expectedImg, x, y, offset, opts.FuzzyRadius, opts.Tolerance, actualBounds) {
				if diffImg != nil {
					diffImg.Set(x, y, gray)
				}
				continue
			}

			result.Match = false
			result.DifferentPixels++
			if diffImg != nil {
				// Highlight difference in red
				diffImg.Set(x, y, color.RGBA{255, 0, 0, 255})
			}
		}
	}

	// Check if percentage of different pixels is acceptable
	if !result.Match && opts.MaxDifferentPercent > 0 && result.TotalPixels > 0 {
		pct := float64(result.DifferentPixels) / float64(result.TotalPixels) * 100
		if pct <= opts.MaxDifferentPercent {
			result.Match = true
		}
	}

	if opts.SaveDiffImage && !result.Match && opts.DiffImagePath != "" {
		if err := gg.SavePNG(opts.DiffImagePath, diffImg); err != nil {
			return result, fmt.Errorf("failed to save diff image: %w", err)
		}
	}

	return result, nil
}

// fuzzyMatch checks if the actual pixel at (x, y) matches any expected pixel within radius
func fuzzyMatch(actual, expected image.Image, x, y int, offset image.Point, radius, tolerance int, bounds image.Rectangle) bool {
	ac := rgba8(actual.At(x, y))

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			nx, ny := x+dx, y+dy
			if nx < bounds.Min.X || nx >= bounds.Max.X || ny < bounds.Min.Y || ny >= bounds.Max.Y {
				continue
			}
			if channelDiff(ac, rgba8(expected.At(nx+offset.X, ny+offset.Y))) <= tolerance {
				return true
			}
		}
	}
	return false
}

// rgba8 converts a color to straight 8-bit channels.
func rgba8(c color.Color) [4]uint8 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return [4]uint8{n.R, n.G, n.B, n.A}
}

func channelDiff(a, b [4]uint8) int {
	return maxInt(
		absInt(int(a[0])-int(b[0])),
		absInt(int(a[1])-int(b[1])),
		absInt(int(a[2])-int(b[2])),
		absInt(int(a[3])-int(b[3])),
	)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(vals ...int) int {
	if len(vals) == 0 {
		return 0
	}
	max := vals[0]
	for _, v := range vals[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
