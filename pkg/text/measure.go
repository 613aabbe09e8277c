package text

// Measure returns the total advance of s at the given size, skipping
// characters the rasterizer rejects.
func Measure(r Rasterizer, s string, size float64) float64 {
	width := 0.0
	for _, ch := range s {
		m, _, err := r.Rasterize(ch, size)
		if err != nil {
			continue
		}
		width += m.Advance
	}
	return width
}
