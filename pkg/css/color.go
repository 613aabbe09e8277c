package css

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidColor is returned by ParseColor for unrecognized input.
var ErrInvalidColor = errors.New("invalid color")

// Color is a straight (non-premultiplied) RGBA color with 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

var (
	Black = Color{0, 0, 0, 255}
	White = Color{255, 255, 255, 255}
)

var namedColors = map[string]Color{
	"black":  {0, 0, 0, 255},
	"gray":   {128, 128, 128, 255},
	"white":  {255, 255, 255, 255},
	"blue":   {0, 0, 255, 255},
	"green":  {0, 128, 0, 255},
	"yellow": {255, 255, 0, 255},
	"red":    {255, 0, 0, 255},
}

// ParseColor parses "#rgb", "#rrggbb" (hex digits in either case) or one
// of the named keywords black, gray, white, blue, green, yellow and red.
// Parsed colors are fully opaque.
func ParseColor(raw string) (Color, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:], raw)
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, raw)
}

func parseHex(hex, raw string) (Color, error) {
	digits := make([]uint8, len(hex))
	for i := 0; i < len(hex); i++ {
		d, ok := hexDigit(hex[i])
		if !ok {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, raw)
		}
		digits[i] = d
	}

	switch len(digits) {
	case 3:
		return Color{digits[0] * 17, digits[1] * 17, digits[2] * 17, 255}, nil
	case 6:
		return Color{
			digits[0]<<4 | digits[1],
			digits[2]<<4 | digits[3],
			digits[4]<<4 | digits[5],
			255,
		}, nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, raw)
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Blend composites fg over bg with the given coverage alpha (0..255).
// Each channel is ceil(fg*a + bg*(1-a)) with a = alpha/255, computed in
// integer arithmetic. Alpha 0 returns bg unchanged and alpha 255 returns fg
// unchanged; any other result is fully opaque.
func Blend(fg, bg Color, alpha uint8) Color {
	switch alpha {
	case 0:
		return bg
	case 255:
		return fg
	}
	a := uint32(alpha)
	mix := func(f, b uint8) uint8 {
		return uint8((uint32(f)*a + uint32(b)*(255-a) + 254) / 255)
	}
	return Color{
		R: mix(fg.R, bg.R),
		G: mix(fg.G, bg.G),
		B: mix(fg.B, bg.B),
		A: 255,
	}
}

// Blend is the method form of the package-level Blend.
func (c Color) Blend(bg Color, alpha uint8) Color {
	return Blend(c, bg, alpha)
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%d)", c.R, c.G, c.B, c.A)
}
