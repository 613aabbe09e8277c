package css

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidLength is returned when a length-only property carries a value
// that is not a pixel length.
var ErrInvalidLength = errors.New("invalid length")

// Value is a resolved declaration value. The set of implementations is
// closed: Keyword, ColorValue, Length and Undefined.
type Value interface {
	isValue()
	String() string
}

// Keyword is an identifier value such as "auto" or "block".
type Keyword string

// ColorValue wraps a parsed color.
type ColorValue struct {
	Color Color
}

// Unit is a length unit. Only pixels exist.
type Unit int

const (
	Px Unit = iota
)

// Length is a numeric length.
type Length struct {
	Value float64
	Unit  Unit
}

// Undefined is the value of a property the renderer does not interpret.
type Undefined struct{}

func (Keyword) isValue()    {}
func (ColorValue) isValue() {}
func (Length) isValue()     {}
func (Undefined) isValue()  {}

func (k Keyword) String() string    { return string(k) }
func (c ColorValue) String() string { return c.Color.String() }
func (l Length) String() string     { return strconv.FormatFloat(l.Value, 'f', -1, 64) + "px" }
func (Undefined) String() string    { return "undefined" }

// Auto is the keyword used by the width algorithm.
const Auto = Keyword("auto")

// PxLength builds a pixel length.
func PxLength(v float64) Length {
	return Length{Value: v, Unit: Px}
}

// ToPx returns the pixel size of a length, or 0 for any other value.
func ToPx(v Value) float64 {
	switch v := v.(type) {
	case Length:
		if v.Unit == Px {
			return v.Value
		}
		return 0
	case Keyword, ColorValue, Undefined, nil:
		return 0
	default:
		panic(fmt.Sprintf("css: unhandled value type %T", v))
	}
}

// IsAuto reports whether v is the auto keyword.
func IsAuto(v Value) bool {
	k, ok := v.(Keyword)
	return ok && k == Auto
}

// parsePx parses "12px" or "12.5px". Bare "0" is accepted as zero.
func parsePx(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "0" {
		return 0, true
	}
	if !strings.HasSuffix(s, "px") {
		return 0, false
	}
	num, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// Property identifies a CSS property the renderer understands.
type Property int

const (
	PropUndefined Property = iota
	PropColor
	PropBackgroundColor
	PropDisplay
	PropWidth
	PropHeight
	PropFontSize
	PropMargin
	PropMarginTop
	PropMarginRight
	PropMarginBottom
	PropMarginLeft
	PropPadding
	PropPaddingTop
	PropPaddingRight
	PropPaddingBottom
	PropPaddingLeft
	PropBorderWidth
	PropBorderTopWidth
	PropBorderRightWidth
	PropBorderBottomWidth
	PropBorderLeftWidth
)

var propertyNames = [...]string{
	PropUndefined:         "undefined",
	PropColor:             "color",
	PropBackgroundColor:   "background-color",
	PropDisplay:           "display",
	PropWidth:             "width",
	PropHeight:            "height",
	PropFontSize:          "font-size",
	PropMargin:            "margin",
	PropMarginTop:         "margin-top",
	PropMarginRight:       "margin-right",
	PropMarginBottom:      "margin-bottom",
	PropMarginLeft:        "margin-left",
	PropPadding:           "padding",
	PropPaddingTop:        "padding-top",
	PropPaddingRight:      "padding-right",
	PropPaddingBottom:     "padding-bottom",
	PropPaddingLeft:       "padding-left",
	PropBorderWidth:       "border-width",
	PropBorderTopWidth:    "border-top-width",
	PropBorderRightWidth:  "border-right-width",
	PropBorderBottomWidth: "border-bottom-width",
	PropBorderLeftWidth:   "border-left-width",
}

// PropertyOf maps a property name to its Property, PropUndefined if unknown.
func PropertyOf(name string) Property {
	name = strings.ToLower(strings.TrimSpace(name))
	for p, n := range propertyNames {
		if n == name && Property(p) != PropUndefined {
			return Property(p)
		}
	}
	return PropUndefined
}

func (p Property) String() string {
	if int(p) < len(propertyNames) {
		return propertyNames[p]
	}
	return "undefined"
}

// valueKind describes how a property's raw text becomes a Value.
type valueKind int

const (
	kindKeyword valueKind = iota
	kindColor
	kindLengthOnly    // px or auto, anything else is an input error
	kindLengthKeyword // px, falling back to a keyword
)

func (p Property) kind() valueKind {
	switch p {
	case PropColor, PropBackgroundColor:
		return kindColor
	case PropWidth, PropHeight, PropFontSize:
		return kindLengthOnly
	case PropDisplay, PropUndefined:
		return kindKeyword
	default:
		return kindLengthKeyword
	}
}

// ParseValue converts raw declaration text for a property into a Value.
// Length-only properties reject anything but a pixel length (or auto for
// width and height) with ErrInvalidLength; color properties reject bad
// colors with ErrInvalidColor.
func ParseValue(p Property, raw string) (Value, error) {
	raw = strings.TrimSpace(raw)
	switch p.kind() {
	case kindColor:
		c, err := ParseColor(raw)
		if err != nil {
			return nil, err
		}
		return ColorValue{Color: c}, nil
	case kindLengthOnly:
		if px, ok := parsePx(raw); ok {
			return PxLength(px), nil
		}
		if Keyword(raw) == Auto && p != PropFontSize {
			return Auto, nil
		}
		return nil, fmt.Errorf("%w: %s: %q", ErrInvalidLength, p, raw)
	case kindLengthKeyword:
		if px, ok := parsePx(raw); ok {
			return PxLength(px), nil
		}
		return Keyword(raw), nil
	case kindKeyword:
		if p == PropUndefined {
			return Undefined{}, nil
		}
		return Keyword(strings.ToLower(raw)), nil
	}
	panic(fmt.Sprintf("css: unhandled value kind for %s", p))
}
