package css

import (
	"errors"
	"fmt"
	"strings"

	"tessera/pkg/html"
)

// Selector is a simple selector: an optional element kind, any number of
// classes and an optional id. KindUndefined and "" mean absent.
type Selector struct {
	Element html.ElementKind
	Classes []string
	ID      string
}

// Specificity ranks selectors as (ids, classes, elements), compared
// lexicographically.
type Specificity [3]int

// Less reports whether s ranks strictly below o.
func (s Specificity) Less(o Specificity) bool {
	for i := range s {
		if s[i] != o[i] {
			return s[i] < o[i]
		}
	}
	return false
}

// Specificity returns the selector's (id, class, element) counts.
func (s Selector) Specificity() Specificity {
	var sp Specificity
	if s.ID != "" {
		sp[0] = 1
	}
	sp[1] = len(s.Classes)
	if s.Element != html.KindUndefined {
		sp[2] = 1
	}
	return sp
}

func (s Selector) String() string {
	var sb strings.Builder
	if s.Element != html.KindUndefined {
		sb.WriteString(s.Element.String())
	}
	if s.ID != "" {
		sb.WriteString("#" + s.ID)
	}
	for _, c := range s.Classes {
		sb.WriteString("." + c)
	}
	return sb.String()
}

// Declaration is a single property assignment.
type Declaration struct {
	Property Property
	Value    Value
}

// Block is a rule: a selector list and its declarations in source order.
type Block struct {
	Selectors    []Selector
	Declarations []Declaration
}

// Stylesheet is an ordered list of blocks. Order is the cascade tiebreak.
type Stylesheet struct {
	Blocks []Block

	// Dropped lists the non-fatal problems found while parsing: bad colors
	// and unsupported selectors. The affected declaration or selector is
	// left out; everything else in the sheet is kept.
	Dropped []error
}

// ErrUnsupportedSelector marks selectors using combinators, pseudo-classes
// or attribute syntax.
var ErrUnsupportedSelector = errors.New("unsupported selector")

// Append adds the blocks of other after the blocks of s.
func (s *Stylesheet) Append(other *Stylesheet) {
	if other == nil {
		return
	}
	s.Blocks = append(s.Blocks, other.Blocks...)
	s.Dropped = append(s.Dropped, other.Dropped...)
}

// ParseStylesheet parses stylesheet text into blocks. A length-only property
// with a non-length value is an input error and fails the whole parse; an
// unparseable color only drops its declaration.
func ParseStylesheet(src string) (*Stylesheet, error) {
	sheet := &Stylesheet{Blocks: make([]Block, 0)}

	src = strings.TrimSpace(stripCSSComments(src))
	if src == "" {
		return sheet, nil
	}

	for _, ruleStr := range splitRules(src) {
		block, err := parseRule(sheet, ruleStr)
		if err != nil {
			return nil, err
		}
		if len(block.Selectors) == 0 {
			continue
		}
		sheet.Blocks = append(sheet.Blocks, block)
	}
	return sheet, nil
}

// MustParseStylesheet is ParseStylesheet for trusted, static input.
func MustParseStylesheet(src string) *Stylesheet {
	sheet, err := ParseStylesheet(src)
	if err != nil {
		panic(err)
	}
	return sheet
}

// stripCSSComments removes /* ... */ comments. An unterminated comment runs to
// the end of input.
func stripCSSComments(css string) string {
	var sb strings.Builder
	for {
		start := strings.Index(css, "/*")
		if start == -1 {
			sb.WriteString(css)
			return sb.String()
		}
		sb.WriteString(css[:start])
		end := strings.Index(css[start+2:], "*/")
		if end == -1 {
			return sb.String()
		}
		css = css[start+2+end+2:]
	}
}

// splitRules splits CSS into individual rules
func splitRules(css string) []string {
	rules := make([]string, 0)
	depth := 0
	start := 0

	for i, ch := range css {
		if ch == '{' {
			depth++
		} else if ch == '}' {
			depth--
			if depth == 0 {
				ruleStr := css[start : i+1]
				if strings.TrimSpace(ruleStr) != "" {
					rules = append(rules, ruleStr)
				}
				start = i + 1
			}
			if depth < 0 {
				// stray closing brace, resynchronize after it
				depth = 0
				start = i + 1
			}
		}
	}

	return rules
}

// parseRule parses a single CSS rule
func parseRule(sheet *Stylesheet, ruleStr string) (Block, error) {
	bracePos := strings.Index(ruleStr, "{")
	if bracePos == -1 {
		return Block{}, nil
	}

	block := Block{}
	for _, part := range strings.Split(ruleStr[:bracePos], ",") {
		sel, err := parseSelector(part)
		if err != nil {
			sheet.Dropped = append(sheet.Dropped, err)
			continue
		}
		block.Selectors = append(block.Selectors, sel)
	}

	declEnd := strings.LastIndex(ruleStr, "}")
	if declEnd == -1 {
		declEnd = len(ruleStr)
	}
	decls, err := parseDeclarations(sheet, ruleStr[bracePos+1:declEnd])
	if err != nil {
		return Block{}, err
	}
	block.Declarations = decls
	return block, nil
}

// parseSelector parses a compound selector such as "div", ".a.b" or
// "p#intro.note".
func parseSelector(raw string) (Selector, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, " \t\n>+~:[*") {
		return Selector{}, fmt.Errorf("%w: %q", ErrUnsupportedSelector, raw)
	}

	var sel Selector
	i := 0
	readName := func() string {
		start := i
		for i < len(raw) && raw[i] != '.' && raw[i] != '#' {
			i++
		}
		return raw[start:i]
	}

	if raw[0] != '.' && raw[0] != '#' {
		name := readName()
		if !isIdent(name) {
			return Selector{}, fmt.Errorf("%w: %q", ErrUnsupportedSelector, raw)
		}
		sel.Element = html.KindOf(name)
	}
	for i < len(raw) {
		prefix := raw[i]
		i++
		name := readName()
		if !isIdent(name) {
			return Selector{}, fmt.Errorf("%w: %q", ErrUnsupportedSelector, raw)
		}
		if prefix == '#' {
			sel.ID = name
		} else {
			sel.Classes = append(sel.Classes, name)
		}
	}
	return sel, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// parseDeclarations parses the body of a rule, expanding shorthands.
func parseDeclarations(sheet *Stylesheet, declStr string) ([]Declaration, error) {
	decls := make([]Declaration, 0)

	for _, part := range strings.Split(declStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		colonPos := strings.Index(part, ":")
		if colonPos == -1 {
			continue
		}

		name := strings.ToLower(strings.TrimSpace(part[:colonPos]))
		value := strings.TrimSpace(part[colonPos+1:])
		if name == "" || value == "" {
			continue
		}

		for _, raw := range expandShorthand(name, value) {
			prop := PropertyOf(raw.name)
			if prop == PropUndefined {
				continue
			}
			v, err := ParseValue(prop, raw.value)
			switch {
			case err == nil:
				decls = append(decls, Declaration{Property: prop, Value: v})
			case errors.Is(err, ErrInvalidColor):
				sheet.Dropped = append(sheet.Dropped, err)
			default:
				return nil, err
			}
		}
	}
	return decls, nil
}

type rawDeclaration struct {
	name, value string
}

// expandShorthand expands margin, padding and border-width into the four
// longhands, so the cascade resolves each side on its own. The border
// shorthand contributes only its width.
func expandShorthand(name, value string) []rawDeclaration {
	switch name {
	case "margin", "padding":
		return expandBoxProperty(name, "", value)
	case "border-width":
		return expandBoxProperty("border", "-width", value)
	case "border":
		for _, part := range strings.Fields(value) {
			if _, ok := parsePx(part); ok {
				return expandBoxProperty("border", "-width", part)
			}
		}
		return nil
	}
	return []rawDeclaration{{name, value}}
}

// expandBoxProperty expands margin/padding shorthand
// Supports: "10px" (all), "10px 20px" (vertical horizontal),
//
//	"10px 20px 30px" (top h bottom), "10px 20px 30px 40px" (t r b l)
func expandBoxProperty(prefix, suffix, value string) []rawDeclaration {
	parts := strings.Fields(value)
	side := func(s, v string) rawDeclaration {
		return rawDeclaration{prefix + "-" + s + suffix, v}
	}

	switch len(parts) {
	case 1:
		return []rawDeclaration{
			side("top", parts[0]), side("right", parts[0]),
			side("bottom", parts[0]), side("left", parts[0]),
		}
	case 2:
		return []rawDeclaration{
			side("top", parts[0]), side("bottom", parts[0]),
			side("right", parts[1]), side("left", parts[1]),
		}
	case 3:
		return []rawDeclaration{
			side("top", parts[0]),
			side("right", parts[1]), side("left", parts[1]),
			side("bottom", parts[2]),
		}
	case 4:
		return []rawDeclaration{
			side("top", parts[0]), side("right", parts[1]),
			side("bottom", parts[2]), side("left", parts[3]),
		}
	}
	return nil
}
