package css

import (
	"errors"
	"testing"
)

// TestErrorRecovery_InvalidSelectors verifies that rules with invalid selectors
// are skipped while valid rules are still parsed.
func TestErrorRecovery_InvalidSelectors(t *testing.T) {
	tests := []struct {
		name           string
		css            string
		expectedBlocks int
		description    string
	}{
		{
			name:           "selector starting with closing brace",
			css:            `} { color: red; } p { color: blue; }`,
			expectedBlocks: 1,
			description:    "rule with } selector skipped, p rule kept",
		},
		{
			name:           "selector starting with semicolon",
			css:            `{; color: red; } p { color: blue; }`,
			expectedBlocks: 1,
			description:    "rule with {; selector skipped, p rule kept",
		},
		{
			name:           "unbalanced bracket in selector",
			css:            `[} { color: red; } p { color: green; }`,
			expectedBlocks: 1,
			description:    "rule with [} selector skipped, p rule kept",
		},
		{
			name:           "descendant combinator",
			css:            `div p { color: red; } p { color: blue; }`,
			expectedBlocks: 1,
			description:    "combinators are unsupported",
		},
		{
			name:           "pseudo-class",
			css:            `a:hover { color: red; } a { color: blue; }`,
			expectedBlocks: 1,
			description:    "pseudo-classes are unsupported",
		},
		{
			name:           "one bad selector in a list keeps the rule",
			css:            `div > p, .note { color: red; }`,
			expectedBlocks: 1,
			description:    "the .note selector survives",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ss, err := ParseStylesheet(tt.css)
			if err != nil {
				t.Fatalf("ParseStylesheet returned error: %v", err)
			}
			if len(ss.Blocks) != tt.expectedBlocks {
				t.Errorf("%s: got %d blocks, want %d", tt.description, len(ss.Blocks), tt.expectedBlocks)
			}
			if len(ss.Dropped) == 0 {
				t.Errorf("%s: expected the bad selector to be reported", tt.description)
			}
			for _, d := range ss.Dropped {
				if !errors.Is(d, ErrUnsupportedSelector) {
					t.Errorf("unexpected dropped error %v", d)
				}
			}
		})
	}
}

// TestErrorRecovery_AtRules verifies that at-rules never produce blocks.
func TestErrorRecovery_AtRules(t *testing.T) {
	tests := []struct {
		name           string
		css            string
		expectedBlocks int
	}{
		{
			name:           "unknown at-rule with nested block",
			css:            `@three-dee { body { color: red; } } p { color: blue; }`,
			expectedBlocks: 1,
		},
		{
			name:           "multiple unknown at-rules",
			css:            `@foo { x: y; } @bar { a: b; } div { color: red; }`,
			expectedBlocks: 1,
		},
		{
			name:           "media rule is skipped",
			css:            `@media screen { p { color: red; } }`,
			expectedBlocks: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ss, err := ParseStylesheet(tt.css)
			if err != nil {
				t.Fatalf("ParseStylesheet returned error: %v", err)
			}
			if len(ss.Blocks) != tt.expectedBlocks {
				t.Errorf("got %d blocks, want %d", len(ss.Blocks), tt.expectedBlocks)
			}
		})
	}
}

// TestErrorRecovery_InvalidDeclarations verifies that malformed or unknown
// declarations within a valid rule are skipped while valid declarations are
// preserved.
func TestErrorRecovery_InvalidDeclarations(t *testing.T) {
	tests := []struct {
		name string
		css  string
	}{
		{"declaration without colon is skipped", `p { badstuff; color: red; }`},
		{"declaration with empty value is skipped", `p { bad: ; color: red; }`},
		{"unknown property is skipped", `p { float: left; color: red; }`},
		{"vendor property is skipped", `p { -webkit-thing: value; color: red; }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ss, err := ParseStylesheet(tt.css)
			if err != nil {
				t.Fatalf("ParseStylesheet returned error: %v", err)
			}
			if len(ss.Blocks) != 1 {
				t.Fatalf("expected 1 block, got %d", len(ss.Blocks))
			}
			decls := ss.Blocks[0].Declarations
			if len(decls) != 1 || decls[0].Property != PropColor {
				t.Errorf("expected only color to survive, got %+v", decls)
			}
		})
	}
}

// TestErrorRecovery_UnclosedBlocks verifies that trailing content without a
// closing brace is discarded.
func TestErrorRecovery_UnclosedBlocks(t *testing.T) {
	tests := []struct {
		name           string
		css            string
		expectedBlocks int
	}{
		{"unclosed block at end", `p { color: red; } h1 { font-size: 20px`, 1},
		{"all blocks properly closed", `p { color: red; } h1 { font-size: 20px; }`, 2},
		{"extra closing brace recovers", `} p { color: red; }`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ss, err := ParseStylesheet(tt.css)
			if err != nil {
				t.Fatalf("ParseStylesheet returned error: %v", err)
			}
			if len(ss.Blocks) != tt.expectedBlocks {
				t.Errorf("got %d blocks, want %d", len(ss.Blocks), tt.expectedBlocks)
			}
		})
	}
}
