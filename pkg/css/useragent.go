package css

// userAgentCSS gives structural elements block display. Everything else
// keeps the inline default.
const userAgentCSS = `
html, body, div, p, h1, h2, h3, h4 { display: block; }
h1 { font-size: 32px; }
h2 { font-size: 24px; }
h3 { font-size: 19px; }
h4 { font-size: 16px; }
`

// UserAgentStylesheet returns the default sheet. Its blocks use element
// selectors only, so author rules of equal or higher specificity placed
// after it take precedence.
func UserAgentStylesheet() *Stylesheet {
	return MustParseStylesheet(userAgentCSS)
}

// WithUserAgent returns a new sheet with the user-agent blocks ahead of
// the author blocks.
func WithUserAgent(author *Stylesheet) *Stylesheet {
	sheet := UserAgentStylesheet()
	sheet.Append(author)
	return sheet
}
