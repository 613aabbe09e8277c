package layout

import (
	"fmt"
	"io"
	"strings"

	"tessera/pkg/css"
)

// Dump writes an indented description of the box tree, one box per line,
// with its border box and edges.
func Dump(w io.Writer, root *Box) error {
	var err error
	root.Walk(func(b *Box, depth int) {
		if err != nil {
			return
		}
		bb := b.BorderBox()
		_, err = fmt.Fprintf(w, "%s%s %s x=%g y=%g w=%g h=%g margin=%s padding=%s border=%s\n",
			strings.Repeat("  ", depth), b.Kind, boxName(b),
			bb.X, bb.Y, bb.Width, bb.Height,
			edges(b.Margin), edges(b.Padding), edges(b.Border))
	})
	return err
}

func boxName(b *Box) string {
	if b.Kind == AnonymousBlock {
		return "<anonymous>"
	}
	return nodeName(b.Styled)
}

func edges(e EdgeSizes) string {
	return fmt.Sprintf("[%g %g %g %g]", e.Top, e.Right, e.Bottom, e.Left)
}

// nodeName returns a debug string for a styled node
func nodeName(styled *css.StyledNode) string {
	if styled == nil || styled.Node == nil {
		return "<nil>"
	}
	if styled.Node.IsText() {
		return fmt.Sprintf("TEXT(%q)", truncateString(styled.Node.Text, 20))
	}
	if styled.Node.Tag != "" {
		return "<" + styled.Node.Tag + ">"
	}
	return "<" + styled.Node.Kind.String() + ">"
}

// truncateString truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
