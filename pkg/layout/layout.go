package layout

import (
	"fmt"

	"tessera/pkg/css"
)

// BuildTree converts a styled tree into an unpositioned box tree. Children
// with display: none are omitted along with their subtrees. A hidden root
// panics with ErrHiddenRoot.
func BuildTree(styled *css.StyledNode) *Box {
	var root *Box
	switch styled.Display() {
	case css.DisplayBlock:
		root = newBox(BlockBox, styled)
	case css.DisplayInline:
		root = newBox(InlineBox, styled)
	case css.DisplayNone:
		panic(fmt.Errorf("%w (%s)", ErrHiddenRoot, nodeName(styled)))
	}

	for _, child := range styled.Children {
		switch child.Display() {
		case css.DisplayBlock:
			root.Children = append(root.Children, BuildTree(child))
		case css.DisplayInline:
			container := root.inlineContainer()
			container.Children = append(container.Children, BuildTree(child))
		case css.DisplayNone:
			// skipped
		}
	}
	return root
}

// inlineContainer returns the box that receives a new inline child. Inline
// and anonymous boxes hold inline children directly. A block reuses its
// trailing anonymous block or opens a new one, so consecutive inline
// children share one wrapper.
func (b *Box) inlineContainer() *Box {
	switch b.Kind {
	case InlineBox, AnonymousBlock:
		return b
	case BlockBox:
		if n := len(b.Children); n > 0 && b.Children[n-1].Kind == AnonymousBlock {
			return b.Children[n-1]
		}
		anon := newBox(AnonymousBlock, nil)
		b.Children = append(b.Children, anon)
		return anon
	}
	panic(fmt.Sprintf("layout: unhandled box kind %v", b.Kind))
}

// LayoutTree builds the box tree for root and lays it out inside the
// containing block. The containing block's content height is reset first;
// it serves as the vertical cursor for the root.
func LayoutTree(root *css.StyledNode, containing Dimensions) *Box {
	containing.Content.Height = 0

	box := BuildTree(root)
	box.Layout(containing)
	return box
}
