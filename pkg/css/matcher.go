package css

import (
	"sort"

	"tessera/pkg/html"
)

// MatchesSelector reports whether a selector matches an element. Any one
// matching fragment is enough: the element kind, the id, or a single class
// shared with the element. This is a union of the fragments rather than
// the conjunction a browser applies, so "div#x" matches <span id="x">.
// Text nodes never match.
func MatchesSelector(node *html.Node, sel Selector) bool {
	if node.IsText() {
		return false
	}
	if sel.Element != html.KindUndefined && sel.Element == node.Kind {
		return true
	}
	if sel.ID != "" && sel.ID == node.ID {
		return true
	}
	for _, class := range sel.Classes {
		if node.HasClass(class) {
			return true
		}
	}
	return false
}

// MatchedBlock pairs a block with the specificity of the selector that
// matched it.
type MatchedBlock struct {
	Specificity Specificity
	Block       *Block
}

// matchBlock returns the specificity of the first selector in the block
// that matches the node.
func matchBlock(node *html.Node, block *Block) (Specificity, bool) {
	for _, sel := range block.Selectors {
		if MatchesSelector(node, sel) {
			return sel.Specificity(), true
		}
	}
	return Specificity{}, false
}

// FindMatchingBlocks returns every block with a matching selector, sorted by
// ascending specificity. Equal specificities keep stylesheet order.
func FindMatchingBlocks(node *html.Node, sheet *Stylesheet) []MatchedBlock {
	matches := make([]MatchedBlock, 0)
	if sheet == nil {
		return matches
	}

	for i := range sheet.Blocks {
		if sp, ok := matchBlock(node, &sheet.Blocks[i]); ok {
			matches = append(matches, MatchedBlock{Specificity: sp, Block: &sheet.Blocks[i]})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Specificity.Less(matches[j].Specificity)
	})
	return matches
}
