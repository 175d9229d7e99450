package epub

// tocEntry is one node of the navigation tree, folded from the flat
// registration sequence.
type tocEntry struct {
	title    string
	href     string
	children []*tocEntry
}

// buildTocTree nests the flat content sequence by level: an entry of level
// L+1 nests under the nearest preceding entry of level <= L. A jump deeper
// than one level is clamped to the next child depth.
func buildTocTree(contents []Content) []*tocEntry {
	var roots []*tocEntry
	var stack []*tocEntry // stack[d] = last entry seen at depth d

	for _, c := range contents {
		entry := &tocEntry{title: c.Title, href: c.Path}

		depth := c.Level
		if depth > len(stack) {
			depth = len(stack)
		}
		stack = stack[:depth]

		if len(stack) == 0 {
			roots = append(roots, entry)
		} else {
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, entry)
		}
		stack = append(stack, entry)
	}

	return roots
}

// maxDepth returns the deepest nesting in the tree, at least 1 for a
// non-empty tree.
func maxDepth(entries []*tocEntry) int {
	depth := 0
	for _, e := range entries {
		d := 1 + maxDepth(e.children)
		if d > depth {
			depth = d
		}
	}
	return depth
}
