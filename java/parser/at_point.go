package parser

// NodeAt returns the innermost node of root whose span contains offset,
// or nil when offset lies outside root.
func NodeAt(root *Node, offset int) *Node {
	if root == nil || !root.Span.Contains(offset) {
		return nil
	}
	for _, child := range root.Children() {
		if found := NodeAt(child, offset); found != nil {
			return found
		}
	}
	return root
}

// Path returns the nodes from root down to the innermost node containing
// offset.
func Path(root *Node, offset int) []*Node {
	var path []*Node
	for n := root; n != nil; {
		if !n.Span.Contains(offset) {
			break
		}
		path = append(path, n)
		var next *Node
		for _, child := range n.Children() {
			if child.Span.Contains(offset) {
				next = child
				break
			}
		}
		n = next
	}
	return path
}
