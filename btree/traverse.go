package btree

// Next moves the cursor to the next item in key order and reports whether
// one exists. From a link position it moves to the first item after that
// link. When the last item has been passed the cursor rests after the end
// of the tree, where Prev moves back to the last item.
func (c *Cursor) Next() bool {
	if c.n().itemCount() == 0 {
		return false
	}
	if !c.isItem {
		// Step back onto the item left of the link (or the before-first
		// position) so the regular successor walk applies.
		c.retreat()
	}
	if c.index >= len(c.n().slots) {
		return false
	}

	var departed Key
	if c.HasValue() {
		departed = c.Key()
	}

	// Onto the link right of the current item; descend while it has a child.
	for {
		c.advance()
		child := c.link()
		if child == noNode {
			break
		}
		c.load(child)
	}
	if c.advance() {
		return true
	}

	// Past the end of this node: climb until some ancestor has an item to
	// the right of the link we came up through.
	for parent := c.n().parent; parent != noNode; parent = c.n().parent {
		assertf(departed != nil, "ascending from node %d without a key", c.node)
		from := c.node
		c.load(parent)
		c.findInNode(departed)
		assertf(c.link() == from, "re-located link in node %d does not lead to %d", c.node, from)
		if c.advance() {
			return true
		}
	}
	return false
}

// Prev moves the cursor to the previous item in key order and reports
// whether one exists. From a link position it moves to the last item before
// that link. When the first item has been passed the cursor rests before
// the start of the tree, where Next moves back to the first item.
func (c *Cursor) Prev() bool {
	if !c.isItem {
		// Step onto the item right of the link (or the after-last position).
		c.advance()
	}
	if c.index < 0 {
		return false
	}

	var departed Key
	if c.HasValue() {
		departed = c.Key()
	}

	// Onto the link left of the current item; descend while it has a child.
	for {
		c.retreat()
		child := c.link()
		if child == noNode {
			break
		}
		c.loadEnd(child)
	}
	if c.retreat() {
		return true
	}

	for parent := c.n().parent; parent != noNode; parent = c.n().parent {
		assertf(departed != nil, "ascending from node %d without a key", c.node)
		from := c.node
		c.load(parent)
		c.findInNode(departed)
		assertf(c.link() == from, "re-located link in node %d does not lead to %d", c.node, from)
		if c.retreat() {
			return true
		}
	}
	return false
}
