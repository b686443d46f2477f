package btree

import (
	"github.com/KilimcininKorOglu/tuplemap/internal/invariants"
)

// findInNode searches key in the current node only.
//
// Afterwards the cursor is on the matching item, or on the link slot
// immediately greater than key, ready for descent. An empty node leaves the
// cursor on its only link position.
func (c *Cursor) findInNode(key Key) {
	n := c.n()
	count := n.itemCount()
	if count == 0 {
		assertf(n.parent == noNode && n.leaf, "empty non-root node %d", c.node)
		c.index = 0
		c.isItem = false
		return
	}

	c.first()
	low := c.index
	res := c.compare(key)
	if res > 0 && count > 1 {
		c.last()
		high := c.index
		res = c.compare(key)
		if res < 0 && count > 2 {
			// low < key < high; bisect until they are neighbours.
			for high-low > n.stride() {
				c.mid(low, high)
				res = c.compare(key)
				if res < 0 {
					high = c.index
				} else if res > 0 {
					low = c.index
				} else {
					break
				}
			}
		}
	}

	if res > 0 {
		c.advance()
	} else if res < 0 {
		c.retreat()
	}
	assertf(c.isItem == (res == 0), "findInNode left cursor on wrong slot kind")
}

// find searches key from the current node downwards. The cursor ends on the
// matching item, or on the empty leaf-level link where key would be inserted.
func (c *Cursor) find(key Key) {
	for {
		c.findInNode(key)
		child := c.link()
		if child == noNode {
			return
		}
		if invariants.Enabled {
			parent := c.m.arena.get(child).parent
			assertf(parent == c.node, "node %d has parent %d, linked from %d", child, parent, c.node)
		}
		c.load(child)
	}
}
