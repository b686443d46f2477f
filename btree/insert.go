package btree

import (
	"github.com/KilimcininKorOglu/tuplemap/internal/logging"
)

// insert creates an item for key at the cursor, which must be on a link
// slot with no child attached (the position find leaves for a missing key).
// The value is zero-filled. It does not check for duplicates.
//
// The cursor ends on the new item. If the node overflowed it is split and
// the item is found again from the top, since splitting moves items.
func (c *Cursor) insert(key Key) {
	assertf(!c.isItem, "insert on an item slot")
	assertf(c.link() == noNode, "insert on a link that has a child")

	n := c.n()
	if n.itemCount() == 0 {
		assertf(n.parent == noNode && n.leaf, "insert into empty non-root node %d", c.node)
	}

	item := make([]byte, c.m.itemSize)
	encodeKey(item, key)

	if n.leaf {
		n.slots = insertSlots(n.slots, c.index, itemSlot(item))
	} else {
		// The existing empty link stays left of the item; a new empty link
		// goes to its right.
		c.index++
		n.slots = insertSlots(n.slots, c.index, itemSlot(item), linkSlot(noNode))
	}
	c.isItem = true

	if n.byteLen(c.m.itemSize) > c.m.opts.MaxNodeSize {
		c.split()
		c.load(c.m.root)
		c.find(key)
	}
	assertf(c.HasValue(), "insert did not end on an item")
}

// split splits the cursor's node while it exceeds the maximum node size,
// cascading upward through every parent that overflows as a result. The
// cursor is left on the last node examined.
func (c *Cursor) split() {
	for c.n().byteLen(c.m.itemSize) > c.m.opts.MaxNodeSize {
		c.splitNode()
	}
}

// splitNode splits the cursor's node around its median item into two new
// children. A parentless node becomes the new topmost node holding just
// the median; otherwise the median and the two children replace the link
// to the node in its parent and the node is released. The cursor is left
// at the before-first position of the parent.
func (c *Cursor) splitNode() (left, right nodeID) {
	id := c.node
	n := c.n()
	count := n.itemCount()

	c.first()
	low := c.index
	c.last()
	c.mid(low, c.index)
	m := c.index

	old := n.slots
	n.slots = nil
	median := old[m].item

	left = c.m.arena.alloc(n.leaf)
	right = c.m.arena.alloc(n.leaf)
	leftNode := c.m.arena.get(left)
	rightNode := c.m.arena.get(right)
	leftNode.slots = append(make([]slot, 0, m), old[:m]...)
	rightNode.slots = append(make([]slot, 0, len(old)-m-1), old[m+1:]...)

	var parent nodeID
	newRoot := n.parent == noNode
	if newRoot {
		n.leaf = false
		n.slots = []slot{linkSlot(left), itemSlot(median), linkSlot(right)}
		parent = id
	} else {
		parent = n.parent
		c.load(parent)
		c.findInNode(decodeKey(median, c.m.opts.KeyWidth))
		assertf(c.link() == id, "parent %d does not link split node %d", parent, id)

		p := c.n()
		p.slots[c.index] = linkSlot(left)
		p.slots = insertSlots(p.slots, c.index+1, itemSlot(median), linkSlot(right))
		c.m.arena.release(id)
	}

	leftNode.parent = parent
	rightNode.parent = parent
	c.m.adopt(left)
	c.m.adopt(right)

	if c.m.log.Enabled(logging.LevelDebug) {
		c.m.log.Debug("node split",
			"node", id,
			"items", count,
			"left", left,
			"right", right,
			"new_root", newRoot,
		)
	}

	c.load(parent)
	return left, right
}

// adopt points the parent back-reference of every child of id at id.
func (m *Map) adopt(id nodeID) {
	n := m.arena.get(id)
	if n.leaf {
		return
	}
	for _, s := range n.slots {
		if !s.isItem() && s.child != noNode {
			m.arena.get(s.child).parent = id
		}
	}
}

// insertSlots inserts vals into slots at index i.
func insertSlots(slots []slot, i int, vals ...slot) []slot {
	slots = append(slots, vals...)
	copy(slots[i+len(vals):], slots[i:])
	copy(slots[i:], vals)
	return slots
}
