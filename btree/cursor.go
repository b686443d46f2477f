package btree

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
)

// FloatSize is the size of the float64 field at the front of a value.
const FloatSize = 8

// Cursor is a position in a Map: a node, a slot index within it, and whether
// that slot is an item or a link.
//
// A cursor is only valid until the next mutation of its map, except for the
// cursor returned by that mutation. Item storage may move on every insert.
type Cursor struct {
	m      *Map
	node   nodeID
	index  int
	isItem bool
}

// newCursor returns a cursor at the before-first position of id.
func newCursor(m *Map, id nodeID) *Cursor {
	c := &Cursor{m: m}
	c.load(id)
	return c
}

// Clone returns an independent copy of the cursor.
func (c *Cursor) Clone() *Cursor {
	cp := *c
	return &cp
}

// HasValue reports whether the cursor is positioned on an item.
func (c *Cursor) HasValue() bool {
	return c.isItem && c.index >= 0 && c.index < len(c.n().slots)
}

// Key returns a copy of the key under the cursor, or nil if the cursor is
// not on an item.
func (c *Cursor) Key() Key {
	if !c.HasValue() {
		return nil
	}
	return decodeKey(c.item(), c.m.opts.KeyWidth)
}

// Value returns the value bytes under the cursor, or nil if the cursor is
// not on an item. The slice aliases the map's storage: writes through it
// update the stored value, and it must not be retained across a mutation.
func (c *Cursor) Value() []byte {
	if !c.HasValue() {
		return nil
	}
	return c.item()[c.m.opts.KeyWidth*KeyElemSize:]
}

// Float returns the float64 stored in the first 8 bytes of the value.
// It returns 0 when the cursor is not on an item and panics when the map's
// value width is below FloatSize.
func (c *Cursor) Float() float64 {
	v := c.floatField()
	if v == nil {
		return 0
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(v))
}

// SetFloat stores f in the first 8 bytes of the value. It is a no-op when
// the cursor is not on an item and panics when the map's value width is
// below FloatSize.
func (c *Cursor) SetFloat(f float64) {
	v := c.floatField()
	if v == nil {
		return
	}
	binary.LittleEndian.PutUint64(v, math.Float64bits(f))
}

func (c *Cursor) floatField() []byte {
	if c.m.opts.ValueWidth < FloatSize {
		panic(errors.Wrapf(ErrNoFloatField, "value width %d", c.m.opts.ValueWidth))
	}
	v := c.Value()
	if v == nil {
		return nil
	}
	return v[:FloatSize]
}

func (c *Cursor) n() *node {
	return c.m.arena.get(c.node)
}

func (c *Cursor) item() []byte {
	assertf(c.HasValue(), "cursor at %d:%d is not on an item", c.node, c.index)
	return c.n().slots[c.index].item
}

// compare compares key with the item under the cursor.
func (c *Cursor) compare(key Key) int {
	return compareKeyItem(key, c.item())
}

// load moves the cursor to the before-first position of id.
func (c *Cursor) load(id nodeID) {
	c.node = id
	c.isItem = true
	c.index = -1
}

// loadEnd moves the cursor to the after-last position of id.
func (c *Cursor) loadEnd(id nodeID) {
	c.node = id
	c.isItem = true
	c.index = len(c.n().slots)
}

// first moves to the first item of the current node.
func (c *Cursor) first() {
	n := c.n()
	assertf(n.itemCount() > 0, "first on empty node %d", c.node)
	c.index = n.firstItemIndex()
	c.isItem = true
}

// last moves to the last item of the current node.
func (c *Cursor) last() {
	n := c.n()
	assertf(n.itemCount() > 0, "last on empty node %d", c.node)
	c.index = n.firstItemIndex() + (n.itemCount()-1)*n.stride()
	c.isItem = true
}

// mid moves to the item roughly halfway between the item slots low and high
// of the current node.
func (c *Cursor) mid(low, high int) {
	n := c.n()
	assertf(n.itemCount() > 2, "mid on node %d with %d items", c.node, n.itemCount())
	assertf(low < high, "mid with low %d >= high %d", low, high)
	dist := (high - low) / n.stride()
	assertf(dist > 1, "mid between adjacent items %d and %d", low, high)
	c.index = low + (dist/2)*n.stride()
	c.isItem = true
}

// advance steps to the next position, alternating between items and links.
// It returns false when it steps past the last item.
func (c *Cursor) advance() bool {
	n := c.n()
	if c.isItem || !n.leaf {
		c.index++
	}
	c.isItem = !c.isItem
	return !(c.isItem && c.index >= len(n.slots))
}

// retreat steps to the previous position, alternating between items and
// links. It returns false when it steps before the first item.
func (c *Cursor) retreat() bool {
	n := c.n()
	if !c.isItem || !n.leaf {
		c.index--
	}
	c.isItem = !c.isItem
	return !(c.isItem && c.index < 0)
}

// link returns the child under the cursor, or noNode when the cursor is on
// an item, in a leaf, or on an empty link.
func (c *Cursor) link() nodeID {
	n := c.n()
	if n.leaf || c.isItem || c.index < 0 || c.index >= len(n.slots) {
		return noNode
	}
	return n.slots[c.index].child
}

// size returns the number of items in the subtree rooted at the cursor's
// node. The cursor is left at that node's before-first position.
func (c *Cursor) size() int {
	root := c.node
	res := c.n().itemCount()
	if res > 0 {
		c.load(root)
		for c.advance() {
			if child := c.link(); child != noNode {
				sub := newCursor(c.m, child)
				res += sub.size()
			}
		}
	}
	c.load(root)
	return res
}
