// Package btree implements an in-memory ordered map keyed by fixed-width
// tuples of int32, stored in a B-tree with a byte-accounted node layout.
//
// # Overview
//
// Every key has the same number of elements and every value the same
// number of bytes, both fixed when the map is created. Keys are ordered
// lexicographically. The map provides:
//
//   - Insertion with node splitting on overflow
//   - Exact lookup and greatest-key-at-or-below lookup
//   - Ordered traversal in both directions with a Cursor
//   - A linear stream format for saving and loading
//
// # Node Layout
//
// Nodes live in a per-map arena and are addressed by stable handles. A node
// is a sequence of slots:
//
//   - Leaf nodes: item, item, ..., item
//   - Internal nodes: link, item, link, ..., item, link
//
// An item is the key encoded as little-endian int32 values followed by the
// value bytes. A node's size is accounted as items*ItemSize + links*LinkSize
// and a node larger than Options.MaxNodeSize is split around its median
// item. Each node keeps a back-reference to its parent, which cursors use to
// climb out of a node after reaching either end of it.
//
// # Usage
//
//	m, err := btree.New(2, 8) // keys of 2 elements, 8-byte values
//
//	created, c, err := m.Insert(btree.Key{1, 7})
//	c.SetFloat(3.5)
//
//	c, found, err := m.Find(btree.Key{1, 7})
//
//	c := m.Begin()
//	for c.Next() {
//	    fmt.Println(c.Key(), c.Float())
//	}
//
// # Stream Format
//
//	key width   uint64 little-endian
//	item count  uint64 little-endian
//	item size   uint64 little-endian
//	items       item count * item size bytes, ascending key order
//
// Loading validates the header against the map and the order of the
// items, then splits the loaded items into regular nodes.
//
// # Invariant Checking
//
// Build with the invariants tag to turn on internal consistency assertions.
// Map.Check verifies the whole structure on demand in any build.
package btree
