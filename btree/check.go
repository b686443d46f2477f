package btree

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// TreeStats holds statistics about the tree shape.
type TreeStats struct {
	Height        int
	InternalNodes int
	LeafNodes     int
	Items         int
	ArenaNodes    int
}

// Stats walks the tree and returns its shape statistics.
func (m *Map) Stats() TreeStats {
	stats := TreeStats{ArenaNodes: m.arena.live()}
	m.walk(m.root, 1, func(n *node, depth int) {
		if depth > stats.Height {
			stats.Height = depth
		}
		if n.leaf {
			stats.LeafNodes++
		} else {
			stats.InternalNodes++
		}
		stats.Items += n.itemCount()
	})
	return stats
}

func (m *Map) walk(id nodeID, depth int, fn func(n *node, depth int)) {
	n := m.arena.get(id)
	fn(n, depth)
	if n.leaf {
		return
	}
	for _, s := range n.slots {
		if !s.isItem() && s.child != noNode {
			m.walk(s.child, depth+1, fn)
		}
	}
}

// Check verifies the structural invariants of the tree and returns the
// first violation found:
//
//   - leaf nodes hold only items; internal nodes alternate link, item, ...,
//     link and every link has a child
//   - only the topmost node may be empty
//   - every node fits in the maximum node size
//   - every child's parent back-reference names the node linking it
//   - all leaves are at the same depth
//   - keys are strictly ascending in order
func (m *Map) Check() error {
	root := m.arena.get(m.root)
	if root.parent != noNode {
		return errors.AssertionFailedf("topmost node %d has parent %d", m.root, root.parent)
	}

	leafDepth := -1
	var prev Key
	var check func(id nodeID, depth int) error
	check = func(id nodeID, depth int) error {
		n := m.arena.lookup(id)
		if n == nil {
			return errors.AssertionFailedf("node %d is linked but not allocated", id)
		}
		if id != m.root && len(n.slots) == 0 {
			return errors.AssertionFailedf("non-root node %d is empty", id)
		}

		if n.leaf {
			if leafDepth == -1 {
				leafDepth = depth
			} else if depth != leafDepth {
				return errors.AssertionFailedf("leaf %d at depth %d, other leaves at %d", id, depth, leafDepth)
			}
		} else if len(n.slots) < 3 || len(n.slots)%2 == 0 {
			return errors.AssertionFailedf("internal node %d has %d slots", id, len(n.slots))
		}
		if size := n.byteLen(m.itemSize); size > m.opts.MaxNodeSize {
			return errors.AssertionFailedf("node %d is %d bytes, max %d", id, size, m.opts.MaxNodeSize)
		}

		for i, s := range n.slots {
			wantItem := n.leaf || i%2 == 1
			if s.isItem() != wantItem {
				return errors.AssertionFailedf("node %d slot %d: item=%t, want %t", id, i, s.isItem(), wantItem)
			}

			if s.isItem() {
				if len(s.item) != m.itemSize {
					return errors.AssertionFailedf("node %d slot %d: item is %d bytes, want %d",
						id, i, len(s.item), m.itemSize)
				}
				if prev != nil && compareKeyItem(prev, s.item) >= 0 {
					return errors.AssertionFailedf("node %d slot %d: key %s does not follow %s",
						id, i, decodeKey(s.item, m.opts.KeyWidth), prev)
				}
				prev = decodeKey(s.item, m.opts.KeyWidth)
				continue
			}

			if s.child == noNode {
				return errors.AssertionFailedf("node %d slot %d: link has no child", id, i)
			}
			child := m.arena.lookup(s.child)
			if child == nil {
				return errors.AssertionFailedf("node %d slot %d: child %d not allocated", id, i, s.child)
			}
			if child.parent != id {
				return errors.AssertionFailedf("node %d has parent %d, linked from %d", s.child, child.parent, id)
			}
			if err := check(s.child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	return check(m.root, 1)
}

// Dump writes one line per node, indented by depth. Links print as "*"
// (child) or "-" (empty), items as their key elements in braces:
//
//	* {3 1} * {7 0} *
//	  {1 0} {2 5}
func (m *Map) Dump(w io.Writer) error {
	var err error
	m.walk(m.root, 0, func(n *node, depth int) {
		if err != nil {
			return
		}
		var b strings.Builder
		b.WriteString(strings.Repeat("  ", depth))
		for i, s := range n.slots {
			if i > 0 {
				b.WriteByte(' ')
			}
			switch {
			case s.isItem():
				b.WriteByte('{')
				for j, v := range decodeKey(s.item, m.opts.KeyWidth) {
					if j > 0 {
						b.WriteByte(' ')
					}
					fmt.Fprintf(&b, "%d", v)
				}
				b.WriteByte('}')
			case s.child == noNode:
				b.WriteByte('-')
			default:
				b.WriteByte('*')
			}
		}
		b.WriteByte('\n')
		_, err = io.WriteString(w, b.String())
	})
	return errors.Wrap(err, "dumping tree")
}
