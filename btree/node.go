package btree

// LinkSize is the accounted size in bytes of one child link in a node.
const LinkSize = 8

// nodeID is a stable handle to a node in a map's arena.
type nodeID int32

// noNode marks an absent child or parent.
const noNode nodeID = -1

// slot is one position in a node: either a link to a child node or an item.
// Item slots carry the item bytes (key followed by value); link slots carry
// a child handle, or noNode in a leaf-level gap.
type slot struct {
	item  []byte
	child nodeID
}

func linkSlot(child nodeID) slot {
	return slot{child: child}
}

func itemSlot(item []byte) slot {
	return slot{item: item, child: noNode}
}

// isItem reports whether the slot holds an item.
func (s slot) isItem() bool {
	return s.item != nil
}

// node is the storage unit of the tree.
//
// Leaf nodes hold only item slots. Internal nodes hold
// link, item, link, ..., item, link: always one more link than items.
type node struct {
	slots []slot

	// parent is a non-owning back-reference, noNode for the topmost node.
	// Only split maintains it.
	parent nodeID

	leaf bool
}

// stride returns how many slots one item occupies together with its
// following link.
func (n *node) stride() int {
	if n.leaf {
		return 1
	}
	return 2
}

// firstItemIndex returns the slot index of item 0.
func (n *node) firstItemIndex() int {
	if n.leaf {
		return 0
	}
	return 1
}

// itemCount returns the number of items held by the node.
func (n *node) itemCount() int {
	if n.leaf {
		return len(n.slots)
	}
	assertf(len(n.slots) >= 3, "internal node has %d slots, need at least 3", len(n.slots))
	return len(n.slots) / 2
}

// linkCount returns the number of link slots held by the node.
func (n *node) linkCount() int {
	if n.leaf {
		return 0
	}
	return len(n.slots) - n.itemCount()
}

// byteLen returns the accounted byte length of the node's buffer.
func (n *node) byteLen(itemSize int) int {
	return n.itemCount()*itemSize + n.linkCount()*LinkSize
}
