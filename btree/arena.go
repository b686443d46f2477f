package btree

// arena owns every node of one map. Nodes are addressed by nodeID and
// released handles are reused.
type arena struct {
	nodes []*node
	free  []nodeID
}

func newArena() *arena {
	return &arena{}
}

// alloc returns a fresh, empty node with no parent.
func (a *arena) alloc(leaf bool) nodeID {
	n := &node{parent: noNode, leaf: leaf}

	if k := len(a.free); k > 0 {
		id := a.free[k-1]
		a.free = a.free[:k-1]
		a.nodes[id] = n
		return id
	}

	a.nodes = append(a.nodes, n)
	return nodeID(len(a.nodes) - 1)
}

// get returns the node for id.
func (a *arena) get(id nodeID) *node {
	n := a.nodes[id]
	assertf(n != nil, "node %d used after release", id)
	return n
}

// lookup returns the node for id, or nil if id is not allocated.
func (a *arena) lookup(id nodeID) *node {
	if id < 0 || int(id) >= len(a.nodes) {
		return nil
	}
	return a.nodes[id]
}

// release returns id to the free list. Children are not touched.
func (a *arena) release(id nodeID) {
	assertf(a.nodes[id] != nil, "node %d released twice", id)
	a.nodes[id] = nil
	a.free = append(a.free, id)
}

// releaseChildren recursively releases every node owned by id, leaving id
// itself allocated but with its links dangling.
func (a *arena) releaseChildren(id nodeID) {
	n := a.get(id)
	if n.leaf {
		return
	}
	for _, s := range n.slots {
		if s.isItem() || s.child == noNode {
			continue
		}
		a.releaseChildren(s.child)
		a.release(s.child)
	}
}

// live returns the number of allocated nodes.
func (a *arena) live() int {
	return len(a.nodes) - len(a.free)
}
