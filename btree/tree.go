package btree

import (
	"github.com/cockroachdb/errors"

	"github.com/KilimcininKorOglu/tuplemap/internal/logging"
)

// Map is an ordered map from fixed-width integer tuples to fixed-size
// values, stored in a B-tree.
//
// A Map is not safe for concurrent use. Cursors returned by its methods are
// invalidated by any later Insert, Deserialize, Swap or Clear.
type Map struct {
	opts     Options
	itemSize int
	arena    *arena
	root     nodeID
	log      logging.Logger
	id       string
}

// New creates an empty map for keys of keyWidth elements and values of
// valueWidth bytes, using default options otherwise.
func New(keyWidth, valueWidth int) (*Map, error) {
	return NewWithOptions(DefaultOptions(keyWidth, valueWidth))
}

// NewWithOptions creates an empty map with the given options.
func NewWithOptions(opts Options) (*Map, error) {
	if opts.MaxNodeSize == 0 {
		opts.MaxNodeSize = DefaultMaxNodeSize
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	log, id := logging.WithInstanceID(opts.Logger)
	m := &Map{
		opts:     opts,
		itemSize: opts.ItemSize(),
		arena:    newArena(),
		log:      log,
		id:       id,
	}
	m.root = m.arena.alloc(true)

	log.Debug("map created",
		"key_width", opts.KeyWidth,
		"value_width", opts.ValueWidth,
		"max_node_size", opts.MaxNodeSize,
	)
	return m, nil
}

// ID returns the instance ID attached to the map's log entries.
func (m *Map) ID() string {
	return m.id
}

// KeyWidth returns the number of elements in every key.
func (m *Map) KeyWidth() int {
	return m.opts.KeyWidth
}

// ValueWidth returns the size of every value in bytes.
func (m *Map) ValueWidth() int {
	return m.opts.ValueWidth
}

// ItemSize returns the size of one stored key/value item in bytes.
func (m *Map) ItemSize() int {
	return m.itemSize
}

func (m *Map) checkKey(key Key) error {
	if len(key) != m.opts.KeyWidth {
		return errors.Wrapf(ErrInvalidKey, "got %d elements, want %d", len(key), m.opts.KeyWidth)
	}
	return nil
}

// Insert adds key with a zero-filled value if it is not present.
// It returns whether a new item was created and a cursor on the item for
// key, new or existing.
func (m *Map) Insert(key Key) (bool, *Cursor, error) {
	if err := m.checkKey(key); err != nil {
		return false, nil, err
	}

	c := m.Begin()
	c.find(key)
	if c.isItem {
		return false, c, nil
	}
	c.insert(key)
	return true, c, nil
}

// Find looks up key. The cursor is on the item when found; otherwise it is
// on the leaf-level link where key would be inserted, and Next or Prev
// step to its neighbours.
func (m *Map) Find(key Key) (*Cursor, bool, error) {
	if err := m.checkKey(key); err != nil {
		return nil, false, err
	}

	c := m.Begin()
	c.find(key)
	return c, c.isItem, nil
}

// FindPrevious returns a cursor on key if present, otherwise on the
// greatest key less than key. It reports false when no such item exists,
// including on an empty map.
func (m *Map) FindPrevious(key Key) (*Cursor, bool, error) {
	c, found, err := m.Find(key)
	if err != nil || found {
		return c, found, err
	}
	if c.n().itemCount() == 0 {
		c.load(m.root)
		return c, false, nil
	}
	return c, c.Prev(), nil
}

// Size returns the number of items in the map. It walks the whole tree.
func (m *Map) Size() int {
	return m.Begin().size()
}

// Begin returns a cursor before the first item; Next moves it to the
// smallest key.
func (m *Map) Begin() *Cursor {
	return newCursor(m, m.root)
}

// End returns a cursor after the last item; Prev moves it to the largest
// key.
func (m *Map) End() *Cursor {
	c := &Cursor{m: m}
	c.loadEnd(m.root)
	return c
}

// First returns a cursor on the smallest key, or false if the map is empty.
func (m *Map) First() (*Cursor, bool) {
	c := m.Begin()
	return c, c.Next()
}

// Last returns a cursor on the largest key, or false if the map is empty.
func (m *Map) Last() (*Cursor, bool) {
	c := m.End()
	return c, c.Prev()
}

// Swap exchanges the contents of m and other in constant time. Both maps
// must have the same key width, item size and maximum node size.
func (m *Map) Swap(other *Map) error {
	if m.opts.KeyWidth != other.opts.KeyWidth || m.itemSize != other.itemSize ||
		m.opts.MaxNodeSize != other.opts.MaxNodeSize {
		return errors.Wrapf(ErrIncompatibleMaps, "key width %d/%d, item size %d/%d, max node size %d/%d",
			m.opts.KeyWidth, other.opts.KeyWidth, m.itemSize, other.itemSize,
			m.opts.MaxNodeSize, other.opts.MaxNodeSize)
	}
	m.arena, other.arena = other.arena, m.arena
	m.root, other.root = other.root, m.root
	return nil
}

// Clear releases every node below the topmost one and leaves the map empty.
func (m *Map) Clear() {
	m.arena.releaseChildren(m.root)
	root := m.arena.get(m.root)
	root.slots = nil
	root.leaf = true
	m.log.Debug("map cleared")
}
