package btree

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/cockroachdb/errors"
)

// Stream format constants.
const (
	// WordSize is the size of each header word. Words are little-endian
	// uint64 values.
	WordSize = 8

	// StreamHeaderSize is the size of the stream header:
	//   - Word 0: key width (elements)
	//   - Word 1: item count
	//   - Word 2: item size (bytes, key + value)
	StreamHeaderSize = 3 * WordSize
)

// Serialize writes every item to w in ascending key order, preceded by the
// stream header. Items are written as raw bytes with no delimiters.
func (m *Map) Serialize(w io.Writer) error {
	count := m.Size()

	var header [StreamHeaderSize]byte
	binary.LittleEndian.PutUint64(header[0:], uint64(m.opts.KeyWidth))
	binary.LittleEndian.PutUint64(header[WordSize:], uint64(count))
	binary.LittleEndian.PutUint64(header[2*WordSize:], uint64(m.itemSize))

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header[:]); err != nil {
		return errors.Wrap(err, "writing stream header")
	}

	written := 0
	c := m.Begin()
	for c.Next() {
		if _, err := bw.Write(c.item()); err != nil {
			return errors.Wrapf(err, "writing item %d", written)
		}
		written++
	}
	assertf(written == count, "serialized %d items, size reported %d", written, count)

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "flushing stream")
	}

	m.log.Info("map serialized", "items", count, "bytes", StreamHeaderSize+count*m.itemSize)
	return nil
}

// Deserialize loads a stream written by Serialize into m, which must be
// empty. The stream's key width and item size must match the map, and its
// items must be in strictly ascending key order. On error m is left empty.
//
// The loaded items are split into nodes no larger than the map's maximum
// node size, so the result is a regular tree rather than a single node.
func (m *Map) Deserialize(r io.Reader) error {
	if m.arena.get(m.root).itemCount() != 0 {
		return ErrMapNotEmpty
	}

	var header [StreamHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return errors.Mark(errors.Wrap(err, "reading stream header"), ErrCorruptStream)
	}
	keyWidth := binary.LittleEndian.Uint64(header[0:])
	count := binary.LittleEndian.Uint64(header[WordSize:])
	itemSize := binary.LittleEndian.Uint64(header[2*WordSize:])

	if keyWidth != uint64(m.opts.KeyWidth) {
		return errors.Wrapf(ErrKeyWidthMismatch, "stream %d, map %d", keyWidth, m.opts.KeyWidth)
	}
	if itemSize != uint64(m.itemSize) {
		return errors.Wrapf(ErrItemSizeMismatch, "stream %d, map %d", itemSize, m.itemSize)
	}
	if count > uint64(math.MaxInt32) {
		return errors.Wrapf(ErrCorruptStream, "item count %d out of range", count)
	}

	slots := make([]slot, 0, minInt(int(count), 1<<16))
	var prev Key
	for i := 0; i < int(count); i++ {
		item := make([]byte, m.itemSize)
		if _, err := io.ReadFull(r, item); err != nil {
			return errors.Mark(errors.Wrapf(err, "reading item %d of %d", i, count), ErrCorruptStream)
		}
		if prev != nil && compareKeyItem(prev, item) >= 0 {
			return errors.Wrapf(ErrUnsortedStream, "item %d %s does not follow %s",
				i, decodeKey(item, m.opts.KeyWidth), prev)
		}
		prev = decodeKey(item, m.opts.KeyWidth)
		slots = append(slots, itemSlot(item))
	}

	root := m.arena.get(m.root)
	root.slots = slots
	root.leaf = true
	splits := m.splitPass()

	m.log.Info("map deserialized", "items", count, "splits", splits)
	return nil
}

// splitPass splits every node above the maximum node size, working down
// from the topmost node, and returns the number of splits performed.
func (m *Map) splitPass() int {
	splits := 0
	c := m.Begin()
	pending := []nodeID{m.root}
	for len(pending) > 0 {
		id := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		// A queued node may since have been split away by a cascade.
		n := m.arena.lookup(id)
		if n == nil || n.byteLen(m.itemSize) <= m.opts.MaxNodeSize {
			continue
		}

		c.load(id)
		left, right := c.splitNode()
		splits++

		// The parent gained an item and may overflow in turn.
		for c.n().byteLen(m.itemSize) > m.opts.MaxNodeSize {
			l, r := c.splitNode()
			splits++
			pending = append(pending, l, r)
		}
		pending = append(pending, left, right)
	}

	m.log.Debug("split pass complete", "splits", splits, "nodes", m.arena.live())
	return splits
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
