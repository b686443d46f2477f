package btree

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// KeyElemSize is the encoded size of one key element in bytes.
const KeyElemSize = 4

// Key is a fixed-width tuple of signed integers. Keys are ordered
// lexicographically.
type Key []int32

// String renders the key as "(a,b,c)".
func (k Key) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range k {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", v)
	}
	b.WriteByte(')')
	return b.String()
}

// CompareKeys compares two keys of equal width lexicographically.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
func CompareKeys(a, b Key) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// compareKeyItem compares key with the key encoded at the front of item,
// with the same result as CompareKeys(key, decodeKey(item, len(key))).
func compareKeyItem(key Key, item []byte) int {
	for i, v := range key {
		w := int32(binary.LittleEndian.Uint32(item[i*KeyElemSize:]))
		if v != w {
			if v < w {
				return -1
			}
			return 1
		}
	}
	return 0
}

// encodeKey writes key into the front of item.
func encodeKey(item []byte, key Key) {
	for i, v := range key {
		binary.LittleEndian.PutUint32(item[i*KeyElemSize:], uint32(v))
	}
}

// decodeKey reads a width-element key from the front of item.
func decodeKey(item []byte, width int) Key {
	key := make(Key, width)
	for i := range key {
		key[i] = int32(binary.LittleEndian.Uint32(item[i*KeyElemSize:]))
	}
	return key
}
