package btree

import (
	"github.com/cockroachdb/errors"

	"github.com/KilimcininKorOglu/tuplemap/internal/invariants"
)

// Map errors.
var (
	ErrInvalidKey       = errors.New("key width does not match map")
	ErrInvalidOptions   = errors.New("invalid map options")
	ErrIncompatibleMaps = errors.New("maps have different key width, item size or node size")
	ErrNoFloatField     = errors.New("value is too small to hold a float64")
)

// Stream errors.
var (
	ErrMapNotEmpty      = errors.New("cannot deserialize into a non-empty map")
	ErrCorruptStream    = errors.New("corrupt or truncated stream")
	ErrKeyWidthMismatch = errors.New("stream key width does not match map")
	ErrItemSizeMismatch = errors.New("stream item size does not match map")
	ErrUnsortedStream   = errors.New("stream items are not in strictly ascending key order")
)

// assertf panics with an assertion failure when invariants are enabled and
// cond does not hold.
func assertf(cond bool, format string, args ...interface{}) {
	if invariants.Enabled && !cond {
		panic(errors.AssertionFailedf(format, args...))
	}
}
