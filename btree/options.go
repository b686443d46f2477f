package btree

import (
	"github.com/cockroachdb/errors"

	"github.com/KilimcininKorOglu/tuplemap/internal/logging"
)

// DefaultMaxNodeSize is the byte length above which a node is split.
const DefaultMaxNodeSize = 1024

// Options configures a Map. KeyWidth and ValueWidth are fixed for the map's
// lifetime.
type Options struct {
	// KeyWidth is the number of int32 elements in every key.
	KeyWidth int

	// ValueWidth is the size in bytes of the value stored with every key.
	// Values of at least 8 bytes expose their first 8 bytes as a float64.
	ValueWidth int

	// MaxNodeSize is the accounted byte length above which a node splits.
	// Default: DefaultMaxNodeSize.
	MaxNodeSize int

	// Logger receives split and persistence events.
	// Default: a no-op logger.
	Logger logging.Logger
}

// DefaultOptions returns the default options for the given key and value
// widths.
func DefaultOptions(keyWidth, valueWidth int) Options {
	return Options{
		KeyWidth:    keyWidth,
		ValueWidth:  valueWidth,
		MaxNodeSize: DefaultMaxNodeSize,
		Logger:      logging.NewNop(),
	}
}

// ItemSize returns the byte size of one key/value item.
func (o Options) ItemSize() int {
	return o.KeyWidth*KeyElemSize + o.ValueWidth
}

// MinNodeSize returns the smallest MaxNodeSize accepted for these widths.
// Any node larger than this holds at least three items, which a split needs
// to pick a median with a neighbour on each side.
func (o Options) MinNodeSize() int {
	return 2*o.ItemSize() + 3*LinkSize
}

// Validate checks the options for consistency.
func (o Options) Validate() error {
	if o.KeyWidth < 1 {
		return errors.Wrapf(ErrInvalidOptions, "key width %d, must be at least 1", o.KeyWidth)
	}
	if o.ValueWidth < 0 {
		return errors.Wrapf(ErrInvalidOptions, "value width %d, must not be negative", o.ValueWidth)
	}
	if o.MaxNodeSize < o.MinNodeSize() {
		return errors.Wrapf(ErrInvalidOptions, "max node size %d, must be at least %d for item size %d",
			o.MaxNodeSize, o.MinNodeSize(), o.ItemSize())
	}
	return nil
}
