// Package logging provides structured logging for tuplemap.
package logging

import (
	"github.com/google/uuid"
)

// InstanceIDField is the field name under which WithInstanceID records the ID.
const InstanceIDField = "map_id"

// NewInstanceID returns a random identifier for a long-lived object whose log
// lines should be correlated, such as a single map.
func NewInstanceID() string {
	return uuid.NewString()
}

// WithInstanceID returns l decorated with a fresh instance ID along with the
// ID itself.
func WithInstanceID(l Logger) (Logger, string) {
	id := NewInstanceID()
	return l.WithFields(InstanceIDField, id), id
}
