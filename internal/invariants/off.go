//go:build !invariants && !race

package invariants

// Enabled is true when the binary was built with the invariants or race tag.
const Enabled = false
