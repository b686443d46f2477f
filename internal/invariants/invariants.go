// Package invariants exposes a compile-time switch for expensive
// consistency assertions inside the tree.
//
// Build with -tags invariants to enable them:
//
//	go test -tags invariants ./...
package invariants
