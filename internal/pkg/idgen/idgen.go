// Package idgen assigns record identifiers.
//
// Identifiers are ULIDs: 26-character, lexicographically sortable strings.
// Within one process they are strictly increasing, so ordering by identifier
// matches assignment order even for records stamped in the same millisecond.
package idgen

import "github.com/oklog/ulid/v2"

// New returns a fresh identifier. Safe for concurrent use.
func New() string {
	return ulid.Make().String()
}
