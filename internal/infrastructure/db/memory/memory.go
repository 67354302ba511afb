// Package memory provides process-local implementations of the marketplace
// repositories. Records are cloned on the way in and out so callers never
// share state with the store.
package memory

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Store bundles the three repositories over independent record sets.
type Store struct {
	Users        *UserRepository
	Jobs         *JobRepository
	Applications *ApplicationRepository
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		Users:        NewUserRepository(),
		Jobs:         NewJobRepository(),
		Applications: NewApplicationRepository(),
	}
}

// newestFirst orders by timestamp descending, then id descending.
func newestFirst(at, bt time.Time, aID, bID string) int {
	return cmp.Or(bt.Compare(at), strings.Compare(bID, aID))
}

func sortNewestFirst[T any](items []T, key func(T) (time.Time, string)) {
	slices.SortFunc(items, func(a, b T) int {
		at, aID := key(a)
		bt, bID := key(b)
		return newestFirst(at, bt, aID, bID)
	})
}
