package storage

import (
	"slices"
	"time"
)

// NewestFirst returns a copy of items, given in insertion order, sorted by
// creation time descending. Equal timestamps keep the later insert first.
func NewestFirst[T any](items []T, createdAt func(T) time.Time) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return createdAt(b).Compare(createdAt(a))
	})
	return out
}
