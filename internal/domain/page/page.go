// Package page provides offset/limit pagination over result sets.
//
// Offsets are 0-based everywhere inside the service; translating a user-facing
// 1-based page number is the transport layer's concern.
package page

import "sort"

// DefaultLimit is used when a request carries no explicit page size.
const DefaultLimit = 20

// Request is a 0-based offset/limit window into a result set.
type Request struct {
	Offset int
	Limit  int
}

// Normalize clamps negative offsets and fills in the default limit.
func (r Request) Normalize() Request {
	if r.Offset < 0 {
		r.Offset = 0
	}
	if r.Limit <= 0 {
		r.Limit = DefaultLimit
	}
	return r
}

// Page is a bounded slice of a result set plus the total matching count.
// Total is independent of the slice size.
type Page[T any] struct {
	Items []T
	Total int
}

// Empty returns a page with no items and the given total.
func Empty[T any](total int) Page[T] {
	return Page[T]{Items: []T{}, Total: total}
}

// SortSlice sorts a copy of items with the given comparator and cuts the
// requested window out of it. An offset at or past the end yields an empty
// page whose Total still reflects the full collection size.
func SortSlice[T any](items []T, less func(a, b T) bool, req Request) Page[T] {
	req = req.Normalize()

	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	if req.Offset >= len(sorted) {
		return Empty[T](len(items))
	}

	end := req.Offset + req.Limit
	if end > len(sorted) {
		end = len(sorted)
	}

	return Page[T]{Items: sorted[req.Offset:end], Total: len(items)}
}
