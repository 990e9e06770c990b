// Package generics implements generic data structure functions missing from the stdlib.
package generics

import (
	"cmp"
	"golang.org/x/exp/constraints"
	"iter"
	"maps"
	"slices"
)

// SliceMap executes the given function sequentially for every element on in, and returns a mapped slice.
func SliceMap[In, Out any](in []In, fn func(e In) Out) (out []Out) {
	out = make([]Out, len(in))
	for ii, e := range in {
		out[ii] = fn(e)
	}
	return
}

// ArgMax returns the index of the largest value. Ties are broken by the lowest index.
// It returns -1 for an empty slice.
func ArgMax[T constraints.Integer | constraints.Float](values []T) int {
	best := -1
	for ii, v := range values {
		if best == -1 || v > values[best] {
			best = ii
		}
	}
	return best
}

// ArgMaxAmong is like ArgMax, but only considers the given indices, which are expected in
// ascending order for the lowest index to win ties. It returns -1 if indices is empty.
func ArgMaxAmong[T constraints.Integer | constraints.Float](values []T, indices []int) int {
	best := -1
	for _, idx := range indices {
		if best == -1 || values[idx] > values[best] {
			best = idx
		}
	}
	return best
}

// Max returns the largest value of a non-empty slice.
func Max[T constraints.Integer | constraints.Float](values []T) T {
	return slices.Max(values)
}

// SortedKeys returns an iterator over the sorted keys of the given map.
//
// It extracts the keys, sort them and then iterate over, so it's convenient but not fast.
func SortedKeys[M interface{ ~map[K]V }, K cmp.Ordered, V any](m M) iter.Seq[K] {
	sortedKeys := slices.Collect(maps.Keys(m))
	slices.Sort(sortedKeys)
	return slices.Values(sortedKeys)
}

// SortedKeysAndValues returns an interator over keys and values of a map m in a sorted fashion by the keys.
func SortedKeysAndValues[M interface{ ~map[K]V }, K cmp.Ordered, V any](m M) iter.Seq2[K, V] {
	sortedKeys := slices.Collect(maps.Keys(m))
	slices.Sort(sortedKeys)
	return func(yield func(K, V) bool) {
		for _, key := range sortedKeys {
			if !yield(key, m[key]) {
				break
			}
		}
	}
}

// Set implements a Set for the key type T.
type Set[T comparable] map[T]struct{}

// MakeSet returns an empty Set of the given type. Size is optional, and if given
// will reserve the expected size.
func MakeSet[T comparable](size ...int) Set[T] {
	if len(size) == 0 {
		return make(Set[T])
	}
	return make(Set[T], size[0])
}

// SetWith creates a Set[T] with the given elements inserted.
func SetWith[T comparable](elements ...T) Set[T] {
	s := MakeSet[T](len(elements))
	s.Insert(elements...)
	return s
}

// Has returns true if Set s has the given key.
func (s Set[T]) Has(key T) bool {
	_, found := s[key]
	return found
}

// Insert keys into set.
func (s Set[T]) Insert(keys ...T) {
	for _, key := range keys {
		s[key] = struct{}{}
	}
}
