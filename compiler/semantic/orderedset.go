package semantic

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// orderedSet is a set that remembers insertion order.
type orderedSet[T constraints.Ordered] struct {
	index map[T]struct{}
	elems []T
}

func (s *orderedSet[T]) add(v T) {
	if s.index == nil {
		s.index = make(map[T]struct{})
	}
	if _, ok := s.index[v]; ok {
		return
	}
	s.index[v] = struct{}{}
	s.elems = append(s.elems, v)
}

func (s *orderedSet[T]) slice() []T {
	return slices.Clone(s.elems)
}

func sortedKeys[T constraints.Ordered](m map[T]struct{}) []T {
	keys := make([]T, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
