package domain

import (
	"encoding/json"
	"sort"

	"golang.org/x/exp/constraints"
)

// Set is an ordered, de-duplicated collection. Practice areas on a matter
// are a Set so that repeated submissions of the same tags compare equal.
type Set[T constraints.Ordered] []T

func NewSet[T constraints.Ordered](items ...T) Set[T] {
	seen := make(map[T]bool, len(items))
	elements := make([]T, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		elements = append(elements, item)
	}
	sort.Slice(elements, func(i, j int) bool {
		return elements[i] < elements[j]
	})
	return elements
}

// Values returns the elements in their sorted order.
func (s Set[T]) Values() []T {
	return append([]T(nil), s...)
}

func (s Set[T]) Contains(item T) bool {
	for _, element := range s {
		if element == item {
			return true
		}
	}
	return false
}

func (s *Set[T]) UnmarshalJSON(data []byte) (err error) {
	var elements []T
	err = json.Unmarshal(data, &elements)
	if err != nil {
		return
	}
	*s = NewSet(elements...)
	return
}
