// Package maputil provides basic utility functions for generic maps.
package maputil

import "golang.org/x/exp/maps"

// Keys returns the keys from the given map in an unspecified order.
//
// NOTE: When provided with one or more predicates, only returns keys which match all predicates. The given map is not
// modified.
func Keys[M ~map[K]V, K comparable, V any](m M, p ...func(k K, v V) bool) []K {
	if len(p) == 0 {
		return maps.Keys(m)
	}

	keys := make([]K, 0, len(m))

	for k, v := range m {
		if matches(k, v, p...) {
			keys = append(keys, k)
		}
	}

	return keys
}

func matches[K comparable, V any](k K, v V, p ...func(k K, v V) bool) bool {
	for _, fn := range p {
		if !fn(k, v) {
			return false
		}
	}

	return true
}
