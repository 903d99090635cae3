// Package grouping provides deterministic partitioning helpers.
//
// Go map iteration order is randomized, so any stage that groups records
// and then ranges over the groups must carry the key order separately.
// These helpers keep first-seen order, which makes pipeline output stable
// for a given input file.
package grouping

// GroupBy partitions items by key. The returned key slice preserves
// first-seen order; ranging over it instead of the map keeps downstream
// output deterministic.
func GroupBy[T any, K comparable](items []T, key func(T) K) ([]K, map[K][]T) {
	keys := make([]K, 0)
	groups := make(map[K][]T)
	for _, item := range items {
		k := key(item)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], item)
	}
	return keys, groups
}

// CountBy tallies items by key, preserving first-seen key order.
func CountBy[T any, K comparable](items []T, key func(T) K) ([]K, map[K]int) {
	keys := make([]K, 0)
	counts := make(map[K]int)
	for _, item := range items {
		k := key(item)
		if _, ok := counts[k]; !ok {
			keys = append(keys, k)
		}
		counts[k]++
	}
	return keys, counts
}
