package tracker

import (
	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// LRU tracks recency of use. Use moves a key to the most-recently-used
// position, Victim returns the least-recently-used key. All operations are
// O(1).
//
// The recency list and key index live in hashicorp's simplelru; the capacity
// passed at construction is the codebook bound, so the cache never evicts on
// its own — victim selection stays under the codec's control.
type LRU[K comparable] struct {
	list *simplelru.LRU[K, struct{}]
}

// NewLRU returns an LRU tracker. Capacity must cover the maximum number of
// tracked entries (the codec passes the codebook size 2^maxW).
func NewLRU[K comparable](capacity int) *LRU[K] {
	list, err := simplelru.NewLRU[K, struct{}](capacity, nil)
	if err != nil {
		// Only reachable with capacity <= 0, which the codec never passes.
		panic(err)
	}
	return &LRU[K]{list: list}
}

// Use marks key as most recently used, inserting it if needed.
func (t *LRU[K]) Use(key K) {
	t.list.Add(key, struct{}{})
}

// Victim returns the least-recently-used key.
func (t *LRU[K]) Victim() (K, bool) {
	key, _, ok := t.list.GetOldest()
	return key, ok
}

// Remove drops key from tracking.
func (t *LRU[K]) Remove(key K) {
	t.list.Remove(key)
}

// Contains reports whether key is tracked. Recency is not updated.
func (t *LRU[K]) Contains(key K) bool {
	return t.list.Contains(key)
}

// Len returns the number of tracked keys.
func (t *LRU[K]) Len() int {
	return t.list.Len()
}
