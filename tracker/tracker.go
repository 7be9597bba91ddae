// Package tracker provides O(1) eviction-victim trackers for the varlzw
// codebook. The encoder tracks entries by their byte-string key, the decoder
// by their integer code; both instantiate the same generic types.
//
// Alphabet entries are never handed to a tracker: the codec filters them
// before calling Use, so a tracked key is always an evictable entry.
package tracker

// Tracker is the victim-selection contract shared by the LRU and LFU
// implementations.
type Tracker[K comparable] interface {
	// Use records an access, creating the key if it is not yet tracked.
	Use(key K)
	// Victim returns the entry the policy would evict next. ok is false
	// when nothing is tracked; LFU also reports false while its minimum
	// frequency bucket is one that Remove emptied.
	Victim() (key K, ok bool)
	// Remove drops a key. Unknown keys are a no-op.
	Remove(key K)
	// Contains reports whether key is tracked, without touching its state.
	Contains(key K) bool
	// Len returns the number of tracked keys.
	Len() int
}
