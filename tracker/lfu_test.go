package tracker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// referenceLFU models the tracker contract naively: frequencies in a map,
// per-bucket ordering by push time (most recent first) and the same
// unrepaired-minFreq rule the real tracker follows.
type referenceLFU[K comparable] struct {
	freq    map[K]int
	pushed  map[K]int // sequence number of the last bucket push
	clock   int
	minFreq int
}

func newReferenceLFU[K comparable]() *referenceLFU[K] {
	return &referenceLFU[K]{freq: make(map[K]int), pushed: make(map[K]int)}
}

func (r *referenceLFU[K]) use(key K) {
	r.clock++
	f, ok := r.freq[key]
	if !ok {
		r.freq[key] = 1
		r.pushed[key] = r.clock
		r.minFreq = 1
		return
	}
	if f == r.minFreq && r.bucketLen(f) == 1 {
		r.minFreq = f + 1
	}
	r.freq[key] = f + 1
	r.pushed[key] = r.clock
}

func (r *referenceLFU[K]) remove(key K) {
	delete(r.freq, key)
	delete(r.pushed, key)
}

func (r *referenceLFU[K]) bucketLen(f int) int {
	n := 0
	for _, kf := range r.freq {
		if kf == f {
			n++
		}
	}
	return n
}

// victim returns the most recently pushed key in the minFreq bucket, the
// "first node" of the push-to-front list.
func (r *referenceLFU[K]) victim() (K, bool) {
	var best K
	bestPush := -1
	for k, f := range r.freq {
		if f != r.minFreq {
			continue
		}
		if r.pushed[k] > bestPush {
			best, bestPush = k, r.pushed[k]
		}
	}
	return best, bestPush >= 0
}

func TestLFUBasics(t *testing.T) {
	lfu := NewLFU[string](16)

	_, ok := lfu.Victim()
	require.False(t, ok)

	lfu.Use("a") // freq 1
	lfu.Use("b") // freq 1
	lfu.Use("a") // freq 2

	victim, ok := lfu.Victim()
	require.True(t, ok)
	require.Equal(t, "b", victim)

	lfu.Use("b")
	lfu.Use("b") // freq 3, a stays at 2
	victim, _ = lfu.Victim()
	require.Equal(t, "a", victim)

	require.Equal(t, 2, lfu.Len())
	require.True(t, lfu.Contains("a"))
	lfu.Remove("a")
	require.False(t, lfu.Contains("a"))
}

func TestLFUVictimIsFirstInBucket(t *testing.T) {
	lfu := NewLFU[int](16)
	// All at frequency 1; bucket order front-to-back is 3, 2, 1.
	lfu.Use(1)
	lfu.Use(2)
	lfu.Use(3)

	victim, ok := lfu.Victim()
	require.True(t, ok)
	require.Equal(t, 3, victim)
}

func TestLFUMinFreqFollowsEmptiedBucket(t *testing.T) {
	lfu := NewLFU[string](16)
	lfu.Use("a")
	lfu.Use("a") // bucket 1 empties, minFreq -> 2

	victim, ok := lfu.Victim()
	require.True(t, ok)
	require.Equal(t, "a", victim)

	lfu.Use("b") // minFreq back to 1
	victim, _ = lfu.Victim()
	require.Equal(t, "b", victim)
}

// TestLFUMinFreqNotRepairedOnRemove pins the documented quirk: removing the
// last key of the minimum bucket leaves minFreq stale, Victim reports
// nothing, and the next insertion of a fresh key recovers the counter.
func TestLFUMinFreqNotRepairedOnRemove(t *testing.T) {
	lfu := NewLFU[string](16)
	lfu.Use("hot")
	lfu.Use("hot") // freq 2
	lfu.Use("cold")

	victim, _ := lfu.Victim()
	require.Equal(t, "cold", victim)

	lfu.Remove("cold")
	_, ok := lfu.Victim()
	require.False(t, ok, "stale minFreq bucket must yield no victim")
	require.Equal(t, 1, lfu.Len())

	lfu.Use("fresh")
	victim, ok = lfu.Victim()
	require.True(t, ok)
	require.Equal(t, "fresh", victim)
}

// TestLFUAgainstReference drives tracker and model with the same
// pseudo-random sequence. Removals always precede an insertion of a fresh
// key, matching the codec's evict-then-insert pattern, so both sides stay
// inside the contract where victims are defined.
func TestLFUAgainstReference(t *testing.T) {
	const steps = 4000
	lfu := NewLFU[int](64)
	ref := newReferenceLFU[int]()

	state := uint64(7)
	next := func() uint64 {
		state = state*6364136223846793005 + 1442695040888963407
		return state
	}

	nextFresh := 1000
	for step := 0; step < steps; step++ {
		if next()%6 == 0 {
			if victim, ok := lfu.Victim(); ok {
				refVictim, refOK := ref.victim()
				require.True(t, refOK, "step %d", step)
				require.Equal(t, refVictim, victim, "step %d", step)
				lfu.Remove(victim)
				ref.remove(refVictim)
				lfu.Use(nextFresh)
				ref.use(nextFresh)
				nextFresh++
				continue
			}
		}
		key := int(next() % 32)
		lfu.Use(key)
		ref.use(key)

		gotVictim, gotOK := lfu.Victim()
		wantVictim, wantOK := ref.victim()
		require.Equal(t, wantOK, gotOK, "step %d", step)
		if wantOK {
			require.Equal(t, wantVictim, gotVictim, "step %d", step)
		}
		require.Equal(t, len(ref.freq), lfu.Len(), "step %d", step)
	}
}
