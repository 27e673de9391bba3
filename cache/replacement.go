package cache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// RoundRobin is the per-set victim pointer. It approximates LRU by moving the
// pointer one past the way that served the last local access.
//
// RoundRobin is an Akita VictimFinder, so the directory asks it for victims.
type RoundRobin struct {
	numWays  int
	pointers []int
}

// NewRoundRobin creates a policy with every pointer at way 0.
func NewRoundRobin(numSets, numWays int) *RoundRobin {
	return &RoundRobin{
		numWays:  numWays,
		pointers: make([]int, numSets),
	}
}

// FindVictim returns the block the pointer of set refers to.
func (r *RoundRobin) FindVictim(set *akitacache.Set) *akitacache.Block {
	if len(set.Blocks) == 0 {
		return nil
	}

	return set.Blocks[r.pointers[set.Blocks[0].SetID]]
}

// Pointer returns the way that the next miss in set index fills.
func (r *RoundRobin) Pointer(index int) int {
	return r.pointers[index]
}

// Touch advances the pointer of set index past way.
func (r *RoundRobin) Touch(index, way int) {
	r.pointers[index] = (way + 1) % r.numWays
}

// PointAt makes way the next victim of set index.
func (r *RoundRobin) PointAt(index, way int) {
	r.pointers[index] = way
}

// Reset rewinds every pointer to way 0.
func (r *RoundRobin) Reset() {
	for i := range r.pointers {
		r.pointers[i] = 0
	}
}
