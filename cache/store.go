package cache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// lineStore keeps the lines of a cache in an Akita directory. Blocks are tagged
// with their block address. Dirty and validity live on the block, and the
// coherence state lives in a side array indexed by SetID*ways+WayID.
type lineStore struct {
	directory *akitacache.DirectoryImpl
	policy    *RoundRobin
	decoder   Decoder
	numWays   int
	states    []State
}

// newLineStore allocates a directory of invalid lines for the geometry.
func newLineStore(g Geometry, numWays int) *lineStore {
	policy := NewRoundRobin(g.NumSets, numWays)

	return &lineStore{
		directory: akitacache.NewDirectory(
			g.NumSets,
			numWays,
			1<<g.OffsetBits,
			policy,
		),
		policy:  policy,
		decoder: NewDecoder(g),
		numWays: numWays,
		states:  make([]State, g.NumSets*numWays),
	}
}

func (s *lineStore) block(index, way int) *akitacache.Block {
	return s.directory.GetSets()[index].Blocks[way]
}

func (s *lineStore) stateIndex(block *akitacache.Block) int {
	return block.SetID*s.numWays + block.WayID
}

// Line returns a copy of the line at (index, way).
func (s *lineStore) Line(index, way int) Line {
	block := s.block(index, way)
	if !block.IsValid {
		return Line{Tag: s.decoder.Tag(block.Tag)}
	}

	return Line{
		Tag:   s.decoder.Tag(block.Tag),
		Dirty: block.IsDirty,
		State: s.states[s.stateIndex(block)],
	}
}

// update writes line back to (index, way). An Invalid line is always clean.
func (s *lineStore) update(index, way int, line Line) {
	block := s.block(index, way)
	block.Tag = s.decoder.Compose(line.Tag, index, 0)
	block.IsValid = line.State != Invalid
	block.IsDirty = block.IsValid && line.Dirty
	s.states[s.stateIndex(block)] = line.State
}

// Find returns the way in set index holding tag in a non-Invalid state.
func (s *lineStore) Find(index int, tag uint64) (way int, found bool) {
	block := s.directory.Lookup(0, s.decoder.Compose(tag, index, 0))
	if block == nil {
		return 0, false
	}

	return block.WayID, true
}

// Victim returns the way the directory would evict for a miss in set index.
func (s *lineStore) Victim(index int) int {
	return s.directory.FindVictim(s.decoder.Compose(0, index, 0)).WayID
}

// Reset invalidates every line and rewinds every replacement pointer.
func (s *lineStore) Reset() {
	s.directory.Reset()
	s.policy.Reset()

	for i := range s.states {
		s.states[i] = Invalid
	}
}
