package cache

// Outcome is the result of one access as seen by a protocol engine.
type Outcome struct {
	// Hit is true when the access was satisfied by this cache.
	Hit bool
	// Writeback is true when the access forced a dirty block out of the cache.
	Writeback bool
	// UpgradeMiss is true when a store found the block in a read-only state.
	UpgradeMiss bool
	// Way is the way that served the access, or the victim way on a miss.
	Way int
}

// An engine runs one coherence protocol against a Store.
type engine interface {
	protocol() Protocol
	access(index int, tag uint64, action Action) Outcome
}

func newEngine(config Config, store *lineStore) (engine, error) {
	base := engineBase{
		store:           store,
		policy:          store.policy,
		lruOnInvalidate: config.LRUOnInvalidate,
	}

	switch config.Protocol {
	case ProtocolNone:
		return &noneEngine{base}, nil
	case ProtocolVI:
		return &viEngine{base}, nil
	case ProtocolMSI:
		return &msiEngine{base}, nil
	}

	return nil, &ProtocolError{Protocol: config.Protocol}
}

type engineBase struct {
	store           *lineStore
	policy          *RoundRobin
	lruOnInvalidate bool
}

// lookup returns the way holding tag. On a miss it returns the victim way
// chosen by the replacement pointer.
func (b *engineBase) lookup(index int, tag uint64) (way int, hit bool) {
	if way, found := b.store.Find(index, tag); found {
		return way, true
	}

	return b.store.Victim(index), false
}

func (b *engineBase) markDirty(index, way int) {
	line := b.store.Line(index, way)
	line.Dirty = true
	b.store.update(index, way, line)
}

// fill installs tag into way and reports whether the previous content of the
// way had to be written back.
func (b *engineBase) fill(index, way int, tag uint64, state State, dirty bool) (writeback bool) {
	old := b.store.Line(index, way)
	writeback = old.State != Invalid && old.Dirty

	b.store.update(index, way, Line{Tag: tag, State: state, Dirty: dirty})

	return writeback
}

func (b *engineBase) invalidate(index, way int) {
	line := b.store.Line(index, way)
	line.State = Invalid
	line.Dirty = false
	b.store.update(index, way, line)

	if b.lruOnInvalidate {
		b.policy.PointAt(index, way)
	}
}
