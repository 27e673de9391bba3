package cache

import (
	"github.com/sarchlab/akita/v4/sim"
)

// StatsSink receives one event per cache access. The cache never reads
// statistics back.
type StatsSink interface {
	Record(hit, writeback, upgradeMiss bool, action Action)
}

// HookPosAccess marks the point right after a cache access completes. The
// hook item is an AccessRecord.
var HookPosAccess = &sim.HookPos{Name: "CacheAccess"}

// AccessRecord describes a completed access for diagnostic tracing.
type AccessRecord struct {
	Cache       string
	Addr        uint64
	Tag         uint64
	Set         int
	Way         int
	Action      Action
	Hit         bool
	Writeback   bool
	UpgradeMiss bool
	// State is the state of the touched way after the access.
	State State
}

// Option configures optional cache properties.
type Option func(*Cache)

// WithName sets the name reported in access records.
func WithName(name string) Option {
	return func(c *Cache) {
		c.name = name
	}
}

// Cache is a single-level set-associative cache for one core.
type Cache struct {
	sim.HookableBase

	name     string
	config   Config
	geometry Geometry
	decoder  Decoder
	store    *lineStore
	engine   engine
	stats    StatsSink
}

// New creates a cache with every line invalid and every replacement pointer
// at way 0.
func New(config Config, stats StatsSink, opts ...Option) (*Cache, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if stats == nil {
		return nil, ErrNilStatsSink
	}

	geometry := config.Geometry()
	store := newLineStore(geometry, config.Associativity)

	eng, err := newEngine(config, store)
	if err != nil {
		return nil, err
	}

	c := &Cache{
		name:     "Cache",
		config:   config,
		geometry: geometry,
		decoder:  NewDecoder(geometry),
		store:    store,
		engine:   eng,
		stats:    stats,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Access performs one access and returns whether it hit. The stats sink is
// notified exactly once per call.
func (c *Cache) Access(addr uint64, action Action) bool {
	if c.engine == nil {
		panic(&ProtocolError{Protocol: c.config.Protocol})
	}

	index := c.decoder.Index(addr)
	tag := c.decoder.Tag(addr)

	out := c.engine.access(index, tag, action)

	c.stats.Record(out.Hit, out.Writeback, out.UpgradeMiss, action)

	if len(c.Hooks()) > 0 {
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosAccess,
			Item: AccessRecord{
				Cache:       c.name,
				Addr:        addr,
				Tag:         tag,
				Set:         index,
				Way:         out.Way,
				Action:      action,
				Hit:         out.Hit,
				Writeback:   out.Writeback,
				UpgradeMiss: out.UpgradeMiss,
				State:       c.store.Line(index, out.Way).State,
			},
		})
	}

	return out.Hit
}

// Name returns the cache name.
func (c *Cache) Name() string {
	return c.name
}

// Protocol returns the coherence protocol the cache runs.
func (c *Cache) Protocol() Protocol {
	if c.engine == nil {
		panic(&ProtocolError{Protocol: c.config.Protocol})
	}

	return c.engine.protocol()
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.config
}

// Geometry returns the derived set count and field widths.
func (c *Cache) Geometry() Geometry {
	return c.geometry
}

// Decoder returns the address decoder of the cache.
func (c *Cache) Decoder() Decoder {
	return c.decoder
}

// Lookup returns the non-invalid line holding addr and its way.
func (c *Cache) Lookup(addr uint64) (Line, int, bool) {
	index := c.decoder.Index(addr)

	way, found := c.store.Find(index, c.decoder.Tag(addr))
	if !found {
		return Line{}, 0, false
	}

	return c.store.Line(index, way), way, true
}

// LineAt returns a copy of the line at (set, way).
func (c *Cache) LineAt(set, way int) Line {
	return c.store.Line(set, way)
}

// Pointer returns the replacement pointer of a set.
func (c *Cache) Pointer(set int) int {
	return c.store.policy.Pointer(set)
}

// Reset invalidates all lines and rewinds all replacement pointers. Stats
// already recorded are not touched.
func (c *Cache) Reset() {
	c.store.Reset()
}
