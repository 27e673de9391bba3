// Package coherence connects per-core caches into a snooping system.
//
// Each core owns one cache. When a local access misses, the system tells
// every other cache about it with a LoadMiss or StoreMiss notification. The
// caches never reach into each other.
package coherence

import (
	"errors"
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/cohsim/cache"
	"github.com/sarchlab/cohsim/stats"
	"github.com/sarchlab/cohsim/trace"
)

// ErrUnknownCore is returned when an access names a core the system does
// not have.
var ErrUnknownCore = errors.New("unknown core")

// Option configures a System.
type Option func(*System)

// WithCacheHook attaches a hook to every cache of the system.
func WithCacheHook(hook sim.Hook) Option {
	return func(s *System) {
		for _, c := range s.caches {
			c.AcceptHook(hook)
		}
	}
}

// WithEngine replaces the default serial engine used by Replay.
func WithEngine(engine sim.Engine) Option {
	return func(s *System) {
		s.engine = engine
	}
}

// System is a group of private caches kept coherent by broadcasting misses.
type System struct {
	engine sim.Engine
	caches []*cache.Cache
	stats  []*stats.Collector

	nextTick uint64
	err      error
}

// NewSystem creates cores identical caches.
func NewSystem(config cache.Config, cores int, opts ...Option) (*System, error) {
	if cores <= 0 {
		return nil, fmt.Errorf("number of cores must be > 0, got %d", cores)
	}

	s := &System{
		engine: sim.NewSerialEngine(),
	}

	for i := 0; i < cores; i++ {
		collector := stats.NewCollector(config.BlockSize)

		c, err := cache.New(config, collector,
			cache.WithName(fmt.Sprintf("Core[%d].Cache", i)))
		if err != nil {
			return nil, err
		}

		s.caches = append(s.caches, c)
		s.stats = append(s.stats, collector)
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// NumCores returns the number of cores.
func (s *System) NumCores() int {
	return len(s.caches)
}

// Cache returns the cache of a core.
func (s *System) Cache(core int) *cache.Cache {
	return s.caches[core]
}

// Stats returns the collector of a core.
func (s *System) Stats(core int) *stats.Collector {
	return s.stats[core]
}

// Aggregate returns the sum of every core's statistics.
func (s *System) Aggregate() *stats.Collector {
	total := stats.NewCollector(s.caches[0].Config().BlockSize)
	for _, c := range s.stats {
		total.Merge(c)
	}

	return total
}

// Apply runs one access on a core and returns whether it hit. A local miss
// is broadcast to the other cores. Remote actions are delivered to the named
// core only.
func (s *System) Apply(core int, action cache.Action, addr uint64) (bool, error) {
	if core < 0 || core >= len(s.caches) {
		return false, fmt.Errorf("core %d of %d: %w", core, len(s.caches), ErrUnknownCore)
	}

	hit := s.caches[core].Access(addr, action)
	if hit || !action.IsLocal() {
		return hit, nil
	}

	remote := cache.LoadMiss
	if action == cache.Store {
		remote = cache.StoreMiss
	}

	for i, c := range s.caches {
		if i != core {
			c.Access(addr, remote)
		}
	}

	return false, nil
}

type accessEvent struct {
	*sim.EventBase
	access trace.Event
}

// Handle applies one scheduled trace access.
func (s *System) Handle(e sim.Event) error {
	evt, ok := e.(accessEvent)
	if !ok {
		return fmt.Errorf("coherence: cannot handle event of type %T", e)
	}

	_, err := s.Apply(evt.access.Core, evt.access.Action, evt.access.Addr)
	if err != nil && s.err == nil {
		s.err = err
	}

	return err
}

// Replay runs a trace in order on the simulation engine.
func (s *System) Replay(events []trace.Event) error {
	for i, evt := range events {
		if evt.Core < 0 || evt.Core >= len(s.caches) {
			return fmt.Errorf("trace event %d (%s): %w", i, evt, ErrUnknownCore)
		}
	}

	for _, evt := range events {
		s.engine.Schedule(accessEvent{
			EventBase: sim.NewEventBase(sim.VTimeInSec(s.nextTick), s),
			access:    evt,
		})
		s.nextTick++
	}

	if err := s.engine.Run(); err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	err := s.err
	s.err = nil

	return err
}
