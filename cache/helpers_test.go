package cache_test

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/cohsim/cache"
)

type statsEvent struct {
	Hit         bool
	Writeback   bool
	UpgradeMiss bool
	Action      cache.Action
}

type recordingSink struct {
	events []statsEvent
}

func (s *recordingSink) Record(hit, writeback, upgradeMiss bool, action cache.Action) {
	s.events = append(s.events, statsEvent{hit, writeback, upgradeMiss, action})
}

func (s *recordingSink) last() statsEvent {
	return s.events[len(s.events)-1]
}

type recordingHook struct {
	ctxs []sim.HookCtx
}

func (h *recordingHook) Func(ctx sim.HookCtx) {
	h.ctxs = append(h.ctxs, ctx)
}

// smallConfig is 256B, 32B blocks, 2-way: 4 sets, 5 offset bits, 2 index
// bits, 25 tag bits. Addresses 0x80 apart map to the same set.
func smallConfig(p cache.Protocol) cache.Config {
	return cache.Config{
		Capacity:      256,
		BlockSize:     32,
		Associativity: 2,
		Protocol:      p,
	}
}

func mustNew(config cache.Config, sink cache.StatsSink) *cache.Cache {
	c, err := cache.New(config, sink)
	if err != nil {
		panic(err)
	}

	return c
}
