package benchmarks

import (
	"github.com/sarchlab/cohsim/cache"
	"github.com/sarchlab/cohsim/trace"
)

// GetWorkloads returns the standard set of sharing-pattern workloads.
// Each workload targets one protocol behavior.
func GetWorkloads() []Benchmark {
	return []Benchmark{
		privateScan(),
		conflictThrash(),
		sharedRead(),
		migratoryWrite(),
		producerConsumer(),
	}
}

const (
	wordSize    = 4
	privateBase = 0x0010_0000
	privateSpan = 0x0001_0000
	sharedBase  = 0x0080_0000
)

// 1. Private Scan - each core reads then updates its own array
func privateScan() Benchmark {
	return Benchmark{
		Name:        "private_scan",
		Description: "each core loads and stores its own 2KB array twice - no sharing",
		Generate: func(cores int) []trace.Event {
			var events []trace.Event
			for pass := 0; pass < 2; pass++ {
				for off := uint64(0); off < 2048; off += wordSize {
					for core := 0; core < cores; core++ {
						addr := privateBase + uint64(core)*privateSpan + off
						events = append(events,
							trace.Event{Core: core, Action: cache.Load, Addr: addr},
							trace.Event{Core: core, Action: cache.Store, Addr: addr},
						)
					}
				}
			}

			return events
		},
	}
}

// 2. Conflict Thrash - more blocks than ways in one set
func conflictThrash() Benchmark {
	return Benchmark{
		Name:        "conflict_thrash",
		Description: "core 0 cycles through 8 blocks 64KB apart - conflict misses in one set",
		Generate: func(int) []trace.Event {
			var events []trace.Event
			for round := 0; round < 16; round++ {
				for i := uint64(0); i < 8; i++ {
					events = append(events, trace.Event{
						Core:   0,
						Action: cache.Store,
						Addr:   privateBase + i*0x1_0000,
					})
				}
			}

			return events
		},
	}
}

// 3. Shared Read - every core reads the same table
func sharedRead() Benchmark {
	return Benchmark{
		Name:        "shared_read",
		Description: "all cores repeatedly read one 1KB table - read sharing",
		Generate: func(cores int) []trace.Event {
			var events []trace.Event
			for round := 0; round < 4; round++ {
				for off := uint64(0); off < 1024; off += 64 {
					for core := 0; core < cores; core++ {
						events = append(events, trace.Event{
							Core:   core,
							Action: cache.Load,
							Addr:   sharedBase + off,
						})
					}
				}
			}

			return events
		},
	}
}

// 4. Migratory Write - a counter incremented by each core in turn
func migratoryWrite() Benchmark {
	return Benchmark{
		Name:        "migratory_write",
		Description: "cores take turns doing load+store on one counter - ownership migrates",
		Generate: func(cores int) []trace.Event {
			var events []trace.Event
			for round := 0; round < 32; round++ {
				core := round % cores
				events = append(events,
					trace.Event{Core: core, Action: cache.Load, Addr: sharedBase},
					trace.Event{Core: core, Action: cache.Store, Addr: sharedBase},
				)
			}

			return events
		},
	}
}

// 5. Producer Consumer - core 0 writes a buffer the others read
func producerConsumer() Benchmark {
	return Benchmark{
		Name:        "producer_consumer",
		Description: "core 0 fills a 512B buffer, other cores read it, repeated 4 times",
		Generate: func(cores int) []trace.Event {
			var events []trace.Event
			for round := 0; round < 4; round++ {
				for off := uint64(0); off < 512; off += wordSize {
					events = append(events, trace.Event{
						Core: 0, Action: cache.Store, Addr: sharedBase + off,
					})
				}

				for core := 1; core < cores; core++ {
					for off := uint64(0); off < 512; off += wordSize {
						events = append(events, trace.Event{
							Core: core, Action: cache.Load, Addr: sharedBase + off,
						})
					}
				}
			}

			return events
		},
	}
}
