// Package stats accumulates cache access outcomes and prints them in the
// key/value format consumed by the experiment scripts.
package stats

import (
	"fmt"
	"io"

	"github.com/sarchlab/cohsim/cache"
)

// WordSize is the number of bytes a write-through cache sends on each store.
const WordSize = 4

// Counters holds the outcome counts of one action kind.
type Counters struct {
	Accesses      uint64
	Hits          uint64
	Misses        uint64
	Writebacks    uint64
	UpgradeMisses uint64
}

func (c *Counters) add(o Counters) {
	c.Accesses += o.Accesses
	c.Hits += o.Hits
	c.Misses += o.Misses
	c.Writebacks += o.Writebacks
	c.UpgradeMisses += o.UpgradeMisses
}

// Collector implements cache.StatsSink.
type Collector struct {
	blockSize int
	byAction  [len(actionKeys)]Counters
}

var actionKeys = [...]string{
	cache.Load:      "load",
	cache.Store:     "store",
	cache.LoadMiss:  "ld_miss",
	cache.StoreMiss: "st_miss",
}

// NewCollector creates a collector for a cache with the given block size.
// The block size converts miss and writeback counts into bus bytes.
func NewCollector(blockSize int) *Collector {
	return &Collector{blockSize: blockSize}
}

// Record counts one access.
func (c *Collector) Record(hit, writeback, upgradeMiss bool, action cache.Action) {
	counters := &c.byAction[action]
	counters.Accesses++

	if hit {
		counters.Hits++
	} else {
		counters.Misses++
	}

	if writeback {
		counters.Writebacks++
	}

	if upgradeMiss {
		counters.UpgradeMisses++
	}
}

// Action returns the counters of one action kind.
func (c *Collector) Action(action cache.Action) Counters {
	return c.byAction[action]
}

// Local returns the combined counters of loads and stores.
func (c *Collector) Local() Counters {
	var total Counters
	total.add(c.byAction[cache.Load])
	total.add(c.byAction[cache.Store])

	return total
}

// Total returns the combined counters of every action kind.
func (c *Collector) Total() Counters {
	var total Counters
	for _, counters := range c.byAction {
		total.add(counters)
	}

	return total
}

// MissRate returns the percentage of local accesses that missed, upgrade
// misses included.
func (c *Collector) MissRate() float64 {
	local := c.Local()
	if local.Accesses == 0 {
		return 0
	}

	return 100.0 * float64(local.Misses) / float64(local.Accesses)
}

// BusToCache returns the bytes fetched into the cache by local misses.
func (c *Collector) BusToCache() uint64 {
	local := c.Local()

	return (local.Misses - local.UpgradeMisses) * uint64(c.blockSize)
}

// WrittenWB returns the bytes written back to the bus by a write-back cache.
func (c *Collector) WrittenWB() uint64 {
	return c.Total().Writebacks * uint64(c.blockSize)
}

// WrittenWT returns the bytes a write-through cache would have written for
// the same stores.
func (c *Collector) WrittenWT() uint64 {
	return c.byAction[cache.Store].Accesses * WordSize
}

// Merge adds the counts of other into c. Both must use the same block size.
func (c *Collector) Merge(other *Collector) {
	for i := range c.byAction {
		c.byAction[i].add(other.byAction[i])
	}
}

// Reset clears all counts.
func (c *Collector) Reset() {
	c.byAction = [len(actionKeys)]Counters{}
}

type reportLine struct {
	key   string
	value any
}

// Report writes one "  key value" line per statistic.
func (c *Collector) Report(w io.Writer) error {
	local := c.Local()

	lines := []reportLine{
		{"n_cpu_accesses", local.Accesses},
		{"n_hits", local.Hits},
		{"n_misses", local.Misses},
		{"n_upgrade_miss", local.UpgradeMisses},
		{"n_writebacks", c.Total().Writebacks},
		{"miss_rate", fmt.Sprintf("%.2f", c.MissRate())},
		{"B_bus_to_cache", c.BusToCache()},
		{"B_written_cache_to_bus_wb", c.WrittenWB()},
		{"B_written_cache_to_bus_wt", c.WrittenWT()},
	}

	for _, action := range cache.Actions {
		counters := c.byAction[action]
		key := actionKeys[action]
		lines = append(lines,
			reportLine{"n_" + key, counters.Accesses},
			reportLine{"n_" + key + "_hits", counters.Hits},
		)
	}

	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "  %s %v\n", l.key, l.value); err != nil {
			return fmt.Errorf("failed to write stats report: %w", err)
		}
	}

	return nil
}
