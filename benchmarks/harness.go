// Package benchmarks provides synthetic access workloads and a harness that
// replays them under each coherence protocol.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchlab/cohsim/cache"
	"github.com/sarchlab/cohsim/coherence"
	"github.com/sarchlab/cohsim/trace"
)

// BenchmarkResult holds the outcome of one workload under one protocol.
type BenchmarkResult struct {
	// Name identifies the workload
	Name string `json:"name"`

	// Description explains the sharing pattern of the workload
	Description string `json:"description"`

	// Protocol is the coherence protocol the caches ran
	Protocol string `json:"protocol"`

	// Cores is the number of simulated cores
	Cores int `json:"cores"`

	Capacity      int `json:"capacity"`
	BlockSize     int `json:"block_size"`
	Associativity int `json:"associativity"`

	// Accesses is the number of local loads and stores issued
	Accesses uint64 `json:"accesses"`

	Hits          uint64 `json:"hits"`
	Misses        uint64 `json:"misses"`
	UpgradeMisses uint64 `json:"upgrade_misses"`

	// Writebacks counts dirty blocks leaving any cache, including those
	// forced out by remote notifications
	Writebacks uint64 `json:"writebacks"`

	// MissRatePercent is misses over local accesses
	MissRatePercent float64 `json:"miss_rate_percent"`

	// BusWriteBytes is the write-back traffic from caches to the bus
	BusWriteBytes uint64 `json:"bus_write_bytes"`

	// BusWriteThroughBytes is the traffic the same stores would cause in a
	// write-through cache
	BusWriteThroughBytes uint64 `json:"bus_write_through_bytes"`

	// WallTime is the actual time taken to run the simulation
	WallTime time.Duration `json:"wall_time_ns"`
}

// Benchmark defines a single synthetic workload.
type Benchmark struct {
	// Name identifies the workload
	Name string

	// Description explains the sharing pattern of the workload
	Description string

	// Generate builds the trace for the given number of cores
	Generate func(cores int) []trace.Event
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// Cache is the per-core cache configuration. Its protocol is replaced by
	// each entry of Protocols.
	Cache cache.Config

	// Protocols lists the protocols every benchmark runs under
	Protocols []cache.Protocol

	// Cores is the number of simulated cores
	Cores int

	// Output is where to write results (default: os.Stdout)
	Output io.Writer
}

// DefaultConfig returns a 4-core harness with 4KB 4-way caches running all
// protocols.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		Cache: cache.Config{
			Capacity:      4 * 1024,
			BlockSize:     64,
			Associativity: 4,
		},
		Protocols: []cache.Protocol{
			cache.ProtocolNone,
			cache.ProtocolVI,
			cache.ProtocolMSI,
		},
		Cores:  4,
		Output: os.Stdout,
	}
}

// Sweep varies the cache shape and core count for one protocol. Capacities
// and block sizes are log2 bytes.
type Sweep struct {
	Protocol        cache.Protocol
	LogCapacities   []int
	LogBlockSizes   []int
	Associativities []int
	Cores           []int
}

// DefaultSweep covers 2KB to 1MB write-back caches with 64B blocks, 1, 2 and
// 4 ways, and 1, 2 and 4 cores.
func DefaultSweep() Sweep {
	var logCapacities []int
	for c := 11; c <= 20; c++ {
		logCapacities = append(logCapacities, c)
	}

	return Sweep{
		Protocol:        cache.ProtocolNone,
		LogCapacities:   logCapacities,
		LogBlockSizes:   []int{6},
		Associativities: []int{1, 2, 4},
		Cores:           []int{1, 2, 4},
	}
}

// Harness runs benchmarks and reports results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll executes every benchmark under every protocol.
func (h *Harness) RunAll() ([]BenchmarkResult, error) {
	results := make([]BenchmarkResult, 0, len(h.benchmarks)*len(h.config.Protocols))

	for _, bench := range h.benchmarks {
		events := bench.Generate(h.config.Cores)

		for _, p := range h.config.Protocols {
			config := h.config.Cache
			config.Protocol = p

			result, err := runBenchmark(bench, events, config, h.config.Cores)
			if err != nil {
				return nil, fmt.Errorf("benchmark %s (%s): %w", bench.Name, p, err)
			}

			results = append(results, result)
		}
	}

	return results, nil
}

// RunSweep executes every benchmark at every point of the sweep. The harness
// cache config supplies the fields the sweep does not vary.
func (h *Harness) RunSweep(sweep Sweep) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	for _, bench := range h.benchmarks {
		for _, cores := range sweep.Cores {
			events := bench.Generate(cores)

			for _, assoc := range sweep.Associativities {
				for _, logBlock := range sweep.LogBlockSizes {
					for _, logCap := range sweep.LogCapacities {
						config := h.config.Cache.WithLog2Sizes(logCap, logBlock, assoc)
						config.Protocol = sweep.Protocol

						result, err := runBenchmark(bench, events, config, cores)
						if err != nil {
							return nil, fmt.Errorf("benchmark %s (%s, %d cores, cache %d %d %d): %w",
								bench.Name, sweep.Protocol, cores, logCap, logBlock, assoc, err)
						}

						results = append(results, result)
					}
				}
			}
		}
	}

	return results, nil
}

func runBenchmark(
	bench Benchmark,
	events []trace.Event,
	config cache.Config,
	cores int,
) (BenchmarkResult, error) {
	system, err := coherence.NewSystem(config, cores)
	if err != nil {
		return BenchmarkResult{}, err
	}

	start := time.Now()
	if err := system.Replay(events); err != nil {
		return BenchmarkResult{}, err
	}
	wallTime := time.Since(start)

	total := system.Aggregate()
	local := total.Local()

	return BenchmarkResult{
		Name:            bench.Name,
		Description:     bench.Description,
		Protocol:             config.Protocol.String(),
		Cores:                cores,
		Capacity:             config.Capacity,
		BlockSize:            config.BlockSize,
		Associativity:        config.Associativity,
		Accesses:             local.Accesses,
		Hits:                 local.Hits,
		Misses:               local.Misses,
		UpgradeMisses:        local.UpgradeMisses,
		Writebacks:           total.Total().Writebacks,
		MissRatePercent:      total.MissRate(),
		BusWriteBytes:        total.WrittenWB(),
		BusWriteThroughBytes: total.WrittenWT(),
		WallTime:             wallTime,
	}, nil
}

// PrintResults outputs benchmark results in a human-readable format.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "=== Coherence Benchmark Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "Benchmark: %s [%s, %d cores]\n", r.Name, r.Protocol, r.Cores)
		_, _ = fmt.Fprintf(h.config.Output, "  Cache: %dB, %dB blocks, %d-way\n",
			r.Capacity, r.BlockSize, r.Associativity)
		_, _ = fmt.Fprintf(h.config.Output, "  Description: %s\n", r.Description)
		_, _ = fmt.Fprintf(h.config.Output, "  Accesses:       %d\n", r.Accesses)
		_, _ = fmt.Fprintf(h.config.Output, "  Hits:           %d\n", r.Hits)
		_, _ = fmt.Fprintf(h.config.Output, "  Misses:         %d\n", r.Misses)
		if r.UpgradeMisses > 0 {
			_, _ = fmt.Fprintf(h.config.Output, "  Upgrade Misses: %d\n", r.UpgradeMisses)
		}
		_, _ = fmt.Fprintf(h.config.Output, "  Miss Rate:      %.2f%%\n", r.MissRatePercent)
		_, _ = fmt.Fprintf(h.config.Output, "  Writebacks:     %d (%d B)\n", r.Writebacks, r.BusWriteBytes)
		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,protocol,cores,capacity,block_size,associativity,"+
			"accesses,hits,misses,upgrade_misses,writebacks,miss_rate,bus_write_bytes,bus_write_through_bytes")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%s,%d,%d,%d,%d,%d,%d,%d,%d,%d,%.2f,%d,%d\n",
			r.Name,
			r.Protocol,
			r.Cores,
			r.Capacity,
			r.BlockSize,
			r.Associativity,
			r.Accesses,
			r.Hits,
			r.Misses,
			r.UpgradeMisses,
			r.Writebacks,
			r.MissRatePercent,
			r.BusWriteBytes,
			r.BusWriteThroughBytes,
		)
	}
}

// PrintJSON outputs benchmark results as an indented JSON array.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	enc := json.NewEncoder(h.config.Output)
	enc.SetIndent("", "  ")

	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to encode benchmark results: %w", err)
	}

	return nil
}
