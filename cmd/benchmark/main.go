// Command benchmark runs the synthetic coherence workloads under each
// protocol.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv    Output results in CSV format (default: human-readable)
//	-json   Output results as JSON
//	-cores  Number of simulated cores (default: 4)
//	-config Path to a cache configuration JSON file
//	-sweep  Sweep capacity 2KB-1MB, 1/2/4 ways and 1/2/4 cores instead
//	-protocol Protocol used by -sweep (default: none)
//
// Example:
//
//	# Compare protocols in a spreadsheet
//	go run ./cmd/benchmark -csv > results.csv
//
//	# Write-back traffic against cache size
//	go run ./cmd/benchmark -sweep -csv > sweep.csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/cohsim/benchmarks"
	"github.com/sarchlab/cohsim/cache"
)

func main() {
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results as JSON")
	cores := flag.Int("cores", 4, "Number of simulated cores")
	configPath := flag.String("config", "", "Path to cache configuration JSON file")
	sweep := flag.Bool("sweep", false, "Sweep cache size, associativity and core count")
	protocolName := flag.String("protocol", "none", "Coherence protocol for -sweep")
	flag.Parse()

	config := benchmarks.DefaultConfig()
	config.Cores = *cores
	config.Output = os.Stdout

	if *configPath != "" {
		cacheConfig, err := cache.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading cache config: %v\n", err)
			os.Exit(1)
		}
		config.Cache = cacheConfig
	}

	harness := benchmarks.NewHarness(config)
	harness.AddBenchmarks(benchmarks.GetWorkloads())

	var (
		results []benchmarks.BenchmarkResult
		err     error
	)

	if *sweep {
		plan := benchmarks.DefaultSweep()

		plan.Protocol, err = cache.ParseProtocol(*protocolName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		results, err = harness.RunSweep(plan)
	} else {
		results, err = harness.RunAll()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *jsonOutput:
		if err := harness.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		fmt.Println("Coherence Benchmark Harness")
		fmt.Println("===========================")
		fmt.Printf("Cache: %dB, %dB blocks, %d-way\n",
			config.Cache.Capacity, config.Cache.BlockSize, config.Cache.Associativity)
		fmt.Printf("Cores: %d\n", config.Cores)
		fmt.Println("")

		harness.PrintResults(results)
	}
}
