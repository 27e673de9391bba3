// Package main provides the entry point for cohsim.
// cohsim is a trace-driven simulator of private set-associative caches kept
// coherent by the NONE, VI or MSI protocol, built on Akita.
//
// For the full CLI, use: go run ./cmd/cachesim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("cohsim - Cache Coherence Simulator")
	fmt.Println("Built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: cachesim run -t <trace> [options]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -p, --protocol      none, vi or msi")
	fmt.Println("  -n, --cores         Number of cores")
	fmt.Println("  --capacity          Cache capacity in bytes")
	fmt.Println("  --block-size        Block size in bytes")
	fmt.Println("  --assoc             Ways per set")
	fmt.Println("  --config            Path to cache configuration JSON file")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/cachesim' for the full CLI.")
	fmt.Println("Run 'go run ./cmd/benchmark' to compare protocols on synthetic workloads.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/cachesim' instead.")
	}
}
