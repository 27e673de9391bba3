// Package main provides the cachesim command line tool. cachesim replays a
// memory access trace through per-core caches running a coherence protocol
// and prints the resulting statistics.
package main

import (
	"github.com/tebeka/atexit"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
