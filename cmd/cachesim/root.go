package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/cohsim/cache"
)

var (
	configPath      string
	protocolName    string
	capacity        int
	blockSize       int
	associativity   int
	lruOnInvalidate bool
	cacheLog2       []int
)

var rootCmd = &cobra.Command{
	Use:   "cachesim",
	Short: "cachesim simulates private set-associative caches kept coherent by NONE, VI or MSI.",
	Long: `cachesim simulates private set-associative caches kept coherent by NONE, VI or MSI. ` +
		`Cache parameters come from defaults, then an optional JSON config file, then flags.`,
	SilenceUsage: true,
}

func init() {
	defaults := cache.DefaultConfig()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to cache configuration JSON file")
	flags.StringVarP(&protocolName, "protocol", "p", defaults.Protocol.String(),
		"Coherence protocol: none, vi or msi")
	flags.IntVar(&capacity, "capacity", defaults.Capacity, "Cache capacity in bytes")
	flags.IntVar(&blockSize, "block-size", defaults.BlockSize, "Block size in bytes")
	flags.IntVar(&associativity, "assoc", defaults.Associativity, "Ways per set")
	flags.IntSliceVar(&cacheLog2, "cache", nil,
		"Cache shape as log2(capacity),log2(block size),ways, e.g. 13,6,4")
	flags.BoolVar(&lruOnInvalidate, "lru-on-invalidate", defaults.LRUOnInvalidate,
		"Make an invalidated way the next victim of its set")
}

// buildConfig layers the config file and the explicitly set flags over the
// defaults.
func buildConfig(cmd *cobra.Command) (cache.Config, error) {
	config := cache.DefaultConfig()

	if configPath != "" {
		var err error
		config, err = cache.LoadConfig(configPath)
		if err != nil {
			return cache.Config{}, err
		}
	}

	flags := cmd.Flags()

	if flags.Changed("protocol") {
		p, err := cache.ParseProtocol(protocolName)
		if err != nil {
			return cache.Config{}, err
		}
		config.Protocol = p
	}
	if flags.Changed("capacity") {
		config.Capacity = capacity
	}
	if flags.Changed("block-size") {
		config.BlockSize = blockSize
	}
	if flags.Changed("assoc") {
		config.Associativity = associativity
	}
	if flags.Changed("cache") {
		var err error
		config, err = applyCacheShape(config, cacheLog2)
		if err != nil {
			return cache.Config{}, err
		}
	}
	if flags.Changed("lru-on-invalidate") {
		config.LRUOnInvalidate = lruOnInvalidate
	}

	if err := config.Validate(); err != nil {
		return cache.Config{}, fmt.Errorf("invalid cache configuration: %w", err)
	}

	return config, nil
}

// applyCacheShape applies a --cache triple. It overrides --capacity,
// --block-size and --assoc.
func applyCacheShape(config cache.Config, shape []int) (cache.Config, error) {
	if len(shape) != 3 {
		return cache.Config{}, fmt.Errorf(
			"--cache takes log2(capacity),log2(block size),ways, got %d value(s)", len(shape))
	}

	return config.WithLog2Sizes(shape[0], shape[1], shape[2]), nil
}
