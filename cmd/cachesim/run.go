package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/cohsim/cache"
	"github.com/sarchlab/cohsim/coherence"
	"github.com/sarchlab/cohsim/trace"
	"github.com/sarchlab/cohsim/tracing"
)

var (
	tracePath   string
	numCores    int
	traceOut    string
	traceOutDst string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a trace and print per-core statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		return runTrace(cmd.OutOrStdout(), config)
	},
}

func init() {
	flags := runCmd.Flags()
	flags.StringVarP(&tracePath, "trace", "t", "", "Path to the access trace")
	flags.IntVarP(&numCores, "cores", "n", 1, "Number of cores")
	flags.StringVar(&traceOut, "trace-out", "",
		"Record every access: log, csv or sqlite")
	flags.StringVar(&traceOutDst, "trace-path", "",
		"Base name of the access record file (default: generated)")

	_ = runCmd.MarkFlagRequired("trace")

	rootCmd.AddCommand(runCmd)
}

func runTrace(out io.Writer, config cache.Config) error {
	events, err := trace.ReadFile(tracePath)
	if err != nil {
		return err
	}

	var opts []coherence.Option

	writer, err := newTraceWriter(traceOut, traceOutDst)
	if err != nil {
		return err
	}

	if writer != nil {
		if err := writer.Init(); err != nil {
			return err
		}

		opts = append(opts, coherence.WithCacheHook(tracing.NewAccessTracer(writer)))
	}

	system, err := coherence.NewSystem(config, numCores, opts...)
	if err != nil {
		return err
	}

	if err := system.Replay(events); err != nil {
		return err
	}

	if writer != nil {
		if err := writer.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "protocol %s, %d core(s), cache %d %d %d, %d accesses\n",
		config.Protocol, numCores, config.Capacity, config.BlockSize,
		config.Associativity, len(events))

	for i := 0; i < system.NumCores(); i++ {
		fmt.Fprintf(out, "Core %d:\n", i)
		if err := system.Stats(i).Report(out); err != nil {
			return err
		}
	}

	if system.NumCores() > 1 {
		fmt.Fprintf(out, "Total:\n")
		return system.Aggregate().Report(out)
	}

	return nil
}

func newTraceWriter(kind, path string) (tracing.Writer, error) {
	switch kind {
	case "":
		return nil, nil
	case "log":
		return tracing.NewLogWriter(os.Stderr), nil
	case "csv":
		return tracing.NewCSVWriter(path), nil
	case "sqlite":
		return tracing.NewSQLiteWriter(path), nil
	}

	return nil, fmt.Errorf("unknown trace output %q, want log, csv or sqlite", kind)
}
