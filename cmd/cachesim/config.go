package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective cache configuration and its geometry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(config, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize cache config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, string(data))

		g := config.Geometry()
		fmt.Fprintf(out, "sets=%d offset_bits=%d index_bits=%d tag_bits=%d\n",
			g.NumSets, g.OffsetBits, g.IndexBits, g.TagBits)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
