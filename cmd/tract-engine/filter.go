// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tract-engine/internal/filter"
	"github.com/pdiddy/tract-engine/internal/mrtrix"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter tract files against their ROI masks",
	Long: `Filter runs tckedit for every configured tract, producing the
streamlines that traverse all ROI masks (_ICPED) and the complement set
(_ICPED_inv). Existing artifacts are overwritten. Individual tool
failures are reported and the batch continues.`,
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}
	tc, err := mrtrix.Detect(cfg.Tools)
	if err != nil {
		return err
	}

	result := filter.Batch(cmd.Context(), tc, cfg, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d filter invocation(s) failed", result.Failed)
	}
	return nil
}
