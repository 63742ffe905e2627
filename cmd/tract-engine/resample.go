// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tract-engine/internal/mrtrix"
	"github.com/pdiddy/tract-engine/internal/resample"
)

var resampleCmd = &cobra.Command{
	Use:   "resample",
	Short: "Resample filtered tracts to their endpoints",
	Long: `Resample runs tckresample -endpoints on both filtered artifacts of
every configured tract, collapsing each streamline to its two terminal
points (_ep suffix). Run filter first; a missing filtered artifact is
reported as a tool failure and the batch continues.`,
	RunE: runResample,
}

func init() {
	rootCmd.AddCommand(resampleCmd)
}

func runResample(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}
	tc, err := mrtrix.Detect(cfg.Tools)
	if err != nil {
		return err
	}

	result := resample.Batch(cmd.Context(), tc, cfg, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d resample invocation(s) failed", result.Failed)
	}
	return nil
}
