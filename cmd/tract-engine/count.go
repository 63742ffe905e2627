// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tract-engine/internal/filter"
	"github.com/pdiddy/tract-engine/internal/pipeline"
	"github.com/pdiddy/tract-engine/internal/report"
	"github.com/pdiddy/tract-engine/pkg/types"
)

var countCmd = &cobra.Command{
	Use:   "count [files...]",
	Short: "Count streamlines in .tck files",
	Long: `Count reads .tck files and reports their streamline counts. With no
arguments it counts the original and filtered artifacts of every
configured tract. Unreadable files count as "n/a"; that is unknown, not
zero.`,
	RunE: runCount,
}

func init() {
	countCmd.Flags().Bool("json", false, "output counts as JSON")

	rootCmd.AddCommand(countCmd)
}

func runCount(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		cfg, err := pipelineConfig(cmd)
		if err != nil {
			return err
		}
		paths = configuredArtifacts(cfg)
	}

	records := make([]types.FiberCount, len(paths))
	for i, path := range paths {
		records[i] = pipeline.CountArtifact(path, os.Stderr)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	fmt.Println(report.RenderTable(records))
	return nil
}

// configuredArtifacts lists the original and filtered artifact paths of
// every configured tract, in report order.
func configuredArtifacts(cfg types.PipelineConfig) []string {
	paths := make([]string, 0, 3*len(cfg.Tracts))
	for _, t := range cfg.Tracts {
		input := filepath.Join(cfg.SubjectDir, t.File)
		outputs := filter.OutputsFor(input)
		paths = append(paths, input, outputs.Standard, outputs.Inverse)
	}
	return paths
}
