// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tract-engine/internal/history"
	"github.com/pdiddy/tract-engine/internal/mrtrix"
	"github.com/pdiddy/tract-engine/internal/pipeline"
	"github.com/pdiddy/tract-engine/internal/report"
	"github.com/pdiddy/tract-engine/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: filter, resample, count, report",
	Long: `Run executes the whole pipeline for every configured tract: ROI
filtering (standard and inverse), endpoint resampling, and streamline
counting, then renders the fiber-count report as a PDF table and a YAML
export in the subject directory.

Stage failures do not abort the run; affected counts appear as "n/a" in
the report and the command exits non-zero after completing all stages.`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().Bool("parallel", false, "process tracts concurrently")
	runCmd.Flags().Bool("no-history", false, "skip recording the run in the history database")

	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}
	tc, err := mrtrix.Detect(cfg.Tools)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(cmd.Context(), tc, cfg, os.Stdout)
	if err != nil {
		return err
	}

	records := result.Records()
	fmt.Println(report.RenderTable(records))

	pdfPath := filepath.Join(cfg.SubjectDir, cfg.Report.PDFName)
	if err := report.WritePDF(pdfPath, records); err != nil {
		return err
	}
	fmt.Printf("PDF report generated: %s\n", pdfPath)

	yamlPath := filepath.Join(cfg.SubjectDir, cfg.Report.YAMLName)
	if err := report.WriteYAML(yamlPath, result.RunID, records); err != nil {
		return err
	}

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if cfg.History.Enabled && !noHistory {
		if err := recordRun(cmd.Context(), cfg, result, records); err != nil {
			fmt.Fprintf(os.Stderr, "warning: recording run history failed: %v\n", err)
		}
	}

	if failures := result.Failures(); len(failures) > 0 {
		for _, f := range failures {
			fmt.Fprintf(os.Stderr, "stage failed: %s\n", f)
		}
		return fmt.Errorf("%d pipeline stage(s) failed", len(failures))
	}
	return nil
}

func recordRun(ctx context.Context, cfg types.PipelineConfig, result pipeline.Result, records []types.FiberCount) error {
	store, err := history.Open(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.RecordRun(ctx, history.RunRecord{
		ID:         result.RunID,
		SubjectDir: cfg.SubjectDir,
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
		Failures:   len(result.Failures()),
	}, records)
}
