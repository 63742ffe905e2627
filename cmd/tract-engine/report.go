// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tract-engine/internal/pipeline"
	"github.com/pdiddy/tract-engine/internal/report"
	"github.com/pdiddy/tract-engine/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the fiber-count report from existing artifacts",
	Long: `Report recounts the original and filtered artifacts of every
configured tract and renders the fiber-count table as a one-page PDF and
a YAML export in the subject directory, without invoking the MRtrix3
tools. Artifacts missing because an earlier stage failed appear as "n/a".`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}

	paths := configuredArtifacts(cfg)
	records := make([]types.FiberCount, len(paths))
	for i, path := range paths {
		records[i] = pipeline.CountArtifact(path, os.Stderr)
	}

	fmt.Println(report.RenderTable(records))

	pdfPath := filepath.Join(cfg.SubjectDir, cfg.Report.PDFName)
	if err := report.WritePDF(pdfPath, records); err != nil {
		return err
	}
	fmt.Printf("PDF report generated: %s\n", pdfPath)

	yamlPath := filepath.Join(cfg.SubjectDir, cfg.Report.YAMLName)
	return report.WriteYAML(yamlPath, "", records)
}
