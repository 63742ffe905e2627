// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/tract-engine/internal/pipeline"
	"github.com/pdiddy/tract-engine/pkg/types"
)

// pipelineConfig assembles the pipeline configuration from flags, the
// viper config file, and defaults, in that order of precedence. The tract
// set comes from --manifest, the config file's tracts key, or the built-in
// corticospinal mapping.
func pipelineConfig(cmd *cobra.Command) (types.PipelineConfig, error) {
	cfg := types.PipelineConfig{
		SubjectDir: stringSetting(cmd, "dir", "subject_dir", "."),
		Tools: types.ToolsConfig{
			Tckedit:     viper.GetString("tools.tckedit"),
			Tckresample: viper.GetString("tools.tckresample"),
		},
		Report: types.ReportConfig{
			PDFName:  viper.GetString("report.pdf_name"),
			YAMLName: viper.GetString("report.yaml_name"),
		},
		History: types.HistoryConfig{
			Enabled: true,
			DBPath:  viper.GetString("history.db_path"),
		},
	}
	if viper.IsSet("history.enabled") {
		cfg.History.Enabled = viper.GetBool("history.enabled")
	}

	if manifestPath := stringSetting(cmd, "manifest", "manifest", ""); manifestPath != "" {
		tracts, err := pipeline.ReadManifest(manifestPath)
		if err != nil {
			return cfg, err
		}
		cfg.Tracts = tracts
	} else if viper.IsSet("tracts") {
		if err := viper.UnmarshalKey("tracts", &cfg.Tracts); err != nil {
			return cfg, fmt.Errorf("parsing tracts from config: %w", err)
		}
	}

	if f := cmd.Flags().Lookup("parallel"); f != nil {
		cfg.Parallel, _ = cmd.Flags().GetBool("parallel")
		if !f.Changed && viper.IsSet("parallel") {
			cfg.Parallel = viper.GetBool("parallel")
		}
	}

	cfg.ApplyDefaults()
	return cfg, nil
}

// stringSetting resolves a string value from a flag, then a viper key,
// then a fallback.
func stringSetting(cmd *cobra.Command, flag, key, fallback string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}
