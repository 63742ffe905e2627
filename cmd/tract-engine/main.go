// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the tract-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the tract-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "tract-engine",
	Short: "Tractography post-processing for ROI-filtered fiber counts",
	Long: `tract-engine automates a tractography post-processing pipeline over a
subject directory: it filters .tck streamline files against region-of-
interest masks with the MRtrix3 tools, resamples the filtered tracts to
their endpoints, counts streamlines at each stage, and renders a
fiber-count report.

Each stage is a subcommand: filter, resample, count, and report. The run
command executes the whole pipeline and records it in the run history.
Without a manifest the built-in left/right corticospinal tract mapping is
used.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./tract-engine.yaml or ~/.config/tract-engine/config.yaml)")
	rootCmd.PersistentFlags().String("dir", "", "subject directory holding the tract and ROI files")
	rootCmd.PersistentFlags().String("manifest", "", "tract manifest YAML (default: built-in corticospinal tracts)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("tract-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "tract-engine"))
		}
	}

	viper.SetEnvPrefix("TRACT_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
