// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tract-engine/internal/pipeline"
	"github.com/pdiddy/tract-engine/pkg/types"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Manage tract manifests",
}

var manifestInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a manifest with the default corticospinal tracts",
	Long: `Init writes a tract manifest holding the built-in left/right
corticospinal mapping (default path: tracts.yaml). Edit it to change the
tract set, then pass it via --manifest.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runManifestInit,
}

func init() {
	manifestCmd.AddCommand(manifestInitCmd)
	rootCmd.AddCommand(manifestCmd)
}

func runManifestInit(cmd *cobra.Command, args []string) error {
	path := "tracts.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("manifest %s already exists", path)
	}
	if err := pipeline.WriteManifest(path, types.DefaultTracts()); err != nil {
		return err
	}
	fmt.Printf("Manifest written: %s\n", path)
	return nil
}
