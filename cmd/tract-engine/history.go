// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tract-engine/internal/history"
	"github.com/pdiddy/tract-engine/internal/report"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded pipeline runs",
	Long: `History reads the run history database for the subject directory.
Use list to see recent runs and show to print the fiber counts recorded
for one run.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the fiber counts recorded for a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyListCmd.Flags().Int("limit", 10, "maximum number of runs to list (0 = all)")
	historyListCmd.Flags().Bool("json", false, "output runs as JSON")
	historyShowCmd.Flags().Bool("json", false, "output counts as JSON")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory(cmd *cobra.Command) (*history.Store, error) {
	cfg, err := pipelineConfig(cmd)
	if err != nil {
		return nil, err
	}
	return history.Open(cfg.History.DBPath)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Runs(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-30s  %s\n", "Run", "Started", "Subject", "Failures")
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-30s  %d\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.SubjectDir, r.Failures)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	counts, err := store.Counts(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		return fmt.Errorf("no counts recorded for run %s", args[0])
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(counts)
	}
	fmt.Println(report.RenderTable(counts))
	return nil
}
