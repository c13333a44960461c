// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/slidemerge/internal/history"
	"github.com/pdiddy/slidemerge/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent merge runs",
	Long: `History lists the runs recorded in the local ledger, newest first:
when each run started, what was merged, where the output went, and whether
the run failed.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum runs to list (default from config, 20)")
	historyCmd.Flags().Bool("json", false, "emit JSON instead of a table")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(types.HistoryConfig{
		Dir:        dataDir(),
		MaxResults: viper.GetInt("history.max_results"),
	})
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-30s  %-9s  %-6s  %-8s  %s\n",
		"Started", "Input", "Succeeded", "Failed", "Duration", "Output")
	for _, r := range runs {
		out := r.OutputPath
		if r.Error != "" {
			out = "failed: " + r.Error
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-30s  %-9d  %-6d  %-8s  %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			truncate(r.InputDir, 30),
			r.Succeeded, r.Failed,
			r.Duration.Round(10*time.Millisecond),
			out)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
