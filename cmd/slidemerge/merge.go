// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/slidemerge/internal/history"
	"github.com/pdiddy/slidemerge/internal/merge"
	"github.com/pdiddy/slidemerge/pkg/types"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [input-dir]",
	Short: "Merge all supported files from a folder into one PDF",
	Long: `Merge scans the input directory for presentations (.pptx, .ppt), images
(.png, .jpg, .jpeg, .gif, .bmp, .tiff, .tif), and PDFs, converts each to PDF,
and concatenates them in filename order into output-dir/name.

A file that fails conversion is reported and skipped; the merge continues
with the remaining files. The run fails only when nothing converts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().String("input", "input", "input directory to scan")
	mergeCmd.Flags().String("output-dir", "output", "directory for the merged PDF")
	mergeCmd.Flags().String("name", types.DefaultOutputName, "merged PDF filename")
	mergeCmd.Flags().String("soffice", "", "explicit path to the soffice binary (default: discover)")
	mergeCmd.Flags().Duration("timeout", 120*time.Second, "per-presentation conversion timeout")
	mergeCmd.Flags().String("report", "", "write the merge report as YAML to this path")
	mergeCmd.Flags().Bool("no-history", false, "do not record this run in the history ledger")

	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg := mergeConfigFromFlags(cmd, args)

	// Ctrl-C aborts the run, terminating any in-flight soffice process.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := merge.NewRunner(cfg.Office, os.Stdout)
	report, runErr := runner.Run(ctx, cfg)

	if report != nil {
		if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
			recordRun(report, runErr)
		}
		if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
			if err := writeReportYAML(report, reportPath); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not write report: %v\n", err)
			}
		}
	}

	return runErr
}

// mergeConfigFromFlags builds the run config: flags override config file
// values, which override defaults. A positional argument overrides the
// input flag.
func mergeConfigFromFlags(cmd *cobra.Command, args []string) types.MergeConfig {
	cfg := types.MergeConfig{
		InputDir:   stringSetting(cmd, "input", "merge.input_dir"),
		OutputDir:  stringSetting(cmd, "output-dir", "merge.output_dir"),
		OutputName: stringSetting(cmd, "name", "merge.output_name"),
		Office: types.OfficeConfig{
			Path:           stringSetting(cmd, "soffice", "office.path"),
			TimeoutRetries: 1,
		},
	}

	if len(args) > 0 {
		cfg.InputDir = args[0]
	}

	if cmd.Flags().Changed("timeout") {
		cfg.Office.Timeout, _ = cmd.Flags().GetDuration("timeout")
	} else if d := viper.GetDuration("office.timeout"); d > 0 {
		cfg.Office.Timeout = d
	}

	cfg.OutputName = normalizeOutputName(cfg.OutputName)
	return cfg
}

// stringSetting returns the flag value when set on the command line, the
// config file value when present, and the flag default otherwise.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

// normalizeOutputName applies the merged-filename conventions: empty falls
// back to the default, and a missing .pdf suffix is appended.
func normalizeOutputName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.DefaultOutputName
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name
}

// recordRun appends the run to the history ledger. Ledger trouble never
// fails a merge; it only warns.
func recordRun(report *types.MergeReport, runErr error) {
	store, err := history.NewStore(types.HistoryConfig{Dir: dataDir()})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.Record(context.Background(), report, runErr); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record run: %v\n", err)
	}
}

func writeReportYAML(report *types.MergeReport, path string) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
