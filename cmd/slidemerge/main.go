// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the slidemerge CLI, which merges
// presentations, images, and PDFs from a folder into one output PDF.
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

// rootCmd is the base command for the slidemerge CLI.
var rootCmd = &cobra.Command{
	Use:   "slidemerge",
	Short: "Merge presentations, images, and PDFs into a single PDF",
	Long: `slidemerge merges heterogeneous documents from an input folder into one
output PDF. Presentations (.pptx, .ppt) are rasterized through LibreOffice,
raster images are wrapped as single-page PDFs, and existing PDFs pass
through unchanged. Files contribute pages in filename order.

Run "slidemerge check" to verify that LibreOffice is installed; without it,
images and PDFs still merge and presentation files are skipped.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./slidemerge.yaml or ~/.config/slidemerge/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("slidemerge")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "slidemerge"))
		}
	}

	viper.SetEnvPrefix("SLIDEMERGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// dataDir resolves the directory for the run-history ledger.
func dataDir() string {
	if dir := viper.GetString("history.dir"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".slidemerge"
	}
	return filepath.Join(home, ".local", "share", "slidemerge")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
