// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/slidemerge/internal/office"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that the external dependencies are installed",
	Long: `Check probes for the LibreOffice converter (soffice) on the search path
and in the well-known install locations. Images and PDFs merge without it;
presentation files require it.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	fmt.Println("Checking LibreOffice (soffice)...")

	path := viper.GetString("office.path")
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			fmt.Printf("  configured path %s is not usable: %v\n", path, err)
			return fmt.Errorf("configured soffice path not found")
		}
		fmt.Printf("  ok: %s (from config)\n", path)
		return nil
	}

	located, err := office.Locate()
	if err != nil {
		fmt.Println("  not found")
		fmt.Println()
		fmt.Println("LibreOffice is required to convert presentation files.")
		fmt.Printf("To install it, run:\n  %s\n", office.InstallHint())
		fmt.Println("Or download it from https://www.libreoffice.org/download/")
		fmt.Println()
		fmt.Println("Without it, images and PDFs still merge; presentations are skipped.")
		return err
	}

	fmt.Printf("  ok: %s\n", located)
	return nil
}
