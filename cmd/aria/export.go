// ABOUTME: CLI commands for exporting and importing wellness data.
// ABOUTME: Supports JSON and YAML export formats.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/aria/internal/storage"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export wellness data",
	Long: `Export all wellness data in various formats.

FORMATS:

  json   Full JSON export (suitable for backup/restore)
  yaml   YAML export (human-readable)

OPTIONS:

  --output, -o   Write to file instead of stdout

EXAMPLES:

  aria export json                  # Export all data as JSON
  aria export json -o backup.json   # Save to file
  aria export yaml                  # Export as YAML`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		all, err := repo.GetAllData()
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		data, err := storage.FormatExport(all, format)
		if err != nil {
			return err
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import wellness data from a backup",
	Long: `Import wellness data from a previously exported JSON or YAML file.

Records merge by ID: entries that already exist locally are kept as-is,
and check-ins merge by date with the existing day winning.

EXAMPLES:

  aria import backup.json
  aria import backup.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		raw, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		data, err := storage.ParseExport(raw)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		if err := repo.ImportData(data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
