package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import FILE [FILE ...]",
	Short: "Import transactions from CSV exports",
	Long: `Import transactions from a CSV file. Files exported from
AdjustedCostBase.ca are detected from their first line; anything else is
parsed as the native tagged CSV format.

Imported rows merge into existing portfolios by name. Nothing is written
unless the whole file imports cleanly.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		theApp, err := newApp()
		if err != nil {
			return err
		}
		for _, fname := range args {
			if err := theApp.ImportFile(fname); err != nil {
				return err
			}
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Export all transactions as native CSV",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		theApp, err := newApp()
		if err != nil {
			return err
		}
		out := os.Stdout
		if len(args) == 1 {
			fp, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer fp.Close()
			out = fp
		}
		return theApp.Export(out)
	},
}

func init() {
	RootCmd.AddCommand(importCmd)
	RootCmd.AddCommand(exportCmd)
}
