package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var distSymbolOpt string
var distYearOpt int

var distributionsCmd = &cobra.Command{
	Use:   "distributions",
	Short: "Reconcile year-end ETF distribution breakdowns",
}

var distributionsApplyCmd = &cobra.Command{
	Use:   "apply RECORD_JSON",
	Short: "Apply a distribution record to a security's ledger",
	Long: `Apply a year-end distribution breakdown to a security's ledger.

The record file is JSON describing per-unit components (reinvested capital
gains, return of capital) for one tax year. Non-cash components become
reinvested capital gains events; return of capital components become ROC
events. A year already applied to the security is rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if PortfolioNameOpt == "" {
			return fmt.Errorf("--portfolio is required")
		}
		if distSymbolOpt == "" {
			return fmt.Errorf("--symbol is required")
		}
		if distYearOpt < 1900 || distYearOpt > 9999 {
			return fmt.Errorf("invalid tax year %d", distYearOpt)
		}
		theApp, err := newApp()
		if err != nil {
			return err
		}
		fp, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fp.Close()
		return theApp.ApplyDistributions(
			PortfolioNameOpt, distSymbolOpt, distYearOpt, fp)
	},
}

func init() {
	distributionsApplyCmd.Flags().StringVarP(&distSymbolOpt, "symbol", "s", "",
		"Security ticker the record applies to")
	distributionsApplyCmd.Flags().IntVarP(&distYearOpt, "year", "y", 0,
		"Tax year of the distribution record")
	distributionsCmd.AddCommand(distributionsApplyCmd)
	RootCmd.AddCommand(distributionsCmd)
}
