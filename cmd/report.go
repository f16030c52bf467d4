package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var reportYearOpt int
var reportAggregateOpt = false

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a capital gains report for a tax year",
	Long: `Generate a Schedule-3-shaped capital gains report for one tax year,
or with --aggregate, net realized gains per year across all portfolios.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		theApp, err := newApp()
		if err != nil {
			return err
		}
		if reportAggregateOpt {
			return theApp.RunAggregateReport()
		}
		year := reportYearOpt
		if year == 0 {
			year = time.Now().Year() - 1
		}
		if year < 1900 || year > 9999 {
			return fmt.Errorf("invalid tax year %d", year)
		}
		return theApp.RunReport(PortfolioNameOpt, year)
	},
}

var holdingsCmd = &cobra.Command{
	Use:   "holdings",
	Short: "Show current share balances and ACB per security",
	RunE: func(cmd *cobra.Command, args []string) error {
		theApp, err := newApp()
		if err != nil {
			return err
		}
		return theApp.ShowHoldings(PortfolioNameOpt)
	},
}

func init() {
	reportCmd.Flags().IntVarP(&reportYearOpt, "year", "y", 0,
		"Tax year to report on (default last year)")
	reportCmd.Flags().BoolVar(&reportAggregateOpt, "aggregate", false,
		"Show cumulative net gains per year across all portfolios")
	RootCmd.AddCommand(reportCmd)
	RootCmd.AddCommand(holdingsCmd)
}
