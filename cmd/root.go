package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jgagnon/acbtracker/app"
	"github.com/jgagnon/acbtracker/config"
	"github.com/jgagnon/acbtracker/log"
	"github.com/jgagnon/acbtracker/outfmt"
	ptf "github.com/jgagnon/acbtracker/portfolio"
	"github.com/jgagnon/acbtracker/storage"
)

var PortfolioFileOpt string
var PortfolioNameOpt string
var PrintFullValues = false
var CsvOutputDir string

var appConfig config.Config

// newApp builds the application wiring from the global flags and config.
func newApp() (*app.App, error) {
	path := PortfolioFileOpt
	if path == "" {
		path = appConfig.PortfolioFile()
	}

	var writer outfmt.ACBWriter = outfmt.NewSTDWriter(os.Stdout)
	if CsvOutputDir != "" {
		var err error
		writer, err = outfmt.NewCSVWriter(CsvOutputDir)
		if err != nil {
			return nil, err
		}
	}

	return &app.App{
		Store:        storage.NewFileStore(path),
		Writer:       writer,
		FullDecimals: PrintFullValues,
	}, nil
}

func runRootCmd(cmd *cobra.Command, args []string) error {
	theApp, err := newApp()
	if err != nil {
		return err
	}
	return theApp.ShowLedgers(PortfolioNameOpt)
}

func cmdName() string {
	binName := os.Args[0]
	return filepath.Base(binName)
}

// RootCmd represents the base command when called without any subcommands.
// Bare invocation prints the replayed ACB ledger of every security.
var RootCmd = &cobra.Command{
	Use:   cmdName(),
	Short: "Adjusted cost base (ACB) tracking tool",
	Long: `A cli tool which tracks stock and ETF transactions in portfolios, and
computes Adjusted Cost Base (ACB), capital gains, and year-end tax reports
under Canadian average-cost rules.

Run without a subcommand to print the replayed ledger of every security.`,
	RunE:          runRootCmd,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       "0.3.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(onInit)

	// Persistent flags, which are global to the app cli
	RootCmd.PersistentFlags().BoolVarP(&log.VerboseEnabled, "verbose", "v", false,
		"Print verbose output")
	RootCmd.PersistentFlags().StringVar(&PortfolioFileOpt, "portfolio-file", "",
		"Path of the portfolio document (default $ACB_HOME/portfolios.json)")
	RootCmd.PersistentFlags().StringVarP(&PortfolioNameOpt, "portfolio", "p", "",
		"Restrict the command to one portfolio, matched case-insensitively")
	RootCmd.PersistentFlags().BoolVar(&PrintFullValues, "print-full-values", false,
		"Print all decimal values at full precision instead of rounding")
	RootCmd.PersistentFlags().StringVar(&CsvOutputDir, "csv-output-dir", "",
		"Write tables as CSV files into this directory instead of printing them")
}

// onInit loads config from the environment before any command runs.
func onInit() {
	appConfig = config.Load()
	ptf.CsvDateFormat = appConfig.CsvDateFormat
}
