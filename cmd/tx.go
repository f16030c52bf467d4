package cmd

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jgagnon/acbtracker/date"
	ptf "github.com/jgagnon/acbtracker/portfolio"
)

var txSymbolOpt string
var txDateOpt string
var txTypeOpt string
var txSharesOpt string
var txPriceOpt string
var txCommissionOpt string
var txAmountOpt string
var txNoteOpt string

func decimalFlag(name, val string) (decimal.Decimal, error) {
	if strings.TrimSpace(val) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(val))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s value %q", name, val)
	}
	return d, nil
}

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Add or remove individual transactions",
}

var txAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add one transaction to a security's ledger",
	Long: `Add one transaction to a security's ledger. The total amount is taken
from --amount when given, otherwise computed as shares times price. For
splits, --shares is the split multiplier (default 2).

Valid transaction types:
  BUY, SELL, ROC, REINVESTED_DIST, CAPITAL_GAINS_DIST,
  REINVESTED_CAP_GAINS, STOCK_SPLIT, SUPERFICIAL_LOSS, ACB_ADJUSTMENT`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if PortfolioNameOpt == "" {
			return fmt.Errorf("--portfolio is required")
		}
		if txSymbolOpt == "" {
			return fmt.Errorf("--symbol is required")
		}
		kind, ok := ptf.ParseTxKind(txTypeOpt)
		if !ok {
			return fmt.Errorf("unknown transaction type %q", txTypeOpt)
		}
		d, err := date.ParseDefault(txDateOpt)
		if err != nil {
			return fmt.Errorf("invalid --date %q, want YYYY-MM-DD", txDateOpt)
		}

		ev := &ptf.TransactionEvent{Date: d, Kind: kind, Note: txNoteOpt}
		if ev.Quantity, err = decimalFlag("shares", txSharesOpt); err != nil {
			return err
		}
		if ev.UnitPrice, err = decimalFlag("price", txPriceOpt); err != nil {
			return err
		}
		if ev.Commission, err = decimalFlag("commission", txCommissionOpt); err != nil {
			return err
		}
		if ev.Amount, err = decimalFlag("amount", txAmountOpt); err != nil {
			return err
		}

		theApp, err := newApp()
		if err != nil {
			return err
		}
		return theApp.AddTx(PortfolioNameOpt, txSymbolOpt, ev)
	},
}

var txRmCmd = &cobra.Command{
	Use:   "rm EVENT_ID",
	Short: "Remove one transaction by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if PortfolioNameOpt == "" {
			return fmt.Errorf("--portfolio is required")
		}
		if txSymbolOpt == "" {
			return fmt.Errorf("--symbol is required")
		}
		theApp, err := newApp()
		if err != nil {
			return err
		}
		return theApp.RemoveTx(PortfolioNameOpt, txSymbolOpt, args[0])
	},
}

func init() {
	txCmd.PersistentFlags().StringVarP(&txSymbolOpt, "symbol", "s", "",
		"Security ticker")
	txAddCmd.Flags().StringVarP(&txDateOpt, "date", "d", "",
		"Transaction date, YYYY-MM-DD")
	txAddCmd.Flags().StringVarP(&txTypeOpt, "type", "t", "BUY",
		"Transaction type")
	txAddCmd.Flags().StringVar(&txSharesOpt, "shares", "",
		"Share quantity (split multiplier for STOCK_SPLIT)")
	txAddCmd.Flags().StringVar(&txPriceOpt, "price", "",
		"Price per share")
	txAddCmd.Flags().StringVar(&txCommissionOpt, "commission", "",
		"Commission or fees")
	txAddCmd.Flags().StringVar(&txAmountOpt, "amount", "",
		"Total amount, overriding shares times price")
	txAddCmd.Flags().StringVar(&txNoteOpt, "note", "",
		"Free-form note")
	txCmd.AddCommand(txAddCmd)
	txCmd.AddCommand(txRmCmd)
	RootCmd.AddCommand(txCmd)
}
