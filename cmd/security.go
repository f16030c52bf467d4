package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var securityCmd = &cobra.Command{
	Use:   "security",
	Short: "Add or remove securities in a portfolio",
}

var securityAddCmd = &cobra.Command{
	Use:   "add SYMBOL",
	Short: "Register a security, creating the portfolio if needed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if PortfolioNameOpt == "" {
			return fmt.Errorf("--portfolio is required")
		}
		theApp, err := newApp()
		if err != nil {
			return err
		}
		return theApp.AddSecurity(PortfolioNameOpt, args[0])
	},
}

var securityRmCmd = &cobra.Command{
	Use:   "rm SYMBOL",
	Short: "Remove a security and all its transactions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if PortfolioNameOpt == "" {
			return fmt.Errorf("--portfolio is required")
		}
		theApp, err := newApp()
		if err != nil {
			return err
		}
		return theApp.RemoveSecurity(PortfolioNameOpt, args[0])
	},
}

func init() {
	securityCmd.AddCommand(securityAddCmd)
	securityCmd.AddCommand(securityRmCmd)
	RootCmd.AddCommand(securityCmd)
}
