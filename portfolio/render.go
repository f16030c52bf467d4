package portfolio

import (
	"fmt"

	"github.com/shopspring/decimal"

	decimal_opt "github.com/jgagnon/acbtracker/decimal_value"
	"github.com/jgagnon/acbtracker/util"
)

// Presentation is the only place dollar values are rounded. The engine keeps
// full precision; PrintAllDecimals exposes it for debugging.
type _PrintHelper struct {
	PrintAllDecimals bool
}

func (h _PrintHelper) CurrStr(val decimal.Decimal) string {
	if h.PrintAllDecimals {
		return val.String()
	}
	return val.StringFixed(2)
}

func (h _PrintHelper) DollarStr(val decimal.Decimal) string {
	return "$" + h.CurrStr(val)
}

func (h _PrintHelper) OptDollarStr(val decimal_opt.DecimalOpt) string {
	if val.IsNull {
		return "-"
	}
	return h.PlusMinusDollar(val, false)
}

func (h _PrintHelper) PlusMinusDollar(val decimal_opt.DecimalOpt, showPlus bool) string {
	if val.IsNull {
		return "-"
	}
	if val.IsNegative() {
		return fmt.Sprintf("-$%s", h.CurrStr(val.Decimal.Neg()))
	}
	plus := ""
	if showPlus {
		plus = "+"
	}
	return fmt.Sprintf("%s$%s", plus, h.CurrStr(val.Decimal))
}

func (h _PrintHelper) SharesStr(val decimal.Decimal) string {
	if h.PrintAllDecimals {
		return val.String()
	}
	return val.RoundBank(4).String()
}

func strOrDash(useStr bool, str string) string {
	if useStr {
		return str
	}
	return "-"
}

type RenderTable struct {
	Header []string
	Rows   [][]string
	Footer []string
	Notes  []string
	Errors []error
}

// RenderLedgerTable builds the per-security replay table: every event with
// its post-state and any realized gain.
func RenderLedgerTable(result *ReplayResult, renderFullDollarValues bool) *RenderTable {
	table := &RenderTable{}
	table.Header = []string{"Date", "TX", "Shares", "Amount", "Commission",
		"Gain/Loss", "Share Balance", "Total ACB", "ACB/Share", "Note"}

	ph := _PrintHelper{PrintAllDecimals: renderFullDollarValues}

	for _, row := range result.Rows {
		tx := row.Tx
		isSplit := tx.Kind == STOCK_SPLIT
		table.Rows = append(table.Rows, []string{
			tx.Date.String(),
			tx.Kind.String(),
			strOrDash(!tx.Quantity.IsZero(),
				util.Tern(isSplit, "×"+tx.Quantity.String(), ph.SharesStr(tx.Quantity))),
			strOrDash(!tx.Amount.IsZero(), ph.DollarStr(tx.Amount)),
			strOrDash(!tx.Commission.IsZero(), ph.DollarStr(tx.Commission)),
			ph.OptDollarStr(row.GainLoss),
			ph.SharesStr(row.RunningShares),
			ph.DollarStr(row.RunningAcb),
			strOrDash(row.RunningShares.IsPositive(), ph.DollarStr(row.AcbPerShare)),
			row.Note,
		})
	}

	table.Footer = []string{"", "Total", ph.SharesStr(result.TotalShares), "", "", "",
		"", ph.DollarStr(result.TotalAcb),
		strOrDash(result.TotalShares.IsPositive(), ph.DollarStr(result.AcbPerShare)), ""}
	return table
}

// RenderHoldingsTable summarises every security of a portfolio in one table.
func RenderHoldingsTable(p *Portfolio, renderFullDollarValues bool) *RenderTable {
	table := &RenderTable{}
	table.Header = []string{"Security", "Events", "Shares", "Total ACB", "ACB/Share"}

	ph := _PrintHelper{PrintAllDecimals: renderFullDollarValues}

	portfolioTotal := decimal.Zero
	for _, sym := range p.Symbols() {
		result := Replay(p.Holdings[sym])
		portfolioTotal = portfolioTotal.Add(result.TotalAcb)
		table.Rows = append(table.Rows, []string{
			sym,
			fmt.Sprintf("%d", len(p.Holdings[sym])),
			ph.SharesStr(result.TotalShares),
			ph.DollarStr(result.TotalAcb),
			strOrDash(result.TotalShares.IsPositive(), ph.DollarStr(result.AcbPerShare)),
		})
	}
	table.Footer = []string{"Total", "", "", ph.DollarStr(portfolioTotal), ""}
	return table
}

// RenderCapitalGainsTable lays the report out Schedule-3 style: one row per
// disposition, totals, and the 50% inclusion figure.
func RenderCapitalGainsTable(report *CapitalGainsReport, renderFullDollarValues bool) *RenderTable {
	table := &RenderTable{}
	table.Header = []string{"Security", "Date", "TX", "Year Acquired", "Proceeds",
		"Cost Base", "Outlays", "Gain/Loss", "Note"}

	ph := _PrintHelper{PrintAllDecimals: renderFullDollarValues}

	for _, row := range report.Rows {
		table.Rows = append(table.Rows, []string{
			row.Security,
			row.Date,
			row.Kind.String(),
			strOrDash(row.AcquisitionYear != "", row.AcquisitionYear),
			strOrDash(!row.Proceeds.IsZero(), ph.DollarStr(row.Proceeds)),
			strOrDash(!row.DispositionAcb.IsZero(), ph.DollarStr(row.DispositionAcb)),
			strOrDash(!row.Outlays.IsZero(), ph.DollarStr(row.Outlays)),
			ph.OptDollarStr(row.GainLoss),
			row.Note,
		})
	}

	table.Footer = []string{"Total", "", "", "",
		ph.DollarStr(report.TotalProceeds),
		ph.DollarStr(report.TotalAcb),
		ph.DollarStr(report.TotalOutlays),
		ph.PlusMinusDollar(decimal_opt.New(report.Net), false),
		fmt.Sprintf("Taxable (50%%): %s",
			ph.PlusMinusDollar(decimal_opt.New(report.TaxableAmount), false)),
	}
	table.Notes = append(table.Notes, fmt.Sprintf(
		" Gains %s; Losses %s",
		ph.PlusMinusDollar(decimal_opt.New(report.TotalGains), true),
		ph.PlusMinusDollar(decimal_opt.New(report.TotalLosses), false)))
	return table
}

/*
RenderAggregateCapitalGains renders out to this:

	| Year             | Capital Gains |
	+------------------+---------------+
	| 2000             | xxxx.xx       |
	| Since inception  | xxxx.xx       |
*/
func RenderAggregateCapitalGains(
	gains *CumulativeCapitalGains, renderFullDollarValues bool) *RenderTable {

	table := &RenderTable{}
	table.Header = []string{"Year", "Capital Gains"}

	ph := _PrintHelper{PrintAllDecimals: renderFullDollarValues}

	for _, year := range gains.YearsSorted() {
		yearlyTotal := gains.CapitalGainsYearTotals[year]
		table.Rows = append(table.Rows,
			[]string{fmt.Sprintf("%d", year),
				ph.PlusMinusDollar(decimal_opt.New(yearlyTotal), false)})
	}
	table.Rows = append(table.Rows,
		[]string{"Since inception",
			ph.PlusMinusDollar(decimal_opt.New(gains.CapitalGainsTotal), false)})

	return table
}
