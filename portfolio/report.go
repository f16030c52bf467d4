package portfolio

import (
	"sort"

	"github.com/shopspring/decimal"

	decimal_opt "github.com/jgagnon/acbtracker/decimal_value"
)

// DispositionRow is one Schedule-3-shaped line of a capital gains report.
// Stock splits appear as annotation rows: they carry no gain and contribute
// zero to every dollar total.
type DispositionRow struct {
	Security        string
	Date            string
	Kind            TxKind
	AcquisitionYear string
	Proceeds        decimal.Decimal
	DispositionAcb  decimal.Decimal
	Outlays         decimal.Decimal
	GainLoss        decimal_opt.DecimalOpt
	Note            string
}

// CapitalGainsReport summarises one portfolio's dispositions for a tax year.
type CapitalGainsReport struct {
	Portfolio string
	Year      int
	Rows      []*DispositionRow

	TotalGains    decimal.Decimal
	TotalLosses   decimal.Decimal
	Net           decimal.Decimal
	TotalProceeds decimal.Decimal
	TotalAcb      decimal.Decimal
	TotalOutlays  decimal.Decimal
	TaxableAmount decimal.Decimal
}

var halfInclusion = decimal.RequireFromString("0.5")

// GenerateCapitalGainsReport replays every security in the portfolio and
// keeps the target year's rows which either realized a gain/loss or are
// stock splits. An empty ledger yields an empty report.
func GenerateCapitalGainsReport(p *Portfolio, year int) *CapitalGainsReport {
	report := &CapitalGainsReport{Portfolio: p.Name, Year: year}

	for _, sym := range p.Symbols() {
		rows := Replay(p.Holdings[sym]).Rows
		acquiredYear := AcquisitionYear(rows)
		for _, row := range rows {
			if row.Tx.Date.Year() != year {
				continue
			}
			if row.GainLoss.IsNull && row.Tx.Kind != STOCK_SPLIT {
				continue
			}
			report.Rows = append(report.Rows, &DispositionRow{
				Security:        sym,
				Date:            row.Tx.Date.String(),
				Kind:            row.Tx.Kind,
				AcquisitionYear: acquiredYear,
				Proceeds:        row.Proceeds,
				DispositionAcb:  row.DispositionAcb,
				Outlays:         row.Outlays,
				GainLoss:        row.GainLoss,
				Note:            row.Note,
			})
		}
	}

	for _, row := range report.Rows {
		if !row.GainLoss.IsNull {
			if row.GainLoss.IsNegative() {
				report.TotalLosses = report.TotalLosses.Add(row.GainLoss.Decimal)
			} else {
				report.TotalGains = report.TotalGains.Add(row.GainLoss.Decimal)
			}
		}
		report.TotalProceeds = report.TotalProceeds.Add(row.Proceeds)
		report.TotalAcb = report.TotalAcb.Add(row.DispositionAcb)
		report.TotalOutlays = report.TotalOutlays.Add(row.Outlays)
	}
	report.Net = report.TotalGains.Add(report.TotalLosses)
	report.TaxableAmount = report.Net.Mul(halfInclusion)
	return report
}

// CumulativeCapitalGains is the all-years view: net realized gains per
// calendar year plus the total since inception.
type CumulativeCapitalGains struct {
	CapitalGainsTotal      decimal.Decimal
	CapitalGainsYearTotals map[int]decimal.Decimal
}

func (g *CumulativeCapitalGains) YearsSorted() []int {
	years := make([]int, 0, len(g.CapitalGainsYearTotals))
	for year := range g.CapitalGainsYearTotals {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// CalcCumulativeCapitalGains replays all securities in all portfolios and
// buckets realized gains by year.
func CalcCumulativeCapitalGains(portfolios []*Portfolio) *CumulativeCapitalGains {
	gains := &CumulativeCapitalGains{
		CapitalGainsYearTotals: map[int]decimal.Decimal{},
	}
	for _, p := range portfolios {
		for _, sym := range p.Symbols() {
			for _, row := range Replay(p.Holdings[sym]).Rows {
				if row.GainLoss.IsNull {
					continue
				}
				year := row.Tx.Date.Year()
				yearTotal, ok := gains.CapitalGainsYearTotals[year]
				if !ok {
					yearTotal = decimal.Zero
				}
				gains.CapitalGainsYearTotals[year] = yearTotal.Add(row.GainLoss.Decimal)
				gains.CapitalGainsTotal = gains.CapitalGainsTotal.Add(row.GainLoss.Decimal)
			}
		}
	}
	return gains
}
