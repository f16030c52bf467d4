package app

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jgagnon/acbtracker/log"
	"github.com/jgagnon/acbtracker/outfmt"
	ptf "github.com/jgagnon/acbtracker/portfolio"
	"github.com/jgagnon/acbtracker/storage"
)

// App wires the core packages to a Store and an output writer. Every
// mutating operation follows the same discipline: load the whole document,
// mutate in memory, save the whole document.
type App struct {
	Store        storage.Store
	Writer       outfmt.ACBWriter
	ErrPrinter   log.ErrorPrinter
	FullDecimals bool
}

func (a *App) errPrinter() log.ErrorPrinter {
	if a.ErrPrinter == nil {
		return &log.StderrErrorPrinter{}
	}
	return a.ErrPrinter
}

// selectPortfolios returns all portfolios, or just the named one.
func (a *App) selectPortfolios(name string) ([]*ptf.Portfolio, error) {
	portfolios, err := a.Store.Load()
	if err != nil {
		return nil, err
	}
	if name == "" {
		return portfolios, nil
	}
	p, ok := ptf.FindPortfolio(portfolios, name)
	if !ok {
		return nil, fmt.Errorf("no portfolio named %q", name)
	}
	return []*ptf.Portfolio{p}, nil
}

// ShowLedgers renders the replay table of every security, portfolio by
// portfolio.
func (a *App) ShowLedgers(portfolioName string) error {
	portfolios, err := a.selectPortfolios(portfolioName)
	if err != nil {
		return err
	}
	for _, p := range portfolios {
		for _, sym := range p.Symbols() {
			result := ptf.Replay(p.Holdings[sym])
			table := ptf.RenderLedgerTable(result, a.FullDecimals)
			name := sym
			if portfolioName == "" && len(portfolios) > 1 {
				name = fmt.Sprintf("%s (%s)", sym, p.Name)
			}
			if err := a.Writer.PrintRenderTable(outfmt.Ledger, name, table); err != nil {
				return err
			}
		}
	}
	return nil
}

// ShowHoldings renders the per-portfolio holdings summary.
func (a *App) ShowHoldings(portfolioName string) error {
	portfolios, err := a.selectPortfolios(portfolioName)
	if err != nil {
		return err
	}
	for _, p := range portfolios {
		table := ptf.RenderHoldingsTable(p, a.FullDecimals)
		if err := a.Writer.PrintRenderTable(outfmt.Holdings, p.Name, table); err != nil {
			return err
		}
	}
	return nil
}

// RunReport renders the Schedule-3-shaped capital gains report for the tax
// year, one table per portfolio.
func (a *App) RunReport(portfolioName string, year int) error {
	portfolios, err := a.selectPortfolios(portfolioName)
	if err != nil {
		return err
	}
	for _, p := range portfolios {
		report := ptf.GenerateCapitalGainsReport(p, year)
		table := ptf.RenderCapitalGainsTable(report, a.FullDecimals)
		name := fmt.Sprintf("%s (%d)", p.Name, year)
		if err := a.Writer.PrintRenderTable(outfmt.CapitalGains, name, table); err != nil {
			return err
		}
	}
	return nil
}

// RunAggregateReport renders net realized gains per year across all
// portfolios.
func (a *App) RunAggregateReport() error {
	portfolios, err := a.Store.Load()
	if err != nil {
		return err
	}
	gains := ptf.CalcCumulativeCapitalGains(portfolios)
	table := ptf.RenderAggregateCapitalGains(gains, a.FullDecimals)
	return a.Writer.PrintRenderTable(outfmt.AggregateGains, "", table)
}

// ImportFile reads a ledger file, sniffing the AdjustedCostBase.ca format
// from its first line and falling back to the native tagged CSV. On success
// the complete merged portfolio set replaces the stored document; on any
// failure the document is untouched.
func (a *App) ImportFile(fname string) error {
	fp, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer fp.Close()
	return a.Import(fp, fname)
}

func (a *App) Import(r io.Reader, desc string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read %s: %w", desc, err)
	}
	existing, err := a.Store.Load()
	if err != nil {
		return err
	}

	firstLine, _ := bufio.NewReader(bytes.NewReader(data)).ReadString('\n')
	var updated []*ptf.Portfolio
	if ptf.IsAcbCaExport(firstLine) {
		updated, err = ptf.ImportAcbCa(bytes.NewReader(data), existing)
	} else {
		updated, err = ptf.ImportCSV(bytes.NewReader(data), existing)
	}
	if err != nil {
		return fmt.Errorf("import %s: %w", desc, err)
	}

	if err := a.Store.Save(updated); err != nil {
		return err
	}
	log.Default().WithField("source", desc).
		WithField("portfolios", len(updated)).Info("import complete")
	return nil
}

// Export writes the native CSV of the whole document.
func (a *App) Export(w io.Writer) error {
	portfolios, err := a.Store.Load()
	if err != nil {
		return err
	}
	return ptf.ExportCSV(w, portfolios)
}

// mutatePortfolio loads the document, applies fn to the named portfolio, and
// saves the whole document back. The portfolio is created when create is set
// and no name matches.
func (a *App) mutatePortfolio(
	name string, create bool, fn func(p *ptf.Portfolio) error) error {

	portfolios, err := a.Store.Load()
	if err != nil {
		return err
	}
	p, ok := ptf.FindPortfolio(portfolios, name)
	if !ok {
		if !create {
			return fmt.Errorf("no portfolio named %q", name)
		}
		p = ptf.NewPortfolio(name)
		portfolios = append(portfolios, p)
	}
	if err := fn(p); err != nil {
		return err
	}
	return a.Store.Save(portfolios)
}

// AddSecurity registers an empty ledger for a symbol, creating the portfolio
// on first use.
func (a *App) AddSecurity(portfolioName, symbol string) error {
	return a.mutatePortfolio(portfolioName, true, func(p *ptf.Portfolio) error {
		p.AddSecurity(symbol)
		return nil
	})
}

// RemoveSecurity deletes a symbol's ledger and every event in it.
func (a *App) RemoveSecurity(portfolioName, symbol string) error {
	return a.mutatePortfolio(portfolioName, false, func(p *ptf.Portfolio) error {
		sym := ptf.NormalizeSymbol(symbol)
		if _, ok := p.Holdings[sym]; !ok {
			return fmt.Errorf("no security %s in portfolio %s", sym, p.Name)
		}
		p.RemoveSecurity(sym)
		return nil
	})
}

// AddTx appends one transaction event to a security's ledger. The security
// is registered first if needed.
func (a *App) AddTx(portfolioName, symbol string, ev *ptf.TransactionEvent) error {
	return a.mutatePortfolio(portfolioName, true, func(p *ptf.Portfolio) error {
		sym := ptf.NormalizeSymbol(symbol)
		p.AddSecurity(sym)
		return p.AppendEvent(sym, ev)
	})
}

// RemoveTx deletes one event by id from a security's ledger.
func (a *App) RemoveTx(portfolioName, symbol, eventId string) error {
	return a.mutatePortfolio(portfolioName, false, func(p *ptf.Portfolio) error {
		return p.RemoveEvent(ptf.NormalizeSymbol(symbol), eventId)
	})
}

// ApplyDistributions reconciles a distribution record (decoded from JSON)
// into the named portfolio's ledger for one security and tax year.
func (a *App) ApplyDistributions(
	portfolioName, symbol string, taxYear int, recordJson io.Reader) error {

	var rec ptf.DistributionRecord
	if err := json.NewDecoder(recordJson).Decode(&rec); err != nil {
		return fmt.Errorf("parse distribution record: %w", err)
	}
	if !rec.Found {
		return fmt.Errorf("distribution record reports no data found")
	}

	portfolios, err := a.Store.Load()
	if err != nil {
		return err
	}
	p, ok := ptf.FindPortfolio(portfolios, portfolioName)
	if !ok {
		return fmt.Errorf("no portfolio named %q", portfolioName)
	}
	sym := ptf.NormalizeSymbol(symbol)
	events, ok := p.Holdings[sym]
	if !ok {
		return fmt.Errorf("no security %s in portfolio %s", sym, p.Name)
	}

	generated, err := ptf.ReconcileDistributions(sym, taxYear, rec, events)
	if err != nil {
		return err
	}
	if len(generated) == 0 {
		a.errPrinter().Ln("No ACB-affecting components to apply for", taxYear)
		return nil
	}
	for _, ev := range generated {
		if err := p.AppendEvent(sym, ev); err != nil {
			return err
		}
	}
	if err := a.Store.Save(portfolios); err != nil {
		return err
	}
	log.Default().WithField("symbol", sym).WithField("taxYear", taxYear).
		WithField("events", len(generated)).Info("distributions applied")
	return nil
}
