package portfolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jgagnon/acbtracker/date"
)

// Native tagged-CSV format. Export then import reproduces an
// equivalent event set, modulo regenerated ids and sequence hints.

var CsvHeader = []string{
	"portfolio", "symbol", "date", "type", "shares", "pricePerShare",
	"commission", "amount", "note",
}

// Rows with no portfolio name land here.
const DefaultImportPortfolio = "Imported"

// CsvDateFormat is how dates appear in native CSV files. The CLI overrides it
// from configuration.
var CsvDateFormat = "2006-01-02"

type csvRow struct {
	portfolio string
	symbol    string
	ev        *TransactionEvent
}

type colParser func(string, *csvRow)

var colParserMap = map[string]colParser{
	"portfolio":     parsePortfolioCol,
	"symbol":        parseSymbolCol,
	"date":          parseDateCol,
	"type":          parseTypeCol,
	"shares":        parseSharesCol,
	"pricepershare": parsePriceCol,
	"commission":    parseCommissionCol,
	"amount":        parseAmountCol,
	"note":          parseNoteCol,
}

func parseNothingCol(string, *csvRow) {}

func parsePortfolioCol(data string, row *csvRow) {
	row.portfolio = strings.TrimSpace(data)
}

func parseSymbolCol(data string, row *csvRow) {
	row.symbol = NormalizeSymbol(data)
}

func parseDateCol(data string, row *csvRow) {
	d, err := date.Parse(CsvDateFormat, strings.TrimSpace(data))
	if err != nil {
		// Bad or missing dates coerce to today rather than failing the row.
		d = date.Today()
	}
	row.ev.Date = d
}

func parseTypeCol(data string, row *csvRow) {
	if kind, ok := ParseTxKind(data); ok {
		row.ev.Kind = kind
	}
}

// decimalOrZero never fails: non-numeric fields are zero by contract.
func decimalOrZero(data string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(data))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseSharesCol(data string, row *csvRow)     { row.ev.Quantity = decimalOrZero(data) }
func parsePriceCol(data string, row *csvRow)      { row.ev.UnitPrice = decimalOrZero(data) }
func parseCommissionCol(data string, row *csvRow) { row.ev.Commission = decimalOrZero(data) }
func parseAmountCol(data string, row *csvRow)     { row.ev.Amount = decimalOrZero(data) }
func parseNoteCol(data string, row *csvRow)       { row.ev.Note = data }

// ImportCSV merges native CSV rows into a copy of the existing portfolio set
// and returns the complete updated set. Portfolios match by case-insensitive
// name; rows with a blank symbol are skipped; a blank or unknown type is a
// BUY.
func ImportCSV(r io.Reader, existing []*Portfolio) ([]*Portfolio, error) {
	csvR := csv.NewReader(r)
	csvR.FieldsPerRecord = -1
	records, err := csvR.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no rows found")
	}

	colParsers := make([]colParser, len(records[0]))
	for i, col := range records[0] {
		if parser, ok := colParserMap[strings.TrimSpace(strings.ToLower(col))]; ok {
			colParsers[i] = parser
		} else {
			colParsers[i] = parseNothingCol
		}
	}

	portfolios := clonePortfolios(existing)
	for _, record := range records[1:] {
		row := &csvRow{ev: &TransactionEvent{}}
		for j, col := range record {
			if j < len(colParsers) {
				colParsers[j](col, row)
			}
		}
		if row.symbol == "" {
			continue
		}
		if row.portfolio == "" {
			row.portfolio = DefaultImportPortfolio
		}
		if row.ev.Kind == NO_KIND {
			row.ev.Kind = BUY
		}
		if row.ev.Date.IsZero() {
			row.ev.Date = date.Today()
		}
		// No provenance column in this format; rebuild the marker from the
		// note tag so applied distributions stay applied across a round trip.
		row.ev.Provenance = ProvenanceFromNote(row.ev.Note)

		p, ok := FindPortfolio(portfolios, row.portfolio)
		if !ok {
			p = NewPortfolio(row.portfolio)
			portfolios = append(portfolios, p)
		}
		p.AddSecurity(row.symbol)
		if err := p.AppendEvent(row.symbol, row.ev); err != nil {
			return nil, err
		}
	}
	return portfolios, nil
}

// ExportCSV writes every event of every portfolio in the native format. Zero
// numeric fields export as empty cells.
func ExportCSV(w io.Writer, portfolios []*Portfolio) error {
	csvW := csv.NewWriter(w)
	if err := csvW.Write(CsvHeader); err != nil {
		return err
	}
	for _, p := range portfolios {
		for _, sym := range p.Symbols() {
			for _, ev := range p.Holdings[sym] {
				record := []string{
					p.Name, sym, ev.Date.String(), ev.Kind.String(),
					decimalCell(ev.Quantity), decimalCell(ev.UnitPrice),
					decimalCell(ev.Commission), decimalCell(ev.Amount),
					ev.Note,
				}
				if err := csvW.Write(record); err != nil {
					return err
				}
			}
		}
	}
	csvW.Flush()
	return csvW.Error()
}

func decimalCell(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

// clonePortfolios copies the portfolio structure deeply enough that a failed
// import never touches the caller's set.
func clonePortfolios(portfolios []*Portfolio) []*Portfolio {
	cloned := make([]*Portfolio, 0, len(portfolios))
	for _, p := range portfolios {
		cp := &Portfolio{
			Id:       p.Id,
			Name:     p.Name,
			Holdings: make(map[string][]*TransactionEvent, len(p.Holdings)),
		}
		for sym, events := range p.Holdings {
			cp.Holdings[sym] = append([]*TransactionEvent(nil), events...)
		}
		cloned = append(cloned, cp)
	}
	return cloned
}
