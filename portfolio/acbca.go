package portfolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jgagnon/acbtracker/date"
)

// Importer for AdjustedCostBase.ca exports. The document is a
// multi-section CSV: a header area with a "Portfolio: <name>" marker, a
// summary table mapping security display names to tickers, and a
// transaction table whose header is:
//
//	Security, Date, Transaction, Amount, Shares, Commission, Amount/Share, Change in ACB, Memo
//
// Dates use a textual month (2024-Mar-15). Transaction names are free text
// and classify by keyword; anything unrecognized becomes a generic ACB
// adjustment carrying the raw Change in ACB value.

const acbCaTitle = "AdjustedCostBase.ca"

// Symbols in the summary table may carry a trailing uncertainty marker.
const acbCaWildcard = "*"

// IsAcbCaExport detects the format solely from the document's first line.
func IsAcbCaExport(firstLine string) bool {
	return strings.Contains(firstLine, acbCaTitle)
}

// ImportAcbCa parses an AdjustedCostBase.ca export into a copy of the
// existing portfolio set. A missing transaction-table header fails the whole
// import; individually malformed rows are skipped.
func ImportAcbCa(r io.Reader, existing []*Portfolio) ([]*Portfolio, error) {
	csvR := csv.NewReader(r)
	csvR.FieldsPerRecord = -1
	records, err := csvR.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse export: %w", err)
	}
	if len(records) == 0 || !IsAcbCaExport(strings.Join(records[0], ",")) {
		return nil, fmt.Errorf("not an %s export", acbCaTitle)
	}

	portfolioName := DefaultImportPortfolio
	nameToTicker := map[string]string{}

	txHeaderIdx := -1
	var txCols map[string]int
	for i, record := range records {
		if len(record) > 0 && strings.HasPrefix(record[0], "Portfolio:") {
			if name := strings.TrimSpace(strings.TrimPrefix(record[0], "Portfolio:")); name != "" {
				portfolioName = name
			}
			continue
		}
		if cols, ok := headerColumns(record, "security", "symbol"); ok {
			parseSummarySection(records[i+1:], cols, nameToTicker)
			continue
		}
		if cols, ok := headerColumns(record, "security", "date", "transaction", "shares", "change in acb"); ok {
			txHeaderIdx = i
			txCols = cols
			break
		}
	}
	if txHeaderIdx == -1 {
		return nil, fmt.Errorf("%s import: could not locate the transaction table header", acbCaTitle)
	}

	portfolios := clonePortfolios(existing)
	p, ok := FindPortfolio(portfolios, portfolioName)
	if !ok {
		p = NewPortfolio(portfolioName)
		portfolios = append(portfolios, p)
	}

	for _, record := range records[txHeaderIdx+1:] {
		name := strings.TrimSpace(cell(record, txCols["security"]))
		if name == "" || isSummaryRow(name) {
			continue
		}
		ev, ok := parseAcbCaRow(record, txCols)
		if !ok {
			continue
		}
		symbol := nameToTicker[name]
		if symbol == "" {
			symbol = NormalizeSymbol(name)
		}
		p.AddSecurity(symbol)
		if err := p.AppendEvent(symbol, ev); err != nil {
			return nil, err
		}
	}
	return portfolios, nil
}

// headerColumns reports whether the record contains every wanted column
// (case-insensitive), and if so maps lower-cased column names to indices.
func headerColumns(record []string, wanted ...string) (map[string]int, bool) {
	cols := make(map[string]int, len(record))
	for i, col := range record {
		cols[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, w := range wanted {
		if _, ok := cols[w]; !ok {
			return nil, false
		}
	}
	return cols, true
}

// parseSummarySection consumes rows of the name→ticker table up to the next
// blank line, stripping the wildcard uncertainty marker from tickers.
func parseSummarySection(records [][]string, cols map[string]int, nameToTicker map[string]string) {
	for _, record := range records {
		name := strings.TrimSpace(cell(record, cols["security"]))
		if name == "" || isSummaryRow(name) {
			return
		}
		ticker := strings.TrimSpace(cell(record, cols["symbol"]))
		ticker = strings.TrimSuffix(ticker, acbCaWildcard)
		if ticker != "" {
			nameToTicker[name] = NormalizeSymbol(ticker)
		}
	}
}

func isSummaryRow(securityName string) bool {
	lower := strings.ToLower(securityName)
	return lower == "total" || lower == "grand total"
}

// colIdx returns -1 for columns the header did not declare, so optional
// cells read as empty instead of aliasing column zero.
func colIdx(cols map[string]int, name string) int {
	if i, ok := cols[name]; ok {
		return i
	}
	return -1
}

func parseAcbCaRow(record []string, cols map[string]int) (*TransactionEvent, bool) {
	dateStr := strings.TrimSpace(cell(record, cols["date"]))
	d, err := date.Parse(date.MonthNameFormat, dateStr)
	if err != nil {
		// Also tolerate ISO dates, which some exports mix in.
		if d, err = date.ParseDefault(dateStr); err != nil {
			return nil, false
		}
	}

	action := cell(record, cols["transaction"])
	kind := classifyAcbCaAction(action)

	amount := parseMoney(cell(record, colIdx(cols, "amount")))
	commission := parseMoney(cell(record, colIdx(cols, "commission")))
	unitPrice := parseMoney(cell(record, colIdx(cols, "amount/share")))
	acbChange := parseMoney(cell(record, cols["change in acb"]))
	sharesStr := strings.TrimSpace(cell(record, cols["shares"]))

	ev := &TransactionEvent{
		Date:       d,
		Kind:       kind,
		Commission: commission,
		UnitPrice:  unitPrice,
		Note:       strings.TrimSpace(cell(record, colIdx(cols, "memo"))),
	}

	switch kind {
	case STOCK_SPLIT:
		ev.Quantity = parseSplitFactor(sharesStr)
	case ACB_ADJUSTMENT:
		// Unclassifiable rows carry the raw ACB delta, keeping the ledger's
		// running total faithful to the export.
		ev.Amount = acbChange
		ev.Note = strings.TrimSpace(action + " " + ev.Note)
	case ROC, REINVESTED_CAP_GAINS, CAPITAL_GAINS_DIST:
		ev.Amount = amount
		if ev.Amount.IsZero() {
			ev.Amount = acbChange.Abs()
		}
	default:
		ev.Quantity = decimalOrZero(sharesStr)
		ev.Amount = amount
	}
	return ev, true
}

func classifyAcbCaAction(action string) TxKind {
	a := strings.ToLower(action)
	contains := func(sub string) bool { return strings.Contains(a, sub) }
	switch {
	case contains("split"):
		return STOCK_SPLIT
	case contains("return of capital"):
		return ROC
	case contains("reinvest") && (contains("cap") || contains("gain")):
		return REINVESTED_CAP_GAINS
	case contains("reinvest") || contains("drip"):
		return REINVESTED_DIST
	case contains("non-cash") || contains("phantom"):
		return REINVESTED_CAP_GAINS
	case contains("capital gain"):
		return CAPITAL_GAINS_DIST
	case contains("buy") || contains("purchase"):
		return BUY
	case contains("sell") || contains("sale") || contains("dispos"):
		return SELL
	default:
		return ACB_ADJUSTMENT
	}
}

// parseSplitFactor derives a multiplier from the "oldShares -> newShares"
// pattern the export uses for splits. Anything else yields zero and the
// engine's default multiplier applies.
func parseSplitFactor(sharesStr string) decimal.Decimal {
	parts := strings.Split(sharesStr, "->")
	if len(parts) != 2 {
		return decimal.Zero
	}
	oldShares := decimalOrZero(parts[0])
	newShares := decimalOrZero(parts[1])
	if !oldShares.IsPositive() || !newShares.IsPositive() {
		return decimal.Zero
	}
	return newShares.Div(oldShares)
}

// parseMoney handles export money cells: $ signs, thousands separators, and
// accounting-style parentheses for negatives.
func parseMoney(data string) decimal.Decimal {
	s := strings.TrimSpace(data)
	neg := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	if neg {
		s = s[1 : len(s)-1]
	}
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	d := decimalOrZero(s)
	if neg {
		return d.Neg()
	}
	return d
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
