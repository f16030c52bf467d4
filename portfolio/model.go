package portfolio

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jgagnon/acbtracker/date"
)

// TxKind is the ledger event kind. The wire names below are used in the
// native CSV format and in the portfolio document.
type TxKind int

const (
	NO_KIND TxKind = iota
	BUY
	SELL
	ROC // Return of capital
	REINVESTED_DIST
	CAPITAL_GAINS_DIST
	REINVESTED_CAP_GAINS
	STOCK_SPLIT
	SUPERFICIAL_LOSS
	ACB_ADJUSTMENT
)

var kindNames = map[TxKind]string{
	BUY:                  "BUY",
	SELL:                 "SELL",
	ROC:                  "ROC",
	REINVESTED_DIST:      "REINVESTED_DIST",
	CAPITAL_GAINS_DIST:   "CAPITAL_GAINS_DIST",
	REINVESTED_CAP_GAINS: "REINVESTED_CAP_GAINS",
	STOCK_SPLIT:          "STOCK_SPLIT",
	SUPERFICIAL_LOSS:     "SUPERFICIAL_LOSS",
	ACB_ADJUSTMENT:       "ACB_ADJUSTMENT",
}

func (k TxKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return ""
}

// ParseTxKind maps a wire name (case-insensitive) to its kind. Unknown names
// yield NO_KIND and false; callers decide the default.
func ParseTxKind(s string) (TxKind, bool) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, true
		}
	}
	return NO_KIND, false
}

func (k TxKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *TxKind) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*k = NO_KIND
		return nil
	}
	kind, ok := ParseTxKind(string(text))
	if !ok {
		return fmt.Errorf("unknown transaction kind %q", string(text))
	}
	*k = kind
	return nil
}

// AddsShares reports whether the kind contributes to the acquisition year of
// a security.
func (k TxKind) AddsShares() bool {
	return k == BUY || k == REINVESTED_DIST
}

// Provenance marks events generated by the system rather than entered by the
// user. Reconciliation queries it directly instead of pattern-matching note
// text.
type Provenance struct {
	Source  string `json:"source"`
	TaxYear int    `json:"taxYear"`
}

// TransactionEvent is one ledger entry. Numeric fields default to zero;
// Date and Kind are always set on well-formed entries.
type TransactionEvent struct {
	Id           string          `json:"id"`
	SequenceHint int             `json:"sequenceHint"`
	Date         date.Date       `json:"date"`
	Kind         TxKind          `json:"kind"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Commission   decimal.Decimal `json:"commission"`
	Amount       decimal.Decimal `json:"amount"`
	Note         string          `json:"note,omitempty"`
	Provenance   *Provenance     `json:"provenance,omitempty"`
}

// Normalize resolves the amount-vs-quantity×price precedence once, at entry
// construction. A directly supplied amount wins; otherwise the amount derives
// from quantity × unit price. The replay engine only ever reads Amount.
// Splits are exempt: their quantity is a multiplier, not a share count.
func (t *TransactionEvent) Normalize() {
	if t.Kind == STOCK_SPLIT {
		return
	}
	if t.Amount.IsZero() {
		t.Amount = t.Quantity.Mul(t.UnitPrice)
	}
}

// SplitFactor is the share multiplier of a STOCK_SPLIT event. Unset, zero,
// and negative quantities all fall back to 2: a negative multiplier from
// malformed input must never invert or zero out the position.
func (t *TransactionEvent) SplitFactor() decimal.Decimal {
	if t.Quantity.IsPositive() {
		return t.Quantity
	}
	return decimal.NewFromInt(2)
}

func NewEventId() string {
	return uuid.NewString()
}

// Portfolio holds its security ledgers. Holdings keys are upper-cased ticker
// symbols; each event list is in insertion order, which is not necessarily
// date order (replay always re-sorts).
type Portfolio struct {
	Id       string                         `json:"id"`
	Name     string                         `json:"name"`
	Holdings map[string][]*TransactionEvent `json:"holdings"`
}

func NewPortfolio(name string) *Portfolio {
	return &Portfolio{
		Id:       uuid.NewString(),
		Name:     name,
		Holdings: make(map[string][]*TransactionEvent),
	}
}

// NormalizeSymbol upper-cases a ticker for use as a holdings key.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Symbols returns the portfolio's tickers in lexical order.
func (p *Portfolio) Symbols() []string {
	syms := make([]string, 0, len(p.Holdings))
	for sym := range p.Holdings {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms
}

// FindPortfolio matches by case-insensitive name.
func FindPortfolio(portfolios []*Portfolio, name string) (*Portfolio, bool) {
	for _, p := range portfolios {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return nil, false
}
