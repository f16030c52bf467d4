package portfolio

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jgagnon/acbtracker/date"
)

// Reconciliation of externally-sourced ETF/fund tax distribution data into
// synthetic ledger entries. The caller owns the ledger: this module only
// proposes events.

// DistributionSource tags events generated from distribution data, and is
// what the idempotency gate queries. The note-string tag of earlier designs
// is kept only as display text.
const DistributionSource = "etf-distributions"

type ComponentType string

const (
	// NonCash distributions (phantom/reinvested capital gains) increase ACB.
	NonCash ComponentType = "nonCash"
	// ReturnOfCapital distributions decrease ACB.
	ReturnOfCapital ComponentType = "returnOfCapital"
)

type CalcMethod string

const (
	CalcDollar  CalcMethod = "dollar"
	CalcPercent CalcMethod = "percent"
)

// DistributionComponent is one per-unit figure from the provider's tax
// breakdown. With CalcPercent, PerUnit is a percentage of the record's
// TotalPerUnit rather than a dollar value.
type DistributionComponent struct {
	Label   string          `json:"label"`
	Type    ComponentType   `json:"type"`
	PerUnit decimal.Decimal `json:"perUnitValue"`
}

// DistributionRecord is the normalized payload handed over by the
// distribution-data collaborator (spreadsheet/PDF extraction is its
// problem, not ours).
type DistributionRecord struct {
	Found        bool                    `json:"found"`
	RecordDate   string                  `json:"recordDate,omitempty"`
	Components   []DistributionComponent `json:"components"`
	CalcMethod   CalcMethod              `json:"calcMethod"`
	TotalPerUnit decimal.Decimal         `json:"totalPerUnitIfPercent,omitempty"`
}

var ErrAlreadyApplied = fmt.Errorf("distributions already applied for this security and year")
var ErrNoSharesHeld = fmt.Errorf("no shares held on the record date")

// distributionNoteTag prefixes the note of every generated event.
const distributionNoteTag = "[ETF Distributions %d]"

var distributionNoteRe = regexp.MustCompile(`^\[ETF Distributions (\d{4})\]`)

// ProvenanceFromNote recovers the structured marker from the note tag. The
// native CSV format carries notes but no provenance column, so reimport must
// rebuild the marker or the idempotency gate would accept the same year
// twice after a round trip.
func ProvenanceFromNote(note string) *Provenance {
	m := distributionNoteRe.FindStringSubmatch(note)
	if m == nil {
		return nil
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &Provenance{Source: DistributionSource, TaxYear: year}
}

var oneHundred = decimal.NewFromInt(100)

// Synthetic amounts are rounded to 6 decimal places; everything else in the
// engine rounds only at presentation time.
const amountPlaces = 6

// HasAppliedDistributions reports whether the ledger already carries
// generated distribution events for the tax year.
func HasAppliedDistributions(events []*TransactionEvent, taxYear int) bool {
	for _, ev := range events {
		if ev.Provenance != nil &&
			ev.Provenance.Source == DistributionSource &&
			ev.Provenance.TaxYear == taxYear {
			return true
		}
	}
	return false
}

// ReconcileDistributions converts a distribution record into synthetic
// ledger events for one security and tax year, scaled by the shares held on
// the record date. An empty slice with a nil error means there was nothing
// to apply. The events are not inserted here; append them via the ledger and
// persist to take effect.
func ReconcileDistributions(
	symbol string, taxYear int, rec DistributionRecord,
	events []*TransactionEvent) ([]*TransactionEvent, error) {

	if HasAppliedDistributions(events, taxYear) {
		return nil, fmt.Errorf("%w (%s, %d)", ErrAlreadyApplied, symbol, taxYear)
	}

	recordDate := date.YearEnd(taxYear)
	if rec.RecordDate != "" {
		parsed, err := date.ParseDefault(rec.RecordDate)
		if err != nil {
			return nil, fmt.Errorf("invalid record date %q: %w", rec.RecordDate, err)
		}
		recordDate = parsed
	}

	shares := SharesAtDate(events, recordDate)
	if !shares.IsPositive() {
		return nil, fmt.Errorf("%w (%s as of %s)", ErrNoSharesHeld, symbol, recordDate)
	}

	generated := make([]*TransactionEvent, 0, len(rec.Components))
	for _, comp := range rec.Components {
		perUnit := comp.PerUnit
		if rec.CalcMethod == CalcPercent {
			// Percent-denominated sources report each component as a share
			// of the total distribution per unit.
			perUnit = perUnit.Div(oneHundred).Mul(rec.TotalPerUnit)
		}
		if !perUnit.IsPositive() {
			continue
		}

		var kind TxKind
		switch comp.Type {
		case NonCash:
			kind = REINVESTED_CAP_GAINS
		case ReturnOfCapital:
			kind = ROC
		default:
			return nil, fmt.Errorf("unknown distribution component type %q", comp.Type)
		}

		generated = append(generated, &TransactionEvent{
			Date:      recordDate,
			Kind:      kind,
			Quantity:  shares,
			UnitPrice: perUnit,
			Amount:    perUnit.Mul(shares).Round(amountPlaces),
			Note: fmt.Sprintf(distributionNoteTag+" %s $%s/u × %s",
				taxYear, comp.Label, perUnit.String(), shares.String()),
			Provenance: &Provenance{Source: DistributionSource, TaxYear: taxYear},
		})
	}
	return generated, nil
}
