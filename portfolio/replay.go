package portfolio

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jgagnon/acbtracker/date"
	decimal_opt "github.com/jgagnon/acbtracker/decimal_value"
)

// SecurityStatus is the running state of one security's ledger replay.
type SecurityStatus struct {
	Shares   decimal.Decimal
	TotalAcb decimal.Decimal
}

func (s SecurityStatus) AcbPerShare() decimal.Decimal {
	if !s.Shares.IsPositive() {
		return decimal.Zero
	}
	return s.TotalAcb.Div(s.Shares)
}

// ReplayRow is one event enriched with the post-transition accumulators.
// The source event is carried through unchanged so downstream consumers can
// always recover it.
type ReplayRow struct {
	Tx            *TransactionEvent
	RunningShares decimal.Decimal
	RunningAcb    decimal.Decimal
	AcbPerShare   decimal.Decimal

	// GainLoss is null except on disposition-like rows (sells, excess ROC,
	// negative adjustments).
	GainLoss decimal_opt.DecimalOpt

	// Disposition detail for tax-report formatting. Proceeds are gross;
	// outlays are the commission. All zero on non-sell rows.
	Proceeds       decimal.Decimal
	DispositionAcb decimal.Decimal
	Outlays        decimal.Decimal

	// Note is the event note, or an engine annotation when the event has
	// none.
	Note string
}

type ReplayResult struct {
	Rows        []*ReplayRow
	TotalShares decimal.Decimal
	TotalAcb    decimal.Decimal
	AcbPerShare decimal.Decimal
}

// SortEvents returns the events in replay order: date ascending, same-date
// ties broken by sequence hint. Same-day transactions are therefore
// processed in the order they were entered, not in a canonical economic
// order. That is a documented simplification of this ledger, not a bug.
func SortEvents(events []*TransactionEvent) []*TransactionEvent {
	sorted := make([]*TransactionEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].SequenceHint < sorted[j].SequenceHint
	})
	return sorted
}

// Replay folds a security's (unordered) event list into its row sequence and
// final ACB state. It is a pure function and never fails: malformed numerics
// were already coerced to zero at entry construction, and logically dubious
// events degrade to no-op rows rather than errors.
func Replay(events []*TransactionEvent) *ReplayResult {
	status := SecurityStatus{Shares: decimal.Zero, TotalAcb: decimal.Zero}
	rows := make([]*ReplayRow, 0, len(events))

	for _, ev := range SortEvents(events) {
		row := applyEvent(ev, &status)
		rows = append(rows, row)
	}

	return &ReplayResult{
		Rows:        rows,
		TotalShares: status.Shares,
		TotalAcb:    status.TotalAcb,
		AcbPerShare: status.AcbPerShare(),
	}
}

// applyEvent advances status by one event and returns the row snapshotting
// the accumulators after the transition.
func applyEvent(ev *TransactionEvent, status *SecurityStatus) *ReplayRow {
	row := &ReplayRow{Tx: ev, GainLoss: decimal_opt.Null}
	var engineNote string

	switch ev.Kind {
	case BUY, REINVESTED_DIST:
		// Cost includes commission. A DRIP is economically a buy; the kind
		// stays distinct for reporting labels.
		status.TotalAcb = status.TotalAcb.Add(ev.Amount).Add(ev.Commission)
		status.Shares = status.Shares.Add(ev.Quantity)
		if ev.Kind == REINVESTED_DIST {
			engineNote = "DRIP"
		}

	case SELL:
		if status.Shares.IsPositive() {
			dispositionAcb := status.AcbPerShare().Mul(ev.Quantity)
			row.Proceeds = ev.Amount
			row.Outlays = ev.Commission
			row.DispositionAcb = dispositionAcb
			row.GainLoss = decimal_opt.New(
				ev.Amount.Sub(ev.Commission).Sub(dispositionAcb))
			status.TotalAcb = status.TotalAcb.Sub(dispositionAcb)
			status.Shares = status.Shares.Sub(ev.Quantity)
		}
		// Selling with no shares held is a silent no-op row. Callers wanting
		// stricter handling should warn before appending the event.

	case ROC:
		newAcb := status.TotalAcb.Sub(ev.Amount)
		if newAcb.IsNegative() {
			// ROC beyond the remaining cost base is a deemed gain.
			row.GainLoss = decimal_opt.New(newAcb.Neg())
			engineNote = "Excess ROC → gain"
			newAcb = decimal.Zero
		}
		status.TotalAcb = newAcb

	case CAPITAL_GAINS_DIST:
		// Cash distribution: reported on a T-slip, no ACB effect.

	case REINVESTED_CAP_GAINS:
		status.TotalAcb = status.TotalAcb.Add(ev.Amount)
		engineNote = "Phantom dist → ACB"

	case STOCK_SPLIT:
		factor := ev.SplitFactor()
		status.Shares = status.Shares.Mul(factor)
		engineNote = "Split " + factor.String() + ":1"

	case SUPERFICIAL_LOSS:
		status.TotalAcb = status.TotalAcb.Add(ev.Amount)
		engineNote = "Denied loss → ACB"

	case ACB_ADJUSTMENT:
		newAcb := status.TotalAcb.Add(ev.Amount)
		if newAcb.IsNegative() {
			row.GainLoss = decimal_opt.New(newAcb.Neg())
			newAcb = decimal.Zero
		}
		status.TotalAcb = newAcb
	}

	row.RunningShares = status.Shares
	row.RunningAcb = status.TotalAcb
	row.AcbPerShare = status.AcbPerShare()
	row.Note = ev.Note
	if row.Note == "" {
		row.Note = engineNote
	}
	return row
}

// SharesAtDate is the share count held as of d, inclusive.
func SharesAtDate(events []*TransactionEvent, d date.Date) decimal.Decimal {
	inRange := make([]*TransactionEvent, 0, len(events))
	for _, ev := range events {
		if !ev.Date.After(d) {
			inRange = append(inRange, ev)
		}
	}
	return Replay(inRange).TotalShares
}

// AcquisitionYear is the year of the first share-acquiring row, for the
// "year of acquisition" Schedule 3 column. Securities acquired only through
// other kinds report an empty string; that is an accepted edge case.
func AcquisitionYear(rows []*ReplayRow) string {
	for _, row := range rows {
		if row.Tx.Kind.AddsShares() {
			return strconv.Itoa(row.Tx.Date.Year())
		}
	}
	return ""
}
