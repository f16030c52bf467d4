package portfolio

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jgagnon/acbtracker/date"
)

func mkDateYD(year uint32, day int) date.Date {
	tm := date.New(year, time.January, 1)
	return tm.AddDays(day)
}

func mkDate(day int) date.Date {
	return mkDateYD(2017, day)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rqDecEq(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.True(t, actual.Equal(dec(expected)),
		"expected %s, got %s", expected, actual.String())
}

// mkTx builds a share-denominated event, resolving the amount the way entry
// construction does.
func mkTx(seq int, d date.Date, kind TxKind, qty, price, comm string) *TransactionEvent {
	ev := &TransactionEvent{
		SequenceHint: seq,
		Date:         d,
		Kind:         kind,
		Quantity:     dec(qty),
		UnitPrice:    dec(price),
		Commission:   dec(comm),
	}
	ev.Normalize()
	return ev
}

// mkAmountTx builds an event carrying only a total dollar amount.
func mkAmountTx(seq int, d date.Date, kind TxKind, amount string) *TransactionEvent {
	ev := &TransactionEvent{
		SequenceHint: seq,
		Date:         d,
		Kind:         kind,
		Amount:       dec(amount),
	}
	ev.Normalize()
	return ev
}
