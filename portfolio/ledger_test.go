package portfolio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddSecurityNormalizesAndIsIdempotent(t *testing.T) {
	rq := require.New(t)

	p := NewPortfolio("TFSA")
	rq.Equal("XEQT", p.AddSecurity(" xeqt "))
	rq.NoError(p.AppendEvent("XEQT", mkTx(0, mkDate(1), BUY, "10", "30", "0")))

	// Re-adding must not clobber the ledger.
	p.AddSecurity("XEQT")
	rq.Len(p.Holdings["XEQT"], 1)
}

func TestAppendEventAssignsIdAndSequence(t *testing.T) {
	rq := require.New(t)

	p := NewPortfolio("TFSA")
	p.AddSecurity("XEQT")

	first := mkTx(0, mkDate(1), BUY, "10", "30", "0")
	second := mkTx(0, mkDate(1), SELL, "5", "31", "0")
	rq.NoError(p.AppendEvent("XEQT", first))
	rq.NoError(p.AppendEvent("XEQT", second))

	rq.NotEmpty(first.Id)
	rq.NotEmpty(second.Id)
	rq.NotEqual(first.Id, second.Id)
	rq.Equal(0, first.SequenceHint)
	rq.Equal(1, second.SequenceHint)
}

func TestAppendEventRequiresSecurity(t *testing.T) {
	p := NewPortfolio("TFSA")
	err := p.AppendEvent("XEQT", mkTx(0, mkDate(1), BUY, "10", "30", "0"))
	require.ErrorIs(t, err, ErrNoSuchSecurity)
}

func TestAppendEventNormalizesAmount(t *testing.T) {
	p := NewPortfolio("TFSA")
	p.AddSecurity("XEQT")

	ev := &TransactionEvent{Date: mkDate(1), Kind: BUY,
		Quantity: dec("10"), UnitPrice: dec("30")}
	require.NoError(t, p.AppendEvent("XEQT", ev))
	rqDecEq(t, "300", ev.Amount)
}

func TestReplaceEventPreservesIdentityAndOrder(t *testing.T) {
	rq := require.New(t)

	p := NewPortfolio("TFSA")
	p.AddSecurity("XEQT")
	first := mkTx(0, mkDate(1), BUY, "10", "30", "0")
	second := mkTx(0, mkDate(1), SELL, "5", "31", "0")
	rq.NoError(p.AppendEvent("XEQT", first))
	rq.NoError(p.AppendEvent("XEQT", second))

	edited := mkTx(99, mkDate(1), SELL, "6", "31", "0")
	edited.Id = second.Id
	rq.NoError(p.ReplaceEvent("XEQT", edited))

	stored := p.Holdings["XEQT"][1]
	rq.Equal(second.Id, stored.Id)
	rq.Equal(1, stored.SequenceHint)
	rqDecEq(t, "6", stored.Quantity)

	missing := mkTx(0, mkDate(1), SELL, "6", "31", "0")
	missing.Id = NewEventId()
	rq.ErrorIs(p.ReplaceEvent("XEQT", missing), ErrNoSuchEvent)
	rq.ErrorIs(p.ReplaceEvent("VFV", edited), ErrNoSuchSecurity)
}

func TestRemoveEvent(t *testing.T) {
	rq := require.New(t)

	p := NewPortfolio("TFSA")
	p.AddSecurity("XEQT")
	first := mkTx(0, mkDate(1), BUY, "10", "30", "0")
	second := mkTx(0, mkDate(2), BUY, "5", "31", "0")
	rq.NoError(p.AppendEvent("XEQT", first))
	rq.NoError(p.AppendEvent("XEQT", second))

	rq.NoError(p.RemoveEvent("XEQT", first.Id))
	rq.Len(p.Holdings["XEQT"], 1)
	rq.Equal(second.Id, p.Holdings["XEQT"][0].Id)

	rq.ErrorIs(p.RemoveEvent("XEQT", first.Id), ErrNoSuchEvent)
	rq.ErrorIs(p.RemoveEvent("VFV", second.Id), ErrNoSuchSecurity)
}

func TestRemoveSecurity(t *testing.T) {
	p := NewPortfolio("TFSA")
	p.AddSecurity("XEQT")
	p.RemoveSecurity("xeqt")
	require.Empty(t, p.Holdings)
}
