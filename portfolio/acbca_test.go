package portfolio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const acbCaSample = `Export from AdjustedCostBase.ca,,,,,,,,
Portfolio: My Holdings,,,,,,,,
,,,,,,,,
Security,Symbol,Shares,Total ACB,ACB/Share
iShares Core Equity ETF,XEQT,100,"$3,000.00",$30.00
Vanguard S&P 500,VFV*,50,"$5,500.00",$110.00
Total,,150,"$8,500.00",
,,,,,,,,
Security,Date,Transaction,Amount,Shares,Commission,Amount/Share,Change in ACB,Memo
iShares Core Equity ETF,2023-Jan-15,Buy,"$3,000.00",100,$4.99,$30.00,"$3,004.99",initial
iShares Core Equity ETF,2023-Jun-30,Return of Capital,$12.50,,,,($12.50),
iShares Core Equity ETF,2023-Dec-31,Reinvested Capital Gains Distribution,$45.00,,,,$45.00,
Vanguard S&P 500,2023-Feb-01,Purchase,"$5,500.00",50,$0.00,$110.00,"$5,500.00",
Vanguard S&P 500,2023-Sep-10,Stock Split,,50 -> 100,,,$0.00,
Vanguard S&P 500,2023-Oct-05,Sell,"$2,900.00",25,$4.99,$116.00,"($2,750.00)",trimmed
Vanguard S&P 500,2023-Nov-20,Exchange Fee,,,,,($25.00),rebalance
Total,,,,,,,,
`

func TestIsAcbCaExport(t *testing.T) {
	rq := require.New(t)

	rq.True(IsAcbCaExport("Export from AdjustedCostBase.ca,,,"))
	rq.False(IsAcbCaExport("portfolio,symbol,date,type"))
	rq.False(IsAcbCaExport(""))
}

func TestImportAcbCa(t *testing.T) {
	rq := require.New(t)

	portfolios, err := ImportAcbCa(strings.NewReader(acbCaSample), nil)
	rq.NoError(err)
	rq.Len(portfolios, 1)

	p := portfolios[0]
	rq.Equal("My Holdings", p.Name)
	rq.Equal([]string{"VFV", "XEQT"}, p.Symbols())

	xeqt := p.Holdings["XEQT"]
	rq.Len(xeqt, 3)

	buy := xeqt[0]
	rq.Equal(BUY, buy.Kind)
	rq.Equal("2023-01-15", buy.Date.String())
	rqDecEq(t, "100", buy.Quantity)
	rqDecEq(t, "3000", buy.Amount)
	rqDecEq(t, "4.99", buy.Commission)
	rq.Equal("initial", buy.Note)

	roc := xeqt[1]
	rq.Equal(ROC, roc.Kind)
	rqDecEq(t, "12.50", roc.Amount)

	phantom := xeqt[2]
	rq.Equal(REINVESTED_CAP_GAINS, phantom.Kind)
	rqDecEq(t, "45", phantom.Amount)

	vfv := p.Holdings["VFV"]
	rq.Len(vfv, 4)

	split := vfv[1]
	rq.Equal(STOCK_SPLIT, split.Kind)
	rqDecEq(t, "2", split.SplitFactor())

	sell := vfv[2]
	rq.Equal(SELL, sell.Kind)
	rqDecEq(t, "25", sell.Quantity)
	rqDecEq(t, "2900", sell.Amount)
	rq.Equal("trimmed", sell.Note)

	// The unclassifiable fee row carries the raw ACB delta.
	fee := vfv[3]
	rq.Equal(ACB_ADJUSTMENT, fee.Kind)
	rqDecEq(t, "-25", fee.Amount)
	rq.Contains(fee.Note, "Exchange Fee")
	rq.Contains(fee.Note, "rebalance")
}

func TestImportAcbCaReplayMatchesExport(t *testing.T) {
	rq := require.New(t)

	portfolios, err := ImportAcbCa(strings.NewReader(acbCaSample), nil)
	rq.NoError(err)

	result := Replay(portfolios[0].Holdings["XEQT"])
	rqDecEq(t, "100", result.TotalShares)
	// 3004.99 - 12.50 + 45.00
	rqDecEq(t, "3037.49", result.TotalAcb)
}

func TestImportAcbCaMergesIntoExisting(t *testing.T) {
	rq := require.New(t)

	existing := NewPortfolio("my holdings")
	existing.AddSecurity("ZAG")

	portfolios, err := ImportAcbCa(strings.NewReader(acbCaSample), []*Portfolio{existing})
	rq.NoError(err)
	rq.Len(portfolios, 1)
	rq.Equal([]string{"VFV", "XEQT", "ZAG"}, portfolios[0].Symbols())
}

func TestImportAcbCaMissingTxHeader(t *testing.T) {
	doc := `Export from AdjustedCostBase.ca,,,
Portfolio: My Holdings,,,
Security,Symbol,Shares,Total ACB
iShares Core Equity ETF,XEQT,100,"$3,000.00"
`
	_, err := ImportAcbCa(strings.NewReader(doc), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "transaction table header")
}

func TestImportAcbCaNotAnExport(t *testing.T) {
	_, err := ImportAcbCa(strings.NewReader("portfolio,symbol,date\n"), nil)
	require.Error(t, err)
}

func TestClassifyAcbCaAction(t *testing.T) {
	cases := map[string]TxKind{
		"Buy":                                   BUY,
		"Purchase of 10 units":                  BUY,
		"Sell":                                  SELL,
		"Disposition":                           SELL,
		"Return of Capital":                     ROC,
		"Reinvested Capital Gains Distribution": REINVESTED_CAP_GAINS,
		"Non-Cash Distribution":                 REINVESTED_CAP_GAINS,
		"Dividend Reinvestment (DRIP)":          REINVESTED_DIST,
		"Capital Gains Dividend":                CAPITAL_GAINS_DIST,
		"Stock Split":                           STOCK_SPLIT,
		"Exchange Fee":                          ACB_ADJUSTMENT,
	}
	for action, want := range cases {
		require.Equal(t, want, classifyAcbCaAction(action), "action %q", action)
	}
}

func TestParseSplitFactor(t *testing.T) {
	rqDecEq(t, "2", parseSplitFactor("50 -> 100"))
	rqDecEq(t, "3", parseSplitFactor("10->30"))
	rqDecEq(t, "0", parseSplitFactor("100"))
	rqDecEq(t, "0", parseSplitFactor("0 -> 100"))
	rqDecEq(t, "0", parseSplitFactor(""))
}

func TestParseMoney(t *testing.T) {
	rqDecEq(t, "3000", parseMoney("$3,000.00"))
	rqDecEq(t, "-12.50", parseMoney("($12.50)"))
	rqDecEq(t, "45", parseMoney("45"))
	rqDecEq(t, "0", parseMoney(""))
	rqDecEq(t, "0", parseMoney("n/a"))
}
