package outfmt

import (
	"github.com/jgagnon/acbtracker/portfolio"
)

type OutputType int

const (
	Ledger OutputType = iota
	Holdings
	CapitalGains
	AggregateGains
)

type ACBWriter interface {
	PrintRenderTable(outType OutputType, name string, tableModel *portfolio.RenderTable) error
}
