package outfmt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jgagnon/acbtracker/portfolio"
)

func mkTable() *portfolio.RenderTable {
	return &portfolio.RenderTable{
		Header: []string{"Date", "TX"},
		Rows:   [][]string{{"2023-01-10", "BUY"}, {"2023-06-10", "SELL"}},
		Footer: []string{"", "Total"},
		Notes:  []string{" Gains +$22.75; Losses $0.00"},
	}
}

func TestCSVWriterFilenames(t *testing.T) {
	rq := require.New(t)

	dir := t.TempDir()
	writer, err := NewCSVWriter(dir)
	rq.NoError(err)

	rq.NoError(writer.PrintRenderTable(Ledger, "XEQT", mkTable()))
	rq.NoError(writer.PrintRenderTable(Holdings, "TFSA", mkTable()))
	rq.NoError(writer.PrintRenderTable(CapitalGains, "TFSA (2023)", mkTable()))
	rq.NoError(writer.PrintRenderTable(AggregateGains, "", mkTable()))

	for _, fn := range []string{
		"XEQT.csv", "TFSA-holdings.csv", "TFSA (2023)-gains.csv", "aggregate-gains.csv",
	} {
		_, err := os.Stat(filepath.Join(dir, fn))
		rq.NoError(err, fn)
	}
}

func TestCSVWriterContent(t *testing.T) {
	rq := require.New(t)

	dir := t.TempDir()
	writer, err := NewCSVWriter(dir)
	rq.NoError(err)
	rq.NoError(writer.PrintRenderTable(Ledger, "XEQT", mkTable()))

	data, err := os.ReadFile(filepath.Join(dir, "XEQT.csv"))
	rq.NoError(err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	rq.Len(lines, 5)
	rq.Equal("Date,TX", lines[0])
	rq.Equal("2023-01-10,BUY", lines[1])
	rq.Equal(",Total", lines[3])
	rq.Contains(lines[4], "Gains")
}

func TestNewCSVWriterCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "csv")
	_, err := NewCSVWriter(dir)
	require.NoError(t, err)

	info, statErr := os.Stat(dir)
	require.NoError(t, statErr)
	require.True(t, info.IsDir())
}
