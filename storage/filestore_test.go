package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jgagnon/acbtracker/date"
	"github.com/jgagnon/acbtracker/portfolio"
)

func mkTestPortfolios(t *testing.T) []*portfolio.Portfolio {
	t.Helper()
	p := portfolio.NewPortfolio("TFSA")
	p.AddSecurity("XEQT")
	err := p.AppendEvent("XEQT", &portfolio.TransactionEvent{
		Date:      date.New(2023, time.January, 10),
		Kind:      portfolio.BUY,
		Quantity:  decimal.NewFromInt(10),
		UnitPrice: decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	return []*portfolio.Portfolio{p}
}

func TestFileStoreRoundTrip(t *testing.T) {
	rq := require.New(t)

	store := NewFileStore(filepath.Join(t.TempDir(), "portfolios.json"))
	rq.NoError(store.Save(mkTestPortfolios(t)))

	loaded, err := store.Load()
	rq.NoError(err)
	rq.Len(loaded, 1)
	rq.Equal("TFSA", loaded[0].Name)
	rq.Len(loaded[0].Holdings["XEQT"], 1)

	ev := loaded[0].Holdings["XEQT"][0]
	rq.Equal(portfolio.BUY, ev.Kind)
	rq.Equal("2023-01-10", ev.Date.String())
	rq.True(ev.Amount.Equal(decimal.NewFromInt(300)))
	rq.NotEmpty(ev.Id)
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))
	loaded, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "portfolios.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save(mkTestPortfolios(t)))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestFileStoreSaveReplacesWholeDocument(t *testing.T) {
	rq := require.New(t)

	store := NewFileStore(filepath.Join(t.TempDir(), "portfolios.json"))
	rq.NoError(store.Save(mkTestPortfolios(t)))
	rq.NoError(store.Save([]*portfolio.Portfolio{portfolio.NewPortfolio("Margin")}))

	loaded, err := store.Load()
	rq.NoError(err)
	rq.Len(loaded, 1)
	rq.Equal("Margin", loaded[0].Name)
	// Repaired to an empty map, never nil.
	rq.NotNil(loaded[0].Holdings)
}

func TestFileStoreCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolios.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := NewFileStore(path).Load()
	require.Error(t, err)
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "portfolios.json"))
	require.NoError(t, store.Save(mkTestPortfolios(t)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestMemStoreRoundTrip(t *testing.T) {
	rq := require.New(t)

	store := NewMemStore()
	loaded, err := store.Load()
	rq.NoError(err)
	rq.Empty(loaded)

	rq.NoError(store.Save(mkTestPortfolios(t)))

	loaded, err = store.Load()
	rq.NoError(err)
	rq.Len(loaded, 1)

	// Mutating a loaded copy must not leak into the store.
	loaded[0].Name = "Mutated"
	again, err := store.Load()
	rq.NoError(err)
	rq.Equal("TFSA", again[0].Name)
}
