package storage

import (
	"github.com/jgagnon/acbtracker/portfolio"
)

// Store is the persistence boundary: the portfolio document is loaded
// wholesale at startup and rewritten wholesale on every mutation. There are
// no partial writes and no migrations.
type Store interface {
	Load() ([]*portfolio.Portfolio, error)
	Save(portfolios []*portfolio.Portfolio) error
}
