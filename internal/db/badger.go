package db

import (
	"fmt"

	"github.com/dgraph-io/badger/v3"
)

// OpenBadger opens a badger database in dir, or an in-memory one when dir is
// empty.
func OpenBadger(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	database, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return database, nil
}

// CloseBadger compacts and closes the database.
func CloseBadger(database *badger.DB) error {
	if !database.Opts().InMemory {
		// ErrNoRewrite only means there was nothing to collect
		if err := database.RunValueLogGC(0.5); err != nil && err != badger.ErrNoRewrite {
			_ = database.Close()
			return fmt.Errorf("value log gc: %w", err)
		}
	}
	if err := database.Close(); err != nil {
		return fmt.Errorf("close badger: %w", err)
	}
	return nil
}
