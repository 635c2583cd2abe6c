// Package store persists the whole membership dataset as one unit.
package store

import (
	"context"
	"fmt"

	"readerspace-backend/config"
	"readerspace-backend/models"
)

// Store loads and saves the complete dataset. There are no partial updates:
// every mutation is followed by a Save of the whole dataset.
type Store interface {
	Load(ctx context.Context) (models.Dataset, error)
	Save(ctx context.Context, ds models.Dataset) error
}

// Open builds the store selected by cfg.Driver
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverJSON:
		return NewJSONStore(cfg.DataFile), nil
	case config.DriverPostgres, config.DriverSQLite:
		db, err := config.ConnectDB(cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(db)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
