package sql

import (
	"errors"
	"fmt"
)

const (
	DriverNone     = ""
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var (
	ErrDatabaseDisabled = errors.New("database disabled")
	ErrUnknownDriver    = errors.New("unknown database driver")
)

// Open returns the ORM for driver. An empty driver means no history store
// and yields ErrDatabaseDisabled.
func Open(driver, dsn string) (ORM, error) {
	switch driver {
	case DriverNone:
		return nil, ErrDatabaseDisabled
	case DriverMemory:
		return NewMemoryORM()
	case DriverSQLite:
		if dsn == "" {
			dsn = "readings.db"
		}
		return NewSQLiteORM(dsn)
	case DriverPostgres:
		return NewPosgreORM(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
