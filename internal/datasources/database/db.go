package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/huandu/go-sqlbuilder"
)

const DriverMySQL = "mysql"
const DriverSQLite = "sqlite"

// Connect opens a database for the named driver and returns the SQL flavor
// queries against it must be built with.
func Connect(ctx context.Context, driver, uri string) (*sql.DB, sqlbuilder.Flavor, error) {
	switch driver {
	case DriverMySQL:
		db, err := connectMySQL(ctx, uri)
		return db, sqlbuilder.MySQL, err
	case DriverSQLite:
		db, err := connectSQLite(ctx, uri)
		return db, sqlbuilder.SQLite, err
	default:
		return nil, 0, fmt.Errorf("unknown database driver [%s]", driver)
	}
}
