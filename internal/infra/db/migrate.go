// Package db opens the SQL connection pool and applies the schema.
package db

import (
	"database/sql"
	"fmt"

	"campus-api/internal/config"
	"campus-api/internal/infra/adapter/persistence/postgres"
	"campus-api/internal/infra/adapter/persistence/sqlite"
	"campus-api/internal/infra/adapter/persistence/sqlrepo"
)

// tables in creation order. MigrateDown drops them in reverse.
var tables = []string{
	sqlrepo.HelpRequestsTable,
	sqlrepo.MenuItemsTable,
	sqlrepo.RecommendationRequestsTable,
	sqlrepo.OrganizationsTable,
	sqlrepo.ArticlesTable,
	sqlrepo.MenuItemReviewsTable,
}

func schemaFor(driver string) ([]string, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.Schema, nil
	case config.DriverSQLite:
		return sqlite.Schema, nil
	default:
		return nil, fmt.Errorf("no schema for storage %q", driver)
	}
}

// MigrateUp creates every table and index that does not yet exist.
// All statements are idempotent.
func MigrateUp(db *sql.DB, driver string) error {
	stmts, err := schemaFor(driver)
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown drops every table. Use with caution: all data is lost.
func MigrateDown(db *sql.DB) error {
	for i := len(tables) - 1; i >= 0; i-- {
		// #nosec G202 -- table names are package constants
		if _, err := db.Exec("DROP TABLE IF EXISTS " + tables[i]); err != nil {
			return err
		}
	}
	return nil
}
