// Package sqlite wires the SQL repositories for SQLite (modernc.org/sqlite, pure Go).
// It is intended for single-node deployments and local development.
package sqlite

import (
	"campus-api/internal/infra/adapter/persistence/sqlrepo"
	"campus-api/internal/repository"
)

// NewRepos returns the repository set backed by a SQLite database.
func NewRepos(db sqlrepo.Executor) repository.Set {
	return sqlrepo.NewSet(db, sqlrepo.SQLite)
}

// Schema is the DDL applied by db.MigrateUp for SQLite.
// RETURNING and ON CONFLICT ... DO UPDATE require SQLite 3.35+.
var Schema = []string{
	`PRAGMA foreign_keys = ON`,
	`CREATE TABLE IF NOT EXISTS help_requests (
    id                     INTEGER PRIMARY KEY AUTOINCREMENT,
    requester_email        TEXT NOT NULL,
    team_id                TEXT NOT NULL,
    table_or_breakout_room TEXT NOT NULL,
    request_time           DATETIME NOT NULL,
    explanation            TEXT NOT NULL,
    solved                 BOOLEAN NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS ucsb_dining_commons_menu_items (
    id                  INTEGER PRIMARY KEY AUTOINCREMENT,
    dining_commons_code TEXT NOT NULL,
    name                TEXT NOT NULL,
    station             TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS recommendation_requests (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    requester_email TEXT NOT NULL,
    professor_email TEXT NOT NULL,
    explanation     TEXT NOT NULL,
    date_requested  DATETIME NOT NULL,
    date_needed     DATETIME NOT NULL,
    done            BOOLEAN NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS ucsb_organizations (
    org_code              TEXT PRIMARY KEY,
    org_translation_short TEXT NOT NULL,
    org_translation       TEXT NOT NULL,
    inactive              BOOLEAN NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS articles (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    title       TEXT NOT NULL,
    url         TEXT NOT NULL,
    explanation TEXT NOT NULL,
    email       TEXT NOT NULL,
    date_added  DATETIME NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS menu_item_reviews (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    item_id        INTEGER NOT NULL,
    reviewer_email TEXT NOT NULL,
    stars          INTEGER NOT NULL,
    date_reviewed  DATETIME NOT NULL,
    comments       TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_menu_item_reviews_item_id ON menu_item_reviews(item_id)`,
}
