// Package postgres wires the SQL repositories for PostgreSQL (pgx stdlib driver).
package postgres

import (
	"campus-api/internal/infra/adapter/persistence/sqlrepo"
	"campus-api/internal/repository"
)

// NewRepos returns the repository set backed by a PostgreSQL connection.
// db is typically a *circuitbreaker.DBCircuitBreaker wrapping the pool.
func NewRepos(db sqlrepo.Executor) repository.Set {
	return sqlrepo.NewSet(db, sqlrepo.Postgres)
}

// Schema is the DDL applied by db.MigrateUp for PostgreSQL.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS help_requests (
    id                     BIGSERIAL PRIMARY KEY,
    requester_email        TEXT NOT NULL,
    team_id                TEXT NOT NULL,
    table_or_breakout_room TEXT NOT NULL,
    request_time           TIMESTAMP NOT NULL,
    explanation            TEXT NOT NULL,
    solved                 BOOLEAN NOT NULL DEFAULT FALSE
)`,
	`CREATE TABLE IF NOT EXISTS ucsb_dining_commons_menu_items (
    id                  BIGSERIAL PRIMARY KEY,
    dining_commons_code TEXT NOT NULL,
    name                TEXT NOT NULL,
    station             TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS recommendation_requests (
    id              BIGSERIAL PRIMARY KEY,
    requester_email TEXT NOT NULL,
    professor_email TEXT NOT NULL,
    explanation     TEXT NOT NULL,
    date_requested  TIMESTAMP NOT NULL,
    date_needed     TIMESTAMP NOT NULL,
    done            BOOLEAN NOT NULL DEFAULT FALSE
)`,
	`CREATE TABLE IF NOT EXISTS ucsb_organizations (
    org_code              TEXT PRIMARY KEY,
    org_translation_short TEXT NOT NULL,
    org_translation       TEXT NOT NULL,
    inactive              BOOLEAN NOT NULL DEFAULT FALSE
)`,
	`CREATE TABLE IF NOT EXISTS articles (
    id          BIGSERIAL PRIMARY KEY,
    title       TEXT NOT NULL,
    url         TEXT NOT NULL,
    explanation TEXT NOT NULL,
    email       TEXT NOT NULL,
    date_added  TIMESTAMP NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS menu_item_reviews (
    id             BIGSERIAL PRIMARY KEY,
    item_id        BIGINT NOT NULL,
    reviewer_email TEXT NOT NULL,
    stars          INTEGER NOT NULL,
    date_reviewed  TIMESTAMP NOT NULL,
    comments       TEXT NOT NULL
)`,
	// レビュー一覧をメニュー項目ごとに引くためのインデックス
	`CREATE INDEX IF NOT EXISTS idx_menu_item_reviews_item_id ON menu_item_reviews(item_id)`,
}
