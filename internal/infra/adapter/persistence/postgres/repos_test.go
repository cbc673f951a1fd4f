package postgres_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-api/internal/domain/entity"
	"campus-api/internal/infra/adapter/persistence/postgres"
)

func TestNewRepos_UsesNumberedPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM articles WHERE id = $1 LIMIT 1`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "url", "explanation", "email", "date_added"}))

	repos := postgres.NewRepos(db)
	got, err := repos.Articles.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewRepos_ArticleInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	added := entity.MustParseLocalDateTime("2025-10-29T19:10:07")
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO articles (title, url, explanation, email, date_added) VALUES ($1, $2, $3, $4, $5) RETURNING id`)).
		WithArgs("Go 1.25", "https://go.dev/blog", "release notes", "g@ucsb.edu", added.Time).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	repos := postgres.NewRepos(db)
	got, err := repos.Articles.Save(context.Background(), &entity.Article{
		Title: "Go 1.25", URL: "https://go.dev/blog", Explanation: "release notes",
		Email: "g@ucsb.edu", DateAdded: added,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchema_CoversEveryTable(t *testing.T) {
	ddl := ""
	for _, s := range postgres.Schema {
		ddl += s
	}
	for _, table := range []string{
		"help_requests", "ucsb_dining_commons_menu_items", "recommendation_requests",
		"ucsb_organizations", "articles", "menu_item_reviews",
	} {
		assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS "+table)
	}
}
