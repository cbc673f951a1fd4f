package sqlrepo

import "strconv"

// Dialect captures the SQL differences between supported drivers.
type Dialect interface {
	// Name is the database/sql driver name.
	Name() string
	// Placeholder returns the bind marker for the n-th argument (1-based).
	Placeholder(n int) string
}

type postgresDialect struct{}

func (postgresDialect) Name() string             { return "pgx" }
func (postgresDialect) Placeholder(n int) string { return "$" + strconv.Itoa(n) }

type sqliteDialect struct{}

func (sqliteDialect) Name() string           { return "sqlite" }
func (sqliteDialect) Placeholder(int) string { return "?" }

var (
	// Postgres uses numbered $n placeholders.
	Postgres Dialect = postgresDialect{}
	// SQLite uses positional ? placeholders.
	SQLite Dialect = sqliteDialect{}
)
