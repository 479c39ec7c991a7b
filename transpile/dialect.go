package transpile

import (
	"fmt"
	"strings"

	"github.com/akito0107/xsqlparser/dialect"
)

// Dialect tags a SQL grammar variant. Source dialects pick the tokenizer
// grammar, target dialects pick the rewrite rules applied before the text is
// regenerated.
type Dialect string

const (
	Generic  Dialect = "generic"
	DuckDB   Dialect = "duckdb"
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)

func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "generic":
		return Generic, nil
	case "duckdb":
		return DuckDB, nil
	case "postgres", "postgresql":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return "", fmt.Errorf("unknown dialect '%v'", name)
}

// DuckDB and SQLite read standard SQL closely enough that the generic
// grammar covers them.
func (d Dialect) grammar() dialect.Dialect {
	switch d {
	case Postgres:
		return &dialect.PostgresqlDialect{}
	case MySQL:
		return &dialect.MySQLDialect{}
	default:
		return &dialect.GenericSQLDialect{}
	}
}
