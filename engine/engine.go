// Package engine runs translated queries against a throwaway in-memory
// SQLite session and reports the physical plan the planner settles on. The
// session never holds data: tables are declared empty so the planner can
// resolve names and pick access paths, which is all plan inspection needs.
package engine

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/xwb1989/sqlparser"
	"go.uber.org/zap"
)

type Config struct {
	// DSN of the backing database. Defaults to a private in-memory
	// instance that vanishes when the session closes.
	DSN string
	// Extended also captures the bytecode program behind each plan.
	Extended bool
	Logger   *zap.SugaredLogger
}

// Session is a single connection to a scratch database. Every run gets a
// fresh one; nothing survives Close.
type Session struct {
	db       *sql.DB
	log      *zap.SugaredLogger
	extended bool
}

func Open(ctx context.Context, cfg Config) (*Session, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = ":memory:"
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open engine session at %v: %w", dsn, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to start engine session at %v: %w", dsn, err)
	}
	// The in-memory database lives inside a single connection, so a second
	// connection from the pool would see an unrelated empty database.
	db.SetMaxOpenConns(1)

	info := HostStat()
	log.Debugf("opened engine session at %v, host stat: %+v", dsn, info)

	return &Session{db: db, log: log, extended: cfg.Extended}, nil
}

// DeclareSchema creates the benchmark tables the queries reference. The
// statements are idempotent, so declaring twice is harmless.
func (s *Session) DeclareSchema(ctx context.Context, ddl []string) error {
	for _, stmt := range ddl {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to declare schema: %w", err)
		}
	}
	s.log.Debugf("declared %v tables", len(ddl))
	return nil
}

// Plan is what the engine reports for a query: the access-path tree the
// planner chose, and in extended mode the compiled bytecode program.
type Plan struct {
	Tree     string
	Bytecode string
}

// Explain feeds the statements through the planner. Query statements are
// explained; anything else is executed as-is so that later statements can
// see its effects. At least one statement must be a query.
func (s *Session) Explain(ctx context.Context, statements []string) (*Plan, error) {
	trees := make([]string, 0)
	programs := make([]string, 0)
	for _, statement := range statements {
		if !isQuery(statement) {
			if _, err := s.db.ExecContext(ctx, statement); err != nil {
				return nil, fmt.Errorf("failed to execute supporting statement: %w", err)
			}
			s.log.Debugf("executed supporting statement %q", abbreviate(statement))
			continue
		}
		tree, err := s.queryPlan(ctx, statement)
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
		if s.extended {
			program, err := s.bytecode(ctx, statement)
			if err != nil {
				return nil, err
			}
			programs = append(programs, program)
		}
	}
	if len(trees) == 0 {
		return nil, fmt.Errorf("no query statement to plan")
	}
	return &Plan{
		Tree:     strings.Join(trees, "\n"),
		Bytecode: strings.Join(programs, "\n"),
	}, nil
}

func (s *Session) Close() error {
	return s.db.Close()
}

// isQuery reports whether the statement produces rows and should be
// explained rather than executed. Classification goes through a real SQL
// parser first; statements outside its grammar fall back to the leading
// keyword.
func isQuery(statement string) bool {
	stmt, err := sqlparser.Parse(statement)
	if err != nil {
		keyword, _, _ := strings.Cut(strings.TrimSpace(statement), " ")
		switch strings.ToUpper(keyword) {
		case "SELECT", "WITH", "VALUES":
			return true
		}
		return false
	}
	switch stmt.(type) {
	case *sqlparser.Select, *sqlparser.Union:
		return true
	}
	return false
}

func abbreviate(statement string) string {
	statement = strings.Join(strings.Fields(statement), " ")
	if len(statement) > 60 {
		return statement[:60] + "..."
	}
	return statement
}
