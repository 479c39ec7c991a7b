package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/k0kubun/pp"

	"github.com/GEizaguirre/duckdb-tpc/benchmark"
	"github.com/GEizaguirre/duckdb-tpc/config"
	"github.com/GEizaguirre/duckdb-tpc/engine"
	"github.com/GEizaguirre/duckdb-tpc/transpile"
)

// runExplain is the whole pipeline behind the root command: read the query
// file, translate it, declare the benchmark schema in a fresh session and
// print the plan. Section banners go out before each step is attempted, so
// a failure is always attributable to the section it happened in.
func runExplain(ctx context.Context, cfg config.Config, suiteName string, numberRaw string, out io.Writer) error {
	number, err := strconv.Atoi(numberRaw)
	if err != nil {
		return fmt.Errorf("query number must be an integer, got '%v'", numberRaw)
	}
	suite, err := benchmark.Lookup(suiteName)
	if err != nil {
		return err
	}
	source, err := transpile.ParseDialect(cfg.Transpile.Source)
	if err != nil {
		return err
	}
	target, err := transpile.ParseDialect(cfg.Transpile.Target)
	if err != nil {
		return err
	}
	base, err := queriesBase(cfg)
	if err != nil {
		return err
	}

	path := suite.QueryPath(base, number)
	fmt.Fprintf(out, "Reading query from: %v\n", path)

	query, err := benchmark.ReadQuery(path)
	if err != nil {
		return err
	}

	Logger.Infof("explaining %v query %v, translating %v -> %v", suite.Name(), number, source, target)

	section(out, "ORIGINAL QUERY:")
	fmt.Fprintln(out, strings.TrimRight(query, "\n"))

	if cfg.Output.ShowAST {
		section(out, "PARSED AST:")
		statements, err := transpile.Parse(query, source)
		if err != nil {
			return err
		}
		pp.Fprintln(out, statements)
	}

	section(out, fmt.Sprintf("TRANSLATED QUERY (%v):", strings.ToUpper(string(target))))
	translated, err := transpile.Translate(query, source, target)
	if err != nil {
		return fmt.Errorf("failed to translate query: %w", err)
	}
	fmt.Fprintln(out, transpile.Join(translated))

	session, err := engine.Open(ctx, engine.Config{
		DSN:      cfg.Engine.DSN,
		Extended: cfg.Output.Extended,
		Logger:   Logger,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.DeclareSchema(ctx, suite.DDL()); err != nil {
		return err
	}

	section(out, "PHYSICAL PLAN:")
	plan, err := session.Explain(ctx, translated)
	if err != nil {
		return fmt.Errorf("failed to get physical plan: %w", err)
	}
	fmt.Fprintln(out, plan.Tree)

	if cfg.Output.Extended {
		section(out, "BYTECODE PROGRAM:")
		fmt.Fprintln(out, plan.Bytecode)
	}
	return nil
}

func section(out io.Writer, title string) {
	banner := strings.Repeat("=", 60)
	fmt.Fprintf(out, "\n%v\n%v\n%v\n", banner, title, banner)
}

// queriesBase resolves the directory the query folders live in. Unless
// configured otherwise, they are expected next to the executable.
func queriesBase(cfg config.Config) (string, error) {
	if cfg.QueriesDir != "" {
		return cfg.QueriesDir, nil
	}
	executable, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	return filepath.Dir(executable), nil
}
