// Package benchmark holds the static description of the supported query
// suites: where their numbered query files live and which tables their
// queries reference.
package benchmark

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

type Suite struct {
	name       string
	queriesDir string
	filePrefix string
	tables     []Table
}

var suites = []*Suite{
	{name: "tpc-h", queriesDir: "queries-tpc-h", filePrefix: "", tables: tpchTables},
	{name: "tpc-ds", queriesDir: "queries-tpc-ds", filePrefix: "query", tables: tpcdsTables},
}

// Lookup resolves a benchmark name case-insensitively.
func Lookup(name string) (*Suite, error) {
	lower := strings.ToLower(name)
	for _, suite := range suites {
		if suite.name == lower {
			return suite, nil
		}
	}
	return nil, fmt.Errorf("benchmark must be 'tpc-h' or 'tpc-ds', got '%v'", name)
}

func Suites() []*Suite { return slices.Clone(suites) }

func (s *Suite) Name() string { return s.name }

func (s *Suite) Tables() []Table { return slices.Clone(s.tables) }

// DDL returns the schema declarations in catalog order.
func (s *Suite) DDL() []string {
	statements := make([]string, 0, len(s.tables))
	for _, table := range s.tables {
		statements = append(statements, table.CreateStmt())
	}
	return statements
}

// QueryPath maps a query number to its file below baseDir: tpc-h query 3
// resolves to queries-tpc-h/3.sql, tpc-ds query 3 to queries-tpc-ds/query3.sql.
func (s *Suite) QueryPath(baseDir string, number int) string {
	return filepath.Join(baseDir, s.queriesDir, fmt.Sprintf("%v%v.sql", s.filePrefix, number))
}

func ReadQuery(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("query file not found: %v: %w", path, os.ErrNotExist)
		}
		return "", fmt.Errorf("failed to read query file %v: %w", path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("query file %v is empty", path)
	}
	return string(data), nil
}

type QueryFile struct {
	Number int
	Path   string
}

// Queries lists the suite's query files under baseDir sorted by number.
// Files that do not match the suite's naming pattern are ignored.
func (s *Suite) Queries(baseDir string) ([]QueryFile, error) {
	dir := filepath.Join(baseDir, s.queriesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list queries in %v: %w", dir, err)
	}
	queries := make([]QueryFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		number, ok := s.queryNumber(entry.Name())
		if !ok {
			continue
		}
		queries = append(queries, QueryFile{Number: number, Path: filepath.Join(dir, entry.Name())})
	}
	slices.SortFunc(queries, func(a, b QueryFile) int {
		return a.Number - b.Number
	})
	return queries, nil
}

func (s *Suite) queryNumber(filename string) (int, bool) {
	stem, ok := strings.CutSuffix(filename, ".sql")
	if !ok {
		return 0, false
	}
	stem, ok = strings.CutPrefix(stem, s.filePrefix)
	if !ok {
		return 0, false
	}
	number, err := strconv.Atoi(stem)
	if err != nil {
		return 0, false
	}
	return number, true
}
