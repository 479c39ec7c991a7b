package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GEizaguirre/duckdb-tpc/config"
)

func writeQueryFile(t *testing.T, baseDir string, relative string, text string) string {
	t.Helper()
	path := filepath.Join(baseDir, relative)
	err := os.MkdirAll(filepath.Dir(path), 0755)
	require.Nil(t, err)
	err = os.WriteFile(path, []byte(text), 0644)
	require.Nil(t, err)
	return path
}

func testConfig(baseDir string) config.Config {
	cfg := config.Default()
	cfg.QueriesDir = baseDir
	return cfg
}

func TestRunExplain(t *testing.T) {
	base := t.TempDir()
	writeQueryFile(t, base, filepath.Join("queries-tpc-h", "6.sql"),
		"select sum(l_extendedprice * l_discount) as revenue from lineitem where l_quantity < 24;\n")

	var out bytes.Buffer
	err := runExplain(context.Background(), testConfig(base), "tpc-h", "6", &out)
	require.Nil(t, err)

	text := out.String()
	require.Contains(t, text, "Reading query from: ")
	require.Contains(t, text, "ORIGINAL QUERY:")
	require.Contains(t, text, "l_extendedprice * l_discount")
	require.Contains(t, text, "TRANSLATED QUERY (SQLITE):")
	require.Contains(t, text, "PHYSICAL PLAN:")
	require.Contains(t, text, "QUERY PLAN")
	require.Contains(t, text, "SCAN lineitem")
	require.NotContains(t, text, "BYTECODE PROGRAM:")

	require.Less(t, strings.Index(text, "Reading query from: "), strings.Index(text, "ORIGINAL QUERY:"))
	require.Less(t, strings.Index(text, "ORIGINAL QUERY:"), strings.Index(text, "TRANSLATED QUERY (SQLITE):"))
	require.Less(t, strings.Index(text, "TRANSLATED QUERY (SQLITE):"), strings.Index(text, "PHYSICAL PLAN:"))
}

func TestRunExplainBanners(t *testing.T) {
	base := t.TempDir()
	writeQueryFile(t, base, filepath.Join("queries-tpc-h", "1.sql"), "select n_name from nation;\n")

	var out bytes.Buffer
	err := runExplain(context.Background(), testConfig(base), "tpc-h", "1", &out)
	require.Nil(t, err)

	banner := strings.Repeat("=", 60)
	require.Contains(t, out.String(), fmt.Sprintf("%v\nORIGINAL QUERY:\n%v", banner, banner))
	require.Contains(t, out.String(), fmt.Sprintf("%v\nPHYSICAL PLAN:\n%v", banner, banner))
}

func TestRunExplainExtended(t *testing.T) {
	base := t.TempDir()
	writeQueryFile(t, base, filepath.Join("queries-tpc-h", "2.sql"), "select n_name from nation;\n")

	cfg := testConfig(base)
	cfg.Output.Extended = true

	var out bytes.Buffer
	err := runExplain(context.Background(), cfg, "tpc-h", "2", &out)
	require.Nil(t, err)

	text := out.String()
	require.Contains(t, text, "BYTECODE PROGRAM:")
	require.Contains(t, text, "opcode")
	require.Contains(t, text, "Init")
	require.Less(t, strings.Index(text, "PHYSICAL PLAN:"), strings.Index(text, "BYTECODE PROGRAM:"))
}

func TestRunExplainShowAST(t *testing.T) {
	base := t.TempDir()
	writeQueryFile(t, base, filepath.Join("queries-tpc-h", "3.sql"), "select n_name from nation;\n")

	cfg := testConfig(base)
	cfg.Output.ShowAST = true

	var out bytes.Buffer
	err := runExplain(context.Background(), cfg, "tpc-h", "3", &out)
	require.Nil(t, err)

	text := out.String()
	require.Contains(t, text, "PARSED AST:")
	require.Less(t, strings.Index(text, "ORIGINAL QUERY:"), strings.Index(text, "PARSED AST:"))
	require.Less(t, strings.Index(text, "PARSED AST:"), strings.Index(text, "TRANSLATED QUERY (SQLITE):"))
}

func TestRunExplainTpcdsLayout(t *testing.T) {
	base := t.TempDir()
	path := writeQueryFile(t, base, filepath.Join("queries-tpc-ds", "query7.sql"),
		"select i_item_id from item where i_category = 'Books';\n")

	var out bytes.Buffer
	err := runExplain(context.Background(), testConfig(base), "tpc-ds", "7", &out)
	require.Nil(t, err)

	text := out.String()
	require.Contains(t, text, "Reading query from: "+path)
	require.Contains(t, text, "SCAN item")
}

func TestRunExplainBadNumber(t *testing.T) {
	var out bytes.Buffer
	err := runExplain(context.Background(), testConfig(t.TempDir()), "tpc-h", "six", &out)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "query number must be an integer, got 'six'")
}

func TestRunExplainUnknownBenchmark(t *testing.T) {
	var out bytes.Buffer
	err := runExplain(context.Background(), testConfig(t.TempDir()), "tpc-x", "1", &out)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "tpc-x")
}

func TestRunExplainNumberCheckedFirst(t *testing.T) {
	var out bytes.Buffer
	err := runExplain(context.Background(), testConfig(t.TempDir()), "tpc-x", "six", &out)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "query number must be an integer")
}

func TestRunExplainMissingFile(t *testing.T) {
	base := t.TempDir()
	var out bytes.Buffer
	err := runExplain(context.Background(), testConfig(base), "tpc-h", "99", &out)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "query file not found")
	// The path announcement happens before the read attempt.
	require.Contains(t, out.String(), "Reading query from: ")
}

func TestRunExplainTranslationError(t *testing.T) {
	base := t.TempDir()
	writeQueryFile(t, base, filepath.Join("queries-tpc-h", "4.sql"), "definitely !! not sql ;;\n")

	var out bytes.Buffer
	err := runExplain(context.Background(), testConfig(base), "tpc-h", "4", &out)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "failed to translate query")
	// The banner of the failing section is already printed.
	require.Contains(t, out.String(), "TRANSLATED QUERY (SQLITE):")
	require.NotContains(t, out.String(), "PHYSICAL PLAN:")
}

func TestRunExplainBadDialect(t *testing.T) {
	base := t.TempDir()
	cfg := testConfig(base)
	cfg.Transpile.Target = "oracle"

	var out bytes.Buffer
	err := runExplain(context.Background(), cfg, "tpc-h", "1", &out)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "oracle")
}

func TestRunList(t *testing.T) {
	base := t.TempDir()
	path2 := writeQueryFile(t, base, filepath.Join("queries-tpc-h", "2.sql"), "select 1;\n")
	path10 := writeQueryFile(t, base, filepath.Join("queries-tpc-h", "10.sql"), "select 1;\n")
	writeQueryFile(t, base, filepath.Join("queries-tpc-h", "notes.txt"), "not a query\n")

	var out bytes.Buffer
	err := runList(testConfig(base), "tpc-h", &out)
	require.Nil(t, err)
	require.Equal(t, fmt.Sprintf("2\t%v\n10\t%v\n", path2, path10), out.String())
}

func TestRunListUnknownBenchmark(t *testing.T) {
	var out bytes.Buffer
	err := runList(testConfig(t.TempDir()), "nope", &out)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "nope")
}

func TestRootCmdArgValidation(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"tpc-h"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	require.NotNil(t, err)
}

func TestRootCmdFlagOverrides(t *testing.T) {
	base := t.TempDir()
	writeQueryFile(t, base, filepath.Join("queries-tpc-h", "5.sql"), "select n_name from nation;\n")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"tpc-h", "5", "--queries", base, "--extended"})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	require.Nil(t, err)
	require.Contains(t, out.String(), "BYTECODE PROGRAM:")
}

func TestRootCmdEnvOverride(t *testing.T) {
	t.Setenv("TARGET_DIALECT", "oracle")

	base := t.TempDir()
	writeQueryFile(t, base, filepath.Join("queries-tpc-h", "5.sql"), "select n_name from nation;\n")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"tpc-h", "5", "--queries", base})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "oracle")
}
