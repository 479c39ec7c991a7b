package benchmark

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	suite, err := Lookup("tpc-h")
	require.Nil(t, err)
	require.Equal(t, "tpc-h", suite.Name())

	suite, err = Lookup("TPC-DS")
	require.Nil(t, err)
	require.Equal(t, "tpc-ds", suite.Name())

	_, err = Lookup("tpc-x")
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "tpc-x")
}

func TestQueryPath(t *testing.T) {
	tpch, err := Lookup("tpc-h")
	require.Nil(t, err)
	tpcds, err := Lookup("tpc-ds")
	require.Nil(t, err)

	require.Equal(t, filepath.Join("base", "queries-tpc-h", "3.sql"), tpch.QueryPath("base", 3))
	require.Equal(t, filepath.Join("base", "queries-tpc-ds", "query42.sql"), tpcds.QueryPath("base", 42))
}

func TestReadQuery(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "1.sql")
	require.Nil(t, os.WriteFile(path, []byte("select 1;\n"), 0644))

	query, err := ReadQuery(path)
	require.Nil(t, err)
	require.Equal(t, "select 1;\n", query)
}

func TestReadQueryMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "9000.sql")
	_, err := ReadQuery(path)
	require.NotNil(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
	require.Contains(t, err.Error(), path)
}

func TestReadQueryEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "4.sql")
	require.Nil(t, os.WriteFile(path, []byte("  \n\t\n"), 0644))

	_, err := ReadQuery(path)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "is empty")
}

func TestQueriesSorted(t *testing.T) {
	dir := t.TempDir()
	queries := filepath.Join(dir, "queries-tpc-h")
	require.Nil(t, os.MkdirAll(queries, 0755))
	for _, name := range []string{"10.sql", "2.sql", "1.sql", "README.md", "query5.sql"} {
		require.Nil(t, os.WriteFile(filepath.Join(queries, name), []byte("select 1;"), 0644))
	}

	suite, err := Lookup("tpc-h")
	require.Nil(t, err)
	found, err := suite.Queries(dir)
	require.Nil(t, err)

	numbers := make([]int, 0)
	for _, query := range found {
		numbers = append(numbers, query.Number)
	}
	require.Equal(t, []int{1, 2, 10}, numbers)
}

func TestQueriesPrefixed(t *testing.T) {
	dir := t.TempDir()
	queries := filepath.Join(dir, "queries-tpc-ds")
	require.Nil(t, os.MkdirAll(queries, 0755))
	for _, name := range []string{"query12.sql", "query3.sql", "3.sql"} {
		require.Nil(t, os.WriteFile(filepath.Join(queries, name), []byte("select 1;"), 0644))
	}

	suite, err := Lookup("tpc-ds")
	require.Nil(t, err)
	found, err := suite.Queries(dir)
	require.Nil(t, err)
	require.Equal(t, 2, len(found))
	require.Equal(t, 3, found[0].Number)
	require.Equal(t, 12, found[1].Number)
}

func TestQueriesMissingDir(t *testing.T) {
	suite, err := Lookup("tpc-h")
	require.Nil(t, err)
	_, err = suite.Queries(filepath.Join(t.TempDir(), "nowhere"))
	require.NotNil(t, err)
}
