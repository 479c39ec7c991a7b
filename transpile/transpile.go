// Package transpile converts SQL text between dialects by parsing it with
// the source dialect's grammar and regenerating it for the target. The heavy
// lifting is delegated to xsqlparser; this package owns only the dialect
// mapping and the target-specific rewrites.
package transpile

import (
	"fmt"
	"strings"

	"github.com/akito0107/xsqlparser"
	"github.com/akito0107/xsqlparser/sqlast"
)

// Parse tokenizes the text with the source dialect's grammar and returns the
// parsed statements. Comments are dropped.
func Parse(query string, source Dialect) ([]sqlast.Stmt, error) {
	parser, err := xsqlparser.NewParser(strings.NewReader(query), source.grammar())
	if err != nil {
		return nil, fmt.Errorf("failed to create parser: %w", err)
	}
	file, err := parser.ParseFile()
	if err != nil {
		return nil, fmt.Errorf("failed to parse query: %w", err)
	}
	return file.Stmts, nil
}

// Translate converts query text from the source dialect to the target
// dialect, one output string per input statement. The output is
// deterministic: the same input always regenerates the same text.
func Translate(query string, source, target Dialect) ([]string, error) {
	stmts, err := Parse(query, source)
	if err != nil {
		return nil, err
	}
	if len(stmts) == 0 {
		return nil, fmt.Errorf("query text contains no statements")
	}
	translated := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		translated = append(translated, rewriteForTarget(stmt, target).ToSQLString())
	}
	return translated, nil
}

// Join renders translated statements back into a single printable script.
func Join(statements []string) string {
	return strings.Join(statements, ";\n\n")
}
