package benchmark

import (
	"fmt"
	"strings"
)

type Column struct {
	Name string
	Type string
}

type Table struct {
	Name    string
	Columns []Column
}

// CreateStmt renders the table as an idempotent declaration so planning can
// resolve column references against an empty table.
func (t Table) CreateStmt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %v (\n", t.Name)
	for i, column := range t.Columns {
		sep := ","
		if i == len(t.Columns)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "    %v %v%v\n", column.Name, column.Type, sep)
	}
	b.WriteString(")")
	return b.String()
}
