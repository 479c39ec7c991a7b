package engine

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/tabwriter"
)

type eqpRow struct {
	id, parent int
	detail     string
}

type planNode struct {
	detail   string
	children []*planNode
}

func (s *Session) queryPlan(ctx context.Context, statement string) (string, error) {
	rows, err := s.db.QueryContext(ctx, "EXPLAIN QUERY PLAN "+statement)
	if err != nil {
		return "", fmt.Errorf("failed to plan query: %w", err)
	}
	defer rows.Close()

	plan := make([]eqpRow, 0)
	for rows.Next() {
		var row eqpRow
		var notused int
		err = rows.Scan(&row.id, &row.parent, &notused, &row.detail)
		if err != nil {
			return "", fmt.Errorf("failed to read plan row: %w", err)
		}
		plan = append(plan, row)
	}
	return renderPlanTree(plan), nil
}

// renderPlanTree lays the plan rows out the way the sqlite3 shell does in
// .eqp mode: nodes attach to their parent by id, siblings share a rail and
// the last one closes it.
func renderPlanTree(plan []eqpRow) string {
	nodes := make(map[int]*planNode, len(plan))
	roots := make([]*planNode, 0)
	for _, row := range plan {
		node := &planNode{detail: row.detail}
		nodes[row.id] = node
		if parent, ok := nodes[row.parent]; ok {
			parent.children = append(parent.children, node)
		} else {
			roots = append(roots, node)
		}
	}

	var b strings.Builder
	b.WriteString("QUERY PLAN")
	for i, root := range roots {
		writeBranch(&b, root, "", i == len(roots)-1)
	}
	return b.String()
}

func writeBranch(b *strings.Builder, node *planNode, prefix string, last bool) {
	branch, rail := "|--", "|  "
	if last {
		branch, rail = "`--", "   "
	}
	fmt.Fprintf(b, "\n%v%v%v", prefix, branch, node.detail)
	for i, child := range node.children {
		writeBranch(b, child, prefix+rail, i == len(node.children)-1)
	}
}

// bytecode lists the virtual machine program the statement compiles to,
// column-aligned like the shell's EXPLAIN output.
func (s *Session) bytecode(ctx context.Context, statement string) (string, error) {
	rows, err := s.db.QueryContext(ctx, "EXPLAIN "+statement)
	if err != nil {
		return "", fmt.Errorf("failed to compile query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return "", fmt.Errorf("failed to read program columns: %w", err)
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(columns, "\t"))

	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		err = rows.Scan(dest...)
		if err != nil {
			return "", fmt.Errorf("failed to read program row: %w", err)
		}
		fields := make([]string, len(values))
		for i, value := range values {
			fields[i] = value.String
		}
		fmt.Fprintln(w, strings.Join(fields, "\t"))
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
