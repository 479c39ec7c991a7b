package transpile

import (
	"github.com/akito0107/xsqlparser/sqlast"
	"github.com/akito0107/xsqlparser/sqlastutil"
)

func rewriteForTarget(stmt sqlast.Stmt, target Dialect) sqlast.Node {
	switch target {
	case SQLite:
		return sqlastutil.Apply(stmt, rewriteSQLite, nil)
	default:
		return stmt
	}
}

// SQLite has no N'...' literals, and its boolean keywords only arrived in
// 3.23, so both are lowered to forms every version accepts.
func rewriteSQLite(cursor *sqlastutil.Cursor) bool {
	switch node := cursor.Node().(type) {
	case *sqlast.NationalStringLiteral:
		cursor.Replace(sqlast.NewSingleQuotedString(node.String))
	case *sqlast.BooleanValue:
		if node.Boolean {
			cursor.Replace(sqlast.NewLongValue(1))
		} else {
			cursor.Replace(sqlast.NewLongValue(0))
		}
	}
	return true
}
