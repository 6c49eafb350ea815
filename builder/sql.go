// This file implements the SQL-shaped form spec.md §4.1/§4.4 describes:
// "select [exps] [by|dyn|rolling groups] from src [where filters]
// [sort ±id,…] [take n]", plus its update/delete siblings.
package builder

import (
	"github.com/hinmeru/jlang/ast"
	"github.com/hinmeru/jlang/diag"
	"github.com/hinmeru/jlang/grammar"
)

// parseSql parses a select/update/delete form starting at keyword kw
// (already consumed by the caller). op is kw's first six characters per
// spec.md §4.4 ("select"/"update"/"delete" all happen to be their own
// first six characters, since none is longer than six letters).
func (b *Builder) parseSql(pos ast.Pos, kw string) (ast.Node, error) {
	op := kw
	if len(op) > 6 {
		op = op[:6]
	}
	sql := ast.Sql{Base: ast.New(pos.SourceID, pos.Offset), Op: op}

	ops, err := b.parseSqlExprList()
	if err != nil {
		return nil, err
	}
	sql.Ops = ops

	if b.peekIsIdentWord("by") || b.peekIsIdentWord("dyn") || b.peekIsIdentWord("rolling") {
		groupWord := b.s.next().Value
		switch groupWord[0] {
		case 'd':
			sql.GroupType = "dyn"
		case 'r':
			sql.GroupType = "rolling"
		default:
			sql.GroupType = "by"
		}
		groups, err := b.parseSqlExprList()
		if err != nil {
			return nil, err
		}
		sql.Groups = groups
	} else {
		sql.GroupType = "by"
	}

	if !b.peekIsIdentWord("from") {
		return nil, b.errf(diag.SyntaxError, "expected 'from'")
	}
	b.s.next()
	from, err := b.parseExpr()
	if err != nil {
		return nil, err
	}
	sql.From = from

	if b.peekIsIdentWord("where") {
		b.s.next()
		filters, err := b.parseSqlExprList()
		if err != nil {
			return nil, err
		}
		sql.Filters = filters
	}

	if b.peekIsIdentWord("sort") || b.peekIsIdentWord("order") {
		b.s.next()
		sorts, err := b.parseSortList()
		if err != nil {
			return nil, err
		}
		sql.Sorts = sorts
	}

	if b.peekIsIdentWord("take") {
		b.s.next()
		take, err := b.parseExpr()
		if err != nil {
			return nil, err
		}
		sql.Take = take
	}

	return sql, nil
}

// parseSqlExprList parses a comma-separated run of SQL items, stopping at
// the next SQL keyword or closing bracket/paren. Each item is either a
// bare expression or an explicit "name = exp" column binding, which folds
// to an ast.Series the same way a dataframe column does (spec.md §8's
// worked example 8: "newCol=col2" inside a select list becomes
// Series("newCol", Id col2)).
func (b *Builder) parseSqlExprList() ([]ast.Node, error) {
	var out []ast.Node
	for {
		if b.atSqlBoundary() {
			return out, nil
		}
		e, err := b.parseSqlItem()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		if b.peekIsPunct(",") {
			b.s.next()
			continue
		}
		return out, nil
	}
}

func (b *Builder) parseSqlItem() (ast.Node, error) {
	pos := b.pos()
	t := b.s.peek()
	if t != nil && t.Name == grammar.Ident && !diag.IsReserved(t.Value) {
		if next := b.s.peekAt(1); next != nil && next.Name == grammar.Op && next.Value == "=" {
			name := t.Value
			b.s.next()
			b.s.next()
			exp, err := b.parseExpr()
			if err != nil {
				return nil, err
			}
			return ast.Series{Base: ast.New(pos.SourceID, pos.Offset), Name: name, Exp: exp}, nil
		}
	}
	return b.parseExpr()
}

// parseSortList parses "±id, ±id, ...", preserving a leading '-' verbatim
// in the identifier text per spec.md §4.4.
func (b *Builder) parseSortList() ([]string, error) {
	var out []string
	for {
		neg := false
		if t := b.s.peek(); t != nil && t.Name == grammar.Op && t.Value == "-" {
			neg = true
			b.s.next()
		}
		t := b.s.peek()
		if t == nil || t.Name != grammar.Ident {
			return nil, b.errf(diag.SyntaxError, "expected sort key")
		}
		if err := b.checkNotReserved(t.Value, t.Offset); err != nil {
			return nil, err
		}
		b.s.next()
		name := t.Value
		if neg {
			name = "-" + name
		}
		out = append(out, name)
		if b.peekIsPunct(",") {
			b.s.next()
			continue
		}
		return out, nil
	}
}

// atSqlBoundary reports whether the cursor sits at a token that ends an
// expression list inside a SQL form: a trailing SQL keyword, or the end
// of an enclosing bracket/paren/statement.
func (b *Builder) atSqlBoundary() bool {
	t := b.s.peek()
	if t == nil {
		return true
	}
	if t.Name == grammar.Ident {
		switch t.Value {
		case "by", "dyn", "rolling", "from", "where", "sort", "order", "take":
			return true
		}
	}
	if t.Name == grammar.Punct {
		switch t.Value {
		case ")", "]", "}", ";":
			return true
		}
	}
	return false
}
