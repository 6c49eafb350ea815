// This file implements the Dataframe and Matrix composite-literal
// productions spec.md §4.4/§4.5 describe: `df[col, ...]` and
// `[[col, ...]]`, each column either a bare expression or an explicit
// `name = exp` binding.
package builder

import (
	"fmt"

	"github.com/hinmeru/jlang/ast"
	"github.com/hinmeru/jlang/columnar"
	"github.com/hinmeru/jlang/diag"
	"github.com/hinmeru/jlang/grammar"
	"github.com/hinmeru/jlang/j"
)

// parseDataframeOrMatrix parses the "df" keyword's trailing "[...]" and
// builds either an ast.Dataframe or, if every column is already constant,
// a folded Literal{Value: j.DataFrame}.
func (b *Builder) parseDataframeOrMatrix(pos ast.Pos) (ast.Node, error) {
	cols, err := b.parseColumnList("[", "]")
	if err != nil {
		return nil, err
	}
	if allColumnsConstant(cols) {
		series, err := foldColumnsToSeries(cols)
		if err != nil {
			return nil, b.wrapLiteralErr(err)
		}
		df, err := columnar.NewDataFrame(series)
		if err != nil {
			return nil, b.wrapLiteralErr(err)
		}
		return ast.Literal{Base: ast.New(pos.SourceID, pos.Offset), Value: j.DataFrame{D: df}}, nil
	}
	return ast.Dataframe{Base: ast.New(pos.SourceID, pos.Offset), Cols: cols}, nil
}

// parseMatrix parses "[[col, ...]]", folding to a Literal{Value: j.Matrix}
// when every column is constant and numeric/boolean; matrix shape is
// runtime-checked otherwise (spec.md §4.4 "Matrix").
func (b *Builder) parseMatrix(pos ast.Pos) (ast.Node, error) {
	b.s.next() // outer '['
	cols, err := b.parseColumnList("[", "]")
	if err != nil {
		return nil, err
	}
	if _, err := b.expectPunct("]"); err != nil {
		return nil, err
	}
	if allColumnsConstant(cols) {
		series, err := foldColumnsToSeries(cols)
		if err != nil {
			return nil, b.wrapLiteralErr(err)
		}
		for _, s := range series {
			if !isNumericOrBoolSeries(s) {
				return nil, diag.New(diag.MatrixTypeError, b.src.ID, diag.Span{Start: pos.Offset, End: pos.Offset},
					"", fmt.Sprintf("matrix column %q is not numeric or boolean", s.Name()))
			}
		}
		df, err := columnar.NewDataFrame(series)
		if err != nil {
			return nil, b.wrapLiteralErr(err)
		}
		m, err := columnar.NewMatrixFromDataFrame(df)
		if err != nil {
			return nil, b.wrapLiteralErr(err)
		}
		return ast.Literal{Base: ast.New(pos.SourceID, pos.Offset), Value: j.Matrix{M: m}}, nil
	}
	return ast.Matrix{Base: ast.New(pos.SourceID, pos.Offset), Cols: cols}, nil
}

func isNumericOrBoolSeries(s *columnar.Series) bool {
	switch s.DataType().Kind {
	case columnar.KindBoolean, columnar.KindInt8, columnar.KindInt16, columnar.KindInt32, columnar.KindInt64,
		columnar.KindUint8, columnar.KindUint16, columnar.KindUint32, columnar.KindUint64,
		columnar.KindFloat32, columnar.KindFloat64:
		return true
	default:
		return false
	}
}

// parseColumnList parses a comma-separated run of "[name =] exp" column
// specs bracketed by open/close, consuming both the opening and the
// closing bracket; a caller with an extra wrapping bracket (Matrix)
// consumes the outer pair itself.
func (b *Builder) parseColumnList(open, close string) ([]ast.Series, error) {
	if _, err := b.expectPunct(open); err != nil {
		return nil, err
	}
	var cols []ast.Series
	idx := 0
	for !b.peekIsPunct(close) {
		col, err := b.parseColumn(idx)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
		idx++
		if b.peekIsPunct(",") {
			b.s.next()
			continue
		}
		break
	}
	if _, err := b.expectPunct(close); err != nil {
		return nil, err
	}
	return cols, nil
}

// parseColumn parses one "name = exp" or bare "exp" column spec. The
// explicit-name form is only recognized when an Ident is directly
// followed by "=" (not "=="), to avoid misreading a boolean-equality
// expression as a column binding.
func (b *Builder) parseColumn(idx int) (ast.Series, error) {
	pos := b.pos()
	t := b.s.peek()
	if t != nil && t.Name == grammar.Ident && !diag.IsReserved(t.Value) {
		if next := b.s.peekAt(1); next != nil && next.Name == grammar.Op && next.Value == "=" {
			name := t.Value
			b.s.next()
			b.s.next()
			exp, err := b.parseExpr()
			if err != nil {
				return ast.Series{}, err
			}
			return ast.Series{Base: ast.New(pos.SourceID, pos.Offset), Name: name, Exp: exp}, nil
		}
	}
	exp, err := b.parseExpr()
	if err != nil {
		return ast.Series{}, err
	}
	return ast.Series{Base: ast.New(pos.SourceID, pos.Offset), Name: fmt.Sprintf("series%02d", idx), Exp: exp}, nil
}

func allColumnsConstant(cols []ast.Series) bool {
	for _, c := range cols {
		if _, ok := c.Exp.(ast.Literal); !ok {
			return false
		}
	}
	return true
}

// foldColumnsToSeries lifts every constant column expression into a
// named typed Series: scalars are lifted via j.IntoSeries and renamed to
// the column name; series constants are renamed outright.
func foldColumnsToSeries(cols []ast.Series) ([]*columnar.Series, error) {
	out := make([]*columnar.Series, len(cols))
	for i, c := range cols {
		v := c.Exp.(ast.Literal).Value
		if s, ok := v.(j.Series); ok {
			out[i] = s.S.Rename(c.Name)
			continue
		}
		s, err := j.IntoSeries(v)
		if err != nil {
			return nil, fmt.Errorf("LiteralError: column %q: %v", c.Name, err)
		}
		out[i] = s.Rename(c.Name)
	}
	return out, nil
}
