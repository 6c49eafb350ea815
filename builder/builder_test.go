package builder

import (
	"testing"

	"github.com/hinmeru/jlang/ast"
	"github.com/hinmeru/jlang/columnar"
	"github.com/hinmeru/jlang/j"
	"github.com/hinmeru/jlang/sourcemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, text string) ast.Node {
	t.Helper()
	m := sourcemap.NewMap()
	src := m.Register(text)
	nodes, err := Build(src)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	return nodes[0]
}

// TestUnaryPrefixOverBinOp pins spec.md §8 worked example 1:
// total = sum 1.0 2.0 * 3 -> Assign(total, UnaryOp(sum, BinOp(*, Series[f64;1.0,2.0], Integer 3))).
func TestUnaryPrefixOverBinOp(t *testing.T) {
	n := parseOne(t, "total = sum 1.0 2.0 * 3")
	assign, ok := n.(ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "total", assign.Name)

	un, ok := assign.Exp.(ast.UnaryOp)
	require.True(t, ok)
	id, ok := un.OpNode.(ast.Id)
	require.True(t, ok)
	assert.Equal(t, "sum", id.Name)

	bin, ok := un.Exp.(ast.BinOp)
	require.True(t, ok)
	op, ok := bin.OpNode.(ast.Op)
	require.True(t, ok)
	assert.Equal(t, "*", op.Symbol)

	lit, ok := bin.Lhs.(ast.Literal)
	require.True(t, ok)
	series, ok := lit.Value.(j.Series)
	require.True(t, ok)
	vals, err := series.S.Float64Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0, 2.0}, vals)

	rhs, ok := bin.Rhs.(ast.Literal)
	require.True(t, ok)
	assert.Equal(t, j.I64{Value: 3}, rhs.Value)
}

// TestSuffixFixesSeriesDtype pins worked example 2: qty = 7i16 8 9; ->
// Assign(qty, Series[i16; 7,8,9]).
func TestSuffixFixesSeriesDtype(t *testing.T) {
	n := parseOne(t, "qty = 7i16 8 9")
	assign := n.(ast.Assign)
	assert.Equal(t, "qty", assign.Name)

	lit := assign.Exp.(ast.Literal)
	series := lit.Value.(j.Series)
	assert.Equal(t, columnar.KindInt16, series.S.DataType().Kind)
	vals, err := series.S.Int64Values()
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 8, 9}, vals)
}

// TestConstantDataframeFoldsToLiteral pins worked example 3: a dataframe
// with categorical and i64 columns, both constant, folds to one Literal.
func TestConstantDataframeFoldsToLiteral(t *testing.T) {
	n := parseOne(t, "df[sym=`a`b`b, col1=1 2 3]")
	lit, ok := n.(ast.Literal)
	require.True(t, ok)
	df, ok := lit.Value.(j.DataFrame)
	require.True(t, ok)
	cols := df.D.Columns()
	require.Equal(t, 2, len(cols))
	assert.Equal(t, "sym", cols[0].Name())
	assert.Equal(t, columnar.KindCategorical, cols[0].DataType().Kind)
	assert.Equal(t, "col1", cols[1].Name())
	assert.Equal(t, columnar.KindInt64, cols[1].DataType().Kind)
	assert.Equal(t, 3, cols[0].Len())
}

// TestCallWithSkipHoles pins worked example 6: f(1, , 9) has
// args = [Int 1, Skip, Int 9].
func TestCallWithSkipHoles(t *testing.T) {
	n := parseOne(t, "f(1, , 9)")
	call, ok := n.(ast.Call)
	require.True(t, ok)
	require.Len(t, call.Args, 3)
	assert.Equal(t, j.I64{Value: 1}, call.Args[0].(ast.Literal).Value)
	_, isSkip := call.Args[1].(ast.Skip)
	assert.True(t, isSkip)
	assert.Equal(t, j.I64{Value: 9}, call.Args[2].(ast.Literal).Value)
}

// TestTryCatchBinOpOnCat pins worked example 7:
// try { a = 1 + `a } catch(err) { err == "type" }.
func TestTryCatchBinOpOnCat(t *testing.T) {
	n := parseOne(t, "try { a = 1 + `a } catch(err) { err == \"type\" }")
	tr, ok := n.(ast.Try)
	require.True(t, ok)
	require.Len(t, tr.TryStmts, 1)
	assign := tr.TryStmts[0].(ast.Assign)
	assert.Equal(t, "a", assign.Name)
	bin := assign.Exp.(ast.BinOp)
	assert.Equal(t, "+", bin.OpNode.(ast.Op).Symbol)
	assert.Equal(t, j.Cat{Value: "a"}, bin.Rhs.(ast.Literal).Value)

	assert.Equal(t, "err", tr.ErrName)
	require.Len(t, tr.CatchStmts, 1)
	catchBin := tr.CatchStmts[0].(ast.BinOp)
	assert.Equal(t, "==", catchBin.OpNode.(ast.Op).Symbol)
	assert.Equal(t, "err", catchBin.Lhs.(ast.Id).Name)
}

// TestSelectWithComputedAndRenamedColumns pins worked example 8.
func TestSelectWithComputedAndRenamedColumns(t *testing.T) {
	n := parseOne(t, "select sum col1+col2, newCol=col2 from t where sym==`a")
	sql, ok := n.(ast.Sql)
	require.True(t, ok)
	assert.Equal(t, "select", sql.Op)
	require.Len(t, sql.Ops, 2)

	un := sql.Ops[0].(ast.UnaryOp)
	assert.Equal(t, "sum", un.OpNode.(ast.Id).Name)
	bin := un.Exp.(ast.BinOp)
	assert.Equal(t, "+", bin.OpNode.(ast.Op).Symbol)

	series := sql.Ops[1].(ast.Series)
	assert.Equal(t, "newCol", series.Name)
	assert.Equal(t, "col2", series.Exp.(ast.Id).Name)

	assert.Equal(t, "t", sql.From.(ast.Id).Name)
	require.Len(t, sql.Filters, 1)
	filterBin := sql.Filters[0].(ast.BinOp)
	assert.Equal(t, "==", filterBin.OpNode.(ast.Op).Symbol)
	assert.Equal(t, j.Cat{Value: "a"}, filterBin.Rhs.(ast.Literal).Value)
}

// TestColonTypoHintsEquals pins worked example 9: x:1 -> SyntaxError
// with message "perhaps '='".
func TestColonTypoHintsEquals(t *testing.T) {
	m := sourcemap.NewMap()
	src := m.Register("x:1")
	_, err := Build(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "perhaps '='")
}

func TestReservedWordNeverReachesAst(t *testing.T) {
	m := sourcemap.NewMap()
	src := m.Register("select = 1")
	_, err := Build(src)
	assert.Error(t, err)
}

func TestLeafOffsetsWithinSourceBounds(t *testing.T) {
	text := "x = 1 + 2"
	n := parseOne(t, text)
	assign := n.(ast.Assign)
	pos := assign.Pos()
	assert.GreaterOrEqual(t, pos.Offset, 0)
	assert.LessOrEqual(t, pos.Offset, len(text))
}
