// Package builder is C5, the AST builder: it walks the token stream the
// grammar package (C4) produces and emits ast.Node values, folding
// composite literals into constant j.J values wherever every child is
// already constant (spec.md §4.4). The folding rule is always the same
// one: "are all children already J constants?" — literal folding never
// observes identifiers, which keeps the emitted AST stable regardless of
// the evaluator's identifier-resolution order (spec.md §9).
//
// This package plays the role original_source/crates/jasmine/src/parser.rs
// plays in the Rust implementation this spec distills: one function per
// grammar production, written top-down, consulting the temporal codec
// (package temporal), the value model (package j), and the columnar
// backend (package columnar) as it goes.
package builder

import (
	"fmt"
	"strings"

	"github.com/hinmeru/jlang/ast"
	"github.com/hinmeru/jlang/columnar"
	"github.com/hinmeru/jlang/diag"
	"github.com/hinmeru/jlang/grammar"
	"github.com/hinmeru/jlang/j"
	"github.com/hinmeru/jlang/sourcemap"
)

// Builder walks one source's token stream into a slice of AST nodes.
type Builder struct {
	src sourcemap.Source
	s   *stream
}

// Build parses src's text and returns its statements, or the first
// diagnostic encountered (spec.md §5: "returns either an AST vector or
// the first error; no multi-error collection").
func Build(src sourcemap.Source) ([]ast.Node, error) {
	toks, err := grammar.Lex(src.Text)
	if err != nil {
		return nil, &diag.Diagnostic{SourceID: src.ID, Kind: diag.SyntaxError, Message: err.Error()}
	}
	b := &Builder{src: src, s: newStream(toks)}
	var stmts []ast.Node
	for !b.s.atEnd() {
		b.skipStmtSep()
		if b.s.atEnd() {
			break
		}
		n, err := b.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, n)
		b.skipStmtSep()
	}
	return stmts, nil
}

func (b *Builder) skipStmtSep() {
	for {
		t := b.s.peek()
		if t == nil || !(t.Name == grammar.Punct && t.Value == ";") {
			return
		}
		b.s.next()
	}
}

func (b *Builder) pos() ast.Pos { return ast.Pos{SourceID: b.src.ID, Offset: b.s.offset()} }

func (b *Builder) errf(kind diag.Kind, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	near := ""
	if t := b.s.peek(); t != nil {
		near = t.Value
	}
	return diag.New(kind, b.src.ID, diag.Span{Start: b.s.offset(), End: b.s.offset()}, near, msg)
}

func (b *Builder) expectPunct(v string) (int, error) {
	t := b.s.peek()
	if t == nil || t.Name != grammar.Punct || t.Value != v {
		return 0, b.errf(diag.SyntaxError, "expected %q", v)
	}
	b.s.next()
	return t.Offset, nil
}

func (b *Builder) peekIsPunct(v string) bool {
	t := b.s.peek()
	return t != nil && t.Name == grammar.Punct && t.Value == v
}

func (b *Builder) peekIsIdentWord(w string) bool {
	t := b.s.peek()
	return t != nil && t.Name == grammar.Ident && t.Value == w
}

// checkNotReserved fails if name is one of jlang's reserved words
// (spec.md §4.1: "Any identifier whose text matches a keyword is a parse
// error at its location").
func (b *Builder) checkNotReserved(name string, offset int) error {
	if diag.IsReserved(name) {
		return diag.New(diag.ReservedKeyword, b.src.ID, diag.Span{Start: offset, End: offset + len(name)}, name,
			fmt.Sprintf("%q is a reserved keyword and cannot be used as an identifier", name))
	}
	return nil
}

// parseStmt parses one top-level or block statement.
func (b *Builder) parseStmt() (ast.Node, error) {
	t := b.s.peek()
	if t == nil {
		return nil, b.errf(diag.SyntaxError, "unexpected end of input")
	}
	if t.Name == grammar.Ident {
		switch t.Value {
		case "if":
			return b.parseIf()
		case "while":
			return b.parseWhile()
		case "try":
			return b.parseTry()
		case "return":
			pos := b.pos()
			b.s.next()
			exp, err := b.parseExpr()
			if err != nil {
				return nil, err
			}
			return ast.Return{Base: ast.New(pos.SourceID, pos.Offset), Exp: exp}, nil
		case "raise":
			pos := b.pos()
			b.s.next()
			exp, err := b.parseExpr()
			if err != nil {
				return nil, err
			}
			return ast.Raise{Base: ast.New(pos.SourceID, pos.Offset), Exp: exp}, nil
		}
	}
	return b.parseAssignOrExpr()
}

func (b *Builder) parseBlock() ([]ast.Node, error) {
	if _, err := b.expectPunct("{"); err != nil {
		return nil, err
	}
	var stmts []ast.Node
	for {
		b.skipStmtSep()
		if b.peekIsPunct("}") {
			b.s.next()
			return stmts, nil
		}
		if b.s.atEnd() {
			return nil, b.errf(diag.SyntaxError, "unterminated block")
		}
		n, err := b.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, n)
	}
}

func (b *Builder) parseIf() (ast.Node, error) {
	pos := b.pos()
	b.s.next()
	if _, err := b.expectPunct("("); err != nil {
		return nil, err
	}
	cond, err := b.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := b.expectPunct(")"); err != nil {
		return nil, err
	}
	stmts, err := b.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.If{Base: ast.New(pos.SourceID, pos.Offset), Cond: cond, Stmts: stmts}, nil
}

func (b *Builder) parseWhile() (ast.Node, error) {
	pos := b.pos()
	b.s.next()
	if _, err := b.expectPunct("("); err != nil {
		return nil, err
	}
	cond, err := b.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := b.expectPunct(")"); err != nil {
		return nil, err
	}
	stmts, err := b.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.While{Base: ast.New(pos.SourceID, pos.Offset), Cond: cond, Stmts: stmts}, nil
}

func (b *Builder) parseTry() (ast.Node, error) {
	pos := b.pos()
	b.s.next()
	tryStmts, err := b.parseBlock()
	if err != nil {
		return nil, err
	}
	if !b.peekIsIdentWord("catch") {
		return nil, b.errf(diag.SyntaxError, "expected 'catch'")
	}
	b.s.next()
	if _, err := b.expectPunct("("); err != nil {
		return nil, err
	}
	nameTok := b.s.peek()
	if nameTok == nil || nameTok.Name != grammar.Ident {
		return nil, b.errf(diag.SyntaxError, "expected identifier after 'catch('")
	}
	if err := b.checkNotReserved(nameTok.Value, nameTok.Offset); err != nil {
		return nil, err
	}
	errName := nameTok.Value
	b.s.next()
	if _, err := b.expectPunct(")"); err != nil {
		return nil, err
	}
	catchStmts, err := b.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.Try{Base: ast.New(pos.SourceID, pos.Offset), TryStmts: tryStmts, ErrName: errName, CatchStmts: catchStmts}, nil
}

// parseAssignOrExpr disambiguates "id = exp", "id(i,...) = exp" and a
// bare expression statement by looking ahead from a leading identifier.
func (b *Builder) parseAssignOrExpr() (ast.Node, error) {
	t := b.s.peek()
	pos := b.pos()
	if t != nil && t.Name == grammar.Ident && !diag.IsReserved(t.Value) {
		if next := b.s.peekAt(1); next != nil && next.Name == grammar.Op && next.Value == "=" {
			name := t.Value
			b.s.next()
			b.s.next()
			exp, err := b.parseExpr()
			if err != nil {
				return nil, err
			}
			return ast.Assign{Base: ast.New(pos.SourceID, pos.Offset), Name: name, Exp: exp}, nil
		}
		if next := b.s.peekAt(1); next != nil && next.Name == grammar.Punct && next.Value == "(" {
			if idx, ok := b.tryParseIndexAssign(); ok {
				return idx, nil
			}
		}
	}
	return b.parseExpr()
}

// tryParseIndexAssign speculatively parses "id(exp, ...) = exp"; on
// failure to find the trailing "=" it rewinds and reports false so the
// caller falls back to ordinary expression parsing (a Call).
func (b *Builder) tryParseIndexAssign() (ast.Node, bool) {
	start := b.s.pos
	pos := b.pos()
	nameTok := b.s.next()
	b.s.next() // '('
	var indices []ast.Node
	for !b.peekIsPunct(")") {
		idx, err := b.parseExpr()
		if err != nil {
			b.s.pos = start
			return nil, false
		}
		indices = append(indices, idx)
		if b.peekIsPunct(",") {
			b.s.next()
			continue
		}
		break
	}
	if _, err := b.expectPunct(")"); err != nil {
		b.s.pos = start
		return nil, false
	}
	eq := b.s.peek()
	if eq == nil || eq.Name != grammar.Op || eq.Value != "=" {
		b.s.pos = start
		return nil, false
	}
	b.s.next()
	exp, err := b.parseExpr()
	if err != nil {
		b.s.pos = start
		return nil, false
	}
	return ast.IndexAssign{Base: ast.New(pos.SourceID, pos.Offset), Id: nameTok.Value, Indices: indices, Exp: exp}, true
}

// parseExpr implements spec.md §4.1's single-precedence, right-associative
// infix rule plus the unary "op exp" form: a leading operator/identifier
// atom directly followed by another operand (no infix token between them)
// applies as a unary prefix wrapping the rest of the expression.
func (b *Builder) parseExpr() (ast.Node, error) {
	left, err := b.parsePrimary()
	if err != nil {
		return nil, err
	}
	if isOperatorAtom(left) && b.startsOperand() {
		rest, err := b.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.UnaryOp{OpNode: left, Exp: rest}, nil
	}
	if t := b.s.peek(); t != nil {
		if t.Name == grammar.Op && t.Value != "=" {
			opTok := b.s.next()
			rhs, err := b.parseExpr()
			if err != nil {
				return nil, err
			}
			return ast.BinOp{OpNode: ast.Op{Symbol: opTok.Value}, Lhs: left, Rhs: rhs}, nil
		}
		if t.Name == grammar.BinOpIdent {
			opTok := b.s.next()
			rhs, err := b.parseExpr()
			if err != nil {
				return nil, err
			}
			return ast.BinOp{OpNode: ast.BinaryId{Name: strings.TrimPrefix(opTok.Value, "\\")}, Lhs: left, Rhs: rhs}, nil
		}
	}
	return left, nil
}

func isOperatorAtom(n ast.Node) bool {
	switch n.(type) {
	case ast.Id, ast.Op:
		return true
	default:
		return false
	}
}

// startsOperand reports whether the current token can begin a new
// operand, used to detect unary-prefix application ("sum 1 2 3").
func (b *Builder) startsOperand() bool {
	t := b.s.peek()
	if t == nil {
		return false
	}
	switch t.Name {
	case grammar.Integer, grammar.Decimal, grammar.Boolean, grammar.Date, grammar.Time,
		grammar.Datetime, grammar.Timestamp, grammar.Duration, grammar.CatRun, grammar.CatAlt,
		grammar.String:
		return true
	case grammar.Ident:
		return !diag.IsReserved(t.Value) || t.Value == "null" || t.Value == "fn"
	case grammar.Op:
		return t.Value == "-" || t.Value == "!"
	case grammar.Punct:
		return t.Value == "(" || t.Value == "[" || t.Value == "{"
	default:
		return false
	}
}

// parsePrimary parses one atomic or composite form, folding literal runs
// and composites into constants wherever possible.
func (b *Builder) parsePrimary() (ast.Node, error) {
	t := b.s.peek()
	if t == nil {
		return nil, b.errf(diag.SyntaxError, "unexpected end of input")
	}
	pos := b.pos()
	switch t.Name {
	case grammar.Punct:
		switch t.Value {
		case "(":
			b.s.next()
			exp, err := b.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := b.expectPunct(")"); err != nil {
				return nil, err
			}
			return exp, nil
		case "[":
			return b.parseBracketed(pos)
		case "{":
			return b.parseDict(pos)
		}
		return nil, b.errf(diag.SyntaxError, "unexpected %q", t.Value)
	case grammar.Op:
		b.s.next()
		return ast.Op{Base: ast.New(b.src.ID, t.Offset), Symbol: t.Value}, nil
	case grammar.BinOpIdent:
		b.s.next()
		return ast.BinaryId{Base: ast.New(b.src.ID, t.Offset), Name: strings.TrimPrefix(t.Value, "\\")}, nil
	case grammar.Ident:
		if t.Value == "null" && b.continuesScalarRun(b.s.peekAt(1)) {
			return b.parseScalarOrSeries(pos)
		}
		return b.parseIdentOrKeywordForm(pos)
	case grammar.Integer, grammar.Decimal, grammar.Boolean, grammar.Date, grammar.Time,
		grammar.Datetime, grammar.Timestamp, grammar.Duration, grammar.CatRun, grammar.CatAlt, grammar.String:
		return b.parseScalarOrSeries(pos)
	default:
		return nil, b.errf(diag.SyntaxError, "unexpected token %q", t.Value)
	}
}

// continuesScalarRun reports whether t can extend an in-progress series
// literal run: any scalar-literal token, or a bare "null" placeholder.
// A plain identifier never continues a run — it always starts a new
// primary (a variable reference or unary application).
func (b *Builder) continuesScalarRun(t *grammar.Tok) bool {
	if t == nil || !isScalarKind(t.Name) {
		return false
	}
	if t.Name == grammar.Ident {
		return t.Value == "null"
	}
	return true
}

// parseScalarOrSeries consumes a whitespace-adjacent run of scalar tokens
// (already whitespace-stripped by the lexer, so "adjacent in the token
// stream" is exactly "whitespace-separated" per spec.md §4.1) and folds a
// run of length > 1 into a Series literal, leaving a singleton as a plain
// scalar Literal (spec.md §4.4/§4.6).
func (b *Builder) parseScalarOrSeries(pos ast.Pos) (ast.Node, error) {
	first := *b.s.next()
	run := []grammar.Tok{first}
	for b.continuesScalarRun(b.s.peek()) {
		run = append(run, *b.s.next())
	}
	if len(run) == 1 {
		v, err := scalarValue(first)
		if err != nil {
			return nil, b.wrapLiteralErr(err)
		}
		return ast.Literal{Base: ast.New(pos.SourceID, pos.Offset), Value: v}, nil
	}
	v, err := buildSeriesLiteral(run)
	if err != nil {
		return nil, b.wrapLiteralErr(err)
	}
	return ast.Literal{Base: ast.New(pos.SourceID, pos.Offset), Value: v}, nil
}

func (b *Builder) wrapLiteralErr(err error) error {
	kind := diag.LiteralError
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "SeriesTypeError:"):
		kind = diag.SeriesTypeError
		msg = strings.TrimPrefix(msg, "SeriesTypeError:")
	case strings.HasPrefix(msg, "DataframeShapeError:"):
		kind = diag.DataframeShapeError
		msg = strings.TrimPrefix(msg, "DataframeShapeError:")
	case strings.HasPrefix(msg, "MatrixTypeError:"):
		kind = diag.MatrixTypeError
		msg = strings.TrimPrefix(msg, "MatrixTypeError:")
	case strings.HasPrefix(msg, "LiteralError:"):
		msg = strings.TrimPrefix(msg, "LiteralError:")
	}
	return diag.New(kind, b.src.ID, diag.Span{Start: b.s.offset(), End: b.s.offset()}, "", strings.TrimSpace(msg))
}

// parseIdentOrKeywordForm dispatches an identifier-led primary: a
// reserved word used where an identifier is expected is always an error;
// "fn", "df", "true"/"false"/"null" are literal/constructor forms, not
// plain identifiers; anything else is an Id, upgraded to Call if followed
// directly by "(".
func (b *Builder) parseIdentOrKeywordForm(pos ast.Pos) (ast.Node, error) {
	t := *b.s.next()
	switch t.Value {
	case "true", "false":
		return ast.Literal{Base: ast.New(pos.SourceID, pos.Offset), Value: j.Boolean{Value: t.Value == "true"}}, nil
	case "null":
		return ast.Literal{Base: ast.New(pos.SourceID, pos.Offset), Value: j.Null{}}, nil
	case "fn":
		return b.parseFn(pos)
	case "df":
		return b.parseDataframeOrMatrix(pos)
	case "select", "update", "delete":
		return b.parseSql(pos, t.Value)
	}
	if diag.IsReserved(t.Value) {
		return nil, diag.New(diag.ReservedKeyword, b.src.ID, diag.Span{Start: t.Offset, End: t.Offset + len(t.Value)}, t.Value,
			fmt.Sprintf("%q is a reserved keyword and cannot be used as an identifier", t.Value))
	}
	id := ast.Id{Base: ast.New(pos.SourceID, pos.Offset), Name: t.Value}
	if b.peekIsPunct("(") {
		return b.parseCall(pos, id)
	}
	return id, nil
}

// parseCall parses "f(arg, ...)"; a single bare Skip argument means a
// no-arg call, and any other positional comma run preserves Skip holes
// for partial application (spec.md §4.4 "Call parsing").
func (b *Builder) parseCall(pos ast.Pos, f ast.Node) (ast.Node, error) {
	b.s.next() // '('
	var args []ast.Node
	for !b.peekIsPunct(")") {
		if b.peekIsPunct(",") {
			args = append(args, ast.Skip{})
			b.s.next()
			continue
		}
		arg, err := b.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if b.peekIsPunct(",") {
			b.s.next()
			continue
		}
		break
	}
	if _, err := b.expectPunct(")"); err != nil {
		return nil, err
	}
	if len(args) == 1 {
		if _, ok := args[0].(ast.Skip); ok {
			args = nil
		}
	}
	return ast.Call{Base: ast.New(pos.SourceID, pos.Offset), F: f, Args: args}, nil
}

// parseFn parses "fn(params){stmts}", retaining the verbatim source
// slice spanning the "fn" keyword through the closing brace (spec.md §9).
func (b *Builder) parseFn(pos ast.Pos) (ast.Node, error) {
	startOffset := pos.Offset
	if _, err := b.expectPunct("("); err != nil {
		return nil, err
	}
	var params []string
	for !b.peekIsPunct(")") {
		t := b.s.peek()
		if t == nil || t.Name != grammar.Ident {
			return nil, b.errf(diag.SyntaxError, "expected parameter name")
		}
		if err := b.checkNotReserved(t.Value, t.Offset); err != nil {
			return nil, err
		}
		params = append(params, t.Value)
		b.s.next()
		if b.peekIsPunct(",") {
			b.s.next()
			continue
		}
		break
	}
	if _, err := b.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := b.parseBlockRetainingEnd()
	if err != nil {
		return nil, err
	}
	endOffset := b.s.peekAt(-1).Offset + 1
	return ast.Fn{
		Base: ast.New(pos.SourceID, pos.Offset), Params: params, Body: body,
		SourceID: pos.SourceID, TextStart: startOffset, TextEnd: endOffset,
	}, nil
}

func (b *Builder) parseBlockRetainingEnd() ([]ast.Node, error) {
	return b.parseBlock()
}

func (b *Builder) parseBracketed(pos ast.Pos) (ast.Node, error) {
	if b.s.peekAt(1) != nil && b.s.peekAt(1).Name == grammar.Punct && b.s.peekAt(1).Value == "[" {
		return b.parseMatrix(pos)
	}
	return b.parseList(pos)
}

// parseList parses "[exp, ...]", folding to j.MixedList (or, when every
// child shares one scalar-literal production, re-parsing the whole list
// through the series path per spec.md §4.4) whenever every child is
// already constant.
func (b *Builder) parseList(pos ast.Pos) (ast.Node, error) {
	b.s.next() // '['
	var exps []ast.Node
	for !b.peekIsPunct("]") {
		e, err := b.parseExpr()
		if err != nil {
			return nil, err
		}
		exps = append(exps, e)
		if b.peekIsPunct(",") {
			b.s.next()
			continue
		}
		break
	}
	if _, err := b.expectPunct("]"); err != nil {
		return nil, err
	}
	if allConstant(exps) {
		vals := literalsOf(exps)
		if allSameScalarKind(exps) {
			if s, ok := refoldAsSeries(vals); ok {
				return ast.Literal{Base: ast.New(pos.SourceID, pos.Offset), Value: s}, nil
			}
		}
		return ast.Literal{Base: ast.New(pos.SourceID, pos.Offset), Value: j.MixedList{Values: vals}}, nil
	}
	return ast.List{Base: ast.New(pos.SourceID, pos.Offset), Exps: exps}, nil
}

func allConstant(exps []ast.Node) bool {
	for _, e := range exps {
		if _, ok := e.(ast.Literal); !ok {
			return false
		}
	}
	return len(exps) > 0
}

func literalsOf(exps []ast.Node) []j.J {
	out := make([]j.J, len(exps))
	for i, e := range exps {
		out[i] = e.(ast.Literal).Value
	}
	return out
}

// allSameScalarKind reports whether every element of exps is a Literal
// wrapping the same concrete j.J scalar variant, the precondition for
// re-folding a list as a series (spec.md §4.4).
func allSameScalarKind(exps []ast.Node) bool {
	if len(exps) == 0 {
		return false
	}
	kind := fmt.Sprintf("%T", exps[0].(ast.Literal).Value)
	for _, e := range exps {
		if fmt.Sprintf("%T", e.(ast.Literal).Value) != kind {
			return false
		}
	}
	switch exps[0].(ast.Literal).Value.(type) {
	case j.Cat, j.Boolean, j.Timestamp, j.Datetime, j.Duration, j.Date, j.Time, j.F64, j.String, j.I64:
		return true
	default:
		return false
	}
}

// refoldAsSeries lifts a list of homogeneous scalar constants into a
// single typed Series, matching the per-element behavior buildSeriesLiteral
// would have produced had the source been written as a series literal.
func refoldAsSeries(vals []j.J) (j.J, bool) {
	var s *columnar.Series
	var err error
	switch vals[0].(type) {
	case j.Boolean:
		bs := make([]bool, len(vals))
		for i, v := range vals {
			bs[i] = v.(j.Boolean).Value
		}
		s, err = columnar.NewBooleanSeries("", bs, nil)
	case j.I64:
		is := make([]int64, len(vals))
		for i, v := range vals {
			is[i] = v.(j.I64).Value
		}
		s, err = columnar.NewInt64Series("", is, nil)
	case j.F64:
		fs := make([]float64, len(vals))
		for i, v := range vals {
			fs[i] = v.(j.F64).Value
		}
		s, err = columnar.NewFloat64Series("", fs, nil)
	case j.String:
		ss := make([]string, len(vals))
		for i, v := range vals {
			ss[i] = v.(j.String).Value
		}
		s, err = columnar.NewStringSeries("", ss, nil)
	case j.Cat:
		ss := make([]string, len(vals))
		for i, v := range vals {
			ss[i] = v.(j.Cat).Value
		}
		s, err = columnar.NewCatSeries("", ss, nil)
	case j.Date:
		ds := make([]int32, len(vals))
		for i, v := range vals {
			ds[i] = v.(j.Date).Days
		}
		s, err = columnar.NewDateSeries("", ds, nil)
	case j.Time:
		ts := make([]int64, len(vals))
		for i, v := range vals {
			ts[i] = v.(j.Time).Nanos
		}
		s, err = columnar.NewTimeSeries("", ts, nil)
	case j.Datetime:
		ms := make([]int64, len(vals))
		tz := ""
		for i, v := range vals {
			d := v.(j.Datetime)
			ms[i] = d.Millis
			tz = d.Timezone
		}
		s, err = columnar.NewDatetimeSeries("", ms, columnar.Milliseconds, tz, nil)
	case j.Timestamp:
		ns := make([]int64, len(vals))
		tz := ""
		for i, v := range vals {
			d := v.(j.Timestamp)
			ns[i] = d.Nanos
			tz = d.Timezone
		}
		s, err = columnar.NewDatetimeSeries("", ns, columnar.Nanoseconds, tz, nil)
	case j.Duration:
		ns := make([]int64, len(vals))
		for i, v := range vals {
			ns[i] = v.(j.Duration).Nanos
		}
		s, err = columnar.NewDurationSeries("", ns, columnar.Nanoseconds, nil)
	default:
		return nil, false
	}
	if err != nil {
		return nil, false
	}
	return j.Series{S: s}, true
}

func (b *Builder) parseDict(pos ast.Pos) (ast.Node, error) {
	b.s.next() // '{'
	var keys []string
	var values []ast.Node
	for !b.peekIsPunct("}") {
		key, err := b.parseDictKey()
		if err != nil {
			return nil, err
		}
		if _, err := b.expectPunct(":"); err != nil {
			return nil, err
		}
		val, err := b.parseExpr()
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
		values = append(values, val)
		if b.peekIsPunct(",") {
			b.s.next()
			continue
		}
		break
	}
	if _, err := b.expectPunct("}"); err != nil {
		return nil, err
	}
	allConst := true
	for _, v := range values {
		if _, ok := v.(ast.Literal); !ok {
			allConst = false
			break
		}
	}
	if allConst {
		vals := make([]j.J, len(values))
		for i, v := range values {
			vals[i] = v.(ast.Literal).Value
		}
		return ast.Literal{Base: ast.New(pos.SourceID, pos.Offset), Value: j.Dict{Keys: keys, Values: vals}}, nil
	}
	return ast.Dict{Base: ast.New(pos.SourceID, pos.Offset), Keys: keys, Values: values}, nil
}

// parseDictKey accepts the three key forms spec.md §4.4 lists: a bare
// Id, a backtick symbol, or a quoted string, with the latter two stripped
// of their markers.
func (b *Builder) parseDictKey() (string, error) {
	t := b.s.peek()
	if t == nil {
		return "", b.errf(diag.SyntaxError, "expected dict key")
	}
	switch t.Name {
	case grammar.Ident:
		b.s.next()
		return t.Value, nil
	case grammar.CatRun:
		b.s.next()
		names := strings.Split(t.Value, "`")[1:]
		if len(names) != 1 {
			return "", b.errf(diag.SyntaxError, "dict key must be a single symbol")
		}
		return names[0], nil
	case grammar.String:
		b.s.next()
		return unquote(t.Value, '"'), nil
	default:
		return "", b.errf(diag.SyntaxError, "expected dict key")
	}
}
