// Package grammar is C4: the declarative, PEG-style token grammar that
// recognizes jlang's lexical surface (spec.md §4.1). It wraps
// alecthomas/participle's lexer (the same "struct-tag/regex grammar
// engine producing a token stream" shape demonstrated by
// _examples/other_examples/manifests/ritamzico-pgraph's
// internal/dsl/grammar.go) and returns a plain token slice, which the AST
// builder (C5, package builder) walks with its own seekable cursor.
//
// Rules are tried in the order below, most specific first, matching
// spec.md §4.1's "decreasing precedence" token list: Timestamp before
// Datetime before Date (so "2024-01-02D10:00:00" isn't mis-tokenized as a
// bare Date followed by garbage), Duration before a bare Integer, Boolean
// before Ident (so "true"/"false" aren't identifiers).
package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Token kind names, used as lexer.Rule.Name and later switched on by the
// builder.
const (
	Comment    = "Comment"
	Whitespace = "Whitespace"
	Timestamp  = "Timestamp"
	Datetime   = "Datetime"
	Date       = "Date"
	Time       = "Time"
	Duration   = "Duration"
	Decimal    = "Decimal"
	Integer    = "Integer"
	Boolean    = "Boolean"
	CatRun     = "CatRun"
	CatAlt     = "CatAlt"
	String     = "String"
	BinOpIdent = "BinOpIdent"
	Ident      = "Ident"
	Op         = "Op"
	Punct      = "Punct"
)

// Definition is the jlang lexical grammar.
var Definition = lexer.MustSimple([]lexer.SimpleRule{
	{Name: Comment, Pattern: `//[^\n]*|/\*[\s\S]*?\*/`},
	{Name: Whitespace, Pattern: `[ \t\r\n]+`},
	{Name: Timestamp, Pattern: `\d{4}-\d{2}-\d{2}D(\d{2}:\d{2}:\d{2}(\.\d{1,9})?)?`},
	{Name: Datetime, Pattern: `\d{4}-\d{2}-\d{2}T(\d{2}:\d{2}:\d{2}(\.\d{1,3})?)?`},
	{Name: Date, Pattern: `\d{4}-\d{2}-\d{2}`},
	{Name: Time, Pattern: `\d{2}:\d{2}:\d{2}(\.\d{1,9})?`},
	{Name: Duration, Pattern: `-?\d+D\d{2}:\d{2}:\d{2}(\.\d{1,9})?|-?\d+(ns|s|m|h)\b`},
	{Name: Boolean, Pattern: `(true|false|1b|0b)\b`},
	{Name: Decimal, Pattern: `\d+\.\d+(f32|f64)?`},
	{Name: Integer, Pattern: `\d+(u8|i8|u16|i16|u32|i32|u64|i64|f32|f64)?`},
	{Name: CatRun, Pattern: "(`[A-Za-z_][A-Za-z0-9_]*)+"},
	{Name: CatAlt, Pattern: `'([^'\\]|\\.)*'`},
	{Name: String, Pattern: `"([^"\\]|\\.)*"`},
	{Name: BinOpIdent, Pattern: `\\[A-Za-z_][A-Za-z0-9_]*`},
	{Name: Ident, Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: Op, Pattern: `==|!=|<=|>=|[-+*/<>=!&|~%^]`},
	{Name: Punct, Pattern: `[(){}\[\],;:.]`},
})

// Tok is one lexed token: its rule Name, literal Value text, and byte
// Offset into the source.
type Tok struct {
	Name   string
	Value  string
	Offset int
}

// Lex tokenizes source, discarding Comment and Whitespace tokens (spec.md
// §4.1 "Comments: ... discarded").
func Lex(source string) ([]Tok, error) {
	lx, err := Definition.Lex("", stringsReader(source))
	if err != nil {
		return nil, err
	}
	symbols := Definition.Symbols()
	names := make(map[lexer.TokenType]string, len(symbols))
	for name, tt := range symbols {
		names[tt] = name
	}
	var out []Tok
	for {
		t, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if t.EOF() {
			break
		}
		name := names[t.Type]
		if name == Comment || name == Whitespace {
			continue
		}
		out = append(out, Tok{Name: name, Value: t.Value, Offset: t.Pos.Offset})
	}
	return out, nil
}
