package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(t []Tok) []string {
	out := make([]string, len(t))
	for i, tok := range t {
		out[i] = tok.Name
	}
	return out
}

func TestLexDiscardsCommentsAndWhitespace(t *testing.T) {
	toks, err := Lex("1 + 2 // trailing\n/* block */ + 3")
	require.NoError(t, err)
	assert.Equal(t, []string{Integer, Op, Integer, Op, Integer}, names(toks))
}

func TestLexTimestampBeforeDatetimeBeforeDate(t *testing.T) {
	toks, err := Lex("2024-01-02D10:00:00")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, Timestamp, toks[0].Name)

	toks, err = Lex("2024-01-02T10:00:00")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, Datetime, toks[0].Name)

	toks, err = Lex("2024-01-02")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, Date, toks[0].Name)
}

func TestLexDurationBeforeBareInteger(t *testing.T) {
	toks, err := Lex("5ns")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, Duration, toks[0].Name)

	toks, err = Lex("5")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, Integer, toks[0].Name)
}

func TestLexBooleanBeforeIdent(t *testing.T) {
	toks, err := Lex("true false1")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, Boolean, toks[0].Name)
	assert.Equal(t, Ident, toks[1].Name)
}

func TestLexCatRunAndBinOpIdent(t *testing.T) {
	toks, err := Lex("`a`b \\plus")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, CatRun, toks[0].Name)
	assert.Equal(t, BinOpIdent, toks[1].Name)
	assert.Equal(t, "\\plus", toks[1].Value)
}

func TestLexOffsetsPointIntoSource(t *testing.T) {
	toks, err := Lex("ab cd")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, 0, toks[0].Offset)
	assert.Equal(t, 3, toks[1].Offset)
}
