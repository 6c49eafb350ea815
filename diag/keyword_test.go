package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsReservedCoversEveryKeyword(t *testing.T) {
	keywords := []string{
		"select", "update", "delete", "group", "by", "from", "where", "order",
		"take", "sort", "if", "exit", "while", "try", "catch", "return",
		"raise", "fn", "df", "true", "false", "null",
	}
	for _, kw := range keywords {
		assert.True(t, IsReserved(kw), kw)
	}
}

func TestIsReservedRejectsOrdinaryIdentifiers(t *testing.T) {
	for _, id := range []string{"sum", "col1", "x", "newCol"} {
		assert.False(t, IsReserved(id), id)
	}
}
