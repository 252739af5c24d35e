package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(8)
	require.NoError(t, err)
	assert.Len(t, code, 16) // hex doubles the byte count
	assert.Equal(t, strings.ToUpper(code), code)
}

func TestGenerateTicketCodeFormat(t *testing.T) {
	code, err := GenerateTicketCode()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(code, TicketCodePrefix))
	assert.Len(t, code, len(TicketCodePrefix)+TicketCodeLength)

	for _, c := range code[len(TicketCodePrefix):] {
		assert.Contains(t, ticketCodeCharset, string(c))
	}
}

func TestGenerateTicketCodeVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		code, err := GenerateTicketCode()
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate code %q", code)
		seen[code] = true
	}
}
