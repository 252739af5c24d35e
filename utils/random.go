package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// TicketCodePrefix is prepended to every generated ticket code.
const TicketCodePrefix = "TIX-"

// TicketCodeLength is the number of random characters after the prefix.
const TicketCodeLength = 10

// ticketCodeCharset avoids lowercase to keep codes unambiguous when printed.
const ticketCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func GenerateCode(n int) (string, error) {
	// Make a slice of nBytes random bytes.
	byt := make([]byte, n)

	// Read into the slice.
	if _, err := rand.Read(byt); err != nil {
		return "", err
	}

	// Return the hexadecimal string.
	return strings.ToUpper(hex.EncodeToString(byt)), nil
}

// GenerateTicketCode returns a code like "TIX-8K2ZQW01XA". Codes are random
// per ticket; collisions are unlikely but the tickets table still enforces a
// unique index and callers retry on violation.
func GenerateTicketCode() (string, error) {
	code := make([]byte, TicketCodeLength)

	if _, err := rand.Read(code); err != nil {
		return "", err
	}

	for i := 0; i < TicketCodeLength; i++ {
		code[i] = ticketCodeCharset[int(code[i])%len(ticketCodeCharset)]
	}

	return TicketCodePrefix + string(code), nil
}
