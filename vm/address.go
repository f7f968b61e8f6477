package vm

import (
	"fmt"
	"strconv"
)

// ---------------------------------------------------------------------------
// A1-notation addressing
// ---------------------------------------------------------------------------

// Address identifies a single cell. Row and Col are both 1-based; the
// column follows spreadsheet naming, a base-26 encoding over A-Z with no
// zero digit (A=1, Z=26, AA=27, ...).
type Address struct {
	Row int
	Col int
}

// ParseAddress parses A1 notation such as "A1" or "AA12". Letters are
// case-insensitive. The row part must be a positive decimal integer.
func ParseAddress(text string) (Address, error) {
	i := 0
	col := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c >= 'A' && c <= 'Z':
			col = col*26 + int(c-'A') + 1
		case c >= 'a' && c <= 'z':
			col = col*26 + int(c-'a') + 1
		default:
			goto digits
		}
		i++
	}
digits:
	if col == 0 || i == len(text) {
		return Address{}, fmt.Errorf("%w: %q", ErrMalformedAddress, text)
	}
	row, err := strconv.Atoi(text[i:])
	if err != nil || row < 1 {
		return Address{}, fmt.Errorf("%w: %q", ErrMalformedAddress, text)
	}
	return Address{Row: row, Col: col}, nil
}

// String renders the address back in A1 notation. Used for diagnostics.
func (a Address) String() string {
	return columnName(a.Col) + strconv.Itoa(a.Row)
}

// columnName converts a 1-based column number to its letter form.
// The encoding has no zero digit, so the usual base conversion needs a
// borrow whenever the remainder would be zero.
func columnName(n int) string {
	if n < 1 {
		return "?"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		n--
		i--
		buf[i] = byte('A' + n%26)
		n /= 26
	}
	return string(buf[i:])
}
