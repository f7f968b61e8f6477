package vm

import (
	"fmt"
	"strconv"
)

// ---------------------------------------------------------------------------
// Cell values
// ---------------------------------------------------------------------------

// Kind discriminates the three cell value types.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	}
	return "invalid"
}

// Value is a tagged union of a number (float64), a string, or the empty
// value. Values are immutable and copied by value between the stack and
// the sheet. The zero Value is Empty.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Empty is the absent-cell value.
var Empty = Value{}

// FromNumber wraps a float64.
func FromNumber(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// FromString wraps a string.
func FromString(s string) Value {
	return Value{kind: KindString, str: s}
}

// Interpret converts raw cell or input text into a Value: text that
// parses as a floating-point literal becomes a Number, anything else a
// String. It never yields Empty; absence is represented by not writing
// the cell at all.
func Interpret(text string) Value {
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return FromNumber(f)
	}
	return FromString(text)
}

// Kind returns the value's tag.
func (v Value) Kind() Kind { return v.kind }

// Float returns the wrapped number. Only meaningful for KindNumber.
func (v Value) Float() float64 { return v.num }

// Text returns the wrapped string. Only meaningful for KindString.
func (v Value) Text() string { return v.str }

// AsNumber applies the arithmetic coercion: numbers pass through, Empty
// reads as zero, and strings fail with ErrTypeMismatch.
func (v Value) AsNumber() (float64, error) {
	switch v.kind {
	case KindNumber:
		return v.num, nil
	case KindEmpty:
		return 0, nil
	}
	return 0, fmt.Errorf("%w: expected number, got string %q", ErrTypeMismatch, v.str)
}

// AsText applies the string coercion: strings pass through, Empty reads
// as "", and numbers render in their canonical decimal form. The
// number-to-text conversion is lossy on purpose; it is documented VM
// behavior, not an error.
func (v Value) AsText() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return FormatNumber(v.num)
	}
	return ""
}

// FormatNumber is the canonical decimal rendering of a Number: the
// shortest representation that round-trips, so 7.0 prints as "7".
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Equal compares two values the way COMPARE and TEST do: strings are
// equal only to identical strings (never to any number), everything
// else compares numerically with Empty reading as zero.
func (v Value) Equal(o Value) bool {
	if v.kind == KindString || o.kind == KindString {
		return v.kind == KindString && o.kind == KindString && v.str == o.str
	}
	vn, _ := v.AsNumber()
	on, _ := o.AsNumber()
	return vn == on
}

// Less orders two values for LT and GT: two strings compare
// lexicographically, everything else numerically with Empty reading as
// zero. Ordering a string against a number is ErrTypeMismatch.
func (v Value) Less(o Value) (bool, error) {
	if v.kind == KindString && o.kind == KindString {
		return v.str < o.str, nil
	}
	vn, err := v.AsNumber()
	if err != nil {
		return false, err
	}
	on, err := o.AsNumber()
	if err != nil {
		return false, err
	}
	return vn < on, nil
}

// String implements fmt.Stringer for diagnostics.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return FormatNumber(v.num)
	case KindString:
		return strconv.Quote(v.str)
	}
	return "<empty>"
}
