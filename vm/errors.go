package vm

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Error taxonomy
// ---------------------------------------------------------------------------

// All execution errors are fatal: the run halts and the error propagates
// to the caller. Output already written is not rolled back.
var (
	// ErrMalformedAddress reports an address operand that does not parse.
	ErrMalformedAddress = errors.New("malformed address")

	// ErrUnknownInstruction reports an opcode cell whose text names no
	// instruction. Empty or numeric opcode cells are an implicit halt,
	// not an error.
	ErrUnknownInstruction = errors.New("unknown instruction")

	// ErrStackUnderflow reports an instruction needing more operand
	// stack depth than is present.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrCallStackUnderflow reports a RETURN with no matching CALL.
	ErrCallStackUnderflow = errors.New("call stack underflow")

	// ErrTypeMismatch reports an arithmetic instruction applied to a
	// string operand.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrDivisionByZero reports DIV, FDIV, or MOD with a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
)

// RunError wraps a fatal execution error with the row and instruction
// that raised it. Unwrap exposes the taxonomy sentinel for errors.Is.
type RunError struct {
	Row int
	Op  Opcode
	Err error
}

func (e *RunError) Error() string {
	if e.Op == OpInvalid {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d: %s: %v", e.Row, e.Op, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
