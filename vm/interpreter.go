package vm

import (
	"fmt"
	"math"
	"strings"
)

// ---------------------------------------------------------------------------
// Interpreter: the fetch-execute loop
// ---------------------------------------------------------------------------

// TraceFunc receives one callback per dispatched instruction, before its
// effect executes. Wired by the CLI to the logging backend.
type TraceFunc func(row int, op Opcode, stackDepth int)

// Interpreter executes a program laid out on a sheet: the opcode of each
// instruction sits in column A of its row, operands in the columns after
// it. Execution starts at the start row and proceeds row by row until an
// explicit HALT, an implicit halt (a row whose opcode cell is empty or
// numeric), or a fatal error.
//
// An Interpreter is single-threaded; it owns its sheet, stacks, and
// control state exclusively while running. Independent instances share
// nothing.
type Interpreter struct {
	sheet  *Sheet
	input  InputPort
	output OutputPort
	rng    RandSource

	stack    Stack
	retStack []int // return rows pushed by CALL/CALL_IF
	row      int
	cond     bool
	halted   bool

	start int
	trace TraceFunc
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithStart sets the first instruction row. The default is row 1.
func WithStart(addr Address) Option {
	return func(i *Interpreter) { i.start = addr.Row }
}

// WithTrace installs a per-instruction trace callback.
func WithTrace(fn TraceFunc) Option {
	return func(i *Interpreter) { i.trace = fn }
}

// NewInterpreter creates an interpreter over the given sheet and ports.
// The sheet must already be populated; loading file formats into it is
// the loader's job, not the engine's.
func NewInterpreter(sheet *Sheet, input InputPort, output OutputPort, rng RandSource, opts ...Option) *Interpreter {
	i := &Interpreter{
		sheet:  sheet,
		input:  input,
		output: output,
		rng:    rng,
		start:  1,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.row = i.start
	return i
}

// Run executes the program in sheet from row 1 against the given ports.
// It returns nil on normal termination and a *RunError on any fatal
// error. This is the package's single high-level entry point.
func Run(sheet *Sheet, input InputPort, output OutputPort, rng RandSource) error {
	return NewInterpreter(sheet, input, output, rng).Run()
}

// Row returns the current instruction row.
func (i *Interpreter) Row() int { return i.row }

// Cond returns the COND flag.
func (i *Interpreter) Cond() bool { return i.cond }

// Halted reports whether the program has terminated.
func (i *Interpreter) Halted() bool { return i.halted }

// Reset restores the interpreter to its initial state so the program can
// run again. Sheet mutations made by STORE_CELL are not undone.
func (i *Interpreter) Reset() {
	i.row = i.start
	i.cond = false
	i.halted = false
	i.stack.Reset()
	i.retStack = i.retStack[:0]
}

// Run steps until the program halts or an instruction fails. Errors are
// fatal: the interpreter is halted when Run returns a non-nil error.
func (i *Interpreter) Run() error {
	for !i.halted {
		if err := i.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes the instruction at the current row and advances control
// state. On a halted interpreter it is a no-op. Callers wanting to bound
// execution (step budgets, deadlines) loop over Step themselves.
func (i *Interpreter) Step() error {
	if i.halted {
		return nil
	}
	opcell := i.sheet.Read(Address{Row: i.row, Col: 1})
	if opcell.Kind() != KindString {
		// Implicit halt: an empty or numeric opcode cell ends the run.
		i.halted = true
		return nil
	}
	op, ok := LookupOpcode(opcell.Text())
	if !ok {
		i.halted = true
		return &RunError{Row: i.row, Err: fmt.Errorf("%w: %q", ErrUnknownInstruction, opcell.Text())}
	}
	if i.trace != nil {
		i.trace(i.row, op, i.stack.Depth())
	}
	next, err := i.exec(op)
	if err != nil {
		i.halted = true
		return &RunError{Row: i.row, Op: op, Err: err}
	}
	i.row = next
	return nil
}

// exec performs op's effect and returns the next instruction row.
func (i *Interpreter) exec(op Opcode) (int, error) {
	cells := i.sheet.RowCells(i.row, 1+op.maxArgs())
	args := cells[1:]
	arg := func(n int) Value {
		if n <= len(args) {
			return args[n-1]
		}
		return Empty
	}
	next := i.row + 1

	switch op {

	// Memory
	case OpLoadCell:
		addr, err := ParseAddress(arg(1).AsText())
		if err != nil {
			return 0, err
		}
		i.stack.Push(i.sheet.Read(addr))
	case OpStoreCell:
		addr, err := ParseAddress(arg(1).AsText())
		if err != nil {
			return 0, err
		}
		v, err := i.stack.Pop()
		if err != nil {
			return 0, err
		}
		i.sheet.Write(addr, v)

	// Stack manipulation
	case OpDrop:
		if _, err := i.stack.Pop(); err != nil {
			return 0, err
		}
	case OpDup:
		v, err := i.stack.Peek(1)
		if err != nil {
			return 0, err
		}
		i.stack.Push(v)
	case OpOver:
		v, err := i.stack.Peek(2)
		if err != nil {
			return 0, err
		}
		i.stack.Push(v)
	case OpSwap:
		a, b, err := i.stack.Pop2()
		if err != nil {
			return 0, err
		}
		i.stack.Push(b)
		i.stack.Push(a)

	// Arithmetic
	case OpAdd, OpSub, OpMult, OpDiv, OpFDiv, OpMod:
		av, bv, err := i.stack.Pop2()
		if err != nil {
			return 0, err
		}
		a, err := av.AsNumber()
		if err != nil {
			return 0, err
		}
		b, err := bv.AsNumber()
		if err != nil {
			return 0, err
		}
		c, err := arith(op, a, b)
		if err != nil {
			return 0, err
		}
		i.stack.Push(FromNumber(c))

	// Strings
	case OpUpper, OpLower:
		v, err := i.stack.Pop()
		if err != nil {
			return 0, err
		}
		s := v.AsText()
		if op == OpUpper {
			s = strings.ToUpper(s)
		} else {
			s = strings.ToLower(s)
		}
		i.stack.Push(FromString(s))
	case OpConcat:
		a, b, err := i.stack.Pop2()
		if err != nil {
			return 0, err
		}
		i.stack.Push(FromString(a.AsText() + b.AsText()))

	// I/O
	case OpIn:
		if p := arg(1); p.Kind() != KindEmpty {
			prompt := strings.TrimRight(p.AsText(), " \t") + " "
			if err := i.output.WriteText(prompt); err != nil {
				return 0, err
			}
		}
		line, err := i.input.ReadLine()
		if err != nil {
			return 0, fmt.Errorf("read input: %w", err)
		}
		i.stack.Push(Interpret(line))
	case OpOut:
		v, err := i.stack.Pop()
		if err != nil {
			return 0, err
		}
		if err := i.output.WriteText(v.AsText() + "\n"); err != nil {
			return 0, err
		}

	// Condition flag
	case OpTest:
		v, err := i.stack.Peek(1)
		if err != nil {
			return 0, err
		}
		i.cond = v.Equal(FromNumber(0))
	case OpCompare, OpLT, OpGT:
		if err := i.compare(op, arg(1)); err != nil {
			return 0, err
		}
	case OpInvertCond:
		i.cond = !i.cond

	// Control flow
	case OpJump, OpJumpIf:
		if op == OpJump || i.cond {
			addr, err := ParseAddress(arg(1).AsText())
			if err != nil {
				return 0, err
			}
			next = addr.Row
		}
	case OpCall, OpCallIf:
		if op == OpCall || i.cond {
			addr, err := ParseAddress(arg(1).AsText())
			if err != nil {
				return 0, err
			}
			// The second operand documents how many stack values the
			// callee expects; it reserves and copies nothing.
			i.retStack = append(i.retStack, i.row+1)
			next = addr.Row
		}
	case OpReturn:
		n := len(i.retStack)
		if n == 0 {
			return 0, ErrCallStackUnderflow
		}
		next = i.retStack[n-1]
		i.retStack = i.retStack[:n-1]
	case OpHalt:
		i.halted = true

	// Random numbers
	case OpRand:
		m := numberOr(arg(1), 0)
		n := numberOr(arg(2), 1)
		i.stack.Push(FromNumber(m + i.rng.Float64()*(n-m)))
	case OpRandInt:
		return next, i.randInt(arg(1), arg(2))
	}

	return next, nil
}

// compare sets COND for COMPARE, LT, and GT. With an address operand the
// stack top is compared against the addressed cell; without one, the
// second-from-top value is compared against the top. Neither form
// consumes stack values.
func (i *Interpreter) compare(op Opcode, operand Value) error {
	var a, b Value
	var err error
	if operand.Kind() != KindEmpty {
		var addr Address
		if addr, err = ParseAddress(operand.AsText()); err != nil {
			return err
		}
		if a, err = i.stack.Peek(1); err != nil {
			return err
		}
		b = i.sheet.Read(addr)
	} else {
		if b, err = i.stack.Peek(1); err != nil {
			return err
		}
		if a, err = i.stack.Peek(2); err != nil {
			return err
		}
	}
	switch op {
	case OpCompare:
		i.cond = a.Equal(b)
	case OpLT:
		i.cond, err = a.Less(b)
	case OpGT:
		i.cond, err = b.Less(a)
	}
	return err
}

// randInt implements RANDINT,m,[n]: with one bound the result is uniform
// in [1, m], with two bounds uniform in [m, n], always integer-valued.
func (i *Interpreter) randInt(mv, nv Value) error {
	if mv.Kind() != KindNumber {
		return fmt.Errorf("%w: RANDINT bound must be a number, got %s", ErrTypeMismatch, mv.Kind())
	}
	lo, hi := 1, int(mv.Float())
	if nv.Kind() == KindNumber {
		lo, hi = int(mv.Float()), int(nv.Float())
	}
	if hi < lo {
		return fmt.Errorf("%w: RANDINT range [%d, %d] is empty", ErrTypeMismatch, lo, hi)
	}
	i.stack.Push(FromNumber(float64(lo + i.rng.Intn(hi-lo+1))))
	return nil
}

func arith(op Opcode, a, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMult:
		return a * b, nil
	case OpDiv:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	case OpFDiv:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return math.Floor(a / b), nil
	case OpMod:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return floorMod(a, b), nil
	}
	panic("vm: not an arithmetic opcode: " + op.String())
}

// floorMod is the true modulo: the result carries the sign of the
// divisor, so floorMod(-7, 3) is 2 and floorMod(7, -3) is -2.
func floorMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// numberOr reads an optional numeric operand, falling back to def when
// the cell is absent or non-numeric.
func numberOr(v Value, def float64) float64 {
	if v.Kind() == KindNumber {
		return v.Float()
	}
	return def
}
