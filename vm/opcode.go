package vm

import "strings"

// ---------------------------------------------------------------------------
// Opcode definitions
// ---------------------------------------------------------------------------

// Opcode identifies an instruction. Opcode cells hold instruction names
// as text; the dispatcher resolves the name to an Opcode once per row so
// the execution switch is over a closed enumeration.
type Opcode uint8

const (
	OpInvalid Opcode = iota

	// Memory
	OpLoadCell  // LOAD_CELL,addr   push sheet value
	OpStoreCell // STORE_CELL,addr  pop into sheet

	// Stack manipulation
	OpDrop
	OpDup
	OpOver
	OpSwap

	// Arithmetic
	OpAdd
	OpSub
	OpMult
	OpDiv
	OpFDiv
	OpMod

	// Strings
	OpUpper
	OpLower
	OpConcat

	// I/O
	OpIn  // IN,[prompt]
	OpOut

	// Condition flag
	OpTest
	OpCompare // COMPARE,[addr]
	OpLT      // LT,[addr]
	OpGT      // GT,[addr]
	OpInvertCond

	// Control flow
	OpJump
	OpJumpIf
	OpCall // CALL,addr,[n]
	OpCallIf
	OpReturn
	OpHalt

	// Random numbers
	OpRand    // RAND,[m],[n]
	OpRandInt // RANDINT,m,[n]
)

var opcodeNames = map[string]Opcode{
	"LOAD_CELL":   OpLoadCell,
	"STORE_CELL":  OpStoreCell,
	"DROP":        OpDrop,
	"DUP":         OpDup,
	"OVER":        OpOver,
	"SWAP":        OpSwap,
	"ADD":         OpAdd,
	"SUB":         OpSub,
	"MULT":        OpMult,
	"DIV":         OpDiv,
	"FDIV":        OpFDiv,
	"MOD":         OpMod,
	"UPPER":       OpUpper,
	"LOWER":       OpLower,
	"CONCAT":      OpConcat,
	"IN":          OpIn,
	"OUT":         OpOut,
	"TEST":        OpTest,
	"COMPARE":     OpCompare,
	"LT":          OpLT,
	"GT":          OpGT,
	"INVERT_COND": OpInvertCond,
	"JUMP":        OpJump,
	"JUMP_IF":     OpJumpIf,
	"CALL":        OpCall,
	"CALL_IF":     OpCallIf,
	"RETURN":      OpReturn,
	"HALT":        OpHalt,
	"RAND":        OpRand,
	"RANDINT":     OpRandInt,
}

var opcodeStrings = func() map[Opcode]string {
	m := make(map[Opcode]string, len(opcodeNames))
	for name, op := range opcodeNames {
		m[op] = name
	}
	return m
}()

// LookupOpcode resolves an instruction name, case-insensitively.
func LookupOpcode(name string) (Opcode, bool) {
	op, ok := opcodeNames[strings.ToUpper(name)]
	return op, ok
}

func (op Opcode) String() string {
	if s, ok := opcodeStrings[op]; ok {
		return s
	}
	return "INVALID"
}

// maxArgs is the fixed maximum operand count per instruction; operand
// cells are read from column B up to this count.
func (op Opcode) maxArgs() int {
	switch op {
	case OpLoadCell, OpStoreCell, OpJump, OpJumpIf, OpCompare, OpLT, OpGT, OpIn:
		return 1
	case OpCall, OpCallIf, OpRand, OpRandInt:
		return 2
	}
	return 0
}
