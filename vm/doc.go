// Package vm implements the asheet virtual machine.
//
// This package contains:
//   - A1-notation cell addressing
//   - The tagged cell value representation (number, string, empty)
//   - The sparse sheet that serves as program text and memory
//   - The operand stack and return stack
//   - The row-by-row instruction interpreter
//   - Injectable input, output, and random-number ports
package vm
