package vm

import "sort"

// ---------------------------------------------------------------------------
// Sheet: the VM's addressable memory
// ---------------------------------------------------------------------------

// Sheet is a sparse two-dimensional store of cell values. It holds both
// the program (opcode and operand cells) and whatever data a program
// reads or writes; there is no separation between the two.
type Sheet struct {
	cells map[Address]Value
}

// NewSheet returns an empty sheet.
func NewSheet() *Sheet {
	return &Sheet{cells: make(map[Address]Value)}
}

// Read returns the value at addr, or Empty for any cell never written.
func (s *Sheet) Read(addr Address) Value {
	return s.cells[addr]
}

// Write stores v at addr, replacing any previous value. Writing Empty
// clears the cell.
func (s *Sheet) Write(addr Address, v Value) {
	if v.Kind() == KindEmpty {
		delete(s.cells, addr)
		return
	}
	s.cells[addr] = v
}

// Len reports the number of populated cells.
func (s *Sheet) Len() int {
	return len(s.cells)
}

// RowCells returns the values of columns A..max on the given row,
// truncated at the first empty cell after column A. The dispatcher uses
// it to read an instruction's opcode and operand list.
func (s *Sheet) RowCells(row, max int) []Value {
	out := make([]Value, 0, max)
	for col := 1; col <= max; col++ {
		v := s.Read(Address{Row: row, Col: col})
		if col > 1 && v.Kind() == KindEmpty {
			break
		}
		out = append(out, v)
	}
	return out
}

// Each calls fn for every populated cell in row-major order.
func (s *Sheet) Each(fn func(Address, Value)) {
	addrs := make([]Address, 0, len(s.cells))
	for a := range s.cells {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool {
		if addrs[i].Row != addrs[j].Row {
			return addrs[i].Row < addrs[j].Row
		}
		return addrs[i].Col < addrs[j].Col
	})
	for _, a := range addrs {
		fn(a, s.cells[a])
	}
}
