package loader

import (
	"fmt"

	"github.com/chazu/asheet/vm"
	"github.com/fxamacker/cbor/v2"
)

// The sheet snapshot is a CBOR document holding every populated cell of
// a program sheet. It only ever carries the grid; run state (stacks,
// COND, instruction pointer) is never serialized.

// snapshotVersion is bumped on incompatible changes to the cell record.
const snapshotVersion = 1

// cborEncMode uses canonical encoding for deterministic output.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("loader: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

type snapshot struct {
	Version int        `cbor:"version"`
	Cells   []snapCell `cbor:"cells"`
}

type snapCell struct {
	Row int     `cbor:"row"`
	Col int     `cbor:"col"`
	Num float64 `cbor:"num,omitempty"`
	Str string  `cbor:"str,omitempty"`
	// IsStr disambiguates Str=="" from a numeric cell once omitempty
	// has stripped the zero fields.
	IsStr bool `cbor:"isstr,omitempty"`
}

// MarshalSheet serializes every populated cell of s to CBOR bytes, in
// row-major order.
func MarshalSheet(s *vm.Sheet) ([]byte, error) {
	snap := snapshot{Version: snapshotVersion}
	s.Each(func(addr vm.Address, v vm.Value) {
		c := snapCell{Row: addr.Row, Col: addr.Col}
		switch v.Kind() {
		case vm.KindNumber:
			c.Num = v.Float()
		case vm.KindString:
			c.Str = v.Text()
			c.IsStr = true
		}
		snap.Cells = append(snap.Cells, c)
	})
	return cborEncMode.Marshal(&snap)
}

// UnmarshalSheet deserializes a sheet snapshot produced by MarshalSheet.
func UnmarshalSheet(data []byte) (*vm.Sheet, error) {
	var snap snapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("loader: unmarshal sheet: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("loader: unsupported snapshot version %d", snap.Version)
	}
	sheet := vm.NewSheet()
	for _, c := range snap.Cells {
		if c.Row < 1 || c.Col < 1 {
			return nil, fmt.Errorf("loader: invalid cell position (%d, %d)", c.Row, c.Col)
		}
		addr := vm.Address{Row: c.Row, Col: c.Col}
		if c.IsStr {
			sheet.Write(addr, vm.FromString(c.Str))
		} else {
			sheet.Write(addr, vm.FromNumber(c.Num))
		}
	}
	return sheet, nil
}
