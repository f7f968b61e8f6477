package loader

import (
	"bytes"
	"testing"

	"github.com/chazu/asheet/vm"
)

func TestSheetSnapshotRoundTrip(t *testing.T) {
	s := vm.NewSheet()
	s.Write(vm.Address{Row: 1, Col: 1}, vm.FromString("LOAD_CELL"))
	s.Write(vm.Address{Row: 1, Col: 2}, vm.FromString("C1"))
	s.Write(vm.Address{Row: 1, Col: 3}, vm.FromNumber(3.5))
	s.Write(vm.Address{Row: 9, Col: 26}, vm.FromString(""))
	s.Write(vm.Address{Row: 100, Col: 1}, vm.FromNumber(0))

	data, err := MarshalSheet(s)
	if err != nil {
		t.Fatalf("MarshalSheet error: %v", err)
	}
	got, err := UnmarshalSheet(data)
	if err != nil {
		t.Fatalf("UnmarshalSheet error: %v", err)
	}

	if got.Len() != s.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), s.Len())
	}
	s.Each(func(addr vm.Address, want vm.Value) {
		if v := got.Read(addr); v != want {
			t.Errorf("%s = %v, want %v", addr, v, want)
		}
	})
}

func TestSnapshotIsDeterministic(t *testing.T) {
	s := vm.NewSheet()
	for row := 1; row <= 20; row++ {
		s.Write(vm.Address{Row: row, Col: 1}, vm.FromNumber(float64(row)))
		s.Write(vm.Address{Row: row, Col: 2}, vm.FromString("x"))
	}
	a, err := MarshalSheet(s)
	if err != nil {
		t.Fatalf("MarshalSheet error: %v", err)
	}
	b, err := MarshalSheet(s)
	if err != nil {
		t.Fatalf("MarshalSheet error: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two encodings of the same sheet differ")
	}
}

func TestUnmarshalRejectsUnknownVersion(t *testing.T) {
	data, err := cborEncMode.Marshal(&snapshot{Version: 99})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := UnmarshalSheet(data); err == nil {
		t.Error("UnmarshalSheet accepted version 99")
	}
}

func TestUnmarshalRejectsBadPosition(t *testing.T) {
	data, err := cborEncMode.Marshal(&snapshot{
		Version: snapshotVersion,
		Cells:   []snapCell{{Row: 0, Col: 1, Num: 1}},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := UnmarshalSheet(data); err == nil {
		t.Error("UnmarshalSheet accepted a cell at row 0")
	}
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	if _, err := UnmarshalSheet([]byte{0xff, 0x00, 0x01}); err == nil {
		t.Error("UnmarshalSheet accepted garbage bytes")
	}
}
