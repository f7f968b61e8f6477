// Package loader populates a vm.Sheet from on-disk program formats: CSV
// text and the binary sheet snapshot.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/asheet/vm"
)

// ReadCSV reads CSV rows into a fresh sheet. Row 1 of the sheet is the
// first CSV record, column A its first field. Fields holding a
// floating-point literal become Numbers, other non-empty fields become
// Strings, and empty fields are left unset so the sheet reads them as
// Empty. Records may have ragged lengths.
func ReadCSV(r io.Reader) (*vm.Sheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	sheet := vm.NewSheet()
	row := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return sheet, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		for col, field := range record {
			if field == "" {
				continue
			}
			sheet.Write(vm.Address{Row: row, Col: col + 1}, vm.Interpret(field))
		}
		row++
	}
}

// LoadFile loads a program sheet from path, dispatching on the file
// extension: .csv for CSV text, .sheetb for the binary snapshot.
func LoadFile(path string) (*vm.Sheet, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadCSV(f)
	case ".sheetb":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return UnmarshalSheet(data)
	default:
		return nil, fmt.Errorf("unsupported sheet format %q (want .csv or .sheetb)", ext)
	}
}
