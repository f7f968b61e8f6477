// Package manifest handles asheet.toml project configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents an asheet.toml project configuration.
type Manifest struct {
	Program Program `toml:"program"`
	Run     Run     `toml:"run"`

	// Dir is the directory containing the asheet.toml file (set at load time).
	Dir string `toml:"-"`
}

// Program locates the program sheet and its entry cell.
type Program struct {
	Sheet string `toml:"sheet"`
	Entry string `toml:"entry"`
}

// Run configures execution.
type Run struct {
	Seed  int64 `toml:"seed"`
	Trace bool  `toml:"trace"`
}

// Load parses an asheet.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "asheet.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if m.Program.Entry == "" {
		m.Program.Entry = "A1"
	}
	if m.Program.Sheet == "" {
		return nil, fmt.Errorf("%s: program.sheet is required", path)
	}
	return &m, nil
}

// SheetPath returns the program sheet path resolved against the
// manifest directory.
func (m *Manifest) SheetPath() string {
	if filepath.IsAbs(m.Program.Sheet) {
		return m.Program.Sheet
	}
	return filepath.Join(m.Dir, m.Program.Sheet)
}
