// Package standards holds the companion flange table keyed by nominal duct
// diameter and the per-archetype parameter defaults.
package standards

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed table.yaml
var embeddedTable []byte

// Row is one line of the flange table. Lengths are in millimetres.
type Row struct {
	NominalDiameter    float64 `yaml:"dn" json:"nominalDiameter"`
	InsideDiameter     float64 `yaml:"id" json:"insideDiameter"`
	OutsideDiameter    float64 `yaml:"od" json:"outsideDiameter"`
	FlangeThickness    float64 `yaml:"thickness" json:"flangeThickness"`
	BoltCircleDiameter float64 `yaml:"pcd" json:"boltCircleDiameter"`
	HoleSize           float64 `yaml:"hole" json:"holeSize"`
	BoltSize           string  `yaml:"bolt" json:"boltSize"`
	HoleCount          int     `yaml:"holes" json:"holeCount"`
	Extrapolated       bool    `yaml:"-" json:"extrapolated,omitempty"`
}

// Table is a read-only flange table sorted by nominal diameter.
type Table struct {
	rows     []Row
	defaults map[string]map[string]any
}

type tableFile struct {
	Rows []Row `yaml:"rows"`
}

// Parse reads a table document. Rows are sorted ascending; an empty table is
// an error.
func Parse(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse standards table: %w", err)
	}
	if len(f.Rows) == 0 {
		return nil, fmt.Errorf("parse standards table: no rows")
	}
	sort.SliceStable(f.Rows, func(i, j int) bool {
		return f.Rows[i].NominalDiameter < f.Rows[j].NominalDiameter
	})
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}
	return &Table{rows: f.Rows, defaults: defaults}, nil
}

// Load reads the table from path, or returns the embedded table when path is
// empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read standards table: %w", err)
	}
	return Parse(data)
}

var defaultTable = sync.OnceValue(func() *Table {
	t, err := Parse(embeddedTable)
	if err != nil {
		panic(err)
	}
	return t
})

// Default returns the embedded table.
func Default() *Table {
	return defaultTable()
}

// Rows returns a copy of the table rows.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Lookup returns the first row whose nominal diameter is at least d. Beyond
// the largest row it returns that row with the outside and bolt circle
// diameters shifted by the excess, keeping the row's clearances.
func (t *Table) Lookup(d float64) Row {
	i := sort.Search(len(t.rows), func(i int) bool {
		return t.rows[i].NominalDiameter >= d
	})
	if i < len(t.rows) {
		return t.rows[i]
	}
	last := t.rows[len(t.rows)-1]
	excess := d - last.NominalDiameter
	last.OutsideDiameter += excess
	last.BoltCircleDiameter += excess
	last.Extrapolated = true
	return last
}

// IsOverride reports whether a declared hole count or bolt circle differs
// from the standard for diameter d. Zero values are treated as undeclared.
func (t *Table) IsOverride(d float64, holes int, pcd float64) bool {
	row := t.Lookup(d)
	if holes > 0 && holes != row.HoleCount {
		return true
	}
	return pcd > 0 && math.Abs(pcd-row.BoltCircleDiameter) > 0.5
}

// Lookup is Default().Lookup.
func Lookup(d float64) Row {
	return Default().Lookup(d)
}
