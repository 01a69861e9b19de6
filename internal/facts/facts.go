// Package facts defines the multiplication fact key and the table bounds
// shared by the store, sampler and session packages.
package facts

import (
	"errors"
	"fmt"
	"slices"
)

const (
	// MinTable is the smallest table (and multiplicand) that can be practised.
	MinTable = 1

	// MaxTable is the largest table (and multiplicand) that can be practised.
	MaxTable = 12

	// PerTable is the number of facts in one table.
	PerTable = MaxTable - MinTable + 1
)

// ErrOutOfRange is returned when a table or multiplicand falls outside
// MinTable..MaxTable.
var ErrOutOfRange = errors.New("out of range")

// Fact identifies one multiplication fact: Table × Multiplicand.
type Fact struct {
	Table        int `json:"table"`
	Multiplicand int `json:"multiplicand"`
}

// New returns the fact table × multiplicand.
func New(table, multiplicand int) Fact {
	return Fact{Table: table, Multiplicand: multiplicand}
}

// Answer returns the product.
func (f Fact) Answer() int {
	return f.Table * f.Multiplicand
}

// Check reports whether value is the correct product.
func (f Fact) Check(value int) bool {
	return value == f.Answer()
}

// Validate returns an ErrOutOfRange-wrapped error if either operand is
// outside the supported range.
func (f Fact) Validate() error {
	if !InRange(f.Table) {
		return fmt.Errorf("table %d: %w", f.Table, ErrOutOfRange)
	}
	if !InRange(f.Multiplicand) {
		return fmt.Errorf("multiplicand %d: %w", f.Multiplicand, ErrOutOfRange)
	}
	return nil
}

// String renders the fact as "3x4".
func (f Fact) String() string {
	return fmt.Sprintf("%dx%d", f.Table, f.Multiplicand)
}

// InRange reports whether n is a valid table or multiplicand.
func InRange(n int) bool {
	return n >= MinTable && n <= MaxTable
}

// AllTables returns MinTable..MaxTable in ascending order.
func AllTables() []int {
	tables := make([]int, 0, PerTable)
	for t := MinTable; t <= MaxTable; t++ {
		tables = append(tables, t)
	}
	return tables
}

// NormalizeScope drops out-of-range and duplicate tables and returns the
// remainder in ascending order. The input is not modified.
func NormalizeScope(scope []int) []int {
	out := make([]int, 0, len(scope))
	for _, t := range scope {
		if InRange(t) && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	slices.Sort(out)
	return out
}

// Pool returns every fact of the given tables, table-major, multiplicands
// ascending. Tables are used as given; callers normalise first.
func Pool(tables []int) []Fact {
	pool := make([]Fact, 0, len(tables)*PerTable)
	for _, t := range tables {
		for m := MinTable; m <= MaxTable; m++ {
			pool = append(pool, New(t, m))
		}
	}
	return pool
}
