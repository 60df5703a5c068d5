package correction

import "fmt"

// Table is a dense per-integer-level multiplier array.
// Immutable after construction; safe for concurrent readers.
type Table struct {
	values []float64
}

// NewTable wraps already expanded values (one entry per integer level).
func NewTable(values []float64) Table {
	cp := make([]float64, len(values))
	copy(cp, values)
	return Table{values: cp}
}

// Len returns the number of levels in the table.
func (t Table) Len() int {
	return len(t.values)
}

// MaxLevel returns the highest level the table covers, or -1 when empty.
func (t Table) MaxLevel() int {
	return len(t.values) - 1
}

// At returns the multiplier for level in O(1).
// Levels outside [0, MaxLevel] are rejected with ErrLevelOutOfDomain.
func (t Table) At(level int) (float64, error) {
	if level < 0 || level >= len(t.values) {
		return 0, fmt.Errorf("%w: %d not in [0, %d]", ErrLevelOutOfDomain, level, t.MaxLevel())
	}
	return t.values[level], nil
}

// Values returns a copy of the expanded values.
func (t Table) Values() []float64 {
	out := make([]float64, len(t.values))
	copy(out, t.values)
	return out
}
