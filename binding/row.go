// Package binding adapts query solution rows for expression evaluation.
//
// A row maps variable names to serialized RDF terms (see rdf.Parse). The
// adapter keeps the distinction the evaluator depends on: a variable whose
// column is missing from the result table is absent, while a variable whose
// column exists but holds no value is present and null.
package binding

import (
	"sort"
	"strings"
)

// Row is a read-only view over one solution.
type Row interface {
	// Lookup returns the serialized term bound to variable. present is false
	// when the row has no such column; bound is false when the column exists
	// but holds null.
	Lookup(variable string) (value string, present, bound bool)
}

// NormalizeVariable returns the canonical column name of a variable: a
// leading ? or $ sigil is replaced by ?, surrounding space is trimmed and
// the name is upper-cased, so ?a, $a and A all name the same column.
func NormalizeVariable(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimLeft(name, "?$")
	return "?" + strings.ToUpper(strings.TrimSpace(name))
}

// MapRow is a Row backed by a map from normalized variable name to value.
// A nil value marks a null cell.
type MapRow map[string]*string

// NewRow builds a row from bound values and the names of null columns.
func NewRow(values map[string]string, nulls ...string) MapRow {
	row := make(MapRow, len(values)+len(nulls))
	for name, value := range values {
		row.Set(name, value)
	}
	for _, name := range nulls {
		row.SetNull(name)
	}
	return row
}

// Set binds variable to a serialized term.
func (r MapRow) Set(variable, value string) {
	v := value
	r[NormalizeVariable(variable)] = &v
}

// SetNull adds variable as a null column.
func (r MapRow) SetNull(variable string) {
	r[NormalizeVariable(variable)] = nil
}

// Lookup implements Row.
func (r MapRow) Lookup(variable string) (string, bool, bool) {
	cell, present := r[NormalizeVariable(variable)]
	if !present {
		return "", false, false
	}
	if cell == nil {
		return "", true, false
	}
	return *cell, true, true
}

// Columns returns the sorted column names of the row.
func (r MapRow) Columns() []string {
	cols := make([]string, 0, len(r))
	for name := range r {
		cols = append(cols, name)
	}
	sort.Strings(cols)
	return cols
}

// Empty is a row without columns.
var Empty Row = MapRow{}
