package dataset

import (
	"fmt"
	"strings"
)

// ColumnInfo is the schema line for one column.
type ColumnInfo struct {
	Name    string
	Kind    Kind
	NonNull int
	Null    int
}

// Inspection holds read-only diagnostics: shape, schema and null counts.
type Inspection struct {
	Name    string
	Rows    int
	Cols    int
	Columns []ColumnInfo
}

// Inspect computes diagnostics without modifying the table.
func (t *Table) Inspect() Inspection {
	in := Inspection{Name: t.Name, Rows: t.rows, Cols: len(t.cols)}
	for _, c := range t.cols {
		nn := c.NonNull()
		in.Columns = append(in.Columns, ColumnInfo{Name: c.Name, Kind: c.Kind, NonNull: nn, Null: c.Len() - nn})
	}
	return in
}

// HasMissing reports whether any column contains a null.
func (in Inspection) HasMissing() bool {
	for _, c := range in.Columns {
		if c.Null > 0 {
			return true
		}
	}
	return false
}

// Missing maps column name to whether it contains any null.
func (in Inspection) Missing() map[string]bool {
	out := make(map[string]bool, len(in.Columns))
	for _, c := range in.Columns {
		out[c.Name] = c.Null > 0
	}
	return out
}

// String renders the schema as a small aligned table.
func (in Inspection) String() string {
	width := len("Column")
	for _, c := range in.Columns {
		width = max(width, len(c.Name))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "RangeIndex: %d entries\n", in.Rows)
	fmt.Fprintf(&b, "Data columns (total %d columns):\n", in.Cols)
	fmt.Fprintf(&b, " #   %-*s  Non-Null Count  Kind\n", width, "Column")
	for i, c := range in.Columns {
		fmt.Fprintf(&b, " %-3d %-*s  %-14s  %s\n", i, width, c.Name, fmt.Sprintf("%d non-null", c.NonNull), c.Kind)
	}
	return b.String()
}
