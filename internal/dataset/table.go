package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrMissingColumn is returned when a column lookup fails.
var ErrMissingColumn = errors.New("column not found")

// Kind is the inferred storage type of a column.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "string"
	}
}

// Numeric reports whether values of this kind take part in statistics.
func (k Kind) Numeric() bool { return k == KindInt || k == KindFloat }

// Column is a named, typed vector of cells. Numeric kinds keep their values
// in nums (NaN where null); KindString keeps them in strs.
type Column struct {
	Name string
	Kind Kind
	nums []float64
	strs []string
	null []bool
}

// NewNumericColumn builds an int or float column. NaN entries are nulls.
func NewNumericColumn(name string, kind Kind, vals []float64) *Column {
	if !kind.Numeric() {
		kind = KindFloat
	}
	c := &Column{Name: name, Kind: kind, nums: make([]float64, len(vals)), null: make([]bool, len(vals))}
	copy(c.nums, vals)
	for i, v := range vals {
		c.null[i] = math.IsNaN(v)
	}
	return c
}

// NewStringColumn builds a text column. null may be nil when no cell is null.
func NewStringColumn(name string, vals []string, null []bool) *Column {
	c := &Column{Name: name, Kind: KindString, strs: make([]string, len(vals)), null: make([]bool, len(vals))}
	copy(c.strs, vals)
	copy(c.null, null)
	return c
}

// Len returns the number of cells.
func (c *Column) Len() int { return len(c.null) }

// IsNull reports whether cell i is null.
func (c *Column) IsNull(i int) bool { return c.null[i] }

// NonNull counts non-null cells.
func (c *Column) NonNull() int {
	n := 0
	for _, isNull := range c.null {
		if !isNull {
			n++
		}
	}
	return n
}

// Float returns cell i as a number; NaN for nulls and text cells.
func (c *Column) Float(i int) float64 {
	if c.null[i] || !c.Kind.Numeric() {
		return math.NaN()
	}
	return c.nums[i]
}

// Floats returns a copy of all cells as numbers, NaN where null.
func (c *Column) Floats() []float64 {
	out := make([]float64, c.Len())
	for i := range out {
		out[i] = c.Float(i)
	}
	return out
}

// Values returns the non-null numeric cells in row order.
func (c *Column) Values() []float64 {
	if !c.Kind.Numeric() {
		return nil
	}
	out := make([]float64, 0, c.Len())
	for i, v := range c.nums {
		if !c.null[i] {
			out = append(out, v)
		}
	}
	return out
}

// String formats cell i the way it is shown in reports. Nulls render as NaN.
func (c *Column) String(i int) string {
	if c.null[i] {
		return "NaN"
	}
	switch c.Kind {
	case KindInt:
		return strconv.FormatInt(int64(c.nums[i]), 10)
	case KindFloat:
		return strconv.FormatFloat(c.nums[i], 'f', -1, 64)
	default:
		return c.strs[i]
	}
}

// appendKey appends an unambiguous encoding of cell i for row equality:
// a tag byte ('n' null, 'v' value), then the value length and the value.
// Nulls equal nulls; -0 equals 0.
func (c *Column) appendKey(b []byte, i int) []byte {
	if c.null[i] {
		return append(b, 'n')
	}
	var v string
	if c.Kind.Numeric() {
		f := c.nums[i]
		if f == 0 {
			f = 0
		}
		v = strconv.FormatFloat(f, 'g', -1, 64)
	} else {
		v = c.strs[i]
	}
	b = append(b, 'v')
	b = strconv.AppendInt(b, int64(len(v)), 10)
	b = append(b, ':')
	return append(b, v...)
}

func (c *Column) take(idx []int) *Column {
	out := &Column{Name: c.Name, Kind: c.Kind, null: make([]bool, len(idx))}
	if c.Kind.Numeric() {
		out.nums = make([]float64, len(idx))
	} else {
		out.strs = make([]string, len(idx))
	}
	for j, i := range idx {
		out.null[j] = c.null[i]
		if c.Kind.Numeric() {
			out.nums[j] = c.nums[i]
		} else {
			out.strs[j] = c.strs[i]
		}
	}
	return out
}

// Table is an in-memory dataset with named, ordered columns of equal length.
type Table struct {
	Name  string
	cols  []*Column
	index map[string]int
	rows  int
}

// New assembles a table from columns, which must all have the same length.
func New(name string, cols ...*Column) (*Table, error) {
	t := &Table{Name: name, index: make(map[string]int, len(cols))}
	for _, c := range cols {
		if err := t.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Shape returns (rows, columns).
func (t *Table) Shape() (int, int) { return t.rows, len(t.cols) }

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Columns returns the columns in order. Callers must not modify the slice.
func (t *Table) Columns() []*Column { return t.cols }

// Names returns the column names in order.
func (t *Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name
	}
	return out
}

// Column looks a column up by exact name.
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	return t.cols[i], nil
}

// NumericColumns returns the int and float columns in order.
func (t *Table) NumericColumns() []*Column {
	var out []*Column
	for _, c := range t.cols {
		if c.Kind.Numeric() {
			out = append(out, c)
		}
	}
	return out
}

// AddColumn appends c, or replaces an existing column with the same name.
func (t *Table) AddColumn(c *Column) error {
	if len(t.cols) > 0 && c.Len() != t.rows {
		return fmt.Errorf("column %q has %d rows, table has %d", c.Name, c.Len(), t.rows)
	}
	if len(t.cols) == 0 {
		t.rows = c.Len()
	}
	if i, ok := t.index[c.Name]; ok {
		t.cols[i] = c
		return nil
	}
	t.index[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// Row returns the formatted cells of row i.
func (t *Table) Row(i int) []string {
	out := make([]string, len(t.cols))
	for j, c := range t.cols {
		out[j] = c.String(i)
	}
	return out
}

// Head returns up to n formatted rows from the top of the table.
func (t *Table) Head(n int) [][]string {
	if n > t.rows {
		n = t.rows
	}
	out := make([][]string, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, t.Row(i))
	}
	return out
}

// Take returns a new table holding the rows at idx, in that order.
func (t *Table) Take(idx []int) *Table {
	out := &Table{Name: t.Name, index: make(map[string]int, len(t.cols)), rows: len(idx)}
	for _, c := range t.cols {
		out.index[c.Name] = len(out.cols)
		out.cols = append(out.cols, c.take(idx))
	}
	return out
}

func (t *Table) rowKey(i int) string {
	var b []byte
	for _, c := range t.cols {
		b = c.appendKey(b, i)
	}
	return string(b)
}
