package dataset

import (
	"sort"
)

// EncodedSuffix is appended to a column name for its integer-coded copy.
const EncodedSuffix = "_encoded"

// NullCode is assigned to null cells.
const NullCode = -1

// Encoding maps the distinct values of a categorical column to integer codes.
// Categories holds the distinct values in code order: Categories[k] has code k.
type Encoding struct {
	Column     string
	Categories []string
	Codes      []int
	lookup     map[string]int
}

// Code returns the code assigned to v.
func (e Encoding) Code(v string) (int, bool) {
	k, ok := e.lookup[v]
	return k, ok
}

// Mapping returns category -> code.
func (e Encoding) Mapping() map[string]int {
	out := make(map[string]int, len(e.Categories))
	for k, v := range e.Categories {
		out[v] = k
	}
	return out
}

// Encode assigns codes 0..k-1 to the k distinct values in ascending order.
// Empty input gives an empty encoding.
func Encode(values []string) Encoding {
	return encode("", values, nil, lessString(values))
}

// EncodeColumn derives codes for the named column and appends them to the
// table as "<name>_encoded". Numeric columns order their categories by value.
func (t *Table) EncodeColumn(name string) (Encoding, error) {
	c, err := t.Column(name)
	if err != nil {
		return Encoding{}, err
	}
	e := EncodeValues(c)
	codes := make([]float64, len(e.Codes))
	for i, k := range e.Codes {
		codes[i] = float64(k)
	}
	if err := t.AddColumn(NewNumericColumn(name+EncodedSuffix, KindInt, codes)); err != nil {
		return Encoding{}, err
	}
	return e, nil
}

// EncodeValues derives codes for a column without modifying any table.
func EncodeValues(c *Column) Encoding {
	vals := make([]string, c.Len())
	for i := range vals {
		vals[i] = c.String(i)
	}
	less := lessString(vals)
	if c.Kind.Numeric() {
		less = func(a, b int) bool { return c.nums[a] < c.nums[b] }
	}
	return encode(c.Name, vals, c.null, less)
}

// encode orders the first occurrence of each distinct value with less, which
// compares row positions.
func encode(column string, vals []string, null []bool, less func(a, b int) bool) Encoding {
	first := map[string]int{}
	var rows []int
	for i, v := range vals {
		if null != nil && null[i] {
			continue
		}
		if _, ok := first[v]; !ok {
			first[v] = i
			rows = append(rows, i)
		}
	}
	sort.SliceStable(rows, func(a, b int) bool { return less(rows[a], rows[b]) })

	e := Encoding{Column: column, Categories: make([]string, len(rows)), Codes: make([]int, len(vals)), lookup: make(map[string]int, len(rows))}
	for k, i := range rows {
		e.Categories[k] = vals[i]
		e.lookup[vals[i]] = k
	}
	for i, v := range vals {
		if null != nil && null[i] {
			e.Codes[i] = NullCode
			continue
		}
		e.Codes[i] = e.lookup[v]
	}
	return e
}

func lessString(vals []string) func(a, b int) bool {
	return func(a, b int) bool { return vals[a] < vals[b] }
}
