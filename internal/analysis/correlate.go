package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/dataset"
)

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// Correlate computes Pearson correlations between every pair of numeric
// columns over the rows where both cells are non-null. The diagonal is 1.
// Pairs with fewer than two complete rows or zero variance get 0.
func Correlate(t *dataset.Table) *CorrMatrix {
	cols := t.NumericColumns()
	n := len(cols)
	m := &CorrMatrix{Columns: make([]string, n), Values: make([][]float64, n)}
	for i, c := range cols {
		m.Columns[i] = c.Name
		m.Values[i] = make([]float64, n)
		m.Values[i][i] = 1
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			r := pearson(cols[a], cols[b])
			m.Values[a][b] = r
			m.Values[b][a] = r
		}
	}
	return m
}

func pearson(a, b *dataset.Column) float64 {
	x := make([]float64, 0, a.Len())
	y := make([]float64, 0, a.Len())
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) || b.IsNull(i) {
			continue
		}
		x = append(x, a.Float(i))
		y = append(y, b.Float(i))
	}
	if len(x) < 2 {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

// At returns the correlation between two named columns.
func (m *CorrMatrix) At(a, b string) (float64, bool) {
	ia, ib := m.index(a), m.index(b)
	if ia < 0 || ib < 0 {
		return 0, false
	}
	return m.Values[ia][ib], true
}

func (m *CorrMatrix) index(name string) int {
	for i, c := range m.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Sub returns the matrix restricted to the named columns, in that order.
func (m *CorrMatrix) Sub(names ...string) (*CorrMatrix, bool) {
	idx := make([]int, len(names))
	for i, name := range names {
		if idx[i] = m.index(name); idx[i] < 0 {
			return nil, false
		}
	}
	out := &CorrMatrix{Columns: append([]string(nil), names...), Values: make([][]float64, len(names))}
	for i, a := range idx {
		out.Values[i] = make([]float64, len(names))
		for j, b := range idx {
			out.Values[i][j] = m.Values[a][b]
		}
	}
	return out, true
}

// PairCorr is a simple correlation pair summary.
type PairCorr struct {
	A, B string
	R    float64
}
