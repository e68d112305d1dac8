package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/dataset"
)

// NumericSummary holds descriptive statistics for one numeric column.
// Statistics that need more observations than are available are NaN.
type NumericSummary struct {
	Name  string
	Kind  dataset.Kind
	Count int
	Mean  float64
	Std   float64 // sample standard deviation (n-1)
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// Describe summarizes every numeric column of t, in column order. Nulls are
// skipped; text columns are ignored.
func Describe(t *dataset.Table) []NumericSummary {
	cols := t.NumericColumns()
	out := make([]NumericSummary, 0, len(cols))
	for _, c := range cols {
		out = append(out, summarize(c.Name, c.Kind, c.Values()))
	}
	return out
}

func summarize(name string, kind dataset.Kind, vals []float64) NumericSummary {
	s := NumericSummary{Name: name, Kind: kind, Count: len(vals)}
	if len(vals) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(sorted, nil)
	s.Std = math.NaN()
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	s.Q25 = quantile(sorted, 0.25)
	s.Q50 = quantile(sorted, 0.5)
	s.Q75 = quantile(sorted, 0.75)
	return s
}

// quantile interpolates linearly between the order statistics of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// CategoryCount is a value and how often it occurs.
type CategoryCount struct {
	Value string
	Count int
}

// CategorySummary describes one text column.
type CategorySummary struct {
	Name   string
	Count  int
	Unique int
	Top    []CategoryCount
}

// DescribeCategorical summarizes text columns: non-null count, distinct
// values and up to top most frequent values (ties broken by value).
func DescribeCategorical(t *dataset.Table, top int) []CategorySummary {
	var out []CategorySummary
	for _, c := range t.Columns() {
		if c.Kind.Numeric() {
			continue
		}
		counts := map[string]int{}
		s := CategorySummary{Name: c.Name}
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				continue
			}
			s.Count++
			counts[c.String(i)]++
		}
		s.Unique = len(counts)
		tops := make([]CategoryCount, 0, len(counts))
		for k, v := range counts {
			tops = append(tops, CategoryCount{Value: k, Count: v})
		}
		sort.Slice(tops, func(i, j int) bool {
			if tops[i].Count == tops[j].Count {
				return tops[i].Value < tops[j].Value
			}
			return tops[i].Count > tops[j].Count
		})
		if top > 0 && len(tops) > top {
			tops = tops[:top]
		}
		s.Top = tops
		out = append(out, s)
	}
	return out
}
