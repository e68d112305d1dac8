package analysis

import (
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/dataset"
)

var csvRows = []string{
	"age,sex,bmi,children,smoker,region,charges",
	"19,female,27.9,0,yes,southwest,16884.924",
	"18,male,33.77,1,no,southeast,1725.5523",
	"28,male,33,3,no,southeast,4449.462",
	"33,male,22.705,0,no,northwest,21984.47061",
	"32,male,28.88,0,no,northwest,3866.8552",
	"31,female,25.74,0,no,southeast,3756.6216",
	"46,female,33.44,1,no,southeast,8240.5896",
	"37,female,27.74,3,no,northwest,7281.5056",
	"37,male,,2,no,northeast,6406.4107",
	"60,female,25.84,0,no,northwest,28923.13692",
}

var (
	ages     = []float64{19, 18, 28, 33, 32, 31, 46, 37, 37, 60}
	bmis     = []float64{27.9, 33.77, 33, 22.705, 28.88, 25.74, 33.44, 27.74, 25.84}
	children = []float64{0, 1, 3, 0, 0, 0, 1, 3, 2, 0}
	charges  = []float64{16884.924, 1725.5523, 4449.462, 21984.47061, 3866.8552, 3756.6216, 8240.5896, 7281.5056, 6406.4107, 28923.13692}
)

func loadFixture(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.Read(strings.NewReader(strings.Join(csvRows, "\n")), dataset.Options{})
	require.NoError(t, err)
	tbl.Name = "insurance.csv"
	return tbl
}

func TestDescribe(t *testing.T) {
	sums := Describe(loadFixture(t))
	names := make([]string, len(sums))
	for i, s := range sums {
		names[i] = s.Name
	}
	require.Equal(t, []string{"age", "bmi", "children", "charges"}, names)
	checkSummary(t, sums[0], ages)
	checkSummary(t, sums[1], bmis)
	checkSummary(t, sums[2], children)
	checkSummary(t, sums[3], charges)
	assert.Equal(t, 9, sums[1].Count, "bmi count is the non-null count")
}

func TestDescribeQuartiles(t *testing.T) {
	s := summarize("x", dataset.KindFloat, []float64{4, 1, 3, 2})
	assert.InDelta(t, 1.75, s.Q25, 1e-12)
	assert.InDelta(t, 2.5, s.Q50, 1e-12)
	assert.InDelta(t, 3.25, s.Q75, 1e-12)

	one := summarize("x", dataset.KindFloat, []float64{7})
	assert.Equal(t, 1, one.Count)
	assert.Equal(t, 7.0, one.Mean)
	assert.True(t, math.IsNaN(one.Std))

	empty := summarize("x", dataset.KindFloat, nil)
	assert.Equal(t, 0, empty.Count)
	assert.True(t, math.IsNaN(empty.Mean))
}

func TestDescribeCountMatchesNonNull(t *testing.T) {
	tbl := loadFixture(t)
	for _, s := range Describe(tbl) {
		c, err := tbl.Column(s.Name)
		require.NoError(t, err)
		assert.Equal(t, c.NonNull(), s.Count, s.Name)
	}
}

func TestDescribeCategorical(t *testing.T) {
	cats := DescribeCategorical(loadFixture(t), 2)
	require.Len(t, cats, 3)
	region := cats[2]
	assert.Equal(t, "region", region.Name)
	assert.Equal(t, 10, region.Count)
	assert.Equal(t, 4, region.Unique)
	assert.Equal(t, []CategoryCount{{Value: "northwest", Count: 4}, {Value: "southeast", Count: 4}}, region.Top)
}

func TestCorrelate(t *testing.T) {
	m := Correlate(loadFixture(t))
	require.Equal(t, []string{"age", "bmi", "children", "charges"}, m.Columns)
	n := len(m.Columns)
	for i := 0; i < n; i++ {
		assert.Equal(t, 1.0, m.Values[i][i], "diagonal %d", i)
		for j := 0; j < n; j++ {
			assert.Equal(t, m.Values[i][j], m.Values[j][i], "asymmetric at %d,%d", i, j)
		}
	}
	got, ok := m.At("age", "charges")
	require.True(t, ok)
	assert.InDelta(t, correlation(ages, charges), got, 1e-9)

	// bmi has one null: the pair uses the nine complete rows
	want := correlation(bmis, subset(ages, []int{0, 1, 2, 3, 4, 5, 6, 7, 9}))
	got, _ = m.At("bmi", "age")
	assert.InDelta(t, want, got, 1e-9)
}

func TestCorrelateDegenerate(t *testing.T) {
	tbl, err := dataset.Read(strings.NewReader("a,b,c\n1,5,x\n"), dataset.Options{})
	require.NoError(t, err)
	m := Correlate(tbl)
	require.Equal(t, []string{"a", "b"}, m.Columns, "text column leaked into matrix")
	assert.Equal(t, [][]float64{{1, 0}, {0, 1}}, m.Values)

	sub, ok := m.Sub("b", "a")
	require.True(t, ok)
	assert.Equal(t, "b", sub.Columns[0])
	assert.Equal(t, 1.0, sub.Values[0][0])

	_, ok = m.Sub("c")
	assert.False(t, ok, "sub on text column should fail")
}

func TestHeaderOnlyDataset(t *testing.T) {
	tbl, err := dataset.Read(strings.NewReader(csvRows[0]+"\n"), dataset.Options{})
	require.NoError(t, err)
	dd := dataset.DropDuplicates(tbl)
	assert.Equal(t, 0, dd.Removed)

	assert.Empty(t, Describe(dd.Table))
	m := Correlate(dd.Table)
	assert.Empty(t, m.Columns)

	rep := Analyze(dd.Table, DefaultOptions())
	assert.Equal(t, 0, rep.Rows)
	assert.Len(t, rep.Schema, 7)
	assert.Contains(t, rep.Markdown(), "Rows: 0")
}

func TestAnalyzeAndMarkdown(t *testing.T) {
	opt := DefaultOptions()
	opt.SampleRows = 3
	rep := Analyze(loadFixture(t), opt)
	assert.Equal(t, 10, rep.Rows)
	assert.Len(t, rep.Schema, 7)
	assert.Len(t, rep.Samples, 3)
	assert.Equal(t, []string{"column bmi has 1 missing values"}, rep.Notes)
	rep.AddNote("removed %d duplicate rows", 2)

	md := rep.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: insurance.csv",
		"Rows: 10",
		"- bmi: float (non-null 9, missing 10.0%)",
		"[STATISTICAL SUMMARY]",
		"| count | 10 | 9 | 10 | 10 |",
		"[CATEGORICAL]",
		"- smoker: count 10, unique 2",
		"[CORRELATION MATRIX]",
		"| age | 1.000000 |",
		"[CORRELATIONS]",
		"[HEAD AND SAMPLE ROWS]",
		"| 19 | female | 27.9 | 0 | yes | southwest | 16884.924 |",
		"removed 2 duplicate rows",
	} {
		assert.Contains(t, md, want)
	}
}

func TestKDE(t *testing.T) {
	xs, ys := KDE(charges, 400)
	require.Len(t, xs, 400)
	require.Len(t, ys, 400)
	var area float64
	for i := 1; i < len(xs); i++ {
		area += (xs[i] - xs[i-1]) * (ys[i] + ys[i-1]) / 2
	}
	assert.InDelta(t, 1, area, 0.01, "kde area")
	assert.Less(t, xs[0], minFloat(charges), "grid does not cover data")
	assert.Greater(t, xs[len(xs)-1], maxFloat(charges), "grid does not cover data")

	xs, ys = KDE([]float64{3, 3, 3}, 10)
	assert.Nil(t, xs, "constant input should have no estimate")
	assert.Nil(t, ys)
}

func checkSummary(t *testing.T, s NumericSummary, vals []float64) {
	t.Helper()
	assert.Equal(t, len(vals), s.Count, "%s count", s.Name)
	assert.InDelta(t, minFloat(vals), s.Min, 1e-9, "%s min", s.Name)
	assert.InDelta(t, maxFloat(vals), s.Max, 1e-9, "%s max", s.Name)
	assert.InDelta(t, mean(vals), s.Mean, 1e-9, "%s mean", s.Name)
	assert.InDelta(t, sampleStd(vals), s.Std, 1e-9, "%s std", s.Name)
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	assert.InDelta(t, quantileValue(sorted, 0.5), s.Q50, 1e-9, "%s median", s.Name)
}

func quantileValue(sortedVals []float64, q float64) float64 {
	pos := q * float64(len(sortedVals)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	w := pos - float64(lo)
	return sortedVals[lo]*(1-w) + sortedVals[hi]*w
}

func subset(vals []float64, idxs []int) []float64 {
	out := make([]float64, len(idxs))
	for i, idx := range idxs {
		out[i] = vals[idx]
	}
	return out
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func sampleStd(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	m := mean(vals)
	var ss float64
	for _, v := range vals {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)-1))
}

func correlation(x, y []float64) float64 {
	mx, my := mean(x), mean(y)
	var sxy, sxx, syy float64
	for i := range x {
		dx, dy := x[i]-mx, y[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	return sxy / math.Sqrt(sxx*syy)
}

func minFloat(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxFloat(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
