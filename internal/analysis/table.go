package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/dataset"
)

// Options controls what goes into a Report.
type Options struct {
	// SampleRows determines how many head rows to include in the report.
	SampleRows int
	// TopValues caps the frequent values listed per text column.
	TopValues int
	// TopPairs caps the strongest correlation pairs listed.
	TopPairs int
}

// DefaultOptions returns reasonable defaults for dataset analysis.
func DefaultOptions() Options {
	return Options{SampleRows: 5, TopValues: 8, TopPairs: 10}
}

// Report is a markdown-friendly analysis of a cleaned dataset.
type Report struct {
	Name        string
	Rows        int
	Schema      []dataset.ColumnInfo
	Numeric     []NumericSummary
	Categorical []CategorySummary
	Corr        *CorrMatrix
	Pairs       []PairCorr
	Header      []string
	Samples     [][]string
	Notes       []string
}

// Analyze builds a Report from t. It does not modify t.
func Analyze(t *dataset.Table, opt Options) *Report {
	if opt.SampleRows < 0 {
		opt.SampleRows = 0
	}
	in := t.Inspect()
	rep := &Report{
		Name:        t.Name,
		Rows:        in.Rows,
		Schema:      in.Columns,
		Numeric:     Describe(t),
		Categorical: DescribeCategorical(t, opt.TopValues),
		Corr:        Correlate(t),
		Header:      t.Names(),
		Samples:     t.Head(opt.SampleRows),
	}
	rep.Pairs = topPairs(rep.Corr, opt.TopPairs)
	for _, c := range in.Columns {
		if c.Null > 0 {
			rep.Notes = append(rep.Notes, fmt.Sprintf("column %s has %d missing values", c.Name, c.Null))
		}
	}
	return rep
}

// AddNote appends a line to the report's notes section.
func (r *Report) AddNote(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

func topPairs(m *CorrMatrix, limit int) []PairCorr {
	var pairs []PairCorr
	n := len(m.Columns)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, PairCorr{A: m.Columns[i], B: m.Columns[j], R: m.Values[i][j]})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		ai := math.Abs(pairs[i].R)
		aj := math.Abs(pairs[j].R)
		if ai == aj {
			return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
		}
		return ai > aj
	})
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs
}

// Markdown renders a compact report suitable for standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Schema)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Schema {
		total := c.NonNull + c.Null
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Null) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)\n", safeName(c.Name), c.Kind, c.NonNull, missPct))
	}

	if len(r.Numeric) > 0 {
		b.WriteString("\n[STATISTICAL SUMMARY]\n")
		b.WriteString(r.DescribeMarkdown())
	}
	if len(r.Categorical) > 0 {
		b.WriteString("\n[CATEGORICAL]\n")
		for _, c := range r.Categorical {
			b.WriteString(fmt.Sprintf("- %s: count %d, unique %d", safeName(c.Name), c.Count, c.Unique))
			if len(c.Top) > 0 {
				b.WriteString(" — top: ")
				for i, kv := range c.Top {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
				}
			}
			b.WriteString("\n")
		}
	}
	if r.Corr != nil && len(r.Corr.Columns) > 0 {
		b.WriteString("\n[CORRELATION MATRIX]\n")
		b.WriteString(r.Corr.Markdown())
	}
	if len(r.Pairs) > 0 {
		b.WriteString("\n[CORRELATIONS]\n")
		for _, p := range r.Pairs {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
		}
	}
	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n")
		b.WriteString(HeadMarkdown(r.Header, r.Samples))
	}
	if len(r.Notes) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Notes {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// DescribeMarkdown renders the numeric summaries as a statistic-by-column table.
func (r *Report) DescribeMarkdown() string {
	var b strings.Builder
	b.WriteString("| stat |")
	for _, s := range r.Numeric {
		b.WriteString(" " + safeName(s.Name) + " |")
	}
	b.WriteString("\n|---|")
	for range r.Numeric {
		b.WriteString("---|")
	}
	b.WriteString("\n")
	rows := []struct {
		label string
		get   func(NumericSummary) float64
	}{
		{"count", func(s NumericSummary) float64 { return float64(s.Count) }},
		{"mean", func(s NumericSummary) float64 { return s.Mean }},
		{"std", func(s NumericSummary) float64 { return s.Std }},
		{"min", func(s NumericSummary) float64 { return s.Min }},
		{"25%", func(s NumericSummary) float64 { return s.Q25 }},
		{"50%", func(s NumericSummary) float64 { return s.Q50 }},
		{"75%", func(s NumericSummary) float64 { return s.Q75 }},
		{"max", func(s NumericSummary) float64 { return s.Max }},
	}
	for _, row := range rows {
		b.WriteString("| " + row.label + " |")
		for _, s := range r.Numeric {
			b.WriteString(" " + formatStat(row.get(s)) + " |")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Markdown renders the full matrix as a table.
func (m *CorrMatrix) Markdown() string {
	var b strings.Builder
	b.WriteString("| |")
	for _, c := range m.Columns {
		b.WriteString(" " + safeName(c) + " |")
	}
	b.WriteString("\n|---|")
	for range m.Columns {
		b.WriteString("---|")
	}
	b.WriteString("\n")
	for i, c := range m.Columns {
		b.WriteString("| " + safeName(c) + " |")
		for j := range m.Columns {
			b.WriteString(fmt.Sprintf(" %.6f |", m.Values[i][j]))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HeadMarkdown renders rows under header as a Markdown table.
func HeadMarkdown(header []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString("| ")
	for i, c := range header {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(safeName(c))
	}
	b.WriteString(" |\n")
	b.WriteString("| ")
	for i := range header {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString("---")
	}
	b.WriteString(" |\n")
	for _, row := range rows {
		b.WriteString("| ")
		for i := range header {
			if i > 0 {
				b.WriteString(" | ")
			}
			val := ""
			if i < len(row) {
				val = row[i]
			}
			if len(val) > 80 {
				val = val[:77] + "..."
			}
			b.WriteString(safeVal(val))
		}
		b.WriteString(" |\n")
	}
	return b.String()
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.6g", v)
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}
func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
