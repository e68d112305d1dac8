// Package pipeline runs the exploratory analysis end to end:
// load, inspect, deduplicate, summarize, encode and render.
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/analysis"
	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/chart"
	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/dataset"
	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/manifest"
	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/utils"
)

// EncodedColumns are the categorical columns given integer codes, in order.
var EncodedColumns = []string{"region", "smoker", "sex"}

// Options configures a run.
type Options struct {
	Input      string
	OutputDir  string
	Delimiter  rune
	Charts     bool
	ReportPath string
	Manifest   bool
	SampleRows int
	Debug      bool
}

// Result carries everything a run produced.
type Result struct {
	Table      *dataset.Table
	Inspection dataset.Inspection
	Dedup      dataset.DedupResult
	Report     *analysis.Report
	Encodings  []dataset.Encoding
	Charts     []string
	Manifest   *manifest.Manifest
}

// Run executes the steps in order, printing diagnostics to out.
// The first failure aborts the run.
func Run(opt Options, out io.Writer) (*Result, error) {
	if out == nil {
		out = io.Discard
	}
	if opt.OutputDir == "" {
		opt.OutputDir = "."
	}
	var man *manifest.Manifest
	if opt.Manifest {
		man = manifest.New(opt.Input, opt.OutputDir)
	}

	t, err := dataset.Load(opt.Input, dataset.Options{Delimiter: opt.Delimiter})
	if err != nil {
		return nil, err
	}
	rows, cols := t.Shape()
	fmt.Fprintf(out, "✓ Loaded %s: %d rows x %d columns\n", opt.Input, rows, cols)
	if man != nil {
		man.RowsLoaded = rows
	}

	res := &Result{Inspection: t.Inspect(), Manifest: man}
	fmt.Fprintln(out)
	fmt.Fprint(out, res.Inspection.String())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Missing values per column:")
	for _, c := range res.Inspection.Columns {
		fmt.Fprintf(out, "  %s: %t\n", c.Name, c.Null > 0)
	}
	if res.Inspection.HasMissing() {
		fmt.Fprintln(out, "⚠ Dataset contains missing values")
	}

	res.Dedup = dataset.DropDuplicates(t)
	t = res.Dedup.Table
	fmt.Fprintln(out)
	fmt.Fprintln(out, res.Dedup.Message())
	if man != nil {
		man.DuplicatesRemoved = res.Dedup.Removed
	}

	aopt := analysis.DefaultOptions()
	if opt.SampleRows > 0 {
		aopt.SampleRows = opt.SampleRows
	}
	res.Report = analysis.Analyze(t, aopt)
	if res.Dedup.Removed > 0 {
		res.Report.AddNote("removed %d duplicate rows", res.Dedup.Removed)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Statistical summary:")
	fmt.Fprint(out, res.Report.DescribeMarkdown())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Correlation matrix:")
	fmt.Fprint(out, res.Report.Corr.Markdown())

	for _, name := range EncodedColumns {
		enc, err := t.EncodeColumn(name)
		if err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
		res.Encodings = append(res.Encodings, enc)
		if man != nil {
			man.RecordEncoding(enc)
		}
		if opt.Debug {
			fmt.Fprintf(out, "[debug] %s codes: %v\n", name, enc.Mapping())
		}
	}

	res.Table = t

	if opt.Charts {
		paths, err := chart.Renderer{Dir: opt.OutputDir}.RenderAll(t)
		res.Charts = paths
		for _, p := range paths {
			fmt.Fprintf(out, "✓ Wrote %s\n", p)
		}
		if err != nil {
			return res, fmt.Errorf("render charts: %w", err)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Final dataset head:")
	fmt.Fprint(out, analysis.HeadMarkdown(t.Names(), t.Head(5)))

	if opt.ReportPath != "" {
		if err := utils.SafeWriteFile(opt.ReportPath, []byte(res.Report.Markdown())); err != nil {
			return res, fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(out, "✓ Wrote analysis to %s\n", opt.ReportPath)
	}

	if man != nil {
		man.RecordTable(t)
		man.Charts = res.Charts
		man.Report = opt.ReportPath
		if err := man.Save(); err != nil {
			return res, fmt.Errorf("write manifest: %w", err)
		}
		fmt.Fprintf(out, "✓ Wrote manifest to %s\n", filepath.Clean(man.Path()))
	}
	return res, nil
}

// Prepare loads and deduplicates a dataset, then appends the encoded columns.
// It is the shared front half of Run for callers that only want the table.
func Prepare(path string, delim rune) (*dataset.Table, dataset.DedupResult, error) {
	t, err := dataset.Load(path, dataset.Options{Delimiter: delim})
	if err != nil {
		return nil, dataset.DedupResult{}, err
	}
	dd := dataset.DropDuplicates(t)
	for _, name := range EncodedColumns {
		if _, err := dd.Table.EncodeColumn(name); err != nil {
			return nil, dd, fmt.Errorf("encode: %w", err)
		}
	}
	return dd.Table, dd, nil
}
