// Package chart renders the fixed set of exploratory charts for the
// insurance dataset as PNG files.
package chart

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot/vg"

	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/dataset"
)

// Output file names.
const (
	ScatterAgeCharges     = "scatterplot_age_vs_charges.png"
	ScatterAgeBMI         = "scatterplot_age_vs_bmi.png"
	BarSexCharges         = "barplot_sex_vs_charges.png"
	BarRegionCharges      = "barplot_region_vs_charges.png"
	KDECharges            = "kdeplot_charges_distribution.png"
	KDEBMI                = "kdeplot_bmi_distribution.png"
	HeatmapChildrenRegion = "heatmap_children_vs_region.png"
	HeatmapSexSmoker      = "heatmap_sex_vs_smoker.png"
)

// Chart describes one output image.
type Chart struct {
	File   string
	Title  string
	Width  vg.Length
	Height vg.Length
	build  builder
}

// Charts returns the eight charts in render order.
func Charts() []Chart {
	return []Chart{
		{File: ScatterAgeCharges, Title: "Scatter Plot: Age vs Charges", Width: 8 * vg.Inch, Height: 6 * vg.Inch,
			build: scatter("age", "charges", "smoker", "sex")},
		{File: ScatterAgeBMI, Title: "Scatter Plot: Age vs BMI", Width: 10 * vg.Inch, Height: 8 * vg.Inch,
			build: scatter("age", "bmi", "smoker", "sex")},
		{File: BarSexCharges, Title: "Bar Plot: Sex vs Charges", Width: 7 * vg.Inch, Height: 6 * vg.Inch,
			build: bars("sex", "charges", "smoker")},
		{File: BarRegionCharges, Title: "Bar Plot: Region vs Charges", Width: 7 * vg.Inch, Height: 6 * vg.Inch,
			build: bars("region", "charges", "smoker")},
		{File: KDECharges, Title: "KDE Plot: Charges Distribution", Width: 7 * vg.Inch, Height: 8 * vg.Inch,
			build: density("charges")},
		{File: KDEBMI, Title: "KDE Plot: BMI Distribution", Width: 7 * vg.Inch, Height: 8 * vg.Inch,
			build: density("bmi")},
		{File: HeatmapChildrenRegion, Title: "Heatmap: Children vs Region (Encoded)", Width: 6.4 * vg.Inch, Height: 4.8 * vg.Inch,
			build: heatmap("children", "region"+dataset.EncodedSuffix)},
		{File: HeatmapSexSmoker, Title: "Heatmap: Sex vs Smoker (Encoded)", Width: 6.4 * vg.Inch, Height: 4.8 * vg.Inch,
			build: heatmap("sex"+dataset.EncodedSuffix, "smoker"+dataset.EncodedSuffix)},
	}
}

// Renderer writes charts into Dir.
type Renderer struct {
	Dir string
}

// Render draws c from t and saves it, returning the written path.
func (r Renderer) Render(c Chart, t *dataset.Table) (string, error) {
	p, err := c.build(t, c.Title)
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.File, err)
	}
	dir := r.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}
	path := filepath.Join(dir, c.File)
	if err := p.Save(c.Width, c.Height, path); err != nil {
		return "", fmt.Errorf("save %s: %w", c.File, err)
	}
	return path, nil
}

// RenderAll renders every chart in order and stops at the first failure.
func (r Renderer) RenderAll(t *dataset.Table) ([]string, error) {
	var paths []string
	for _, c := range Charts() {
		path, err := r.Render(c, t)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
