package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// kdeCut is how many bandwidths the grid extends past the data range.
const kdeCut = 3

// ScottBandwidth returns std * n^(-1/5), or 0 when it is undefined.
func ScottBandwidth(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	bw := stat.StdDev(vals, nil) * math.Pow(float64(len(vals)), -0.2)
	if math.IsNaN(bw) {
		return 0
	}
	return bw
}

// KDE evaluates a Gaussian kernel density estimate of vals at points evenly
// spaced grid positions. It returns nil slices when the estimate is
// undefined (fewer than two values or zero spread).
func KDE(vals []float64, points int) (xs, ys []float64) {
	bw := ScottBandwidth(vals)
	if bw == 0 || points < 2 {
		return nil, nil
	}
	lo := floats.Min(vals) - kdeCut*bw
	hi := floats.Max(vals) + kdeCut*bw
	xs = make([]float64, points)
	floats.Span(xs, lo, hi)
	ys = make([]float64, points)
	n := float64(len(vals))
	for i, g := range xs {
		var sum float64
		for _, v := range vals {
			sum += distuv.UnitNormal.Prob((g - v) / bw)
		}
		ys[i] = sum / (n * bw)
	}
	return xs, ys
}
