package charts

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/plotter"
)

// silvermanBandwidth is Silverman's rule of thumb:
// 0.9 * min(σ, IQR/1.34) * n^(-1/5).
func silvermanBandwidth(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 1
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	sd := stat.StdDev(sorted, nil)
	iqr := stat.Quantile(0.75, stat.Empirical, sorted, nil) - stat.Quantile(0.25, stat.Empirical, sorted, nil)
	spread := sd
	if iqr > 0 && iqr/1.34 < spread {
		spread = iqr / 1.34
	}
	if spread == 0 {
		return 1
	}
	return 0.9 * spread * math.Pow(n, -0.2)
}

// gaussianKDE evaluates a Gaussian kernel density estimate of values at
// points evenly spaced over [min-3h, max+3h].
func gaussianKDE(values []float64, points int) plotter.XYs {
	h := silvermanBandwidth(values)
	lo, hi := floats.Min(values)-3*h, floats.Max(values)+3*h
	xs := make([]float64, points)
	floats.Span(xs, lo, hi)

	norm := 1 / (float64(len(values)) * h * math.Sqrt(2*math.Pi))
	xys := make(plotter.XYs, points)
	for i, x := range xs {
		var sum float64
		for _, v := range values {
			u := (x - v) / h
			sum += math.Exp(-0.5 * u * u)
		}
		xys[i].X = x
		xys[i].Y = sum * norm
	}
	return xys
}
