// Package charts draws the fixed set of exploration charts for the reference
// dataset with gonum/plot.
package charts

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/medcost/dataset"
	"github.com/YuminosukeSato/medcost/insurance"
	"github.com/YuminosukeSato/medcost/pkg/errors"
	"github.com/YuminosukeSato/medcost/pkg/log"
)

const (
	width  = 8 * vg.Inch
	height = 5 * vg.Inch

	histogramBins = 30
	kdePoints     = 200
)

var (
	boxWidth = vg.Points(40)

	// seaborn の既定パレットに近い色
	blue   = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	orange = color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}
	navy   = color.RGBA{R: 0x1a, G: 0x1a, B: 0x40, A: 0xff}
)

// Formats lists the output formats Render accepts.
var Formats = []string{"png", "svg"}

// ParseFormat normalises an image format name and rejects anything outside
// Formats.
func ParseFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(s))
	if !slices.Contains(Formats, f) {
		return "", errors.NewValidationError("format", "unsupported image format", s)
	}
	return f, nil
}

// Build constructs the plot for kind without rendering it.
func Build(kind Kind, table *dataset.Table) (*plot.Plot, error) {
	if table == nil {
		return nil, errors.NewModelError("charts.Build", "no dataset", errors.ErrDatasetUnavailable)
	}
	switch kind {
	case ChargesHistogram:
		return chargesHistogram(table)
	case ChargesByRegion:
		return chargesBox(table, dataset.ColRegion, "Region")
	case BMIVsCharges:
		return bmiScatter(table)
	case ChargesBySmoker:
		return chargesBox(table, dataset.ColSmoker, "Smoker")
	case CorrelationHeatmap:
		return correlationHeatmap(table)
	default:
		return nil, errors.NewValidationError("kind", "unknown chart", int(kind))
	}
}

// Render draws kind to w in the given format ("png" or "svg").
func Render(kind Kind, table *dataset.Table, w io.Writer, format string) (err error) {
	defer errors.Recover(&err, "charts.Render")

	format, err = ParseFormat(format)
	if err != nil {
		return err
	}
	p, err := Build(kind, table)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return errors.Wrapf(err, "render %s", kind)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrapf(err, "render %s", kind)
	}
	return nil
}

// RenderAll writes every chart into dir as <slug>.<format> and returns the
// written paths.
func RenderAll(table *dataset.Table, dir, format string) ([]string, error) {
	logger := log.Named("charts")
	format, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewIOError("mkdir", dir, err)
	}

	paths := make([]string, 0, len(Kinds()))
	for _, kind := range Kinds() {
		path := filepath.Join(dir, fmt.Sprintf("%s.%s", kind, format))
		if err := renderFile(kind, table, path, format); err != nil {
			return paths, err
		}
		logger.Debug("chart written", log.OperationKey, log.OperationRender, "chart", kind.String(), "file", path)
		paths = append(paths, path)
	}
	logger.Info("charts rendered", log.OperationKey, log.OperationRender, "count", len(paths), "dir", dir)
	return paths, nil
}

func renderFile(kind Kind, table *dataset.Table, path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewIOError("create", path, err)
	}
	defer f.Close()

	if err := Render(kind, table, f, format); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return errors.NewIOError("close", path, err)
	}
	return nil
}

func newPlot(kind Kind) *plot.Plot {
	p := plot.New()
	p.Title.Text = kind.Title()
	return p
}

func chargesHistogram(table *dataset.Table) (*plot.Plot, error) {
	p := newPlot(ChargesHistogram)
	p.X.Label.Text = "Charges"
	p.Y.Label.Text = "Density"

	charges := table.Charges()
	hist, err := plotter.NewHist(plotter.Values(charges), histogramBins)
	if err != nil {
		return nil, errors.Wrap(err, "histogram")
	}
	hist.Normalize(1)
	hist.FillColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0x80}
	hist.LineStyle.Color = blue

	kde, err := plotter.NewLine(gaussianKDE(charges, kdePoints))
	if err != nil {
		return nil, errors.Wrap(err, "kde")
	}
	kde.LineStyle.Color = navy
	kde.LineStyle.Width = vg.Points(1.5)

	p.Add(hist, kde)
	return p, nil
}

func chargesBox(table *dataset.Table, by, label string) (*plot.Plot, error) {
	kind := ChargesByRegion
	if by == dataset.ColSmoker {
		kind = ChargesBySmoker
	}
	p := newPlot(kind)
	p.X.Label.Text = label
	p.Y.Label.Text = "Charges"

	groups, err := table.GroupCharges(by)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(groups))
	for i, g := range groups {
		names = append(names, g.Key)
		if len(g.Charges) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(boxWidth, float64(i), plotter.Values(g.Charges))
		if err != nil {
			return nil, errors.Wrapf(err, "box plot %s", g.Key)
		}
		box.FillColor = blue
		p.Add(box)
	}
	p.NominalX(names...)
	return p, nil
}

func bmiScatter(table *dataset.Table) (*plot.Plot, error) {
	p := newPlot(BMIVsCharges)
	p.X.Label.Text = "BMI"
	p.Y.Label.Text = "Charges"
	p.Legend.Top = true

	bySmoker, err := smokerPoints(table)
	if err != nil {
		return nil, err
	}

	colors := [2]color.Color{blue, orange}
	for code, key := range []insurance.Smoker{insurance.NonSmoker, insurance.CurrentSmoker} {
		pts := bySmoker[code]
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "scatter smoker=%s", key)
		}
		s.GlyphStyle.Color = colors[code]
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(s)
		p.Legend.Add("smoker="+key.String(), s)
	}
	return p, nil
}

// smokerPoints splits (bmi, charges) pairs by the encoded smoker code, so
// every label spelling the table accepts lands in its group.
func smokerPoints(table *dataset.Table) ([2]plotter.XYs, error) {
	var out [2]plotter.XYs
	codes, err := table.Column(dataset.ColSmoker)
	if err != nil {
		return out, err
	}
	for i, r := range table.Records() {
		c := int(codes[i])
		out[c] = append(out[c], plotter.XY{X: r.BMI, Y: r.Charges})
	}
	return out, nil
}

// corrGrid adapts a correlation matrix to plotter.GridXYZ. Row 0 is drawn at
// the top.
type corrGrid struct {
	corr dataset.Correlation
}

func (g corrGrid) Dims() (c, r int) {
	n := len(g.corr.Labels)
	return n, n
}

func (g corrGrid) Z(c, r int) float64 {
	n := len(g.corr.Labels)
	return g.corr.Matrix.At(n-1-r, c)
}

func (g corrGrid) X(c int) float64 { return float64(c) }

func (g corrGrid) Y(r int) float64 { return float64(r) }

func correlationHeatmap(table *dataset.Table) (*plot.Plot, error) {
	p := newPlot(CorrelationHeatmap)
	p.X.Tick.Label.Rotation = 0.6
	p.X.Tick.Label.XAlign = draw.XRight

	corr := table.Correlation()
	grid := corrGrid{corr: corr}
	n := len(corr.Labels)

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	hm := plotter.NewHeatMap(grid, cm.Palette(255))
	hm.Min, hm.Max = -1, 1
	p.Add(hm)

	var xys plotter.XYs
	var texts []string
	xTicks := make([]plot.Tick, n)
	yTicks := make([]plot.Tick, n)
	for i, name := range corr.Labels {
		xTicks[i] = plot.Tick{Value: float64(i), Label: name}
		yTicks[i] = plot.Tick{Value: float64(n - 1 - i), Label: name}
		for j := 0; j < n; j++ {
			xys = append(xys, plotter.XY{X: float64(j), Y: float64(n - 1 - i)})
			texts = append(texts, fmt.Sprintf("%.2f", corr.Matrix.At(i, j)))
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, errors.Wrap(err, "heatmap labels")
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(labels)

	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)
	p.X.Min, p.X.Max = -0.5, float64(n)-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(n)-0.5
	return p, nil
}
