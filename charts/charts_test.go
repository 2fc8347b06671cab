package charts

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/medcost/dataset"
	"github.com/YuminosukeSato/medcost/pkg/errors"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func loadFixture(t *testing.T) *dataset.Table {
	t.Helper()
	table, err := dataset.Load("../dataset/testdata/insurance.csv")
	require.NoError(t, err)
	return table
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
		assert.NotEmpty(t, k.Title())
	}

	_, err := ParseKind("pie")
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestRenderEveryKindAsPNG(t *testing.T) {
	table := loadFixture(t)

	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(k, table, &buf, "png"))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
	}
}

func TestRenderSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(CorrelationHeatmap, loadFixture(t), &buf, "svg"))
	assert.Contains(t, buf.String(), "<svg")
	assert.Contains(t, buf.String(), "1.00")
}

func TestRenderErrors(t *testing.T) {
	table := loadFixture(t)

	err := Render(ChargesHistogram, nil, &bytes.Buffer{}, "png")
	assert.True(t, errors.Is(err, errors.ErrDatasetUnavailable))

	err = Render(Kind(99), table, &bytes.Buffer{}, "png")
	assert.Error(t, err)

	err = Render(ChargesHistogram, table, &bytes.Buffer{}, "bmp")
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestScatterKeepsEverySmokerSpelling(t *testing.T) {
	table, err := dataset.NewTable([]dataset.Record{
		{Age: 19, Sex: "female", BMI: 27.9, Children: 0, Smoker: "Yes", Region: "southwest", Charges: 16884.924},
		{Age: 18, Sex: "male", BMI: 33.77, Children: 1, Smoker: "No", Region: "southeast", Charges: 1725.5523},
		{Age: 28, Sex: "Laki-laki", BMI: 33.0, Children: 3, Smoker: "Merokok", Region: "Southeast", Charges: 4449.462},
		{Age: 33, Sex: "male", BMI: 22.705, Children: 0, Smoker: "no", Region: "northwest", Charges: 21984.47061},
	})
	require.NoError(t, err)

	groups, err := smokerPoints(table)
	require.NoError(t, err)
	assert.Len(t, groups[0], 2)
	assert.Len(t, groups[1], 2)
	assert.Equal(t, table.Len(), len(groups[0])+len(groups[1]))

	_, err = Build(BMIVsCharges, table)
	assert.NoError(t, err)
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"png", "PNG", " svg "} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	got, _ := ParseFormat("SVG")
	assert.Equal(t, "svg", got)

	_, err := ParseFormat("bmp")
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestRenderAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")

	paths, err := RenderAll(loadFixture(t), dir, "png")
	require.NoError(t, err)
	require.Len(t, paths, len(Kinds()))

	for i, k := range Kinds() {
		assert.Equal(t, filepath.Join(dir, k.String()+".png"), paths[i])
		info, err := os.Stat(paths[i])
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestGaussianKDEIntegratesToOne(t *testing.T) {
	values := []float64{1, 2, 2.5, 3, 7, 8, 8.5, 9, 12}
	xys := gaussianKDE(values, 2000)

	var area float64
	for i := 1; i < len(xys); i++ {
		dx := xys[i].X - xys[i-1].X
		area += dx * (xys[i].Y + xys[i-1].Y) / 2
	}
	assert.InDelta(t, 1.0, area, 0.01)
}

func TestSilvermanBandwidth(t *testing.T) {
	assert.Equal(t, 1.0, silvermanBandwidth([]float64{5}))
	assert.Equal(t, 1.0, silvermanBandwidth([]float64{3, 3, 3}))

	h := silvermanBandwidth([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	assert.Greater(t, h, 0.0)
	assert.False(t, math.IsNaN(h))
}
