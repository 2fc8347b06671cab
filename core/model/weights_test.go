package model

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/medcost/pkg/errors"
)

func validWeights() *ModelWeights {
	return &ModelWeights{
		ModelType:    "LinearRegression",
		Version:      "1.0.0",
		Coefficients: []float64{250, 100, 300, 400, 9000, -50},
		Intercept:    1000,
		Features:     []string{"age", "sex", "bmi", "children", "smoker", "region"},
		IsFitted:     true,
	}
}

func TestModelWeightsJSON(t *testing.T) {
	mw := validWeights()
	data, err := mw.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"model_type": "LinearRegression"`)

	var decoded ModelWeights
	require.NoError(t, decoded.FromJSON(data))
	assert.Equal(t, mw.Coefficients, decoded.Coefficients)
	assert.Equal(t, mw.Intercept, decoded.Intercept)
	require.NoError(t, decoded.Validate())
}

func TestModelWeightsFromJSONMalformed(t *testing.T) {
	var mw ModelWeights
	err := mw.FromJSON([]byte(`{"coefficients": [1, 2`))
	var modelErr *errors.ModelError
	assert.True(t, errors.As(err, &modelErr))
}

func TestModelWeightsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ModelWeights)
		check  func(t *testing.T, err error)
	}{
		{
			name:   "missing model type",
			mutate: func(mw *ModelWeights) { mw.ModelType = "" },
			check: func(t *testing.T, err error) {
				var e *errors.ModelError
				assert.True(t, errors.As(err, &e))
			},
		},
		{
			name:   "not fitted",
			mutate: func(mw *ModelWeights) { mw.IsFitted = false },
			check: func(t *testing.T, err error) {
				var e *errors.NotFittedError
				assert.True(t, errors.As(err, &e))
			},
		},
		{
			name:   "feature count mismatch",
			mutate: func(mw *ModelWeights) { mw.Features = mw.Features[:5] },
			check: func(t *testing.T, err error) {
				var e *errors.DimensionError
				assert.True(t, errors.As(err, &e))
			},
		},
		{
			name:   "nan coefficient",
			mutate: func(mw *ModelWeights) { mw.Coefficients[2] = math.NaN() },
			check: func(t *testing.T, err error) {
				var e *errors.NumericalInstabilityError
				assert.True(t, errors.As(err, &e))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := validWeights()
			tt.mutate(mw)
			err := mw.Validate()
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

type snapshotFixture struct {
	BaseEstimator
	Coef []float64
}

func TestSnapshotRoundTrip(t *testing.T) {
	src := &snapshotFixture{Coef: []float64{1.5, -2}}
	src.SetFitted()

	var buf bytes.Buffer
	require.NoError(t, SaveSnapshotToWriter(src, &buf))

	var dst snapshotFixture
	require.NoError(t, LoadSnapshotFromReader(&dst, &buf))
	assert.True(t, dst.IsFitted())
	assert.Equal(t, src.Coef, dst.Coef)
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	var dst snapshotFixture
	err := LoadSnapshot(&dst, t.TempDir()+"/absent.gob")
	var ioErr *errors.IOError
	assert.True(t, errors.As(err, &ioErr))
}
