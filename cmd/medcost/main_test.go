package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/medcost/insurance"
	"github.com/YuminosukeSato/medcost/linear"
	"github.com/YuminosukeSato/medcost/pkg/errors"
)

const testDataset = "../../data/insurance.csv"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeExampleModel(t *testing.T) string {
	t.Helper()
	m, err := linear.NewModel([]float64{250, 100, 300, 400, 9000, -50}, 1000, insurance.FeatureNames()...)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, linear.SaveModel(path, m, nil))
	return path
}

func TestPredictCommand(t *testing.T) {
	model := writeExampleModel(t)

	out, err := run(t, "predict", "--model", model,
		"--age", "30", "--sex", "male", "--bmi", "25", "--children", "2", "--smoker", "yes", "--region", "northeast")
	require.NoError(t, err)
	assert.Equal(t, "Predicted insurance charge: $25,900.00\n", out)

	out, err = run(t, "predict", "--model", model, "--json",
		"--age", "30", "--sex", "Laki-laki", "--bmi", "25", "--children", "2", "--smoker", "Merokok", "--region", "Northeast")
	require.NoError(t, err)
	var got predictOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 25900.0, got.Charge)
	assert.Equal(t, []float64{30, 1, 25, 2, 1, 0}, got.Features)
}

func TestPredictCommandMissingFields(t *testing.T) {
	_, err := run(t, "predict", "--model", writeExampleModel(t), "--age", "30", "--bmi", "25")

	var missing *errors.MissingFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"sex", "children", "smoker", "region"}, missing.Fields)
	assert.Equal(t, exitValidation, exitCode(err))
}

func TestPredictCommandMissingModel(t *testing.T) {
	_, err := run(t, "predict", "--model", filepath.Join(t.TempDir(), "none.json"),
		"--age", "30", "--sex", "male", "--bmi", "25", "--children", "2", "--smoker", "yes", "--region", "northeast")
	require.Error(t, err)
	assert.Equal(t, exitModelIO, exitCode(err))
}

func TestTrainCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "model.json")

	stdout, err := run(t, "train", "--data", testDataset, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Trained on 30 rows")

	m, err := linear.LoadModel(out)
	require.NoError(t, err)
	assert.Equal(t, insurance.FeatureNames(), m.FeatureNames())
	// 喫煙の係数は大きな正の値になる
	assert.Greater(t, m.Coefficients()[insurance.SmokerIndex], 10000.0)

	stdout, err = run(t, "predict", "--model", out,
		"--age", "30", "--sex", "male", "--bmi", "25", "--children", "2", "--smoker", "yes", "--region", "northeast")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Predicted insurance charge: $")
}

func TestChartsCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	stdout, err := run(t, "charts", "--dataset", testDataset, "--out-dir", dir, "--format", "svg")
	require.NoError(t, err)
	assert.Contains(t, stdout, filepath.Join(dir, "correlation.svg"))

	_, err = os.Stat(filepath.Join(dir, "charges-histogram.svg"))
	assert.NoError(t, err)

	_, err = run(t, "charts", "--dataset", testDataset, "--out-dir", dir, "--format", "gif")
	assert.Equal(t, exitUsage, exitCode(err))
}

func TestDatasetCommands(t *testing.T) {
	stdout, err := run(t, "dataset", "head", "--dataset", testDataset, "-n", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "southwest")
	assert.Contains(t, stdout, "16884.92")

	pq := filepath.Join(t.TempDir(), "insurance.parquet")
	stdout, err = run(t, "dataset", "convert", "--dataset", testDataset, "--out", pq)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 30 rows")

	csvOut := filepath.Join(t.TempDir(), "back.csv")
	_, err = run(t, "dataset", "convert", "--in", pq, "--out", csvOut)
	require.NoError(t, err)
	data, err := os.ReadFile(csvOut)
	require.NoError(t, err)
	assert.Contains(t, string(data), "19,female,27.9,0,yes,southwest,16884.924")

	_, err = run(t, "dataset", "convert", "--dataset", testDataset)
	assert.Equal(t, exitUsage, exitCode(err))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitSuccess},
		{"usage", newUsageError(errors.New("bad flag")), exitUsage},
		{"unknown command", errors.New(`unknown command "fly" for "medcost"`), exitUsage},
		{"missing fields", errors.NewMissingFieldsError([]string{"sex"}), exitValidation},
		{"validation", errors.NewValidationError("age", "must be between 0 and 120", 130), exitValidation},
		{"io", errors.NewIOError("open", "model.json", os.ErrNotExist), exitModelIO},
		{"not fitted", errors.NewNotFittedError("LinearRegression", "Load"), exitModelIO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestBadFlagIsUsageError(t *testing.T) {
	_, err := run(t, "predict", "--no-such-flag")
	assert.Equal(t, exitUsage, exitCode(err))

	_, err = run(t, "serve", "extra-arg")
	assert.Equal(t, exitUsage, exitCode(err))

	_, err = run(t, "predict", "--log-format", "xml")
	assert.Equal(t, exitUsage, exitCode(err))
}
