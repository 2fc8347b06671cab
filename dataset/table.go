// Package dataset loads the reference insurance dataset used for training and
// for the exploration pages, from CSV or Parquet.
package dataset

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/medcost/insurance"
	"github.com/YuminosukeSato/medcost/pkg/errors"
	"github.com/YuminosukeSato/medcost/pkg/log"
)

// Table is an in-memory, read-only copy of the dataset. All methods are safe
// for concurrent use.
type Table struct {
	path    string
	records []Record
}

// Format reports the on-disk format chosen for path: "csv" or "parquet".
func Format(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv", nil
	case ".parquet", ".pq":
		return "parquet", nil
	default:
		return "", errors.NewValidationError("path", "unsupported dataset extension", path)
	}
}

// Load reads the dataset at path. Every row is checked against the encoder so
// a Table never holds a record that cannot be encoded.
func Load(path string) (*Table, error) {
	logger := log.Named("dataset")
	start := time.Now()

	format, err := Format(path)
	if err != nil {
		return nil, err
	}

	var records []Record
	switch format {
	case "csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.NewIOError("open", path, err)
		}
		defer f.Close()
		records, err = readCSV(f, path)
		if err != nil {
			return nil, err
		}
	case "parquet":
		records, err = readParquet(path)
		if err != nil {
			return nil, err
		}
	}

	t, err := NewTable(records)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	t.path = path

	logger.Info("dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.DatasetPathKey, path,
		log.DataFormatKey, format,
		log.SamplesKey, len(records),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return t, nil
}

// NewTable builds a Table from records, validating every row. The slice is copied.
func NewTable(records []Record) (*Table, error) {
	if len(records) == 0 {
		return nil, errors.NewModelError("dataset.NewTable", "no rows", errors.ErrEmptyData)
	}
	for i, r := range records {
		if _, err := r.Features(); err != nil {
			// i+2: 1-based and after the header line
			return nil, errors.Wrapf(err, "row %d", i+2)
		}
	}
	return &Table{records: slices.Clone(records)}, nil
}

// Path is the file the table was loaded from, empty for in-memory tables.
func (t *Table) Path() string { return t.path }

// Len is the number of rows.
func (t *Table) Len() int { return len(t.records) }

// Records returns a copy of all rows.
func (t *Table) Records() []Record {
	return slices.Clone(t.records)
}

// Head returns up to the first n rows.
func (t *Table) Head(n int) []Record {
	if n < 0 {
		n = 0
	}
	if n > len(t.records) {
		n = len(t.records)
	}
	return slices.Clone(t.records[:n])
}

// Encode returns the n×6 design matrix in encoder order and the charges
// target as an n×1 column.
func (t *Table) Encode() (*mat.Dense, *mat.Dense) {
	n := len(t.records)
	X := mat.NewDense(n, insurance.NumFeatures, nil)
	y := mat.NewDense(n, 1, nil)
	for i, r := range t.records {
		// rows were validated by NewTable
		v, _ := r.Features()
		X.SetRow(i, v[:])
		y.Set(i, 0, r.Charges)
	}
	return X, y
}

// Charges returns the target column.
func (t *Table) Charges() []float64 {
	out := make([]float64, len(t.records))
	for i, r := range t.records {
		out[i] = r.Charges
	}
	return out
}

// Column returns a numeric view of the named column. Categorical columns are
// returned in their ordinal encoding.
func (t *Table) Column(name string) ([]float64, error) {
	if name == ColCharges {
		return t.Charges(), nil
	}
	idx := slices.Index(insurance.FeatureNames(), name)
	if idx < 0 {
		return nil, errors.NewValidationError("column", "unknown column", name)
	}
	out := make([]float64, len(t.records))
	for i, r := range t.records {
		v, _ := r.Features()
		out[i] = v[idx]
	}
	return out, nil
}

// Group is the charges of every row sharing one categorical value.
type Group struct {
	Key     string
	Charges []float64
}

// GroupCharges splits charges by a categorical column (sex, smoker or region).
// Groups are ordered by their ordinal code.
func (t *Table) GroupCharges(by string) ([]Group, error) {
	var keys []string
	switch by {
	case ColSex:
		keys = []string{insurance.Female.String(), insurance.Male.String()}
	case ColSmoker:
		keys = []string{insurance.NonSmoker.String(), insurance.CurrentSmoker.String()}
	case ColRegion:
		for _, r := range insurance.Regions() {
			keys = append(keys, r.String())
		}
	default:
		return nil, errors.NewValidationError("by", "not a categorical column", by)
	}

	values, err := t.Column(by)
	if err != nil {
		return nil, err
	}
	groups := make([]Group, len(keys))
	for i, k := range keys {
		groups[i].Key = k
	}
	for i, code := range values {
		g := &groups[int(code)]
		g.Charges = append(g.Charges, t.records[i].Charges)
	}
	return groups, nil
}

// Correlation is a labelled Pearson correlation matrix.
type Correlation struct {
	Labels []string
	Matrix *mat.SymDense
}

// Correlation computes the Pearson correlation between the six encoded
// features and charges.
func (t *Table) Correlation() Correlation {
	X, y := t.Encode()
	n, c := X.Dims()

	data := mat.NewDense(n, c+1, nil)
	data.Slice(0, n, 0, c).(*mat.Dense).Copy(X)
	data.Slice(0, n, c, c+1).(*mat.Dense).Copy(y)

	corr := mat.NewSymDense(c+1, nil)
	stat.CorrelationMatrix(corr, data, nil)

	labels := append(insurance.FeatureNames(), ColCharges)
	return Correlation{
		Labels: labels,
		Matrix: corr,
	}
}
