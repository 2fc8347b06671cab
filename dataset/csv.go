package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/medcost/pkg/errors"
)

// readCSV parses a header-led CSV file. Column order is free; every column in
// Columns must be present. Extra columns are ignored.
func readCSV(r io.Reader, path string) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewValidationError("header", "empty file", path)
	}
	if err != nil {
		return nil, errors.NewIOError("read", path, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			return nil, errors.NewValidationError("header", "missing column "+col, header)
		}
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, errors.NewValidationError("row "+strconv.Itoa(line), parseErr.Err.Error(), path)
			}
			return nil, errors.NewIOError("read", path, err)
		}

		rec, err := parseRow(row, index, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string, index map[string]int, line int) (Record, error) {
	field := func(col string) string {
		return strings.TrimSpace(row[index[col]])
	}
	param := func(col string) string {
		return "row " + strconv.Itoa(line) + " " + col
	}

	var rec Record
	var err error
	if rec.Age, err = strconv.ParseInt(field(ColAge), 10, 64); err != nil {
		return Record{}, errors.NewValidationError(param(ColAge), "not an integer", field(ColAge))
	}
	if rec.BMI, err = strconv.ParseFloat(field(ColBMI), 64); err != nil {
		return Record{}, errors.NewValidationError(param(ColBMI), "not a number", field(ColBMI))
	}
	if rec.Children, err = strconv.ParseInt(field(ColChildren), 10, 64); err != nil {
		return Record{}, errors.NewValidationError(param(ColChildren), "not an integer", field(ColChildren))
	}
	if rec.Charges, err = strconv.ParseFloat(field(ColCharges), 64); err != nil {
		return Record{}, errors.NewValidationError(param(ColCharges), "not a number", field(ColCharges))
	}
	rec.Sex = field(ColSex)
	rec.Smoker = field(ColSmoker)
	rec.Region = field(ColRegion)
	return rec, nil
}

// WriteCSV writes records with a header row in Columns order.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range records {
		err := cw.Write([]string{
			strconv.FormatInt(r.Age, 10),
			r.Sex,
			strconv.FormatFloat(r.BMI, 'f', -1, 64),
			strconv.FormatInt(r.Children, 10),
			r.Smoker,
			r.Region,
			strconv.FormatFloat(r.Charges, 'f', -1, 64),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
