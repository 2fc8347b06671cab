package dataset

import (
	"github.com/YuminosukeSato/medcost/insurance"
)

// Column names of the reference dataset, in file order.
const (
	ColAge      = "age"
	ColSex      = "sex"
	ColBMI      = "bmi"
	ColChildren = "children"
	ColSmoker   = "smoker"
	ColRegion   = "region"
	ColCharges  = "charges"
)

// Columns lists every column in the order the dataset is published.
var Columns = []string{ColAge, ColSex, ColBMI, ColChildren, ColSmoker, ColRegion, ColCharges}

// Record is one row of the reference dataset. The parquet tags define the
// schema used by WriteParquet and expected by the parquet reader.
type Record struct {
	Age      int64   `parquet:"age" json:"age"`
	Sex      string  `parquet:"sex" json:"sex"`
	BMI      float64 `parquet:"bmi" json:"bmi"`
	Children int64   `parquet:"children" json:"children"`
	Smoker   string  `parquet:"smoker" json:"smoker"`
	Region   string  `parquet:"region" json:"region"`
	Charges  float64 `parquet:"charges" json:"charges"`
}

// Features encodes the record's attributes with the same ordinal scheme used
// at prediction time.
func (r Record) Features() (insurance.FeatureVector, error) {
	raw, err := r.rawInput()
	if err != nil {
		return insurance.FeatureVector{}, err
	}
	return insurance.Encode(raw)
}

func (r Record) rawInput() (insurance.RawInput, error) {
	sex, err := insurance.ParseSex(r.Sex)
	if err != nil {
		return insurance.RawInput{}, err
	}
	smoker, err := insurance.ParseSmoker(r.Smoker)
	if err != nil {
		return insurance.RawInput{}, err
	}
	region, err := insurance.ParseRegion(r.Region)
	if err != nil {
		return insurance.RawInput{}, err
	}
	return insurance.RawInput{
		Age:      insurance.Int(int(r.Age)),
		BMI:      insurance.Float(r.BMI),
		Children: insurance.Int(int(r.Children)),
		Sex:      sex,
		Smoker:   smoker,
		Region:   region,
	}, nil
}
