package insurance

import (
	"strconv"
	"strings"

	"github.com/YuminosukeSato/medcost/pkg/errors"
)

// Form は HTML フォーム・JSON・CLI フラグから届く文字列のままの入力
// 空文字列は未入力を表す。
type Form struct {
	Age      string `json:"age"`
	BMI      string `json:"bmi"`
	Children string `json:"children"`
	Sex      string `json:"sex"`
	Smoker   string `json:"smoker"`
	Region   string `json:"region"`
}

// RawInput はフォームの文字列を解釈して RawInput を作る
// 書式が壊れている値は *errors.ValidationError、空の値は未設定のまま残す
// （未設定の検出は Encode の役目）。
func (f Form) RawInput() (RawInput, error) {
	var raw RawInput
	var err error

	if raw.Age, err = parseInt("age", f.Age); err != nil {
		return RawInput{}, err
	}
	if raw.BMI, err = parseFloat("bmi", f.BMI); err != nil {
		return RawInput{}, err
	}
	if raw.Children, err = parseInt("children", f.Children); err != nil {
		return RawInput{}, err
	}
	if raw.Sex, err = ParseSex(f.Sex); err != nil {
		return RawInput{}, err
	}
	if raw.Smoker, err = ParseSmoker(f.Smoker); err != nil {
		return RawInput{}, err
	}
	if raw.Region, err = ParseRegion(f.Region); err != nil {
		return RawInput{}, err
	}
	return raw, nil
}

func parseInt(field, s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, errors.NewValidationError(field, "not an integer", s)
	}
	return &v, nil
}

func parseFloat(field, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.NewValidationError(field, "not a number", s)
	}
	return &v, nil
}
