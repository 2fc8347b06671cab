package insurance

import (
	"math"

	"github.com/YuminosukeSato/medcost/pkg/errors"
)

// NumFeatures は特徴量ベクトルの長さ
const NumFeatures = 6

// 特徴量の位置
const (
	AgeIndex = iota
	SexIndex
	BMIIndex
	ChildrenIndex
	SmokerIndex
	RegionIndex
)

// 入力値の許容範囲
const (
	MinAge      = 0
	MaxAge      = 120
	MinChildren = 0
	MaxChildren = 10
)

var featureNames = [NumFeatures]string{"age", "sex", "bmi", "children", "smoker", "region"}

// FeatureNames は学習時と同じ特徴量の順序を返す
func FeatureNames() []string {
	out := make([]string, NumFeatures)
	copy(out, featureNames[:])
	return out
}

// RawInput はフォームやAPIから受け取った未検証の入力
// 数値フィールドは nil、カテゴリは各型のゼロ値が「未設定」を表す。
type RawInput struct {
	Age      *int
	BMI      *float64
	Children *int
	Sex      Sex
	Smoker   Smoker
	Region   Region
}

// FeatureVector はモデルに渡す順序付きの6要素ベクトル
// [age, sex, bmi, children, smoker, region]
type FeatureVector [NumFeatures]float64

// Slice はベクトルのコピーをスライスとして返す
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, NumFeatures)
	copy(out, v[:])
	return out
}

// Encode は RawInput を FeatureVector に変換する
//
// 未設定のフィールドはすべて集めてから一度に *errors.MissingFieldsError として返す。
// 値はあるが範囲外のものは *errors.ValidationError になる。
// 純粋関数であり、同じ入力には常に同じ結果を返す。
func Encode(raw RawInput) (FeatureVector, error) {
	var v FeatureVector
	var missing []string

	if raw.Age == nil {
		missing = append(missing, featureNames[AgeIndex])
	}
	sex, okSex := raw.Sex.code()
	if !okSex {
		missing = append(missing, featureNames[SexIndex])
	}
	if raw.BMI == nil {
		missing = append(missing, featureNames[BMIIndex])
	}
	if raw.Children == nil {
		missing = append(missing, featureNames[ChildrenIndex])
	}
	smoker, okSmoker := raw.Smoker.code()
	if !okSmoker {
		missing = append(missing, featureNames[SmokerIndex])
	}
	region, okRegion := raw.Region.code()
	if !okRegion {
		missing = append(missing, featureNames[RegionIndex])
	}

	// 範囲外のカテゴリ値（未定義の定数）は未設定ではなく不正値として扱う
	if raw.Sex != SexUnset && !okSex {
		return v, errors.NewValidationError("sex", "unknown category", int(raw.Sex))
	}
	if raw.Smoker != SmokerUnset && !okSmoker {
		return v, errors.NewValidationError("smoker", "unknown category", int(raw.Smoker))
	}
	if raw.Region != RegionUnset && !okRegion {
		return v, errors.NewValidationError("region", "unknown category", int(raw.Region))
	}

	if len(missing) > 0 {
		return v, errors.NewMissingFieldsError(missing)
	}

	if *raw.Age < MinAge || *raw.Age > MaxAge {
		return v, errors.NewValidationError("age", "must be between 0 and 120", *raw.Age)
	}
	if *raw.Children < MinChildren || *raw.Children > MaxChildren {
		return v, errors.NewValidationError("children", "must be between 0 and 10", *raw.Children)
	}
	if bmi := *raw.BMI; math.IsNaN(bmi) || math.IsInf(bmi, 0) || bmi < 0 {
		return v, errors.NewValidationError("bmi", "must be a finite non-negative number", bmi)
	}

	v[AgeIndex] = float64(*raw.Age)
	v[SexIndex] = sex
	v[BMIIndex] = *raw.BMI
	v[ChildrenIndex] = float64(*raw.Children)
	v[SmokerIndex] = smoker
	v[RegionIndex] = region
	return v, nil
}

// Int と Float は RawInput の数値フィールドを組み立てるための補助
func Int(v int) *int { return &v }

func Float(v float64) *float64 { return &v }
