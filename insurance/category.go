package insurance

import (
	"strings"

	"github.com/YuminosukeSato/medcost/pkg/errors"
)

// Sex は被保険者の性別。ゼロ値 SexUnset は「未選択」を表す
type Sex int

const (
	SexUnset Sex = iota
	Female
	Male
)

// Smoker は喫煙状況。ゼロ値 SmokerUnset は「未選択」を表す
type Smoker int

const (
	SmokerUnset Smoker = iota
	NonSmoker
	CurrentSmoker
)

// Region は居住地域。ゼロ値 RegionUnset は「未選択」を表す
type Region int

const (
	RegionUnset Region = iota
	Northeast
	Northwest
	Southeast
	Southwest
)

func (s Sex) String() string {
	switch s {
	case Female:
		return "female"
	case Male:
		return "male"
	default:
		return ""
	}
}

// code は学習時の順序エンコーディング（female=0, male=1）
func (s Sex) code() (float64, bool) {
	switch s {
	case Female:
		return 0, true
	case Male:
		return 1, true
	default:
		return 0, false
	}
}

func (s Smoker) String() string {
	switch s {
	case NonSmoker:
		return "no"
	case CurrentSmoker:
		return "yes"
	default:
		return ""
	}
}

// code: no=0, yes=1
func (s Smoker) code() (float64, bool) {
	switch s {
	case NonSmoker:
		return 0, true
	case CurrentSmoker:
		return 1, true
	default:
		return 0, false
	}
}

func (r Region) String() string {
	switch r {
	case Northeast:
		return "northeast"
	case Northwest:
		return "northwest"
	case Southeast:
		return "southeast"
	case Southwest:
		return "southwest"
	default:
		return ""
	}
}

// code: northeast=0, northwest=1, southeast=2, southwest=3
func (r Region) code() (float64, bool) {
	switch r {
	case Northeast, Northwest, Southeast, Southwest:
		return float64(r - Northeast), true
	default:
		return 0, false
	}
}

// Regions は選択肢として表示する順序で全地域を返す
func Regions() []Region {
	return []Region{Northeast, Northwest, Southeast, Southwest}
}

// 選択欄の初期表示。これが送られてきた場合は未選択として扱う
const (
	SexPlaceholder    = "Silahkan pilih jenis kelamin"
	SmokerPlaceholder = "Silahkan pilih status merokok"
	RegionPlaceholder = "Silahkan pilih wilayah"
)

var (
	sexLabels = map[string]Sex{
		"female":    Female,
		"f":         Female,
		"perempuan": Female,
		"male":      Male,
		"m":         Male,
		"laki-laki": Male,
	}
	smokerLabels = map[string]Smoker{
		"no":            NonSmoker,
		"false":         NonSmoker,
		"tidak merokok": NonSmoker,
		"yes":           CurrentSmoker,
		"true":          CurrentSmoker,
		"merokok":       CurrentSmoker,
	}
	regionLabels = map[string]Region{
		"northeast": Northeast,
		"northwest": Northwest,
		"southeast": Southeast,
		"southwest": Southwest,
	}
)

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseSex はラベルを Sex に変換する
// 空文字列とプレースホルダーは SexUnset になり、エラーにはならない。
// 未知のラベルは *errors.ValidationError を返す。
func ParseSex(label string) (Sex, error) {
	key := normalizeLabel(label)
	if key == "" || key == normalizeLabel(SexPlaceholder) {
		return SexUnset, nil
	}
	if v, ok := sexLabels[key]; ok {
		return v, nil
	}
	return SexUnset, errors.NewValidationError("sex", "unknown label", label)
}

// ParseSmoker はラベルを Smoker に変換する
func ParseSmoker(label string) (Smoker, error) {
	key := normalizeLabel(label)
	if key == "" || key == normalizeLabel(SmokerPlaceholder) {
		return SmokerUnset, nil
	}
	if v, ok := smokerLabels[key]; ok {
		return v, nil
	}
	return SmokerUnset, errors.NewValidationError("smoker", "unknown label", label)
}

// ParseRegion はラベルを Region に変換する
func ParseRegion(label string) (Region, error) {
	key := normalizeLabel(label)
	if key == "" || key == normalizeLabel(RegionPlaceholder) {
		return RegionUnset, nil
	}
	if v, ok := regionLabels[key]; ok {
		return v, nil
	}
	return RegionUnset, errors.NewValidationError("region", "unknown label", label)
}
