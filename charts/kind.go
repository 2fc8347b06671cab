package charts

import (
	"github.com/YuminosukeSato/medcost/pkg/errors"
)

// Kind identifies one of the fixed exploration charts.
type Kind int

const (
	ChargesHistogram Kind = iota
	ChargesByRegion
	BMIVsCharges
	ChargesBySmoker
	CorrelationHeatmap
)

var kindSlugs = [...]string{
	ChargesHistogram:   "charges-histogram",
	ChargesByRegion:    "charges-by-region",
	BMIVsCharges:       "bmi-vs-charges",
	ChargesBySmoker:    "charges-by-smoker",
	CorrelationHeatmap: "correlation",
}

var kindTitles = [...]string{
	ChargesHistogram:   "Distribution of insurance charges",
	ChargesByRegion:    "Charges by region",
	BMIVsCharges:       "BMI vs charges",
	ChargesBySmoker:    "Charges by smoking status",
	CorrelationHeatmap: "Correlation between features",
}

// Kinds returns every chart in display order.
func Kinds() []Kind {
	return []Kind{ChargesHistogram, ChargesByRegion, BMIVsCharges, ChargesBySmoker, CorrelationHeatmap}
}

// String is the URL and file name slug of the chart.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindSlugs) {
		return "unknown"
	}
	return kindSlugs[k]
}

// Title is the human readable chart title.
func (k Kind) Title() string {
	if k < 0 || int(k) >= len(kindTitles) {
		return ""
	}
	return kindTitles[k]
}

// ParseKind maps a slug back to its Kind.
func ParseKind(s string) (Kind, error) {
	for i, slug := range kindSlugs {
		if slug == s {
			return Kind(i), nil
		}
	}
	return 0, errors.NewValidationError("kind", "unknown chart", s)
}
