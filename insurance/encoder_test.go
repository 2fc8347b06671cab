package insurance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/medcost/pkg/errors"
)

func completeInput() RawInput {
	return RawInput{
		Age:      Int(30),
		BMI:      Float(25.0),
		Children: Int(2),
		Sex:      Male,
		Smoker:   CurrentSmoker,
		Region:   Northeast,
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   RawInput
		want FeatureVector
	}{
		{
			name: "example",
			in:   completeInput(),
			want: FeatureVector{30, 1, 25.0, 2, 1, 0},
		},
		{
			name: "female non-smoker southwest",
			in: RawInput{
				Age: Int(19), BMI: Float(27.9), Children: Int(0),
				Sex: Female, Smoker: NonSmoker, Region: Southwest,
			},
			want: FeatureVector{19, 0, 27.9, 0, 0, 3},
		},
		{
			name: "northwest",
			in: RawInput{
				Age: Int(45), BMI: Float(30.5), Children: Int(1),
				Sex: Female, Smoker: CurrentSmoker, Region: Northwest,
			},
			want: FeatureVector{45, 0, 30.5, 1, 1, 1},
		},
		{
			name: "southeast",
			in: RawInput{
				Age: Int(62), BMI: Float(26.29), Children: Int(0),
				Sex: Male, Smoker: NonSmoker, Region: Southeast,
			},
			want: FeatureVector{62, 1, 26.29, 0, 0, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeBoundaries(t *testing.T) {
	for _, age := range []int{MinAge, MaxAge} {
		for _, children := range []int{MinChildren, MaxChildren} {
			in := completeInput()
			in.Age = Int(age)
			in.Children = Int(children)
			in.BMI = Float(0.0)

			got, err := Encode(in)
			require.NoError(t, err, "age=%d children=%d", age, children)
			assert.Equal(t, float64(age), got[AgeIndex])
			assert.Equal(t, float64(children), got[ChildrenIndex])
			assert.Equal(t, 0.0, got[BMIIndex])
		}
	}
}

func TestEncodeMissingFieldsAreAggregated(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawInput)
		want   []string
	}{
		{"sex unset", func(r *RawInput) { r.Sex = SexUnset }, []string{"sex"}},
		{"age nil", func(r *RawInput) { r.Age = nil }, []string{"age"}},
		{"bmi nil", func(r *RawInput) { r.BMI = nil }, []string{"bmi"}},
		{
			"sex and region unset",
			func(r *RawInput) { r.Sex = SexUnset; r.Region = RegionUnset },
			[]string{"sex", "region"},
		},
		{
			"all missing",
			func(r *RawInput) { *r = RawInput{} },
			[]string{"age", "sex", "bmi", "children", "smoker", "region"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := completeInput()
			tt.mutate(&in)

			got, err := Encode(in)
			var missing *errors.MissingFieldsError
			require.True(t, errors.As(err, &missing), "got %v", err)
			assert.Equal(t, tt.want, missing.Fields)
			assert.Equal(t, FeatureVector{}, got)
		})
	}
}

func TestEncodeRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawInput)
		param  string
	}{
		{"negative age", func(r *RawInput) { r.Age = Int(-1) }, "age"},
		{"age over max", func(r *RawInput) { r.Age = Int(121) }, "age"},
		{"too many children", func(r *RawInput) { r.Children = Int(11) }, "children"},
		{"negative bmi", func(r *RawInput) { r.BMI = Float(-0.1) }, "bmi"},
		{"nan bmi", func(r *RawInput) { r.BMI = Float(math.NaN()) }, "bmi"},
		{"unknown region code", func(r *RawInput) { r.Region = Region(9) }, "region"},
		{"unknown sex code", func(r *RawInput) { r.Sex = Sex(-2) }, "sex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := completeInput()
			tt.mutate(&in)

			_, err := Encode(in)
			var valErr *errors.ValidationError
			require.True(t, errors.As(err, &valErr), "got %v", err)
			assert.Equal(t, tt.param, valErr.ParamName)
		})
	}
}

func TestEncodeIsIdempotent(t *testing.T) {
	in := completeInput()
	first, err := Encode(in)
	require.NoError(t, err)
	second, err := Encode(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 30, *in.Age)
}

func TestFeatureNames(t *testing.T) {
	names := FeatureNames()
	assert.Equal(t, []string{"age", "sex", "bmi", "children", "smoker", "region"}, names)

	names[0] = "changed"
	assert.Equal(t, "age", FeatureNames()[0])
}

func TestFeatureVectorSlice(t *testing.T) {
	v := FeatureVector{1, 2, 3, 4, 5, 6}
	s := v.Slice()
	s[0] = 100
	assert.Equal(t, 1.0, v[0])
	assert.Len(t, s, NumFeatures)
}
