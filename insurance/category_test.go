package insurance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/medcost/pkg/errors"
)

func TestParseSex(t *testing.T) {
	tests := []struct {
		in   string
		want Sex
	}{
		{"female", Female},
		{"MALE", Male},
		{" Perempuan ", Female},
		{"Laki-laki", Male},
		{"", SexUnset},
		{SexPlaceholder, SexUnset},
	}
	for _, tt := range tests {
		got, err := ParseSex(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseSex("other")
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestParseSmoker(t *testing.T) {
	tests := []struct {
		in   string
		want Smoker
	}{
		{"no", NonSmoker},
		{"Yes", CurrentSmoker},
		{"Tidak Merokok", NonSmoker},
		{"Merokok", CurrentSmoker},
		{SmokerPlaceholder, SmokerUnset},
	}
	for _, tt := range tests {
		got, err := ParseSmoker(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseSmoker("sometimes")
	assert.Error(t, err)
}

func TestParseRegion(t *testing.T) {
	for _, r := range Regions() {
		got, err := ParseRegion(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	got, err := ParseRegion("Southwest")
	require.NoError(t, err)
	assert.Equal(t, Southwest, got)

	got, err = ParseRegion(RegionPlaceholder)
	require.NoError(t, err)
	assert.Equal(t, RegionUnset, got)

	_, err = ParseRegion("midwest")
	assert.Error(t, err)
}

func TestCategoryStrings(t *testing.T) {
	assert.Equal(t, "", SexUnset.String())
	assert.Equal(t, "male", Male.String())
	assert.Equal(t, "yes", CurrentSmoker.String())
	assert.Equal(t, "southeast", Southeast.String())
}
