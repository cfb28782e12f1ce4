package employee_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwieland/staffdir/internal/core/employee"
	"github.com/nwieland/staffdir/internal/namematch"
	"github.com/nwieland/staffdir/internal/platform/apperr"
)

/*
TestParseSearchMode checks the closed mode set, the default, and rejection
of unknown values.
*/
func TestParseSearchMode(t *testing.T) {
	valid := []string{
		"EXACT", "PREFIX", "LOWERCASE", "PREFIX_LOWERCASE",
		"REDUCED", "PREFIX_REDUCED", "PHONETIC",
	}
	for _, raw := range valid {
		mode, err := employee.ParseSearchMode(raw)
		require.NoError(t, err, "mode %q", raw)
		assert.Equal(t, employee.SearchMode(raw), mode)
	}

	mode, err := employee.ParseSearchMode("")
	require.NoError(t, err)
	assert.Equal(t, employee.SearchModePrefixLowercase, mode)

	_, err = employee.ParseSearchMode("FUZZY")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestBuildQueryValue verifies the mode → (key, value) translation, in
particular that query input passes through the same layers as the indexed
variants and that PHONETIC never gets a wildcard.
*/
func TestBuildQueryValue(t *testing.T) {
	encoder := namematch.MetaphoneEncoder{}

	tests := []struct {
		name          string
		raw           string
		mode          employee.SearchMode
		expectedKey   *namematch.Key
		expectedValue string
	}{
		{"exact_verbatim", "Müller", employee.SearchModeExact, nil, "Müller"},
		{"prefix_verbatim", "Müller", employee.SearchModePrefix, nil, "Müller%"},
		{"lowercase", "Müller", employee.SearchModeLowercase, key(namematch.KeySurnameLowercase), "mueler"},
		{"prefix_lowercase", "Müller", employee.SearchModePrefixLowercase, key(namematch.KeySurnameLowercase), "mueler%"},
		{"reduced_unchanged_token", "Heinz", employee.SearchModeReduced, key(namematch.KeySurnameReduced), "heinz"},
		{"reduced_folded", "Schmidt", employee.SearchModeReduced, key(namematch.KeySurnameReduced), "smit"},
		{"prefix_reduced", "Schmidt", employee.SearchModePrefixReduced, key(namematch.KeySurnameReduced), "smit%"},
		{"phonetic_no_wildcard", "Schmitt", employee.SearchModePhonetic, key(namematch.KeySurnamePhonetic), "XMT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := employee.BuildQueryValue(tt.raw, tt.mode, encoder)

			if tt.expectedKey == nil {
				assert.Nil(t, result.Key)
			} else {
				require.NotNil(t, result.Key)
				assert.Equal(t, *tt.expectedKey, *result.Key)
			}
			assert.Equal(t, tt.expectedValue, result.Value)
		})
	}
}

func key(k namematch.Key) *namematch.Key {
	return &k
}
