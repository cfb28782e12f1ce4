// Copyright (c) 2026 Staffdir. All rights reserved.
// Author: n.wieland@mailbox.org

package namematch_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwieland/staffdir/internal/namematch"
)

func parseFilter(t *testing.T, input string) *namematch.PersonFilter {
	t.Helper()
	return namematch.ParsePersonFilter(input, false, namematch.MetaphoneEncoder{})
}

/*
TestParsePersonFilter_WeakNames verifies reduced, wildcard-suffixed weak
names from unquoted text, including numeric-noise rejection.
*/
func TestParsePersonFilter_WeakNames(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"whitespace", "   ", nil},
		{"numeric_only", " 12", nil},
		{"numeric_noise", " 12 13 1X ", nil},
		{"short_token", "Li", []string{"li%"}},
		{"umlaut_surname", "Müller", []string{"mueler%"}},
		{"trailing_digit", " Müller 1", []string{"mueler%"}},
		{"digit_glued_tokens", " Müller X1 1X ", []string{"mueler%"}},
		{"compound_surname", "Müller-Wagner", []string{"mueler%", "wagner%"}},
		{"compound_reversed", "Wagner-Müller", []string{"wagner%", "mueler%"}},
		{"reduced_variant", "Schmidt", []string{"smit%"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := parseFilter(t, tt.input)
			assert.Equal(t, tt.expected, filter.WeakNames)
			assert.Empty(t, filter.ExactNames)
			assert.Nil(t, filter.DateOfBirth)
			assert.Equal(t, tt.expected != nil, filter.HasNames())
		})
	}
}

/*
TestParsePersonFilter_ExactNames verifies that quoted spans are extracted
verbatim and removed from weak-name tokenization.
*/
func TestParsePersonFilter_ExactNames(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedExact []string
		expectedWeak  []string
	}{
		{"single_quoted", `"Li"`, []string{"Li"}, nil},
		{"case_preserved", `"Müller"`, []string{"Müller"}, nil},
		{"quoted_with_noise", ` "Müller" X1 1X `, []string{"Müller"}, nil},
		{"quoted_and_weak", `"Müller" Wagner`, []string{"Müller"}, []string{"wagner%"}},
		{"two_quoted", `"Maier" "Karl"`, []string{"Maier", "Karl"}, nil},
		{"empty_quotes_ignored", `"" Wagner`, nil, []string{"wagner%"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := parseFilter(t, tt.input)
			assert.Equal(t, tt.expectedExact, filter.ExactNames)
			assert.Equal(t, tt.expectedWeak, filter.WeakNames)
			assert.Equal(t, tt.expectedExact != nil, filter.HasExactNames())
		})
	}
}

/*
TestParsePersonFilter_DateOfBirth verifies date extraction with both
separators, optional leading zeros, and calendar validation.
*/
func TestParsePersonFilter_DateOfBirth(t *testing.T) {
	date := func(year int, month time.Month, day int) *time.Time {
		d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		return &d
	}

	tests := []struct {
		name     string
		input    string
		expected *time.Time
	}{
		{"dotted", "31.12.1975", date(1975, time.December, 31)},
		{"dotted_padded", " 31.12.1975 ", date(1975, time.December, 31)},
		{"single_digits", "1.1.1975", date(1975, time.January, 1)},
		{"leading_zeros", "01.01.1975", date(1975, time.January, 1)},
		{"slashes", "31/12/1975", date(1975, time.December, 31)},
		{"year_2000", "01.12.2000", date(2000, time.December, 1)},
		{"zero_day", "0.12.1975", nil},
		{"zero_month", "12.0.1975", nil},
		{"not_a_calendar_date", "31.02.1980", nil},
		{"two_digit_year", "31.12.75", nil},
		{"plain_number", "19751231", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := parseFilter(t, tt.input)
			if tt.expected == nil {
				assert.Nil(t, filter.DateOfBirth)
			} else {
				require.NotNil(t, filter.DateOfBirth)
				assert.True(t, tt.expected.Equal(*filter.DateOfBirth))
			}
			assert.Empty(t, filter.WeakNames)
		})
	}
}

/*
TestParsePersonFilter_Combined verifies inputs mixing names and a date, with
every separator style between them.
*/
func TestParsePersonFilter_Combined(t *testing.T) {
	expectedDate := time.Date(1975, time.December, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		input        string
		expectedWeak []string
	}{
		{"space_separated", "Müller 31.12.1975", []string{"mueler%"}},
		{"comma_separated", "Müller, 31.12.1975", []string{"mueler%"}},
		{"date_first", "31.12.1975 Müller", []string{"mueler%"}},
		{"compound_and_date", "Müller-Wagner 31.12.1975", []string{"mueler%", "wagner%"}},
		{"dash_separated", "Müller–31.12.1975", []string{"mueler%"}},
		{"umlaut_glued_to_date", "Müllerä31.12.1975", []string{"mueler%"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := parseFilter(t, tt.input)
			require.NotNil(t, filter.DateOfBirth)
			assert.True(t, expectedDate.Equal(*filter.DateOfBirth))
			assert.Equal(t, tt.expectedWeak, filter.WeakNames)
		})
	}
}

/*
TestParsePersonFilter_Phonetic verifies that phonetic mode encodes weak
names instead of reducing them, while exact names stay verbatim.
*/
func TestParsePersonFilter_Phonetic(t *testing.T) {
	filter := namematch.ParsePersonFilter(`Schmidt "Maier"`, true, namematch.MetaphoneEncoder{})

	assert.True(t, filter.Phonetic)
	assert.Equal(t, []string{"Maier"}, filter.ExactNames)
	assert.Equal(t, []string{"XMT%"}, filter.WeakNames)
}
