// Copyright (c) 2026 Staffdir. All rights reserved.
// Author: n.wieland@mailbox.org

package namematch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nwieland/staffdir/internal/namematch"
)

/*
TestNormalizeSingleName verifies trimming, lowercasing, repetition collapsing
and umlaut folding on whole name fields.
*/
func TestNormalizeSingleName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"repeated_consonant", "Schmitt", "schmit"},
		{"collapse_before_fold", "Ätheer", "aether"},
		{"surrounding_space", " Tür ", "tuer"},
		{"umlaut_with_repeat", "Müller", "mueler"},
		{"sharp_s", "Straße", "strasse"},
		{"accents", "André", "andre"},
		{"unmapped_passthrough", "O'Brien", "o'brien"},
		{"empty", "", ""},
		{"whitespace_only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, namematch.NormalizeSingleName(tt.input))
		})
	}
}

/*
TestNormalize verifies compound-name tokenization: separator handling, the
single-character discard, and the two-longest-tokens bound.
*/
func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"hyphenated", "Karl-Heinz", []string{"karl", "heinz"}},
		{"hyphen_and_space", "Karl- Heinz", []string{"karl", "heinz"}},
		{"spaced_hyphen", "Karl - Heinz", []string{"karl", "heinz"}},
		{"title_dot", "Dr. Wegner", []string{"dr", "wegner"}},
		{"double_umlaut_name", "Müller-Wagner", []string{"mueler", "wagner"}},
		{"three_parts_keep_two_longest", "Müller-Wagner-Schmidt", []string{"schmidt", "mueler"}},
		{"four_parts_keep_two_longest", "Ein Zwei Li Vierer", []string{"vierer", "zwei"}},
		{"single_char_discarded", "X Meyer", []string{"meyer"}},
		{"empty", "", nil},
		{"punctuation_only", "- , .", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeOrNil(tt.input))
		})
	}
}

/*
TestNormalize_TokenBound checks that no input ever yields more than two tokens.
*/
func TestNormalize_TokenBound(t *testing.T) {
	inputs := []string{
		"a b c d e f",
		"Hans Peter Müller-Schmidt",
		"von der Tann zu Hohenlohe",
		"one2 three4 five6 seven8",
	}

	for _, input := range inputs {
		assert.LessOrEqual(t, len(namematch.Normalize(input)), 2, "input %q", input)
	}
}

/*
TestNormalize_Idempotent checks that already-normalized tokens are fixed
points of the normalization pipeline.
*/
func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Müller", "Schmitt", "Karl-Heinz", "Straße", "Boëck"}

	for _, input := range inputs {
		for _, token := range namematch.Normalize(input) {
			assert.Equal(t, token, namematch.NormalizeSingleName(token), "token %q of %q", token, input)

			again := namematch.Normalize(token)
			assert.Equal(t, []string{token}, again, "token %q of %q", token, input)
		}
	}
}

// normalizeOrNil maps an empty token list to nil for table comparison.
func normalizeOrNil(input string) []string {
	tokens := namematch.Normalize(input)
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}
