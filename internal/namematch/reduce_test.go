// Copyright (c) 2026 Staffdir. All rights reserved.
// Author: n.wieland@mailbox.org

package namematch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nwieland/staffdir/internal/namematch"
)

/*
TestReduceSimplePhonetic verifies that spelling variants of common German
surnames collapse onto a shared reduced form.
*/
func TestReduceSimplePhonetic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"boehm", "boem"},
		{"boehn", "boen"},
		{"boeck", "boek"},
		{"koehler", "koeler"},
		{"barth", "bart"},
		{"schmidt", "smit"},
		{"schmied", "smit"},
		{"schmits", "smitz"},
		{"mayr", "meir"},
		{"maier", "meir"},
		{"meier", "meir"},
		{"christ", "krist"},
		{"thiel", "til"},
		{"kuhn", "kun"},
		{"mahler", "maler"},
		{"heinz", "heinz"},
		{"richter", "richter"},
		{"wagner", "wagner"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, namematch.ReduceSimplePhonetic(tt.input))
		})
	}
}

/*
TestReduceSimplePhonetic_Idempotent checks that applying the reduction twice
yields the same result as applying it once.
*/
func TestReduceSimplePhonetic_Idempotent(t *testing.T) {
	inputs := []string{"schmidt", "boehm", "maier", "christ", "koehler", "barth"}

	for _, input := range inputs {
		once := namematch.ReduceSimplePhonetic(input)
		assert.Equal(t, once, namematch.ReduceSimplePhonetic(once), "input %q", input)
	}
}
