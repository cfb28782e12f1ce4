// Copyright (c) 2026 Staffdir. All rights reserved.
// Author: n.wieland@mailbox.org

package namematch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwieland/staffdir/internal/namematch"
)

/*
TestBuildVariants_SurnameOnly verifies that a single-token surname produces
exactly one entry per variant layer and nothing for the absent given name.
*/
func TestBuildVariants_SurnameOnly(t *testing.T) {
	builder := namematch.NewVariantBuilder(namematch.MetaphoneEncoder{})

	entries := builder.BuildVariants(1, "Schmitt", "")

	expected := []namematch.Entry{
		{OwnerID: 1, Key: namematch.KeySurnameLowercase, Value: "schmit"},
		{OwnerID: 1, Key: namematch.KeySurnameReduced, Value: "smit"},
		{OwnerID: 1, Key: namematch.KeySurnamePhonetic, Value: "XMT"},
	}
	assert.Equal(t, expected, entries)
}

/*
TestBuildVariants_CompoundSurname verifies per-token reduced and phonetic
entries alongside the single whole-field lowercase entry.
*/
func TestBuildVariants_CompoundSurname(t *testing.T) {
	builder := namematch.NewVariantBuilder(namematch.MetaphoneEncoder{})

	entries := builder.BuildVariants(7, "Müller-Wagner", "Karl")

	expected := []namematch.Entry{
		{OwnerID: 7, Key: namematch.KeyGivenNameLowercase, Value: "karl"},
		{OwnerID: 7, Key: namematch.KeySurnameLowercase, Value: "mueler-wagner"},
		{OwnerID: 7, Key: namematch.KeyGivenNameReduced, Value: "karl"},
		{OwnerID: 7, Key: namematch.KeySurnameReduced, Value: "mueler"},
		{OwnerID: 7, Key: namematch.KeySurnameReduced, Value: "wagner"},
		{OwnerID: 7, Key: namematch.KeyGivenNamePhonetic, Value: "KRL"},
		{OwnerID: 7, Key: namematch.KeySurnamePhonetic, Value: "AKNR"},
		{OwnerID: 7, Key: namematch.KeySurnamePhonetic, Value: "MLR"},
	}
	assert.Equal(t, expected, entries)
}

/*
TestBuildVariants_Dedup checks that tokens collapsing onto the same variant
value yield a single entry per (key, value) pair.
*/
func TestBuildVariants_Dedup(t *testing.T) {
	builder := namematch.NewVariantBuilder(namematch.MetaphoneEncoder{})

	// Both tokens reduce to "meir" and encode to the same phonetic code.
	entries := builder.BuildVariants(3, "Maier-Mayr", "")

	require.Len(t, entries, 3)
	assert.Equal(t, namematch.KeySurnameLowercase, entries[0].Key)
	assert.Equal(t, "maier-mayr", entries[0].Value)
	assert.Equal(t, namematch.KeySurnameReduced, entries[1].Key)
	assert.Equal(t, "meir", entries[1].Value)
	assert.Equal(t, namematch.KeySurnamePhonetic, entries[2].Key)
}

/*
TestBuildVariants_SameValueDifferentField checks that identical values under
surname and given name keep separate entries, keyed apart.
*/
func TestBuildVariants_SameValueDifferentField(t *testing.T) {
	builder := namematch.NewVariantBuilder(namematch.MetaphoneEncoder{})

	entries := builder.BuildVariants(5, "Heinz", "Heinz")

	require.Len(t, entries, 6)
	keys := make([]namematch.Key, 0, len(entries))
	for _, entry := range entries {
		keys = append(keys, entry.Key)
	}
	assert.Equal(t, []namematch.Key{
		namematch.KeyGivenNameLowercase,
		namematch.KeySurnameLowercase,
		namematch.KeyGivenNameReduced,
		namematch.KeySurnameReduced,
		namematch.KeyGivenNamePhonetic,
		namematch.KeySurnamePhonetic,
	}, keys)
}

/*
TestBuildVariants_Empty checks that blank or degenerate name fields are
skipped entirely instead of producing empty index values.
*/
func TestBuildVariants_Empty(t *testing.T) {
	builder := namematch.NewVariantBuilder(namematch.MetaphoneEncoder{})

	assert.Empty(t, builder.BuildVariants(1, "", ""))
	assert.Empty(t, builder.BuildVariants(1, "  ", "-"))
	assert.Empty(t, builder.BuildVariants(1, "X", "Y"))
}
