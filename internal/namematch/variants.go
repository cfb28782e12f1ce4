// Copyright (c) 2026 Staffdir. All rights reserved.
// Author: n.wieland@mailbox.org

package namematch

import "sort"

// Key identifies which variant of a name an index entry holds.
//
// The stored values are deliberately short — the index table carries one row
// per variant per token, so the key column is hot.
type Key string

const (
	// KeySurnameLowercase is the whole normalized surname ("schmit").
	KeySurnameLowercase Key = "LS"
	// KeySurnameReduced is a simple-phonetic surname token ("smit").
	KeySurnameReduced Key = "NS"
	// KeySurnamePhonetic is a Double Metaphone surname token code ("XMT").
	KeySurnamePhonetic Key = "PS"
	// KeyGivenNameLowercase is the whole normalized given name.
	KeyGivenNameLowercase Key = "LG"
	// KeyGivenNameReduced is a simple-phonetic given-name token.
	KeyGivenNameReduced Key = "NG"
	// KeyGivenNamePhonetic is a Double Metaphone given-name token code.
	KeyGivenNamePhonetic Key = "PG"
)

// Entry is one denormalized row of the name index.
//
// The triple (OwnerID, Key, Value) is unique; [VariantBuilder.BuildVariants]
// deduplicates before returning.
type Entry struct {
	OwnerID int64
	Key     Key
	Value   string
}

// VariantBuilder computes the full denormalized index entry set for a person.
type VariantBuilder struct {
	encoder Encoder
}

// NewVariantBuilder constructs a [VariantBuilder] around the given phonetic
// encoder.
func NewVariantBuilder(encoder Encoder) *VariantBuilder {
	return &VariantBuilder{encoder: encoder}
}

// BuildVariants returns every index entry for the owner's surname and given
// name:
//
//   - one lowercase entry per name field, holding the whole normalized field
//     (not tokenized), and
//   - one reduced-phonetic plus one full-phonetic entry per name token.
//
// A name field that normalizes to no tokens produces no entries at all, so
// absent names are never indexed. The result is deduplicated by (key, value)
// and sorted for deterministic output.
//
// The function is pure: it performs no I/O.
func (builder *VariantBuilder) BuildVariants(ownerID int64, surname, givenName string) []Entry {
	type keyValue struct {
		key   Key
		value string
	}
	seen := make(map[keyValue]struct{})

	add := func(key Key, value string) {
		seen[keyValue{key, value}] = struct{}{}
	}

	if tokens := Normalize(surname); len(tokens) > 0 {
		add(KeySurnameLowercase, NormalizeSingleName(surname))
		for _, token := range tokens {
			add(KeySurnameReduced, ReduceSimplePhonetic(token))
			add(KeySurnamePhonetic, builder.encoder.Encode(token))
		}
	}

	if tokens := Normalize(givenName); len(tokens) > 0 {
		add(KeyGivenNameLowercase, NormalizeSingleName(givenName))
		for _, token := range tokens {
			add(KeyGivenNameReduced, ReduceSimplePhonetic(token))
			add(KeyGivenNamePhonetic, builder.encoder.Encode(token))
		}
	}

	entries := make([]Entry, 0, len(seen))
	for kv := range seen {
		entries = append(entries, Entry{OwnerID: ownerID, Key: kv.key, Value: kv.value})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Key != entries[j].Key {
			return entries[i].Key < entries[j].Key
		}
		return entries[i].Value < entries[j].Value
	})

	return entries
}
