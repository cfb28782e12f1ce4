// Copyright (c) 2026 Staffdir. All rights reserved.
// Author: n.wieland@mailbox.org

/*
Package namematch implements the German-locale name matching engine behind
the employee search.

It has three layers, cheapest first:

  - Normalization: case folding, umlaut/diacritic replacement, and
    compound-name tokenization ("Müller-Wagner" → "mueler", "wagner").
  - Simple phonetic reduction: a fixed, ordered table of German substitution
    rules that folds common spelling variants of the same pronunciation
    ("schmidt", "schmied" → "smit").
  - Full phonetic encoding: Double Metaphone, consumed through the [Encoder]
    interface so the algorithm stays replaceable and mockable.

On the write path, [VariantBuilder.BuildVariants] turns an employee's surname
and given name into the denormalized (owner, key, value) rows of the name
index. On the read path, [ParsePersonFilter] turns free-text user input into
typed search terms against the same keys.

Everything in this package is pure computation; persistence of the produced
entries is the employee store's responsibility.
*/
package namematch

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// umlautReplacements maps German umlauts and common Romance diacritics to
// their ASCII search forms. Unmapped runes pass through unchanged.
// Read-only after initialization.
var umlautReplacements = map[rune]string{
	'Ä': "ae", 'ä': "ae",
	'Ö': "oe", 'ö': "oe",
	'Ü': "ue", 'ü': "ue",
	'ß': "ss",
	'é': "e", 'è': "e", 'ê': "e",
	'á': "a", 'à': "a", 'â': "a",
	'ç': "c",
}

// NormalizeSingleName normalizes one name field without splitting it.
//
// # Pipeline
//
//  1. Trim surrounding whitespace and lowercase.
//  2. Collapse immediately repeated identical characters ("Schmitt" →
//     "schmit"). The collapse applies to the whole string, not only letters.
//  3. Replace umlauts and diacritics ("Müller" → "mueler" — note the collapse
//     runs before the replacement).
//
// An empty input is a no-op returning "", so callers may pass optional
// surname/given-name fields freely.
func NormalizeSingleName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = collapseRepeats(name)
	return replaceUmlauts(name)
}

// Normalize normalizes a full name field and splits it into search tokens.
//
// The normalized string is split on every run of characters that are neither
// letters nor digits, so hyphens, spaces and punctuation separate uniformly.
// Fragments of a single character are discarded. When more than two fragments
// remain, only the two longest survive (stable order for equal lengths), which
// bounds compound names to their two most distinctive parts.
func Normalize(name string) []string {
	return splitTokens(NormalizeSingleName(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// splitTokens splits an already-normalized string at every run of separator
// runes, drops single-character fragments, and keeps at most the two longest
// of the remainder.
func splitTokens(normalized string, isSeparator func(rune) bool) []string {
	fragments := strings.FieldsFunc(normalized, isSeparator)

	tokens := fragments[:0:len(fragments)]
	for _, fragment := range fragments {
		if utf8.RuneCountInString(fragment) > 1 {
			tokens = append(tokens, fragment)
		}
	}

	if len(tokens) > 2 {
		// Stable: equal-length tokens keep their original order.
		sort.SliceStable(tokens, func(i, j int) bool {
			return utf8.RuneCountInString(tokens[i]) > utf8.RuneCountInString(tokens[j])
		})
		tokens = tokens[:2]
	}

	return tokens
}

// replaceUmlauts applies the umlaut/diacritic table rune by rune.
func replaceUmlauts(in string) string {
	var builder strings.Builder
	builder.Grow(len(in))
	for _, r := range in {
		if replacement, ok := umlautReplacements[r]; ok {
			builder.WriteString(replacement)
		} else {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// collapseRepeats reduces every run of identical runes to a single occurrence.
func collapseRepeats(in string) string {
	var builder strings.Builder
	builder.Grow(len(in))
	var last rune = -1
	for _, r := range in {
		if r != last {
			builder.WriteRune(r)
			last = r
		}
	}
	return builder.String()
}
