// Copyright (c) 2026 Staffdir. All rights reserved.
// Author: n.wieland@mailbox.org

package namematch

import (
	"regexp"
	"time"
	"unicode"
	"unicode/utf8"
)

var (
	// datePattern matches D[./]M[./]YYYY. The 4-digit year anchored at
	// 19xx/20xx keeps short numeric noise ("12 13") from parsing as dates.
	datePattern = regexp.MustCompile(`([0-3]?[0-9])[./]([0-1]?[0-9])[./](19[0-9]{2}|20[0-9]{2})`)

	// exactNamePattern matches a quoted span of at least one character.
	// Empty quotes fall through to weak-name tokenization.
	exactNamePattern = regexp.MustCompile(`"([^"]+)"`)
)

// PersonFilter is the parse result of one free-text search input.
//
// Exact names are kept verbatim (case and diacritics preserved); the query
// translation layer decides how to match them. Weak names are already
// normalized, reduced (or phonetically encoded in phonetic mode), and
// "%"-suffixed for prefix matching.
type PersonFilter struct {
	DateOfBirth *time.Time
	ExactNames  []string
	WeakNames   []string
	Phonetic    bool
}

// HasNames reports whether the input contained any usable name at all.
func (filter *PersonFilter) HasNames() bool {
	return len(filter.ExactNames) > 0 || len(filter.WeakNames) > 0
}

// HasExactNames reports whether any quoted names were found.
func (filter *PersonFilter) HasExactNames() bool {
	return len(filter.ExactNames) > 0
}

// HasWeakNames reports whether any fuzzy-matching names were found.
func (filter *PersonFilter) HasWeakNames() bool {
	return len(filter.WeakNames) > 0
}

// ParsePersonFilter extracts typed search terms from unstructured user input
// in a single ordered pass:
//
//  1. The first date-of-birth-looking fragment is parsed and removed.
//  2. Every "..."-quoted span becomes an exact name and is removed.
//  3. The remaining text is tokenized; every token becomes a weak-matching
//     name, reduced via [ReduceSimplePhonetic] — or encoded via the encoder
//     when phonetic is true — and suffixed with the "%" wildcard.
//
// Fragments that merely resemble dates but don't match the pattern stay
// ordinary text. An empty or name-free input yields an empty filter, never an
// error.
func ParsePersonFilter(input string, phonetic bool, encoder Encoder) *PersonFilter {
	filter := &PersonFilter{Phonetic: phonetic}

	input = filter.extractDateOfBirth(input)
	input = filter.extractExactNames(input)
	filter.extractWeakNames(input, encoder)

	return filter
}

// extractDateOfBirth honors only the first date match and returns the input
// with the matched span spliced out.
func (filter *PersonFilter) extractDateOfBirth(input string) string {
	match := datePattern.FindStringSubmatchIndex(input)
	if match == nil {
		return input
	}

	day := stripLeadingZero(input[match[2]:match[3]])
	month := stripLeadingZero(input[match[4]:match[5]])
	if day == "" || month == "" {
		// Day or month was "0" — not a real date, leave the text alone.
		return input
	}
	year := input[match[6]:match[7]]

	dayNumber := atoi(day)
	monthNumber := atoi(month)
	yearNumber := atoi(year)

	date := time.Date(yearNumber, time.Month(monthNumber), dayNumber, 0, 0, 0, 0, time.UTC)
	if date.Day() != dayNumber || date.Month() != time.Month(monthNumber) {
		// Matched the pattern but isn't a calendar date (e.g. 31.02.1980).
		return input
	}

	filter.DateOfBirth = &date
	return splice(input, match[0], match[1])
}

// extractExactNames repeatedly pulls quoted spans out of the input.
func (filter *PersonFilter) extractExactNames(input string) string {
	for {
		match := exactNamePattern.FindStringSubmatchIndex(input)
		if match == nil {
			return input
		}
		filter.ExactNames = append(filter.ExactNames, input[match[2]:match[3]])
		input = splice(input, match[0], match[1])
	}
}

// extractWeakNames tokenizes whatever text remains and turns each token into
// a prefix-matchable weak name.
//
// Tokenization here splits on everything that is not a letter: on the query
// side digits are separators, so numeric noise like "12 13 1X" yields no
// names at all.
func (filter *PersonFilter) extractWeakNames(input string, encoder Encoder) {
	tokens := splitTokens(NormalizeSingleName(input), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	for _, token := range tokens {
		value := ReduceSimplePhonetic(token)
		if filter.Phonetic {
			value = encoder.Encode(token)
		}
		filter.WeakNames = append(filter.WeakNames, value+"%")
	}
}

// splice removes input[start:end] together with the one separator rune
// preceding it, so the remaining text doesn't keep a dangling comma or space.
// A match at the very start has no preceding separator to drop.
func splice(input string, start, end int) string {
	if start > 0 {
		_, size := utf8.DecodeLastRuneInString(input[:start])
		start -= size
	}
	if end < len(input) {
		return input[:start] + input[end:]
	}
	return input[:start]
}

// stripLeadingZero removes at most one leading zero ("01" → "1", "0" → "").
func stripLeadingZero(s string) string {
	if len(s) > 0 && s[0] == '0' {
		return s[1:]
	}
	return s
}

// atoi parses a small non-negative decimal already validated by the regexp.
func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
