// Copyright (c) 2026 Staffdir. All rights reserved.
// Author: n.wieland@mailbox.org

package namematch

import "strings"

// simplePhoneticReplacements is the ordered German reduction table. Order is
// important: "sch" must fold before "ch" variants, and "ie" before the
// d→t endings. Read-only after initialization.
//
// Deliberately absent: "ht"→"t" (would fold "richter" wrongly) and the
// aggressive y/i, v/w, p/b folds (would merge "Becker" and "Bäcker").
var simplePhoneticReplacements = []struct {
	from, to string
}{
	{"sch", "s"},
	{"chr", "kr"},
	{"ck", "k"},
	{"dt", "t"},
	{"th", "t"},
	{"hm", "m"},
	{"hn", "n"},
	{"hl", "l"},
	{"hr", "r"},
	{"ts", "tz"},
	{"ai", "ei"},
	{"ay", "ei"},
	{"ey", "ei"},
	{"ie", "i"},
	{"ad", "at"},
	{"ed", "et"},
	{"id", "it"},
	{"od", "ot"},
	{"ud", "ut"},
}

// ReduceSimplePhonetic applies the German reduction rules to an
// already-normalized (lowercased, umlaut-folded) token.
//
// It approximates pronunciation equivalence classes much cheaper than full
// phonetic encoding: "schmidt" and "schmied" both reduce to "smit", "maier"
// and "mayr" both to "meir", while "richter" stays untouched.
//
// An empty input is a no-op returning "".
func ReduceSimplePhonetic(token string) string {
	for _, rule := range simplePhoneticReplacements {
		token = strings.ReplaceAll(token, rule.from, rule.to)
	}
	return collapseRepeats(token)
}
