// Copyright (c) 2026 Staffdir. All rights reserved.
// Author: n.wieland@mailbox.org

package namematch

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// Encoder produces a full phonetic code for a single normalized name token.
//
// Implementations must be deterministic: the same token always yields the
// same code, and close spelling variants of a name collapse to the same code
// ("schmidt", "schmit", "schmitt" → "XMT").
type Encoder interface {
	Encode(token string) string
}

// soundexDigitReplacements maps digits to letters before phonetic encoding,
// since metaphone-style algorithms ignore digits entirely. Read-only after
// initialization.
var soundexDigitReplacements = map[rune]string{
	'0': "l", '1': "s", '2': "w", '3': "d", '4': "r",
	'5': "f", '6': "ch", '7': "b", '8': "t", '9': "n",
}

// MetaphoneEncoder implements [Encoder] using the Double Metaphone primary
// code. It is stateless and safe for concurrent use.
type MetaphoneEncoder struct{}

// Encode returns the primary Double Metaphone code of the token, after
// replacing any digits with their soundex-style letter equivalents.
func (MetaphoneEncoder) Encode(token string) string {
	primary, _ := matchr.DoubleMetaphone(replaceDigits(token))
	return primary
}

// replaceDigits substitutes digits via the soundex replacement table.
func replaceDigits(in string) string {
	var builder strings.Builder
	builder.Grow(len(in))
	for _, r := range in {
		if replacement, ok := soundexDigitReplacements[r]; ok {
			builder.WriteString(replacement)
		} else {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}
