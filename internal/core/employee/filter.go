package employee

import (
	"fmt"

	"github.com/nwieland/staffdir/internal/namematch"
	"github.com/nwieland/staffdir/internal/platform/apperr"
)

// SearchMode selects how a structured surname query is matched.
type SearchMode string

const (
	// SearchModeExact matches the stored surname as entered.
	SearchModeExact SearchMode = "EXACT"
	// SearchModePrefix matches stored surnames starting with the input.
	SearchModePrefix SearchMode = "PREFIX"
	// SearchModeLowercase matches the normalized surname variant.
	SearchModeLowercase SearchMode = "LOWERCASE"
	// SearchModePrefixLowercase prefix-matches the normalized variant.
	SearchModePrefixLowercase SearchMode = "PREFIX_LOWERCASE"
	// SearchModeReduced matches the simple-phonetic variant.
	SearchModeReduced SearchMode = "REDUCED"
	// SearchModePrefixReduced prefix-matches the simple-phonetic variant.
	SearchModePrefixReduced SearchMode = "PREFIX_REDUCED"
	// SearchModePhonetic matches the full phonetic code. Phonetic codes are
	// whole-token values, so there is no prefix form.
	SearchModePhonetic SearchMode = "PHONETIC"
)

// ParseSearchMode maps a request parameter onto the closed mode set. An empty
// input defaults to PREFIX_LOWERCASE, the forgiving everyday mode.
func ParseSearchMode(raw string) (SearchMode, error) {
	if raw == "" {
		return SearchModePrefixLowercase, nil
	}

	mode := SearchMode(raw)
	switch mode {
	case SearchModeExact, SearchModePrefix,
		SearchModeLowercase, SearchModePrefixLowercase,
		SearchModeReduced, SearchModePrefixReduced,
		SearchModePhonetic:
		return mode, nil
	}

	return "", apperr.ValidationError("unknown search mode", apperr.FieldError{
		Field:   FieldMode,
		Message: fmt.Sprintf("%q is not a valid search mode", raw),
	})
}

// QueryValue is one translated surname predicate.
//
// A nil Key means the predicate runs against the stored surname column
// directly; otherwise it runs against the name index under that key. Value
// carries the "%" wildcard for the prefix modes, so the store can always
// match with LIKE.
type QueryValue struct {
	Key   *namematch.Key
	Value string
}

// BuildQueryValue translates raw surname input under a search mode into the
// predicate the store executes. The translation mirrors the write path: the
// input goes through exactly the normalization layers the indexed variant
// went through, so equality on the stored value is meaningful.
func BuildQueryValue(raw string, mode SearchMode, encoder namematch.Encoder) QueryValue {
	switch mode {
	case SearchModeExact:
		return QueryValue{Value: raw}
	case SearchModePrefix:
		return QueryValue{Value: raw + "%"}
	case SearchModeLowercase:
		return QueryValue{Key: keyRef(namematch.KeySurnameLowercase), Value: namematch.NormalizeSingleName(raw)}
	case SearchModePrefixLowercase:
		return QueryValue{Key: keyRef(namematch.KeySurnameLowercase), Value: namematch.NormalizeSingleName(raw) + "%"}
	case SearchModeReduced:
		return QueryValue{Key: keyRef(namematch.KeySurnameReduced), Value: namematch.ReduceSimplePhonetic(namematch.NormalizeSingleName(raw))}
	case SearchModePrefixReduced:
		return QueryValue{Key: keyRef(namematch.KeySurnameReduced), Value: namematch.ReduceSimplePhonetic(namematch.NormalizeSingleName(raw)) + "%"}
	case SearchModePhonetic:
		return QueryValue{Key: keyRef(namematch.KeySurnamePhonetic), Value: encoder.Encode(namematch.NormalizeSingleName(raw))}
	default:
		// Unreachable with a parsed mode; fall back to the exact column match.
		return QueryValue{Value: raw}
	}
}

func keyRef(key namematch.Key) *namematch.Key {
	return &key
}
