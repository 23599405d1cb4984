package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Search term caps. Queries are agent-supplied, so every dimension is bounded.
const (
	maxTermGroups       = 6
	maxVariantsPerGroup = 6
	minVariantLength    = 3
)

// Spanish function words dropped during tokenization.
var stopWords = map[string]bool{
	"de":   true,
	"del":  true,
	"la":   true,
	"el":   true,
	"los":  true,
	"las":  true,
	"para": true,
	"y":    true,
}

// foldTransformer decomposes to NFD, removes combining marks, and recomposes.
// This handles any diacritic without enumerating accented letters.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents removes diacritical marks from a string.
func StripAccents(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeTerm returns the canonical matching form of a term:
// lower-cased and accent-stripped. Idempotent by construction.
func NormalizeTerm(t string) string {
	return StripAccents(strings.ToLower(t))
}

// Tokenize lower-cases the text, strips characters that are not letters,
// digits or whitespace, splits on whitespace and drops stop words.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	raw := strings.Fields(cleaned)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if !stopWords[t] {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Singularize strips plural suffixes heuristically: "pantalones" becomes
// "pantalon". No dictionary is involved, so this is a best-effort reduction,
// not a linguistic guarantee.
func Singularize(t string) string {
	if utf8.RuneCountInString(t) > 3 {
		if strings.HasSuffix(t, "es") {
			return t[:len(t)-2]
		}
		if strings.HasSuffix(t, "s") {
			return t[:len(t)-1]
		}
	}
	return t
}

// ExpandTerm produces the deduplicated set of match variants for one term:
// the term itself, its accent-stripped form, its singular form and the
// accent-stripped singular, each reduced to the canonical normalized form.
// Variants shorter than three runes are dropped to avoid overly broad matches.
func ExpandTerm(t string) []string {
	candidates := []string{
		t,
		StripAccents(t),
		Singularize(t),
		StripAccents(Singularize(t)),
	}

	seen := make(map[string]bool, len(candidates))
	variants := make([]string, 0, len(candidates))
	for _, c := range candidates {
		v := NormalizeTerm(c)
		if utf8.RuneCountInString(v) < minVariantLength {
			continue
		}
		if !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}
	return variants
}

// BuildTermGroups turns either an explicit term list or a free-text query
// into bounded term groups. Explicit terms win over the query text. Across
// groups matching is conjunctive; within a group any variant may match.
func BuildTermGroups(query string, terms []string) [][]string {
	base := terms
	if len(base) == 0 {
		if q := strings.TrimSpace(query); q != "" {
			base = Tokenize(q)
		}
	}
	if len(base) > maxTermGroups {
		base = base[:maxTermGroups]
	}

	groups := make([][]string, 0, len(base))
	for _, t := range base {
		variants := ExpandTerm(t)
		if len(variants) == 0 {
			continue
		}
		if len(variants) > maxVariantsPerGroup {
			variants = variants[:maxVariantsPerGroup]
		}
		groups = append(groups, variants)
		if len(groups) == maxTermGroups {
			break
		}
	}
	return groups
}
