// Package similarity decides whether two noisy text readings denote the
// same real-world item. Re-reads of one name across captures commonly
// differ by punctuation, spacing, a middle initial, or a single misread
// character; normalization plus an edit-distance ratio absorbs that noise
// while keeping genuinely distinct names apart.
package similarity

import (
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/agentstation/docfold/pkg/constants"
)

// stripMarks removes combining marks after canonical decomposition, so an
// accented character compares equal to its base letter.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Matcher scores candidate list entries against already-accepted ones.
type Matcher struct {
	threshold float64
	params    *levenshtein.Params
}

// New creates a Matcher with the given similarity threshold. Thresholds
// outside (0, 1] fall back to the default.
func New(threshold float64) *Matcher {
	if threshold <= 0 || threshold > 1 {
		threshold = constants.DefaultSimilarityThreshold
	}
	return &Matcher{
		threshold: threshold,
		params:    levenshtein.NewParams(),
	}
}

// Threshold returns the configured similarity threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Normalize lower-cases the input, folds diacritics, and strips every
// character that is not a letter or digit, collapsing the punctuation and
// spacing differences OCR introduces.
func Normalize(text string) string {
	folded, _, err := transform.String(stripMarks, text)
	if err != nil {
		folded = text
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Ratio returns the symmetric sequence-similarity ratio of two already
// normalized strings, in [0, 1].
func (m *Matcher) Ratio(a, b string) float64 {
	return levenshtein.Similarity(a, b, m.params)
}

// Similar reports whether the candidate denotes the same item as any member
// of existing: its normalized form must score at or above the threshold
// against the normalized form of at least one member. An empty normalized
// candidate is never similar to anything.
func (m *Matcher) Similar(existing []string, candidate string) bool {
	normalized := Normalize(candidate)
	if normalized == "" {
		return false
	}
	for _, item := range existing {
		if m.Ratio(Normalize(item), normalized) >= m.threshold {
			return true
		}
	}
	return false
}
