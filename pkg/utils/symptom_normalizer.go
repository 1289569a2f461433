package utils

import (
	"regexp"
	"strings"

	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/entities"
)

// persistentPrefix is how the text model sometimes encodes chronicity inside
// the phrase despite being told to use the time field instead.
const persistentPrefix = "persistent "

var parenRe = regexp.MustCompile(`\s*\([^)]*\)`)

// SymptomNormalizer turns raw extracted symptom phrases into canonical,
// deduplicated, labeled symptoms. The lookup tables are immutable after
// construction, so a single instance is safe for concurrent use.
type SymptomNormalizer struct {
	keywords map[string]string
	labels   map[string]string
}

// NewSymptomNormalizer creates a normalizer backed by the built-in
// phrase-to-keyword and keyword-to-label tables.
func NewSymptomNormalizer() *SymptomNormalizer {
	return &SymptomNormalizer{
		keywords: symptomKeywordMap,
		labels:   symptomLabelKo,
	}
}

// Canonicalize cleans, normalizes and deduplicates the symptoms collected
// across all extraction attempts. Entries are grouped by localized label;
// within a group the occurrence with the highest time priority wins
// (time-of-day > persistent > none) and ties keep the first-seen entry.
// Output preserves the insertion order of first-seen labels.
func (n *SymptomNormalizer) Canonicalize(attempts []entities.ExtractedSymptom) []entities.CanonicalSymptom {
	byLabel := make(map[string]int)
	var out []entities.CanonicalSymptom

	for _, raw := range attempts {
		phrase, timeCtx := cleanPhrase(raw.Symptom, raw.Time)
		if phrase == "" {
			continue
		}

		keyword, ok := n.keywords[phrase]
		if !ok {
			// Unknown phrases are preserved rather than dropped.
			keyword = phrase
		}

		label, ok := n.labels[keyword]
		if !ok {
			label = keyword
		}

		candidate := entities.CanonicalSymptom{
			Keyword: keyword,
			Label:   label,
			Time:    timeCtx,
		}

		idx, seen := byLabel[label]
		if !seen {
			byLabel[label] = len(out)
			out = append(out, candidate)
			continue
		}

		if entities.TimePriority(candidate.Time) > entities.TimePriority(out[idx].Time) {
			out[idx] = candidate
		}
	}

	return out
}

// CanonicalizeKeywords normalizes a user-selected keyword list (the path
// that skips extraction). No time context is attached.
func (n *SymptomNormalizer) CanonicalizeKeywords(keywords []string) []entities.CanonicalSymptom {
	attempts := make([]entities.ExtractedSymptom, 0, len(keywords))
	for _, kw := range keywords {
		attempts = append(attempts, entities.ExtractedSymptom{Symptom: kw})
	}
	return n.Canonicalize(attempts)
}

// Label returns the localized label for a canonical keyword, falling back
// to the keyword itself.
func (n *SymptomNormalizer) Label(keyword string) string {
	if label, ok := n.labels[keyword]; ok {
		return label
	}
	return keyword
}

// cleanPhrase strips parenthesized qualifiers, lowercases and trims the
// phrase, and resolves a leading "persistent " into the time context,
// overriding whatever time was supplied.
func cleanPhrase(symptom string, timeCtx *entities.TimeContext) (string, *entities.TimeContext) {
	phrase := parenRe.ReplaceAllString(symptom, "")
	phrase = strings.ToLower(strings.TrimSpace(phrase))

	if strings.HasPrefix(phrase, persistentPrefix) {
		phrase = strings.TrimSpace(strings.TrimPrefix(phrase, persistentPrefix))
		persistent := entities.TimePersistent
		timeCtx = &persistent
	}

	return phrase, timeCtx
}
