package textfeat

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"github.com/devlink-kr/idea-insight/internal/llm"
	"github.com/devlink-kr/idea-insight/internal/types"
)

const maxKeywords = 10

// Extractor derives language, keywords, categories, sentiment and the three
// heuristic scores from a title+description pair. It is stateless apart
// from the read-through result cache.
type Extractor struct {
	categorizer *Categorizer
	cache       *Cache
}

// NewExtractor creates an extractor. The completer may be nil, in which
// case categorization always takes the deterministic fallback path.
func NewExtractor(completer llm.Completer, cache *Cache) *Extractor {
	return &Extractor{
		categorizer: NewCategorizer(completer),
		cache:       cache,
	}
}

// Extract analyzes the given text. Empty input degrades to neutral defaults
// rather than erroring; identical input always yields the identical cached
// result.
func (e *Extractor) Extract(ctx context.Context, title, text string) TextFeatures {
	text = strings.TrimSpace(text)
	title = strings.TrimSpace(title)

	if text == "" && title == "" {
		return neutralFeatures("empty input")
	}

	hash := ContentHash(title, text)
	if cached, ok := e.cache.Get(hash); ok {
		return cached
	}

	full := title + " " + text
	lowered := strings.ToLower(full)
	lang := detectLanguage(full)

	rawTokens := tokenize(lowered)
	processed := preprocess(rawTokens, lang)
	keywords := extractKeywords(processed)

	features := TextFeatures{
		Keywords:            keywords,
		Language:            lang,
		Sentiment:           sentiment(lowered, rawTokens, lang),
		MarketPotential:     marketPotential(lowered, rawTokens),
		TechnicalComplexity: technicalComplexity(lowered, rawTokens),
		InnovationScore:     innovationScore(lowered, rawTokens),
	}

	catResult := e.categorizer.Categorize(ctx, title, text, keywords)
	features.Categories = catResult.categories
	features.CategorySource = catResult.source
	features.FallbackReason = catResult.reason

	e.cache.Set(hash, features)

	slog.Debug("Text features extracted",
		"language", features.Language,
		"keywords", len(features.Keywords),
		"category_source", features.CategorySource)

	return features
}

// neutralFeatures are the documented defaults for degenerate input.
func neutralFeatures(reason string) TextFeatures {
	return TextFeatures{
		Categories:          []string{fallbackCategory},
		CategorySource:      SourceFallback,
		FallbackReason:      reason,
		Keywords:            []string{},
		Sentiment:           0,
		Language:            LanguageEnglish,
		MarketPotential:     types.LevelLow,
		TechnicalComplexity: 3,
		InnovationScore:     50,
	}
}

// detectLanguage classifies text as Korean when Hangul syllables exceed 10%
// of its non-space characters.
func detectLanguage(s string) Language {
	total := 0
	hangul := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if r >= 0xAC00 && r <= 0xD7A3 {
			hangul++
		}
	}
	if total > 0 && float64(hangul)/float64(total) > 0.10 {
		return LanguageKorean
	}
	return LanguageEnglish
}

// tokenize splits lowered text on anything that is not a letter, digit or
// Hangul syllable.
func tokenize(lowered string) []string {
	return strings.FieldsFunc(lowered, func(r rune) bool {
		if r >= 0xAC00 && r <= 0xD7A3 {
			return false
		}
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// preprocess applies the per-language stop lists. Korean tokens lose
// trailing particles; English tokens lose stop words and get stemmed.
func preprocess(tokens []string, lang Language) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if lang == LanguageKorean {
			tok = stripParticle(tok)
		} else {
			if _, stop := englishStopWords[tok]; stop {
				continue
			}
			tok = stemEnglish(tok)
		}
		if len([]rune(tok)) < 2 {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// stripParticle removes one trailing particle from the fixed stop-list.
// Longer particles are tried first so "에서" wins over "에".
func stripParticle(tok string) string {
	best := ""
	for _, particle := range koreanParticles {
		if strings.HasSuffix(tok, particle) && len(particle) > len(best) {
			stem := strings.TrimSuffix(tok, particle)
			if len([]rune(stem)) >= 1 {
				best = particle
			}
		}
	}
	return strings.TrimSuffix(tok, best)
}

// stemEnglish is a light suffix stemmer, enough to merge inflected forms
// for term-frequency counting.
func stemEnglish(tok string) string {
	suffixes := []string{"ingly", "edly", "ing", "ed", "ies", "es", "s", "ly"}
	for _, suffix := range suffixes {
		if strings.HasSuffix(tok, suffix) && len(tok)-len(suffix) >= 3 {
			return strings.TrimSuffix(tok, suffix)
		}
	}
	return tok
}

// extractKeywords returns the top terms by descending frequency, ties
// broken by first-occurrence order.
func extractKeywords(tokens []string) []string {
	freq := make(map[string]int, len(tokens))
	firstSeen := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))

	for i, tok := range tokens {
		if _, seen := freq[tok]; !seen {
			firstSeen[tok] = i
			order = append(order, tok)
		}
		freq[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if freq[order[i]] != freq[order[j]] {
			return freq[order[i]] > freq[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}

// containsTerm matches a lexicon term against the text. Multi-word terms
// use substring search; single words must match a whole token so "ai" does
// not hit "maintain".
func containsTerm(lowered string, tokens []string, term string) bool {
	if strings.ContainsRune(term, ' ') {
		return strings.Contains(lowered, term)
	}
	for _, tok := range tokens {
		if tok == term {
			return true
		}
	}
	// Hangul terms rarely stand alone as tokens; fall back to substring.
	for _, r := range term {
		if r >= 0xAC00 && r <= 0xD7A3 {
			return strings.Contains(lowered, term)
		}
	}
	return false
}

func countTerms(lowered string, tokens []string, terms []string) int {
	count := 0
	for _, term := range terms {
		if containsTerm(lowered, tokens, term) {
			count++
		}
	}
	return count
}

// marketPotential buckets the text by hits against the high/medium
// potential keyword lists.
func marketPotential(lowered string, tokens []string) types.Level {
	high := countTerms(lowered, tokens, highPotentialKeywords)
	medium := countTerms(lowered, tokens, mediumPotentialKeywords)

	switch {
	case high >= 2:
		return types.LevelHigh
	case high >= 1 || medium >= 2:
		return types.LevelMedium
	default:
		return types.LevelLow
	}
}

// technicalComplexity maps matched keywords to {1,3,5}, taking the highest
// matched bucket and defaulting to 3 when nothing matches.
func technicalComplexity(lowered string, tokens []string) int {
	matched := 0
	for term, level := range complexityKeywords {
		if containsTerm(lowered, tokens, term) && level > matched {
			matched = level
		}
	}
	if matched == 0 {
		return 3
	}
	return matched
}

// innovationScore starts at 50 and rewards innovative language, emerging
// technology co-occurrence and problem/solution framing.
func innovationScore(lowered string, tokens []string) float64 {
	score := 50.0

	score += 10 * float64(countTerms(lowered, tokens, innovativeKeywords))

	if countTerms(lowered, tokens, emergingTechKeywords) >= 2 {
		score += 20
	}

	if countTerms(lowered, tokens, framingKeywords) > 0 {
		score += 15
	}

	return clamp(score, 0, 100)
}

// sentiment produces a polarity score in [-1,1]. English uses the word
// lexicons; Korean counts positive/negative marker phrases.
func sentiment(lowered string, tokens []string, lang Language) float64 {
	pos, neg := 0, 0

	if lang == LanguageKorean {
		for _, w := range koreanPositive {
			if strings.Contains(lowered, w) {
				pos++
			}
		}
		for _, w := range koreanNegative {
			if strings.Contains(lowered, w) {
				neg++
			}
		}
	} else {
		for _, tok := range tokens {
			if _, ok := positiveWords[tok]; ok {
				pos++
			}
			if _, ok := negativeWords[tok]; ok {
				neg++
			}
		}
	}

	if pos+neg == 0 {
		return 0
	}
	return clamp(float64(pos-neg)/float64(pos+neg), -1, 1)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
