package textfeat

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/devlink-kr/idea-insight/internal/llm"
)

const categorySystemPrompt = `You are a classifier for a software idea marketplace. ` +
	`Given an idea title and description, respond with a JSON array of at most ` +
	`3 lowercase category names, most relevant first. Respond with the JSON ` +
	`array only, no prose.`

const (
	categorizeTimeout   = 10 * time.Second
	categorizeMaxTokens = 128
	maxCategories       = 3
)

// Categorizer derives idea categories, delegating to the text-completion
// collaborator and falling back to deterministic keyword buckets so it
// never fails.
type Categorizer struct {
	completer llm.Completer
}

// NewCategorizer creates a categorizer. A nil completer forces the
// fallback path on every call.
func NewCategorizer(completer llm.Completer) *Categorizer {
	return &Categorizer{completer: completer}
}

// Categorize returns at most 3 categories for the given text. Failures of
// the completion collaborator degrade to the keyword-bucket fallback.
func (c *Categorizer) Categorize(ctx context.Context, title, text string, keywords []string) categoryResult {
	if c.completer == nil {
		return c.fallback(keywords, "completion client not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, categorizeTimeout)
	defer cancel()

	userPrompt := "Title: " + title + "\n\nDescription: " + text

	raw, err := c.completer.Complete(ctx, categorySystemPrompt, userPrompt, categorizeMaxTokens, 0)
	if err != nil {
		slog.Info("Categorization fell back to keyword buckets", "cause", err)
		return c.fallback(keywords, "completion request failed")
	}

	categories, err := parseCategories(raw)
	if err != nil {
		slog.Info("Categorization response unparseable, using keyword buckets", "cause", err)
		return c.fallback(keywords, "malformed completion response")
	}

	return categoryResult{categories: categories, source: SourceAI}
}

// parseCategories extracts the category array from a completion response,
// tolerating markdown code fences around the JSON.
func parseCategories(raw string) ([]string, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var parsed []string
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, err
	}

	categories := make([]string, 0, maxCategories)
	seen := make(map[string]struct{}, maxCategories)
	for _, cat := range parsed {
		cat = strings.ToLower(strings.TrimSpace(cat))
		if cat == "" {
			continue
		}
		if _, dup := seen[cat]; dup {
			continue
		}
		seen[cat] = struct{}{}
		categories = append(categories, cat)
		if len(categories) == maxCategories {
			break
		}
	}

	if len(categories) == 0 {
		return nil, errEmptyCategories
	}

	return categories, nil
}

var errEmptyCategories = jsonError("no categories in completion response")

type jsonError string

func (e jsonError) Error() string { return string(e) }

// fallback buckets keywords into technology/business/general. Deterministic
// for a given keyword list, which keeps the extractor idempotent when the
// collaborator is down.
func (c *Categorizer) fallback(keywords []string, reason string) categoryResult {
	type bucketHit struct {
		name string
		hits int
	}

	hits := make([]bucketHit, 0, len(categoryBuckets))
	for _, bucket := range categoryBuckets {
		count := 0
		for _, kw := range keywords {
			for _, marker := range bucket.keywords {
				if kw == marker || strings.Contains(kw, marker) {
					count++
					break
				}
			}
		}
		if count > 0 {
			hits = append(hits, bucketHit{name: bucket.name, hits: count})
		}
	}

	// Bucket declaration order already ranks technology ahead of business,
	// so a stable selection only reorders on strictly more hits.
	categories := make([]string, 0, maxCategories)
	for len(hits) > 0 && len(categories) < maxCategories {
		best := 0
		for i := 1; i < len(hits); i++ {
			if hits[i].hits > hits[best].hits {
				best = i
			}
		}
		categories = append(categories, hits[best].name)
		hits = append(hits[:best], hits[best+1:]...)
	}

	if len(categories) == 0 {
		categories = []string{fallbackCategory}
	}

	return categoryResult{categories: categories, source: SourceFallback, reason: reason}
}
