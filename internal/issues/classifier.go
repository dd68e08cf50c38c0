package issues

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/headsetlab/comfortscan/internal/model"
	"github.com/headsetlab/comfortscan/internal/normalize"
)

// snippetRadius is the context kept on each side of a trigger match.
const snippetRadius = 100

// dedupePrefix bounds the context prefix used to spot duplicate matches
// of the same category within one review.
const dedupePrefix = 50

// Classifier scans normalized review text for comfort-problem vocabulary
// and emits categorized, severity-tagged issue occurrences. Safe for
// concurrent use after construction.
type Classifier struct {
	categories []compiledCategory
	rater      SeverityRater
}

type compiledCategory struct {
	key      string
	keywords []string
	patterns []*regexp.Regexp
}

// NewClassifier compiles the taxonomy. An empty taxonomy or an invalid
// trigger pattern is a fatal configuration error, surfaced before any
// review is processed.
func NewClassifier(taxonomy []model.IssueCategory, rater SeverityRater) (*Classifier, error) {
	if len(taxonomy) == 0 {
		return nil, fmt.Errorf("issue taxonomy is empty")
	}
	if rater == nil {
		rater = NewLexicalSeverityRater()
	}

	compiled := make([]compiledCategory, 0, len(taxonomy))
	for _, cat := range taxonomy {
		if strings.TrimSpace(cat.Key) == "" {
			return nil, fmt.Errorf("taxonomy category with empty key")
		}
		cc := compiledCategory{key: cat.Key}
		for _, kw := range cat.Keywords {
			cc.keywords = append(cc.keywords, strings.ToLower(kw))
		}
		for _, p := range cat.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("category %q: invalid pattern %q: %w", cat.Key, p, err)
			}
			cc.patterns = append(cc.patterns, re)
		}
		compiled = append(compiled, cc)
	}

	return &Classifier{categories: compiled, rater: rater}, nil
}

// Classify emits zero or more issue occurrences for one review.
// Categories fire independently; several may match the same review.
// Duplicate hits of one category on the same stretch of text collapse
// into a single occurrence.
func (c *Classifier) Classify(reviewID string, res *normalize.Result) []model.IssueOccurrence {
	if res.Text == "" {
		return nil
	}
	lower := normalize.Fold(res.Text)

	var found []model.IssueOccurrence
	seen := make(map[string]bool)

	record := func(key, trigger string, start, end int) {
		snippet := contextSnippet(res, start, end)
		dedupeKey := key + ":" + prefix(snippet, dedupePrefix)
		if seen[dedupeKey] {
			return
		}
		seen[dedupeKey] = true

		found = append(found, model.IssueOccurrence{
			ReviewID:       reviewID,
			IssueType:      key,
			Severity:       c.rater.Rate(snippet),
			MatchedSnippet: snippet,
			Trigger:        trigger,
		})
	}

	for _, cat := range c.categories {
		for _, kw := range cat.keywords {
			for from := 0; ; {
				idx := strings.Index(lower[from:], kw)
				if idx < 0 {
					break
				}
				start := from + idx
				record(cat.key, kw, start, start+len(kw))
				from = start + 1
			}
		}
		for _, re := range cat.patterns {
			for _, loc := range re.FindAllStringIndex(lower, -1) {
				record(cat.key, lower[loc[0]:loc[1]], loc[0], loc[1])
			}
		}
	}

	return found
}

// contextSnippet quotes a bounded window around the trigger from the
// original text.
func contextSnippet(res *normalize.Result, start, end int) string {
	ws := start - snippetRadius
	we := end + snippetRadius
	if ws < 0 {
		ws = 0
	}
	if we > len(res.Text) {
		we = len(res.Text)
	}
	return res.OriginalSlice(ws, we)
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
