// Package extract finds accessory mentions in normalized review text.
package extract

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/headsetlab/comfortscan/internal/model"
	"github.com/headsetlab/comfortscan/internal/normalize"
)

// snippetRadius is the number of characters of context kept on each side
// of a match when the surrounding sentence is smaller than the window.
const snippetRadius = 100

// AccessoryExtractor scans normalized text against the accessory catalog.
// It is stateless after construction and safe for concurrent use.
type AccessoryExtractor struct {
	catalog *model.Catalog

	// patterns are all lowercased aliases, longest first, so overlap
	// resolution can do a single greedy pass.
	patterns []string
}

// NewAccessoryExtractor creates an extractor for the given catalog.
func NewAccessoryExtractor(catalog *model.Catalog) *AccessoryExtractor {
	patterns := catalog.Aliases()
	sort.Slice(patterns, func(i, j int) bool {
		if len(patterns[i]) != len(patterns[j]) {
			return len(patterns[i]) > len(patterns[j])
		}
		return patterns[i] < patterns[j]
	})

	return &AccessoryExtractor{
		catalog:  catalog,
		patterns: patterns,
	}
}

// span is one candidate alias match in normalized text.
type span struct {
	start, end int
	pattern    string
}

// Extract produces the maximal set of non-overlapping mentions for one
// review. Matching is case-insensitive and alias-aware; when aliases
// match overlapping spans the longest span wins, so "Meta Elite Strap"
// is never double-counted as "Elite Strap". No match is not an error.
func (e *AccessoryExtractor) Extract(reviewID string, res *normalize.Result) []model.Mention {
	if res.Text == "" {
		return nil
	}
	lower := normalize.Fold(res.Text)

	var chosen []span
	for _, pattern := range e.patterns {
		for from := 0; ; {
			idx := strings.Index(lower[from:], pattern)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(pattern)
			from = start + 1

			if !wordBounded(lower, start, end) {
				continue
			}
			if overlapsAny(chosen, start, end) {
				continue // a longer alias already claimed this span
			}
			chosen = append(chosen, span{start: start, end: end, pattern: pattern})
		}
	}

	sort.Slice(chosen, func(i, j int) bool { return chosen[i].start < chosen[j].start })

	mentions := make([]model.Mention, 0, len(chosen))
	for _, m := range chosen {
		entry, ok := e.catalog.Lookup(m.pattern)
		if !ok {
			continue
		}
		mentions = append(mentions, model.Mention{
			ReviewID:       reviewID,
			AccessoryName:  entry.CanonicalName,
			AccessoryType:  entry.Type,
			ContextSnippet: contextSnippet(res, m.start, m.end),
		})
	}
	return mentions
}

// ContextWindow returns the normalized-text span used for local sentiment:
// a fixed-size character window centered on the match, or the surrounding
// sentence, whichever is larger.
func ContextWindow(res *normalize.Result, start, end int) (int, int) {
	ws := start - snippetRadius
	we := end + snippetRadius
	if ws < 0 {
		ws = 0
	}
	if we > len(res.Text) {
		we = len(res.Text)
	}

	sent := res.SentenceAt(start)
	if sent.End-sent.Start > we-ws {
		return sent.Start, sent.End
	}
	return ws, we
}

// contextSnippet quotes the context window from the original text.
func contextSnippet(res *normalize.Result, start, end int) string {
	ws, we := ContextWindow(res, start, end)
	return res.OriginalSlice(ws, we)
}

// wordBounded rejects matches embedded inside a larger word, so the
// alias "fan" never fires inside "fantastic".
func wordBounded(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func overlapsAny(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}
