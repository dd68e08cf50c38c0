package sentiment

import (
	"context"
	"strings"
	"unicode"
)

// negationLookback is how many tokens back a negation still flips the
// sign of a sentiment token.
const negationLookback = 3

// Scorer maps a span of text to a polarity in [-1, 1]. Implementations
// must be safe for concurrent use. The rule scorer below is the default;
// a statistical model can be substituted behind the same interface.
type Scorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

// RuleScorer is the deterministic lexicon-based scorer. Same input text
// always yields the same score, which keeps aggregates reproducible.
type RuleScorer struct {
	lexicon *Lexicon
}

// NewRuleScorer creates a scorer over the given lexicon.
func NewRuleScorer(lexicon *Lexicon) *RuleScorer {
	return &RuleScorer{lexicon: lexicon}
}

// Score tokenizes the span, looks up token polarities, applies negation
// inversion then intensifier scaling, and averages over matched tokens.
// Text with no recognized sentiment tokens scores neutral (0.0). The
// result is always within [-1, 1].
func (s *RuleScorer) Score(_ context.Context, text string) (float64, error) {
	return s.ScoreSpan(text), nil
}

// ScoreSpan is the allocation-light core used for mention-local scoring.
func (s *RuleScorer) ScoreSpan(text string) float64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	var sum float64
	var matched int

	for i, token := range tokens {
		weight, ok := s.lexicon.Weights[token]
		if !ok {
			continue
		}

		// Negation inversion first, then intensifier scaling: the two
		// modifiers have fixed precedence so "not very good" flips
		// before it amplifies.
		if s.negatedAt(tokens, i) {
			weight = -weight
		}
		if factor, ok := s.intensifierAt(tokens, i); ok {
			weight *= factor
		}

		sum += clamp(weight)
		matched++
	}

	if matched == 0 {
		return 0
	}
	return clamp(sum / float64(matched))
}

// negatedAt reports whether a negation token appears within the lookback
// window before position i.
func (s *RuleScorer) negatedAt(tokens []string, i int) bool {
	for j := i - 1; j >= 0 && j >= i-negationLookback; j-- {
		if s.lexicon.Negations[tokens[j]] {
			return true
		}
	}
	return false
}

// intensifierAt returns the scaling factor of the intensifier directly
// preceding position i, if any.
func (s *RuleScorer) intensifierAt(tokens []string, i int) (float64, bool) {
	if i == 0 {
		return 0, false
	}
	factor, ok := s.lexicon.Intensifiers[tokens[i-1]]
	return factor, ok
}

// tokenize lowercases and splits on non-alphanumeric boundaries.
// Apostrophes are dropped rather than split so "don't" becomes "dont"
// and hits the negation set.
func tokenize(text string) []string {
	text = strings.ToLower(text)
	text = strings.Map(func(r rune) rune {
		if r == '\'' || r == '’' {
			return -1
		}
		return r
	}, text)

	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
