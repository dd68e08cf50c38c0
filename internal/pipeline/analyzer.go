// Package pipeline wires the per-review analysis stages together:
// normalize, extract mentions, score sentiment, classify comfort issues.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/headsetlab/comfortscan/internal/cache"
	"github.com/headsetlab/comfortscan/internal/extract"
	"github.com/headsetlab/comfortscan/internal/issues"
	"github.com/headsetlab/comfortscan/internal/llm"
	"github.com/headsetlab/comfortscan/internal/model"
	"github.com/headsetlab/comfortscan/internal/normalize"
	"github.com/headsetlab/comfortscan/internal/sentiment"
)

// ErrNotAnalyzable marks a review with no usable text. Callers count it
// as skipped; it never aborts a batch.
var ErrNotAnalyzable = errors.New("review has no analyzable text")

// Analyzer runs the full analysis for a single review. Safe for
// concurrent use: all state is read-only after construction.
type Analyzer struct {
	extractor    *extract.AccessoryExtractor
	rules        *sentiment.RuleScorer
	reviewScorer sentiment.Scorer
	classifier   *issues.Classifier
	logger       *slog.Logger
}

// Inputs bundles the validated data-driven configuration for a run.
type Inputs struct {
	Catalog  *model.Catalog
	Lexicon  *sentiment.Lexicon
	Taxonomy []model.IssueCategory
}

// NewAnalyzer builds an analyzer from validated inputs. The rule scorer
// always handles mention-local sentiment; cfg.Sentiment may swap the
// review-level scorer for an LLM-backed one.
func NewAnalyzer(cfg *model.Config, in Inputs, logger *slog.Logger) (*Analyzer, error) {
	classifier, err := issues.NewClassifier(in.Taxonomy, issues.NewLexicalSeverityRater())
	if err != nil {
		return nil, fmt.Errorf("taxonomy: %w", err)
	}

	rules := sentiment.NewRuleScorer(in.Lexicon)

	var reviewScorer sentiment.Scorer = rules
	if cfg.Sentiment.Provider != "" && cfg.Sentiment.Provider != "rules" {
		s, err := llm.NewScorer(llm.ConfigFromModel(cfg.Sentiment))
		if err != nil {
			return nil, fmt.Errorf("sentiment provider: %w", err)
		}
		reviewScorer = s
		if cfg.Sentiment.CacheDir != "" {
			c := cache.NewLayeredCache(10*time.Minute, cfg.Sentiment.CacheDir, 30*24*time.Hour)
			reviewScorer = llm.NewCachedScorer(s, c, cfg.Sentiment.Model, 30*24*time.Hour)
		}
	}

	return &Analyzer{
		extractor:    extract.NewAccessoryExtractor(in.Catalog),
		rules:        rules,
		reviewScorer: reviewScorer,
		classifier:   classifier,
		logger:       logger,
	}, nil
}

// Analysis is the complete per-review result.
type Analysis struct {
	Review          model.Review
	Mentions        []model.Mention
	Issues          []model.IssueOccurrence
	ReviewSentiment float64
}

// AnalyzeReview runs every stage on one review. A review without text
// returns ErrNotAnalyzable; a review-scorer failure is returned as-is so
// the batch runner can count the skip.
func (a *Analyzer) AnalyzeReview(ctx context.Context, review model.Review) (*Analysis, error) {
	if !review.Analyzable() {
		return nil, fmt.Errorf("review %s: %w", review.ID, ErrNotAnalyzable)
	}

	clean := normalize.StripMarkup(review.FullText())
	norm := normalize.Normalize(clean)
	if norm.Text == "" {
		return nil, fmt.Errorf("review %s: %w", review.ID, ErrNotAnalyzable)
	}

	mentions := a.extractor.Extract(review.ID, norm)
	for i := range mentions {
		mentions[i].LocalSentiment = a.rules.ScoreSpan(mentions[i].ContextSnippet)
	}

	occurrences := a.classifier.Classify(review.ID, norm)

	reviewSentiment, err := a.reviewScorer.Score(ctx, norm.Text)
	if err != nil {
		return nil, fmt.Errorf("review %s: score: %w", review.ID, err)
	}

	a.logger.Debug("analyzed review",
		"review", review.ID,
		"mentions", len(mentions),
		"issues", len(occurrences),
		"sentiment", reviewSentiment)

	return &Analysis{
		Review:          review,
		Mentions:        mentions,
		Issues:          occurrences,
		ReviewSentiment: reviewSentiment,
	}, nil
}
