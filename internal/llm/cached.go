package llm

import (
	"context"
	"strconv"
	"time"

	"github.com/headsetlab/comfortscan/internal/cache"
	"github.com/headsetlab/comfortscan/internal/sentiment"
)

// CachedScorer memoizes scores from an underlying scorer. Model output
// for identical text is stable enough at temperature zero to reuse, and
// caching makes re-running analysis over a grown review set cheap: only
// new reviews hit the API.
type CachedScorer struct {
	inner sentiment.Scorer
	cache cache.Cache
	model string
	ttl   time.Duration
}

// NewCachedScorer wraps inner with the given cache. The model name is
// part of the key so switching models never serves stale scores.
func NewCachedScorer(inner sentiment.Scorer, c cache.Cache, model string, ttl time.Duration) *CachedScorer {
	return &CachedScorer{inner: inner, cache: c, model: model, ttl: ttl}
}

// Score implements sentiment.Scorer.
func (s *CachedScorer) Score(ctx context.Context, text string) (float64, error) {
	key := cache.Key("score", s.model, text)

	if data, found := s.cache.Get(key); found {
		if score, err := strconv.ParseFloat(string(data), 64); err == nil {
			return score, nil
		}
	}

	score, err := s.inner.Score(ctx, text)
	if err != nil {
		return 0, err
	}

	_ = s.cache.Set(key, []byte(strconv.FormatFloat(score, 'f', -1, 64)), s.ttl)
	return score, nil
}
