package worker

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/headsetlab/comfortscan/internal/aggregate"
	"github.com/headsetlab/comfortscan/internal/model"
	"github.com/headsetlab/comfortscan/internal/pipeline"
)

// ReviewAnalyzer analyzes a single review.
type ReviewAnalyzer interface {
	AnalyzeReview(ctx context.Context, review model.Review) (*pipeline.Analysis, error)
}

// ChunkJob analyzes a slice of reviews and folds them into a partial
// aggregate. Each worker owns its partial; no shared mutable state.
type ChunkJob struct {
	Index    int
	Reviews  []model.Review
	Analyzer ReviewAnalyzer
	Logger   *slog.Logger
}

// ChunkResult carries one worker's partial aggregate.
type ChunkResult struct {
	Index   int
	Partial *aggregate.Aggregate
	Err     error
}

// GetError returns the chunk-level error, nil for per-review skips.
func (r *ChunkResult) GetError() error {
	return r.Err
}

// Execute analyzes every review in the chunk. Per-review failures are
// recorded as skips, never returned: a malformed review must not sink
// the reviews around it.
func (j *ChunkJob) Execute(ctx context.Context) Result {
	partial := aggregate.New()

	for _, review := range j.Reviews {
		select {
		case <-ctx.Done():
			return &ChunkResult{Index: j.Index, Partial: partial, Err: ctx.Err()}
		default:
		}

		analysis, err := j.Analyzer.AnalyzeReview(ctx, review)
		if err != nil {
			partial.AddSkipped()
			if errors.Is(err, pipeline.ErrNotAnalyzable) {
				j.Logger.Debug("skipping review", "review", review.ID, "reason", "no analyzable text")
			} else {
				j.Logger.Warn("skipping review", "review", review.ID, "error", err)
			}
			continue
		}
		partial.AddReview(analysis.Review, analysis.Mentions, analysis.Issues, analysis.ReviewSentiment)
	}

	return &ChunkResult{Index: j.Index, Partial: partial}
}

// BatchAnalyzer fans reviews out across a worker pool and merges the
// partial aggregates back into one.
type BatchAnalyzer struct {
	analyzer ReviewAnalyzer
	workers  int
	logger   *slog.Logger
}

// NewBatchAnalyzer creates a batch analyzer with the given concurrency.
func NewBatchAnalyzer(analyzer ReviewAnalyzer, workers int, logger *slog.Logger) *BatchAnalyzer {
	if workers <= 0 {
		workers = 1
	}
	return &BatchAnalyzer{analyzer: analyzer, workers: workers, logger: logger}
}

// ProcessReviews analyzes all reviews concurrently and returns the
// merged aggregate. Reviews are split into at most one chunk per worker
// so every job fits the pool's queue buffer before Wait.
func (b *BatchAnalyzer) ProcessReviews(ctx context.Context, reviews []model.Review) (*aggregate.Aggregate, error) {
	merged := aggregate.New()
	if len(reviews) == 0 {
		return merged, nil
	}

	chunkSize := (len(reviews) + b.workers - 1) / b.workers

	pool := NewPool(b.workers)
	pool.Start()
	stop := context.AfterFunc(ctx, pool.Shutdown)
	defer stop()

	for index, start := 0, 0; start < len(reviews); index, start = index+1, start+chunkSize {
		end := start + chunkSize
		if end > len(reviews) {
			end = len(reviews)
		}
		pool.Submit(&ChunkJob{
			Index:    index,
			Reviews:  reviews[start:end],
			Analyzer: b.analyzer,
			Logger:   b.logger,
		})
	}

	// Merge in chunk order, not completion order, so repeat runs over
	// the same reviews produce identical snapshots.
	chunks := make([]*ChunkResult, 0, b.workers)
	for _, result := range pool.Wait() {
		chunks = append(chunks, result.(*ChunkResult))
	}
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].Index < chunks[j].Index })

	var firstErr error
	for _, chunk := range chunks {
		if err := chunk.GetError(); err != nil && firstErr == nil {
			firstErr = err
		}
		if chunk.Partial != nil {
			merged.Merge(chunk.Partial)
		}
	}
	// A canceled context may have shut the pool down with chunks still
	// queued; the merged aggregate would be silently incomplete.
	if firstErr == nil {
		firstErr = ctx.Err()
	}

	return merged, firstErr
}
