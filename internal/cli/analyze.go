package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/headsetlab/comfortscan/internal/config"
	"github.com/headsetlab/comfortscan/internal/logging"
	"github.com/headsetlab/comfortscan/internal/model"
	"github.com/headsetlab/comfortscan/internal/pipeline"
	"github.com/headsetlab/comfortscan/internal/store"
	"github.com/headsetlab/comfortscan/internal/worker"
)

var (
	analyzeInput        string
	analyzeJSONPath     string
	analyzeMarkdownPath string
	analyzeWorkers      int
)

// analyzeCmd runs the full analysis over the stored reviews.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze stored reviews and write a snapshot",
	Long: `Run mention extraction, sentiment scoring, and comfort-issue
classification over every stored review, then persist and render the
aggregated snapshot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if analyzeWorkers > 0 {
			cfg.Concurrency.Workers = analyzeWorkers
		}
		if analyzeJSONPath != "" {
			cfg.Output.JSONPath = analyzeJSONPath
		}
		if analyzeMarkdownPath != "" {
			cfg.Output.MarkdownPath = analyzeMarkdownPath
		}
		logger := logging.New(cfg.Logging)
		ctx := cmd.Context()

		var snap *model.Snapshot
		if analyzeInput != "" {
			// Analyze a review file directly, bypassing the store.
			reviews, err := store.ReadReviewFile(analyzeInput)
			if err != nil {
				return err
			}
			snap, err = analyzeReviews(ctx, cfg, reviews, logger)
			if err != nil {
				return err
			}
		} else {
			st, err := store.Open(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer func() { _ = st.Close() }()

			snap, err = runAnalysis(ctx, cfg, st, logger)
			if err != nil {
				return err
			}
		}

		renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
		if cfg.Output.JSONPath != "" {
			if err := renderer.WriteJSON(snap, cfg.Output.JSONPath); err != nil {
				return err
			}
			logger.Info("wrote snapshot", "path", cfg.Output.JSONPath)
		}
		if cfg.Output.MarkdownPath != "" {
			if err := renderer.WriteMarkdown(snap, cfg.Output.MarkdownPath); err != nil {
				return err
			}
			logger.Info("wrote report", "path", cfg.Output.MarkdownPath)
		}

		fmt.Printf("Analyzed %d reviews (%d skipped): %d mentions of %d accessories, %d comfort issues.\n",
			snap.Stats.TotalReviews, snap.Stats.SkippedReviews,
			snap.Stats.TotalMentions, snap.Stats.DistinctAccessories, snap.Stats.TotalIssues)
		if snap.Stats.TopAccessory != "" {
			fmt.Printf("Top accessory: %s\n", snap.Stats.TopAccessory)
		}
		return nil
	},
}

// runAnalysis analyzes every stored review, persists the snapshot, and
// returns it. Shared by analyze and serve refresh.
func runAnalysis(ctx context.Context, cfg *model.Config, st *store.Store, logger *slog.Logger) (*model.Snapshot, error) {
	reviews, err := st.Reviews(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := analyzeReviews(ctx, cfg, reviews, logger)
	if err != nil {
		return nil, err
	}

	if err := st.SaveSnapshot(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// analyzeReviews loads the data-driven inputs and runs the parallel
// analysis over the given reviews.
func analyzeReviews(ctx context.Context, cfg *model.Config, reviews []model.Review, logger *slog.Logger) (*model.Snapshot, error) {
	catalog, err := config.LoadCatalog(cfg.Data.CatalogPath)
	if err != nil {
		return nil, err
	}
	lexicon, err := config.LoadLexicon(cfg.Data.LexiconPath)
	if err != nil {
		return nil, err
	}
	taxonomy, err := config.LoadTaxonomy(cfg.Data.TaxonomyPath)
	if err != nil {
		return nil, err
	}

	analyzer, err := pipeline.NewAnalyzer(cfg, pipeline.Inputs{
		Catalog:  catalog,
		Lexicon:  lexicon,
		Taxonomy: taxonomy,
	}, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("starting analysis", "reviews", len(reviews), "workers", cfg.Concurrency.Workers)

	batch := worker.NewBatchAnalyzer(analyzer, cfg.Concurrency.Workers, logger)
	agg, err := batch.ProcessReviews(ctx, reviews)
	if err != nil {
		return nil, err
	}
	return agg.Finalize(), nil
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "", "analyze a review file (JSON or JSONL) instead of the store")
	analyzeCmd.Flags().StringVar(&analyzeJSONPath, "json", "", "JSON snapshot output path")
	analyzeCmd.Flags().StringVar(&analyzeMarkdownPath, "md", "", "Markdown report output path")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "number of analysis workers")
	rootCmd.AddCommand(analyzeCmd)
}
