package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/headsetlab/comfortscan/internal/logging"
	"github.com/headsetlab/comfortscan/internal/normalize"
	"github.com/headsetlab/comfortscan/internal/store"
)

// importCmd loads scraped review files into the database.
var importCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Import scraped review files into the review store",
	Long: `Import reviews from JSON or JSONL files into the local SQLite store.

The store is append-only: a review ID that already exists is left
untouched, so re-importing a file is safe.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := logging.New(cfg.Logging)

		st, err := store.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() { _ = st.Close() }()

		ctx := cmd.Context()
		var total, inserted int
		for _, path := range args {
			reviews, err := store.ReadReviewFile(path)
			if err != nil {
				return err
			}
			for i := range reviews {
				reviews[i].Body = normalize.StripMarkup(reviews[i].Body)
			}
			n, err := st.InsertReviews(ctx, reviews)
			if err != nil {
				return fmt.Errorf("import %s: %w", path, err)
			}
			logger.Info("imported file", "path", path, "reviews", len(reviews), "new", n)
			total += len(reviews)
			inserted += n
		}

		count, err := st.CountReviews(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d reviews (%d new, %d already present). Store now holds %d reviews.\n",
			total, inserted, total-inserted, count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
