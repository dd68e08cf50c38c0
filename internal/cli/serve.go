package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/headsetlab/comfortscan/internal/logging"
	"github.com/headsetlab/comfortscan/internal/model"
	"github.com/headsetlab/comfortscan/internal/server"
	"github.com/headsetlab/comfortscan/internal/store"
)

var serveAddr string

// serveCmd runs the query API over the latest snapshot.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis results over a JSON API",
	Long: `Serve the latest analysis snapshot over HTTP. POST /api/refresh
re-runs the analysis against the current review store and atomically
publishes the new snapshot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}
		logger := logging.New(cfg.Logging)

		st, err := store.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() { _ = st.Close() }()

		initial, err := st.LatestSnapshot(cmd.Context())
		if err != nil && !errors.Is(err, store.ErrNoSnapshot) {
			return err
		}
		if initial == nil {
			logger.Info("no stored snapshot yet")
		} else {
			logger.Info("loaded snapshot", "generated_at", initial.GeneratedAt)
		}

		source := server.NewSource(initial, func(ctx context.Context) (*model.Snapshot, error) {
			return runAnalysis(ctx, cfg, st, logger)
		})

		// Run one analysis at startup so the API reflects the current
		// store. A stored snapshot remains the fallback on failure.
		if _, err := source.Refresh(cmd.Context()); err != nil {
			if initial == nil {
				return fmt.Errorf("startup analysis: %w", err)
			}
			logger.Warn("startup analysis failed, serving stored snapshot", "error", err)
		}

		srv := server.New(cfg.Server, source, logger)
		logger.Info("serving", "addr", cfg.Server.Addr)
		return srv.Run()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8080)")
	rootCmd.AddCommand(serveCmd)
}
