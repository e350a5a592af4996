// Command rarebird computes rarity reports from citizen-science bird
// observation CSVs: species observed exactly once among valid US records,
// overall and per year, enriched with taxonomy names.
//
// Usage:
//
//	rarebird [flags] FILE...
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/bird-rarity-etl/internal/adapter/httpserver"
	"github.com/couchcryptid/bird-rarity-etl/internal/adapter/taxonomy"
	"github.com/couchcryptid/bird-rarity-etl/internal/config"
	"github.com/couchcryptid/bird-rarity-etl/internal/observability"
	"github.com/couchcryptid/bird-rarity-etl/internal/pipeline"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configFlag      string
		taxonomyURLFlag string
		outputDirFlag   string
		metricsAddrFlag string
	)

	cmd := &cobra.Command{
		Use:   "rarebird [flags] FILE...",
		Short: "Report bird species observed exactly once in US observation data",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true // args are valid past this point
			return run(configFlag, taxonomyURLFlag, outputDirFlag, metricsAddrFlag, args)
		},
	}

	cmd.Flags().StringVarP(&configFlag, "config", "c", "", "Path to a TOML configuration file")
	cmd.Flags().StringVar(&taxonomyURLFlag, "taxonomy-url", "", "Override the taxonomy reference URL")
	cmd.Flags().StringVar(&outputDirFlag, "output-dir", "", "Directory for the report files")
	cmd.Flags().StringVar(&metricsAddrFlag, "metrics-addr", "", "Serve /healthz and /metrics on this address during the run")

	return cmd
}

func run(configPath, taxonomyURL, outputDir, metricsAddr string, inputs []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if taxonomyURL != "" {
		cfg.TaxonomyURL = taxonomyURL
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if metricsAddr != "" {
		cfg.MetricsAddr = metricsAddr
	}

	logger := observability.NewLogger(cfg).With("run_id", uuid.NewString())
	metrics := observability.NewMetrics()

	client := taxonomy.NewClient(cfg.TaxonomyURL, cfg.TaxonomyTimeout, logger)
	writer := pipeline.NewCSVReportWriter(cfg.OutputDir, cfg.OverallReport, cfg.YearlyReport, logger)
	p := pipeline.New(client, writer, logger, metrics, cfg.PreviewLines)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional diagnostics listener for long multi-file runs.
	var srv *httpserver.Server
	if cfg.MetricsAddr != "" {
		srv = httpserver.NewServer(cfg.MetricsAddr, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("diagnostics server error", "error", err)
			}
		}()
	}

	summary, runErr := p.Run(ctx, inputs)

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("diagnostics server shutdown error", "error", err)
		}
	}

	if runErr != nil {
		logger.Error("run failed", "error", runErr)
		return runErr
	}

	fmt.Println(renderSummary(summary))
	return nil
}
