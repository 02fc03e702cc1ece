package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nervousmark/firecrawl-integration/internal/api"
	"github.com/nervousmark/firecrawl-integration/internal/app"
	"github.com/nervousmark/firecrawl-integration/internal/clock/system"
	"github.com/nervousmark/firecrawl-integration/internal/config"
	"github.com/nervousmark/firecrawl-integration/internal/extraction"
	"github.com/nervousmark/firecrawl-integration/internal/firecrawl"
	"github.com/nervousmark/firecrawl-integration/internal/id/uuid"
	"github.com/nervousmark/firecrawl-integration/internal/logging"
	"github.com/nervousmark/firecrawl-integration/internal/metrics"
	"github.com/nervousmark/firecrawl-integration/internal/poller"
	pubsubpublisher "github.com/nervousmark/firecrawl-integration/internal/publisher/pubsub"
	csvsink "github.com/nervousmark/firecrawl-integration/internal/sink/csvfile"
	gcssink "github.com/nervousmark/firecrawl-integration/internal/sink/gcs"
	postgressink "github.com/nervousmark/firecrawl-integration/internal/sink/postgres"
)

// newExtractCmd creates and configures the 'extract' subcommand, which runs
// the whole submit/poll/persist flow once.
func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Runs one extraction against the configured target page",
		Long: `Submits the configured target URL to the crawl API with the listing
extraction directive, polls the job status until it reaches a terminal
state, and writes the extracted record to every configured sink.`,
		RunE: runExtractCommand,
	}
	return cmd
}

func runExtractCommand(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	metrics.Init()

	client := firecrawl.New(firecrawl.Config{
		BaseURL: cfg.API.BaseURL,
		APIKey:  cfg.API.Key,
		Timeout: cfg.APITimeout(),
	})
	defer client.Close()

	clock := system.New()
	jobPoller := poller.New(client, clock, poller.Config{
		MaxAttempts: cfg.Poll.MaxAttempts,
		Delay:       cfg.PollDelay(),
	}, logger.Named("poller"))

	sinks, cleanup, err := buildSinks(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	var publisher extraction.Publisher
	if cfg.PubSub.TopicName != "" {
		pub, err := pubsubpublisher.Open(ctx, cfg.PubSub.ProjectID)
		if err != nil {
			return fmt.Errorf("init publisher: %w", err)
		}
		defer func() {
			if cerr := pub.Close(); cerr != nil {
				logger.Warn("close publisher failed", zap.Error(cerr))
			}
		}()
		publisher = pub
	}

	stopDebug := startDebugServer(cfg, logger)
	defer stopDebug()

	application := app.New(cfg, client, jobPoller, sinks, publisher, uuid.New(), clock, logger)
	result, err := application.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("extraction complete",
		zap.String("run_id", result.RunID),
		zap.String("job_id", result.JobID),
		zap.Strings("locations", result.Locations),
		zap.String("company_description", result.Record.CompanyDescription),
		zap.String("company_industry", result.Record.CompanyIndustry),
		zap.String("who_they_serve", result.Record.WhoTheyServe),
	)
	return nil
}

// buildSinks assembles the configured sinks. The CSV sink is always on;
// Postgres and GCS join when configured.
func buildSinks(
	ctx context.Context,
	cfg config.Config,
	logger *zap.Logger,
) ([]app.NamedSink, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	csvSink, err := csvsink.New(cfg.Output.Path, logger.Named("csv"))
	if err != nil {
		return nil, cleanup, fmt.Errorf("init csv sink: %w", err)
	}
	sinks := []app.NamedSink{{Name: "csv", Sink: csvSink}}

	if cfg.Postgres.DSN != "" {
		pool, err := postgressink.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("init postgres sink: %w", err)
		}
		closers = append(closers, pool.Close)
		store, err := postgressink.New(pool)
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("init postgres sink: %w", err)
		}
		sinks = append(sinks, app.NamedSink{Name: "postgres", Sink: store})
	}

	if cfg.GCS.Bucket != "" {
		storageClient, err := storage.NewClient(ctx)
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("init gcs client: %w", err)
		}
		closers = append(closers, func() {
			if cerr := storageClient.Close(); cerr != nil {
				logger.Warn("close storage client failed", zap.Error(cerr))
			}
		})
		bucketSink, err := gcssink.New(storageClient, gcssink.Config{
			Bucket: cfg.GCS.Bucket,
			Object: cfg.GCS.Object,
		})
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("init gcs sink: %w", err)
		}
		sinks = append(sinks, app.NamedSink{Name: "gcs", Sink: bucketSink})
	}

	return sinks, cleanup, nil
}

// startDebugServer serves /healthz and /metrics while the run is in flight
// when a listen address is configured. The returned func shuts it down.
func startDebugServer(cfg config.Config, logger *zap.Logger) func() {
	if cfg.Debug.ListenAddr == "" {
		return func() {}
	}

	srv := &http.Server{
		Addr:              cfg.Debug.ListenAddr,
		Handler:           api.NewServer(logger.Named("api")).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("debug server started", zap.String("addr", cfg.Debug.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("debug server error", zap.Error(err))
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("debug server shutdown error", zap.Error(err))
		}
	}
}
