// Package app orchestrates one extraction run end to end.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nervousmark/firecrawl-integration/internal/config"
	"github.com/nervousmark/firecrawl-integration/internal/extraction"
	"github.com/nervousmark/firecrawl-integration/internal/firecrawl"
	"github.com/nervousmark/firecrawl-integration/internal/metrics"
	"github.com/nervousmark/firecrawl-integration/internal/poller"
)

// CrawlClient submits crawl jobs to the remote API.
type CrawlClient interface {
	SubmitCrawl(ctx context.Context, req firecrawl.CrawlRequest) (string, error)
}

// JobPoller waits for a submitted job to reach a terminal state.
type JobPoller interface {
	Poll(ctx context.Context, jobID string) poller.Outcome
}

// NamedSink pairs a sink with the backend label used in logs and metrics.
type NamedSink struct {
	Name string
	Sink extraction.Sink
}

// App holds the collaborators for a run.
type App struct {
	cfg       config.Config
	client    CrawlClient
	poller    JobPoller
	sinks     []NamedSink
	publisher extraction.Publisher
	idGen     extraction.IDGenerator
	clock     extraction.Clock
	logger    *zap.Logger
}

// New constructs an App.
func New(
	cfg config.Config,
	client CrawlClient,
	jobPoller JobPoller,
	sinks []NamedSink,
	publisher extraction.Publisher,
	idGen extraction.IDGenerator,
	clock extraction.Clock,
	logger *zap.Logger,
) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		cfg:       cfg,
		client:    client,
		poller:    jobPoller,
		sinks:     sinks,
		publisher: publisher,
		idGen:     idGen,
		clock:     clock,
		logger:    logger,
	}
}

// Run submits the configured page for extraction, waits for the job to
// finish, and persists the extracted record. Every failure path maps to
// exactly one terminal error.
func (a *App) Run(ctx context.Context) (extraction.RunResult, error) {
	if strings.TrimSpace(a.cfg.API.Key) == "" {
		metrics.ObserveRun("missing_credential")
		return extraction.RunResult{}, extraction.ErrMissingCredential
	}

	runID, err := a.idGen.NewID()
	if err != nil {
		metrics.ObserveRun("error")
		return extraction.RunResult{}, fmt.Errorf("generate run id: %w", err)
	}
	logger := a.logger.With(zap.String("run_id", runID))

	req := firecrawl.NewListingRequest(a.cfg.Target.URL, a.cfg.Extraction.Prompt)
	jobID, err := a.client.SubmitCrawl(ctx, req)
	if err != nil {
		metrics.ObserveRun("submission_error")
		logger.Error("crawl submission failed", zap.String("url", a.cfg.Target.URL), zap.Error(err))
		return extraction.RunResult{}, fmt.Errorf("submit crawl for %s: %w", a.cfg.Target.URL, err)
	}
	logger.Info("crawl job submitted",
		zap.String("job_id", jobID),
		zap.String("url", a.cfg.Target.URL),
	)

	outcome := a.poller.Poll(ctx, jobID)
	switch outcome.Kind {
	case poller.KindSuccess:
		// fall through to persistence
	case poller.KindFailed:
		metrics.ObserveRun(outcome.Kind.String())
		return extraction.RunResult{}, fmt.Errorf("job %s: %w", jobID, extraction.ErrRemoteJobFailed)
	case poller.KindTimedOut:
		metrics.ObserveRun(outcome.Kind.String())
		return extraction.RunResult{}, fmt.Errorf(
			"job %s after %d attempts: %w", jobID, outcome.Attempts, extraction.ErrRemoteJobTimedOut)
	default:
		metrics.ObserveRun(outcome.Kind.String())
		return extraction.RunResult{}, fmt.Errorf("poll job %s: %w", jobID, outcome.Err)
	}

	rec := extraction.RecordFromStatus(outcome.Status)
	result := extraction.RunResult{
		RunID:    runID,
		JobID:    jobID,
		Record:   rec,
		Attempts: outcome.Attempts,
	}

	for _, ns := range a.sinks {
		location, err := ns.Sink.WriteRecord(ctx, rec)
		if err != nil {
			metrics.ObserveSinkWrite(ns.Name, "error")
			metrics.ObserveRun("sink_error")
			logger.Error("record write failed",
				zap.String("backend", ns.Name),
				zap.Error(err),
			)
			return extraction.RunResult{}, fmt.Errorf("write record to %s: %w", ns.Name, err)
		}
		metrics.ObserveSinkWrite(ns.Name, "ok")
		logger.Info("record persisted",
			zap.String("backend", ns.Name),
			zap.String("location", location),
		)
		result.Locations = append(result.Locations, location)
	}

	if err := a.publishCompletion(ctx, logger, result); err != nil {
		metrics.ObserveRun("publish_error")
		return extraction.RunResult{}, err
	}

	metrics.ObserveRun(poller.KindSuccess.String())
	logger.Info("extraction run finished",
		zap.String("job_id", jobID),
		zap.Int("attempts", outcome.Attempts),
	)
	return result, nil
}

func (a *App) publishCompletion(
	ctx context.Context,
	logger *zap.Logger,
	result extraction.RunResult,
) error {
	if a.publisher == nil || a.cfg.PubSub.TopicName == "" {
		return nil
	}
	payload := map[string]any{
		"run_id":    result.RunID,
		"job_id":    result.JobID,
		"url":       a.cfg.Target.URL,
		"attempts":  result.Attempts,
		"timestamp": a.clock.Now().Format(time.RFC3339),
	}
	id, err := a.publisher.Publish(ctx, a.cfg.PubSub.TopicName, payload)
	if err != nil {
		logger.Error("completion publish failed",
			zap.String("topic", a.cfg.PubSub.TopicName),
			zap.Error(err),
		)
		return fmt.Errorf("publish completion event: %w", err)
	}
	logger.Info("completion event published",
		zap.String("topic", a.cfg.PubSub.TopicName),
		zap.String("message_id", id),
	)
	return nil
}
