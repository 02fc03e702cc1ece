// Package poller implements the bounded-retry polling loop around the
// remote job-status endpoint.
package poller

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nervousmark/firecrawl-integration/internal/extraction"
	"github.com/nervousmark/firecrawl-integration/internal/firecrawl"
	"github.com/nervousmark/firecrawl-integration/internal/metrics"
)

// Defaults applied when Config fields are unset.
const (
	DefaultMaxAttempts = 30
	DefaultDelay       = 2 * time.Second
)

// StatusClient fetches the current status of a submitted job.
type StatusClient interface {
	CrawlStatus(ctx context.Context, jobID string) (firecrawl.StatusResponse, error)
}

// OutcomeKind enumerates the terminal results of a polling session.
type OutcomeKind int

// A session ends in exactly one of these.
const (
	KindSuccess OutcomeKind = iota
	KindFailed
	KindTimedOut
	KindTransportError
)

// String returns the metrics/log label for the kind.
func (k OutcomeKind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindFailed:
		return "failed"
	case KindTimedOut:
		return "timed_out"
	case KindTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of one polling session.
type Outcome struct {
	Kind OutcomeKind
	// Status carries the full status payload when Kind is KindSuccess.
	Status firecrawl.StatusResponse
	// Err carries the underlying error when Kind is KindTransportError.
	Err error
	// Attempts is the number of status queries performed.
	Attempts int
}

// Config controls Poller behavior.
type Config struct {
	MaxAttempts int
	Delay       time.Duration
}

// Poller queries a job's status until it reaches a terminal state, the
// attempt budget runs out, or the transport fails. Transport errors are
// not retried.
type Poller struct {
	client StatusClient
	clock  extraction.Clock
	cfg    Config
	logger *zap.Logger
}

// New constructs a Poller. MaxAttempts below 1 falls back to
// DefaultMaxAttempts, a negative Delay falls back to DefaultDelay.
func New(client StatusClient, clock extraction.Clock, cfg Config, logger *zap.Logger) *Poller {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Delay < 0 {
		cfg.Delay = DefaultDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		client: client,
		clock:  clock,
		cfg:    cfg,
		logger: logger,
	}
}

// Poll runs one polling session for jobID and returns its terminal outcome.
// It performs at most MaxAttempts status queries and sleeps at most
// MaxAttempts-1 times; there is no sleep after the final attempt or after
// a terminal result.
func (p *Poller) Poll(ctx context.Context, jobID string) Outcome {
	attempts := 0
	for attempts < p.cfg.MaxAttempts {
		status, err := p.client.CrawlStatus(ctx, jobID)
		attempts++
		if err != nil {
			// Fail fast: transport and response errors are terminal.
			metrics.ObserveStatusQuery("error")
			p.logger.Error("job status check failed",
				zap.String("job_id", jobID),
				zap.Int("attempt", attempts),
				zap.Error(err),
			)
			return p.finish(Outcome{
				Kind:     KindTransportError,
				Err:      fmt.Errorf("check job status: %w", err),
				Attempts: attempts,
			}, jobID)
		}

		switch status.Status {
		case firecrawl.StatusCompleted:
			metrics.ObserveStatusQuery(firecrawl.StatusCompleted)
			p.logger.Info("job completed",
				zap.String("job_id", jobID),
				zap.Int("attempt", attempts),
			)
			return p.finish(Outcome{
				Kind:     KindSuccess,
				Status:   status,
				Attempts: attempts,
			}, jobID)
		case firecrawl.StatusFailed:
			metrics.ObserveStatusQuery(firecrawl.StatusFailed)
			p.logger.Error("job failed",
				zap.String("job_id", jobID),
				zap.Int("attempt", attempts),
			)
			return p.finish(Outcome{
				Kind:     KindFailed,
				Attempts: attempts,
			}, jobID)
		}

		metrics.ObserveStatusQuery("pending")
		if attempts < p.cfg.MaxAttempts {
			p.logger.Info("job still in progress",
				zap.String("job_id", jobID),
				zap.String("status", status.Status),
				zap.Int("attempt", attempts),
				zap.Duration("delay", p.cfg.Delay),
			)
			if err := p.clock.Sleep(ctx, p.cfg.Delay); err != nil {
				return p.finish(Outcome{
					Kind:     KindTransportError,
					Err:      fmt.Errorf("wait between attempts: %w", err),
					Attempts: attempts,
				}, jobID)
			}
		}
	}

	p.logger.Error("job timed out",
		zap.String("job_id", jobID),
		zap.Int("attempts", attempts),
	)
	return p.finish(Outcome{
		Kind:     KindTimedOut,
		Attempts: attempts,
	}, jobID)
}

func (p *Poller) finish(o Outcome, jobID string) Outcome {
	metrics.ObservePollAttempts(o.Attempts)
	p.logger.Debug("polling session finished",
		zap.String("job_id", jobID),
		zap.String("outcome", o.Kind.String()),
		zap.Int("attempts", o.Attempts),
	)
	return o
}
