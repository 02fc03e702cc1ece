package extraction

import (
	"context"
	"time"
)

// Sink persists one listing record and returns where it landed.
type Sink interface {
	WriteRecord(ctx context.Context, rec ListingRecord) (string, error)
}

// Publisher pushes completion events to Pub/Sub (or similar).
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) (string, error)
}

// Clock returns the current time and sleeps between poll attempts
// (useful for testing).
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// IDGenerator produces run IDs (UUIDs).
type IDGenerator interface {
	NewID() (string, error)
}
