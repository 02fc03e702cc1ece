package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherRecordsEvents(t *testing.T) {
	t.Parallel()

	p := New()

	id, err := p.Publish(context.Background(), "extractions", map[string]any{"job_id": "job-1"})
	require.NoError(t, err)
	assert.Equal(t, "memory-1", id)

	events := p.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "extractions", events[0].Topic)
}

func TestPublisherCopiesEvents(t *testing.T) {
	t.Parallel()

	p := New()
	_, err := p.Publish(context.Background(), "a", nil)
	require.NoError(t, err)

	events := p.Events()
	events[0].Topic = "mutated"

	assert.Equal(t, "a", p.Events()[0].Topic)
}
