package price

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_AcquireWithinBurst(t *testing.T) {
	gate := NewGate(5, time.Second, 10*time.Millisecond)

	for i := 0; i < 5; i++ {
		require.NoError(t, gate.Acquire(context.Background()))
	}
}

func TestGate_BoundedWaitExhausts(t *testing.T) {
	// One token per hour, so the second acquire cannot succeed within the
	// 5ms wait budget.
	gate := NewGate(1, time.Hour, 5*time.Millisecond)

	require.NoError(t, gate.Acquire(context.Background()))

	err := gate.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrRateLimitExhausted)
}

func TestGate_ParentCancellationWins(t *testing.T) {
	gate := NewGate(1, time.Hour, time.Minute)
	require.NoError(t, gate.Acquire(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := gate.Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
