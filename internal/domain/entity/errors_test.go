package entity

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyProviderError(t *testing.T) {
	t.Run("passes through classified errors", func(t *testing.T) {
		original := InvalidIdentifier(KindSolana, "bad address")
		wrapped := fmt.Errorf("query failed: %w", original)

		got := ClassifyProviderError(KindSolana, wrapped)
		assert.Equal(t, ProviderErrInvalidIdentifier, got.Kind)
	})

	t.Run("deadline becomes timeout", func(t *testing.T) {
		got := ClassifyProviderError(KindNear, context.DeadlineExceeded)
		assert.Equal(t, ProviderErrTimeout, got.Kind)
		assert.Equal(t, KindNear, got.Provider)
	})

	t.Run("anything else is unreachable", func(t *testing.T) {
		got := ClassifyProviderError(KindSui, errors.New("connection refused"))
		assert.Equal(t, ProviderErrUnreachable, got.Kind)
	})
}

func TestProviderErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	pe := NewProviderError(ProviderErrUnreachable, KindAptos, cause)

	assert.ErrorIs(t, pe, cause)
	assert.Equal(t, "boom", pe.Message)
	assert.Contains(t, pe.Error(), "aptos")
}

func TestConfigurationErrorMessage(t *testing.T) {
	err := NewConfigurationError("no client for kind %q", "klingon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "klingon")
}
