package entity

import (
	"context"
	"errors"
	"fmt"
)

// ProviderErrorKind classifies per-account provider failures.
type ProviderErrorKind string

const (
	ProviderErrInvalidIdentifier ProviderErrorKind = "invalid_identifier"
	ProviderErrUnreachable       ProviderErrorKind = "unreachable"
	ProviderErrRateLimited       ProviderErrorKind = "rate_limited"
	ProviderErrTimeout           ProviderErrorKind = "timeout"
	ProviderErrMalformedResponse ProviderErrorKind = "malformed_response"
)

// ProviderError is a classified failure from one provider client. It is
// recovered locally by the orchestrator and never aborts sibling queries.
type ProviderError struct {
	Kind     ProviderErrorKind `json:"kind"`
	Provider ProviderKind      `json:"provider"`
	Err      error             `json:"-"`
	Message  string            `json:"message"`
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderError builds a classified provider failure.
func NewProviderError(kind ProviderErrorKind, provider ProviderKind, err error) *ProviderError {
	pe := &ProviderError{Kind: kind, Provider: provider, Err: err}
	if err != nil {
		pe.Message = err.Error()
	}
	return pe
}

// InvalidIdentifier reports an identifier rejected before any network call.
func InvalidIdentifier(provider ProviderKind, format string, args ...any) *ProviderError {
	return NewProviderError(ProviderErrInvalidIdentifier, provider, fmt.Errorf(format, args...))
}

// ClassifyProviderError maps an arbitrary client error onto the taxonomy.
// Already-classified errors pass through; context deadlines become
// timeouts; everything else is an unreachable provider.
func ClassifyProviderError(provider ProviderKind, err error) *ProviderError {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewProviderError(ProviderErrTimeout, provider, err)
	}
	return NewProviderError(ProviderErrUnreachable, provider, err)
}

// PricingErrorKind classifies per-symbol pricing failures.
type PricingErrorKind string

const (
	PricingErrAllProvidersFailed PricingErrorKind = "all_providers_failed"
	PricingErrRateLimitExhausted PricingErrorKind = "rate_limit_exhausted"
)

// PricingError marks one asset symbol as unpriceable for the cycle. It never
// blocks other symbols.
type PricingError struct {
	Kind   PricingErrorKind
	Symbol string
	Err    error
}

func (e *PricingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pricing %s: %s: %v", e.Symbol, e.Kind, e.Err)
	}
	return fmt.Sprintf("pricing %s: %s", e.Symbol, e.Kind)
}

func (e *PricingError) Unwrap() error { return e.Err }

// ConfigurationError indicates a corrupt address book or bad wiring, e.g. a
// stored account whose providerKind has no registered client. It is the only
// error class fatal to a whole query cycle.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// NewConfigurationError formats a fatal configuration failure.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}
