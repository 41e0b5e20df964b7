package jsonrpc

import (
	"context"
	"errors"

	"github.com/oakencore/gringotts/internal/domain/entity"
)

// Classify maps a JSON-RPC client error onto the provider error taxonomy.
// A node-level RPC error is treated as a rejected identifier, since balance
// queries only vary by the supplied address.
func Classify(kind entity.ProviderKind, err error) *entity.ProviderError {
	switch {
	case errors.Is(err, ErrRateLimited):
		return entity.NewProviderError(entity.ProviderErrRateLimited, kind, err)
	case errors.Is(err, context.DeadlineExceeded):
		return entity.NewProviderError(entity.ProviderErrTimeout, kind, err)
	case errors.Is(err, ErrMalformed):
		return entity.NewProviderError(entity.ProviderErrMalformedResponse, kind, err)
	}
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return entity.NewProviderError(entity.ProviderErrInvalidIdentifier, kind, err)
	}
	return entity.NewProviderError(entity.ProviderErrUnreachable, kind, err)
}
