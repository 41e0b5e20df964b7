package port

import (
	"context"

	"github.com/oakencore/gringotts/internal/domain/entity"
)

// ProviderClient is the single capability every chain or banking client
// exposes. Implementations own their transport and wire decoding; failures
// are returned as *entity.ProviderError so the orchestrator stays
// provider-agnostic.
type ProviderClient interface {
	// FetchBalances returns all asset balances held by the identifier
	// (wallet address or bank account id) on this provider.
	FetchBalances(ctx context.Context, identifier string) ([]entity.RawBalance, error)

	// Kind returns the provider tag this client serves.
	Kind() entity.ProviderKind
}
