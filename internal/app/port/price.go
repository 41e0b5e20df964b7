package port

import (
	"context"

	"github.com/oakencore/gringotts/internal/domain/entity"
)

// PriceSource is one external USD price oracle. The enrichment service
// consults sources in configured order and treats them uniformly.
type PriceSource interface {
	// Name identifies the source in quotes and metrics.
	Name() string

	// Quote returns the current USD unit price for an asset symbol.
	Quote(ctx context.Context, symbol string) (entity.PriceQuote, error)
}
