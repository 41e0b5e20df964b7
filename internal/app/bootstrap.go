// Package app wires the query core from configuration. Both the CLI and
// the dashboard server build the same object graph through it.
package app

import (
	"go.uber.org/zap"

	"github.com/oakencore/gringotts/internal/app/port"
	"github.com/oakencore/gringotts/internal/config"
	"github.com/oakencore/gringotts/internal/price"
	"github.com/oakencore/gringotts/internal/provider"
	"github.com/oakencore/gringotts/internal/service"
	"github.com/oakencore/gringotts/internal/storage"
)

// BuildQueryService constructs the full query pipeline: address book store,
// provider registry, price enrichment and the orchestrator on top.
func BuildQueryService(cfg *config.Config, bookPath string, logger *zap.Logger) (*service.QueryService, *storage.FileStore, error) {
	store, err := storage.NewFileStore(bookPath)
	if err != nil {
		return nil, nil, err
	}

	registry := provider.NewRegistry(cfg, logger)

	sources := buildPriceSources(cfg, logger)
	cache := price.NewQuoteCache(cfg.CacheTTL())
	gates := make(map[string]*price.Gate, len(sources))
	for _, source := range sources {
		gates[source.Name()] = price.NewGate(cfg.Pricing.RateLimitTokens, cfg.RateLimitInterval(), cfg.MaxLimiterWait())
	}
	enricher := price.NewEnricher(sources, cache, gates, logger)

	qs := service.NewQueryService(store, registry, enricher, cfg, logger)
	return qs, store, nil
}

// buildPriceSources instantiates the oracles in the configured fallback
// order. Unknown names are skipped with a warning rather than failing
// startup.
func buildPriceSources(cfg *config.Config, logger *zap.Logger) []port.PriceSource {
	timeout := cfg.PriceRequestTimeout()
	sources := make([]port.PriceSource, 0, len(cfg.Pricing.ProviderOrder))
	for _, name := range cfg.Pricing.ProviderOrder {
		switch name {
		case "surge":
			sources = append(sources, price.NewSurgeSource(cfg.Surge.BaseURL, timeout, logger))
		case "coingecko":
			sources = append(sources, price.NewGeckoSource(cfg.Gecko.BaseURL, cfg.Gecko.VsCurrency, timeout, logger))
		default:
			logger.Warn("Unknown price source in providerOrder, skipping", zap.String("source", name))
		}
	}
	return sources
}
