package price

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/oakencore/gringotts/internal/app/port"
	"github.com/oakencore/gringotts/internal/domain/entity"
	"github.com/oakencore/gringotts/internal/pkg/metrics"
)

// quoteConcurrency bounds the per-symbol oracle fan-out within one cycle.
const quoteConcurrency = 8

// fiat currencies reported by banking providers. They are valued 1:1 in USD
// with a static quote instead of an oracle lookup.
var fiatSymbols = map[string]bool{
	"USD": true,
	"EUR": true,
}

// Enricher attaches USD values to raw balances. Quotes come from the cache
// when fresh, otherwise from the configured sources in order. Each source
// has its own token bucket, shared across every concurrent enrichment call
// to that source, since upstream quotas are account-wide.
type Enricher struct {
	sources []port.PriceSource
	cache   *QuoteCache
	gates   map[string]*Gate
	logger  *zap.Logger
}

// NewEnricher wires the sources in the order they should be tried. gates is
// keyed by source name; a source without a gate is called ungated.
func NewEnricher(sources []port.PriceSource, cache *QuoteCache, gates map[string]*Gate, logger *zap.Logger) *Enricher {
	return &Enricher{
		sources: sources,
		cache:   cache,
		gates:   gates,
		logger:  logger.Named("PriceEnricher"),
	}
}

// QuoteResult is the pricing outcome for one symbol within a cycle.
type QuoteResult struct {
	Quote entity.PriceQuote
	Err   *entity.PricingError
}

// QuoteSymbols resolves a USD quote for each distinct symbol. A failure on
// one symbol never blocks the others; the caller decides what an unpriced
// symbol means.
func (e *Enricher) QuoteSymbols(ctx context.Context, symbols []string) map[string]QuoteResult {
	distinct := make([]string, 0, len(symbols))
	seen := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		distinct = append(distinct, s)
	}
	sort.Strings(distinct)

	// Symbols are quoted concurrently; the per-source gates are the only
	// throttle on how fast the oracles are actually hit. Concurrent
	// refreshes of a symbol that just expired may race, the cache keeps
	// the newest quote either way.
	out := make([]QuoteResult, len(distinct))
	var g errgroup.Group
	g.SetLimit(quoteConcurrency)
	for i, symbol := range distinct {
		g.Go(func() error {
			out[i] = e.quoteOne(ctx, symbol)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	results := make(map[string]QuoteResult, len(distinct))
	for i, symbol := range distinct {
		results[symbol] = out[i]
	}
	return results
}

func (e *Enricher) quoteOne(ctx context.Context, symbol string) QuoteResult {
	if fiatSymbols[symbol] {
		return QuoteResult{Quote: entity.PriceQuote{
			Symbol:    symbol,
			PriceUSD:  decimal.NewFromInt(1),
			FetchedAt: time.Now(),
			Source:    "static",
		}}
	}

	if quote, ok := e.cache.Get(symbol); ok {
		metrics.QuoteCacheLookups.WithLabelValues("hit").Inc()
		return QuoteResult{Quote: quote}
	}
	metrics.QuoteCacheLookups.WithLabelValues("miss").Inc()

	// A source whose bucket is drained within the bounded wait is skipped
	// in favor of the next one; it never blocks the symbol indefinitely.
	var lastErr error
	for _, source := range e.sources {
		if gate, ok := e.gates[source.Name()]; ok {
			if err := gate.Acquire(ctx); err != nil {
				if !errors.Is(err, ErrRateLimitExhausted) {
					return QuoteResult{Err: &entity.PricingError{
						Kind:   entity.PricingErrAllProvidersFailed,
						Symbol: symbol,
						Err:    err,
					}}
				}
				e.logger.Warn("Price source rate limit exhausted, trying next",
					zap.String("source", source.Name()),
					zap.String("symbol", symbol))
				lastErr = err
				continue
			}
		}

		quote, err := source.Quote(ctx, symbol)
		if err != nil {
			metrics.PriceRequests.WithLabelValues(source.Name(), metrics.OutcomeError).Inc()
			e.logger.Warn("Price source failed for symbol",
				zap.String("source", source.Name()),
				zap.String("symbol", symbol),
				zap.Error(err))
			lastErr = err
			continue
		}
		metrics.PriceRequests.WithLabelValues(source.Name(), metrics.OutcomeOK).Inc()
		e.cache.Put(quote)
		return QuoteResult{Quote: quote}
	}

	kind := entity.PricingErrAllProvidersFailed
	if errors.Is(lastErr, ErrRateLimitExhausted) {
		kind = entity.PricingErrRateLimitExhausted
	}
	return QuoteResult{Err: &entity.PricingError{
		Kind:   kind,
		Symbol: symbol,
		Err:    lastErr,
	}}
}

// Enrich prices the balances of every successful account result in place.
// Symbols that cannot be priced stay unpriced rather than failing the
// cycle.
func (e *Enricher) Enrich(ctx context.Context, results []entity.AccountResult) []entity.AccountResult {
	var symbols []string
	for _, res := range results {
		if res.Failed() {
			continue
		}
		for _, bal := range res.Balances {
			symbols = append(symbols, bal.Symbol)
		}
	}
	quotes := e.QuoteSymbols(ctx, symbols)

	for i, res := range results {
		if res.Failed() {
			continue
		}
		for j, bal := range res.Balances {
			qr, ok := quotes[strings.ToUpper(bal.Symbol)]
			if !ok || qr.Err != nil {
				continue
			}
			results[i].Balances[j] = bal.WithQuote(qr.Quote)
		}
	}
	return results
}
