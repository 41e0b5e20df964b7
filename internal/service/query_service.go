package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/oakencore/gringotts/internal/aggregate"
	"github.com/oakencore/gringotts/internal/app/port"
	"github.com/oakencore/gringotts/internal/config"
	"github.com/oakencore/gringotts/internal/domain/entity"
	"github.com/oakencore/gringotts/internal/pkg/metrics"
)

// ClientRegistry resolves provider kinds to clients.
type ClientRegistry interface {
	Client(kind entity.ProviderKind) (port.ProviderClient, error)
}

// BalanceEnricher attaches USD values to query results.
type BalanceEnricher interface {
	Enrich(ctx context.Context, results []entity.AccountResult) []entity.AccountResult
}

// QueryService orchestrates one portfolio query cycle: fan out over every
// tracked account with bounded concurrency, enrich with prices, aggregate.
type QueryService struct {
	store    port.AddressBookStore
	registry ClientRegistry
	enricher BalanceEnricher
	cfg      *config.Config
	logger   *zap.Logger
}

// NewQueryService wires the orchestrator.
func NewQueryService(
	store port.AddressBookStore,
	registry ClientRegistry,
	enricher BalanceEnricher,
	cfg *config.Config,
	logger *zap.Logger,
) *QueryService {
	return &QueryService{
		store:    store,
		registry: registry,
		enricher: enricher,
		cfg:      cfg,
		logger:   logger.Named("QueryService"),
	}
}

// QueryAccounts fetches balances for the given accounts. Results are
// positional: results[i] always belongs to accounts[i], whatever order the
// queries finished in. A provider failure lands in its own result slot and
// never aborts the rest; only a missing client registration (a
// configuration error) fails the whole call.
func (s *QueryService) QueryAccounts(ctx context.Context, accounts []entity.TrackedAccount) ([]entity.AccountResult, error) {
	// Resolve every client before spending any network calls, so a corrupt
	// address book fails fast.
	clients := make([]port.ProviderClient, len(accounts))
	for i, acc := range accounts {
		client, err := s.registry.Client(acc.Kind)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", acc.Name, err)
		}
		clients[i] = client
	}

	results := make([]entity.AccountResult, len(accounts))

	var g errgroup.Group
	g.SetLimit(s.cfg.Query.MaxConcurrentRequests)
	for i, acc := range accounts {
		g.Go(func() error {
			results[i] = s.queryOne(ctx, clients[i], acc)
			return nil
		})
	}
	_ = g.Wait() // workers record failures in their slot, never return them
	return results, nil
}

func (s *QueryService) queryOne(ctx context.Context, client port.ProviderClient, acc entity.TrackedAccount) entity.AccountResult {
	queryCtx, cancel := context.WithTimeout(ctx, s.cfg.AccountTimeout())
	defer cancel()

	raw, err := client.FetchBalances(queryCtx, acc.Identifier)
	if err != nil {
		pe := entity.ClassifyProviderError(acc.Kind, err)
		metrics.ProviderRequests.WithLabelValues(string(acc.Kind), metrics.OutcomeError).Inc()
		s.logger.Warn("Account query failed",
			zap.String("account", acc.Name),
			zap.String("provider", string(acc.Kind)),
			zap.String("kind", string(pe.Kind)),
			zap.Error(err))
		return entity.AccountResult{Account: acc, Err: pe}
	}
	metrics.ProviderRequests.WithLabelValues(string(acc.Kind), metrics.OutcomeOK).Inc()

	balances := make([]entity.EnrichedBalance, 0, len(raw))
	for _, rb := range raw {
		rb.AccountName = acc.Name
		balances = append(balances, entity.Unpriced(rb))
	}
	return entity.AccountResult{Account: acc, Balances: balances}
}

// Snapshot runs a full query cycle over the address book and returns the
// aggregated portfolio view.
func (s *QueryService) Snapshot(ctx context.Context) (*entity.PortfolioView, error) {
	accounts, err := s.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load address book: %w", err)
	}

	results, err := s.QueryAccounts(ctx, accounts)
	if err != nil {
		return nil, err
	}
	if !s.cfg.Query.SkipPricing {
		results = s.enricher.Enrich(ctx, results)
	}

	metrics.QueryCycles.Inc()
	return aggregate.Build(results), nil
}

// QueryOne queries a single tracked account by name.
func (s *QueryService) QueryOne(ctx context.Context, name string) (entity.AccountResult, error) {
	accounts, err := s.store.LoadAll()
	if err != nil {
		return entity.AccountResult{}, fmt.Errorf("failed to load address book: %w", err)
	}

	for _, acc := range accounts {
		if acc.Name != name {
			continue
		}
		results, err := s.QueryAccounts(ctx, []entity.TrackedAccount{acc})
		if err != nil {
			return entity.AccountResult{}, err
		}
		if !s.cfg.Query.SkipPricing {
			results = s.enricher.Enrich(ctx, results)
		}
		return results[0], nil
	}
	return entity.AccountResult{}, fmt.Errorf("no tracked account named %q", name)
}

// Accounts exposes the tracked accounts for read-only listings.
func (s *QueryService) Accounts() ([]entity.TrackedAccount, error) {
	return s.store.LoadAll()
}
