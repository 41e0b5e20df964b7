package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oakencore/gringotts/internal/app/port"
	"github.com/oakencore/gringotts/internal/config"
	"github.com/oakencore/gringotts/internal/domain/entity"
)

type fakeProvider struct {
	kind     entity.ProviderKind
	balances map[string][]entity.RawBalance
	errs     map[string]error
	delay    time.Duration

	mu       sync.Mutex
	inFlight int32
	peak     int32
}

func (f *fakeProvider) Kind() entity.ProviderKind { return f.kind }

func (f *fakeProvider) FetchBalances(ctx context.Context, identifier string) ([]entity.RawBalance, error) {
	current := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	f.mu.Lock()
	if current > f.peak {
		f.peak = current
	}
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := f.errs[identifier]; ok {
		return nil, err
	}
	return f.balances[identifier], nil
}

type fakeRegistry struct {
	providers map[entity.ProviderKind]port.ProviderClient
}

func (f *fakeRegistry) Client(kind entity.ProviderKind) (port.ProviderClient, error) {
	client, ok := f.providers[kind]
	if !ok {
		return nil, entity.NewConfigurationError("no provider client registered for kind %q", kind)
	}
	return client, nil
}

type fakeStore struct {
	accounts []entity.TrackedAccount
	err      error
}

func (f *fakeStore) LoadAll() ([]entity.TrackedAccount, error) { return f.accounts, f.err }

type noopEnricher struct{ called bool }

func (e *noopEnricher) Enrich(_ context.Context, results []entity.AccountResult) []entity.AccountResult {
	e.called = true
	return results
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Query.AccountTimeoutSeconds = 1
	cfg.Query.MaxConcurrentRequests = 2
	return cfg
}

func solBalance(quantity string) []entity.RawBalance {
	return []entity.RawBalance{{
		Symbol:   "SOL",
		Quantity: decimal.RequireFromString(quantity),
		Kind:     entity.KindSolana,
	}}
}

func TestQueryAccounts_PositionalResults(t *testing.T) {
	provider := &fakeProvider{
		kind: entity.KindSolana,
		balances: map[string][]entity.RawBalance{
			"addr-a": solBalance("1"),
			"addr-b": solBalance("2"),
			"addr-c": solBalance("3"),
		},
	}
	registry := &fakeRegistry{providers: map[entity.ProviderKind]port.ProviderClient{
		entity.KindSolana: provider,
	}}
	qs := NewQueryService(&fakeStore{}, registry, &noopEnricher{}, testConfig(), zap.NewNop())

	accounts := []entity.TrackedAccount{
		{Name: "A", Identifier: "addr-a", Kind: entity.KindSolana},
		{Name: "B", Identifier: "addr-b", Kind: entity.KindSolana},
		{Name: "C", Identifier: "addr-c", Kind: entity.KindSolana},
	}

	results, err := qs.QueryAccounts(context.Background(), accounts)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, acc := range accounts {
		assert.Equal(t, acc.Name, results[i].Account.Name)
		require.Len(t, results[i].Balances, 1)
		assert.Equal(t, acc.Name, results[i].Balances[0].AccountName)
	}
	assert.Equal(t, "2", results[1].Balances[0].Quantity.String())
}

func TestQueryAccounts_OneFailureDoesNotAbortOthers(t *testing.T) {
	provider := &fakeProvider{
		kind: entity.KindSolana,
		balances: map[string][]entity.RawBalance{
			"addr-a": solBalance("1"),
			"addr-c": solBalance("3"),
		},
		errs: map[string]error{
			"addr-b": errors.New("node down"),
		},
	}
	registry := &fakeRegistry{providers: map[entity.ProviderKind]port.ProviderClient{
		entity.KindSolana: provider,
	}}
	qs := NewQueryService(&fakeStore{}, registry, &noopEnricher{}, testConfig(), zap.NewNop())

	results, err := qs.QueryAccounts(context.Background(), []entity.TrackedAccount{
		{Name: "A", Identifier: "addr-a", Kind: entity.KindSolana},
		{Name: "B", Identifier: "addr-b", Kind: entity.KindSolana},
		{Name: "C", Identifier: "addr-c", Kind: entity.KindSolana},
	})
	require.NoError(t, err)

	assert.False(t, results[0].Failed())
	require.True(t, results[1].Failed())
	assert.Equal(t, entity.ProviderErrUnreachable, results[1].Err.Kind)
	assert.False(t, results[2].Failed())
}

func TestQueryAccounts_RespectsConcurrencyLimit(t *testing.T) {
	provider := &fakeProvider{
		kind:  entity.KindSolana,
		delay: 20 * time.Millisecond,
		balances: map[string][]entity.RawBalance{
			"a": solBalance("1"), "b": solBalance("1"),
			"c": solBalance("1"), "d": solBalance("1"),
		},
	}
	registry := &fakeRegistry{providers: map[entity.ProviderKind]port.ProviderClient{
		entity.KindSolana: provider,
	}}
	cfg := testConfig()
	cfg.Query.MaxConcurrentRequests = 2
	qs := NewQueryService(&fakeStore{}, registry, &noopEnricher{}, cfg, zap.NewNop())

	_, err := qs.QueryAccounts(context.Background(), []entity.TrackedAccount{
		{Name: "A", Identifier: "a", Kind: entity.KindSolana},
		{Name: "B", Identifier: "b", Kind: entity.KindSolana},
		{Name: "C", Identifier: "c", Kind: entity.KindSolana},
		{Name: "D", Identifier: "d", Kind: entity.KindSolana},
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, provider.peak, int32(2))
}

func TestQueryAccounts_PerAccountTimeout(t *testing.T) {
	provider := &fakeProvider{
		kind:  entity.KindSolana,
		delay: 5 * time.Second,
	}
	registry := &fakeRegistry{providers: map[entity.ProviderKind]port.ProviderClient{
		entity.KindSolana: provider,
	}}
	cfg := testConfig()
	cfg.Query.AccountTimeoutSeconds = 1
	qs := NewQueryService(&fakeStore{}, registry, &noopEnricher{}, cfg, zap.NewNop())

	start := time.Now()
	results, err := qs.QueryAccounts(context.Background(), []entity.TrackedAccount{
		{Name: "Slow", Identifier: "x", Kind: entity.KindSolana},
	})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)

	require.True(t, results[0].Failed())
	assert.Equal(t, entity.ProviderErrTimeout, results[0].Err.Kind)
}

func TestQueryAccounts_UnknownKindIsFatal(t *testing.T) {
	registry := &fakeRegistry{providers: map[entity.ProviderKind]port.ProviderClient{}}
	qs := NewQueryService(&fakeStore{}, registry, &noopEnricher{}, testConfig(), zap.NewNop())

	_, err := qs.QueryAccounts(context.Background(), []entity.TrackedAccount{
		{Name: "Ghost", Identifier: "x", Kind: entity.ProviderKind("nonsense")},
	})
	require.Error(t, err)

	var ce *entity.ConfigurationError
	assert.ErrorAs(t, err, &ce)
}

func TestSnapshot_SkipPricingBypassesEnricher(t *testing.T) {
	provider := &fakeProvider{
		kind:     entity.KindSolana,
		balances: map[string][]entity.RawBalance{"addr": solBalance("1")},
	}
	registry := &fakeRegistry{providers: map[entity.ProviderKind]port.ProviderClient{
		entity.KindSolana: provider,
	}}
	store := &fakeStore{accounts: []entity.TrackedAccount{
		{Name: "Hot", Identifier: "addr", Kind: entity.KindSolana},
	}}

	cfg := testConfig()
	cfg.Query.SkipPricing = true
	enricher := &noopEnricher{}
	qs := NewQueryService(store, registry, enricher, cfg, zap.NewNop())

	view, err := qs.Snapshot(context.Background())
	require.NoError(t, err)

	assert.False(t, enricher.called)
	require.Len(t, view.Groups, 1)
	assert.False(t, view.Groups[0].Assets[0].Priced)
}

func TestQueryOne(t *testing.T) {
	provider := &fakeProvider{
		kind:     entity.KindSolana,
		balances: map[string][]entity.RawBalance{"addr": solBalance("7")},
	}
	registry := &fakeRegistry{providers: map[entity.ProviderKind]port.ProviderClient{
		entity.KindSolana: provider,
	}}
	store := &fakeStore{accounts: []entity.TrackedAccount{
		{Name: "Hot", Identifier: "addr", Kind: entity.KindSolana},
	}}
	qs := NewQueryService(store, registry, &noopEnricher{}, testConfig(), zap.NewNop())

	res, err := qs.QueryOne(context.Background(), "Hot")
	require.NoError(t, err)
	require.Len(t, res.Balances, 1)
	assert.Equal(t, "7", res.Balances[0].Quantity.String())

	_, err = qs.QueryOne(context.Background(), "Missing")
	assert.Error(t, err)
}
