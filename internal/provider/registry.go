package provider

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/oakencore/gringotts/internal/app/port"
	"github.com/oakencore/gringotts/internal/config"
	"github.com/oakencore/gringotts/internal/domain/entity"
	"github.com/oakencore/gringotts/internal/provider/aptos"
	"github.com/oakencore/gringotts/internal/provider/circle"
	"github.com/oakencore/gringotts/internal/provider/evm"
	"github.com/oakencore/gringotts/internal/provider/mercury"
	"github.com/oakencore/gringotts/internal/provider/near"
	"github.com/oakencore/gringotts/internal/provider/solana"
	"github.com/oakencore/gringotts/internal/provider/starknet"
	"github.com/oakencore/gringotts/internal/provider/sui"
)

// Registry resolves a provider kind to its client. All clients are built
// once at startup and shared across query cycles.
type Registry struct {
	clients map[entity.ProviderKind]port.ProviderClient
	logger  *zap.Logger
}

// NewRegistry wires every supported provider client from the configuration.
// An EVM chain that fails to dial is registered with a stand-in that fails
// its own queries as Unreachable, so one bad endpoint never aborts the
// cycles of accounts on healthy chains.
func NewRegistry(cfg *config.Config, logger *zap.Logger) *Registry {
	log := logger.Named("ProviderRegistry")
	timeout := cfg.AccountTimeout()

	clients := map[entity.ProviderKind]port.ProviderClient{
		entity.KindSolana:   solana.NewClient(cfg.ChainRPCURL("solana"), timeout, logger),
		entity.KindNear:     near.NewClient(cfg.ChainRPCURL("near"), timeout, logger),
		entity.KindSui:      sui.NewClient(cfg.ChainRPCURL("sui"), timeout, logger),
		entity.KindStarknet: starknet.NewClient(cfg.ChainRPCURL("starknet"), timeout, logger),
		entity.KindAptos:    aptos.NewClient(cfg.ChainRPCURL("aptos"), timeout, logger),
		entity.KindMercury:  mercury.NewClient(cfg.Mercury.BaseURL, timeout, logger),
		entity.KindCircle:   circle.NewClient(cfg.Circle.BaseURL, timeout, logger),
	}

	for kind, def := range evm.Definitions {
		client, err := evm.NewClient(def, cfg.ChainRPCURL(string(kind)), timeout, logger)
		if err != nil {
			log.Warn("Failed to connect EVM chain, its accounts will fail per-query",
				zap.String("chain", def.Name),
				zap.Error(err))
			clients[kind] = &unreachableClient{kind: kind, err: err}
			continue
		}
		clients[kind] = client
	}

	return &Registry{clients: clients, logger: log}
}

// unreachableClient stands in for a chain whose RPC endpoints could not be
// dialed at startup. Its accounts fail individually instead of turning a
// dead endpoint into a configuration error for the whole cycle.
type unreachableClient struct {
	kind entity.ProviderKind
	err  error
}

func (c *unreachableClient) Kind() entity.ProviderKind { return c.kind }

func (c *unreachableClient) FetchBalances(context.Context, string) ([]entity.RawBalance, error) {
	return nil, entity.NewProviderError(entity.ProviderErrUnreachable, c.kind,
		fmt.Errorf("rpc endpoint unavailable: %w", c.err))
}

// Client returns the provider client for a kind. An unknown kind is a
// configuration error and aborts the query cycle.
func (r *Registry) Client(kind entity.ProviderKind) (port.ProviderClient, error) {
	client, ok := r.clients[kind]
	if !ok {
		return nil, entity.NewConfigurationError("no provider client registered for kind %q", kind)
	}
	return client, nil
}

// Kinds returns the registered provider kinds in stable order.
func (r *Registry) Kinds() []entity.ProviderKind {
	kinds := make([]entity.ProviderKind, 0, len(r.clients))
	for kind := range r.clients {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
