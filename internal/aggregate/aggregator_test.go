package aggregate

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakencore/gringotts/internal/domain/entity"
)

func priced(account, symbol, quantity, price string, kind entity.ProviderKind) entity.EnrichedBalance {
	raw := entity.RawBalance{
		Symbol:      symbol,
		Quantity:    decimal.RequireFromString(quantity),
		Kind:        kind,
		AccountName: account,
	}
	quote := entity.PriceQuote{Symbol: symbol, PriceUSD: decimal.RequireFromString(price)}
	return entity.Unpriced(raw).WithQuote(quote)
}

func TestBuild_GroupsAndTotals(t *testing.T) {
	results := []entity.AccountResult{
		{
			Account: entity.TrackedAccount{Name: "Hot Wallet", Kind: entity.KindSolana, Company: "Acme"},
			Balances: []entity.EnrichedBalance{
				priced("Hot Wallet", "SOL", "2.5", "150", entity.KindSolana),
			},
		},
		{
			Account: entity.TrackedAccount{Name: "Cold Wallet", Kind: entity.KindEthereum, Company: "Acme"},
			Balances: []entity.EnrichedBalance{
				priced("Cold Wallet", "USDC", "1000", "1", entity.KindEthereum),
			},
		},
	}

	view := Build(results)

	require.Len(t, view.Groups, 1)
	group := view.Groups[0]
	assert.Equal(t, "Acme", group.Company)
	require.Len(t, group.Assets, 2)

	// Assets ordered by symbol.
	assert.Equal(t, "SOL", group.Assets[0].Symbol)
	assert.True(t, group.Assets[0].ValueUSD.Equal(decimal.RequireFromString("375")))
	assert.Equal(t, "USDC", group.Assets[1].Symbol)
	assert.True(t, group.Assets[1].ValueUSD.Equal(decimal.RequireFromString("1000")))

	assert.True(t, group.SubtotalUSD.Equal(decimal.RequireFromString("1375")))
	assert.True(t, view.GrandTotalUSD.Equal(decimal.RequireFromString("1375")))
	assert.Equal(t, 2, view.Queried)
	assert.Equal(t, 2, view.Succeeded)
	assert.Empty(t, view.Failures)
}

func TestBuild_SumsIdenticalSymbolsExactly(t *testing.T) {
	results := []entity.AccountResult{
		{
			Account: entity.TrackedAccount{Name: "A", Kind: entity.KindEthereum, Company: "Acme"},
			Balances: []entity.EnrichedBalance{
				priced("A", "USDC", "0.1", "1", entity.KindEthereum),
			},
		},
		{
			Account: entity.TrackedAccount{Name: "B", Kind: entity.KindPolygon, Company: "Acme"},
			Balances: []entity.EnrichedBalance{
				priced("B", "USDC", "0.2", "1", entity.KindPolygon),
			},
		},
	}

	view := Build(results)

	require.Len(t, view.Groups, 1)
	require.Len(t, view.Groups[0].Assets, 1)
	// 0.1 + 0.2 is exactly 0.3, no float drift.
	assert.Equal(t, "0.3", view.Groups[0].Assets[0].Quantity.String())
}

func TestBuild_FailedAccountsBecomeFailures(t *testing.T) {
	results := []entity.AccountResult{
		{
			Account: entity.TrackedAccount{Name: "OK", Kind: entity.KindSolana},
			Balances: []entity.EnrichedBalance{
				priced("OK", "SOL", "1", "150", entity.KindSolana),
			},
		},
		{
			Account: entity.TrackedAccount{Name: "Broken", Kind: entity.KindNear},
			Err: entity.NewProviderError(entity.ProviderErrUnreachable, entity.KindNear,
				assert.AnError),
		},
	}

	view := Build(results)

	assert.Equal(t, 2, view.Queried)
	assert.Equal(t, 1, view.Succeeded)
	require.Len(t, view.Failures, 1)
	assert.Equal(t, "Broken", view.Failures[0].AccountName)
	assert.Equal(t, entity.ProviderErrUnreachable, view.Failures[0].Kind)
	// The failed account contributes nothing to totals.
	assert.True(t, view.GrandTotalUSD.Equal(decimal.RequireFromString("150")))
}

func TestBuild_UnpricedBalancesKeepQuantityOnly(t *testing.T) {
	raw := entity.RawBalance{
		Symbol:      "OBSCURE",
		Quantity:    decimal.RequireFromString("42"),
		Kind:        entity.KindSolana,
		AccountName: "Hot",
	}
	results := []entity.AccountResult{
		{
			Account:  entity.TrackedAccount{Name: "Hot", Kind: entity.KindSolana},
			Balances: []entity.EnrichedBalance{entity.Unpriced(raw)},
		},
	}

	view := Build(results)

	require.Len(t, view.Groups, 1)
	asset := view.Groups[0].Assets[0]
	assert.False(t, asset.Priced)
	assert.Equal(t, "42", asset.Quantity.String())
	assert.True(t, asset.ValueUSD.IsZero())
	assert.True(t, view.GrandTotalUSD.IsZero())
}

func TestBuild_DefaultsUntaggedAccountsToUncategorized(t *testing.T) {
	results := []entity.AccountResult{
		{
			Account: entity.TrackedAccount{Name: "NoCompany", Kind: entity.KindSui},
			Balances: []entity.EnrichedBalance{
				priced("NoCompany", "SUI", "10", "2", entity.KindSui),
			},
		},
	}

	view := Build(results)

	require.Len(t, view.Groups, 1)
	assert.Equal(t, entity.DefaultCompany, view.Groups[0].Company)
}

func TestBuild_Deterministic(t *testing.T) {
	forward := []entity.AccountResult{
		{
			Account: entity.TrackedAccount{Name: "A", Kind: entity.KindSolana, Company: "Zeta"},
			Balances: []entity.EnrichedBalance{
				priced("A", "SOL", "1", "150", entity.KindSolana),
			},
		},
		{
			Account: entity.TrackedAccount{Name: "B", Kind: entity.KindEthereum, Company: "Acme"},
			Balances: []entity.EnrichedBalance{
				priced("B", "ETH", "2", "3000", entity.KindEthereum),
			},
		},
	}
	reversed := []entity.AccountResult{forward[1], forward[0]}

	first, err := json.Marshal(Build(forward))
	require.NoError(t, err)
	second, err := json.Marshal(Build(reversed))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestBuild_EmptyResults(t *testing.T) {
	view := Build(nil)

	assert.Equal(t, 0, view.Queried)
	assert.Equal(t, 0, view.Succeeded)
	assert.Empty(t, view.Groups)
	assert.True(t, view.GrandTotalUSD.IsZero())
}
