package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawBalance is a single asset quantity as reported by a provider, before
// price enrichment. Quantities are exact decimals; chains with different
// native decimal places are normalized by the provider clients.
type RawBalance struct {
	Symbol      string          `json:"symbol"`
	Quantity    decimal.Decimal `json:"quantity"`
	Kind        ProviderKind    `json:"kind"`
	AccountName string          `json:"accountName"`
}

// PriceQuote is one USD unit price for an asset symbol. Quotes are owned by
// the price cache and are superseded, never mutated, on refresh.
type PriceQuote struct {
	Symbol    string          `json:"symbol"`
	PriceUSD  decimal.Decimal `json:"priceUsd"`
	FetchedAt time.Time       `json:"fetchedAt"`
	Source    string          `json:"source"`
}

// EnrichedBalance is a RawBalance with its USD value attached. ValueUSD is
// meaningful only when Priced is true; unpriced balances still carry their
// raw quantity.
type EnrichedBalance struct {
	RawBalance
	PriceUSD decimal.Decimal `json:"priceUsd"`
	ValueUSD decimal.Decimal `json:"valueUsd"`
	Priced   bool            `json:"priced"`
}

// Unpriced wraps a raw balance into an enriched one with no USD value yet.
func Unpriced(raw RawBalance) EnrichedBalance {
	return EnrichedBalance{RawBalance: raw}
}

// WithQuote returns a copy priced at the given quote.
func (b EnrichedBalance) WithQuote(q PriceQuote) EnrichedBalance {
	b.PriceUSD = q.PriceUSD
	b.ValueUSD = b.Quantity.Mul(q.PriceUSD)
	b.Priced = true
	return b
}

// AccountResult is the outcome of querying one tracked account in a query
// cycle: either a list of enriched balances or a provider failure.
type AccountResult struct {
	Account  TrackedAccount    `json:"account"`
	Balances []EnrichedBalance `json:"balances,omitempty"`
	Err      *ProviderError    `json:"error,omitempty"`
}

// Failed reports whether the account query failed.
func (r AccountResult) Failed() bool {
	return r.Err != nil
}
