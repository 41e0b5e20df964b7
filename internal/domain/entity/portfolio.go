package entity

import "github.com/shopspring/decimal"

// AssetPosition is an asset aggregated within one company group: quantities
// of identical symbols are summed exactly, USD values only over priced
// balances.
type AssetPosition struct {
	Symbol   string          `json:"symbol"`
	Quantity decimal.Decimal `json:"quantity"`
	ValueUSD decimal.Decimal `json:"valueUsd"`
	Priced   bool            `json:"priced"`
}

// CompanyGroup holds one company's aggregated assets and USD subtotal.
// Assets are ordered by symbol.
type CompanyGroup struct {
	Company     string          `json:"company"`
	Assets      []AssetPosition `json:"assets"`
	SubtotalUSD decimal.Decimal `json:"subtotalUsd"`
}

// AccountFailure records one account whose query failed, so callers can
// report partial failure without losing which accounts failed and why.
type AccountFailure struct {
	AccountName string            `json:"accountName"`
	Provider    ProviderKind      `json:"provider"`
	Kind        ProviderErrorKind `json:"kind"`
	Reason      string            `json:"reason"`
}

// PortfolioView is the aggregated, deterministic snapshot handed to every
// presentation layer. Groups are ordered by company name; the grand total
// equals the sum of group subtotals.
type PortfolioView struct {
	Groups        []CompanyGroup   `json:"groups"`
	GrandTotalUSD decimal.Decimal  `json:"grandTotalUsd"`
	Failures      []AccountFailure `json:"failures,omitempty"`
	Queried       int              `json:"queried"`
	Succeeded     int              `json:"succeeded"`
}
