// Package aggregate folds per-account query results into the portfolio
// view. Aggregation is pure and deterministic: the same results always
// produce the same view, independent of the order accounts finished in.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/oakencore/gringotts/internal/domain/entity"
)

type position struct {
	quantity decimal.Decimal
	valueUSD decimal.Decimal
	priced   bool
}

// Build groups enriched balances by company, sums identical symbols within
// a group exactly, and totals USD values over priced balances only. Failed
// accounts contribute a failure record and nothing else.
func Build(results []entity.AccountResult) *entity.PortfolioView {
	view := &entity.PortfolioView{
		GrandTotalUSD: decimal.Zero,
		Queried:       len(results),
	}

	groups := make(map[string]map[string]*position)
	for _, res := range results {
		if res.Failed() {
			view.Failures = append(view.Failures, entity.AccountFailure{
				AccountName: res.Account.Name,
				Provider:    res.Err.Provider,
				Kind:        res.Err.Kind,
				Reason:      res.Err.Message,
			})
			continue
		}
		view.Succeeded++

		company := res.Account.CompanyKey()
		assets, ok := groups[company]
		if !ok {
			assets = make(map[string]*position)
			groups[company] = assets
		}
		for _, bal := range res.Balances {
			pos, ok := assets[bal.Symbol]
			if !ok {
				pos = &position{quantity: decimal.Zero, valueUSD: decimal.Zero}
				assets[bal.Symbol] = pos
			}
			pos.quantity = pos.quantity.Add(bal.Quantity)
			if bal.Priced {
				pos.valueUSD = pos.valueUSD.Add(bal.ValueUSD)
				pos.priced = true
			}
		}
	}

	companies := make([]string, 0, len(groups))
	for company := range groups {
		companies = append(companies, company)
	}
	sort.Strings(companies)

	for _, company := range companies {
		assets := groups[company]
		symbols := make([]string, 0, len(assets))
		for symbol := range assets {
			symbols = append(symbols, symbol)
		}
		sort.Strings(symbols)

		group := entity.CompanyGroup{
			Company:     company,
			SubtotalUSD: decimal.Zero,
		}
		for _, symbol := range symbols {
			pos := assets[symbol]
			group.Assets = append(group.Assets, entity.AssetPosition{
				Symbol:   symbol,
				Quantity: pos.quantity,
				ValueUSD: pos.valueUSD,
				Priced:   pos.priced,
			})
			group.SubtotalUSD = group.SubtotalUSD.Add(pos.valueUSD)
		}
		view.Groups = append(view.Groups, group)
		view.GrandTotalUSD = view.GrandTotalUSD.Add(group.SubtotalUSD)
	}

	sort.Slice(view.Failures, func(i, j int) bool {
		return view.Failures[i].AccountName < view.Failures[j].AccountName
	})
	return view
}
