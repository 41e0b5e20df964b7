package cli

import (
	"fmt"

	"github.com/oakencore/gringotts/internal/domain/entity"
)

// renderPortfolio prints the aggregated view, one company block at a time.
func renderPortfolio(view *entity.PortfolioView, withPrices bool) {
	for _, group := range view.Groups {
		fmt.Printf("\n%s\n", group.Company)
		for _, asset := range group.Assets {
			if withPrices && asset.Priced {
				fmt.Printf("  %-10s %24s  $%s\n", asset.Symbol, asset.Quantity.String(), asset.ValueUSD.StringFixed(2))
			} else {
				fmt.Printf("  %-10s %24s\n", asset.Symbol, asset.Quantity.String())
			}
		}
		if withPrices {
			fmt.Printf("  Subtotal: $%s\n", group.SubtotalUSD.StringFixed(2))
		}
	}

	if withPrices {
		fmt.Printf("\nGrand total: $%s\n", view.GrandTotalUSD.StringFixed(2))
	}
	fmt.Printf("Accounts queried: %d, succeeded: %d\n", view.Queried, view.Succeeded)

	if len(view.Failures) > 0 {
		fmt.Println("\nFailures:")
		for _, failure := range view.Failures {
			fmt.Printf("  %s (%s): %s: %s\n", failure.AccountName, failure.Provider, failure.Kind, failure.Reason)
		}
	}
}

// renderAccountResult prints a single account's balances.
func renderAccountResult(res entity.AccountResult, withPrices bool) {
	if res.Failed() {
		fmt.Printf("%s (%s): query failed: %s: %s\n",
			res.Account.Name, res.Account.Kind, res.Err.Kind, res.Err.Message)
		return
	}

	fmt.Printf("%s (%s, %s)\n", res.Account.Name, res.Account.Kind.DisplayName(), res.Account.Identifier)
	for _, bal := range res.Balances {
		if withPrices && bal.Priced {
			fmt.Printf("  %-10s %24s  $%s\n", bal.Symbol, bal.Quantity.String(), bal.ValueUSD.StringFixed(2))
		} else {
			fmt.Printf("  %-10s %24s\n", bal.Symbol, bal.Quantity.String())
		}
	}
}
