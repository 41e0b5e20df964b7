package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/oakencore/gringotts/internal/config"
)

type queryCmd struct {
	rpcURL   string
	noPrices bool
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "query balances for all tracked accounts" }
func (*queryCmd) Usage() string {
	return `query [-rpc-url <url>] [-no-prices]

  Fetches every tracked account's balances, prices them in USD and prints
  the portfolio grouped by company.
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rpcURL, "rpc-url", "", "Override the Solana RPC endpoint")
	f.BoolVar(&c.noPrices, "no-prices", false, "Skip USD price lookups")
}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := loadConfig()
	applyQueryFlags(cfg, c.rpcURL, c.noPrices)

	qs, logger, err := buildQueryService(cfg)
	if err != nil {
		return fail(err)
	}
	defer logger.Sync()

	view, err := qs.Snapshot(ctx)
	if err != nil {
		return fail(err)
	}

	renderPortfolio(view, !c.noPrices)
	if view.Queried > 0 && view.Succeeded == 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func applyQueryFlags(cfg *config.Config, rpcURL string, noPrices bool) {
	if rpcURL != "" {
		if cfg.Chains == nil {
			cfg.Chains = make(map[string]config.ChainNodeConfig)
		}
		cfg.Chains["solana"] = config.ChainNodeConfig{RPCURL: rpcURL}
	}
	if noPrices {
		cfg.Query.SkipPricing = true
	}
}
