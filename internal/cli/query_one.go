package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type queryOneCmd struct {
	rpcURL   string
	noPrices bool
}

func (*queryOneCmd) Name() string     { return "query-one" }
func (*queryOneCmd) Synopsis() string { return "query balances for a single tracked account" }
func (*queryOneCmd) Usage() string {
	return `query-one [-rpc-url <url>] [-no-prices] <name>

  Fetches the balances of the tracked account with the given name.
`
}

func (c *queryOneCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rpcURL, "rpc-url", "", "Override the Solana RPC endpoint")
	f.BoolVar(&c.noPrices, "no-prices", false, "Skip USD price lookups")
}

func (c *queryOneCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one account name is required.")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)

	cfg := loadConfig()
	applyQueryFlags(cfg, c.rpcURL, c.noPrices)

	qs, logger, err := buildQueryService(cfg)
	if err != nil {
		return fail(err)
	}
	defer logger.Sync()

	res, err := qs.QueryOne(ctx, name)
	if err != nil {
		return fail(err)
	}

	renderAccountResult(res, !c.noPrices)
	if res.Failed() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
