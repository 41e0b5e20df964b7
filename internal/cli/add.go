package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type addCmd struct {
	company string
	name    string
	address string
	chain   string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a blockchain address to track" }
func (*addCmd) Usage() string {
	return `add -name <name> -address <address> [-chain <chain>] [-company <company>]

  Adds a wallet address to the address book:
  - name: unique label for this address.
  - address: the on-chain address.
  - chain: solana, ethereum, polygon, bsc, arbitrum, optimism, avalanche,
    base, core, near, aptos, sui or starknet (aliases like eth/sol work).
    Auto-detected from the address format when omitted.
  - company: grouping tag for portfolio reports.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name/label for this address (required)")
	f.StringVar(&c.address, "address", "", "The blockchain address (required)")
	f.StringVar(&c.chain, "chain", "", "Blockchain chain, auto-detected when omitted")
	f.StringVar(&c.company, "company", "", "Company grouping tag")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.address == "" {
		fmt.Fprintln(os.Stderr, "Error: -name and -address flags are required.")
		return subcommands.ExitUsageError
	}

	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if err := store.AddAddress(c.company, c.name, c.address, c.chain); err != nil {
		return fail(err)
	}

	fmt.Printf("Added address '%s': %s\n", c.name, c.address)
	return subcommands.ExitSuccess
}
