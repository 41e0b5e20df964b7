package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type addBankCmd struct {
	company   string
	name      string
	accountID string
	service   string
}

func (*addBankCmd) Name() string     { return "add-bank" }
func (*addBankCmd) Synopsis() string { return "add a banking account to track" }
func (*addBankCmd) Usage() string {
	return `add-bank -name <name> -account-id <id> -service <service> [-company <company>]

  Adds a banking account to the address book:
  - name: unique label for this account.
  - account-id: the provider's account id (any label for Circle).
  - service: mercury or circle.
  - company: grouping tag for portfolio reports.
`
}

func (c *addBankCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name/label for this account (required)")
	f.StringVar(&c.accountID, "account-id", "", "Banking provider account id (required)")
	f.StringVar(&c.service, "service", "", "Banking service: mercury or circle (required)")
	f.StringVar(&c.company, "company", "", "Company grouping tag")
}

func (c *addBankCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.accountID == "" || c.service == "" {
		fmt.Fprintln(os.Stderr, "Error: -name, -account-id and -service flags are required.")
		return subcommands.ExitUsageError
	}

	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if err := store.AddBankingAccount(c.company, c.name, c.accountID, c.service); err != nil {
		return fail(err)
	}

	fmt.Printf("Added banking account '%s': %s\n", c.name, c.accountID)
	return subcommands.ExitSuccess
}
