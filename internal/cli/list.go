package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

type listCmd struct {
	company string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list all tracked addresses and banking accounts" }
func (*listCmd) Usage() string {
	return `list [-company <filter>]

  Lists every tracked entry, optionally filtered to companies whose name
  contains the given substring (case-insensitive).
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.company, "company", "", "Only show entries whose company matches")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	accounts, err := store.LoadAll()
	if err != nil {
		return fail(err)
	}

	filter := strings.ToLower(c.company)
	shown := 0
	for _, acc := range accounts {
		if filter != "" && !strings.Contains(strings.ToLower(acc.CompanyKey()), filter) {
			continue
		}
		shown++
		fmt.Printf("%-24s %-20s %-16s %s\n", acc.Name, acc.CompanyKey(), acc.Kind.DisplayName(), acc.Identifier)
	}
	if shown == 0 {
		if filter != "" {
			fmt.Println("No tracked entries match that company.")
		} else {
			fmt.Println("No tracked entries. Add one with 'add' or 'add-bank'.")
		}
	}
	return subcommands.ExitSuccess
}
