package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove an entry by name or identifier" }
func (*removeCmd) Usage() string {
	return `remove <name-or-identifier>

  Removes the tracked entry whose name, address or account id matches.
`
}

func (c *removeCmd) SetFlags(*flag.FlagSet) {}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one name or identifier is required.")
		return subcommands.ExitUsageError
	}
	identifier := f.Arg(0)

	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if err := store.RemoveByIdentifier(identifier); err != nil {
		return fail(err)
	}

	fmt.Printf("Removed '%s'\n", identifier)
	return subcommands.ExitSuccess
}
