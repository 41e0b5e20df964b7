package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"

	"github.com/oakencore/gringotts/internal/provider/mercury"
)

type listMercuryCmd struct{}

func (*listMercuryCmd) Name() string     { return "list-mercury-accounts" }
func (*listMercuryCmd) Synopsis() string { return "list all accounts visible to the Mercury API key" }
func (*listMercuryCmd) Usage() string {
	return `list-mercury-accounts

  Lists every Mercury bank account the configured MERCURY_API_KEY can see,
  whether or not it is tracked yet.
`
}

func (*listMercuryCmd) SetFlags(*flag.FlagSet) {}

func (c *listMercuryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := loadConfig()
	client := mercury.NewClient(cfg.Mercury.BaseURL, cfg.AccountTimeout(), newLogger(cfg))

	accounts, err := client.ListAccounts(ctx)
	if err != nil {
		return fail(err)
	}

	fmt.Println("\nMercury Accounts")
	fmt.Println()
	fmt.Printf("%-40s %-20s %-10s %-15s %s\n", "ID", "Name", "Status", "Kind", "Balance")
	fmt.Println(strings.Repeat("-", 100))
	for _, acc := range accounts {
		fmt.Printf("%-40s %-20s %-10s %-15s $%.2f\n",
			acc.ID, truncateName(acc.Name, 18), acc.Status, acc.Kind, acc.CurrentBalance)
	}
	fmt.Printf("\nTotal: %d account(s)\n", len(accounts))
	return subcommands.ExitSuccess
}

type setupMercuryCmd struct {
	company string
	sel     string
}

func (*setupMercuryCmd) Name() string     { return "setup-mercury" }
func (*setupMercuryCmd) Synopsis() string { return "add Mercury accounts to the address book" }
func (*setupMercuryCmd) Usage() string {
	return `setup-mercury [-company <company>] [-select all|1,3,...]

  Discovers the accounts visible to MERCURY_API_KEY and adds them to the
  address book under their Mercury account names:
  - company: grouping tag for portfolio reports.
  - select: which of the listed accounts to add, as 1-based positions in
    the list-mercury-accounts output, or "all" (the default).
  Accounts whose id is already tracked are skipped.
`
}

func (c *setupMercuryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.company, "company", "", "Company grouping tag")
	f.StringVar(&c.sel, "select", "all", "Accounts to add: \"all\" or comma-separated positions")
}

func (c *setupMercuryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := loadConfig()
	client := mercury.NewClient(cfg.Mercury.BaseURL, cfg.AccountTimeout(), newLogger(cfg))

	accounts, err := client.ListAccounts(ctx)
	if err != nil {
		return fail(err)
	}
	if len(accounts) == 0 {
		fmt.Println("No Mercury accounts found.")
		return subcommands.ExitSuccess
	}

	fmt.Printf("\nFound %d Mercury account(s):\n\n", len(accounts))
	for i, acc := range accounts {
		fmt.Printf("  [%d] %s (%s) - $%.2f - %s\n", i+1, acc.Name, acc.Kind, acc.CurrentBalance, acc.Status)
	}

	indices, err := parseSelection(c.sel, len(accounts))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if len(indices) == 0 {
		fmt.Println("\nNo valid accounts selected.")
		return subcommands.ExitSuccess
	}

	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	book, err := store.Load()
	if err != nil {
		return fail(err)
	}
	tracked := make(map[string]bool, len(book.BankingAccounts))
	for _, acc := range book.BankingAccounts {
		tracked[acc.AccountID] = true
	}

	added := 0
	for _, idx := range indices {
		acc := accounts[idx]
		if tracked[acc.ID] {
			fmt.Printf("  Skipping '%s' - already tracked\n", acc.Name)
			continue
		}
		if err := store.AddBankingAccount(c.company, acc.Name, acc.ID, "mercury"); err != nil {
			fmt.Printf("  Skipping '%s' - %v\n", acc.Name, err)
			continue
		}
		fmt.Printf("  Added '%s'\n", acc.Name)
		added++
	}

	if added > 0 {
		fmt.Printf("\nSuccessfully added %d account(s) to tracking.\n", added)
	} else {
		fmt.Println("\nNo new accounts added.")
	}
	return subcommands.ExitSuccess
}

func truncateName(name string, max int) string {
	if len(name) <= max {
		return name
	}
	return name[:max-3] + "..."
}

// parseSelection turns "all" or a comma-separated list of 1-based positions
// into zero-based indices, dropping anything out of range.
func parseSelection(sel string, total int) ([]int, error) {
	sel = strings.TrimSpace(strings.ToLower(sel))
	if sel == "all" {
		indices := make([]int, total)
		for i := range indices {
			indices[i] = i
		}
		return indices, nil
	}

	var indices []int
	for _, part := range strings.Split(sel, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid account position %q", part)
		}
		if n < 1 || n > total {
			continue
		}
		indices = append(indices, n-1)
	}
	return indices, nil
}
