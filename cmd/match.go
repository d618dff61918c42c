package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	btctax "github.com/grantathon/btc-tax"
	"github.com/grantathon/btc-tax/renderer"
)

// matchCmd holds the flags for the 'match' subcommand.
type matchCmd struct {
	method    string
	form8949  bool
	remaining bool
}

func (*matchCmd) Name() string     { return "match" }
func (*matchCmd) Synopsis() string { return "match disposals against lots under one cost basis method" }
func (*matchCmd) Usage() string {
	return `btc-tax match [-method <method>] [-8949] [-remaining]

  Allocates each disposal against the acquisition lots under the chosen cost
  basis method and reports the per-match gains and totals.
`
}

func (c *matchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.method, "method", btctax.FIFO.String(), "Cost basis method (fifo, lifo, hifo)")
	f.BoolVar(&c.form8949, "8949", false, "Also print the Form 8949 rows")
	f.BoolVar(&c.remaining, "remaining", false, "Also print the lots remaining after matching")
}

func (c *matchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	policy, err := btctax.ParsePolicy(c.method)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing cost basis method: %v\n", err)
		return subcommands.ExitUsageError
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitUsageError
	}
	o, err := oracle(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating price oracle: %v\n", err)
		return subcommands.ExitFailure
	}

	lots, err := loadLots(cfg, o)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading lots: %v\n", err)
		return subcommands.ExitFailure
	}
	disposals, err := loadDisposals(cfg, o)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading disposals: %v\n", err)
		return subcommands.ExitFailure
	}

	result, err := btctax.MatchDisposals(lots, disposals, policy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error matching disposals: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.MatchingMarkdown(result))
	if c.form8949 {
		printMarkdown(renderer.Form8949Markdown(result))
	}
	if c.remaining {
		printMarkdown(renderer.RemainingMarkdown(btctax.RemainingLots(lots, result.Matches)))
	}
	return subcommands.ExitSuccess
}
