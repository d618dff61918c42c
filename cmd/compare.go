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

// compareCmd holds the flags for the 'compare' subcommand.
type compareCmd struct{}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare FIFO, LIFO and HIFO side by side" }
func (*compareCmd) Usage() string {
	return `btc-tax compare

  Runs the matching under every cost basis method over the same lots and
  disposals, and reports which one minimizes the realized gain.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {}

func (c *compareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	comparison, err := btctax.CompareAll(lots, disposals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error comparing methods: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ComparisonMarkdown(comparison))
	return subcommands.ExitSuccess
}
