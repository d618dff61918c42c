package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/grantathon/btc-tax/renderer"
)

// lotsCmd holds the flags for the 'lots' subcommand.
type lotsCmd struct{}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "list the acquisition lots" }
func (*lotsCmd) Usage() string {
	return `btc-tax lots

  Loads the buy and mining exports, values each acquisition at the day's
  close, and lists the resulting lots. A zero-basis legacy lot is added when
  the configured balance exceeds the recorded history.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {}

func (c *lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	printMarkdown(renderer.LotsMarkdown(lots))
	return subcommands.ExitSuccess
}
