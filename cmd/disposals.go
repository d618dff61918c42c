package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/grantathon/btc-tax/renderer"
)

// disposalsCmd holds the flags for the 'disposals' subcommand.
type disposalsCmd struct{}

func (*disposalsCmd) Name() string     { return "disposals" }
func (*disposalsCmd) Synopsis() string { return "list the taxable disposals" }
func (*disposalsCmd) Usage() string {
	return `btc-tax disposals

  Loads the sell and payment exports, values each disposal at the day's
  close, and lists them chronologically. In-kind payments are taxable
  disposals just like sales.
`
}

func (c *disposalsCmd) SetFlags(f *flag.FlagSet) {}

func (c *disposalsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	disposals, err := loadDisposals(cfg, o)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading disposals: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.DisposalsMarkdown(disposals))
	return subcommands.ExitSuccess
}
