package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	btctax "github.com/grantathon/btc-tax"
	"github.com/grantathon/btc-tax/renderer"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	method string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "write the full set of tax report CSVs" }
func (*reportCmd) Usage() string {
	return `btc-tax report [-method <method>]

  Runs the full pipeline: loads and values every export, compares the cost
  basis methods, and writes the lot, disposal, match, comparison and Form
  8949 CSVs to the output directory. The detailed CSVs use the given method,
  or the optimal one when unset.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.method, "method", "", "Cost basis method for the detailed CSVs (fifo, lifo, hifo); optimal when unset")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	result := comparison.Optimal()
	if c.method != "" {
		policy, err := btctax.ParsePolicy(c.method)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing cost basis method: %v\n", err)
			return subcommands.ExitUsageError
		}
		result = comparison.Result(policy)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory %q: %v\n", cfg.OutputDir, err)
		return subcommands.ExitFailure
	}
	if err := writeReports(cfg.OutputDir, lots, disposals, comparison, result); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing reports: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ComparisonMarkdown(comparison))
	printMarkdown(renderer.ScheduleDMarkdown(btctax.NewScheduleDSummary(result)))
	printMarkdown(renderer.RemainingMarkdown(btctax.RemainingLots(lots, result.Matches)))
	fmt.Printf("Reports written to %s using the %s method.\n", cfg.OutputDir, result.Policy)
	return subcommands.ExitSuccess
}

// writeReports writes the full CSV set to dir. The detail files carry the
// chosen method's matches; the comparison file carries all three.
func writeReports(dir string, lots btctax.Lots, disposals btctax.Disposals, comparison btctax.Comparison, result *btctax.MatchingResult) error {
	files := []struct {
		name   string
		encode func(f *os.File) error
	}{
		{"lots.csv", func(f *os.File) error { return btctax.EncodeLotsCSV(f, lots) }},
		{"disposals.csv", func(f *os.File) error { return btctax.EncodeDisposalsCSV(f, disposals) }},
		{fmt.Sprintf("matches_%s.csv", result.Policy), func(f *os.File) error { return btctax.EncodeMatchesCSV(f, result) }},
		{"comparison.csv", func(f *os.File) error { return btctax.EncodeComparisonCSV(f, comparison) }},
		{fmt.Sprintf("form8949_%s.csv", result.Policy), func(f *os.File) error {
			return btctax.EncodeForm8949CSV(f, btctax.Form8949(result))
		}},
	}
	for _, file := range files {
		path := filepath.Join(dir, file.name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := file.encode(f); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", path, err)
		}
	}
	return nil
}
