// Package cmd implements the CLI application to compute bitcoin capital
// gains from exchange and mining pool exports.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	btctax "github.com/grantathon/btc-tax"
	"github.com/grantathon/btc-tax/feeds"
	"github.com/grantathon/btc-tax/prices"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&lotsCmd{}, "holdings")
	c.Register(&disposalsCmd{}, "holdings")

	c.Register(&matchCmd{}, "gains")
	c.Register(&compareCmd{}, "gains")
	c.Register(&reportCmd{}, "gains")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var envFile = flag.String("env", ".env", "Path to the env file holding the data source settings")
var pricesFile = flag.String("prices", "", "CSV of date,price pairs to use instead of the Yahoo price feed")

// oracle returns the price oracle: a fixed table when -prices is given, the
// (memoized) Yahoo feed otherwise.
func oracle(cfg *Config) (prices.Oracle, error) {
	if *pricesFile != "" {
		f, err := os.Open(*pricesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open prices file: %w", err)
		}
		defer f.Close()
		fixed, err := prices.ReadFixed(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read prices file: %w", err)
		}
		return fixed, nil
	}
	return prices.NewMemo(prices.NewYahoo(cfg.CacheDir)), nil
}

// loadLots loads and values the acquisition lots named by the config,
// synthesizing the legacy lot when the current balance is not fully explained.
func loadLots(cfg *Config, o prices.Oracle) (btctax.Lots, error) {
	return feeds.LoadLots(cfg.BuysCSV, cfg.MiningCSV, cfg.CurrentBalance, cfg.LegacyDate, o)
}

// loadDisposals loads and values the disposals named by the config.
func loadDisposals(cfg *Config, o prices.Oracle) (btctax.Disposals, error) {
	return feeds.LoadDisposals(cfg.SellsCSV, cfg.PaymentsCSV, o)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering fails (e.g. when piped).
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
