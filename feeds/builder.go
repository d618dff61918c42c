package feeds

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	btctax "github.com/grantathon/btc-tax"
	"github.com/grantathon/btc-tax/prices"
)

// LoadLots builds the full acquisition lot set from the buy and mining
// exports, then synthesizes a legacy lot for any balance the records do not
// explain. Either path may be empty to skip that source.
func LoadLots(buysPath, miningPath string, currentBalance btctax.Quantity, legacyDate time.Time, oracle prices.Oracle) (btctax.Lots, error) {
	var all []btctax.AcquisitionLot

	if buysPath != "" {
		lots, err := parseFile(buysPath, oracle, ParseRiverBuys)
		if err != nil {
			return nil, err
		}
		log.Printf("parsed %d buy transactions from %s", len(lots), buysPath)
		all = append(all, lots...)
	}
	if miningPath != "" {
		lots, err := parseFile(miningPath, oracle, ParseF2PoolMining)
		if err != nil {
			return nil, err
		}
		log.Printf("parsed %d mining transactions from %s", len(lots), miningPath)
		all = append(all, lots...)
	}

	known := btctax.Lots(all).TotalQuantity()
	if legacy, ok := btctax.SynthesizeLegacyLot(known, currentBalance, legacyDate); ok {
		log.Printf("added legacy lot: %s BTC from %s", legacy.Quantity, legacy.Date())
		all = append(all, legacy)
	}

	return btctax.NewLots(all...), nil
}

// LoadDisposals builds the full disposal set from the sell and payment
// exports. A missing file is skipped with a warning rather than failing the
// run: not every holder has both disposal sources.
func LoadDisposals(sellsPath, paymentsPath string, oracle prices.Oracle) (btctax.Disposals, error) {
	var all []btctax.Disposal

	if exists(sellsPath) {
		disposals, err := parseFile(sellsPath, oracle, ParseRiverSells)
		if err != nil {
			return nil, err
		}
		log.Printf("parsed %d sell transactions from %s", len(disposals), sellsPath)
		all = append(all, disposals...)
	} else if sellsPath != "" {
		log.Printf("warning: sells CSV not found: %s", sellsPath)
	}

	if exists(paymentsPath) {
		disposals, err := parseFile(paymentsPath, oracle, ParseCompassPayments)
		if err != nil {
			return nil, err
		}
		log.Printf("parsed %d payment transactions from %s", len(disposals), paymentsPath)
		all = append(all, disposals...)
	} else if paymentsPath != "" {
		log.Printf("warning: payments CSV not found: %s", paymentsPath)
	}

	return btctax.NewDisposals(all...), nil
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func parseFile[T any](path string, oracle prices.Oracle, parse func(io.Reader, prices.Oracle) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return parse(f, oracle)
}
