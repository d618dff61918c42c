package feeds

import (
	"fmt"
	"io"
	"log"

	btctax "github.com/grantathon/btc-tax"
	"github.com/grantathon/btc-tax/date"
	"github.com/grantathon/btc-tax/prices"
)

// River CSV columns: Date, River Ref #, BTC Value, BTC Price, Fee (USD), USD Value.
// The "BTC Price" column holds River's own estimate; valuation uses the
// oracle's close instead, so buys and sells are priced consistently.

// ParseRiverBuys parses a River buys export into acquisition lots.
// Cost basis = oracle close * quantity + the fee actually paid.
func ParseRiverBuys(r io.Reader, oracle prices.Oracle) ([]btctax.AcquisitionLot, error) {
	rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("river buys: %w", err)
	}
	dated, dates := collectDated(rows, "Date", "BTC Value")
	spots, err := oracle.Prices(dates)
	if err != nil {
		return nil, fmt.Errorf("river buys: %w", err)
	}

	var lots []btctax.AcquisitionLot
	for _, dr := range dated {
		day := date.FromTime(dr.time)
		spot := spots[day]
		if !spot.IsPositive() {
			log.Printf("warning: no BTC price for buy date %s, skipping", day)
			continue
		}
		quantity := btctax.Q(cleanQuantity(dr.row["BTC Value"]))
		fee := btctax.M(cleanCurrency(dr.row["Fee (USD)"]), "USD")
		lots = append(lots, btctax.AcquisitionLot{
			Time:      dr.time,
			Quantity:  quantity,
			CostBasis: spot.Mul(quantity).Add(fee),
			Source:    btctax.Purchase,
		})
	}
	return lots, nil
}

// ParseRiverSells parses a River sells export into disposals.
// Proceeds = oracle close * quantity; the fee is the USD fee from the file.
func ParseRiverSells(r io.Reader, oracle prices.Oracle) ([]btctax.Disposal, error) {
	rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("river sells: %w", err)
	}
	dated, dates := collectDated(rows, "Date", "BTC Value")
	spots, err := oracle.Prices(dates)
	if err != nil {
		return nil, fmt.Errorf("river sells: %w", err)
	}

	var disposals []btctax.Disposal
	for _, dr := range dated {
		day := date.FromTime(dr.time)
		spot := spots[day]
		if !spot.IsPositive() {
			log.Printf("warning: no BTC price for sale date %s, skipping", day)
			continue
		}
		disposals = append(disposals, btctax.Disposal{
			Time:      dr.time,
			Quantity:  btctax.Q(cleanQuantity(dr.row["BTC Value"])),
			UnitPrice: spot,
			Fee:       btctax.M(cleanCurrency(dr.row["Fee (USD)"]), "USD"),
			Source:    btctax.Sale,
		})
	}
	return disposals, nil
}
