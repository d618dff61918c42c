package feeds

import (
	"fmt"
	"io"
	"log"

	btctax "github.com/grantathon/btc-tax"
	"github.com/grantathon/btc-tax/date"
	"github.com/grantathon/btc-tax/prices"
)

// F2Pool CSV columns: Account ID, Date, Amount, Address, Status, TXID.

// ParseF2PoolMining parses an F2Pool payout export into acquisition lots.
// Mined coins are income at receipt: cost basis = fair market value, i.e.
// the oracle close times the payout amount.
func ParseF2PoolMining(r io.Reader, oracle prices.Oracle) ([]btctax.AcquisitionLot, error) {
	rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("f2pool mining: %w", err)
	}
	dated, dates := collectDated(rows, "Date", "Amount")
	spots, err := oracle.Prices(dates)
	if err != nil {
		return nil, fmt.Errorf("f2pool mining: %w", err)
	}

	var lots []btctax.AcquisitionLot
	for _, dr := range dated {
		day := date.FromTime(dr.time)
		spot := spots[day]
		if !spot.IsPositive() {
			log.Printf("warning: no BTC price for mining date %s, skipping", day)
			continue
		}
		quantity := btctax.Q(cleanQuantity(dr.row["Amount"]))
		lots = append(lots, btctax.AcquisitionLot{
			Time:      dr.time,
			Quantity:  quantity,
			CostBasis: spot.Mul(quantity),
			Source:    btctax.Mined,
		})
	}
	return lots, nil
}
