package feeds

import (
	"fmt"
	"io"
	"log"

	btctax "github.com/grantathon/btc-tax"
	"github.com/grantathon/btc-tax/date"
	"github.com/grantathon/btc-tax/prices"
)

// Compass CSV columns: Date, Amount, Fee, Total Amount, Notes, TXID.
// These are hosting bills paid in BTC, which makes each one a taxable
// disposal at the day's fair market value. The Fee column is denominated in
// BTC, unlike River's USD fees.

// ParseCompassPayments parses a Compass payments export into disposals.
func ParseCompassPayments(r io.Reader, oracle prices.Oracle) ([]btctax.Disposal, error) {
	rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("compass payments: %w", err)
	}
	dated, dates := collectDated(rows, "Date", "Amount")
	spots, err := oracle.Prices(dates)
	if err != nil {
		return nil, fmt.Errorf("compass payments: %w", err)
	}

	var disposals []btctax.Disposal
	for _, dr := range dated {
		day := date.FromTime(dr.time)
		spot := spots[day]
		if !spot.IsPositive() {
			log.Printf("warning: no BTC price for payment date %s, skipping", day)
			continue
		}
		feeBTC := btctax.Q(cleanQuantity(dr.row["Fee"]))
		disposals = append(disposals, btctax.Disposal{
			Time:      dr.time,
			Quantity:  btctax.Q(cleanQuantity(dr.row["Amount"])),
			UnitPrice: spot,
			Fee:       spot.Mul(feeBTC),
			Source:    btctax.InKindPayment,
		})
	}
	return disposals, nil
}
