package btctax

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// this file contains the CSV encoders consumed by the report-writer layer.
// Columns mirror the tax-report spreadsheets the output feeds into.

const csvTimeFormat = "2006-01-02 15:04:05"

func csvQty(q Quantity) string   { return q.Decimal().StringFixed(8) }
func csvMoney(m Money) string    { return m.Decimal().StringFixed(2) }
func csvTime(t time.Time) string { return t.Format(csvTimeFormat) }

// EncodeLotsCSV writes the acquisition lots to w in CSV form.
func EncodeLotsCSV(w io.Writer, lots Lots) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Lot ID", "Date", "BTC Amount", "Cost Basis (USD)", "Price per BTC (USD)", "Source"}); err != nil {
		return err
	}
	for _, l := range lots {
		record := []string{
			strconv.Itoa(l.ID),
			csvTime(l.Time),
			csvQty(l.Quantity),
			csvMoney(l.CostBasis),
			csvMoney(l.CostBasisPerUnit()),
			string(l.Source),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeDisposalsCSV writes the disposals to w in CSV form.
func EncodeDisposalsCSV(w io.Writer, disposals Disposals) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "BTC Amount", "Price per BTC (USD)", "Gross Proceeds (USD)", "Fee (USD)", "Net Proceeds (USD)", "Source"}); err != nil {
		return err
	}
	for _, d := range disposals {
		record := []string{
			csvTime(d.Time),
			csvQty(d.Quantity),
			csvMoney(d.UnitPrice),
			csvMoney(d.GrossProceeds()),
			csvMoney(d.Fee),
			csvMoney(d.NetProceeds()),
			string(d.Source),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeMatchesCSV writes the per-match records of a result to w in CSV form.
func EncodeMatchesCSV(w io.Writer, result *MatchingResult) error {
	cw := csv.NewWriter(w)
	header := []string{
		"Sale Date", "Sale Amount (BTC)", "Sale Price per BTC (USD)", "Sale Source",
		"Lot ID", "Lot Date", "Lot Amount Used (BTC)", "Lot Cost Basis per BTC (USD)",
		"Cost Basis Used (USD)", "Gain/Loss (USD)", "Holding Period (Days)", "Is Long-Term", "Lot Source",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, m := range result.Matches {
		record := []string{
			csvTime(m.DisposalTime),
			csvQty(m.DisposalQuantity),
			csvMoney(m.DisposalPrice),
			string(m.DisposalSource),
			strconv.Itoa(m.LotID),
			csvTime(m.LotTime),
			csvQty(m.QuantityAllocated),
			csvMoney(m.LotBasisPerUnit),
			csvMoney(m.CostBasisConsumed),
			csvMoney(m.GainLoss),
			strconv.Itoa(m.HoldingPeriodDays),
			strconv.FormatBool(m.LongTerm),
			string(m.LotSource),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeComparisonCSV writes the per-policy totals side by side to w.
func EncodeComparisonCSV(w io.Writer, c Comparison) error {
	cw := csv.NewWriter(w)
	header := []string{
		"Method", "Total Realized Gain (USD)", "Short-Term Gain (USD)",
		"Long-Term Gain (USD)", "Total Cost Basis (USD)", "Total Proceeds (USD)",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range c.Results() {
		record := []string{
			r.Policy.String(),
			csvMoney(r.TotalGain),
			csvMoney(r.ShortTermGain),
			csvMoney(r.LongTermGain),
			csvMoney(r.TotalCostBasis),
			csvMoney(r.TotalProceeds),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeForm8949CSV writes Form 8949 rows to w in CSV form.
func EncodeForm8949CSV(w io.Writer, rows []Form8949Row) error {
	cw := csv.NewWriter(w)
	header := []string{
		"Description", "Date Acquired", "Date Sold", "Proceeds (Sales Price)",
		"Cost or Other Basis", "Gain or (Loss)", "Holding Period", "Sale Source", "Lot Source",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		period := "Short-Term"
		if row.LongTerm {
			period = "Long-Term"
		}
		record := []string{
			row.Description,
			row.DateAcquired.String(),
			row.DateSold.String(),
			csvMoney(row.Proceeds),
			csvMoney(row.CostBasis),
			csvMoney(row.GainLoss),
			period,
			string(row.DisposalSource),
			string(row.LotSource),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
