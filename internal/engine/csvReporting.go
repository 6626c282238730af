package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"wealthlab/types"
)

// WriteTradesCSVFile writes the trade log to a CSV file at the given path.
func WriteTradesCSVFile(path string, trades []types.Trade) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trades file: %w", err)
	}
	defer f.Close()

	return WriteTradesCSV(f, trades)
}

// WriteTradesCSV writes trades to any io.Writer as CSV, in the order given.
func WriteTradesCSV(w io.Writer, trades []types.Trade) error {
	cw := csv.NewWriter(w)

	header := []string{
		"entry_date",
		"entry_price",
		"side",
		"exit_date",
		"exit_price",
		"pnl_pct",
		"duration_days",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, t := range trades {
		record := []string{
			t.EntryDate.Format(dateLayout),
			t.EntryPrice.String(),
			string(t.Side),
			t.ExitDate.Format(dateLayout),
			t.ExitPrice.String(),
			t.PnLPct.StringFixed(2),
			strconv.Itoa(t.DurationDays),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func WriteOptionsTradesCSVFile(path string, trades []types.OptionsTrade) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create options trades file: %w", err)
	}
	defer f.Close()

	return WriteOptionsTradesCSV(f, trades)
}

func WriteOptionsTradesCSV(w io.Writer, trades []types.OptionsTrade) error {
	cw := csv.NewWriter(w)

	header := []string{
		"entry_date",
		"type",
		"call_strike",
		"put_strike",
		"entry_s",
		"entry_vol",
		"premium", // cost for straddles, credit for strangles
		"exit_date",
		"exit_price",
		"exit_value",
		"pnl",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, t := range trades {
		premium := t.EntryCost
		if t.Type == types.ShortStrangle {
			premium = t.CreditReceived
		}
		record := []string{
			t.EntryDate.Format(dateLayout),
			string(t.Type),
			t.CallStrike.String(),
			t.PutStrike.String(),
			t.EntryS.String(),
			t.EntryVol.StringFixed(2),
			premium.StringFixed(2),
			t.ExitDate.Format(dateLayout),
			t.ExitPrice.String(),
			t.ExitValue.StringFixed(2),
			t.PnL.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
