// Package export writes market data out in interchange formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/MichelleInnovates/cryptobuddy/pkg/models"
)

// csvHeader is the fixed column order of the market table export.
var csvHeader = []string{"Name", "Symbol", "Price (USD)", "24h Change (%)", "Market Cap (USD)", "24h Volume (USD)"}

// MarketCSV writes the snapshots as CSV in input order. Numbers are plain
// (no currency grouping) so spreadsheets parse them as numerics.
func MarketCSV(w io.Writer, snapshots []models.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range snapshots {
		record := []string{
			s.Name,
			strings.ToUpper(s.Symbol),
			fmt.Sprintf("%.8g", s.Price),
			fmt.Sprintf("%.2f", s.Change24h()),
			fmt.Sprintf("%.0f", s.MarketCap),
			fmt.Sprintf("%.0f", s.Volume24h),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", s.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
