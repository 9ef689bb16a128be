// Package pricing loads the per-event price override table. The table maps
// product codes to the unit prices negotiated for the trade show; products
// without an entry sell at their catalog price.
package pricing

import (
	"encoding/json"
	"os"
	"strings"

	"expodesk_backend/platform/logger"

	"github.com/shopspring/decimal"
)

// Table holds the event price overrides, keyed by lower-cased product code.
type Table struct {
	prices map[string]decimal.Decimal
}

// Load reads the override file. A missing or unreadable file yields an empty
// table: the event then runs entirely on catalog prices.
func Load(path string, log *logger.Logger) *Table {
	table := &Table{prices: map[string]decimal.Decimal{}}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("price override file not loaded, using catalog prices", "path", path, "error", err.Error())
		return table
	}

	var raw map[string]json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn("price override file malformed, using catalog prices", "path", path, "error", err.Error())
		return table
	}

	for code, number := range raw {
		price, err := decimal.NewFromString(number.String())
		if err != nil {
			log.Warn("price override skipped", "code", code, "value", number.String())
			continue
		}
		table.prices[strings.ToLower(strings.TrimSpace(code))] = price
	}

	log.Info("price overrides loaded", "path", path, "entries", len(table.prices))
	return table
}

// UnitPrice looks up the override for a product code. Lookup is
// case-insensitive.
func (t *Table) UnitPrice(code string) (decimal.Decimal, bool) {
	price, ok := t.prices[strings.ToLower(strings.TrimSpace(code))]
	return price, ok
}
