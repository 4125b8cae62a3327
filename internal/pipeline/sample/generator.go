// Package sample writes a demonstration single-table report.
package sample

import (
	"bytes"
	"io"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/sabia-pyme/backend-go/internal/domain"
	"github.com/sabia-pyme/backend-go/internal/pipeline"
	"github.com/sabia-pyme/backend-go/internal/pipeline/inventory"
)

// DefaultFilename is the name of the generated demo report.
const DefaultFilename = "datos_pyme.csv"

// Items returns the demo inventory: a small bakery supplier with one
// critically low stock and one under-priced product.
func Items() []domain.InventoryItem {
	return []domain.InventoryItem{
		{Product: "Harina Integral", UnitCost: 1.20, SalePrice: 1.40, StockCurrent: 5, StockMinimum: 15, SalesLastMonth: 150, Category: "Insumos"},
		{Product: "Azúcar Refinada", UnitCost: 0.80, SalePrice: 1.50, StockCurrent: 45, StockMinimum: 20, SalesLastMonth: 200, Category: "Insumos"},
		{Product: "Aceite Vegetal", UnitCost: 2.50, SalePrice: 3.00, StockCurrent: 12, StockMinimum: 10, SalesLastMonth: 80, Category: "Insumos"},
		{Product: "Levadura Seca", UnitCost: 0.50, SalePrice: 2.50, StockCurrent: 60, StockMinimum: 15, SalesLastMonth: 120, Category: "Aditivos"},
		{Product: "Sal de Mar", UnitCost: 0.30, SalePrice: 0.90, StockCurrent: 100, StockMinimum: 20, SalesLastMonth: 50, Category: "Aditivos"},
	}
}

func rows(items []domain.InventoryItem) []pipeline.TransformedRow {
	out := make([]pipeline.TransformedRow, len(items))
	for i, item := range items {
		out[i] = pipeline.TransformedRow{Data: map[string]interface{}{
			inventory.ColProduct:        item.Product,
			inventory.ColUnitCost:       item.UnitCost,
			inventory.ColSalePrice:      item.SalePrice,
			inventory.ColStockCurrent:   item.StockCurrent,
			inventory.ColStockMinimum:   item.StockMinimum,
			inventory.ColSalesLastMonth: item.SalesLastMonth,
			inventory.ColCategory:       item.Category,
		}}
	}
	return out
}

// Write writes the demo report as CSV.
func Write(w io.Writer) error {
	return pipeline.WriteCSV(w, inventory.Columns, rows(Items()))
}

// Bytes returns the demo report as CSV content.
func Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the demo report into dir and returns its path.
func WriteFile(dir string) (string, error) {
	path := filepath.Join(dir, DefaultFilename)
	if err := pipeline.WriteCSVFile(path, inventory.Columns, rows(Items())); err != nil {
		return "", err
	}
	log.Info().Str("path", path).Int("rows", len(Items())).Msg("Sample report written")
	return path, nil
}
