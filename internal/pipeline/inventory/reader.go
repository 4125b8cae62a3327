package inventory

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sabia-pyme/backend-go/internal/domain"
	"github.com/sabia-pyme/backend-go/internal/pipeline"
	"github.com/sabia-pyme/backend-go/internal/pipeline/costing"
)

// Column names of the single-table report.
const (
	ColProduct        = "Producto"
	ColUnitCost       = "Costo_Unitario"
	ColSalePrice      = "Precio_Venta"
	ColStockCurrent   = "Stock_Actual"
	ColStockMinimum   = "Stock_Minimo"
	ColSalesLastMonth = "Ventas_Mes_Anterior"
	ColCategory       = "Categoria"
)

// Columns is the full column order of a report, Categoria included.
var Columns = []string{
	ColProduct,
	ColUnitCost,
	ColSalePrice,
	ColStockCurrent,
	ColStockMinimum,
	ColSalesLastMonth,
	ColCategory,
}

var requiredColumns = Columns[:6]

// IsSupported reports whether filename has a readable extension.
func IsSupported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}

// ReadItems parses a CSV or XLSX report into inventory items.
func ReadItems(filename string, content []byte) ([]domain.InventoryItem, error) {
	var (
		table *pipeline.Table
		err   error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		table, err = pipeline.ReadXLSXTable(filename, content)
	case ".csv":
		table, err = pipeline.ReadTable(filename, content)
	default:
		return nil, fmt.Errorf("unsupported file extension %q for %s (expected .csv or .xlsx)", filepath.Ext(filename), filename)
	}
	if err != nil {
		return nil, err
	}

	idx, err := table.Require(requiredColumns...)
	if err != nil {
		return nil, err
	}
	categoryIdx := table.Index(ColCategory)

	items := make([]domain.InventoryItem, 0, len(table.Rows))
	for _, record := range table.Rows {
		items = append(items, domain.InventoryItem{
			Product:        pipeline.Cell(record, idx[ColProduct]),
			UnitCost:       costing.NormalizeCell(pipeline.Cell(record, idx[ColUnitCost])),
			SalePrice:      costing.NormalizeCell(pipeline.Cell(record, idx[ColSalePrice])),
			StockCurrent:   costing.NormalizeCell(pipeline.Cell(record, idx[ColStockCurrent])),
			StockMinimum:   costing.NormalizeCell(pipeline.Cell(record, idx[ColStockMinimum])),
			SalesLastMonth: costing.NormalizeCell(pipeline.Cell(record, idx[ColSalesLastMonth])),
			Category:       pipeline.Cell(record, categoryIdx),
		})
	}
	return items, nil
}
