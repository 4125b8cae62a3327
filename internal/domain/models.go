// internal/domain/models.go
package domain

import "time"

// UploadedFile represents an uploaded file for processing
type UploadedFile struct {
	Filename string
	Size     int64
	Content  []byte
}

// Product is a row of productos.csv
type Product struct {
	ID        string  `json:"producto_id"`
	Name      string  `json:"nombre_producto"`
	SalePrice float64 `json:"precio_venta_actual"`
}

// Sale is a row of ventas.csv; only the quantity takes part in the costing.
type Sale struct {
	QuantitySold float64 `json:"cantidad_vendida"`
}

// SupplyInput is a row of insumos.csv
type SupplyInput struct {
	ID       string  `json:"insumo_id"`
	UnitCost float64 `json:"costo_unitario"`
}

// Recipe links a product to the quantity of a supply input it consumes.
type Recipe struct {
	ProductID string  `json:"producto_id"`
	InputID   string  `json:"insumo_id"`
	Quantity  float64 `json:"cantidad"`
}

// ProductionTime is a row of tiempos-produccion.csv
type ProductionTime struct {
	ProductID    string  `json:"producto_id"`
	TotalMinutes float64 `json:"tiempo_total_min"`
}

// FixedExpense is a row of gastos-generales.csv
type FixedExpense struct {
	MonthlyAmount float64 `json:"monto_mensual"`
}

// TableSet holds the six validated and normalized input tables.
type TableSet struct {
	Products        []Product        `json:"productos"`
	Sales           []Sale           `json:"ventas"`
	SupplyInputs    []SupplyInput    `json:"insumos"`
	Recipes         []Recipe         `json:"recetas"`
	ProductionTimes []ProductionTime `json:"tiempos"`
	FixedExpenses   []FixedExpense   `json:"gastos"`
}

// ProductInputCost is the aggregated direct input cost of one product.
type ProductInputCost struct {
	ProductID      string  `json:"producto_id"`
	InputCostTotal float64 `json:"costo_insumos_total"`
}

// ExpenseAllocation is the period-wide fixed cost per unit sold.
type ExpenseAllocation struct {
	TotalExpenses  float64 `json:"total_gastos"`
	TotalUnitsSold float64 `json:"total_ventas"`
	PerUnit        float64 `json:"gasto_fijo_unitario"`
}

// MasterRow is one product of the master profitability table.
type MasterRow struct {
	ProductID          string  `json:"producto_id"`
	ProductName        string  `json:"nombre_producto"`
	SalePrice          float64 `json:"precio_venta_actual"`
	InputCostTotal     float64 `json:"costo_insumos_total"`
	ProductionMinutes  float64 `json:"tiempo_total_min"`
	FixedCostAllocated float64 `json:"gasto_fijo_asignado"`
	TotalRealCost      float64 `json:"costo_total_real"`
	ProfitMargin       float64 `json:"margen_ganancia"`
	ProfitabilityPct   float64 `json:"rentabilidad_pct"`
}

// ProfitabilityAlert marks a product whose profitability is under threshold.
type ProfitabilityAlert struct {
	ProductID        string  `json:"producto_id"`
	ProductName      string  `json:"nombre_producto"`
	ProfitabilityPct float64 `json:"rentabilidad_pct"`
	// Progress is the percentage clamped to [0, 100] and scaled to [0, 1].
	Progress float64 `json:"progress"`
}

// CostingSummary holds the headline figures of a master table.
type CostingSummary struct {
	TopProduct           string  `json:"top_product"`
	AverageProfitability float64 `json:"average_profitability_pct"`
	FixedCostPerUnit     float64 `json:"fixed_cost_per_unit"`
	ProductCount         int     `json:"product_count"`
	AlertCount           int     `json:"alert_count"`
}

// CostingResult is the complete output of one costing run.
type CostingResult struct {
	Master      []MasterRow          `json:"master"`
	Alerts      []ProfitabilityAlert `json:"alerts"`
	Allocation  ExpenseAllocation    `json:"allocation"`
	Summary     CostingSummary       `json:"summary"`
	ProcessedAt time.Time            `json:"processed_at"`
}
