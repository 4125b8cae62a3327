package domain

// InventoryItem is a row of the single-table product report.
type InventoryItem struct {
	Product        string  `json:"producto"`
	UnitCost       float64 `json:"costo_unitario"`
	SalePrice      float64 `json:"precio_venta"`
	StockCurrent   float64 `json:"stock_actual"`
	StockMinimum   float64 `json:"stock_minimo"`
	SalesLastMonth float64 `json:"ventas_mes_anterior"`
	Category       string  `json:"categoria,omitempty"`
}

// StockAlert signals that an item is below its minimum stock.
type StockAlert struct {
	Product string  `json:"producto"`
	Current float64 `json:"stock_actual"`
	Minimum float64 `json:"stock_minimo"`
	Message string  `json:"mensaje"`
	Action  string  `json:"accion"`
}

// PriceRecommendation suggests a new price for a low-margin item.
type PriceRecommendation struct {
	Product        string  `json:"producto"`
	CurrentMargin  float64 `json:"margen_actual"`
	SuggestedPrice float64 `json:"nuevo_precio"`
	Message        string  `json:"mensaje"`
	Detail         string  `json:"detalle"`
	Action         string  `json:"accion"`
}

// EconomicImpact compares current profit with the profit after applying
// every price recommendation.
type EconomicImpact struct {
	CurrentProfit   float64 `json:"utilidad_actual"`
	ProjectedProfit float64 `json:"utilidad_proyectada"`
	IncreasePct     float64 `json:"incremento_porc"`
}

// PriceAdjustment details the effect of one price recommendation.
type PriceAdjustment struct {
	Product            string  `json:"producto"`
	CurrentPrice       float64 `json:"precio_actual"`
	SuggestedPrice     float64 `json:"precio_sugerido"`
	PreviousMargin     float64 `json:"margen_anterior"`
	NewMargin          float64 `json:"margen_nuevo"`
	ExtraMonthlyProfit float64 `json:"ganancia_mensual_extra"`
}

// InventoryRow is an item together with its margin percentage.
type InventoryRow struct {
	InventoryItem
	MarginPct float64 `json:"margen_pct"`
}

// InventoryKPIs are the headline figures of a single-table report.
type InventoryKPIs struct {
	AverageMarginPct float64 `json:"rentabilidad_promedio"`
	TotalCost        float64 `json:"costos_totales"`
	CriticalAlerts   int     `json:"alertas_criticas"`
}

// InventoryReport is the complete output of a single-table analysis.
type InventoryReport struct {
	Items           []InventoryRow        `json:"items"`
	KPIs            InventoryKPIs         `json:"kpis"`
	StockAlerts     []StockAlert          `json:"alertas"`
	Recommendations []PriceRecommendation `json:"recomendaciones"`
	Impact          EconomicImpact        `json:"impacto"`
	Adjustments     []PriceAdjustment     `json:"ajustes"`
}
