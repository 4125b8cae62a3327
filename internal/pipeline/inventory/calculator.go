package inventory

import (
	"fmt"

	"github.com/sabia-pyme/backend-go/internal/domain"
	"github.com/sabia-pyme/backend-go/internal/pipeline"
)

// Recommendation actions.
const (
	ActionPurchaseOrder = "Generar Orden de Compra"
	ActionUpdatePrice   = "Actualizar Precio"
)

// Thresholds controls when a price recommendation is raised and which
// margin the suggested price targets. Both are ratios of the sale price.
type Thresholds struct {
	LowMarginRatio    float64
	TargetMarginRatio float64
}

// DefaultThresholds flags margins under 20% and targets 25%.
func DefaultThresholds() Thresholds {
	return Thresholds{LowMarginRatio: 0.20, TargetMarginRatio: 0.25}
}

// Calculator derives alerts, price recommendations and profit impact from
// a single-table report.
type Calculator struct {
	thresholds Thresholds
}

// NewCalculator creates a new calculator. Zero or out of range values fall
// back to the defaults.
func NewCalculator(t Thresholds) *Calculator {
	def := DefaultThresholds()
	if t.LowMarginRatio <= 0 || t.LowMarginRatio >= 1 {
		t.LowMarginRatio = def.LowMarginRatio
	}
	if t.TargetMarginRatio <= 0 || t.TargetMarginRatio >= 1 {
		t.TargetMarginRatio = def.TargetMarginRatio
	}
	return &Calculator{thresholds: t}
}

// Margin returns (price - cost) / price. A zero price is treated as 1.
func Margin(item domain.InventoryItem) float64 {
	return ratioOf(item.SalePrice-item.UnitCost, item.SalePrice)
}

// SuggestedPrice is the price that yields exactly the target margin.
func (c *Calculator) SuggestedPrice(item domain.InventoryItem) float64 {
	return item.UnitCost / (1 - c.thresholds.TargetMarginRatio)
}

func (c *Calculator) isLowMargin(item domain.InventoryItem) bool {
	return Margin(item) < c.thresholds.LowMarginRatio
}

// StockAlerts flags every item whose current stock is below its minimum.
func (c *Calculator) StockAlerts(items []domain.InventoryItem) []domain.StockAlert {
	alerts := make([]domain.StockAlert, 0)
	for _, item := range items {
		if item.StockCurrent >= item.StockMinimum {
			continue
		}
		alerts = append(alerts, domain.StockAlert{
			Product: item.Product,
			Current: item.StockCurrent,
			Minimum: item.StockMinimum,
			Message: fmt.Sprintf("Stock crítico de %s. Quedan %s unidades (Mínimo: %s).",
				item.Product, pipeline.FormatFloat(item.StockCurrent), pipeline.FormatFloat(item.StockMinimum)),
			Action: ActionPurchaseOrder,
		})
	}
	return alerts
}

// Recommendations suggests a new price for every low-margin item.
func (c *Calculator) Recommendations(items []domain.InventoryItem) []domain.PriceRecommendation {
	recs := make([]domain.PriceRecommendation, 0)
	for _, item := range items {
		if !c.isLowMargin(item) {
			continue
		}
		margin := Margin(item)
		price := c.SuggestedPrice(item)
		recs = append(recs, domain.PriceRecommendation{
			Product:        item.Product,
			CurrentMargin:  margin,
			SuggestedPrice: price,
			Message:        fmt.Sprintf("Margen bajo en %s (%s).", item.Product, pipeline.FormatPercent(margin)),
			Detail: fmt.Sprintf("Se recomienda subir el precio a %s para alcanzar un margen saludable.",
				pipeline.FormatMoney(price, 2)),
			Action: ActionUpdatePrice,
		})
	}
	return recs
}

// Impact compares last month's profit with the profit had every
// recommendation been applied. Sales volume weights each item.
func (c *Calculator) Impact(items []domain.InventoryItem) domain.EconomicImpact {
	var impact domain.EconomicImpact
	for _, item := range items {
		current := (item.SalePrice - item.UnitCost) * item.SalesLastMonth
		impact.CurrentProfit += current

		if c.isLowMargin(item) {
			impact.ProjectedProfit += (c.SuggestedPrice(item) - item.UnitCost) * item.SalesLastMonth
		} else {
			impact.ProjectedProfit += current
		}
	}
	impact.IncreasePct = ratioOf(impact.ProjectedProfit-impact.CurrentProfit, impact.CurrentProfit) * 100
	return impact
}

// Adjustments details the price change and extra monthly profit of every
// low-margin item.
func (c *Calculator) Adjustments(items []domain.InventoryItem) []domain.PriceAdjustment {
	adjustments := make([]domain.PriceAdjustment, 0)
	for _, item := range items {
		if !c.isLowMargin(item) {
			continue
		}
		price := c.SuggestedPrice(item)
		currentProfit := (item.SalePrice - item.UnitCost) * item.SalesLastMonth
		newProfit := (price - item.UnitCost) * item.SalesLastMonth

		adjustments = append(adjustments, domain.PriceAdjustment{
			Product:            item.Product,
			CurrentPrice:       item.SalePrice,
			SuggestedPrice:     price,
			PreviousMargin:     Margin(item),
			NewMargin:          c.thresholds.TargetMarginRatio,
			ExtraMonthlyProfit: newProfit - currentProfit,
		})
	}
	return adjustments
}

// Rows pairs every item with its margin percentage.
func (c *Calculator) Rows(items []domain.InventoryItem) []domain.InventoryRow {
	rows := make([]domain.InventoryRow, len(items))
	for i, item := range items {
		rows[i] = domain.InventoryRow{InventoryItem: item, MarginPct: Margin(item) * 100}
	}
	return rows
}

// KPIs computes the average margin, the total cost of last month's sales and
// the number of stock alerts.
func (c *Calculator) KPIs(rows []domain.InventoryRow, alerts []domain.StockAlert) domain.InventoryKPIs {
	kpis := domain.InventoryKPIs{CriticalAlerts: len(alerts)}
	if len(rows) == 0 {
		return kpis
	}

	var marginSum float64
	for _, r := range rows {
		marginSum += r.MarginPct
		kpis.TotalCost += r.UnitCost * r.SalesLastMonth
	}
	kpis.AverageMarginPct = marginSum / float64(len(rows))
	return kpis
}

// Analyze builds the complete report for items.
func (c *Calculator) Analyze(items []domain.InventoryItem) *domain.InventoryReport {
	rows := c.Rows(items)
	alerts := c.StockAlerts(items)

	return &domain.InventoryReport{
		Items:           rows,
		KPIs:            c.KPIs(rows, alerts),
		StockAlerts:     alerts,
		Recommendations: c.Recommendations(items),
		Impact:          c.Impact(items),
		Adjustments:     c.Adjustments(items),
	}
}

// ratioOf returns part / base, using 1 as base when base is 0.
func ratioOf(part, base float64) float64 {
	if base == 0 {
		base = 1
	}
	return part / base
}
