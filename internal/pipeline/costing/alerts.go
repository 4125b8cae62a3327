package costing

import (
	"math"

	"github.com/sabia-pyme/backend-go/internal/domain"
)

// DefaultAlertThresholdPct is the profitability percentage below which a
// product is flagged.
const DefaultAlertThresholdPct = 20.0

// FilterLowProfitability returns the rows whose profitability is strictly
// below thresholdPct, in master table order.
func FilterLowProfitability(rows []domain.MasterRow, thresholdPct float64) []domain.ProfitabilityAlert {
	alerts := make([]domain.ProfitabilityAlert, 0)
	for _, row := range rows {
		if row.ProfitabilityPct >= thresholdPct {
			continue
		}
		alerts = append(alerts, domain.ProfitabilityAlert{
			ProductID:        row.ProductID,
			ProductName:      row.ProductName,
			ProfitabilityPct: row.ProfitabilityPct,
			Progress:         progress(row.ProfitabilityPct),
		})
	}
	return alerts
}

// progress truncates pct to an integer, clamps it to [0, 100] and scales
// it to [0, 1].
func progress(pct float64) float64 {
	p := math.Trunc(pct)
	p = math.Max(0, math.Min(p, 100))
	return p / 100
}

// Summarize computes the headline figures of a master table. The top
// product is the first row with the highest margin.
func Summarize(rows []domain.MasterRow, alerts []domain.ProfitabilityAlert, alloc domain.ExpenseAllocation) domain.CostingSummary {
	summary := domain.CostingSummary{
		FixedCostPerUnit: alloc.PerUnit,
		ProductCount:     len(rows),
		AlertCount:       len(alerts),
	}
	if len(rows) == 0 {
		return summary
	}

	top := 0
	var total float64
	for i, row := range rows {
		if row.ProfitMargin > rows[top].ProfitMargin {
			top = i
		}
		total += row.ProfitabilityPct
	}
	summary.TopProduct = rows[top].ProductName
	summary.AverageProfitability = total / float64(len(rows))
	return summary
}
