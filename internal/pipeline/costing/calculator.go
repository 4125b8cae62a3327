package costing

import (
	"github.com/rs/zerolog/log"

	"github.com/sabia-pyme/backend-go/internal/domain"
)

// lookup is a keyed index over a secondary table. A miss resolves to the
// caller-supplied zero record instead of an absent value.
type lookup[T any] map[string]T

func (l lookup[T]) resolve(key string, zero T) T {
	if v, ok := l[key]; ok {
		return v
	}
	return zero
}

// indexFirst builds a lookup keeping the first row seen for each key.
func indexFirst[T any](table string, rows []T, key func(T) string) lookup[T] {
	idx := make(lookup[T], len(rows))
	for _, row := range rows {
		k := key(row)
		if _, dup := idx[k]; dup {
			log.Warn().Str("table", table).Str("key", k).Msg("Duplicate key, keeping first row")
			continue
		}
		idx[k] = row
	}
	return idx
}

// AggregateInputCosts inner-joins recipes with supply inputs on insumo_id
// and sums cantidad * costo_unitario per product. Recipe rows without a
// matching input contribute nothing. Output order follows the first
// appearance of each product in recipes.
func AggregateInputCosts(recipes []domain.Recipe, inputs []domain.SupplyInput) []domain.ProductInputCost {
	inputIdx := indexFirst(TableSupplyInputs, inputs, func(in domain.SupplyInput) string { return in.ID })

	totals := make(map[string]int)
	out := make([]domain.ProductInputCost, 0)
	for _, r := range recipes {
		input, ok := inputIdx[r.InputID]
		if !ok {
			continue
		}

		lineCost := r.Quantity * input.UnitCost
		pos, seen := totals[r.ProductID]
		if !seen {
			pos = len(out)
			totals[r.ProductID] = pos
			out = append(out, domain.ProductInputCost{ProductID: r.ProductID})
		}
		out[pos].InputCostTotal += lineCost
	}
	return out
}

// AllocateFixedExpenses spreads the period's fixed expenses evenly over the
// units sold. With no sales the per-unit figure is 0.
func AllocateFixedExpenses(expenses []domain.FixedExpense, sales []domain.Sale) domain.ExpenseAllocation {
	var alloc domain.ExpenseAllocation
	for _, e := range expenses {
		alloc.TotalExpenses += e.MonthlyAmount
	}
	for _, s := range sales {
		alloc.TotalUnitsSold += s.QuantitySold
	}
	if alloc.TotalUnitsSold > 0 {
		alloc.PerUnit = alloc.TotalExpenses / alloc.TotalUnitsSold
	}
	return alloc
}

// BuildMasterTable left-joins products with their input cost and production
// time, attaches the per-unit fixed cost and derives margin figures. The
// result has exactly one row per product, in product order.
func BuildMasterTable(
	products []domain.Product,
	costs []domain.ProductInputCost,
	times []domain.ProductionTime,
	alloc domain.ExpenseAllocation,
) []domain.MasterRow {
	costIdx := indexFirst("costos", costs, func(c domain.ProductInputCost) string { return c.ProductID })
	timeIdx := indexFirst(TableProductionTimes, times, func(t domain.ProductionTime) string { return t.ProductID })

	rows := make([]domain.MasterRow, len(products))
	for i, p := range products {
		cost := costIdx.resolve(p.ID, domain.ProductInputCost{ProductID: p.ID})
		prodTime := timeIdx.resolve(p.ID, domain.ProductionTime{ProductID: p.ID})

		// 1. Direct input cost and production time (zero when unmatched)
		row := domain.MasterRow{
			ProductID:         p.ID,
			ProductName:       p.Name,
			SalePrice:         p.SalePrice,
			InputCostTotal:    cost.InputCostTotal,
			ProductionMinutes: prodTime.TotalMinutes,
		}

		// 2. Uniform fixed cost per unit
		row.FixedCostAllocated = alloc.PerUnit

		// 3. Total real cost = input cost + allocated fixed cost
		row.TotalRealCost = row.InputCostTotal + row.FixedCostAllocated

		// 4. Margin = price - total real cost
		row.ProfitMargin = row.SalePrice - row.TotalRealCost

		// 5. Profitability % = margin / price * 100
		row.ProfitabilityPct = percentOf(row.ProfitMargin, row.SalePrice)

		rows[i] = row
	}
	return rows
}

// percentOf returns part / base * 100, using 1 as base when base is 0.
func percentOf(part, base float64) float64 {
	if base == 0 {
		base = 1
	}
	return part * 100 / base
}
