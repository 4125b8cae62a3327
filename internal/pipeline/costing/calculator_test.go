package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabia-pyme/backend-go/internal/domain"
)

func TestAggregateInputCosts(t *testing.T) {
	recipes := []domain.Recipe{
		{ProductID: "B", InputID: "i1", Quantity: 2},
		{ProductID: "A", InputID: "i1", Quantity: 1},
		{ProductID: "B", InputID: "i2", Quantity: 0.5},
		{ProductID: "A", InputID: "missing", Quantity: 100},
		{ProductID: "C", InputID: "missing", Quantity: 1},
	}
	inputs := []domain.SupplyInput{
		{ID: "i1", UnitCost: 3},
		{ID: "i2", UnitCost: 4},
	}

	costs := AggregateInputCosts(recipes, inputs)

	require.Len(t, costs, 2, "recipes without a matching input are dropped")
	assert.Equal(t, domain.ProductInputCost{ProductID: "B", InputCostTotal: 8}, costs[0])
	assert.Equal(t, domain.ProductInputCost{ProductID: "A", InputCostTotal: 3}, costs[1])
}

func TestAggregateInputCosts_DuplicateInputKeepsFirst(t *testing.T) {
	recipes := []domain.Recipe{{ProductID: "A", InputID: "i1", Quantity: 2}}
	inputs := []domain.SupplyInput{
		{ID: "i1", UnitCost: 3},
		{ID: "i1", UnitCost: 99},
	}

	costs := AggregateInputCosts(recipes, inputs)
	require.Len(t, costs, 1)
	assert.Equal(t, 6.0, costs[0].InputCostTotal)
}

func TestAllocateFixedExpenses(t *testing.T) {
	t.Run("spreads over units sold", func(t *testing.T) {
		alloc := AllocateFixedExpenses(
			[]domain.FixedExpense{{MonthlyAmount: 60}, {MonthlyAmount: 40}},
			[]domain.Sale{{QuantitySold: 30}, {QuantitySold: 20}},
		)
		assert.Equal(t, 100.0, alloc.TotalExpenses)
		assert.Equal(t, 50.0, alloc.TotalUnitsSold)
		assert.Equal(t, 2.0, alloc.PerUnit)
	})

	t.Run("no sales gives zero", func(t *testing.T) {
		alloc := AllocateFixedExpenses(
			[]domain.FixedExpense{{MonthlyAmount: 100}},
			[]domain.Sale{{QuantitySold: 0}},
		)
		assert.Equal(t, 0.0, alloc.PerUnit)
	})

	t.Run("empty tables", func(t *testing.T) {
		assert.Equal(t, domain.ExpenseAllocation{}, AllocateFixedExpenses(nil, nil))
	})
}

func TestBuildMasterTable_Bread(t *testing.T) {
	products := []domain.Product{{ID: "1", Name: "Pan", SalePrice: 10}}
	costs := AggregateInputCosts(
		[]domain.Recipe{{ProductID: "1", InputID: "1", Quantity: 2}},
		[]domain.SupplyInput{{ID: "1", UnitCost: 3}},
	)
	times := []domain.ProductionTime{{ProductID: "1", TotalMinutes: 15}}
	alloc := AllocateFixedExpenses(
		[]domain.FixedExpense{{MonthlyAmount: 100}},
		[]domain.Sale{{QuantitySold: 50}},
	)

	rows := BuildMasterTable(products, costs, times, alloc)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 6.0, row.InputCostTotal)
	assert.Equal(t, 15.0, row.ProductionMinutes)
	assert.Equal(t, 2.0, row.FixedCostAllocated)
	assert.Equal(t, 8.0, row.TotalRealCost)
	assert.Equal(t, 2.0, row.ProfitMargin)
	assert.InDelta(t, 20.0, row.ProfitabilityPct, 1e-9)
	assert.Empty(t, FilterLowProfitability(rows, DefaultAlertThresholdPct), "threshold is strict")
}

func TestBuildMasterTable_ZeroFill(t *testing.T) {
	products := []domain.Product{
		{ID: "1", Name: "Pan", SalePrice: 10},
		{ID: "2", Name: "Torta", SalePrice: 20},
	}
	costs := []domain.ProductInputCost{{ProductID: "1", InputCostTotal: 4}}
	times := []domain.ProductionTime{{ProductID: "1", TotalMinutes: 30}}
	alloc := domain.ExpenseAllocation{PerUnit: 1.5}

	rows := BuildMasterTable(products, costs, times, alloc)
	require.Len(t, rows, 2)

	torta := rows[1]
	assert.Equal(t, "2", torta.ProductID)
	assert.Equal(t, 0.0, torta.InputCostTotal)
	assert.Equal(t, 0.0, torta.ProductionMinutes)
	assert.Equal(t, 1.5, torta.TotalRealCost)
	assert.Equal(t, 18.5, torta.ProfitMargin)

	for _, r := range rows {
		assert.Equal(t, 1.5, r.FixedCostAllocated)
	}
}

func TestBuildMasterTable_ZeroPrice(t *testing.T) {
	products := []domain.Product{{ID: "1", Name: "Muestra", SalePrice: 0}}
	costs := []domain.ProductInputCost{{ProductID: "1", InputCostTotal: 3}}

	rows := BuildMasterTable(products, costs, nil, domain.ExpenseAllocation{})
	require.Len(t, rows, 1)
	assert.Equal(t, -3.0, rows[0].ProfitMargin)
	assert.Equal(t, -300.0, rows[0].ProfitabilityPct)
}

func TestBuildMasterTable_PreservesCardinality(t *testing.T) {
	products := []domain.Product{
		{ID: "1", Name: "Pan", SalePrice: 10},
		{ID: "1", Name: "Pan repetido", SalePrice: 10},
		{ID: "3", Name: "Galleta", SalePrice: 5},
	}
	times := []domain.ProductionTime{
		{ProductID: "1", TotalMinutes: 15},
		{ProductID: "1", TotalMinutes: 99},
	}

	rows := BuildMasterTable(products, nil, times, domain.ExpenseAllocation{})
	require.Len(t, rows, len(products))
	assert.Equal(t, "Pan repetido", rows[1].ProductName)
	assert.Equal(t, 15.0, rows[1].ProductionMinutes)
	assert.Equal(t, "Galleta", rows[2].ProductName)
}
