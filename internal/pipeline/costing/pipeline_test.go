package costing

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabia-pyme/backend-go/internal/pipeline"
)

func TestCostingPipeline_Run(t *testing.T) {
	p := NewCostingPipeline(DefaultConfig())
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	files := breadFiles()
	files["productos.csv"] = "producto_id,nombre_producto,precio_venta_actual\n" +
		"1,Pan,$10\n" +
		"2,Torta,\"$8,00\"\n" +
		"3,Galleta,0\n"

	result, err := p.Run(context.Background(), toUploads(files))
	require.NoError(t, err)

	require.Len(t, result.Master, 3)
	assert.Equal(t, fixed, result.ProcessedAt)
	assert.Equal(t, 2.0, result.Allocation.PerUnit)

	pan := result.Master[0]
	assert.Equal(t, 8.0, pan.TotalRealCost)
	assert.InDelta(t, 20.0, pan.ProfitabilityPct, 1e-9)

	torta := result.Master[1]
	assert.Equal(t, 8.0, torta.SalePrice)
	assert.Equal(t, 0.0, torta.InputCostTotal)
	assert.Equal(t, 6.0, torta.ProfitMargin)
	assert.InDelta(t, 75.0, torta.ProfitabilityPct, 1e-9)

	galleta := result.Master[2]
	assert.Equal(t, -2.0, galleta.ProfitMargin)
	assert.Equal(t, -200.0, galleta.ProfitabilityPct)

	require.Len(t, result.Alerts, 1)
	assert.Equal(t, "Galleta", result.Alerts[0].ProductName)

	assert.Equal(t, "Torta", result.Summary.TopProduct)
	assert.Equal(t, 1, result.Summary.AlertCount)
}

func TestCostingPipeline_ConfiguredThreshold(t *testing.T) {
	p := NewCostingPipeline(Config{AlertThresholdPct: 30})

	result, err := p.Run(context.Background(), toUploads(breadFiles()))
	require.NoError(t, err)
	require.Len(t, result.Alerts, 1)
	assert.Equal(t, "Pan", result.Alerts[0].ProductName)
}

func TestCostingPipeline_MissingTablesReturnsNoResult(t *testing.T) {
	files := breadFiles()
	delete(files, "gastos-generales.csv")

	result, err := NewCostingPipeline(DefaultConfig()).Run(context.Background(), toUploads(files))
	assert.Nil(t, result)

	var missingErr *MissingTablesError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, []string{TableFixedExpenses}, missingErr.Missing)
}

func TestCostingPipeline_Export(t *testing.T) {
	p := NewCostingPipeline(DefaultConfig())

	var buf bytes.Buffer
	require.NoError(t, pipeline.Export(context.Background(), p, toUploads(breadFiles()), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, p.Headers(), records[0])
	assert.Equal(t, []string{"1", "Pan", "10", "6", "15", "2", "8", "2", "20"}, records[1])
}
