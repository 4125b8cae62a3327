package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sabia-pyme/backend-go/internal/domain"
	"github.com/sabia-pyme/backend-go/internal/pipeline"
)

// ErrNoFile is returned when no report was provided.
var ErrNoFile = errors.New("no inventory file provided")

// ColMarginPct is the derived margin column added on export.
const ColMarginPct = "Margen_%"

// InventoryPipeline analyzes a single pre-joined product report. It
// implements pipeline.Pipeline.
type InventoryPipeline struct {
	calculator *Calculator
}

// NewInventoryPipeline creates a new inventory pipeline instance.
func NewInventoryPipeline(t Thresholds) *InventoryPipeline {
	return &InventoryPipeline{calculator: NewCalculator(t)}
}

// Name returns the unique identifier of this pipeline.
func (p *InventoryPipeline) Name() string {
	return "inventory"
}

// Headers returns the report columns followed by the margin percentage.
func (p *InventoryPipeline) Headers() []string {
	return append(append([]string(nil), Columns...), ColMarginPct)
}

// Analyze reads the report and computes alerts, recommendations and impact.
func (p *InventoryPipeline) Analyze(ctx context.Context, file domain.UploadedFile) (*domain.InventoryReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	items, err := ReadItems(file.Filename, file.Content)
	if err != nil {
		return nil, err
	}

	report := p.calculator.Analyze(items)

	log.Info().
		Str("pipeline", p.Name()).
		Str("file", file.Filename).
		Int("items", len(report.Items)).
		Int("stock_alerts", len(report.StockAlerts)).
		Int("recommendations", len(report.Recommendations)).
		Dur("duration", time.Since(start)).
		Msg("Inventory analysis completed")

	return report, nil
}

// Transform analyzes the first file and returns its rows with margins.
func (p *InventoryPipeline) Transform(ctx context.Context, files []domain.UploadedFile) ([]pipeline.TransformedRow, error) {
	if len(files) == 0 {
		return nil, ErrNoFile
	}
	report, err := p.Analyze(ctx, files[0])
	if err != nil {
		return nil, err
	}

	out := make([]pipeline.TransformedRow, len(report.Items))
	for i, r := range report.Items {
		out[i] = pipeline.TransformedRow{Data: map[string]interface{}{
			ColProduct:        r.Product,
			ColUnitCost:       r.UnitCost,
			ColSalePrice:      r.SalePrice,
			ColStockCurrent:   r.StockCurrent,
			ColStockMinimum:   r.StockMinimum,
			ColSalesLastMonth: r.SalesLastMonth,
			ColCategory:       r.Category,
			ColMarginPct:      pipeline.RoundFloat(r.MarginPct, 2),
		}}
	}
	return out, nil
}
