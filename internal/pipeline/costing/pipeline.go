package costing

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sabia-pyme/backend-go/internal/domain"
	"github.com/sabia-pyme/backend-go/internal/pipeline"
)

// Config holds the tunables of a costing run.
type Config struct {
	AlertThresholdPct float64
}

// DefaultConfig returns the standard 20% profitability alert.
func DefaultConfig() Config {
	return Config{AlertThresholdPct: DefaultAlertThresholdPct}
}

// CostingPipeline turns the six input tables into the master profitability
// table. It implements pipeline.Pipeline.
type CostingPipeline struct {
	config Config
	now    func() time.Time
}

// NewCostingPipeline creates a new costing pipeline instance.
func NewCostingPipeline(cfg Config) *CostingPipeline {
	if cfg.AlertThresholdPct == 0 {
		cfg.AlertThresholdPct = DefaultAlertThresholdPct
	}
	return &CostingPipeline{config: cfg, now: time.Now}
}

// Name returns the unique identifier of this pipeline.
func (p *CostingPipeline) Name() string {
	return "costing"
}

// masterHeaders is the export order of the master table.
var masterHeaders = []string{
	"producto_id",
	"nombre_producto",
	"precio_venta_actual",
	"costo_insumos_total",
	"tiempo_total_min",
	"gasto_fijo_asignado",
	"costo_total_real",
	"margen_ganancia",
	"rentabilidad_pct",
}

// Headers returns the master table columns.
func (p *CostingPipeline) Headers() []string {
	return append([]string(nil), masterHeaders...)
}

// Run loads the uploaded tables and computes the full result. On any error
// no partial result is returned.
func (p *CostingPipeline) Run(ctx context.Context, files []domain.UploadedFile) (*domain.CostingResult, error) {
	start := p.now()

	set, err := Load(ctx, files)
	if err != nil {
		return nil, err
	}

	result := p.Compute(set)

	log.Info().
		Str("pipeline", p.Name()).
		Int("products", len(result.Master)).
		Int("alerts", len(result.Alerts)).
		Float64("fixed_cost_per_unit", result.Allocation.PerUnit).
		Dur("duration", time.Since(start)).
		Msg("Costing run completed")

	return result, nil
}

// Compute runs the join and derivation steps over an already loaded set.
func (p *CostingPipeline) Compute(set *domain.TableSet) *domain.CostingResult {
	costs := AggregateInputCosts(set.Recipes, set.SupplyInputs)
	alloc := AllocateFixedExpenses(set.FixedExpenses, set.Sales)
	master := BuildMasterTable(set.Products, costs, set.ProductionTimes, alloc)
	alerts := FilterLowProfitability(master, p.config.AlertThresholdPct)

	return &domain.CostingResult{
		Master:      master,
		Alerts:      alerts,
		Allocation:  alloc,
		Summary:     Summarize(master, alerts, alloc),
		ProcessedAt: p.now().UTC(),
	}
}

// Transform runs the pipeline and returns the master table as rows.
func (p *CostingPipeline) Transform(ctx context.Context, files []domain.UploadedFile) ([]pipeline.TransformedRow, error) {
	result, err := p.Run(ctx, files)
	if err != nil {
		return nil, err
	}
	return MasterRows(result.Master), nil
}

// MasterRows converts master table records into generic rows keyed by the
// export headers.
func MasterRows(rows []domain.MasterRow) []pipeline.TransformedRow {
	out := make([]pipeline.TransformedRow, len(rows))
	for i, r := range rows {
		out[i] = pipeline.TransformedRow{Data: map[string]interface{}{
			"producto_id":         r.ProductID,
			"nombre_producto":     r.ProductName,
			"precio_venta_actual": r.SalePrice,
			"costo_insumos_total": r.InputCostTotal,
			"tiempo_total_min":    r.ProductionMinutes,
			"gasto_fijo_asignado": r.FixedCostAllocated,
			"costo_total_real":    r.TotalRealCost,
			"margen_ganancia":     r.ProfitMargin,
			"rentabilidad_pct":    r.ProfitabilityPct,
		}}
	}
	return out
}
