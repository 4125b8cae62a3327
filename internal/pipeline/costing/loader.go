package costing

import (
	"context"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/sabia-pyme/backend-go/internal/domain"
	"github.com/sabia-pyme/backend-go/internal/pipeline"
)

// Logical table names.
const (
	TableProducts        = "productos"
	TableSales           = "ventas"
	TableSupplyInputs    = "insumos"
	TableRecipes         = "recetas"
	TableProductionTimes = "tiempos"
	TableFixedExpenses   = "gastos"
)

// canonicalFiles maps the expected upload filename to its logical table.
var canonicalFiles = map[string]string{
	"productos.csv":          TableProducts,
	"ventas.csv":             TableSales,
	"insumos.csv":            TableSupplyInputs,
	"recetas.csv":            TableRecipes,
	"tiempos-produccion.csv": TableProductionTimes,
	"gastos-generales.csv":   TableFixedExpenses,
}

// TableNames lists the six logical tables in load order.
var TableNames = []string{
	TableProducts,
	TableSales,
	TableSupplyInputs,
	TableRecipes,
	TableProductionTimes,
	TableFixedExpenses,
}

// LogicalName returns the logical table for an uploaded filename. Matching
// is exact on the base name.
func LogicalName(filename string) (string, bool) {
	name, ok := canonicalFiles[filepath.Base(filename)]
	return name, ok
}

// CanonicalFilename returns the expected filename of a logical table.
func CanonicalFilename(table string) string {
	for file, name := range canonicalFiles {
		if name == table {
			return file
		}
	}
	return ""
}

// MatchFiles assigns uploaded files to logical tables. Unknown filenames are
// skipped; when a filename repeats the first upload is kept.
func MatchFiles(files []domain.UploadedFile) (map[string]domain.UploadedFile, []string) {
	matched := make(map[string]domain.UploadedFile, len(TableNames))
	for _, f := range files {
		name, ok := LogicalName(f.Filename)
		if !ok {
			log.Debug().Str("file", f.Filename).Msg("Ignoring unrecognized input file")
			continue
		}
		if _, dup := matched[name]; dup {
			log.Warn().Str("file", f.Filename).Str("table", name).Msg("Duplicate input file, keeping first")
			continue
		}
		matched[name] = f
	}

	var missing []string
	for _, name := range TableNames {
		if _, ok := matched[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return matched, missing
}

// Load validates that all six tables are present, parses them concurrently
// and normalizes the designated numeric columns. It returns either a full
// TableSet or a *MissingTablesError / *ParseError.
func Load(ctx context.Context, files []domain.UploadedFile) (*domain.TableSet, error) {
	matched, missing := MatchFiles(files)
	if len(missing) > 0 {
		return nil, &MissingTablesError{Missing: missing}
	}

	set := &domain.TableSet{}
	g, gctx := errgroup.WithContext(ctx)

	for _, name := range TableNames {
		file := matched[name]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			table, err := pipeline.ReadTable(file.Filename, file.Content)
			if err != nil {
				return &ParseError{File: file.Filename, Err: err}
			}
			if err := decodeInto(set, name, table); err != nil {
				return &ParseError{File: file.Filename, Err: err}
			}

			log.Debug().
				Str("table", name).
				Int("rows", len(table.Rows)).
				Str("delimiter", string(table.Delimiter)).
				Msg("Parsed input table")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return set, nil
}

// decodeInto fills the TableSet field that belongs to name. Each logical
// table owns a distinct field, so concurrent calls never overlap.
func decodeInto(set *domain.TableSet, name string, t *pipeline.Table) error {
	var err error
	switch name {
	case TableProducts:
		set.Products, err = parseProducts(t)
	case TableSales:
		set.Sales, err = parseSales(t)
	case TableSupplyInputs:
		set.SupplyInputs, err = parseSupplyInputs(t)
	case TableRecipes:
		set.Recipes, err = parseRecipes(t)
	case TableProductionTimes:
		set.ProductionTimes, err = parseProductionTimes(t)
	case TableFixedExpenses:
		set.FixedExpenses, err = parseFixedExpenses(t)
	}
	return err
}

func parseProducts(t *pipeline.Table) ([]domain.Product, error) {
	idx, err := t.Require("producto_id", "nombre_producto", "precio_venta_actual")
	if err != nil {
		return nil, err
	}

	prices := NormalizeColumn(t.Column(idx["precio_venta_actual"]))
	out := make([]domain.Product, len(t.Rows))
	for i, record := range t.Rows {
		out[i] = domain.Product{
			ID:        pipeline.Cell(record, idx["producto_id"]),
			Name:      pipeline.Cell(record, idx["nombre_producto"]),
			SalePrice: prices[i],
		}
	}
	return out, nil
}

func parseSales(t *pipeline.Table) ([]domain.Sale, error) {
	idx, err := t.Require("cantidad_vendida")
	if err != nil {
		return nil, err
	}

	quantities := NormalizeColumn(t.Column(idx["cantidad_vendida"]))
	out := make([]domain.Sale, len(quantities))
	for i, q := range quantities {
		out[i] = domain.Sale{QuantitySold: q}
	}
	return out, nil
}

func parseSupplyInputs(t *pipeline.Table) ([]domain.SupplyInput, error) {
	idx, err := t.Require("insumo_id", "costo_unitario")
	if err != nil {
		return nil, err
	}

	costs := NormalizeColumn(t.Column(idx["costo_unitario"]))
	out := make([]domain.SupplyInput, len(t.Rows))
	for i, record := range t.Rows {
		out[i] = domain.SupplyInput{
			ID:       pipeline.Cell(record, idx["insumo_id"]),
			UnitCost: costs[i],
		}
	}
	return out, nil
}

func parseRecipes(t *pipeline.Table) ([]domain.Recipe, error) {
	idx, err := t.Require("producto_id", "insumo_id", "cantidad")
	if err != nil {
		return nil, err
	}

	quantities := NormalizeColumn(t.Column(idx["cantidad"]))
	out := make([]domain.Recipe, len(t.Rows))
	for i, record := range t.Rows {
		out[i] = domain.Recipe{
			ProductID: pipeline.Cell(record, idx["producto_id"]),
			InputID:   pipeline.Cell(record, idx["insumo_id"]),
			Quantity:  quantities[i],
		}
	}
	return out, nil
}

// tiempo_total_min is taken as-is, without currency normalization.
func parseProductionTimes(t *pipeline.Table) ([]domain.ProductionTime, error) {
	idx, err := t.Require("producto_id", "tiempo_total_min")
	if err != nil {
		return nil, err
	}

	out := make([]domain.ProductionTime, len(t.Rows))
	for i, record := range t.Rows {
		minutes, err := strconv.ParseFloat(pipeline.Cell(record, idx["tiempo_total_min"]), 64)
		if err != nil {
			minutes = 0
		}
		out[i] = domain.ProductionTime{
			ProductID:    pipeline.Cell(record, idx["producto_id"]),
			TotalMinutes: finite(minutes),
		}
	}
	return out, nil
}

func parseFixedExpenses(t *pipeline.Table) ([]domain.FixedExpense, error) {
	idx, err := t.Require("monto_mensual")
	if err != nil {
		return nil, err
	}

	amounts := NormalizeColumn(t.Column(idx["monto_mensual"]))
	out := make([]domain.FixedExpense, len(amounts))
	for i, a := range amounts {
		out[i] = domain.FixedExpense{MonthlyAmount: a}
	}
	return out, nil
}
