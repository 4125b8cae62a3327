package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabia-pyme/backend-go/internal/domain"
	"github.com/sabia-pyme/backend-go/internal/pipeline/costing"
)

var breadTables = map[string]string{
	"productos.csv":          "producto_id,nombre_producto,precio_venta_actual\n1,Pan,10\n2,Torta,2\n",
	"ventas.csv":             "cantidad_vendida\n50\n",
	"insumos.csv":            "insumo_id,costo_unitario\n1,3\n",
	"recetas.csv":            "producto_id,insumo_id,cantidad\n1,1,2\n",
	"tiempos-produccion.csv": "producto_id,tiempo_total_min\n1,15\n",
	"gastos-generales.csv":   "monto_mensual\n100\n",
}

func writeTables(t *testing.T, tables map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range tables {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

type stubFetcher struct {
	files []domain.UploadedFile
	err   error
	seen  []string
}

func (f *stubFetcher) FetchFiles(_ context.Context, location string, match func(string) bool) ([]domain.UploadedFile, error) {
	f.seen = append(f.seen, location)
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.UploadedFile
	for _, file := range f.files {
		if match(file.Filename) {
			out = append(out, file)
		}
	}
	return out, nil
}

func newCostingService(sources map[string]Fetcher) *CostingService {
	return NewCostingService(costing.NewCostingPipeline(costing.DefaultConfig()), sources)
}

func TestCostingService_AnalyzeRemoteDir(t *testing.T) {
	dir := writeTables(t, breadTables)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leeme.txt"), []byte("x"), 0o644))

	svc := newCostingService(map[string]Fetcher{SourceDir: DirFetcher{}})

	result, err := svc.AnalyzeRemote(context.Background(), SourceDir, dir)
	require.NoError(t, err)
	require.Len(t, result.Master, 2)
	assert.Equal(t, 8.0, result.Master[0].TotalRealCost)
	assert.Equal(t, "Torta", result.Alerts[0].ProductName)
}

func TestCostingService_AnalyzeRemoteMissingTable(t *testing.T) {
	tables := map[string]string{}
	for k, v := range breadTables {
		tables[k] = v
	}
	delete(tables, "ventas.csv")
	dir := writeTables(t, tables)

	svc := newCostingService(map[string]Fetcher{SourceDir: DirFetcher{}})

	_, err := svc.AnalyzeRemote(context.Background(), SourceDir, dir)
	var missingErr *costing.MissingTablesError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []string{costing.TableSales}, missingErr.Missing)
}

func TestCostingService_UnknownSource(t *testing.T) {
	svc := newCostingService(map[string]Fetcher{SourceBucket: nil})

	assert.Empty(t, svc.Sources())
	_, err := svc.AnalyzeRemote(context.Background(), SourceBucket, "pyme/")
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestCostingService_FetchErrorIsWrapped(t *testing.T) {
	boom := errors.New("bucket offline")
	svc := newCostingService(map[string]Fetcher{SourceBucket: &stubFetcher{err: boom}})

	_, err := svc.AnalyzeRemote(context.Background(), SourceBucket, "pyme/")
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "bucket")
}

func TestCostingService_FetchFiltersInputs(t *testing.T) {
	stub := &stubFetcher{files: []domain.UploadedFile{
		{Filename: "productos.csv"},
		{Filename: "datos_pyme.csv"},
	}}
	svc := newCostingService(map[string]Fetcher{SourceDrive: stub})

	files, err := svc.FetchInputs(context.Background(), SourceDrive, "folder-id")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "productos.csv", files[0].Filename)
	assert.Equal(t, []string{"folder-id"}, stub.seen)
	assert.Equal(t, []string{SourceDrive}, svc.Sources())
}

func TestCostingService_ExportCSV(t *testing.T) {
	svc := newCostingService(nil)
	files, err := DirFetcher{}.FetchFiles(context.Background(), writeTables(t, breadTables), isCostingInput)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), files, &buf))
	assert.Contains(t, buf.String(), "producto_id,nombre_producto")
	assert.Contains(t, buf.String(), "1,Pan,10,6,15,2,8,2,20\n")
}

func TestToUploadedFiles_SortedByName(t *testing.T) {
	files := toUploadedFiles(map[string][]byte{"b.csv": []byte("bb"), "a.csv": []byte("a")})
	require.Len(t, files, 2)
	assert.Equal(t, "a.csv", files[0].Filename)
	assert.Equal(t, int64(2), files[1].Size)
}
