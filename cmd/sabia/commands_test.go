package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/sabia-pyme/backend-go/internal/pipeline/costing"
	"github.com/sabia-pyme/backend-go/internal/service"
)

func TestResolveSource(t *testing.T) {
	source, location, err := resolveSource("./datos", "", "", false)
	require.NoError(t, err)
	assert.Equal(t, service.SourceDir, source)
	assert.Equal(t, "./datos", location)

	source, location, err = resolveSource("", "pyme/2026-03/", "", false)
	require.NoError(t, err)
	assert.Equal(t, service.SourceBucket, source)
	assert.Equal(t, "pyme/2026-03/", location)

	source, location, err = resolveSource("", "", "", true)
	require.NoError(t, err)
	assert.Equal(t, service.SourceDrive, source)
	assert.Equal(t, "", location)

	_, _, err = resolveSource("", "", "", false)
	assert.Error(t, err)

	_, _, err = resolveSource("./datos", "pyme/", "", false)
	assert.ErrorContains(t, err, "only one input source")
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, checkFormat("json"))
	assert.NoError(t, checkFormat("csv"))
	assert.Error(t, checkFormat("xml"))
}

func TestDescribeCostingError(t *testing.T) {
	err := describeCostingError(&costing.MissingTablesError{Missing: []string{"recetas", "tiempos"}})

	var missingErr *costing.MissingTablesError
	require.ErrorAs(t, err, &missingErr)
	assert.Contains(t, err.Error(), "recetas.csv, tiempos-produccion.csv")
}

func TestWriteOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "tabla_maestra.csv")

	err := writeOutput(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "producto_id\n1\n")
		return err
	})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "producto_id\n1\n", string(content))
}

func TestWriteOutput_FailedRenderLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabla_maestra.csv")
	renderErr := errors.New("render failed")

	err := writeOutput(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "producto_id\n")
		return renderErr
	})
	assert.ErrorIs(t, err, renderErr)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunInventory_BadReportLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "datos_pyme.csv")
	require.NoError(t, os.WriteFile(input, []byte("Producto,Costo_Unitario\nPan,1\n"), 0o644))
	output := filepath.Join(dir, "reporte.csv")

	app := &cli.App{
		Writer: io.Discard,
		Commands: []*cli.Command{{
			Name:   "inventory",
			Flags:  []cli.Flag{&cli.StringFlag{Name: "file"}, newFormatFlag(), newOutputFlag()},
			Action: runInventory,
		}},
	}

	err := app.Run([]string{"sabia", "inventory", "--file", input, "--format", "csv", "--output", output})
	assert.ErrorContains(t, err, "Precio_Venta")

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}
