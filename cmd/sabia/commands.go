package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/sabia-pyme/backend-go/internal/config"
	"github.com/sabia-pyme/backend-go/internal/domain"
	"github.com/sabia-pyme/backend-go/internal/pipeline/costing"
	"github.com/sabia-pyme/backend-go/internal/pipeline/inventory"
	"github.com/sabia-pyme/backend-go/internal/pipeline/sample"
	"github.com/sabia-pyme/backend-go/internal/service"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"
)

// resolveSource picks the single input source selected by flags.
func resolveSource(dir, bucketPrefix, driveFolder string, driveFlagSet bool) (string, string, error) {
	var selected []string
	if dir != "" {
		selected = append(selected, service.SourceDir)
	}
	if bucketPrefix != "" {
		selected = append(selected, service.SourceBucket)
	}
	if driveFlagSet {
		selected = append(selected, service.SourceDrive)
	}

	switch len(selected) {
	case 0:
		return "", "", errors.New("one of --dir, --bucket-prefix or --drive-folder is required")
	case 1:
	default:
		return "", "", fmt.Errorf("only one input source may be given, got %s", strings.Join(selected, ", "))
	}

	switch selected[0] {
	case service.SourceDir:
		return service.SourceDir, dir, nil
	case service.SourceBucket:
		return service.SourceBucket, bucketPrefix, nil
	default:
		return service.SourceDrive, driveFolder, nil
	}
}

func checkFormat(format string) error {
	if format != formatJSON && format != formatCSV {
		return fmt.Errorf("unsupported format %q (expected json or csv)", format)
	}
	return nil
}

// openOutput returns stdout when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return os.Create(path)
}

// writeOutput renders into memory first so a failed render never leaves a
// partial file behind.
func writeOutput(path string, render func(io.Writer) error) (err error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}

	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}()

	_, err = buf.WriteTo(out)
	return err
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runAnalyze(c *cli.Context) error {
	source, location, err := resolveSource(c.String("dir"), c.String("bucket-prefix"), c.String("drive-folder"), c.IsSet("drive-folder"))
	if err != nil {
		return err
	}
	format := c.String("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	cfg := config.Load()
	ctx := c.Context

	fetchers := map[string]service.Fetcher{service.SourceDir: service.DirFetcher{}}
	if source != service.SourceDir {
		remote, err := service.RemoteFetchers(ctx, cfg)
		if err != nil {
			return err
		}
		for name, f := range remote {
			fetchers[name] = f
		}
	}

	svc := service.NewCostingService(
		costing.NewCostingPipeline(costing.Config{AlertThresholdPct: cfg.Analysis.ProfitabilityAlertPct}),
		fetchers,
	)

	files, err := svc.FetchInputs(ctx, source, location)
	if err != nil {
		return err
	}

	result, err := svc.Analyze(ctx, files)
	if err != nil {
		return describeCostingError(err)
	}

	return writeOutput(c.String("output"), func(w io.Writer) error {
		if format == formatCSV {
			return svc.WriteMaster(w, result)
		}
		return writeJSON(w, result)
	})
}

// describeCostingError adds a hint about the expected filenames.
func describeCostingError(err error) error {
	var missingErr *costing.MissingTablesError
	if !errors.As(err, &missingErr) {
		return err
	}
	expected := make([]string, 0, len(missingErr.Missing))
	for _, name := range missingErr.Missing {
		expected = append(expected, costing.CanonicalFilename(name))
	}
	return fmt.Errorf("%w (expected files: %s)", err, strings.Join(expected, ", "))
}

func runInventory(c *cli.Context) error {
	format := c.String("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	path := c.String("file")
	if !inventory.IsSupported(path) {
		return fmt.Errorf("unsupported file %s (expected .csv or .xlsx)", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	file := domain.UploadedFile{Filename: filepath.Base(path), Size: int64(len(content)), Content: content}

	cfg := config.Load()
	svc := service.NewInventoryService(inventory.NewInventoryPipeline(inventory.Thresholds{
		LowMarginRatio:    cfg.Analysis.LowMarginRatio,
		TargetMarginRatio: cfg.Analysis.TargetMarginRatio,
	}))

	return writeOutput(c.String("output"), func(w io.Writer) error {
		if format == formatCSV {
			return svc.ExportCSV(c.Context, file, w)
		}
		report, err := svc.Analyze(c.Context, file)
		if err != nil {
			return err
		}
		return writeJSON(w, report)
	})
}

func runSample(c *cli.Context) error {
	dir := c.String("output-dir")
	if dir == "" {
		dir = config.Load().App.DataDir
	}

	path, err := sample.WriteFile(dir)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, path)
	return nil
}
