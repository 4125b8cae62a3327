package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/sabia-pyme/backend-go/internal/domain"
	"github.com/sabia-pyme/backend-go/internal/pipeline"
	"github.com/sabia-pyme/backend-go/internal/pipeline/costing"
)

// ErrUnknownSource is returned for a remote source that is not configured.
var ErrUnknownSource = errors.New("unknown or unconfigured source")

type CostingService struct {
	pipeline *costing.CostingPipeline
	sources  map[string]Fetcher
}

// NewCostingService builds the service. sources maps a source name
// (SourceDir, SourceBucket, SourceDrive) to its fetcher; nil entries are
// ignored.
func NewCostingService(p *costing.CostingPipeline, sources map[string]Fetcher) *CostingService {
	s := &CostingService{pipeline: p, sources: make(map[string]Fetcher)}
	for name, f := range sources {
		if f != nil {
			s.sources[name] = f
		}
	}
	return s
}

// Sources lists the configured remote source names.
func (s *CostingService) Sources() []string {
	names := make([]string, 0, len(s.sources))
	for name := range s.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *CostingService) Analyze(ctx context.Context, files []domain.UploadedFile) (*domain.CostingResult, error) {
	return s.pipeline.Run(ctx, files)
}

// AnalyzeRemote fetches the six input tables from a configured source and
// runs the costing pipeline on them.
func (s *CostingService) AnalyzeRemote(ctx context.Context, source, location string) (*domain.CostingResult, error) {
	files, err := s.FetchInputs(ctx, source, location)
	if err != nil {
		return nil, err
	}
	return s.pipeline.Run(ctx, files)
}

// FetchInputs downloads the canonical input files from source.
func (s *CostingService) FetchInputs(ctx context.Context, source, location string) ([]domain.UploadedFile, error) {
	fetcher, ok := s.sources[source]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}

	files, err := fetcher.FetchFiles(ctx, location, isCostingInput)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inputs from %s: %w", source, err)
	}

	log.Info().
		Str("source", source).
		Str("location", location).
		Int("files", len(files)).
		Msg("Fetched costing inputs")
	return files, nil
}

// ExportCSV runs the pipeline and writes the master table as CSV.
func (s *CostingService) ExportCSV(ctx context.Context, files []domain.UploadedFile, w io.Writer) error {
	return pipeline.Export(ctx, s.pipeline, files, w)
}

// WriteMaster writes an already computed master table as CSV.
func (s *CostingService) WriteMaster(w io.Writer, result *domain.CostingResult) error {
	return pipeline.WriteCSV(w, s.pipeline.Headers(), costing.MasterRows(result.Master))
}

func isCostingInput(name string) bool {
	_, ok := costing.LogicalName(name)
	return ok
}
