package service

import (
	"context"
	"io"

	"github.com/sabia-pyme/backend-go/internal/domain"
	"github.com/sabia-pyme/backend-go/internal/pipeline"
	"github.com/sabia-pyme/backend-go/internal/pipeline/inventory"
	"github.com/sabia-pyme/backend-go/internal/pipeline/sample"
)

type InventoryService struct {
	pipeline *inventory.InventoryPipeline
}

func NewInventoryService(p *inventory.InventoryPipeline) *InventoryService {
	return &InventoryService{pipeline: p}
}

func (s *InventoryService) Analyze(ctx context.Context, file domain.UploadedFile) (*domain.InventoryReport, error) {
	return s.pipeline.Analyze(ctx, file)
}

// ExportCSV writes the report rows with their margin as CSV.
func (s *InventoryService) ExportCSV(ctx context.Context, file domain.UploadedFile, w io.Writer) error {
	return pipeline.Export(ctx, s.pipeline, []domain.UploadedFile{file}, w)
}

// Sample returns the demonstration report as CSV.
func (s *InventoryService) Sample() ([]byte, error) {
	return sample.Bytes()
}
