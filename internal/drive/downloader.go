package drive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
)

// fileAPI is the part of Service the downloader relies on.
type fileAPI interface {
	ListFiles(ctx context.Context, folderID string) ([]*File, error)
	DownloadFile(ctx context.Context, fileID string, w io.Writer) error
	ExportFile(ctx context.Context, fileID, mimeType string, w io.Writer) error
}

var _ fileAPI = (*Service)(nil)

// Downloader wraps Service to pull input files from a specific folder.
type Downloader struct {
	service fileAPI
}

// NewDownloader creates a new Downloader.
func NewDownloader(s *Service) *Downloader {
	return &Downloader{service: s}
}

// FetchFolder downloads into memory every file of folderID whose name is
// accepted by match. Native Google Sheets are exported as CSV and matched
// under their name with a ".csv" suffix. When names repeat the first file
// listed is kept.
func (d *Downloader) FetchFolder(ctx context.Context, folderID string, match func(name string) bool) (map[string][]byte, error) {
	files, err := d.service.ListFiles(ctx, folderID)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]byte)
	for _, f := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		name := f.Name
		native := f.MimeType == MimeTypeSpreadsheet
		if native && !strings.HasSuffix(strings.ToLower(name), ".csv") {
			name += ".csv"
		}
		if !match(name) {
			continue
		}
		if _, dup := out[name]; dup {
			log.Warn().Str("file", name).Str("folder", folderID).Msg("Duplicate Drive file name, keeping first")
			continue
		}

		var buf bytes.Buffer
		if native {
			err = d.service.ExportFile(ctx, f.ID, "text/csv", &buf)
		} else {
			err = d.service.DownloadFile(ctx, f.ID, &buf)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to download %s: %w", f.Name, err)
		}
		out[name] = buf.Bytes()
	}

	log.Debug().Str("folder", folderID).Int("files", len(out)).Msg("Fetched Drive folder")
	return out, nil
}
