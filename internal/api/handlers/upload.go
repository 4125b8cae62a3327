package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sabia-pyme/backend-go/internal/domain"
)

// readUploads loads multipart files into memory. Nothing is written to disk.
func readUploads(headers []*multipart.FileHeader) ([]domain.UploadedFile, error) {
	files := make([]domain.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
		}
		files = append(files, domain.UploadedFile{
			Filename: fh.Filename,
			Size:     fh.Size,
			Content:  content,
		})
	}
	return files, nil
}

// limitBody caps the request body before the multipart form is parsed.
func limitBody(c *gin.Context, maxBytes int64) {
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	}
}

func errorResponse(c *gin.Context, statusCode int, err error) {
	event := log.Warn()
	if statusCode >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("path", c.Request.URL.Path).Int("status", statusCode).Msg("Request failed")
	c.JSON(statusCode, gin.H{"error": err.Error()})
}
