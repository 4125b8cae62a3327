package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sabia-pyme/backend-go/internal/config"
	"github.com/sabia-pyme/backend-go/internal/domain"
	"github.com/sabia-pyme/backend-go/internal/drive"
	"github.com/sabia-pyme/backend-go/internal/storage"
)

// Source names accepted by AnalyzeRemote.
const (
	SourceDir    = "dir"
	SourceBucket = "bucket"
	SourceDrive  = "drive"
)

// Fetcher pulls input files from a location. match receives base file
// names and decides which files are fetched.
type Fetcher interface {
	FetchFiles(ctx context.Context, location string, match func(name string) bool) ([]domain.UploadedFile, error)
}

// DirFetcher reads files from a local directory.
type DirFetcher struct{}

func (DirFetcher) FetchFiles(ctx context.Context, location string, match func(name string) bool) ([]domain.UploadedFile, error) {
	entries, err := os.ReadDir(location)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", location, err)
	}

	files := make([]domain.UploadedFile, 0)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !match(e.Name()) {
			continue
		}
		path := filepath.Join(location, e.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		files = append(files, domain.UploadedFile{
			Filename: e.Name(),
			Size:     int64(len(content)),
			Content:  content,
		})
	}
	return files, nil
}

// BucketFetcher reads files under a key prefix of an object storage bucket.
type BucketFetcher struct {
	Storage storage.ObjectStorage
}

func (f BucketFetcher) FetchFiles(ctx context.Context, location string, match func(name string) bool) ([]domain.UploadedFile, error) {
	objects, err := storage.FetchMatching(ctx, f.Storage, location, match)
	if err != nil {
		return nil, err
	}
	return toUploadedFiles(objects), nil
}

// DriveFetcher reads files from a Google Drive folder id. An empty
// location falls back to DefaultFolderID.
type DriveFetcher struct {
	Downloader      *drive.Downloader
	DefaultFolderID string
}

func (f DriveFetcher) FetchFiles(ctx context.Context, location string, match func(name string) bool) ([]domain.UploadedFile, error) {
	if location == "" {
		location = f.DefaultFolderID
	}
	objects, err := f.Downloader.FetchFolder(ctx, location, match)
	if err != nil {
		return nil, err
	}
	return toUploadedFiles(objects), nil
}

// RemoteFetchers builds the bucket and Drive fetchers enabled in cfg.
func RemoteFetchers(ctx context.Context, cfg *config.Config) (map[string]Fetcher, error) {
	fetchers := make(map[string]Fetcher)

	if cfg.Storage.Enabled() {
		client, err := storage.NewMinioClient(storage.MinioConfig{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		fetchers[SourceBucket] = BucketFetcher{Storage: client}
	}

	if cfg.Drive.Enabled() {
		svc, err := drive.NewService(ctx, cfg.Drive.CredentialsJSON)
		if err != nil {
			return nil, err
		}
		fetchers[SourceDrive] = DriveFetcher{
			Downloader:      drive.NewDownloader(svc),
			DefaultFolderID: cfg.Drive.FolderID,
		}
	}

	return fetchers, nil
}

func toUploadedFiles(objects map[string][]byte) []domain.UploadedFile {
	names := make([]string, 0, len(objects))
	for name := range objects {
		names = append(names, name)
	}
	sort.Strings(names)

	files := make([]domain.UploadedFile, 0, len(names))
	for _, name := range names {
		files = append(files, domain.UploadedFile{
			Filename: name,
			Size:     int64(len(objects[name])),
			Content:  objects[name],
		})
	}
	return files
}
