package storage

import (
	"context"
	"fmt"
	"path"
)

// ObjectInfo represents metadata for a remote file/object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// Name returns the base name of the object key.
func (o ObjectInfo) Name() string {
	return path.Base(o.Key)
}

// ObjectStorage captures the minimal S3-compatible operations the input
// sources need.
type ObjectStorage interface {
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	GetObject(ctx context.Context, key string) ([]byte, error)
}

// FetchMatching downloads every object under prefix whose base name is
// accepted by match. Objects are returned in listing order.
func FetchMatching(ctx context.Context, s ObjectStorage, prefix string, match func(name string) bool) (map[string][]byte, error) {
	objects, err := s.ListObjects(ctx, prefix)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]byte)
	for _, obj := range objects {
		name := obj.Name()
		if !match(name) {
			continue
		}
		if _, dup := out[name]; dup {
			continue
		}
		data, err := s.GetObject(ctx, obj.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", obj.Key, err)
		}
		out[name] = data
	}
	return out, nil
}
