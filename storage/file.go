package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"career-guide/errors"
)

// FileAdapter keeps one <collection>.json file per collection in a directory.
// A crash mid-write can leave a truncated file, which later reads as empty.
type FileAdapter struct {
	dir string
}

// NewFileAdapter creates dir if needed.
func NewFileAdapter(dir string) (*FileAdapter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating data directory: %w", err)
	}
	return &FileAdapter{dir: dir}, nil
}

func (f *FileAdapter) path(collection string) string {
	return filepath.Join(f.dir, collection+".json")
}

func (f *FileAdapter) Load(_ context.Context, collection string) ([]byte, error) {
	if err := checkName(collection); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.E(errors.NotFound, collection+" not found", err)
		}
		return nil, errors.E(errors.Internal, "read "+collection, err)
	}
	return data, nil
}

func (f *FileAdapter) Save(_ context.Context, collection string, data []byte) error {
	if err := checkName(collection); err != nil {
		return err
	}
	if err := os.WriteFile(f.path(collection), data, 0o644); err != nil {
		return errors.E(errors.Internal, "write "+collection, err)
	}
	return nil
}
