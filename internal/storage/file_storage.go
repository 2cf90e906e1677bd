package storage

import (
	"context"
	"fmt"
	"os"
)

// FileImageLoader reads chart images from the local filesystem
type FileImageLoader struct{}

// NewFileImageLoader creates a filesystem loader
func NewFileImageLoader() ImageLoader {
	return &FileImageLoader{}
}

func (f *FileImageLoader) Load(ctx context.Context, path string) (*Chart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	return decodeChart(path, file)
}
