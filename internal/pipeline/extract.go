package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/couchcryptid/cropet-service/internal/domain"
)

// RawTable is the unparsed content of a crop parameter file.
type RawTable struct {
	Source string
	Data   []byte
}

// FileExtractor reads the crop parameter file from local disk.
type FileExtractor struct {
	path string
}

// NewFileExtractor creates an extractor for the file at path.
func NewFileExtractor(path string) *FileExtractor {
	return &FileExtractor{path: path}
}

// Extract reads the whole file. A file that cannot be read is reported as
// a *domain.NotFoundError.
func (e *FileExtractor) Extract(ctx context.Context) (RawTable, error) {
	if err := ctx.Err(); err != nil {
		return RawTable{}, err
	}
	data, err := os.ReadFile(e.path)
	if err != nil {
		return RawTable{}, &domain.NotFoundError{Path: e.path, Err: err}
	}
	return RawTable{Source: e.path, Data: data}, nil
}

func (e *FileExtractor) String() string {
	return fmt.Sprintf("file:%s", e.path)
}
