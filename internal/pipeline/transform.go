package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/cropet-service/internal/domain"
)

// TableTransformer parses raw file content into a stamped crop table.
type TableTransformer struct {
	logger *slog.Logger
}

// NewTransformer creates a TableTransformer.
func NewTransformer(logger *slog.Logger) *TableTransformer {
	return &TableTransformer{logger: logger}
}

// Transform parses raw and stamps the result with the current time. Parse
// failures keep their *domain.FormatError type through the wrap.
func (t *TableTransformer) Transform(_ context.Context, raw RawTable) (domain.Snapshot, error) {
	table, err := domain.ParseCropParameters(bytes.NewReader(raw.Data))
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("parse %s: %w", raw.Source, err)
	}
	t.logger.Debug("crop table parsed", "source", raw.Source, "crops", table.Len())
	return domain.NewSnapshot(table, raw.Source), nil
}
