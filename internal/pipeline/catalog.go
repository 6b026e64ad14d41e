package pipeline

import (
	"context"
	"sync/atomic"

	"github.com/couchcryptid/cropet-service/internal/domain"
)

// Catalog is the in-memory crop table served to readers. Loads replace the
// whole table in one atomic swap.
type Catalog struct {
	current atomic.Pointer[domain.Snapshot]
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// LoadTable publishes snap as the current table.
func (c *Catalog) LoadTable(_ context.Context, snap domain.Snapshot) error {
	c.current.Store(&snap)
	return nil
}

// Snapshot returns the current table, or false before the first load.
func (c *Catalog) Snapshot() (domain.Snapshot, bool) {
	s := c.current.Load()
	if s == nil {
		return domain.Snapshot{}, false
	}
	return *s, true
}

// Crop looks up one crop in the current table.
func (c *Catalog) Crop(id int) (domain.CropParameters, bool) {
	s := c.current.Load()
	if s == nil {
		return domain.CropParameters{}, false
	}
	return s.Table.Get(id)
}
