package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByIDForTenant finds a product by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)

	// FindByGlobalReference finds a product by its cross-tenant identity key
	FindByGlobalReference(ctx context.Context, tenantID uuid.UUID, ref string) (*Product, error)

	// FindByLocalReference finds a product by its tenant-local reference
	FindByLocalReference(ctx context.Context, tenantID uuid.UUID, ref string) (*Product, error)

	// FindByName finds a product by exact name within a tenant
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*Product, error)

	// FindAllForTenant lists products for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, error)

	// CountForTenant counts products for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock updates a product guarded by its loaded version,
	// failing when a concurrent writer changed the row. Stock movements
	// must use this instead of Save.
	SaveWithLock(ctx context.Context, product *Product) error
}
