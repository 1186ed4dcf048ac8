package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/catalog"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/retailflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// FindByIDForTenant finds a product by ID within a tenant
func (r *GormProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.conn(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByGlobalReference finds a product by its cross-tenant identity key
func (r *GormProductRepository) FindByGlobalReference(ctx context.Context, tenantID uuid.UUID, ref string) (*catalog.Product, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, shared.ErrNotFound
	}
	var model models.ProductModel
	if err := r.conn(ctx).
		Where("tenant_id = ? AND global_reference = ?", tenantID, ref).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByLocalReference finds a product by its tenant-local reference
func (r *GormProductRepository) FindByLocalReference(ctx context.Context, tenantID uuid.UUID, ref string) (*catalog.Product, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, shared.ErrNotFound
	}
	var model models.ProductModel
	if err := r.conn(ctx).
		Where("tenant_id = ? AND local_reference = ?", tenantID, ref).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a product by exact name within a tenant
func (r *GormProductRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*catalog.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.ErrNotFound
	}
	var model models.ProductModel
	if err := r.conn(ctx).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists products for a tenant with filtering
func (r *GormProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	query := r.conn(ctx).Model(&models.ProductModel{}).Where("tenant_id = ?", tenantID)
	query = r.applySearchAndFilters(query, filter)
	query = applyOrdering(query, filter, ProductSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return products, nil
}

// CountForTenant counts products for a tenant
func (r *GormProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.conn(ctx).Model(&models.ProductModel{}).Where("tenant_id = ?", tenantID)
	query = r.applySearchAndFilters(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return translateDBError(r.conn(ctx).Save(model).Error)
}

// SaveWithLock updates a product guarded by the version it was loaded with.
// A concurrent writer that committed first changes the version, the guard
// then matches no row and the caller's transaction rolls back.
func (r *GormProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	model.Version = product.Version + 1

	result := r.conn(ctx).
		Model(&models.ProductModel{}).
		Where("id = ? AND version = ?", product.ID, product.Version).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrVersionConflict
	}
	return nil
}

func (r *GormProductRepository) applySearchAndFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR local_reference ILIKE ? OR global_reference ILIKE ?",
			pattern, pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "category_id":
			query = query.Where("category_id = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "low_stock":
			if value == true {
				query = query.Where("alert_threshold > 0 AND stock_quantity <= alert_threshold")
			}
		}
	}
	return query
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
