package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/retailflow/backend/internal/domain/trade"
	"github.com/retailflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormQuoteRepository implements trade.QuoteRepository using GORM
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GormQuoteRepository
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

func (r *GormQuoteRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// FindByIDForTenant finds a quote by ID within a tenant
func (r *GormQuoteRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Quote, error) {
	var model models.QuoteModel
	if err := r.conn(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists quotes for a tenant with filtering
func (r *GormQuoteRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*trade.Quote, error) {
	var quoteModels []models.QuoteModel
	query := r.conn(ctx).Model(&models.QuoteModel{}).
		Preload("Items").
		Where("tenant_id = ?", tenantID)
	query = r.applySearchAndFilters(query, filter)
	query = applyOrdering(query, filter, ReferenceSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&quoteModels).Error; err != nil {
		return nil, err
	}

	quotes := make([]*trade.Quote, len(quoteModels))
	for i := range quoteModels {
		quotes[i] = quoteModels[i].ToDomain()
	}
	return quotes, nil
}

// CountForTenant counts quotes for a tenant
func (r *GormQuoteRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.conn(ctx).Model(&models.QuoteModel{}).Where("tenant_id = ?", tenantID)
	query = r.applySearchAndFilters(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForMonth counts the tenant's quotes created in the given calendar month
func (r *GormQuoteRepository) CountForMonth(ctx context.Context, tenantID uuid.UUID, month time.Time) (int64, error) {
	start, end := monthRange(month)
	var count int64
	if err := r.conn(ctx).
		Model(&models.QuoteModel{}).
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, start, end).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a quote with its items
func (r *GormQuoteRepository) Save(ctx context.Context, quote *trade.Quote) error {
	model := models.QuoteModelFromDomain(quote)
	return translateDBError(r.conn(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(model).Error)
}

func (r *GormQuoteRepository) applySearchAndFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("reference ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		}
	}
	return query
}

// Ensure GormQuoteRepository implements QuoteRepository
var _ trade.QuoteRepository = (*GormQuoteRepository)(nil)
