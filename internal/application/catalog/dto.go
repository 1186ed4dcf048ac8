package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the request to create a product
type CreateProductRequest struct {
	Name            string          `json:"name" binding:"required"`
	LocalReference  string          `json:"local_reference"`
	GlobalReference string          `json:"global_reference"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	SalePrice       decimal.Decimal `json:"sale_price"`
	InitialStock    decimal.Decimal `json:"initial_stock"`
	AlertThreshold  decimal.Decimal `json:"alert_threshold"`
	CategoryID      *uuid.UUID      `json:"category_id"`
	SupplierID      *uuid.UUID      `json:"supplier_id"`
}

// UpdateProductRequest is the request to update product attributes
type UpdateProductRequest struct {
	Name            *string          `json:"name"`
	LocalReference  *string          `json:"local_reference"`
	GlobalReference *string          `json:"global_reference"`
	SalePrice       *decimal.Decimal `json:"sale_price"`
	AlertThreshold  *decimal.Decimal `json:"alert_threshold"`
}

// ProductResponse is the product representation returned to callers
type ProductResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	LocalReference   string          `json:"local_reference,omitempty"`
	GlobalReference  string          `json:"global_reference,omitempty"`
	PurchasePrice    decimal.Decimal `json:"purchase_price"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	StockQuantity    decimal.Decimal `json:"stock_quantity"`
	LifetimeQuantity decimal.Decimal `json:"lifetime_quantity"`
	AlertThreshold   decimal.Decimal `json:"alert_threshold"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToProductResponse maps a product aggregate to its response
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		LocalReference:   p.LocalReference,
		GlobalReference:  p.GlobalReference,
		PurchasePrice:    p.PurchasePrice,
		SalePrice:        p.SalePrice,
		StockQuantity:    p.StockQuantity,
		LifetimeQuantity: p.LifetimeQuantity,
		AlertThreshold:   p.AlertThreshold,
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ToProductResponses maps a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
