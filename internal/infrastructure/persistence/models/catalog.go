package models

import (
	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product aggregate.
type ProductModel struct {
	TenantAggregateModel
	Name             string                `gorm:"type:varchar(200);not null;index:idx_product_tenant_name,priority:2"`
	LocalReference   string                `gorm:"type:varchar(100);index:idx_product_tenant_local,priority:2"`
	GlobalReference  string                `gorm:"type:varchar(100);index:idx_product_tenant_global,priority:2"`
	PurchasePrice    decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	SalePrice        decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	StockQuantity    decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	LifetimeQuantity decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	AlertThreshold   decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	CategoryID       *uuid.UUID            `gorm:"type:uuid;index"`
	SupplierID       *uuid.UUID            `gorm:"type:uuid;index"`
	Status           catalog.ProductStatus `gorm:"type:varchar(20);not null;default:'in_stock'"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product aggregate.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		LocalReference:      m.LocalReference,
		GlobalReference:     m.GlobalReference,
		PurchasePrice:       m.PurchasePrice,
		SalePrice:           m.SalePrice,
		StockQuantity:       m.StockQuantity,
		LifetimeQuantity:    m.LifetimeQuantity,
		AlertThreshold:      m.AlertThreshold,
		CategoryID:          m.CategoryID,
		SupplierID:          m.SupplierID,
		Status:              m.Status,
	}
}

// FromDomain populates the persistence model from a domain Product aggregate.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Name = p.Name
	m.LocalReference = p.LocalReference
	m.GlobalReference = p.GlobalReference
	m.PurchasePrice = p.PurchasePrice
	m.SalePrice = p.SalePrice
	m.StockQuantity = p.StockQuantity
	m.LifetimeQuantity = p.LifetimeQuantity
	m.AlertThreshold = p.AlertThreshold
	m.CategoryID = p.CategoryID
	m.SupplierID = p.SupplierID
	m.Status = p.Status
}

// ProductModelFromDomain creates a new persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
