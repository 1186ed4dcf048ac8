package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/catalog"
	"github.com/retailflow/backend/internal/domain/shared"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(tenantID, req.Name, req.PurchasePrice, req.SalePrice, req.InitialStock)
	if err != nil {
		return nil, err
	}

	if req.LocalReference != "" || req.GlobalReference != "" {
		product.SetReferences(req.LocalReference, req.GlobalReference)
	}
	if !req.AlertThreshold.IsZero() {
		if err := product.SetAlertThreshold(req.AlertThreshold); err != nil {
			return nil, err
		}
	}
	product.CategoryID = req.CategoryID
	product.SupplierID = req.SupplierID

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProductResponse, int64, error) {
	products, err := s.productRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Update updates product attributes
func (s *ProductService) Update(ctx context.Context, tenantID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.LocalReference != nil || req.GlobalReference != nil {
		local := product.LocalReference
		global := product.GlobalReference
		if req.LocalReference != nil {
			local = *req.LocalReference
		}
		if req.GlobalReference != nil {
			global = *req.GlobalReference
		}
		product.SetReferences(local, global)
	}
	if req.SalePrice != nil {
		if req.SalePrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Sale price cannot be negative")
		}
		product.SalePrice = *req.SalePrice
	}
	if req.AlertThreshold != nil {
		if err := product.SetAlertThreshold(*req.AlertThreshold); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}
