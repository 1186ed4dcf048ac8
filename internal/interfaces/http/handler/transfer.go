package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/retailflow/backend/internal/application/trade"
)

// TransferHandler handles cross-tenant stock transfer endpoints
type TransferHandler struct {
	BaseHandler
	transferService *tradeapp.TransferService
}

// NewTransferHandler creates a new TransferHandler
func NewTransferHandler(transferService *tradeapp.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// CancelTransferRequest carries the optional cancellation reason
type CancelTransferRequest struct {
	Reason string `json:"reason"`
}

// RegisterRoutes registers transfer routes on the API group
func (h *TransferHandler) RegisterRoutes(rg *gin.RouterGroup) {
	transfers := rg.Group("/trade/transfers")
	{
		transfers.POST("", h.Create)
		transfers.GET("", h.List)
		transfers.GET("/:id", h.GetByID)
		transfers.POST("/:id/validate", h.Validate)
		transfers.POST("/:id/cancel", h.Cancel)
	}
}

// Create dispatches stock to another business. Source stock is deducted
// immediately and the confirmed destination order is generated in the same
// transaction.
func (h *TransferHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req tradeapp.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	transfer, err := h.transferService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, transfer)
}

// GetByID returns one transfer, visible from either side
func (h *TransferHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	transferID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID format")
		return
	}

	transfer, err := h.transferService.GetByID(c.Request.Context(), tenantID, transferID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, transfer)
}

// List returns transfers where the tenant is source or destination.
// Supported query filters: status, source_tenant_id, destination_tenant_id.
func (h *TransferHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if sourceID := c.Query("source_tenant_id"); sourceID != "" {
		filter.Filters["source_tenant_id"] = sourceID
	}
	if destID := c.Query("destination_tenant_id"); destID != "" {
		filter.Filters["destination_tenant_id"] = destID
	}

	transfers, total, err := h.transferService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, transfers, total, filter.Page, filter.PageSize)
}

// Validate marks a pending transfer as validated by the source tenant
func (h *TransferHandler) Validate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	transferID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID format")
		return
	}

	transfer, err := h.transferService.Validate(c.Request.Context(), tenantID, transferID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, transfer)
}

// Cancel cancels a transfer before reception, restoring source stock and
// cancelling the destination order
func (h *TransferHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	transferID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID format")
		return
	}

	// the body is optional; an absent body means no reason was given
	var req CancelTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BadRequest(c, err.Error())
		return
	}

	transfer, err := h.transferService.Cancel(c.Request.Context(), tenantID, transferID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, transfer)
}
