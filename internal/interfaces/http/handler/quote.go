package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/retailflow/backend/internal/application/trade"
)

// QuoteHandler handles quote endpoints
type QuoteHandler struct {
	BaseHandler
	quoteService *tradeapp.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService *tradeapp.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// UpdateQuoteStatusRequest overrides the quote status
type UpdateQuoteStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// RegisterRoutes registers quote routes on the API group
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/trade/quotes")
	{
		quotes.POST("", h.Create)
		quotes.GET("", h.List)
		quotes.GET("/:id", h.GetByID)
		quotes.POST("/:id/convert", h.Convert)
		quotes.PATCH("/:id/status", h.UpdateStatus)
	}
}

// Create creates a quote; no stock moves until conversion
func (h *QuoteHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req tradeapp.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quote, err := h.quoteService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, quote)
}

// GetByID returns one quote
func (h *QuoteHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quote ID format")
		return
	}

	quote, err := h.quoteService.GetByID(c.Request.Context(), tenantID, quoteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quote)
}

// List returns a paginated quote list. Supported query filters:
// search, status, client_id.
func (h *QuoteHandler) List(c *gin.Context) {
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
	if clientID := c.Query("client_id"); clientID != "" {
		filter.Filters["client_id"] = clientID
	}

	quotes, total, err := h.quoteService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, quotes, total, filter.Page, filter.PageSize)
}

// Convert turns an accepted quote into a sale at the quoted prices,
// checking stock at conversion time
func (h *QuoteHandler) Convert(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quote ID format")
		return
	}

	// the body is optional; an absent body means no payments were declared
	var req tradeapp.ConvertQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.quoteService.Convert(c.Request.Context(), tenantID, quoteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sale)
}

// UpdateStatus moves a quote through its lifecycle (sent, accepted,
// rejected, expired)
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quote ID format")
		return
	}

	var req UpdateQuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quote, err := h.quoteService.UpdateStatus(c.Request.Context(), tenantID, quoteID, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quote)
}
