package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	auditapp "github.com/retailflow/backend/internal/application/audit"
)

// AuditHandler exposes the tenant's audit trail
type AuditHandler struct {
	BaseHandler
	auditService *auditapp.Service
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService *auditapp.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// RegisterRoutes registers audit routes on the API group
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	audit := rg.Group("/audit/entries")
	{
		audit.GET("", h.List)
		audit.GET("/:entity_type/:entity_id", h.ListForEntity)
	}
}

// List returns the tenant's audit trail, newest first. Supported query
// filters: entity_type, action.
func (h *AuditHandler) List(c *gin.Context) {
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
	if entityType := c.Query("entity_type"); entityType != "" {
		filter.Filters["entity_type"] = entityType
	}
	if action := c.Query("action"); action != "" {
		filter.Filters["action"] = action
	}

	entries, total, err := h.auditService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// ListForEntity returns the audit trail of one aggregate
func (h *AuditHandler) ListForEntity(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	entityType := c.Param("entity_type")
	entityID, err := uuid.Parse(c.Param("entity_id"))
	if err != nil {
		h.BadRequest(c, "Invalid entity ID format")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, err := h.auditService.ListForEntity(c.Request.Context(), tenantID, entityType, entityID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}
