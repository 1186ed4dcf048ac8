package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/retailflow/backend/internal/infrastructure/persistence"
	"github.com/retailflow/backend/internal/interfaces/http/dto"
)

// SystemHandler handles health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	redis   *redis.Client
	appName string
	env     string
}

// NewSystemHandler creates a new SystemHandler. The redis client may be nil
// when alerting is disabled.
func NewSystemHandler(db *persistence.Database, redisClient *redis.Client, appName, env string) *SystemHandler {
	return &SystemHandler{
		db:      db,
		redis:   redisClient,
		appName: appName,
		env:     env,
	}
}

// RegisterRoutes registers system routes on the API group
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// HealthStatus reports the health of the service and its dependencies
type HealthStatus struct {
	Status   string                 `json:"status"`
	App      string                 `json:"app"`
	Env      string                 `json:"env"`
	Time     time.Time              `json:"time"`
	Services map[string]string      `json:"services"`
	Pool     *persistence.PoolStats `json:"pool,omitempty"`
}

// Health reports liveness of the service and its backing stores
func (h *SystemHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	status := HealthStatus{
		Status:   "ok",
		App:      h.appName,
		Env:      h.env,
		Time:     time.Now(),
		Services: map[string]string{},
	}

	if err := h.db.Ping(ctx); err != nil {
		status.Status = "degraded"
		status.Services["database"] = "down"
	} else {
		status.Services["database"] = "up"
		pool := h.db.PoolStats()
		status.Pool = &pool
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			status.Status = "degraded"
			status.Services["redis"] = "down"
		} else {
			status.Services["redis"] = "up"
		}
	}

	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, dto.NewSuccessResponse(status))
}
