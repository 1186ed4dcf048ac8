package alert

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/retailflow/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LowStockAlert is the payload published on the alert channel
type LowStockAlert struct {
	TenantID       uuid.UUID       `json:"tenant_id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	StockQuantity  decimal.Decimal `json:"stock_quantity"`
	AlertThreshold decimal.Decimal `json:"alert_threshold"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// RedisNotifier publishes low-stock alerts on a Redis pub/sub channel.
// Publishing happens after the business transaction committed; a publish
// failure is logged and swallowed so it can never undo a sale.
type RedisNotifier struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisNotifier creates a new RedisNotifier
func NewRedisNotifier(client *redis.Client, channel string, logger *zap.Logger) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel, logger: logger}
}

// NotifyLowStock publishes a low-stock alert for the product
func (n *RedisNotifier) NotifyLowStock(ctx context.Context, product *catalog.Product) {
	alert := LowStockAlert{
		TenantID:       product.TenantID,
		ProductID:      product.ID,
		ProductName:    product.Name,
		StockQuantity:  product.StockQuantity,
		AlertThreshold: product.AlertThreshold,
		OccurredAt:     time.Now(),
	}

	payload, err := json.Marshal(alert)
	if err != nil {
		n.logger.Warn("failed to marshal low-stock alert", zap.Error(err))
		return
	}

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		n.logger.Warn("failed to publish low-stock alert",
			zap.String("product_id", product.ID.String()),
			zap.String("channel", n.channel),
			zap.Error(err),
		)
	}
}

// NopNotifier discards alerts. Used when alert publishing is disabled.
type NopNotifier struct{}

// NewNopNotifier creates a notifier that does nothing
func NewNopNotifier() *NopNotifier {
	return &NopNotifier{}
}

// NotifyLowStock does nothing
func (n *NopNotifier) NotifyLowStock(context.Context, *catalog.Product) {}
