package persistence

import (
	"testing"

	"github.com/retailflow/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database and migrates every
// persistence model. TranslateError matches the production gorm config so
// constraint violations map to the same sentinel errors.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.ProductModel{},
		&models.ClientModel{},
		&models.ClientAccountModel{},
		&models.AccountTransactionModel{},
		&models.SaleModel{},
		&models.SaleItemModel{},
		&models.PaymentModel{},
		&models.PurchaseOrderModel{},
		&models.OrderItemModel{},
		&models.ReceptionModel{},
		&models.StockTransferModel{},
		&models.TransferItemModel{},
		&models.QuoteModel{},
		&models.QuoteItemModel{},
		&models.PurchaseHistoryModel{},
		&models.AuditEntryModel{},
	)
	require.NoError(t, err)

	return db
}
