package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/partner"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockClientRepository creates a GormClientRepository over a mocked SQL
// connection, for asserting the exact queries the repository issues.
func newMockClientRepository(t *testing.T) (*GormClientRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormClientRepository(gormDB), mock, mockDB
}

func TestGormClientRepository_FindByIDForTenant_Query(t *testing.T) {
	t.Run("scopes lookup to the tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()
		tenantID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "full_name", "phone", "email", "address"}).
			AddRow(clientID, tenantID, "Awa Diallo", "+221770000001", "awa@example.com", "")

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, clientID, 1).
			WillReturnRows(rows)

		client, err := repo.FindByIDForTenant(context.Background(), tenantID, clientID)

		assert.NoError(t, err)
		require.NotNil(t, client)
		assert.Equal(t, tenantID, client.TenantID)
		assert.Equal(t, "Awa Diallo", client.FullName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing rows to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, clientID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		client, err := repo.FindByIDForTenant(context.Background(), tenantID, clientID)

		assert.Nil(t, client)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	// Same partial index the schema migration creates; AutoMigrate cannot
	// express it.
	require.NoError(t, db.Exec(
		`CREATE UNIQUE INDEX idx_clients_email ON clients (tenant_id, email) WHERE email <> ''`,
	).Error)
	repo := NewGormClientRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	newClient := func(name, phone, email string) *partner.Client {
		client, err := partner.NewClient(tenantID, name, phone)
		require.NoError(t, err)
		client.SetEmail(email)
		return client
	}

	require.NoError(t, repo.Save(ctx, newClient("Awa Diallo", "+221770000001", "awa@example.com")))

	t.Run("rejects a duplicate email within the tenant", func(t *testing.T) {
		err := repo.Save(ctx, newClient("Moussa Ndiaye", "+221770000002", "awa@example.com"))
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("clients without an email are exempt", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, newClient("Fatou Sarr", "+221770000003", "")))
		require.NoError(t, repo.Save(ctx, newClient("Omar Ba", "+221770000004", "")))
	})
}

func TestGormClientRepository_ExistsByPhone_Query(t *testing.T) {
	t.Run("counts within the tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "clients" WHERE tenant_id = \$1 AND phone = \$2`).
			WithArgs(tenantID, "+221770000001").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByPhone(context.Background(), tenantID, "+221770000001")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty phone short-circuits without a query", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		exists, err := repo.ExistsByPhone(context.Background(), uuid.New(), "")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
