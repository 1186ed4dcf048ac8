package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// ClientModel is the persistence model for the Client aggregate.
type ClientModel struct {
	TenantAggregateModel
	FullName string `gorm:"type:varchar(200);not null"`
	Phone    string `gorm:"type:varchar(50);not null;uniqueIndex:idx_client_tenant_phone,priority:2"`
	// Email uniqueness per tenant is enforced by a partial index in the
	// schema migration, skipping rows with an empty email.
	Email   string `gorm:"type:varchar(200)"`
	Address string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client aggregate.
func (m *ClientModel) ToDomain() *partner.Client {
	return &partner.Client{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		FullName:            m.FullName,
		Phone:               m.Phone,
		Email:               m.Email,
		Address:             m.Address,
	}
}

// FromDomain populates the persistence model from a domain Client aggregate.
func (m *ClientModel) FromDomain(c *partner.Client) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.FullName = c.FullName
	m.Phone = c.Phone
	m.Email = c.Email
	m.Address = c.Address
}

// ClientModelFromDomain creates a new persistence model from a domain Client.
func ClientModelFromDomain(c *partner.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(c)
	return m
}

// ClientAccountModel is the persistence model for the ClientAccount aggregate.
// Balance is only ever mutated through conditional UPDATE expressions, never
// by writing a value computed in application memory.
type ClientAccountModel struct {
	TenantAggregateModel
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_account_tenant_client,priority:2"`
	AccountNumber string          `gorm:"type:varchar(50);not null"`
	Balance       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (ClientAccountModel) TableName() string {
	return "client_accounts"
}

// ToDomain converts the persistence model to a domain ClientAccount aggregate.
func (m *ClientAccountModel) ToDomain() *partner.ClientAccount {
	return &partner.ClientAccount{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		ClientID:            m.ClientID,
		AccountNumber:       m.AccountNumber,
		Balance:             m.Balance,
	}
}

// FromDomain populates the persistence model from a domain ClientAccount aggregate.
func (m *ClientAccountModel) FromDomain(a *partner.ClientAccount) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.ClientID = a.ClientID
	m.AccountNumber = a.AccountNumber
	m.Balance = a.Balance
}

// ClientAccountModelFromDomain creates a new persistence model from a domain ClientAccount.
func ClientAccountModelFromDomain(a *partner.ClientAccount) *ClientAccountModel {
	m := &ClientAccountModel{}
	m.FromDomain(a)
	return m
}

// AccountTransactionModel is the persistence model for the append-only
// account ledger.
type AccountTransactionModel struct {
	BaseModel
	TenantID     uuid.UUID                      `gorm:"type:uuid;not null;index:idx_acc_tx_tenant_client,priority:1"`
	AccountID    uuid.UUID                      `gorm:"type:uuid;not null;index"`
	ClientID     uuid.UUID                      `gorm:"type:uuid;not null;index:idx_acc_tx_tenant_client,priority:2"`
	Type         partner.AccountTransactionType `gorm:"type:varchar(20);not null"`
	Amount       decimal.Decimal                `gorm:"type:decimal(18,2);not null"`
	BalanceAfter decimal.Decimal                `gorm:"type:decimal(18,2);not null"`
	SaleID       *uuid.UUID                     `gorm:"type:uuid;index"`
	Note         string                         `gorm:"type:varchar(500)"`
	OccurredAt   time.Time                      `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AccountTransactionModel) TableName() string {
	return "account_transactions"
}

// ToDomain converts the persistence model to a domain AccountTransaction.
func (m *AccountTransactionModel) ToDomain() *partner.AccountTransaction {
	return &partner.AccountTransaction{
		BaseEntity:   m.BaseModel.ToDomain(),
		TenantID:     m.TenantID,
		AccountID:    m.AccountID,
		ClientID:     m.ClientID,
		Type:         m.Type,
		Amount:       m.Amount,
		BalanceAfter: m.BalanceAfter,
		SaleID:       m.SaleID,
		Note:         m.Note,
		OccurredAt:   m.OccurredAt,
	}
}

// FromDomain populates the persistence model from a domain AccountTransaction.
func (m *AccountTransactionModel) FromDomain(t *partner.AccountTransaction) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.TenantID = t.TenantID
	m.AccountID = t.AccountID
	m.ClientID = t.ClientID
	m.Type = t.Type
	m.Amount = t.Amount
	m.BalanceAfter = t.BalanceAfter
	m.SaleID = t.SaleID
	m.Note = t.Note
	m.OccurredAt = t.OccurredAt
}

// AccountTransactionModelFromDomain creates a new persistence model from a
// domain AccountTransaction.
func AccountTransactionModelFromDomain(t *partner.AccountTransaction) *AccountTransactionModel {
	m := &AccountTransactionModel{}
	m.FromDomain(t)
	return m
}
