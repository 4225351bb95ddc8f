package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a chart-of-accounts row.
// Note: ParentAccountID maps to a nullable foreign key.
type Account struct {
	AccountID       string          `db:"account_id"`
	OrganizationID  string          `db:"organization_id"`
	AccountNumber   string          `db:"account_number"`
	Name            string          `db:"name"`
	AccountType     string          `db:"account_type"`
	SubType         string          `db:"sub_type"`
	ParentAccountID *string         `db:"parent_account_id"` // Nullable
	Description     string          `db:"description"`
	CurrencyCode    string          `db:"currency_code"`
	IsActive        bool            `db:"is_active"`
	IsArchived      bool            `db:"is_archived"`
	Balance         decimal.Decimal `db:"balance"` // Cache; written only by the posting engine
	BalanceAsOf     time.Time       `db:"balance_as_of"`
	AuditFields
}
