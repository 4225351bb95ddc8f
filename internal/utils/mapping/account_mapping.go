package mapping

import (
	"github.com/stabulum/stabulum/internal/core/domain"
	"github.com/stabulum/stabulum/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		OrganizationID:  d.OrganizationID,
		AccountNumber:   d.AccountNumber,
		Name:            d.Name,
		AccountType:     string(d.AccountType),
		SubType:         d.SubType,
		ParentAccountID: nullableString(d.ParentAccountID),
		Description:     d.Description,
		CurrencyCode:    d.CurrencyCode,
		IsActive:        d.IsActive,
		IsArchived:      d.IsArchived,
		Balance:         d.Balance,
		BalanceAsOf:     d.BalanceAsOf,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		OrganizationID:  m.OrganizationID,
		AccountNumber:   m.AccountNumber,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		SubType:         m.SubType,
		ParentAccountID: stringOrEmpty(m.ParentAccountID),
		Description:     m.Description,
		CurrencyCode:    m.CurrencyCode,
		IsActive:        m.IsActive,
		IsArchived:      m.IsArchived,
		Balance:         m.Balance,
		BalanceAsOf:     m.BalanceAsOf,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
