package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stabulum/stabulum/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating an account. When
// AccountNumber is empty the registry assigns the next number in the type's
// band.
type CreateAccountRequest struct {
	AccountNumber   string  `json:"accountNumber" binding:"omitempty,numeric,len=4"`
	Name            string  `json:"name" binding:"required"`
	AccountType     string  `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	SubType         string  `json:"subType"`
	ParentAccountID *string `json:"parentAccountID"`
	Description     string  `json:"description"`
	CurrencyCode    string  `json:"currencyCode" binding:"omitempty,len=3"`
}

// UpdateAccountRequest defines the payload for updating an account. Nil
// fields are left unchanged.
type UpdateAccountRequest struct {
	Name            *string `json:"name"`
	SubType         *string `json:"subType"`
	ParentAccountID *string `json:"parentAccountID"`
	Description     *string `json:"description"`
	IsActive        *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string          `json:"accountID"`
	AccountNumber   string          `json:"accountNumber"`
	Name            string          `json:"name"`
	AccountType     string          `json:"accountType"`
	SubType         string          `json:"subType,omitempty"`
	ParentAccountID string          `json:"parentAccountID,omitempty"`
	Description     string          `json:"description,omitempty"`
	CurrencyCode    string          `json:"currencyCode"`
	IsActive        bool            `json:"isActive"`
	IsArchived      bool            `json:"isArchived"`
	Balance         decimal.Decimal `json:"balance"`
	BalanceAsOf     time.Time       `json:"balanceAsOf"`
}

// ToAccountResponse converts a domain Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		AccountNumber:   a.AccountNumber,
		Name:            a.Name,
		AccountType:     string(a.AccountType),
		SubType:         a.SubType,
		ParentAccountID: a.ParentAccountID,
		Description:     a.Description,
		CurrencyCode:    a.CurrencyCode,
		IsActive:        a.IsActive,
		IsArchived:      a.IsArchived,
		Balance:         a.Balance,
		BalanceAsOf:     a.BalanceAsOf,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
