package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalDebit reports whether the account type increases on the debit side.
// Asset and expense accounts are debit-normal; liability, equity, and revenue
// accounts are credit-normal.
func (t AccountType) NormalDebit() bool {
	return t == Asset || t == Expense
}

// NumberPrefix returns the leading digit of the account-number band for the
// type: 1xxx assets, 2xxx liabilities, 3xxx equity, 4xxx revenue,
// 5xxx expenses. Anything else falls in the 9xxx band.
func (t AccountType) NumberPrefix() int {
	switch t {
	case Asset:
		return 1
	case Liability:
		return 2
	case Equity:
		return 3
	case Revenue:
		return 4
	case Expense:
		return 5
	default:
		return 9
	}
}

// ValidAccountType reports whether t is one of the five known types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account is a node in the typed, hierarchical chart of accounts. Balance is
// a cache maintained exclusively by the posting engine; reports recompute it
// from journal-line history and may be used to detect drift.
type Account struct {
	AccountID       string          `json:"accountID"`
	OrganizationID  string          `json:"organizationID"`
	AccountNumber   string          `json:"accountNumber"` // unique per organization
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	SubType         string          `json:"subType"` // free-form classification, e.g. "cash", "accounts-receivable"
	ParentAccountID string          `json:"parentAccountID"`
	Description     string          `json:"description"`
	CurrencyCode    string          `json:"currencyCode"`
	IsActive        bool            `json:"isActive"`
	IsArchived      bool            `json:"isArchived"`
	Balance         decimal.Decimal `json:"balance"`
	BalanceAsOf     time.Time       `json:"balanceAsOf"`
	AuditFields
}

// Common subtypes recognized by the cash flow statement's default
// classification table.
const (
	SubTypeCash               = "cash"
	SubTypeBank               = "bank"
	SubTypeCashEquivalents    = "cash-equivalents"
	SubTypeTokenCash          = "token-cash" // on-chain stablecoin holdings
	SubTypeAccountsReceivable = "accounts-receivable"
	SubTypeAccountsPayable    = "accounts-payable"
	SubTypeFixedAssets        = "fixed-assets"
	SubTypeInvestments        = "investments"
	SubTypeLoans              = "loans"
)
