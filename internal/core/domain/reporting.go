package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostedLine is a journal line joined with its posted entry's metadata, the
// raw material every report is recomputed from. Reports never read the cached
// account balances.
type PostedLine struct {
	EntryID          string
	EntryNumber      string
	EntryDate        time.Time
	EntryDescription string
	LineID           string
	LineNumber       int
	AccountID        string
	Debit            decimal.Decimal
	Credit           decimal.Decimal
}

// ReportRow is one aggregated row in an income statement or balance sheet.
// Key identifies the grouping bucket (account ID, subtype, or type depending
// on the requested granularity).
type ReportRow struct {
	Key              string          `json:"key"`
	Label            string          `json:"label"`
	AccountType      AccountType     `json:"accountType"`
	Amount           decimal.Decimal `json:"amount"`
	PercentOfRevenue decimal.Decimal `json:"percentOfRevenue,omitempty"`
}

// IncomeStatement reports revenue and expense activity over a period.
type IncomeStatement struct {
	OrganizationID    string           `json:"organizationID"`
	From              time.Time        `json:"from"`
	To                time.Time        `json:"to"`
	Revenue           []ReportRow      `json:"revenue"`
	Expenses          []ReportRow      `json:"expenses"`
	TotalRevenue      decimal.Decimal  `json:"totalRevenue"`
	TotalExpenses     decimal.Decimal  `json:"totalExpenses"`
	NetIncome         decimal.Decimal  `json:"netIncome"`
	NetIncomePercent  decimal.Decimal  `json:"netIncomePercent"`
	PriorPeriod       *IncomeStatement `json:"priorPeriod,omitempty"`
	PriorPeriodChange decimal.Decimal  `json:"priorPeriodChange"`
}

// BalanceSheet reports asset, liability, and equity balances as of a date.
// Balanced is the fundamental correctness check of the entire ledger and is
// always exposed to the caller.
type BalanceSheet struct {
	OrganizationID   string          `json:"organizationID"`
	AsOf             time.Time       `json:"asOf"`
	Assets           []ReportRow     `json:"assets"`
	Liabilities      []ReportRow     `json:"liabilities"`
	Equity           []ReportRow     `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
	Balanced         bool            `json:"balanced"`
	Difference       decimal.Decimal `json:"difference"`
}

// CashFlowCategory classifies non-cash activity for the cash flow statement.
type CashFlowCategory string

const (
	CashFlowOperating CashFlowCategory = "OPERATING"
	CashFlowInvesting CashFlowCategory = "INVESTING"
	CashFlowFinancing CashFlowCategory = "FINANCING"
)

// CashFlowSection is one classification bucket of the cash flow statement.
type CashFlowSection struct {
	Rows  []ReportRow     `json:"rows"`
	Total decimal.Decimal `json:"total"`
}

// CashFlowReconciliation compares the classified totals against the directly
// observed change in cash. A nonzero Difference signals a classification or
// data bug and is surfaced, never hidden.
type CashFlowReconciliation struct {
	ClassifiedTotal decimal.Decimal `json:"classifiedTotal"`
	NetChangeInCash decimal.Decimal `json:"netChangeInCash"`
	Difference      decimal.Decimal `json:"difference"`
}

// CashFlowStatement reports sources and uses of cash over a period.
type CashFlowStatement struct {
	OrganizationID string                 `json:"organizationID"`
	From           time.Time              `json:"from"`
	To             time.Time              `json:"to"`
	BeginningCash  decimal.Decimal        `json:"beginningCash"`
	EndingCash     decimal.Decimal        `json:"endingCash"`
	NetChange      decimal.Decimal        `json:"netChange"`
	Operating      CashFlowSection        `json:"operating"`
	Investing      CashFlowSection        `json:"investing"`
	Financing      CashFlowSection        `json:"financing"`
	Reconciliation CashFlowReconciliation `json:"reconciliation"`
}

// TrialBalanceRow nets one account's activity into its normal-balance side.
type TrialBalanceRow struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	NetDebit      decimal.Decimal `json:"netDebit"`
	NetCredit     decimal.Decimal `json:"netCredit"`
}

// TrialBalance proves total debits equal total credits as of a date.
type TrialBalance struct {
	OrganizationID string            `json:"organizationID"`
	AsOf           time.Time         `json:"asOf"`
	Rows           []TrialBalanceRow `json:"rows"`
	TotalDebit     decimal.Decimal   `json:"totalDebit"`
	TotalCredit    decimal.Decimal   `json:"totalCredit"`
	Balanced       bool              `json:"balanced"`
}

// GeneralLedgerLine is one transaction-level row in a general ledger trace.
type GeneralLedgerLine struct {
	EntryID        string          `json:"entryID"`
	EntryNumber    string          `json:"entryNumber"`
	EntryDate      time.Time       `json:"entryDate"`
	LineNumber     int             `json:"lineNumber"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerAccount is one account's chronological activity trace.
type GeneralLedgerAccount struct {
	AccountID        string              `json:"accountID"`
	AccountNumber    string              `json:"accountNumber"`
	AccountName      string              `json:"accountName"`
	AccountType      AccountType         `json:"accountType"`
	BeginningBalance decimal.Decimal     `json:"beginningBalance"`
	EndingBalance    decimal.Decimal     `json:"endingBalance"`
	Lines            []GeneralLedgerLine `json:"lines"`
}

// GeneralLedger is the one report exposing transaction-level granularity.
type GeneralLedger struct {
	OrganizationID string                 `json:"organizationID"`
	From           time.Time              `json:"from"`
	To             time.Time              `json:"to"`
	Accounts       []GeneralLedgerAccount `json:"accounts"`
}
