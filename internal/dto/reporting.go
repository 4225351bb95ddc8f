package dto

import (
	"github.com/stabulum/stabulum/internal/core/domain"
)

// Report grouping granularities for the income statement.
const (
	GroupByAccount = "account"
	GroupBySubType = "subtype"
	GroupByType    = "type"
)

// IncomeStatementOptions controls income statement generation.
type IncomeStatementOptions struct {
	// GroupBy is one of GroupByAccount (default), GroupBySubType, GroupByType.
	GroupBy string
	// ShowPercentages adds percent-of-revenue to every expense row and the
	// net income figure (zero when revenue is zero).
	ShowPercentages bool
	// ComparePriorPeriod adds an equal-length immediately-preceding window.
	ComparePriorPeriod bool
}

// BalanceSheetOptions controls balance sheet generation.
type BalanceSheetOptions struct {
	GroupBy string
}

// TrialBalanceOptions controls trial balance generation.
type TrialBalanceOptions struct {
	// IncludeZeroActivity keeps accounts with no net activity in the rows.
	IncludeZeroActivity bool
}

// CashFlowOptions controls cash flow statement generation.
type CashFlowOptions struct {
	// CashAccountIDs explicitly lists cash/cash-equivalent accounts. When
	// empty, cash accounts are auto-detected by subtype.
	CashAccountIDs []string
	// ClassificationOverrides maps account IDs to a cash flow category,
	// taking precedence over the default type+subtype table.
	ClassificationOverrides map[string]domain.CashFlowCategory
}
