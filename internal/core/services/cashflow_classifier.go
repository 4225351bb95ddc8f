package services

import "github.com/stabulum/stabulum/internal/core/domain"

// CashFlowClassifier assigns non-cash activity to a cash flow category.
type CashFlowClassifier interface {
	Classify(account domain.Account) domain.CashFlowCategory
}

// defaultCashFlowClassifier implements the standard type+subtype table:
// fixed assets and investments are investing, loans and equity are
// financing, everything else is operating.
type defaultCashFlowClassifier struct{}

// NewDefaultCashFlowClassifier returns the standard classification table.
func NewDefaultCashFlowClassifier() CashFlowClassifier {
	return defaultCashFlowClassifier{}
}

func (defaultCashFlowClassifier) Classify(account domain.Account) domain.CashFlowCategory {
	switch account.AccountType {
	case domain.Asset:
		switch account.SubType {
		case domain.SubTypeFixedAssets, domain.SubTypeInvestments:
			return domain.CashFlowInvesting
		}
		return domain.CashFlowOperating
	case domain.Liability:
		if account.SubType == domain.SubTypeLoans {
			return domain.CashFlowFinancing
		}
		return domain.CashFlowOperating
	case domain.Equity:
		return domain.CashFlowFinancing
	default:
		return domain.CashFlowOperating
	}
}

// overrideClassifier wraps a classifier with per-account overrides.
type overrideClassifier struct {
	base      CashFlowClassifier
	overrides map[string]domain.CashFlowCategory
}

func withOverrides(base CashFlowClassifier, overrides map[string]domain.CashFlowCategory) CashFlowClassifier {
	if len(overrides) == 0 {
		return base
	}
	return overrideClassifier{base: base, overrides: overrides}
}

func (c overrideClassifier) Classify(account domain.Account) domain.CashFlowCategory {
	if category, ok := c.overrides[account.AccountID]; ok {
		return category
	}
	return c.base.Classify(account)
}

// isCashAccount reports whether an account holds cash for cash flow
// purposes. Used when the caller does not list cash accounts explicitly.
func isCashAccount(account domain.Account) bool {
	if account.AccountType != domain.Asset {
		return false
	}
	switch account.SubType {
	case domain.SubTypeCash, domain.SubTypeBank, domain.SubTypeCashEquivalents, domain.SubTypeTokenCash:
		return true
	}
	return false
}
