package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stabulum/stabulum/internal/core/domain"
)

// SignedAmount applies the balance sign convention to one journal line.
//
// DEBIT to ASSET/EXPENSE -> positive
// CREDIT to ASSET/EXPENSE -> negative
// DEBIT to LIABILITY/EQUITY/REVENUE -> negative
// CREDIT to LIABILITY/EQUITY/REVENUE -> positive
//
// The posting engine and the reporting engine both use this helper; the
// convention must never diverge between them.
func SignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	net := line.Debit.Sub(line.Credit)
	switch accountType {
	case domain.Asset, domain.Expense:
		return net, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return net.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q for account %s", accountType, line.AccountID)
	}
}

// SignedNet applies the sign convention to already-summed debit and credit
// totals for an account.
func SignedNet(accountType domain.AccountType, debit, credit decimal.Decimal) decimal.Decimal {
	if accountType.NormalDebit() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// BalanceChanges folds a set of lines into per-account signed balance deltas.
// accountTypes must contain an entry for every account referenced by lines.
func BalanceChanges(lines []domain.JournalLine, accountTypes map[string]domain.AccountType) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, len(lines))
	for _, line := range lines {
		accountType, ok := accountTypes[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("account type not found for account %s", line.AccountID)
		}
		signed, err := SignedAmount(line, accountType)
		if err != nil {
			return nil, err
		}
		changes[line.AccountID] = changes[line.AccountID].Add(signed)
	}
	return changes, nil
}

// Invert negates every delta in a balance-change set. Voiding a posted entry
// applies the inverted changes so the effect is exactly un-applied.
func Invert(changes map[string]decimal.Decimal) map[string]decimal.Decimal {
	inverted := make(map[string]decimal.Decimal, len(changes))
	for accountID, delta := range changes {
		inverted[accountID] = delta.Neg()
	}
	return inverted
}
