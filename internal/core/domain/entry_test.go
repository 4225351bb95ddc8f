package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/stabulum/stabulum/internal/apperrors"
	"github.com/stabulum/stabulum/internal/core/domain"
)

func TestJournalLine_Validate(t *testing.T) {
	tests := []struct {
		name    string
		line    domain.JournalLine
		wantErr bool
	}{
		{
			name: "debit only is valid",
			line: domain.JournalLine{LineNumber: 1, Debit: decimal.NewFromInt(100)},
		},
		{
			name: "credit only is valid",
			line: domain.JournalLine{LineNumber: 1, Credit: decimal.NewFromInt(100)},
		},
		{
			name:    "both sides set is invalid",
			line:    domain.JournalLine{LineNumber: 2, Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(100)},
			wantErr: true,
		},
		{
			name:    "neither side set is invalid",
			line:    domain.JournalLine{LineNumber: 3},
			wantErr: true,
		},
		{
			name:    "negative debit is invalid",
			line:    domain.JournalLine{LineNumber: 4, Debit: decimal.NewFromInt(-5)},
			wantErr: true,
		},
		{
			name:    "negative credit is invalid",
			line:    domain.JournalLine{LineNumber: 5, Credit: decimal.NewFromInt(-5)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				var lineErr *apperrors.LineInvariantError
				assert.ErrorAs(t, err, &lineErr)
				assert.Equal(t, tt.line.LineNumber, lineErr.LineNumber)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEntryTotals(t *testing.T) {
	lines := []domain.JournalLine{
		{Debit: decimal.NewFromInt(100)},
		{Debit: decimal.RequireFromString("0.5")},
		{Credit: decimal.RequireFromString("100.5")},
	}
	totalDebit, totalCredit := domain.EntryTotals(lines)
	assert.True(t, totalDebit.Equal(decimal.RequireFromString("100.5")))
	assert.True(t, totalCredit.Equal(decimal.RequireFromString("100.5")))
}

func TestBalanced(t *testing.T) {
	balanced := []domain.JournalLine{
		{Debit: decimal.NewFromInt(100)},
		{Credit: decimal.NewFromInt(100)},
	}
	assert.True(t, domain.Balanced(balanced))

	withinTolerance := []domain.JournalLine{
		{Debit: decimal.NewFromInt(100)},
		{Credit: decimal.RequireFromString("99.99")},
	}
	assert.True(t, domain.Balanced(withinTolerance), "a one cent difference is within the posting tolerance")

	beyondTolerance := []domain.JournalLine{
		{Debit: decimal.NewFromInt(100)},
		{Credit: decimal.RequireFromString("99.98")},
	}
	assert.False(t, domain.Balanced(beyondTolerance))
}

func TestAccountType_NumberPrefix(t *testing.T) {
	assert.Equal(t, 1, domain.Asset.NumberPrefix())
	assert.Equal(t, 2, domain.Liability.NumberPrefix())
	assert.Equal(t, 3, domain.Equity.NumberPrefix())
	assert.Equal(t, 4, domain.Revenue.NumberPrefix())
	assert.Equal(t, 5, domain.Expense.NumberPrefix())
	assert.Equal(t, 9, domain.AccountType("OTHER").NumberPrefix())
}

func TestJournalType_NumberPrefix(t *testing.T) {
	assert.Equal(t, "GEN", domain.JournalGeneral.NumberPrefix())
	assert.Equal(t, "SAL", domain.JournalSales.NumberPrefix())
	assert.Equal(t, "PUR", domain.JournalPurchases.NumberPrefix())
	assert.Equal(t, "CR", domain.JournalCashReceipts.NumberPrefix())
	assert.Equal(t, "CD", domain.JournalCashDisbursements.NumberPrefix())
}

func TestOrganizationRole_Satisfies(t *testing.T) {
	assert.True(t, domain.RoleAdmin.Satisfies(domain.RoleMember))
	assert.True(t, domain.RoleMember.Satisfies(domain.RoleReadOnly))
	assert.False(t, domain.RoleReadOnly.Satisfies(domain.RoleMember))
	assert.False(t, domain.RoleMember.Satisfies(domain.RoleAdmin))
	assert.True(t, domain.RoleReadOnly.Satisfies(domain.RoleReadOnly))
}
