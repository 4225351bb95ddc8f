package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stabulum/stabulum/internal/apperrors"
)

// EntryStatus is the state of a journal entry.
//
// The state machine is draft -> posted -> {voided | reversed}. Voided and
// reversed are terminal. Reconciled is reached from posted by the bank
// reconciliation workflow and blocks voiding.
type EntryStatus string

const (
	EntryDraft      EntryStatus = "DRAFT"
	EntryPosted     EntryStatus = "POSTED"
	EntryVoided     EntryStatus = "VOIDED"
	EntryReversed   EntryStatus = "REVERSED"
	EntryReconciled EntryStatus = "RECONCILED"
)

// JournalEntry is one double-entry transaction header. Lines is populated
// only when explicitly loaded.
type JournalEntry struct {
	EntryID        string      `json:"entryID"`
	OrganizationID string      `json:"organizationID"`
	JournalID      string      `json:"journalID"`
	EntryNumber    string      `json:"entryNumber"` // <prefix>-<YYMM>-<00001>, sequential per journal
	EntryDate      time.Time   `json:"entryDate"`
	Description    string      `json:"description"`
	Reference      string      `json:"reference"`
	Status         EntryStatus `json:"status"`
	PostedAt       *time.Time  `json:"postedAt,omitempty"`
	// ReversedByEntryID is set on the original once a reversal exists;
	// ReversalOfEntryID is set on the reversal. Both links are permanent.
	ReversedByEntryID *string `json:"reversedByEntryID,omitempty"`
	ReversalOfEntryID *string `json:"reversalOfEntryID,omitempty"`
	// ExternalPaymentRef correlates the entry with an on-chain stablecoin
	// transfer (the transaction hash). Unique per organization when set.
	ExternalPaymentRef *string       `json:"externalPaymentRef,omitempty"`
	Lines              []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is one posting within an entry. Exactly one of Debit or Credit
// is strictly positive; both are non-negative.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	LineNumber  int             `json:"lineNumber"` // 1-based, unique within the entry
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	// Optional analytical dimensions.
	CustomerID   string `json:"customerID,omitempty"`
	VendorID     string `json:"vendorID,omitempty"`
	ProjectID    string `json:"projectID,omitempty"`
	DepartmentID string `json:"departmentID,omitempty"`
	// TokenAmount shadows the on-chain token amount when the line originated
	// from a stablecoin transfer.
	TokenAmount *decimal.Decimal `json:"tokenAmount,omitempty"`
	Reconciled  bool             `json:"reconciled"`
	AuditFields
}

// Validate enforces the line invariant: debit XOR credit strictly positive,
// both non-negative.
func (l *JournalLine) Validate() error {
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return &apperrors.LineInvariantError{LineNumber: l.LineNumber, Debit: l.Debit, Credit: l.Credit}
	}
	debitSet := l.Debit.IsPositive()
	creditSet := l.Credit.IsPositive()
	if debitSet == creditSet {
		return &apperrors.LineInvariantError{LineNumber: l.LineNumber, Debit: l.Debit, Credit: l.Credit}
	}
	return nil
}

// PostingTolerance is the maximum permitted absolute difference between an
// entry's total debits and total credits at post time. Amounts are exact
// decimals internally; the tolerance absorbs rounding introduced by upstream
// document workflows (tax splits, unit-price math).
var PostingTolerance = decimal.NewFromFloat(0.01)

// EntryTotals sums the debit and credit sides of a set of lines.
func EntryTotals(lines []JournalLine) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, l := range lines {
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}
	return totalDebit, totalCredit
}

// Balanced reports whether the lines balance within PostingTolerance.
func Balanced(lines []JournalLine) bool {
	d, c := EntryTotals(lines)
	return d.Sub(c).Abs().LessThanOrEqual(PostingTolerance)
}
