package domain

// JournalType identifies which transaction log partition a journal is. The
// set is fixed; journals exist purely as grouping and numbering-prefix
// mechanisms and take no part in the balancing invariant.
type JournalType string

const (
	JournalGeneral           JournalType = "GENERAL"
	JournalSales             JournalType = "SALES"
	JournalPurchases         JournalType = "PURCHASES"
	JournalCashReceipts      JournalType = "CASH_RECEIPTS"
	JournalCashDisbursements JournalType = "CASH_DISBURSEMENTS"
)

// NumberPrefix returns the entry-number prefix for the journal type.
func (t JournalType) NumberPrefix() string {
	switch t {
	case JournalSales:
		return "SAL"
	case JournalPurchases:
		return "PUR"
	case JournalCashReceipts:
		return "CR"
	case JournalCashDisbursements:
		return "CD"
	default:
		return "GEN"
	}
}

// ValidJournalType reports whether t is one of the known journal types.
func ValidJournalType(t JournalType) bool {
	switch t {
	case JournalGeneral, JournalSales, JournalPurchases, JournalCashReceipts, JournalCashDisbursements:
		return true
	}
	return false
}

// Journal is a named transaction log partition, e.g. "Sales Journal".
type Journal struct {
	JournalID      string      `json:"journalID"`
	OrganizationID string      `json:"organizationID"`
	Name           string      `json:"name"`
	JournalType    JournalType `json:"journalType"`
	AuditFields
}

// DefaultJournals returns the standard set of journals seeded for a new
// organization.
func DefaultJournals() []struct {
	Name string
	Type JournalType
} {
	return []struct {
		Name string
		Type JournalType
	}{
		{"General Journal", JournalGeneral},
		{"Sales Journal", JournalSales},
		{"Purchases Journal", JournalPurchases},
		{"Cash Receipts Journal", JournalCashReceipts},
		{"Cash Disbursements Journal", JournalCashDisbursements},
	}
}
