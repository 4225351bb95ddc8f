package mapping

import (
	"github.com/stabulum/stabulum/internal/core/domain"
	"github.com/stabulum/stabulum/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:            d.EntryID,
		OrganizationID:     d.OrganizationID,
		JournalID:          d.JournalID,
		EntryNumber:        d.EntryNumber,
		EntryDate:          d.EntryDate,
		Description:        d.Description,
		Reference:          d.Reference,
		Status:             string(d.Status),
		PostedAt:           d.PostedAt,
		ReversedByEntryID:  d.ReversedByEntryID,
		ReversalOfEntryID:  d.ReversalOfEntryID,
		ExternalPaymentRef: d.ExternalPaymentRef,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:            m.EntryID,
		OrganizationID:     m.OrganizationID,
		JournalID:          m.JournalID,
		EntryNumber:        m.EntryNumber,
		EntryDate:          m.EntryDate,
		Description:        m.Description,
		Reference:          m.Reference,
		Status:             domain.EntryStatus(m.Status),
		PostedAt:           m.PostedAt,
		ReversedByEntryID:  m.ReversedByEntryID,
		ReversalOfEntryID:  m.ReversalOfEntryID,
		ExternalPaymentRef: m.ExternalPaymentRef,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		LineNumber:   d.LineNumber,
		AccountID:    d.AccountID,
		Description:  d.Description,
		Debit:        d.Debit,
		Credit:       d.Credit,
		CustomerID:   nullableString(d.CustomerID),
		VendorID:     nullableString(d.VendorID),
		ProjectID:    nullableString(d.ProjectID),
		DepartmentID: nullableString(d.DepartmentID),
		TokenAmount:  d.TokenAmount,
		Reconciled:   d.Reconciled,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		LineNumber:   m.LineNumber,
		AccountID:    m.AccountID,
		Description:  m.Description,
		Debit:        m.Debit,
		Credit:       m.Credit,
		CustomerID:   stringOrEmpty(m.CustomerID),
		VendorID:     stringOrEmpty(m.VendorID),
		ProjectID:    stringOrEmpty(m.ProjectID),
		DepartmentID: stringOrEmpty(m.DepartmentID),
		TokenAmount:  m.TokenAmount,
		Reconciled:   m.Reconciled,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}

// ToModelAuditRecord converts a domain AuditRecord to a model AuditRecord
func ToModelAuditRecord(d domain.AuditRecord) models.AuditRecord {
	return models.AuditRecord{
		AuditID:        d.AuditID,
		OrganizationID: d.OrganizationID,
		EntryID:        d.EntryID,
		Action:         string(d.Action),
		Reason:         d.Reason,
		ActorID:        d.ActorID,
		OccurredAt:     d.OccurredAt,
	}
}

// ToDomainAuditRecord converts a model AuditRecord to a domain AuditRecord
func ToDomainAuditRecord(m models.AuditRecord) domain.AuditRecord {
	return domain.AuditRecord{
		AuditID:        m.AuditID,
		OrganizationID: m.OrganizationID,
		EntryID:        m.EntryID,
		Action:         domain.AuditAction(m.Action),
		Reason:         m.Reason,
		ActorID:        m.ActorID,
		OccurredAt:     m.OccurredAt,
	}
}
