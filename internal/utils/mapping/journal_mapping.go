package mapping

import (
	"github.com/stabulum/stabulum/internal/core/domain"
	"github.com/stabulum/stabulum/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:      d.JournalID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		JournalType:    string(d.JournalType),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:      m.JournalID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		JournalType:    domain.JournalType(m.JournalType),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
