package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stabulum/stabulum/internal/core/domain"
)

// CreateJournalRequest defines the payload for creating a journal partition.
type CreateJournalRequest struct {
	Name        string `json:"name" binding:"required"`
	JournalType string `json:"journalType" binding:"required,oneof=GENERAL SALES PURCHASES CASH_RECEIPTS CASH_DISBURSEMENTS"`
}

// JournalResponse defines the data returned for a journal partition.
type JournalResponse struct {
	JournalID   string `json:"journalID"`
	Name        string `json:"name"`
	JournalType string `json:"journalType"`
}

// ToJournalResponse converts a domain Journal to its response DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID:   j.JournalID,
		Name:        j.Name,
		JournalType: string(j.JournalType),
	}
}

// EntryLineRequest defines one line in an entry payload. Exactly one of
// Debit or Credit must be strictly positive.
type EntryLineRequest struct {
	AccountID    string           `json:"accountID" binding:"required"`
	Description  string           `json:"description"`
	Debit        decimal.Decimal  `json:"debit" binding:"nonnegdecimal"`
	Credit       decimal.Decimal  `json:"credit" binding:"nonnegdecimal"`
	CustomerID   string           `json:"customerID"`
	VendorID     string           `json:"vendorID"`
	ProjectID    string           `json:"projectID"`
	DepartmentID string           `json:"departmentID"`
	TokenAmount  *decimal.Decimal `json:"tokenAmount"`
}

// CreateEntryRequest defines the payload for creating a draft journal entry.
type CreateEntryRequest struct {
	JournalID          string             `json:"journalID" binding:"required"`
	Date               time.Time          `json:"date" binding:"required"`
	Description        string             `json:"description" binding:"required"`
	Reference          string             `json:"reference"`
	ExternalPaymentRef *string            `json:"externalPaymentRef"`
	Lines              []EntryLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateEntryRequest defines the payload for editing a draft entry. Nil
// fields are left unchanged; a non-nil Lines slice replaces all lines.
type UpdateEntryRequest struct {
	Date        *time.Time         `json:"date"`
	Description *string            `json:"description"`
	Reference   *string            `json:"reference"`
	Lines       []EntryLineRequest `json:"lines" binding:"omitempty,min=1,dive"`
}

// VoidEntryRequest defines the payload for voiding an entry.
type VoidEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ReverseEntryRequest defines the payload for generating a reversal entry.
type ReverseEntryRequest struct {
	Date   time.Time `json:"date" binding:"required"`
	Reason string    `json:"reason" binding:"required"`
}

// ListEntriesParams holds parameters for listing entries.
type ListEntriesParams struct {
	JournalID    *string
	Limit        int
	NextToken    *string
	IncludeLines bool
}

// EntryLineResponse defines the data returned for a journal line.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	LineNumber  int             `json:"lineNumber"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Reconciled  bool            `json:"reconciled"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID            string              `json:"entryID"`
	JournalID          string              `json:"journalID"`
	EntryNumber        string              `json:"entryNumber"`
	Date               time.Time           `json:"date"`
	Description        string              `json:"description"`
	Reference          string              `json:"reference,omitempty"`
	Status             string              `json:"status"`
	PostedAt           *time.Time          `json:"postedAt,omitempty"`
	ReversedByEntryID  *string             `json:"reversedByEntryID,omitempty"`
	ReversalOfEntryID  *string             `json:"reversalOfEntryID,omitempty"`
	ExternalPaymentRef *string             `json:"externalPaymentRef,omitempty"`
	Lines              []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
	CreatedBy          string              `json:"createdBy"`
}

// ListEntriesResponse wraps a page of entries with the pagination cursor.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// AuditRecordResponse defines one row of an entry's audit trail.
type AuditRecordResponse struct {
	AuditID    string    `json:"auditID"`
	Action     string    `json:"action"`
	Reason     string    `json:"reason,omitempty"`
	ActorID    string    `json:"actorID"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ToAuditRecordResponses converts a slice of audit records.
func ToAuditRecordResponses(records []domain.AuditRecord) []AuditRecordResponse {
	responses := make([]AuditRecordResponse, len(records))
	for i, r := range records {
		responses[i] = AuditRecordResponse{
			AuditID:    r.AuditID,
			Action:     string(r.Action),
			Reason:     r.Reason,
			ActorID:    r.ActorID,
			OccurredAt: r.OccurredAt,
		}
	}
	return responses
}

// ToEntryLineResponse converts a domain JournalLine to its response DTO.
func ToEntryLineResponse(l *domain.JournalLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:      l.LineID,
		LineNumber:  l.LineNumber,
		AccountID:   l.AccountID,
		Description: l.Description,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Reconciled:  l.Reconciled,
	}
}

// ToEntryResponse converts a domain JournalEntry to its response DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:            e.EntryID,
		JournalID:          e.JournalID,
		EntryNumber:        e.EntryNumber,
		Date:               e.EntryDate,
		Description:        e.Description,
		Reference:          e.Reference,
		Status:             string(e.Status),
		PostedAt:           e.PostedAt,
		ReversedByEntryID:  e.ReversedByEntryID,
		ReversalOfEntryID:  e.ReversalOfEntryID,
		ExternalPaymentRef: e.ExternalPaymentRef,
		CreatedAt:          e.CreatedAt,
		CreatedBy:          e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToEntryLineResponse(&e.Lines[i])
		}
	}
	return resp
}
