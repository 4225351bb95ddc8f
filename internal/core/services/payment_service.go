package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stabulum/stabulum/internal/apperrors"
	"github.com/stabulum/stabulum/internal/core/domain"
	portssvc "github.com/stabulum/stabulum/internal/core/ports/services"
	"github.com/stabulum/stabulum/internal/dto"
)

// paymentService books confirmed stablecoin transfers as posted journal
// entries. It composes the entry store and the posting engine rather than
// touching repositories, so every ledger invariant is enforced on the same
// path as manual entries.
type paymentService struct {
	BaseService
	entrySvc   portssvc.EntrySvcFacade
	postingSvc portssvc.PostingSvcFacade
	accountSvc portssvc.AccountSvcFacade
}

// PaymentServiceOption is a functional option for configuring the payment
// service.
type PaymentServiceOption func(*paymentService)

// WithPaymentAuthorizer sets the organization authorizer.
func WithPaymentAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) PaymentServiceOption {
	return func(s *paymentService) {
		s.Authorizer = authorizer
	}
}

// NewPaymentService creates a new payment recording service.
func NewPaymentService(
	entrySvc portssvc.EntrySvcFacade,
	postingSvc portssvc.PostingSvcFacade,
	accountSvc portssvc.AccountSvcFacade,
	options ...PaymentServiceOption,
) portssvc.PaymentSvcFacade {
	svc := &paymentService{
		entrySvc:   entrySvc,
		postingSvc: postingSvc,
		accountSvc: accountSvc,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RecordTokenTransfer books a confirmed on-chain transfer as a balanced,
// posted two-line entry. Incoming transfers debit the token account and
// credit the counterpart; outgoing transfers mirror that. The transaction
// hash becomes the entry's external payment ref, so replaying the same
// transfer is rejected as a duplicate.
func (s *paymentService) RecordTokenTransfer(ctx context.Context, organizationID string, req dto.RecordTokenTransferRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}
	if req.TokenAccountID == req.CounterAccountID {
		return nil, fmt.Errorf("%w: token and counterpart accounts must differ", apperrors.ErrValidation)
	}

	tokenAccount, err := s.accountSvc.GetAccountByID(ctx, organizationID, req.TokenAccountID, userID)
	if err != nil {
		return nil, err
	}
	if tokenAccount.AccountType != domain.Asset {
		return nil, fmt.Errorf("%w: token account %s must be an asset account", apperrors.ErrValidation, tokenAccount.AccountNumber)
	}
	if _, err := s.accountSvc.GetAccountByID(ctx, organizationID, req.CounterAccountID, userID); err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Token transfer %s", req.TxHash)
	}

	tokenLine := dto.EntryLineRequest{
		AccountID:   req.TokenAccountID,
		Description: description,
		TokenAmount: req.TokenAmount,
	}
	counterLine := dto.EntryLineRequest{
		AccountID:   req.CounterAccountID,
		Description: description,
	}
	switch req.Direction {
	case dto.TransferIncoming:
		tokenLine.Debit = req.Amount
		counterLine.Credit = req.Amount
	case dto.TransferOutgoing:
		tokenLine.Credit = req.Amount
		counterLine.Debit = req.Amount
	default:
		return nil, fmt.Errorf("%w: unknown transfer direction %q", apperrors.ErrValidation, req.Direction)
	}

	txHash := req.TxHash
	draft, err := s.entrySvc.CreateDraftEntry(ctx, organizationID, dto.CreateEntryRequest{
		JournalID:          req.JournalID,
		Date:               req.Date,
		Description:        description,
		Reference:          req.TxHash,
		ExternalPaymentRef: &txHash,
		Lines:              []dto.EntryLineRequest{tokenLine, counterLine},
	}, userID)
	if err != nil {
		return nil, err
	}

	posted, err := s.postingSvc.PostEntry(ctx, organizationID, draft.EntryID, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to post token transfer entry",
			slog.String("entry_id", draft.EntryID), slog.String("tx_hash", req.TxHash))
		return nil, err
	}

	s.LogInfo(ctx, "Token transfer recorded",
		slog.String("entry_id", posted.EntryID),
		slog.String("entry_number", posted.EntryNumber),
		slog.String("tx_hash", req.TxHash),
		slog.String("direction", req.Direction),
		slog.String("amount", req.Amount.String()))
	return posted, nil
}
