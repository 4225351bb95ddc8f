package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/stabulum/stabulum/internal/apperrors"
	"github.com/stabulum/stabulum/internal/core/domain"
	portssvc "github.com/stabulum/stabulum/internal/core/ports/services"
	"github.com/stabulum/stabulum/internal/core/services"
	"github.com/stabulum/stabulum/internal/dto"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockEntrySvc   *MockEntryService
	mockPostingSvc *MockPostingService
	mockAccountSvc *MockAccountService
	service        portssvc.PaymentSvcFacade
	organizationID string
	userID         string
	tokenAccount   domain.Account
	counterAccount domain.Account
	journalID      string
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockEntrySvc = new(MockEntryService)
	suite.mockPostingSvc = new(MockPostingService)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewPaymentService(suite.mockEntrySvc, suite.mockPostingSvc, suite.mockAccountSvc)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.journalID = uuid.NewString()
	suite.tokenAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		AccountNumber:  "1050",
		AccountType:    domain.Asset,
		SubType:        domain.SubTypeTokenCash,
		IsActive:       true,
	}
	suite.counterAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		AccountNumber:  "1100",
		AccountType:    domain.Asset,
		SubType:        domain.SubTypeAccountsReceivable,
		IsActive:       true,
	}
}

func (suite *PaymentServiceTestSuite) baseRequest(direction string) dto.RecordTokenTransferRequest {
	return dto.RecordTokenTransferRequest{
		Direction:        direction,
		TxHash:           "0x" + uuid.NewString(),
		TokenAccountID:   suite.tokenAccount.AccountID,
		CounterAccountID: suite.counterAccount.AccountID,
		Amount:           decimal.NewFromInt(750),
		JournalID:        suite.journalID,
		Date:             time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *PaymentServiceTestSuite) TestRecordTokenTransfer_IncomingDebitsTokenAccount() {
	ctx := context.Background()
	req := suite.baseRequest(dto.TransferIncoming)

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.organizationID, suite.tokenAccount.AccountID, suite.userID).Return(&suite.tokenAccount, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.organizationID, suite.counterAccount.AccountID, suite.userID).Return(&suite.counterAccount, nil).Once()

	draftID := uuid.NewString()
	var capturedReq dto.CreateEntryRequest
	suite.mockEntrySvc.On("CreateDraftEntry", ctx, suite.organizationID, mock.AnythingOfType("dto.CreateEntryRequest"), suite.userID).
		Run(func(args mock.Arguments) {
			capturedReq = args.Get(2).(dto.CreateEntryRequest)
		}).
		Return(&domain.JournalEntry{EntryID: draftID, OrganizationID: suite.organizationID, Status: domain.EntryDraft}, nil).Once()

	postedAt := time.Now().UTC()
	posted := &domain.JournalEntry{EntryID: draftID, OrganizationID: suite.organizationID, Status: domain.EntryPosted, PostedAt: &postedAt}
	suite.mockPostingSvc.On("PostEntry", ctx, suite.organizationID, draftID, suite.userID).Return(posted, nil).Once()

	entry, err := suite.service.RecordTokenTransfer(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.EntryPosted, entry.Status)

	suite.Require().Len(capturedReq.Lines, 2)
	tokenLine := capturedReq.Lines[0]
	counterLine := capturedReq.Lines[1]
	suite.Equal(suite.tokenAccount.AccountID, tokenLine.AccountID)
	suite.True(tokenLine.Debit.Equal(req.Amount))
	suite.True(tokenLine.Credit.IsZero())
	suite.Equal(suite.counterAccount.AccountID, counterLine.AccountID)
	suite.True(counterLine.Credit.Equal(req.Amount))
	suite.Require().NotNil(capturedReq.ExternalPaymentRef)
	suite.Equal(req.TxHash, *capturedReq.ExternalPaymentRef)
	suite.Equal(req.TxHash, capturedReq.Reference)
	suite.mockPostingSvc.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordTokenTransfer_OutgoingCreditsTokenAccount() {
	ctx := context.Background()
	req := suite.baseRequest(dto.TransferOutgoing)

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.organizationID, suite.tokenAccount.AccountID, suite.userID).Return(&suite.tokenAccount, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.organizationID, suite.counterAccount.AccountID, suite.userID).Return(&suite.counterAccount, nil).Once()

	draftID := uuid.NewString()
	var capturedReq dto.CreateEntryRequest
	suite.mockEntrySvc.On("CreateDraftEntry", ctx, suite.organizationID, mock.AnythingOfType("dto.CreateEntryRequest"), suite.userID).
		Run(func(args mock.Arguments) {
			capturedReq = args.Get(2).(dto.CreateEntryRequest)
		}).
		Return(&domain.JournalEntry{EntryID: draftID, OrganizationID: suite.organizationID, Status: domain.EntryDraft}, nil).Once()
	suite.mockPostingSvc.On("PostEntry", ctx, suite.organizationID, draftID, suite.userID).
		Return(&domain.JournalEntry{EntryID: draftID, Status: domain.EntryPosted}, nil).Once()

	_, err := suite.service.RecordTokenTransfer(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(capturedReq.Lines, 2)
	suite.True(capturedReq.Lines[0].Credit.Equal(req.Amount))
	suite.True(capturedReq.Lines[1].Debit.Equal(req.Amount))
}

func (suite *PaymentServiceTestSuite) TestRecordTokenTransfer_NonAssetTokenAccountRejected() {
	ctx := context.Background()
	req := suite.baseRequest(dto.TransferIncoming)
	payable := suite.tokenAccount
	payable.AccountType = domain.Liability

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.organizationID, suite.tokenAccount.AccountID, suite.userID).Return(&payable, nil).Once()

	entry, err := suite.service.RecordTokenTransfer(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntrySvc.AssertNotCalled(suite.T(), "CreateDraftEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordTokenTransfer_SameAccountRejected() {
	ctx := context.Background()
	req := suite.baseRequest(dto.TransferIncoming)
	req.CounterAccountID = req.TokenAccountID

	entry, err := suite.service.RecordTokenTransfer(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestRecordTokenTransfer_NonPositiveAmountRejected() {
	ctx := context.Background()
	req := suite.baseRequest(dto.TransferIncoming)
	req.Amount = decimal.Zero

	entry, err := suite.service.RecordTokenTransfer(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestRecordTokenTransfer_DuplicateTxHashSurfaces() {
	ctx := context.Background()
	req := suite.baseRequest(dto.TransferIncoming)

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.organizationID, suite.tokenAccount.AccountID, suite.userID).Return(&suite.tokenAccount, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.organizationID, suite.counterAccount.AccountID, suite.userID).Return(&suite.counterAccount, nil).Once()
	suite.mockEntrySvc.On("CreateDraftEntry", ctx, suite.organizationID, mock.AnythingOfType("dto.CreateEntryRequest"), suite.userID).
		Return(nil, apperrors.ErrDuplicate).Once()

	entry, err := suite.service.RecordTokenTransfer(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockPostingSvc.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
