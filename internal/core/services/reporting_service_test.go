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

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccountRepo   *MockAccountRepository
	service           portssvc.ReportingSvcFacade
	organizationID    string
	userID            string
	cash              domain.Account
	receivable        domain.Account
	loan              domain.Account
	capital           domain.Account
	revenue           domain.Account
	rent              domain.Account
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockAccountRepo)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cash = domain.Account{AccountID: uuid.NewString(), OrganizationID: suite.organizationID, AccountNumber: "1000", Name: "Cash", AccountType: domain.Asset, SubType: domain.SubTypeCash, IsActive: true}
	suite.receivable = domain.Account{AccountID: uuid.NewString(), OrganizationID: suite.organizationID, AccountNumber: "1100", Name: "Accounts Receivable", AccountType: domain.Asset, SubType: domain.SubTypeAccountsReceivable, IsActive: true}
	suite.loan = domain.Account{AccountID: uuid.NewString(), OrganizationID: suite.organizationID, AccountNumber: "2000", Name: "Bank Loan", AccountType: domain.Liability, SubType: domain.SubTypeLoans, IsActive: true}
	suite.capital = domain.Account{AccountID: uuid.NewString(), OrganizationID: suite.organizationID, AccountNumber: "3000", Name: "Owner Capital", AccountType: domain.Equity, IsActive: true}
	suite.revenue = domain.Account{AccountID: uuid.NewString(), OrganizationID: suite.organizationID, AccountNumber: "4000", Name: "Sales", AccountType: domain.Revenue, IsActive: true}
	suite.rent = domain.Account{AccountID: uuid.NewString(), OrganizationID: suite.organizationID, AccountNumber: "5000", Name: "Rent", AccountType: domain.Expense, IsActive: true}
}

func (suite *ReportingServiceTestSuite) chart() []domain.Account {
	return []domain.Account{suite.cash, suite.receivable, suite.loan, suite.capital, suite.revenue, suite.rent}
}

func (suite *ReportingServiceTestSuite) expectChart(ctx context.Context) {
	suite.mockAccountRepo.On("ListAccounts", ctx, suite.organizationID, true).Return(suite.chart(), nil).Once()
}

func line(entryNumber string, date time.Time, accountID string, debit, credit int64) domain.PostedLine {
	return domain.PostedLine{
		EntryID:     uuid.NewString(),
		EntryNumber: entryNumber,
		EntryDate:   date,
		LineNumber:  1,
		AccountID:   accountID,
		Debit:       decimal.NewFromInt(debit),
		Credit:      decimal.NewFromInt(credit),
	}
}

func (suite *ReportingServiceTestSuite) TestAccountBalanceAsOf_SignedByAccountType() {
	ctx := context.Background()
	asOf := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.loan.AccountID).Return(&suite.loan, nil).Once()
	suite.mockReportingRepo.On("FindPostedLines", ctx, suite.organizationID, []string{suite.loan.AccountID}, (*time.Time)(nil), &asOf).
		Return([]domain.PostedLine{
			line("GEN-2501-00001", asOf, suite.loan.AccountID, 0, 5000),
			line("GEN-2502-00002", asOf, suite.loan.AccountID, 1200, 0),
		}, nil).Once()

	balance, err := suite.service.AccountBalanceAsOf(ctx, suite.organizationID, suite.loan.AccountID, asOf, suite.userID)

	suite.Require().NoError(err)
	// Liabilities are credit-normal: 5000 credit less 1200 debit.
	suite.True(balance.Equal(decimal.NewFromInt(3800)))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_TotalsAndPercentages() {
	ctx := context.Background()
	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)

	suite.expectChart(ctx)
	suite.mockReportingRepo.On("FindPostedLines", ctx, suite.organizationID, []string(nil), &from, &to).
		Return([]domain.PostedLine{
			line("SAL-2501-00001", from, suite.revenue.AccountID, 0, 1000),
			line("SAL-2501-00001", from, suite.receivable.AccountID, 1000, 0),
			line("GEN-2501-00002", from, suite.rent.AccountID, 400, 0),
			line("GEN-2501-00002", from, suite.cash.AccountID, 0, 400),
		}, nil).Once()

	stmt, err := suite.service.IncomeStatement(ctx, suite.organizationID, from, to, dto.IncomeStatementOptions{
		ShowPercentages: true,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(stmt.TotalRevenue.Equal(decimal.NewFromInt(1000)))
	suite.True(stmt.TotalExpenses.Equal(decimal.NewFromInt(400)))
	suite.True(stmt.NetIncome.Equal(decimal.NewFromInt(600)))
	suite.Require().Len(stmt.Expenses, 1)
	suite.True(stmt.Expenses[0].PercentOfRevenue.Equal(decimal.NewFromInt(40)))
	suite.True(stmt.NetIncomePercent.Equal(decimal.NewFromInt(60)))
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_ZeroRevenuePercentagesStayZero() {
	ctx := context.Background()
	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)

	suite.expectChart(ctx)
	suite.mockReportingRepo.On("FindPostedLines", ctx, suite.organizationID, []string(nil), &from, &to).
		Return([]domain.PostedLine{
			line("GEN-2501-00001", from, suite.rent.AccountID, 400, 0),
			line("GEN-2501-00001", from, suite.cash.AccountID, 0, 400),
		}, nil).Once()

	stmt, err := suite.service.IncomeStatement(ctx, suite.organizationID, from, to, dto.IncomeStatementOptions{
		ShowPercentages: true,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(stmt.TotalRevenue.IsZero())
	suite.Require().Len(stmt.Expenses, 1)
	suite.True(stmt.Expenses[0].PercentOfRevenue.IsZero())
	suite.True(stmt.NetIncomePercent.IsZero())
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_PriorPeriodComparison() {
	ctx := context.Background()
	from := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)
	priorFrom := time.Date(2025, time.January, 4, 0, 0, 0, 0, time.UTC)
	priorTo := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.organizationID, true).Return(suite.chart(), nil).Twice()
	suite.mockReportingRepo.On("FindPostedLines", ctx, suite.organizationID, []string(nil), &from, &to).
		Return([]domain.PostedLine{
			line("SAL-2502-00003", from, suite.revenue.AccountID, 0, 900),
			line("SAL-2502-00003", from, suite.cash.AccountID, 900, 0),
		}, nil).Once()
	suite.mockReportingRepo.On("FindPostedLines", ctx, suite.organizationID, []string(nil), &priorFrom, &priorTo).
		Return([]domain.PostedLine{
			line("SAL-2501-00001", priorFrom, suite.revenue.AccountID, 0, 600),
			line("SAL-2501-00001", priorFrom, suite.cash.AccountID, 600, 0),
		}, nil).Once()

	stmt, err := suite.service.IncomeStatement(ctx, suite.organizationID, from, to, dto.IncomeStatementOptions{
		ComparePriorPeriod: true,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(stmt.PriorPeriod)
	suite.True(stmt.PriorPeriod.NetIncome.Equal(decimal.NewFromInt(600)))
	suite.True(stmt.PriorPeriodChange.Equal(decimal.NewFromInt(300)))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_EndBeforeStartRejected() {
	ctx := context.Background()
	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	stmt, err := suite.service.IncomeStatement(ctx, suite.organizationID, from, from.AddDate(0, 0, -5), dto.IncomeStatementOptions{}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(stmt)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_ClosesThroughRetainedEarnings() {
	ctx := context.Background()
	asOf := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	// Capital contribution 1000, a 1000 sale collected in cash, and 400 rent
	// paid: assets 1600, liabilities 0, equity 1000 + retained earnings 600.
	suite.expectChart(ctx)
	suite.mockReportingRepo.On("FindPostedLines", ctx, suite.organizationID, []string(nil), (*time.Time)(nil), &asOf).
		Return([]domain.PostedLine{
			line("GEN-2501-00001", asOf, suite.cash.AccountID, 1000, 0),
			line("GEN-2501-00001", asOf, suite.capital.AccountID, 0, 1000),
			line("SAL-2502-00002", asOf, suite.cash.AccountID, 1000, 0),
			line("SAL-2502-00002", asOf, suite.revenue.AccountID, 0, 1000),
			line("GEN-2503-00003", asOf, suite.rent.AccountID, 400, 0),
			line("GEN-2503-00003", asOf, suite.cash.AccountID, 0, 400),
		}, nil).Once()

	sheet, err := suite.service.BalanceSheet(ctx, suite.organizationID, asOf, dto.BalanceSheetOptions{}, suite.userID)

	suite.Require().NoError(err)
	suite.True(sheet.TotalAssets.Equal(decimal.NewFromInt(1600)))
	suite.True(sheet.TotalLiabilities.IsZero())
	suite.True(sheet.RetainedEarnings.Equal(decimal.NewFromInt(600)))
	suite.True(sheet.TotalEquity.Equal(decimal.NewFromInt(1600)))
	suite.True(sheet.Balanced)
	suite.True(sheet.Difference.IsZero())
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_SurfacesImbalance() {
	ctx := context.Background()
	asOf := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	// A lone unpaired debit cannot happen through the posting engine; the
	// report must still expose it rather than mask it.
	suite.expectChart(ctx)
	suite.mockReportingRepo.On("FindPostedLines", ctx, suite.organizationID, []string(nil), (*time.Time)(nil), &asOf).
		Return([]domain.PostedLine{
			line("GEN-2501-00001", asOf, suite.cash.AccountID, 250, 0),
		}, nil).Once()

	sheet, err := suite.service.BalanceSheet(ctx, suite.organizationID, asOf, dto.BalanceSheetOptions{}, suite.userID)

	suite.Require().NoError(err)
	suite.False(sheet.Balanced)
	suite.True(sheet.Difference.Equal(decimal.NewFromInt(250)))
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_NetsIntoNormalSides() {
	ctx := context.Background()
	asOf := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	suite.expectChart(ctx)
	suite.mockReportingRepo.On("FindPostedLines", ctx, suite.organizationID, []string(nil), (*time.Time)(nil), &asOf).
		Return([]domain.PostedLine{
			line("SAL-2501-00001", asOf, suite.cash.AccountID, 1000, 0),
			line("SAL-2501-00001", asOf, suite.revenue.AccountID, 0, 1000),
			line("GEN-2502-00002", asOf, suite.rent.AccountID, 400, 0),
			line("GEN-2502-00002", asOf, suite.cash.AccountID, 0, 400),
		}, nil).Once()

	tb, err := suite.service.TrialBalance(ctx, suite.organizationID, asOf, dto.TrialBalanceOptions{}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(tb.Rows, 3)
	// Rows are ordered by account number: cash, revenue, rent.
	suite.Equal("1000", tb.Rows[0].AccountNumber)
	suite.True(tb.Rows[0].NetDebit.Equal(decimal.NewFromInt(600)))
	suite.Equal("4000", tb.Rows[1].AccountNumber)
	suite.True(tb.Rows[1].NetCredit.Equal(decimal.NewFromInt(1000)))
	suite.Equal("5000", tb.Rows[2].AccountNumber)
	suite.True(tb.Rows[2].NetDebit.Equal(decimal.NewFromInt(400)))
	suite.True(tb.TotalDebit.Equal(tb.TotalCredit))
	suite.True(tb.Balanced)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_RepeatedRunOverUnchangedLedgerIsIdentical() {
	ctx := context.Background()
	asOf := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	lines := []domain.PostedLine{
		line("SAL-2501-00001", asOf, suite.cash.AccountID, 1000, 0),
		line("SAL-2501-00001", asOf, suite.revenue.AccountID, 0, 1000),
		line("GEN-2502-00002", asOf, suite.rent.AccountID, 400, 0),
		line("GEN-2502-00002", asOf, suite.cash.AccountID, 0, 400),
	}

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.organizationID, true).Return(suite.chart(), nil).Twice()
	suite.mockReportingRepo.On("FindPostedLines", ctx, suite.organizationID, []string(nil), (*time.Time)(nil), &asOf).
		Return(lines, nil).Twice()

	first, err := suite.service.TrialBalance(ctx, suite.organizationID, asOf, dto.TrialBalanceOptions{}, suite.userID)
	suite.Require().NoError(err)
	second, err := suite.service.TrialBalance(ctx, suite.organizationID, asOf, dto.TrialBalanceOptions{}, suite.userID)
	suite.Require().NoError(err)

	suite.Equal(first, second)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_RepeatedRunOverUnchangedLedgerIsIdentical() {
	ctx := context.Background()
	asOf := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	lines := []domain.PostedLine{
		line("SAL-2501-00001", asOf, suite.cash.AccountID, 1600, 0),
		line("SAL-2501-00001", asOf, suite.capital.AccountID, 0, 1000),
		line("SAL-2501-00001", asOf, suite.revenue.AccountID, 0, 600),
	}

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.organizationID, true).Return(suite.chart(), nil).Twice()
	suite.mockReportingRepo.On("FindPostedLines", ctx, suite.organizationID, []string(nil), (*time.Time)(nil), &asOf).
		Return(lines, nil).Twice()

	first, err := suite.service.BalanceSheet(ctx, suite.organizationID, asOf, dto.BalanceSheetOptions{}, suite.userID)
	suite.Require().NoError(err)
	second, err := suite.service.BalanceSheet(ctx, suite.organizationID, asOf, dto.BalanceSheetOptions{}, suite.userID)
	suite.Require().NoError(err)

	suite.Equal(first, second)
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_RunningBalanceFromOpening() {
	ctx := context.Background()
	from := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)
	accountIDs := []string{suite.cash.AccountID}

	suite.expectChart(ctx)
	suite.mockReportingRepo.On("FindPostedLines", ctx, suite.organizationID, accountIDs, (*time.Time)(nil), mock.AnythingOfType("*time.Time")).
		Return([]domain.PostedLine{
			line("GEN-2501-00001", from.AddDate(0, -1, 0), suite.cash.AccountID, 500, 0),
		}, nil).Once()
	suite.mockReportingRepo.On("FindPostedLines", ctx, suite.organizationID, accountIDs, &from, &to).
		Return([]domain.PostedLine{
			line("SAL-2502-00002", from, suite.cash.AccountID, 300, 0),
			line("GEN-2502-00003", from.AddDate(0, 0, 10), suite.cash.AccountID, 0, 120),
		}, nil).Once()

	gl, err := suite.service.GeneralLedger(ctx, suite.organizationID, from, to, accountIDs, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(gl.Accounts, 1)
	acct := gl.Accounts[0]
	suite.True(acct.BeginningBalance.Equal(decimal.NewFromInt(500)))
	suite.Require().Len(acct.Lines, 2)
	suite.True(acct.Lines[0].RunningBalance.Equal(decimal.NewFromInt(800)))
	suite.True(acct.Lines[1].RunningBalance.Equal(decimal.NewFromInt(680)))
	suite.True(acct.EndingBalance.Equal(decimal.NewFromInt(680)))
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_UnknownAccountRejected() {
	ctx := context.Background()
	from := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)

	suite.expectChart(ctx)

	gl, err := suite.service.GeneralLedger(ctx, suite.organizationID, from, to, []string{uuid.NewString()}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(gl)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReportingServiceTestSuite) TestCashFlowStatement_ClassifiesAndReconciles() {
	ctx := context.Background()
	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)

	saleEntry := uuid.NewString()
	loanEntry := uuid.NewString()

	opening := []domain.PostedLine{
		line("GEN-2501-00001", from.AddDate(0, -2, 0), suite.cash.AccountID, 1000, 0),
	}
	period := []domain.PostedLine{
		// Cash sale: operating inflow of 500.
		{EntryID: saleEntry, EntryNumber: "SAL-2503-00002", EntryDate: from, LineNumber: 1, AccountID: suite.cash.AccountID, Debit: decimal.NewFromInt(500)},
		{EntryID: saleEntry, EntryNumber: "SAL-2503-00002", EntryDate: from, LineNumber: 2, AccountID: suite.revenue.AccountID, Credit: decimal.NewFromInt(500)},
		// Loan proceeds: financing inflow of 2000.
		{EntryID: loanEntry, EntryNumber: "GEN-2503-00003", EntryDate: to, LineNumber: 1, AccountID: suite.cash.AccountID, Debit: decimal.NewFromInt(2000)},
		{EntryID: loanEntry, EntryNumber: "GEN-2503-00003", EntryDate: to, LineNumber: 2, AccountID: suite.loan.AccountID, Credit: decimal.NewFromInt(2000)},
	}

	suite.expectChart(ctx)
	suite.mockReportingRepo.On("FindPostedLines", ctx, suite.organizationID, mock.AnythingOfType("[]string"), (*time.Time)(nil), mock.AnythingOfType("*time.Time")).
		Return(opening, nil).Once()
	suite.mockReportingRepo.On("FindPostedLines", ctx, suite.organizationID, []string(nil), &from, &to).
		Return(period, nil).Once()

	cf, err := suite.service.CashFlowStatement(ctx, suite.organizationID, from, to, dto.CashFlowOptions{}, suite.userID)

	suite.Require().NoError(err)
	suite.True(cf.BeginningCash.Equal(decimal.NewFromInt(1000)))
	suite.True(cf.NetChange.Equal(decimal.NewFromInt(2500)))
	suite.True(cf.EndingCash.Equal(decimal.NewFromInt(3500)))
	suite.True(cf.Operating.Total.Equal(decimal.NewFromInt(500)))
	suite.True(cf.Financing.Total.Equal(decimal.NewFromInt(2000)))
	suite.True(cf.Investing.Total.IsZero())
	suite.True(cf.Reconciliation.Difference.IsZero())
	suite.True(cf.Reconciliation.ClassifiedTotal.Equal(cf.Reconciliation.NetChangeInCash))
}

func (suite *ReportingServiceTestSuite) TestCashFlowStatement_EntrySpanningTwoBucketsSumsExactly() {
	ctx := context.Background()
	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)

	entryID := uuid.NewString()
	// Single entry whose counterpart lines fall into two buckets: cash
	// receives 1500, split between a sale and loan proceeds.
	period := []domain.PostedLine{
		{EntryID: entryID, EntryNumber: "GEN-2503-00004", EntryDate: from, LineNumber: 1, AccountID: suite.cash.AccountID, Debit: decimal.NewFromInt(1500)},
		{EntryID: entryID, EntryNumber: "GEN-2503-00004", EntryDate: from, LineNumber: 2, AccountID: suite.revenue.AccountID, Credit: decimal.NewFromInt(900)},
		{EntryID: entryID, EntryNumber: "GEN-2503-00004", EntryDate: from, LineNumber: 3, AccountID: suite.loan.AccountID, Credit: decimal.NewFromInt(600)},
	}

	suite.expectChart(ctx)
	suite.mockReportingRepo.On("FindPostedLines", ctx, suite.organizationID, mock.AnythingOfType("[]string"), (*time.Time)(nil), mock.AnythingOfType("*time.Time")).
		Return([]domain.PostedLine{}, nil).Once()
	suite.mockReportingRepo.On("FindPostedLines", ctx, suite.organizationID, []string(nil), &from, &to).
		Return(period, nil).Once()

	cf, err := suite.service.CashFlowStatement(ctx, suite.organizationID, from, to, dto.CashFlowOptions{}, suite.userID)

	suite.Require().NoError(err)
	suite.True(cf.NetChange.Equal(decimal.NewFromInt(1500)))
	suite.True(cf.Operating.Total.Equal(decimal.NewFromInt(900)))
	suite.True(cf.Financing.Total.Equal(decimal.NewFromInt(600)))
	attributed := cf.Operating.Total.Add(cf.Investing.Total).Add(cf.Financing.Total)
	suite.True(attributed.Equal(cf.NetChange))
	suite.True(cf.Reconciliation.Difference.IsZero())
}

func (suite *ReportingServiceTestSuite) TestCashFlowStatement_NonAssetCashAccountRejected() {
	ctx := context.Background()
	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)

	suite.expectChart(ctx)

	cf, err := suite.service.CashFlowStatement(ctx, suite.organizationID, from, to, dto.CashFlowOptions{
		CashAccountIDs: []string{suite.revenue.AccountID},
	}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(cf)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
