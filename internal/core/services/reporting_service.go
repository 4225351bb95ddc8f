package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stabulum/stabulum/internal/apperrors"
	"github.com/stabulum/stabulum/internal/core/domain"
	portsrepo "github.com/stabulum/stabulum/internal/core/ports/repositories"
	portssvc "github.com/stabulum/stabulum/internal/core/ports/services"
	"github.com/stabulum/stabulum/internal/dto"
	"github.com/stabulum/stabulum/internal/utils/accounting"
)

var oneHundred = decimal.NewFromInt(100)

// reportingService implements the reporting engine. Every figure is
// recomputed from posted journal-line history; the cached account balances
// are never read here.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepository
	classifier    CashFlowClassifier
}

// ReportingServiceOption is a functional option for configuring the
// reporting service.
type ReportingServiceOption func(*reportingService)

// WithReportingAuthorizer sets the organization authorizer.
func WithReportingAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.Authorizer = authorizer
	}
}

// WithCashFlowClassifier replaces the default cash flow classification table.
func WithCashFlowClassifier(classifier CashFlowClassifier) ReportingServiceOption {
	return func(s *reportingService) {
		s.classifier = classifier
	}
}

// NewReportingService creates a new reporting engine service.
func NewReportingService(
	reportingRepo portsrepo.ReportingRepository,
	accountRepo portsrepo.AccountRepository,
	options ...ReportingServiceOption,
) portssvc.ReportingSvcFacade {
	svc := &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
		classifier:    NewDefaultCashFlowClassifier(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// chart loads the organization's full chart of accounts, archived included,
// keyed by account ID. Archived accounts keep their history visible in
// reports.
func (s *reportingService) chart(ctx context.Context, organizationID string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, organizationID, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to load chart of accounts",
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	byID := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a
	}
	return byID, nil
}

// accountTotals holds one account's raw debit and credit sums.
type accountTotals struct {
	debit  decimal.Decimal
	credit decimal.Decimal
}

// sumByAccount folds posted lines into per-account debit and credit totals.
func sumByAccount(lines []domain.PostedLine) map[string]accountTotals {
	totals := make(map[string]accountTotals)
	for _, line := range lines {
		t := totals[line.AccountID]
		t.debit = t.debit.Add(line.Debit)
		t.credit = t.credit.Add(line.Credit)
		totals[line.AccountID] = t
	}
	return totals
}

// AccountBalanceAsOf recomputes one account's signed balance from posted
// line history through asOf, independently of the cached balance.
func (s *reportingService) AccountBalanceAsOf(ctx context.Context, organizationID string, accountID string, asOf time.Time, userID string) (decimal.Decimal, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return decimal.Zero, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if account.OrganizationID != organizationID {
		return decimal.Zero, apperrors.ErrNotFound
	}

	lines, err := s.reportingRepo.FindPostedLines(ctx, organizationID, []string{accountID}, nil, &asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to load posted lines", slog.String("account_id", accountID))
		return decimal.Zero, fmt.Errorf("failed to load posted lines: %w", err)
	}

	totals := sumByAccount(lines)[accountID]
	return accounting.SignedNet(account.AccountType, totals.debit, totals.credit), nil
}

// groupKey resolves the grouping bucket for an account under the requested
// granularity.
func groupKey(account domain.Account, groupBy string) (key, label string) {
	switch groupBy {
	case "subtype":
		key = account.SubType
		if key == "" {
			key = "uncategorized"
		}
		return key, key
	case "type":
		return string(account.AccountType), string(account.AccountType)
	default:
		return account.AccountID, account.AccountNumber + " " + account.Name
	}
}

// buildRows aggregates per-account signed activity into report rows of one
// account type, sorted by label for stable output.
func buildRows(totals map[string]accountTotals, chart map[string]domain.Account, accountType domain.AccountType, groupBy string) ([]domain.ReportRow, decimal.Decimal) {
	byKey := make(map[string]*domain.ReportRow)
	total := decimal.Zero
	for accountID, t := range totals {
		account, ok := chart[accountID]
		if !ok || account.AccountType != accountType {
			continue
		}
		amount := accounting.SignedNet(account.AccountType, t.debit, t.credit)
		if amount.IsZero() {
			continue
		}
		key, label := groupKey(account, groupBy)
		row, exists := byKey[key]
		if !exists {
			row = &domain.ReportRow{Key: key, Label: label, AccountType: accountType}
			byKey[key] = row
		}
		row.Amount = row.Amount.Add(amount)
		total = total.Add(amount)
	}

	rows := make([]domain.ReportRow, 0, len(byKey))
	for _, row := range byKey {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Label != rows[j].Label {
			return rows[i].Label < rows[j].Label
		}
		return rows[i].Key < rows[j].Key
	})
	return rows, total
}

// percentOf returns part/whole as a percentage, zero when whole is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(oneHundred).Round(2)
}

// IncomeStatement reports revenue and expense activity over [from, to].
func (s *reportingService) IncomeStatement(ctx context.Context, organizationID string, from, to time.Time, opts dto.IncomeStatementOptions, userID string) (*domain.IncomeStatement, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: report period end precedes start", apperrors.ErrValidation)
	}
	return s.incomeStatement(ctx, organizationID, from, to, opts)
}

func (s *reportingService) incomeStatement(ctx context.Context, organizationID string, from, to time.Time, opts dto.IncomeStatementOptions) (*domain.IncomeStatement, error) {
	chart, err := s.chart(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	lines, err := s.reportingRepo.FindPostedLines(ctx, organizationID, nil, &from, &to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load posted lines for income statement")
		return nil, fmt.Errorf("failed to load posted lines: %w", err)
	}

	totals := sumByAccount(lines)
	revenueRows, totalRevenue := buildRows(totals, chart, domain.Revenue, opts.GroupBy)
	expenseRows, totalExpenses := buildRows(totals, chart, domain.Expense, opts.GroupBy)

	stmt := &domain.IncomeStatement{
		OrganizationID: organizationID,
		From:           from,
		To:             to,
		Revenue:        revenueRows,
		Expenses:       expenseRows,
		TotalRevenue:   totalRevenue,
		TotalExpenses:  totalExpenses,
		NetIncome:      totalRevenue.Sub(totalExpenses),
	}

	if opts.ShowPercentages {
		for i := range stmt.Expenses {
			stmt.Expenses[i].PercentOfRevenue = percentOf(stmt.Expenses[i].Amount, totalRevenue)
		}
		stmt.NetIncomePercent = percentOf(stmt.NetIncome, totalRevenue)
	}

	if opts.ComparePriorPeriod {
		days := int(to.Sub(from).Hours()/24) + 1
		priorEnd := from.AddDate(0, 0, -1)
		priorStart := priorEnd.AddDate(0, 0, -(days - 1))
		priorOpts := opts
		priorOpts.ComparePriorPeriod = false
		prior, err := s.incomeStatement(ctx, organizationID, priorStart, priorEnd, priorOpts)
		if err != nil {
			return nil, err
		}
		stmt.PriorPeriod = prior
		stmt.PriorPeriodChange = stmt.NetIncome.Sub(prior.NetIncome)
	}
	return stmt, nil
}

// BalanceSheet reports asset, liability, and equity positions as of a date.
// Cumulative net income since inception appears as retained earnings within
// equity so the accounting equation can actually close.
func (s *reportingService) BalanceSheet(ctx context.Context, organizationID string, asOf time.Time, opts dto.BalanceSheetOptions, userID string) (*domain.BalanceSheet, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	chart, err := s.chart(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	lines, err := s.reportingRepo.FindPostedLines(ctx, organizationID, nil, nil, &asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to load posted lines for balance sheet")
		return nil, fmt.Errorf("failed to load posted lines: %w", err)
	}

	totals := sumByAccount(lines)
	assetRows, totalAssets := buildRows(totals, chart, domain.Asset, opts.GroupBy)
	liabilityRows, totalLiabilities := buildRows(totals, chart, domain.Liability, opts.GroupBy)
	equityRows, contributedEquity := buildRows(totals, chart, domain.Equity, opts.GroupBy)

	_, totalRevenue := buildRows(totals, chart, domain.Revenue, dto.GroupByType)
	_, totalExpenses := buildRows(totals, chart, domain.Expense, dto.GroupByType)
	retainedEarnings := totalRevenue.Sub(totalExpenses)

	totalEquity := contributedEquity.Add(retainedEarnings)
	difference := totalAssets.Sub(totalLiabilities.Add(totalEquity))

	sheet := &domain.BalanceSheet{
		OrganizationID:   organizationID,
		AsOf:             asOf,
		Assets:           assetRows,
		Liabilities:      liabilityRows,
		Equity:           equityRows,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		TotalEquity:      totalEquity,
		RetainedEarnings: retainedEarnings,
		Balanced:         difference.Abs().LessThanOrEqual(domain.PostingTolerance),
		Difference:       difference,
	}
	if !sheet.Balanced {
		s.GetLogger(ctx).Warn("Balance sheet does not balance",
			slog.String("organization_id", organizationID),
			slog.String("difference", difference.String()))
	}
	return sheet, nil
}

// TrialBalance nets every account's activity into its normal-balance side
// and proves total debits equal total credits.
func (s *reportingService) TrialBalance(ctx context.Context, organizationID string, asOf time.Time, opts dto.TrialBalanceOptions, userID string) (*domain.TrialBalance, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	chart, err := s.chart(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	lines, err := s.reportingRepo.FindPostedLines(ctx, organizationID, nil, nil, &asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to load posted lines for trial balance")
		return nil, fmt.Errorf("failed to load posted lines: %w", err)
	}

	totals := sumByAccount(lines)
	rows := make([]domain.TrialBalanceRow, 0, len(chart))
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, account := range chart {
		t := totals[account.AccountID]
		net := t.debit.Sub(t.credit)
		if net.IsZero() && !opts.IncludeZeroActivity {
			continue
		}
		row := domain.TrialBalanceRow{
			AccountID:     account.AccountID,
			AccountNumber: account.AccountNumber,
			AccountName:   account.Name,
			AccountType:   account.AccountType,
		}
		if net.IsPositive() {
			row.NetDebit = net
			totalDebit = totalDebit.Add(net)
		} else {
			row.NetCredit = net.Neg()
			totalCredit = totalCredit.Add(net.Neg())
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].AccountNumber < rows[j].AccountNumber
	})

	return &domain.TrialBalance{
		OrganizationID: organizationID,
		AsOf:           asOf,
		Rows:           rows,
		TotalDebit:     totalDebit,
		TotalCredit:    totalCredit,
		Balanced:       totalDebit.Sub(totalCredit).Abs().LessThanOrEqual(domain.PostingTolerance),
	}, nil
}

// GeneralLedger traces transaction-level activity per account over
// [from, to], with a beginning balance carried in from everything before the
// window.
func (s *reportingService) GeneralLedger(ctx context.Context, organizationID string, from, to time.Time, accountIDs []string, userID string) (*domain.GeneralLedger, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: report period end precedes start", apperrors.ErrValidation)
	}

	chart, err := s.chart(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	for _, id := range accountIDs {
		if _, ok := chart[id]; !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}

	// Entry dates are inclusive bounds; everything strictly before the
	// window forms the beginning balances.
	beforeFrom := from.Add(-time.Nanosecond)
	openingLines, err := s.reportingRepo.FindPostedLines(ctx, organizationID, accountIDs, nil, &beforeFrom)
	if err != nil {
		s.LogError(ctx, err, "Failed to load opening lines for general ledger")
		return nil, fmt.Errorf("failed to load posted lines: %w", err)
	}
	periodLines, err := s.reportingRepo.FindPostedLines(ctx, organizationID, accountIDs, &from, &to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load period lines for general ledger")
		return nil, fmt.Errorf("failed to load posted lines: %w", err)
	}

	openingTotals := sumByAccount(openingLines)

	linesByAccount := make(map[string][]domain.PostedLine)
	for _, line := range periodLines {
		linesByAccount[line.AccountID] = append(linesByAccount[line.AccountID], line)
	}

	// Accounts with either an opening position or period activity appear;
	// silent accounts are omitted unless explicitly requested.
	include := make(map[string]bool)
	if len(accountIDs) > 0 {
		for _, id := range accountIDs {
			include[id] = true
		}
	} else {
		for id := range openingTotals {
			include[id] = true
		}
		for id := range linesByAccount {
			include[id] = true
		}
	}

	accounts := make([]domain.GeneralLedgerAccount, 0, len(include))
	for id := range include {
		account, ok := chart[id]
		if !ok {
			continue
		}
		opening := openingTotals[id]
		beginning := accounting.SignedNet(account.AccountType, opening.debit, opening.credit)

		running := beginning
		glLines := make([]domain.GeneralLedgerLine, 0, len(linesByAccount[id]))
		for _, line := range linesByAccount[id] {
			signed := accounting.SignedNet(account.AccountType, line.Debit, line.Credit)
			running = running.Add(signed)
			glLines = append(glLines, domain.GeneralLedgerLine{
				EntryID:        line.EntryID,
				EntryNumber:    line.EntryNumber,
				EntryDate:      line.EntryDate,
				LineNumber:     line.LineNumber,
				Description:    line.EntryDescription,
				Debit:          line.Debit,
				Credit:         line.Credit,
				RunningBalance: running,
			})
		}

		accounts = append(accounts, domain.GeneralLedgerAccount{
			AccountID:        account.AccountID,
			AccountNumber:    account.AccountNumber,
			AccountName:      account.Name,
			AccountType:      account.AccountType,
			BeginningBalance: beginning,
			EndingBalance:    running,
			Lines:            glLines,
		})
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].AccountNumber < accounts[j].AccountNumber
	})

	return &domain.GeneralLedger{
		OrganizationID: organizationID,
		From:           from,
		To:             to,
		Accounts:       accounts,
	}, nil
}

// CashFlowStatement derives sources and uses of cash over [from, to]. For
// every posted entry that touches a cash account, the counterpart lines are
// classified into operating, investing, or financing; their cash effect is
// credit minus debit, which sums exactly to the entry's change in cash.
func (s *reportingService) CashFlowStatement(ctx context.Context, organizationID string, from, to time.Time, opts dto.CashFlowOptions, userID string) (*domain.CashFlowStatement, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: report period end precedes start", apperrors.ErrValidation)
	}

	chart, err := s.chart(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	cashIDs := make(map[string]bool)
	if len(opts.CashAccountIDs) > 0 {
		for _, id := range opts.CashAccountIDs {
			account, ok := chart[id]
			if !ok {
				return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
			}
			if account.AccountType != domain.Asset {
				return nil, fmt.Errorf("%w: account %s is not an asset account", apperrors.ErrValidation, account.AccountNumber)
			}
			cashIDs[id] = true
		}
	} else {
		for id, account := range chart {
			if isCashAccount(account) {
				cashIDs[id] = true
			}
		}
	}

	beginningCash := decimal.Zero
	if len(cashIDs) > 0 {
		beforeFrom := from.Add(-time.Nanosecond)
		openingLines, err := s.reportingRepo.FindPostedLines(ctx, organizationID, keys(cashIDs), nil, &beforeFrom)
		if err != nil {
			s.LogError(ctx, err, "Failed to load opening cash lines")
			return nil, fmt.Errorf("failed to load posted lines: %w", err)
		}
		for _, t := range sumByAccount(openingLines) {
			beginningCash = beginningCash.Add(t.debit.Sub(t.credit))
		}
	}

	periodLines, err := s.reportingRepo.FindPostedLines(ctx, organizationID, nil, &from, &to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load period lines for cash flow")
		return nil, fmt.Errorf("failed to load posted lines: %w", err)
	}

	linesByEntry := make(map[string][]domain.PostedLine)
	entryOrder := make([]string, 0)
	for _, line := range periodLines {
		if _, seen := linesByEntry[line.EntryID]; !seen {
			entryOrder = append(entryOrder, line.EntryID)
		}
		linesByEntry[line.EntryID] = append(linesByEntry[line.EntryID], line)
	}

	classifier := withOverrides(s.classifier, opts.ClassificationOverrides)
	sections := map[domain.CashFlowCategory]map[string]*domain.ReportRow{
		domain.CashFlowOperating: {},
		domain.CashFlowInvesting: {},
		domain.CashFlowFinancing: {},
	}
	netChange := decimal.Zero

	for _, entryID := range entryOrder {
		entryLines := linesByEntry[entryID]
		touchesCash := false
		for _, line := range entryLines {
			if cashIDs[line.AccountID] {
				touchesCash = true
				break
			}
		}
		if !touchesCash {
			continue
		}

		for _, line := range entryLines {
			if cashIDs[line.AccountID] {
				netChange = netChange.Add(line.Debit.Sub(line.Credit))
				continue
			}
			account, ok := chart[line.AccountID]
			if !ok {
				continue
			}
			// A credit on a counterpart account is a cash inflow, a debit a
			// cash outflow. Summed across an entry's counterpart lines this
			// reproduces the entry's cash delta exactly.
			effect := line.Credit.Sub(line.Debit)
			category := classifier.Classify(account)
			rows := sections[category]
			row, exists := rows[account.AccountID]
			if !exists {
				row = &domain.ReportRow{
					Key:         account.AccountID,
					Label:       account.AccountNumber + " " + account.Name,
					AccountType: account.AccountType,
				}
				rows[account.AccountID] = row
			}
			row.Amount = row.Amount.Add(effect)
		}
	}

	stmt := &domain.CashFlowStatement{
		OrganizationID: organizationID,
		From:           from,
		To:             to,
		BeginningCash:  beginningCash,
		EndingCash:     beginningCash.Add(netChange),
		NetChange:      netChange,
		Operating:      buildCashFlowSection(sections[domain.CashFlowOperating]),
		Investing:      buildCashFlowSection(sections[domain.CashFlowInvesting]),
		Financing:      buildCashFlowSection(sections[domain.CashFlowFinancing]),
	}
	classified := stmt.Operating.Total.Add(stmt.Investing.Total).Add(stmt.Financing.Total)
	stmt.Reconciliation = domain.CashFlowReconciliation{
		ClassifiedTotal: classified,
		NetChangeInCash: netChange,
		Difference:      classified.Sub(netChange),
	}
	if !stmt.Reconciliation.Difference.IsZero() {
		s.GetLogger(ctx).Warn("Cash flow statement does not reconcile",
			slog.String("organization_id", organizationID),
			slog.String("difference", stmt.Reconciliation.Difference.String()))
	}
	return stmt, nil
}

func buildCashFlowSection(rows map[string]*domain.ReportRow) domain.CashFlowSection {
	section := domain.CashFlowSection{Rows: make([]domain.ReportRow, 0, len(rows))}
	for _, row := range rows {
		section.Rows = append(section.Rows, *row)
		section.Total = section.Total.Add(row.Amount)
	}
	sort.Slice(section.Rows, func(i, j int) bool {
		return section.Rows[i].Label < section.Rows[j].Label
	})
	return section
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
