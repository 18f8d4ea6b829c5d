package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/platform/metrics"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// openEnded stands in for "no upper bound" on statement date ranges.
var openEnded = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	classifier    *domain.Classifier
	timeout       time.Duration
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingClassifier sets the group classification table used for report buckets.
func WithReportingClassifier(c *domain.Classifier) ReportingServiceOption {
	return func(s *reportingService) {
		s.classifier = c
	}
}

// WithReportingMetrics sets the metrics sink.
func WithReportingMetrics(m *metrics.Metrics) ReportingServiceOption {
	return func(s *reportingService) {
		s.Metrics = m
	}
}

// WithReportTimeout bounds how long a report's snapshot transaction may stay open.
func WithReportTimeout(d time.Duration) ReportingServiceOption {
	return func(s *reportingService) {
		s.timeout = d
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	if svc.classifier == nil {
		svc.classifier = domain.NewClassifier()
	}
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// snapshot runs fn inside one read-only, repeatable-read transaction.
func (s *reportingService) snapshot(ctx context.Context, report string, fn func(ctx context.Context, tx pgx.Tx) error) error {
	start := time.Now()
	defer func() { s.Metrics.RecordReportDuration(report, time.Since(start)) }()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	tx, err := s.reportingRepo.BeginSnapshot(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.reportingRepo.Rollback(ctx, tx) }()

	return fn(ctx, tx)
}

// TrialBalance lists every active account with its opening balance at from, the period
// movement and its closing balance at to.
func (s *reportingService) TrialBalance(ctx context.Context, companyID string, from *time.Time, to time.Time) (*domain.TrialBalance, error) {
	if from != nil && from.After(to) {
		return nil, fmt.Errorf("%w: fromDate is after toDate", apperrors.ErrValidation)
	}

	var activity []domain.AccountActivity
	err := s.snapshot(ctx, "trial_balance", func(ctx context.Context, tx pgx.Tx) error {
		var err error
		activity, err = s.reportingRepo.AccountActivityInTx(ctx, tx, companyID, portsrepo.ActivityFilter{From: from, To: to})
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("company_id", companyID),
			slog.String("to", to.Format(time.DateOnly)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	tb := &domain.TrialBalance{
		FromDate: from,
		ToDate:   to,
		Rows:     make([]domain.TrialBalanceRow, 0, len(activity)),
		Totals: domain.TrialBalanceTotals{
			OpeningDebit:  decimal.Zero,
			OpeningCredit: decimal.Zero,
			PeriodDebit:   decimal.Zero,
			PeriodCredit:  decimal.Zero,
			ClosingDebit:  decimal.Zero,
			ClosingCredit: decimal.Zero,
		},
	}
	for _, a := range activity {
		nature := a.Account.Nature
		openingSigned := accounting.SignedBalance(nature, a.Account.OpeningBalance, a.PriorDebits, a.PriorCredits)
		row := domain.TrialBalanceRow{
			AccountID:    a.Account.AccountID,
			AccountCode:  a.Account.Code,
			AccountName:  a.Account.Name,
			Group:        a.Account.Group,
			Nature:       nature,
			Opening:      accounting.Present(nature, openingSigned),
			PeriodDebit:  a.PeriodDebits,
			PeriodCredit: a.PeriodCredits,
			Closing:      accounting.ClosingBalance(nature, openingSigned, a.PeriodDebits, a.PeriodCredits),
		}
		tb.Rows = append(tb.Rows, row)

		tb.Totals.OpeningDebit = tb.Totals.OpeningDebit.Add(row.Opening.DebitAmount())
		tb.Totals.OpeningCredit = tb.Totals.OpeningCredit.Add(row.Opening.CreditAmount())
		tb.Totals.PeriodDebit = tb.Totals.PeriodDebit.Add(row.PeriodDebit)
		tb.Totals.PeriodCredit = tb.Totals.PeriodCredit.Add(row.PeriodCredit)
		tb.Totals.ClosingDebit = tb.Totals.ClosingDebit.Add(row.Closing.DebitAmount())
		tb.Totals.ClosingCredit = tb.Totals.ClosingCredit.Add(row.Closing.CreditAmount())
	}
	tb.Checks = domain.TrialBalanceChecks{
		OpeningBalanced: tb.Totals.OpeningDebit.Equal(tb.Totals.OpeningCredit),
		PeriodBalanced:  tb.Totals.PeriodDebit.Equal(tb.Totals.PeriodCredit),
		ClosingBalanced: tb.Totals.ClosingDebit.Equal(tb.Totals.ClosingCredit),
	}

	if !tb.Checks.ClosingBalanced {
		s.LogInfo(ctx, "Trial balance does not close",
			slog.String("company_id", companyID),
			slog.String("closing_debit", tb.Totals.ClosingDebit.String()),
			slog.String("closing_credit", tb.Totals.ClosingCredit.String()))
	}
	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("company_id", companyID),
		slog.Int("row_count", len(tb.Rows)))
	return tb, nil
}

func newSection(c domain.ReportCategory) domain.ReportSection {
	return domain.ReportSection{Category: c, Accounts: []domain.AccountAmount{}, Total: decimal.Zero}
}

func amountOf(acc domain.Account, amount decimal.Decimal) domain.AccountAmount {
	return domain.AccountAmount{AccountID: acc.AccountID, Name: acc.Name, Group: acc.Group, Amount: amount}
}

func resultOf(net decimal.Decimal) domain.ProfitOrLoss {
	if net.IsNegative() {
		return domain.Loss
	}
	return domain.Profit
}

// ProfitAndLoss generates a profit and loss report for a specific period
func (s *reportingService) ProfitAndLoss(ctx context.Context, companyID string, from, to time.Time) (*domain.ProfitAndLoss, error) {
	if from.After(to) {
		return nil, fmt.Errorf("%w: fromDate is after toDate", apperrors.ErrValidation)
	}

	var activity []domain.AccountActivity
	err := s.snapshot(ctx, "profit_and_loss", func(ctx context.Context, tx pgx.Tx) error {
		var err error
		activity, err = s.reportingRepo.AccountActivityInTx(ctx, tx, companyID, portsrepo.ActivityFilter{
			From:    &from,
			To:      to,
			Natures: []domain.AccountNature{domain.Income, domain.Expense},
		})
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve profit and loss data",
			slog.String("company_id", companyID),
			slog.String("from", from.Format(time.DateOnly)),
			slog.String("to", to.Format(time.DateOnly)))
		return nil, fmt.Errorf("failed to retrieve profit and loss data: %w", err)
	}

	report := &domain.ProfitAndLoss{
		FromDate:         from,
		ToDate:           to,
		DirectIncome:     newSection(domain.CategoryDirectIncome),
		IndirectIncome:   newSection(domain.CategoryIndirectIncome),
		DirectExpenses:   newSection(domain.CategoryDirectExpenses),
		IndirectExpenses: newSection(domain.CategoryIndirectExpenses),
	}
	for _, a := range activity {
		var amount decimal.Decimal
		switch a.Account.Nature {
		case domain.Income:
			amount = a.PeriodCredits.Sub(a.PeriodDebits)
		case domain.Expense:
			amount = a.PeriodDebits.Sub(a.PeriodCredits)
		default:
			continue
		}
		if amount.IsZero() {
			continue
		}
		switch s.classifier.Category(a.Account.Group) {
		case domain.CategoryDirectIncome:
			report.DirectIncome.Add(amountOf(a.Account, amount))
		case domain.CategoryIndirectIncome:
			report.IndirectIncome.Add(amountOf(a.Account, amount))
		case domain.CategoryDirectExpenses:
			report.DirectExpenses.Add(amountOf(a.Account, amount))
		case domain.CategoryIndirectExpenses:
			report.IndirectExpenses.Add(amountOf(a.Account, amount))
		}
	}

	report.TotalIncome = report.DirectIncome.Total.Add(report.IndirectIncome.Total)
	report.TotalExpenses = report.DirectExpenses.Total.Add(report.IndirectExpenses.Total)
	report.GrossProfit = report.DirectIncome.Total.Sub(report.DirectExpenses.Total)
	report.NetProfitOrLoss = report.TotalIncome.Sub(report.TotalExpenses)
	report.Result = resultOf(report.NetProfitOrLoss)

	s.LogInfo(ctx, "Profit and loss report generated successfully",
		slog.String("company_id", companyID),
		slog.String("net", report.NetProfitOrLoss.String()),
		slog.String("result", string(report.Result)))
	return report, nil
}

// BalanceSheet generates a balance sheet report as of a specific date
func (s *reportingService) BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheet, error) {
	var activity []domain.AccountActivity
	err := s.snapshot(ctx, "balance_sheet", func(ctx context.Context, tx pgx.Tx) error {
		var err error
		activity, err = s.reportingRepo.AccountActivityInTx(ctx, tx, companyID, portsrepo.ActivityFilter{To: asOf})
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance sheet data",
			slog.String("company_id", companyID),
			slog.String("asOf", asOf.Format(time.DateOnly)))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	bs := &domain.BalanceSheet{
		AsOf:                asOf,
		FixedAssets:         newSection(domain.CategoryFixedAssets),
		CurrentAssets:       newSection(domain.CategoryCurrentAssets),
		Investments:         newSection(domain.CategoryInvestments),
		LoansAssets:         newSection(domain.CategoryLoansAssets),
		Capital:             newSection(domain.CategoryCapital),
		CurrentLiabilities:  newSection(domain.CategoryCurrentLiabilities),
		LongTermLiabilities: newSection(domain.CategoryLongTermLiabilities),
		Provisions:          newSection(domain.CategoryProvisions),
	}
	sections := map[domain.ReportCategory]*domain.ReportSection{
		domain.CategoryFixedAssets:         &bs.FixedAssets,
		domain.CategoryCurrentAssets:       &bs.CurrentAssets,
		domain.CategoryInvestments:         &bs.Investments,
		domain.CategoryLoansAssets:         &bs.LoansAssets,
		domain.CategoryCapital:             &bs.Capital,
		domain.CategoryCurrentLiabilities:  &bs.CurrentLiabilities,
		domain.CategoryLongTermLiabilities: &bs.LongTermLiabilities,
		domain.CategoryProvisions:          &bs.Provisions,
	}

	income, expenses := decimal.Zero, decimal.Zero
	for _, a := range activity {
		nature := a.Account.Nature
		signed := accounting.SignedBalance(nature, a.Account.OpeningBalance, a.PeriodDebits, a.PeriodCredits)
		switch nature {
		case domain.Income:
			income = income.Add(signed)
			continue
		case domain.Expense:
			expenses = expenses.Add(signed)
			continue
		}
		if signed.IsZero() {
			continue
		}
		section, ok := sections[s.classifier.Category(a.Account.Group)]
		if !ok {
			continue
		}
		section.Add(amountOf(a.Account, signed))
	}

	bs.TotalAssets = bs.FixedAssets.Total.Add(bs.CurrentAssets.Total).Add(bs.Investments.Total).Add(bs.LoansAssets.Total)
	bs.TotalLiabilities = bs.Capital.Total.Add(bs.CurrentLiabilities.Total).Add(bs.LongTermLiabilities.Total).Add(bs.Provisions.Total)
	bs.NetProfitOrLoss = income.Sub(expenses)
	bs.Result = resultOf(bs.NetProfitOrLoss)
	bs.Difference = bs.TotalAssets.Sub(bs.TotalLiabilities.Add(bs.NetProfitOrLoss))
	bs.Balanced = bs.Difference.IsZero()

	s.LogInfo(ctx, "Balance sheet report generated successfully",
		slog.String("company_id", companyID),
		slog.String("asOf", asOf.Format(time.DateOnly)),
		slog.Bool("balanced", bs.Balanced))
	return bs, nil
}

// LedgerStatement lists one account's postings in date order with a running balance.
func (s *reportingService) LedgerStatement(ctx context.Context, companyID, accountID string, from, to *time.Time) (*domain.LedgerStatement, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, fmt.Errorf("%w: fromDate is after toDate", apperrors.ErrValidation)
	}
	upper := openEnded
	if to != nil {
		upper = *to
	}

	var (
		activity []domain.AccountActivity
		entries  []domain.StatementEntry
	)
	err := s.snapshot(ctx, "ledger_statement", func(ctx context.Context, tx pgx.Tx) error {
		var err error
		activity, err = s.reportingRepo.AccountActivityInTx(ctx, tx, companyID, portsrepo.ActivityFilter{
			From:      from,
			To:        upper,
			AccountID: accountID,
		})
		if err != nil {
			return err
		}
		if len(activity) == 0 {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		entries, err = s.reportingRepo.StatementEntriesInTx(ctx, tx, companyID, accountID, from, to)
		return err
	})
	if err != nil {
		s.LogDebug(ctx, "Ledger statement not generated",
			slog.String("account_id", accountID),
			slog.String("error", err.Error()))
		return nil, err
	}

	a := activity[0]
	nature := a.Account.Nature
	running := accounting.SignedBalance(nature, a.Account.OpeningBalance, a.PriorDebits, a.PriorCredits)
	statement := &domain.LedgerStatement{
		Account:  a.Account,
		FromDate: from,
		ToDate:   to,
		Opening:  accounting.Present(nature, running),
		Lines:    make([]domain.StatementLine, 0, len(entries)),
	}
	for _, e := range entries {
		running = accounting.RunningBalance(nature, running, e.Line)
		statement.Lines = append(statement.Lines, domain.StatementLine{
			Date:          e.Line.Date,
			VoucherID:     e.Line.VoucherID,
			VoucherNumber: e.VoucherNumber,
			VoucherType:   e.VoucherType,
			Particulars:   e.Particulars,
			Narration:     e.Line.Narration,
			Debit:         e.Line.Debit,
			Credit:        e.Line.Credit,
			Balance:       accounting.Present(nature, running),
		})
	}
	statement.Closing = accounting.Present(nature, running)
	return statement, nil
}
