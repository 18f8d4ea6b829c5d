package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/platform/metrics"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var (
	ErrVoucherCancelled        = errors.New("voucher is cancelled")
	ErrOpeningBalanceImmutable = errors.New("opening balance voucher cannot be cancelled")
	ErrOverpayment             = errors.New("payment exceeds the balance due")
)

// postingService turns vouchers into balanced journal postings.
type postingService struct {
	BaseService
	voucherRepo portsrepo.VoucherRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
	ledger      portssvc.LedgerPostingSupport
	inventory   portssvc.InventorySvc
}

// PostingServiceOption is a functional option for configuring the posting service
type PostingServiceOption func(*postingService)

// WithPostingMetrics sets the metrics sink.
func WithPostingMetrics(m *metrics.Metrics) PostingServiceOption {
	return func(s *postingService) {
		s.Metrics = m
	}
}

// NewPostingService creates a new posting service.
func NewPostingService(
	voucherRepo portsrepo.VoucherRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryFacade,
	ledger portssvc.LedgerPostingSupport,
	inventory portssvc.InventorySvc,
	options ...PostingServiceOption,
) portssvc.PostingSvcFacade {
	svc := &postingService{
		voucherRepo: voucherRepo,
		accountRepo: accountRepo,
		ledger:      ledger,
		inventory:   inventory,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

func (s *postingService) recordOutcome(ctx context.Context, v *domain.Voucher, t domain.VoucherType, err error) {
	if err != nil {
		s.Metrics.IncrPostingFailure(apperrors.KindOf(err))
		s.LogDebug(ctx, "Voucher posting rejected",
			slog.String("type", string(t)),
			slog.String("error", err.Error()))
		return
	}
	s.Metrics.IncrVoucherPosted(string(v.Type))
}

func (s *postingService) PostVoucher(ctx context.Context, companyID string, req dto.CreateVoucherRequest, userID string) (*domain.Voucher, error) {
	t := domain.VoucherType(strings.ToUpper(strings.TrimSpace(req.Type)))
	if t == domain.OpeningBalance {
		return s.PostOpeningBalance(ctx, companyID, dto.OpeningBalanceRequest{Date: req.Date, Entries: req.Entries}, userID)
	}
	v, err := s.postVoucher(ctx, companyID, t, req, userID)
	s.recordOutcome(ctx, v, t, err)
	return v, err
}

func (s *postingService) postVoucher(ctx context.Context, companyID string, t domain.VoucherType, req dto.CreateVoucherRequest, userID string) (*domain.Voucher, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidVoucherType, req.Type)
	}

	voucherID := uuid.NewString()
	total := req.TotalAmount
	var items []domain.VoucherItem
	switch {
	case t.IsItemBearing() && !req.AccountingOnly:
		if len(req.Items) == 0 {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrMissingLineItems, t)
		}
		var err error
		items, total, err = buildItems(voucherID, req.Items)
		if err != nil {
			return nil, err
		}
		if !req.TotalAmount.IsZero() && !req.TotalAmount.Equal(total) {
			return nil, fmt.Errorf("%w: total %s does not match item lines %s",
				apperrors.ErrValidation, req.TotalAmount.String(), total.String())
		}
	case len(req.Items) > 0:
		return nil, fmt.Errorf("%w: %s does not carry line items", apperrors.ErrValidation, t)
	}

	planned, err := planLines(t, req, total)
	if err != nil {
		return nil, err
	}
	if t == domain.JournalVoucher && len(req.Entries) > 0 {
		total = sumDebits(planned)
	}

	_, hasParty := nonEmpty(req.PartyAccountID)
	status, paid := initialSettlement(t, hasParty, total)
	now := time.Now().UTC()
	voucher := domain.Voucher{
		VoucherID:       voucherID,
		CompanyID:       companyID,
		Type:            t,
		Date:            dateOnly(req.Date),
		TotalAmount:     total,
		AmountPaid:      paid,
		Narration:       req.Narration,
		ReferenceNumber: req.ReferenceNumber,
		Status:          status,
		IsActive:        true,
		Items:           items,
		AuditFields:     domain.NewAuditFields(userID, now),
	}
	if hasParty {
		partyID, _ := nonEmpty(req.PartyAccountID)
		voucher.PartyAccountID = &partyID
	}
	if req.DueDate != nil {
		due := dateOnly(*req.DueDate)
		voucher.DueDate = &due
	}

	return s.commitVoucher(ctx, voucher, planned, userID)
}

func (s *postingService) PostOpeningBalance(ctx context.Context, companyID string, req dto.OpeningBalanceRequest, userID string) (*domain.Voucher, error) {
	planned := entryLines(req.Entries, "Opening balance")
	now := time.Now().UTC()
	voucher := domain.Voucher{
		VoucherID:   uuid.NewString(),
		CompanyID:   companyID,
		Type:        domain.OpeningBalance,
		Date:        dateOnly(req.Date),
		TotalAmount: sumDebits(planned),
		Narration:   "Opening balance",
		IsActive:    true,
		AuditFields: domain.NewAuditFields(userID, now),
	}
	voucher.Status, voucher.AmountPaid = initialSettlement(domain.OpeningBalance, false, voucher.TotalAmount)

	v, err := s.commitVoucher(ctx, voucher, planned, userID)
	s.recordOutcome(ctx, v, domain.OpeningBalance, err)
	return v, err
}

func sumDebits(lines []plannedLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Debit)
	}
	return total
}

// commitVoucher runs the write half of a posting in one transaction:
// resolve accounts, check balance, number, insert, move stock, post lines, update balances.
func (s *postingService) commitVoucher(ctx context.Context, voucher domain.Voucher, planned []plannedLine, userID string) (*domain.Voucher, error) {
	tx, err := s.voucherRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.voucherRepo.Rollback(ctx, tx) }()

	lines, accounts, err := s.resolveLines(ctx, tx, voucher, planned, userID)
	if err != nil {
		return nil, err
	}
	if err := accounting.ValidateLines(lines); err != nil {
		return nil, err
	}

	if voucher.Type == domain.OpeningBalance {
		exists, err := s.voucherRepo.OpeningBalanceExistsInTx(ctx, tx, voucher.CompanyID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.ErrOpeningBalanceAlreadyExists
		}
	}

	seq, err := s.voucherRepo.NextVoucherSequenceInTx(ctx, tx, voucher.CompanyID, voucher.Type)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate voucher number",
			slog.String("company_id", voucher.CompanyID),
			slog.String("type", string(voucher.Type)))
		return nil, err
	}
	voucher.Number = domain.VoucherNumber(voucher.Type, seq)

	if err := s.voucherRepo.InsertVoucherInTx(ctx, tx, voucher); err != nil {
		if voucher.Type == domain.OpeningBalance && errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.ErrOpeningBalanceAlreadyExists
		}
		s.LogError(ctx, err, "Failed to insert voucher",
			slog.String("voucher_id", voucher.VoucherID))
		return nil, err
	}

	if len(voucher.Items) > 0 {
		for i := range voucher.Items {
			voucher.Items[i].VoucherItemID = uuid.NewString()
		}
		// Stock first: an unknown item surfaces as ErrItemNotFound, not a foreign key failure.
		if err := s.moveStock(ctx, tx, voucher, voucher.Type.StockDirection()); err != nil {
			return nil, err
		}
		if err := s.voucherRepo.InsertVoucherItemsInTx(ctx, tx, voucher.Items); err != nil {
			return nil, err
		}
	}

	if err := s.voucherRepo.InsertJournalLinesInTx(ctx, tx, lines); err != nil {
		s.LogError(ctx, err, "Failed to insert journal lines",
			slog.String("voucher_id", voucher.VoucherID))
		return nil, err
	}

	changes := balanceChanges(lines, accounts, 1)
	if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, voucher.CompanyID, changes, userID, voucher.CreatedAt); err != nil {
		s.LogError(ctx, err, "Failed to update account balances",
			slog.String("voucher_id", voucher.VoucherID))
		return nil, err
	}

	if err := s.voucherRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	voucher.Lines = lines
	s.LogInfo(ctx, "Voucher posted successfully",
		slog.String("voucher_id", voucher.VoucherID),
		slog.String("number", voucher.Number),
		slog.String("company_id", voucher.CompanyID),
		slog.String("total", voucher.TotalAmount.String()))
	return &voucher, nil
}

// resolveLines turns planned lines into journal lines. Explicit accounts must exist and be
// active in the company; default ledgers are created on first use.
func (s *postingService) resolveLines(ctx context.Context, tx pgx.Tx, voucher domain.Voucher, planned []plannedLine, userID string) ([]domain.JournalLine, map[string]domain.Account, error) {
	var ids []string
	seen := make(map[string]bool)
	for _, p := range planned {
		if p.Ref.isDefault() {
			if p.Ref.Name == "" {
				return nil, nil, fmt.Errorf("%w: journal entry has no account", apperrors.ErrUnknownAccount)
			}
			continue
		}
		if !seen[p.Ref.ID] {
			seen[p.Ref.ID] = true
			ids = append(ids, p.Ref.ID)
		}
	}

	accounts := make(map[string]domain.Account)
	if len(ids) > 0 {
		found, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, voucher.CompanyID, ids)
		if err != nil {
			return nil, nil, err
		}
		for _, id := range ids {
			acc, ok := found[id]
			if !ok || !acc.IsActive {
				return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, id)
			}
			accounts[id] = acc
		}
	}

	byName := make(map[string]string)
	lines := make([]domain.JournalLine, 0, len(planned))
	for _, p := range planned {
		accountID := p.Ref.ID
		if p.Ref.isDefault() {
			var ok bool
			accountID, ok = byName[p.Ref.Name]
			if !ok {
				acc, err := s.ledger.GetOrCreateAccountInTx(ctx, tx, voucher.CompanyID, p.Ref.Name, p.Ref.Group, userID)
				if err != nil {
					return nil, nil, err
				}
				accountID = acc.AccountID
				byName[p.Ref.Name] = accountID
				accounts[accountID] = *acc
			}
		}
		lines = append(lines, domain.JournalLine{
			LineID:    uuid.NewString(),
			VoucherID: voucher.VoucherID,
			AccountID: accountID,
			Debit:     p.Debit,
			Credit:    p.Credit,
			Date:      voucher.Date,
			Narration: p.Narration,
			CreatedAt: voucher.CreatedAt,
		})
	}
	return lines, accounts, nil
}

// balanceChanges nets each line's effect per account; sign -1 reverses them.
func balanceChanges(lines []domain.JournalLine, accounts map[string]domain.Account, sign int64) map[string]decimal.Decimal {
	factor := decimal.NewFromInt(sign)
	changes := make(map[string]decimal.Decimal)
	for _, l := range lines {
		acc := accounts[l.AccountID]
		changes[l.AccountID] = changes[l.AccountID].Add(accounting.Effect(acc.Nature, l).Mul(factor))
	}
	return changes
}

// moveStock applies quantity × direction for every item line.
func (s *postingService) moveStock(ctx context.Context, tx pgx.Tx, voucher domain.Voucher, direction int) error {
	if direction == 0 {
		return nil
	}
	dir := decimal.NewFromInt(int64(direction))
	for _, it := range voucher.Items {
		if _, err := s.inventory.AdjustStockInTx(ctx, tx, voucher.CompanyID, it.ItemID, it.Quantity.Mul(dir)); err != nil {
			if errors.Is(err, apperrors.ErrInsufficientStock) {
				s.Metrics.IncrStockRejection()
			}
			s.LogDebug(ctx, "Stock movement refused",
				slog.String("voucher_id", voucher.VoucherID),
				slog.String("item_id", it.ItemID),
				slog.String("error", err.Error()))
			return err
		}
	}
	return nil
}

func (s *postingService) CancelVoucher(ctx context.Context, companyID, voucherID, userID string) (*domain.Voucher, error) {
	tx, err := s.voucherRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.voucherRepo.Rollback(ctx, tx) }()

	voucher, err := s.voucherRepo.FindVoucherForUpdate(ctx, tx, companyID, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.Type == domain.OpeningBalance {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrOpeningBalanceImmutable)
	}
	if voucher.Status == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: %w: %s", apperrors.ErrValidation, ErrVoucherCancelled, voucher.Number)
	}

	if err := s.moveStock(ctx, tx, *voucher, -voucher.Type.StockDirection()); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(voucher.Lines))
	for _, l := range voucher.Lines {
		ids = append(ids, l.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, companyID, ids)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	changes := balanceChanges(voucher.Lines, accounts, -1)
	if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, companyID, changes, userID, now); err != nil {
		return nil, err
	}

	if err := s.voucherRepo.MarkVoucherCancelledInTx(ctx, tx, companyID, voucherID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to cancel voucher",
			slog.String("voucher_id", voucherID))
		return nil, err
	}
	if err := s.voucherRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	voucher.Status = domain.StatusCancelled
	voucher.IsActive = false
	voucher.Touch(userID, now)
	for i := range voucher.Lines {
		voucher.Lines[i].IsReversed = true
	}
	s.Metrics.IncrVoucherCancelled(string(voucher.Type))
	s.LogInfo(ctx, "Voucher cancelled",
		slog.String("voucher_id", voucherID),
		slog.String("number", voucher.Number))
	return voucher, nil
}

func (s *postingService) RecordPayment(ctx context.Context, companyID, voucherID string, req dto.RecordPaymentRequest, userID string) (*domain.Voucher, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if !domain.FitsScale(req.Amount) {
		return nil, fmt.Errorf("%w: payment amount has more than %d decimal places", apperrors.ErrValidation, domain.AmountScale)
	}

	tx, err := s.voucherRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.voucherRepo.Rollback(ctx, tx) }()

	voucher, err := s.voucherRepo.FindVoucherForUpdate(ctx, tx, companyID, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.Status == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrVoucherCancelled)
	}

	paid := voucher.AmountPaid.Add(req.Amount)
	if paid.GreaterThan(voucher.TotalAmount) {
		return nil, fmt.Errorf("%w: %w: balance due is %s",
			apperrors.ErrValidation, ErrOverpayment, voucher.BalanceDue().String())
	}
	voucher.AmountPaid = paid
	if paid.Equal(voucher.TotalAmount) {
		voucher.Status = domain.StatusPaid
	} else {
		voucher.Status = domain.StatusPartiallyPaid
	}
	voucher.Touch(userID, time.Now().UTC())

	if err := s.voucherRepo.UpdateVoucherInTx(ctx, tx, *voucher); err != nil {
		return nil, err
	}
	if err := s.voucherRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("voucher_id", voucherID),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(voucher.Status)))
	return voucher, nil
}

func (s *postingService) UpdateVoucherDetails(ctx context.Context, companyID, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error) {
	tx, err := s.voucherRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.voucherRepo.Rollback(ctx, tx) }()

	voucher, err := s.voucherRepo.FindVoucherForUpdate(ctx, tx, companyID, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.Status == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: %w: %s", apperrors.ErrValidation, ErrVoucherCancelled, voucher.Number)
	}

	if req.Narration != nil {
		voucher.Narration = *req.Narration
	}
	if req.ReferenceNumber != nil {
		voucher.ReferenceNumber = *req.ReferenceNumber
	}
	if req.DueDate != nil {
		due := dateOnly(*req.DueDate)
		voucher.DueDate = &due
	}
	if req.Date != nil {
		voucher.Date = dateOnly(*req.Date)
		for i := range voucher.Lines {
			voucher.Lines[i].Date = voucher.Date
		}
	}
	voucher.Touch(userID, time.Now().UTC())

	if err := s.voucherRepo.UpdateVoucherInTx(ctx, tx, *voucher); err != nil {
		s.LogError(ctx, err, "Failed to update voucher",
			slog.String("voucher_id", voucherID))
		return nil, err
	}
	if err := s.voucherRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return voucher, nil
}

func (s *postingService) GetVoucher(ctx context.Context, companyID, voucherID string) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, companyID, voucherID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find voucher",
				slog.String("voucher_id", voucherID))
		}
		return nil, err
	}
	return voucher, nil
}

func (s *postingService) ListVouchers(ctx context.Context, companyID string, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	var filter domain.VoucherFilter
	if params.Type != "" {
		t := domain.VoucherType(strings.ToUpper(params.Type))
		if !t.IsValid() {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidVoucherType, params.Type)
		}
		filter.Type = &t
	}
	if params.Status != "" {
		st := domain.VoucherStatus(params.Status)
		filter.Status = &st
	}
	var err error
	if filter.FromDate, err = parseDateParam("fromDate", params.FromDate); err != nil {
		return nil, err
	}
	if filter.ToDate, err = parseDateParam("toDate", params.ToDate); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	vouchers, next, err := s.voucherRepo.ListVouchers(ctx, companyID, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list vouchers",
			slog.String("company_id", companyID))
		return nil, err
	}

	resp := &dto.ListVouchersResponse{
		Vouchers:  make([]dto.VoucherResponse, 0, len(vouchers)),
		NextToken: next,
	}
	for i := range vouchers {
		resp.Vouchers = append(resp.Vouchers, dto.ToVoucherResponse(&vouchers[i]))
	}
	return resp, nil
}

func (s *postingService) VoucherSummary(ctx context.Context, companyID string, params dto.ReportPeriodParams) ([]domain.VoucherTypeCount, error) {
	from, err := parseDateParam("fromDate", params.FromDate)
	if err != nil {
		return nil, err
	}
	to, err := parseDateParam("toDate", params.ToDate)
	if err != nil {
		return nil, err
	}
	summary, err := s.voucherRepo.SummarizeVouchers(ctx, companyID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize vouchers",
			slog.String("company_id", companyID))
		return nil, err
	}
	if summary == nil {
		return []domain.VoucherTypeCount{}, nil
	}
	return summary, nil
}
