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
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ledgerService implements the LedgerSvcFacade interface
type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryWithTx
	classifier  *domain.Classifier
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithLedgerClassifier sets the group classification table.
func WithLedgerClassifier(c *domain.Classifier) LedgerServiceOption {
	return func(s *ledgerService) {
		s.classifier = c
	}
}

// WithLedgerMetrics sets the metrics sink.
func WithLedgerMetrics(m *metrics.Metrics) LedgerServiceOption {
	return func(s *ledgerService) {
		s.Metrics = m
	}
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(repo portsrepo.AccountRepositoryWithTx, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	if svc.classifier == nil {
		svc.classifier = domain.NewClassifier()
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) newAccount(companyID, name string, info domain.GroupInfo, userID string, now time.Time) domain.Account {
	name = strings.TrimSpace(name)
	return domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      companyID,
		Code:           domain.AccountCode(name),
		Name:           name,
		Group:          info.Group,
		Nature:         info.Nature,
		OpeningBalance: decimal.Zero,
		CurrentBalance: decimal.Zero,
		CreditLimit:    decimal.Zero,
		IsActive:       true,
		AuditFields:    domain.NewAuditFields(userID, now),
	}
}

func duplicateAccountErr(err error, name string) error {
	if errors.Is(err, apperrors.ErrDuplicate) {
		return fmt.Errorf("%w: %q", apperrors.ErrDuplicateAccount, name)
	}
	return err
}

func (s *ledgerService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	info, err := s.classifier.Lookup(req.Group)
	if err != nil {
		s.LogError(ctx, err, "Rejected account with unknown group",
			slog.String("company_id", companyID),
			slog.String("group", req.Group))
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}

	// Fail early on a visible collision; the unique index still guards races.
	existing, err := s.accountRepo.FindAccountByName(ctx, companyID, req.Name)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing account",
			slog.String("company_id", companyID))
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrDuplicateAccount, req.Name)
	}

	now := time.Now().UTC()
	account := s.newAccount(companyID, req.Name, info, userID, now)
	account.OpeningBalance = req.OpeningBalance
	account.CurrentBalance = req.OpeningBalance
	account.Phone = req.Phone
	account.Email = req.Email
	account.Address = req.Address
	account.TaxID = req.TaxID
	account.CreditLimit = req.CreditLimit
	account.CreditDays = req.CreditDays

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("company_id", companyID))
		return nil, duplicateAccountErr(err, req.Name)
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("company_id", companyID),
		slog.String("group", string(account.Group)))
	return &account, nil
}

func (s *ledgerService) GetAccount(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *ledgerService) ListAccounts(ctx context.Context, companyID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	filter := portsrepo.AccountFilter{IncludeInactive: params.IncludeInactive}
	if params.Group != "" {
		info, err := s.classifier.Lookup(params.Group)
		if err != nil {
			return nil, err
		}
		filter.Group = &info.Group
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, companyID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts",
			slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list accounts for company %s: %w", companyID, err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *ledgerService) ListGroups() []domain.GroupInfo {
	return s.classifier.Groups()
}

// lockAccount loads one account with a row lock inside tx.
func (s *ledgerService) lockAccount(ctx context.Context, tx pgx.Tx, companyID, accountID string) (domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, companyID, []string{accountID})
	if err != nil {
		return domain.Account{}, err
	}
	account, ok := accounts[accountID]
	if !ok {
		return domain.Account{}, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return account, nil
}

func (s *ledgerService) UpdateAccount(ctx context.Context, companyID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.accountRepo.Rollback(ctx, tx) }()

	account, err := s.lockAccount(ctx, tx, companyID, accountID)
	if err != nil {
		return nil, err
	}

	if req.OpeningBalance != nil && !req.OpeningBalance.Equal(account.OpeningBalance) {
		usage, err := s.accountRepo.AccountUsageInTx(ctx, tx, companyID, accountID)
		if err != nil {
			return nil, err
		}
		if usage.JournalLines > 0 {
			s.LogDebug(ctx, "Opening balance change refused",
				slog.String("account_id", accountID),
				slog.Int("journal_lines", usage.JournalLines))
			return nil, fmt.Errorf("%w: account %s has %d journal lines",
				apperrors.ErrOpeningBalanceLockedAfterPostings, account.Name, usage.JournalLines)
		}
		// Current balance moves with the opening balance it was seeded from.
		account.CurrentBalance = account.CurrentBalance.Add(req.OpeningBalance.Sub(account.OpeningBalance))
		account.OpeningBalance = *req.OpeningBalance
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
		}
		account.Name = name
		account.Code = domain.AccountCode(name)
	}
	if req.Phone != nil {
		account.Phone = *req.Phone
	}
	if req.Email != nil {
		account.Email = *req.Email
	}
	if req.Address != nil {
		account.Address = *req.Address
	}
	if req.TaxID != nil {
		account.TaxID = *req.TaxID
	}
	if req.CreditLimit != nil {
		account.CreditLimit = *req.CreditLimit
	}
	if req.CreditDays != nil {
		account.CreditDays = *req.CreditDays
	}
	account.Touch(userID, time.Now().UTC())

	if err := s.accountRepo.UpdateAccountInTx(ctx, tx, account); err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.String("account_id", accountID))
		return nil, duplicateAccountErr(err, account.Name)
	}
	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully",
		slog.String("account_id", accountID),
		slog.String("company_id", companyID))
	return &account, nil
}

func (s *ledgerService) DeactivateAccount(ctx context.Context, companyID, accountID, userID string) error {
	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.accountRepo.Rollback(ctx, tx) }()

	account, err := s.lockAccount(ctx, tx, companyID, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return nil
	}
	if account.IsSystem {
		return fmt.Errorf("%w: %s is a system account", apperrors.ErrAccountInUse, account.Name)
	}
	// An opening balance feeds the trial balance opening totals even without postings.
	if !account.OpeningBalance.IsZero() {
		return fmt.Errorf("%w: %s carries an opening balance of %s",
			apperrors.ErrAccountInUse, account.Name, account.OpeningBalance.String())
	}

	usage, err := s.accountRepo.AccountUsageInTx(ctx, tx, companyID, accountID)
	if err != nil {
		return err
	}
	if usage.InUse() {
		return fmt.Errorf("%w: %d journal lines, %d live vouchers",
			apperrors.ErrAccountInUse, usage.JournalLines, usage.ActivePartyVouchers)
	}

	if err := s.accountRepo.DeactivateAccountInTx(ctx, tx, companyID, accountID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account",
			slog.String("account_id", accountID))
		return err
	}
	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return err
	}

	s.LogInfo(ctx, "Account deactivated",
		slog.String("account_id", accountID),
		slog.String("company_id", companyID))
	return nil
}

func (s *ledgerService) GetOrCreateAccountInTx(ctx context.Context, tx pgx.Tx, companyID, name string, group domain.AccountGroup, userID string) (*domain.Account, error) {
	info, err := s.classifier.Lookup(string(group))
	if err != nil {
		return nil, err
	}
	candidate := s.newAccount(companyID, name, info, userID, time.Now().UTC())

	account, created, err := s.accountRepo.GetOrCreateAccountInTx(ctx, tx, candidate)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve account",
			slog.String("company_id", companyID),
			slog.String("name", name))
		return nil, err
	}
	if created {
		s.LogInfo(ctx, "Account created on first use",
			slog.String("account_id", account.AccountID),
			slog.String("name", account.Name))
		return account, nil
	}
	// The name may already belong to a deactivated ledger or one of another nature.
	if !account.IsActive || account.Nature != info.Nature {
		return nil, fmt.Errorf("%w: %q is inactive or not a %s account",
			apperrors.ErrUnknownAccount, account.Name, info.Nature)
	}
	return account, nil
}

func (s *ledgerService) GetOrCreateAccount(ctx context.Context, companyID, name, group, userID string) (*domain.Account, error) {
	info, err := s.classifier.Lookup(group)
	if err != nil {
		return nil, err
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.accountRepo.Rollback(ctx, tx) }()

	account, err := s.GetOrCreateAccountInTx(ctx, tx, companyID, name, info.Group, userID)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *ledgerService) ProvisionSystemAccounts(ctx context.Context, companyID, userID string) ([]domain.Account, error) {
	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.accountRepo.Rollback(ctx, tx) }()

	now := time.Now().UTC()
	accounts := make([]domain.Account, 0, len(domain.SystemAccounts()))
	for _, spec := range domain.SystemAccounts() {
		info, err := s.classifier.Lookup(string(spec.Group))
		if err != nil {
			return nil, err
		}
		candidate := s.newAccount(companyID, spec.Name, info, userID, now)
		candidate.IsSystem = true

		account, _, err := s.accountRepo.GetOrCreateAccountInTx(ctx, tx, candidate)
		if err != nil {
			s.LogError(ctx, err, "Failed to provision system account",
				slog.String("company_id", companyID),
				slog.String("name", spec.Name))
			return nil, err
		}
		accounts = append(accounts, *account)
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "System accounts provisioned",
		slog.String("company_id", companyID),
		slog.Int("count", len(accounts)))
	return accounts, nil
}
