package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/google/uuid"
)

type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepository
	ledger      portssvc.LedgerWriterSvc
}

// NewCompanyService creates a new company service.
func NewCompanyService(repo portsrepo.CompanyRepository, ledger portssvc.LedgerWriterSvc) portssvc.CompanySvc {
	return &companyService{
		companyRepo: repo,
		ledger:      ledger,
	}
}

var _ portssvc.CompanySvc = (*companyService)(nil)

func (s *companyService) RegisterCompany(ctx context.Context, req dto.RegisterCompanyRequest, userID string) (*domain.Company, []domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, nil, fmt.Errorf("%w: company name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	fyStart := req.FinancialYearStart
	if fyStart.IsZero() {
		fyStart = time.Date(now.Year(), time.April, 1, 0, 0, 0, 0, time.UTC)
		if now.Before(fyStart) {
			fyStart = fyStart.AddDate(-1, 0, 0)
		}
	}

	company := domain.Company{
		CompanyID:          uuid.NewString(),
		Name:               name,
		FinancialYearStart: dateOnly(fyStart),
		IsActive:           true,
		AuditFields:        domain.NewAuditFields(userID, now),
	}
	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to save company",
			slog.String("name", name))
		return nil, nil, err
	}

	accounts, err := s.ledger.ProvisionSystemAccounts(ctx, company.CompanyID, userID)
	if err != nil {
		return nil, nil, err
	}

	s.LogInfo(ctx, "Company registered",
		slog.String("company_id", company.CompanyID),
		slog.Int("system_accounts", len(accounts)))
	return &company, accounts, nil
}

func (s *companyService) ProvisionCompany(ctx context.Context, companyID, userID string) ([]domain.Account, error) {
	if _, err := s.companyRepo.FindCompanyByID(ctx, companyID); err != nil {
		return nil, err
	}
	return s.ledger.ProvisionSystemAccounts(ctx, companyID, userID)
}
