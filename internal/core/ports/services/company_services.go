package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
)

// CompanySvc registers companies and keeps their system accounts provisioned.
type CompanySvc interface {
	// RegisterCompany creates a company and provisions its system accounts.
	RegisterCompany(ctx context.Context, req dto.RegisterCompanyRequest, userID string) (*domain.Company, []domain.Account, error)

	// ProvisionCompany re-runs system account provisioning for an existing company.
	ProvisionCompany(ctx context.Context, companyID, userID string) ([]domain.Account, error)
}
