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

// itemService manages stock items and is the inventory collaborator of the posting engine.
type itemService struct {
	BaseService
	itemRepo portsrepo.ItemRepositoryWithTx
}

// NewItemService creates a new item service.
func NewItemService(repo portsrepo.ItemRepositoryWithTx, m *metrics.Metrics) portssvc.ItemSvcFacade {
	return &itemService{
		BaseService: BaseService{Metrics: m},
		itemRepo:    repo,
	}
}

var _ portssvc.ItemSvcFacade = (*itemService)(nil)

func (s *itemService) CreateItem(ctx context.Context, companyID string, req dto.CreateItemRequest, userID string) (*domain.Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: item name is required", apperrors.ErrValidation)
	}
	if req.Rate.IsNegative() || req.OpeningStock.IsNegative() || req.MinStockLevel.IsNegative() {
		return nil, fmt.Errorf("%w: rate and stock levels cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	item := domain.Item{
		ItemID:        uuid.NewString(),
		CompanyID:     companyID,
		Name:          name,
		SKU:           strings.TrimSpace(req.SKU),
		Unit:          strings.TrimSpace(req.Unit),
		Rate:          req.Rate,
		CurrentStock:  req.OpeningStock,
		MinStockLevel: req.MinStockLevel,
		IsActive:      true,
		AuditFields:   domain.NewAuditFields(userID, now),
	}
	if err := s.itemRepo.SaveItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to save item",
			slog.String("company_id", companyID),
			slog.String("name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Item created successfully",
		slog.String("item_id", item.ItemID),
		slog.String("company_id", companyID))
	return &item, nil
}

func (s *itemService) GetItem(ctx context.Context, companyID, itemID string) (*domain.Item, error) {
	item, err := s.itemRepo.FindItemByID(ctx, companyID, itemID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find item",
				slog.String("item_id", itemID))
		}
		return nil, err
	}
	return item, nil
}

func (s *itemService) ListItems(ctx context.Context, companyID string, params dto.ListItemsParams) ([]domain.Item, error) {
	items, err := s.itemRepo.ListItems(ctx, companyID, params.LowStockOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list items",
			slog.String("company_id", companyID))
		return nil, err
	}
	if items == nil {
		return []domain.Item{}, nil
	}
	return items, nil
}

func (s *itemService) UpdateItem(ctx context.Context, companyID, itemID string, req dto.UpdateItemRequest, userID string) (*domain.Item, error) {
	item, err := s.itemRepo.FindItemByID(ctx, companyID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: item name cannot be empty", apperrors.ErrValidation)
		}
		item.Name = name
	}
	if req.SKU != nil {
		item.SKU = strings.TrimSpace(*req.SKU)
	}
	if req.Unit != nil {
		item.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.Rate != nil {
		if req.Rate.IsNegative() {
			return nil, fmt.Errorf("%w: rate cannot be negative", apperrors.ErrValidation)
		}
		item.Rate = *req.Rate
	}
	if req.MinStockLevel != nil {
		if req.MinStockLevel.IsNegative() {
			return nil, fmt.Errorf("%w: minimum stock level cannot be negative", apperrors.ErrValidation)
		}
		item.MinStockLevel = *req.MinStockLevel
	}
	item.Touch(userID, time.Now().UTC())

	if err := s.itemRepo.UpdateItem(ctx, *item); err != nil {
		s.LogError(ctx, err, "Failed to update item",
			slog.String("item_id", itemID))
		return nil, err
	}
	return item, nil
}

func (s *itemService) DeactivateItem(ctx context.Context, companyID, itemID, userID string) error {
	if err := s.itemRepo.DeactivateItem(ctx, companyID, itemID, userID, time.Now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate item",
				slog.String("item_id", itemID))
		}
		return err
	}
	s.LogInfo(ctx, "Item deactivated",
		slog.String("item_id", itemID),
		slog.String("company_id", companyID))
	return nil
}

func (s *itemService) AdjustStockInTx(ctx context.Context, tx pgx.Tx, companyID, itemID string, delta decimal.Decimal) (decimal.Decimal, error) {
	stock, err := s.itemRepo.AdjustStockInTx(ctx, tx, companyID, itemID, delta)
	if err != nil {
		return decimal.Zero, err
	}
	s.LogDebug(ctx, "Stock adjusted",
		slog.String("item_id", itemID),
		slog.String("delta", delta.String()),
		slog.String("stock", stock.String()))
	return stock, nil
}

func (s *itemService) AdjustStock(ctx context.Context, companyID, itemID string, req dto.AdjustStockRequest, userID string) (*domain.Item, error) {
	if req.Delta.IsZero() {
		return nil, fmt.Errorf("%w: delta cannot be zero", apperrors.ErrValidation)
	}

	tx, err := s.itemRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.itemRepo.Rollback(ctx, tx) }()

	if _, err := s.AdjustStockInTx(ctx, tx, companyID, itemID, req.Delta); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientStock) {
			s.Metrics.IncrStockRejection()
		}
		return nil, err
	}
	if err := s.itemRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Stock adjusted manually",
		slog.String("item_id", itemID),
		slog.String("delta", req.Delta.String()),
		slog.String("user_id", userID))
	return s.itemRepo.FindItemByID(ctx, companyID, itemID)
}
