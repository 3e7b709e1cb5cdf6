package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/notice"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// CompareView is the compare tray with its resolved products.
type CompareView struct {
	Set        domain.CompareSet `json:"set"`
	Products   []domain.Product  `json:"products"`
	CanCompare bool              `json:"can_compare"`
}

// CompareStatus is a lightweight summary of the tray for badge-style
// displays.
type CompareStatus struct {
	Count      int  `json:"count"`
	Capacity   int  `json:"capacity"`
	CanCompare bool `json:"can_compare"`
}

// CompareService implements the business logic for the per-session
// compare tray.
type CompareService struct {
	repo     repository.CompareRepository
	products repository.ProductRepository
	producer *event.Producer
	notices  *notice.Queue
	logger   *slog.Logger
}

// NewCompareService creates a new compare service.
func NewCompareService(
	repo repository.CompareRepository,
	products repository.ProductRepository,
	producer *event.Producer,
	notices *notice.Queue,
	logger *slog.Logger,
) *CompareService {
	return &CompareService{
		repo:     repo,
		products: products,
		producer: producer,
		notices:  notices,
		logger:   logger,
	}
}

// Toggle adds the product to the session's compare tray, or removes it
// if already present. A full tray rejects new products with a warning
// notice and leaves the tray unchanged.
func (s *CompareService) Toggle(ctx context.Context, sessionID, productID string) (*domain.CompareSet, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("product", productID)
		}
		return nil, fmt.Errorf("check product: %w", err)
	}

	set, err := s.getOrCreateSet(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !set.Add(productID) {
		s.notices.Push(sessionID, domain.NoticeSeverityWarning,
			fmt.Sprintf("You can compare up to %d products. Remove one to add another.", domain.MaxCompareItems), 0)
		return set, nil
	}

	if err := s.repo.Save(ctx, sessionID, set); err != nil {
		return nil, apperrors.Persistence(err)
	}

	s.publishUpdated(ctx, sessionID, set)
	return set, nil
}

// Remove takes the product out of the session's compare tray. Removing
// a product that is not in the tray is a no-op and returns the tray
// unchanged.
func (s *CompareService) Remove(ctx context.Context, sessionID, productID string) (*domain.CompareSet, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	set, err := s.getOrCreateSet(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !set.Remove(productID) {
		return set, nil
	}

	if err := s.repo.Save(ctx, sessionID, set); err != nil {
		return nil, apperrors.Persistence(err)
	}

	s.publishUpdated(ctx, sessionID, set)
	return set, nil
}

// Clear empties the session's compare tray.
func (s *CompareService) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return apperrors.Persistence(err)
	}

	s.publishUpdated(ctx, sessionID, &domain.CompareSet{})
	return nil
}

// Get returns the session's compare tray with its products resolved
// from the catalog. Products no longer in the catalog are dropped from
// the view but kept in the set.
func (s *CompareService) Get(ctx context.Context, sessionID string) (*CompareView, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	set, err := s.getOrCreateSet(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, set.Size())
	for _, id := range set.ProductIDs {
		p, err := s.products.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				s.logger.WarnContext(ctx, "compare item missing from catalog",
					slog.String("product_id", id),
				)
				continue
			}
			return nil, fmt.Errorf("resolve compare item: %w", err)
		}
		products = append(products, *p)
	}

	return &CompareView{
		Set:        *set,
		Products:   products,
		CanCompare: set.CanCompare(),
	}, nil
}

// Status reports how full the session's tray is without resolving
// products. The tray is comparable once it holds two or more items.
func (s *CompareService) Status(ctx context.Context, sessionID string) (*CompareStatus, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	set, err := s.getOrCreateSet(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &CompareStatus{
		Count:      set.Size(),
		Capacity:   domain.MaxCompareItems,
		CanCompare: set.CanCompare(),
	}, nil
}

func (s *CompareService) getOrCreateSet(ctx context.Context, sessionID string) (*domain.CompareSet, error) {
	set, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.CompareSet{}, nil
		}
		return nil, apperrors.Persistence(err)
	}
	return set, nil
}

func (s *CompareService) publishUpdated(ctx context.Context, sessionID string, set *domain.CompareSet) {
	if err := s.producer.PublishCompareUpdated(ctx, sessionID, set); err != nil {
		s.logger.ErrorContext(ctx, "publish compare updated",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}
}
