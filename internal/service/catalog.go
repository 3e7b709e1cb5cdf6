package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// CatalogFilter holds the wire form of the product filter dimensions.
// Empty strings leave a dimension unconstrained.
type CatalogFilter struct {
	Category string
	Material string
	MaxPrice string
	Search   string
}

// CatalogView is the filtered product listing with counts over the
// full catalog.
type CatalogView struct {
	Products     []domain.Product `json:"products"`
	VisibleCount int              `json:"visible_count"`
	TotalCount   int              `json:"total_count"`
}

// CatalogService implements product listing with in-memory filtering.
type CatalogService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.ProductRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
	}
}

// ListVisible returns the products visible under the filter, preserving
// catalog order, together with visible and total counts.
func (s *CatalogService) ListVisible(ctx context.Context, filter CatalogFilter) (*CatalogView, error) {
	engine := domain.NewFilterEngine()
	engine.SetCategory(filter.Category)
	engine.SetMaterial(filter.Material)
	engine.SetSearchTerm(filter.Search)

	if filter.MaxPrice != "" {
		maxPrice, err := strconv.ParseFloat(filter.MaxPrice, 64)
		if err != nil || maxPrice < 0 {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid max_price %q", filter.MaxPrice))
		}
		engine.SetMaxPrice(&maxPrice)
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	visible := engine.Apply(products)

	return &CatalogView{
		Products:     visible,
		VisibleCount: len(visible),
		TotalCount:   len(products),
	}, nil
}

// GetProduct retrieves a single product.
func (s *CatalogService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	return s.repo.GetByID(ctx, productID)
}
