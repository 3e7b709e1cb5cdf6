package repository

import (
	"context"

	"github.com/utafrali/storefront/internal/domain"
)

// ReviewRepository defines the interface for review collection persistence.
// Collections are stored and loaded whole, keyed by the page they belong to.
type ReviewRepository interface {
	// Load retrieves the review collection for a page. A page with no
	// stored collection yields an empty slice, not an error.
	Load(ctx context.Context, pageID string) ([]domain.Review, error)

	// Save persists the full review collection for a page, overwriting
	// any existing collection.
	Save(ctx context.Context, pageID string, reviews []domain.Review) error
}

// CompareRepository defines the interface for compare tray persistence.
type CompareRepository interface {
	// Get retrieves the compare set for a session.
	Get(ctx context.Context, sessionID string) (*domain.CompareSet, error)

	// Save persists the compare set for a session, overwriting any
	// existing set.
	Save(ctx context.Context, sessionID string, set *domain.CompareSet) error

	// Delete removes the compare set for a session.
	Delete(ctx context.Context, sessionID string) error
}

// FeedbackRepository defines the interface for feedback persistence.
type FeedbackRepository interface {
	// Append adds a feedback entry to the store.
	Append(ctx context.Context, fb *domain.Feedback) error

	// List returns the most recent feedback entries, newest first,
	// up to limit.
	List(ctx context.Context, limit int) ([]domain.Feedback, error)
}

// ProductRepository defines the read-only interface to the product catalog.
type ProductRepository interface {
	// List returns all products in the catalog.
	List(ctx context.Context) ([]domain.Product, error)

	// GetByID retrieves a single product.
	GetByID(ctx context.Context, productID string) (*domain.Product, error)
}
