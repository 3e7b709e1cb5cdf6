package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/database"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// ProductRepository implements repository.ProductRepository using
// PostgreSQL. The catalog is maintained by a separate system; this
// repository only reads it.
type ProductRepository struct {
	db database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db database.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns every product in the catalog. Filtering happens in
// memory so visibility decisions stay a pure function of the product
// and the active filter state.
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, category, material, price, title, description
		FROM products
		ORDER BY title ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.Category,
			&p.Material,
			&p.Price,
			&p.Title,
			&p.Description,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `
		SELECT id, category, material, price, title, description
		FROM products
		WHERE id = $1`

	var p domain.Product
	err := r.db.QueryRow(ctx, query, productID).Scan(
		&p.ID,
		&p.Category,
		&p.Material,
		&p.Price,
		&p.Title,
		&p.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", productID)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return &p, nil
}
