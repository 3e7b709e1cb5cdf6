package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func setupProductRouter(repo *mockProductRepository) *chi.Mux {
	handler := NewProductHandler(service.NewCatalogService(repo, testLogger()), testLogger())
	r := chi.NewRouter()
	r.Get("/api/v1/products", handler.List)
	r.Get("/api/v1/products/{productID}", handler.Get)
	return r
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Category: "tote", Material: "canvas", Price: 49.99, Title: "City Tote", Description: "Everyday canvas tote"},
		{ID: "p2", Category: "backpack", Material: "leather", Price: 189.00, Title: "Commuter Backpack", Description: "Leather backpack"},
	}
}

func TestProductHandler_List(t *testing.T) {
	repo := new(mockProductRepository)
	repo.On("List", mock.Anything).Return(testProducts(), nil)
	router := setupProductRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var view service.CatalogView
	decodeData(t, rec, &view)
	assert.Equal(t, 2, view.VisibleCount)
	assert.Equal(t, 2, view.TotalCount)
}

func TestProductHandler_List_Filtered(t *testing.T) {
	repo := new(mockProductRepository)
	repo.On("List", mock.Anything).Return(testProducts(), nil)
	router := setupProductRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=tote&max_price=60", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var view service.CatalogView
	decodeData(t, rec, &view)
	require.Len(t, view.Products, 1)
	assert.Equal(t, "p1", view.Products[0].ID)
	assert.Equal(t, 2, view.TotalCount)
}

func TestProductHandler_List_BadMaxPrice(t *testing.T) {
	repo := new(mockProductRepository)
	router := setupProductRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?max_price=oops", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_Get(t *testing.T) {
	repo := new(mockProductRepository)
	p := testProducts()[0]
	repo.On("GetByID", mock.Anything, "p1").Return(&p, nil)
	router := setupProductRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/p1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Product
	decodeData(t, rec, &got)
	assert.Equal(t, "City Tote", got.Title)
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	repo := new(mockProductRepository)
	repo.On("GetByID", mock.Anything, "ghost").Return(nil, apperrors.NotFound("product", "ghost"))
	router := setupProductRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeErrorCode(t, rec))
}
