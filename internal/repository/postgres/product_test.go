package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarmachan/storefront/internal/domain"
	"github.com/tarmachan/storefront/internal/repository"
	"github.com/tarmachan/storefront/pkg/database"
	apperrors "github.com/tarmachan/storefront/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────────────────────────────────────

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return mock
}

func strPtr(s string) *string { return &s }

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// ─── Product column definitions ─────────────────────────────────────────────

var productColumns = []string{
	"id", "name", "slug", "description", "category_id",
	"price", "image_url", "rating", "created_at", "updated_at",
}

var productColumnsWithCount = []string{
	"id", "name", "slug", "description", "category_id",
	"price", "image_url", "rating", "created_at", "updated_at",
	"total_count",
}

func sampleProduct() domain.Product {
	return domain.Product{
		ID:          "prod-1",
		Name:        "Thistle Mug",
		Slug:        "thistle-mug",
		Description: "A stoneware mug",
		CategoryID:  strPtr("cat-1"),
		Price:       2400,
		ImageURL:    "/media/images/thistle-mug.jpg",
		Rating:      4.5,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func productRow(p domain.Product) []any {
	return []any{
		p.ID, p.Name, p.Slug, p.Description, p.CategoryID,
		p.Price, p.ImageURL, p.Rating, p.CreatedAt, p.UpdatedAt,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ProductRepository
// ─────────────────────────────────────────────────────────────────────────────

func TestProductRepository_Create_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()

	mock.ExpectExec("INSERT INTO products").
		WithArgs(
			p.ID, p.Name, p.Slug, p.Description, p.CategoryID,
			p.Price, p.ImageURL, p.Rating, p.CreatedAt, p.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), &p)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Create_UniqueViolation(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()

	mock.ExpectExec("INSERT INTO products").
		WithArgs(
			p.ID, p.Name, p.Slug, p.Description, p.CategoryID,
			p.Price, p.ImageURL, p.Rating, p.CreatedAt, p.UpdatedAt,
		).
		WillReturnError(errors.New("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"))

	err := repo.Create(context.Background(), &p)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()
	mock.ExpectQuery("SELECT .+ FROM products WHERE id").
		WithArgs(p.ID).
		WillReturnRows(
			pgxmock.NewRows(productColumns).AddRow(productRow(p)...),
		)

	result, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, result.ID)
	assert.Equal(t, p.Rating, result.Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM products WHERE id").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(productColumns))

	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_NaturalOrder(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()
	mock.ExpectQuery("SELECT .+ FROM products p LEFT JOIN categories c").
		WillReturnRows(
			pgxmock.NewRows(productColumnsWithCount).
				AddRow(append(productRow(p), 1)...),
		)

	products, total, err := repo.List(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_SortByNameCaseInsensitive(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM products p LEFT JOIN categories c .+ ORDER BY lower\(p.name\) ASC`).
		WillReturnRows(pgxmock.NewRows(productColumnsWithCount))

	products, total, err := repo.List(context.Background(), repository.ProductFilter{
		SortKey: domain.SortKeyName,
	})
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_SortByCategoryDescending(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM products p LEFT JOIN categories c .+ ORDER BY c.name DESC`).
		WillReturnRows(pgxmock.NewRows(productColumnsWithCount))

	_, _, err := repo.List(context.Background(), repository.ProductFilter{
		SortKey:    domain.SortKeyCategory,
		Descending: true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_CategoryAndSearchCompose(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()
	mock.ExpectQuery(`SELECT .+ FROM products p LEFT JOIN categories c WHERE c.name = ANY\(\$1\) AND \(p.name ILIKE \$2 OR p.description ILIKE \$2\)`).
		WithArgs([]string{"Pottery"}, "%mug%").
		WillReturnRows(
			pgxmock.NewRows(productColumnsWithCount).
				AddRow(append(productRow(p), 1)...),
		)

	products, total, err := repo.List(context.Background(), repository.ProductFilter{
		CategoryNames: []string{"Pottery"},
		Search:        strPtr("mug"),
	})
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()
	mock.ExpectExec("UPDATE products SET").
		WithArgs(
			p.Name, p.Slug, p.Description, p.CategoryID,
			p.Price, p.ImageURL, p.Rating, pgxmock.AnyArg(), p.ID,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &p)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdateRating_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	mock.ExpectExec("UPDATE products SET rating").
		WithArgs(4.5, pgxmock.AnyArg(), "prod-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateRating(context.Background(), "prod-1", 4.5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Delete_CascadesComments(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM comments WHERE product_id").
		WithArgs("prod-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec("DELETE FROM products WHERE id").
		WithArgs("prod-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), "prod-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Delete_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM comments WHERE product_id").
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM products WHERE id").
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
