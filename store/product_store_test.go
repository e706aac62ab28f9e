package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wattwise/api/models"
)

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "sku", "name", "description", "category", "price", "efficiency_rating", "annual_kwh", "created_at",
	}).AddRow(1, "LED-60W", "LED Bulb 60W Equivalent", "Warm white A19 bulb", "lighting",
		3.99, "ENERGY STAR", 9.8, testTime())
}

func TestSearchProductsWithTermAndCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products").
		WithArgs("led bulb", "lighting").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs("led bulb", "lighting", 20, 0).
		WillReturnRows(productRows())

	s := NewProductStore(db)
	result, err := s.SearchProducts(context.Background(), "led bulb", "lighting", "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Total)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "LED-60W", result.Products[0].SKU)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchProductsReturnsSearchErrorOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products").
		WillReturnError(assert.AnError)

	s := NewProductStore(db)
	_, err = s.SearchProducts(context.Background(), "led", "", "", 1, 20)
	require.Error(t, err)
	var searchErr *SearchError
	assert.ErrorAs(t, err, &searchErr)
	assert.Equal(t, "product search failed", searchErr.Message)
}

func TestSearchProductsNormalizesPagination(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	// Bad page/pageSize fall back to 1/20.
	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "sku", "name", "description", "category", "price", "efficiency_rating", "annual_kwh", "created_at",
		}))

	s := NewProductStore(db)
	result, err := s.SearchProducts(context.Background(), "", "", "price_asc", -3, 5000)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.PageSize)
	assert.Empty(t, result.Products)
}

func TestUpsertProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO products").
		WithArgs("LED-60W", "LED Bulb", "desc", "lighting", 3.99, "ENERGY STAR", 9.8).
		WillReturnResult(sqlmock.NewResult(1, 1))

	s := NewProductStore(db)
	err = s.UpsertProduct(context.Background(), models.Product{
		SKU: "LED-60W", Name: "LED Bulb", Description: "desc", Category: "lighting",
		Price: 3.99, EfficiencyRating: "ENERGY STAR", AnnualKWh: 9.8,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
