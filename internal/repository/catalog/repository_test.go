// internal/repository/catalog/repository_test.go
package catalog

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-filters/internal/common/errors"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestCategoryByID(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT id, name, filter_config").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "filter_config"}).
			AddRow(42, "Wine", []byte(`{"filters":[{"groupId":7,"sort":1}]}`)))

	cat, err := repo.CategoryByID(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), cat.ID)
	assert.Equal(t, "Wine", cat.Name)
	assert.JSONEq(t, `{"filters":[{"groupId":7,"sort":1}]}`, string(cat.FilterConfig))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT id, name, filter_config").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "filter_config"}))

	_, err := repo.CategoryByID(context.Background(), 99)

	require.Error(t, err)
	stdErr := errors.Normalize(err)
	assert.Equal(t, errors.ErrCodeCategoryNotFound, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestUniverseIDs(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT id").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2).AddRow(5))

	ids, err := repo.UniverseIDs(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 5}, ids)
}

func TestProductsByIDs_PreservesInputOrder(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT id, category_id, name, price, stock, visible").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "name", "price", "stock", "visible"}).
			AddRow(1, 42, "Riesling", 9.9, 3, true).
			AddRow(5, 42, "Merlot", 12.5, 0, true))

	products, err := repo.ProductsByIDs(context.Background(), []int64{5, 1})

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Merlot", products[0].Name)
	assert.Equal(t, "Riesling", products[1].Name)
}

func TestProductsByIDs_EmptyInputSkipsQuery(t *testing.T) {
	repo, mock := newRepo(t)

	products, err := repo.ProductsByIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParameterValues(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM product_parameters").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "group_id", "item_id", "label", "number_value", "text_value"}).
			AddRow(1, 7, 11, "Red", nil, "").
			AddRow(3, 8, nil, "", 40.0, ""))

	values, err := repo.ParameterValues(context.Background(), []int64{1, 3}, []int64{7, 8})

	require.NoError(t, err)
	require.Len(t, values, 2)

	require.NotNil(t, values[0].ItemID)
	assert.Equal(t, int64(11), *values[0].ItemID)
	assert.Equal(t, "Red", values[0].ItemLabel)
	assert.Nil(t, values[0].Number)

	assert.Nil(t, values[1].ItemID)
	require.NotNil(t, values[1].Number)
	assert.Equal(t, 40.0, *values[1].Number)
}

func TestQueryErrorIsRetryable(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT id").
		WithArgs(int64(42)).
		WillReturnError(assert.AnError)

	_, err := repo.UniverseIDs(context.Background(), 42)

	require.Error(t, err)
	stdErr := errors.Normalize(err)
	assert.Equal(t, errors.ErrCodeQueryExecutionFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
