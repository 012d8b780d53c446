package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/prasetyoadi/umkm-storefront/pkg/errors"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&Product{}))

	seed := []Product{
		{ID: "prd-1", Name: "Keripik Singkong", Price: 15000, Category: "Camilan", Weight: 250, Position: 1},
		{ID: "prd-2", Name: "Kopi Robusta", Price: 45000, Category: "Minuman", Weight: 250, Position: 2},
		{ID: "prd-3", Name: "Kacang Mete", Price: 95000, Category: "Camilan", Weight: 500, Position: 3},
	}
	require.NoError(t, conn.Create(&seed).Error)
	return NewRepository(conn)
}

func TestListPreservesDisplayOrder(t *testing.T) {
	repo := newTestRepo(t)

	products, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "prd-1", products[0].ID)
	assert.Equal(t, "prd-3", products[2].ID)
}

func TestListFiltersByCategory(t *testing.T) {
	repo := newTestRepo(t)

	products, err := repo.List(context.Background(), "Camilan")
	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.Equal(t, "Camilan", p.Category)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), "prd-999")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestCategoriesAreDistinct(t *testing.T) {
	repo := newTestRepo(t)

	categories, err := repo.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}
