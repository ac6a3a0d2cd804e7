package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slmarkets/internal/domain"
	apperrors "slmarkets/internal/errors"
	"slmarkets/internal/testutil"
)

func seedCategory(t *testing.T, db *sql.DB, id uint, name string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO categories (id, name) VALUES (?, ?)`, id, name)
	require.NoError(t, err)
}

func TestCatalogRepository_InsertAndFindProduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	seedCategory(t, db, 1, "Kitchen")
	repo := NewMySQLCatalogRepository(db)

	id, err := repo.InsertProduct(context.Background(), domain.Product{
		Name:          "Blender",
		Description:   "500W countertop blender",
		Price:         1150,
		Condition:     "new",
		CategoryID:    1,
		StockQuantity: 10,
		Images:        []string{"https://cdn.example.com/blender.jpg"},
		IsActive:      true,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	product, err := repo.FindProductByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Blender", product.Name)
	assert.Equal(t, "Kitchen", product.CategoryName)
	assert.Equal(t, []string{"https://cdn.example.com/blender.jpg"}, product.Images)
	assert.True(t, product.InStock())
}

func TestCatalogRepository_FindActiveProducts_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	seedCategory(t, db, 1, "Kitchen")
	seedCategory(t, db, 2, "Electronics")
	repo := NewMySQLCatalogRepository(db)

	seed := []domain.Product{
		{Name: "Blender", Price: 1150, Condition: "new", CategoryID: 1, StockQuantity: 10, IsActive: true},
		{Name: "Used Kettle", Price: 600, Condition: "used", CategoryID: 1, StockQuantity: 2, IsActive: true},
		{Name: "Phone", Price: 12000, Condition: "new", CategoryID: 2, StockQuantity: 5, IsActive: true},
		{Name: "Retired Toaster", Price: 900, Condition: "new", CategoryID: 1, StockQuantity: 0, IsActive: false},
	}
	for _, p := range seed {
		_, err := repo.InsertProduct(context.Background(), p)
		require.NoError(t, err)
	}

	all, err := repo.FindActiveProducts(context.Background(), domain.ProductFilter{})
	require.NoError(t, err)
	// Inactive products never appear in the storefront listing.
	assert.Len(t, all, 3)

	kitchen, err := repo.FindActiveProducts(context.Background(), domain.ProductFilter{CategoryID: 1})
	require.NoError(t, err)
	assert.Len(t, kitchen, 2)

	used, err := repo.FindActiveProducts(context.Background(), domain.ProductFilter{Condition: "used"})
	require.NoError(t, err)
	require.Len(t, used, 1)
	assert.Equal(t, "Used Kettle", used[0].Name)

	search, err := repo.FindActiveProducts(context.Background(), domain.ProductFilter{Search: "blend"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "Blender", search[0].Name)
}

func TestCatalogRepository_UpdateProduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	seedCategory(t, db, 1, "Kitchen")
	repo := NewMySQLCatalogRepository(db)

	id, err := repo.InsertProduct(context.Background(), domain.Product{
		Name: "Blender", Price: 1150, Condition: "new", CategoryID: 1, StockQuantity: 10, IsActive: true,
	})
	require.NoError(t, err)

	err = repo.UpdateProduct(context.Background(), domain.Product{
		ID: id, Name: "Blender Pro", Price: 1500, Condition: "new", CategoryID: 1, StockQuantity: 4, IsActive: true,
	})
	require.NoError(t, err)

	product, err := repo.FindProductByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Blender Pro", product.Name)
	assert.Equal(t, float64(1500), product.Price)
	assert.Equal(t, 4, product.StockQuantity)
}

func TestCatalogRepository_UpdateUnknownProduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLCatalogRepository(db)

	err := repo.UpdateProduct(context.Background(), domain.Product{
		ID: 9999, Name: "Ghost", Price: 1, Condition: "new", CategoryID: 1,
	})
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestCatalogRepository_FindCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	seedCategory(t, db, 1, "Kitchen")
	seedCategory(t, db, 2, "Electronics")

	repo := NewMySQLCatalogRepository(db)

	categories, err := repo.FindCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	// Sorted by name.
	assert.Equal(t, "Electronics", categories[0].Name)
	assert.Equal(t, "Kitchen", categories[1].Name)
}
