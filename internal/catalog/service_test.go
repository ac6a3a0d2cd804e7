package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"slmarkets/internal/catalog/cache"
	"slmarkets/internal/domain"
)

type mockRepository struct {
	findProductsFn  func(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	findCategories  func(ctx context.Context) ([]domain.Category, error)
	insertProductFn func(ctx context.Context, product domain.Product) (uint, error)
	updateProductFn func(ctx context.Context, product domain.Product) error
	findByIDFn      func(ctx context.Context, id uint) (*domain.Product, error)

	findProductsCalls int
}

func (m *mockRepository) FindActiveProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	m.findProductsCalls++
	return m.findProductsFn(ctx, filter)
}

func (m *mockRepository) FindCategories(ctx context.Context) ([]domain.Category, error) {
	return m.findCategories(ctx)
}

func (m *mockRepository) InsertProduct(ctx context.Context, product domain.Product) (uint, error) {
	return m.insertProductFn(ctx, product)
}

func (m *mockRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	return m.updateProductFn(ctx, product)
}

func (m *mockRepository) FindProductByID(ctx context.Context, id uint) (*domain.Product, error) {
	return m.findByIDFn(ctx, id)
}

type mockCache struct {
	getProductsFn   func(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	setProductsFn   func(ctx context.Context, filter domain.ProductFilter, products []domain.Product) error
	getCategoriesFn func(ctx context.Context) ([]domain.Category, error)
	setCategoriesFn func(ctx context.Context, categories []domain.Category) error

	invalidateCalls int
	setCalls        int
}

func (m *mockCache) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if m.getProductsFn != nil {
		return m.getProductsFn(ctx, filter)
	}
	return nil, cache.ErrCacheMiss
}

func (m *mockCache) SetProducts(ctx context.Context, filter domain.ProductFilter, products []domain.Product) error {
	m.setCalls++
	if m.setProductsFn != nil {
		return m.setProductsFn(ctx, filter, products)
	}
	return nil
}

func (m *mockCache) GetCategories(ctx context.Context) ([]domain.Category, error) {
	if m.getCategoriesFn != nil {
		return m.getCategoriesFn(ctx)
	}
	return nil, cache.ErrCacheMiss
}

func (m *mockCache) SetCategories(ctx context.Context, categories []domain.Category) error {
	m.setCalls++
	if m.setCategoriesFn != nil {
		return m.setCategoriesFn(ctx, categories)
	}
	return nil
}

func (m *mockCache) Invalidate(ctx context.Context) error {
	m.invalidateCalls++
	return nil
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Blender", Price: 1150, Condition: "new", CategoryID: 1, StockQuantity: 10, IsActive: true},
		{ID: 2, Name: "Kettle", Price: 1800, Condition: "used", CategoryID: 1, StockQuantity: 0, IsActive: true},
	}
}

func TestListProducts_CacheMissFallsThroughAndPopulates(t *testing.T) {
	repo := &mockRepository{
		findProductsFn: func(context.Context, domain.ProductFilter) ([]domain.Product, error) {
			return sampleProducts(), nil
		},
	}
	mc := &mockCache{}

	svc := NewService(repo, mc, zap.NewNop())

	products, err := svc.ListProducts(context.Background(), domain.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, 1, repo.findProductsCalls)
	assert.Equal(t, 1, mc.setCalls)
}

func TestListProducts_CacheHitSkipsRepository(t *testing.T) {
	repo := &mockRepository{
		findProductsFn: func(context.Context, domain.ProductFilter) ([]domain.Product, error) {
			t.Fatal("repository must not be queried on a cache hit")
			return nil, nil
		},
	}
	mc := &mockCache{
		getProductsFn: func(context.Context, domain.ProductFilter) ([]domain.Product, error) {
			return sampleProducts(), nil
		},
	}

	svc := NewService(repo, mc, zap.NewNop())

	products, err := svc.ListProducts(context.Background(), domain.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, 0, repo.findProductsCalls)
}

func TestListProducts_CacheErrorDegradesToRepository(t *testing.T) {
	repo := &mockRepository{
		findProductsFn: func(context.Context, domain.ProductFilter) ([]domain.Product, error) {
			return sampleProducts(), nil
		},
	}
	mc := &mockCache{
		getProductsFn: func(context.Context, domain.ProductFilter) ([]domain.Product, error) {
			return nil, assert.AnError
		},
	}

	svc := NewService(repo, mc, zap.NewNop())

	products, err := svc.ListProducts(context.Background(), domain.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestListCategories_CacheMiss(t *testing.T) {
	repo := &mockRepository{
		findCategories: func(context.Context) ([]domain.Category, error) {
			return []domain.Category{{ID: 1, Name: "Kitchen"}}, nil
		},
	}
	mc := &mockCache{}

	svc := NewService(repo, mc, zap.NewNop())

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Kitchen", categories[0].Name)
	assert.Equal(t, 1, mc.setCalls)
}

func TestCreateProduct_InvalidatesCache(t *testing.T) {
	repo := &mockRepository{
		insertProductFn: func(_ context.Context, product domain.Product) (uint, error) {
			return 7, nil
		},
		findByIDFn: func(_ context.Context, id uint) (*domain.Product, error) {
			assert.Equal(t, uint(7), id)
			return &domain.Product{ID: 7, Name: "Blender", CategoryName: "Kitchen"}, nil
		},
	}
	mc := &mockCache{}

	svc := NewService(repo, mc, zap.NewNop())

	product, err := svc.CreateProduct(context.Background(), domain.Product{Name: "Blender"})
	require.NoError(t, err)
	assert.Equal(t, uint(7), product.ID)
	assert.Equal(t, "Kitchen", product.CategoryName)
	assert.Equal(t, 1, mc.invalidateCalls)
}

func TestUpdateProduct_InvalidatesCache(t *testing.T) {
	repo := &mockRepository{
		updateProductFn: func(_ context.Context, product domain.Product) error {
			assert.Equal(t, uint(3), product.ID)
			return nil
		},
		findByIDFn: func(_ context.Context, id uint) (*domain.Product, error) {
			return &domain.Product{ID: 3, Name: "Kettle"}, nil
		},
	}
	mc := &mockCache{}

	svc := NewService(repo, mc, zap.NewNop())

	product, err := svc.UpdateProduct(context.Background(), domain.Product{ID: 3, Name: "Kettle"})
	require.NoError(t, err)
	assert.Equal(t, uint(3), product.ID)
	assert.Equal(t, 1, mc.invalidateCalls)
}

func TestUpdateProduct_RepositoryErrorSkipsInvalidation(t *testing.T) {
	repo := &mockRepository{
		updateProductFn: func(context.Context, domain.Product) error {
			return assert.AnError
		},
	}
	mc := &mockCache{}

	svc := NewService(repo, mc, zap.NewNop())

	_, err := svc.UpdateProduct(context.Background(), domain.Product{ID: 3})
	require.Error(t, err)
	assert.Equal(t, 0, mc.invalidateCalls)
}
