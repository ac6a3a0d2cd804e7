package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	cache "slmarkets/internal/catalog/cache"
	"slmarkets/internal/domain"
)

type catalogService struct {
	repo   Repository
	cache  Cache
	logger *zap.Logger
}

func NewService(repo Repository, cache Cache, logger *zap.Logger) Service {
	return &catalogService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// ListProducts serves catalog reads cache-aside. Redis trouble degrades to a
// direct database read; the storefront never sees a cache failure.
func (s *catalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	products, err := s.cache.GetProducts(ctx, filter)
	if err == nil {
		return products, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("product cache read failed", zap.Error(err))
	}

	products, err = s.repo.FindActiveProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetProducts(ctx, filter, products); err != nil {
		s.logger.Warn("product cache write failed", zap.Error(err))
	}

	return products, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.cache.GetCategories(ctx)
	if err == nil {
		return categories, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("category cache read failed", zap.Error(err))
	}

	categories, err = s.repo.FindCategories(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetCategories(ctx, categories); err != nil {
		s.logger.Warn("category cache write failed", zap.Error(err))
	}

	return categories, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	id, err := s.repo.InsertProduct(ctx, product)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	return s.repo.FindProductByID(ctx, id)
}

func (s *catalogService) UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	return s.repo.FindProductByID(ctx, product.ID)
}

func (s *catalogService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}
