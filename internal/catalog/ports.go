package catalog

import (
	"context"

	"slmarkets/internal/domain"
)

type Service interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type Repository interface {
	FindActiveProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	FindCategories(ctx context.Context) ([]domain.Category, error)
	InsertProduct(ctx context.Context, product domain.Product) (uint, error)
	UpdateProduct(ctx context.Context, product domain.Product) error
	FindProductByID(ctx context.Context, id uint) (*domain.Product, error)
}

type Cache interface {
	GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	SetProducts(ctx context.Context, filter domain.ProductFilter, products []domain.Product) error
	GetCategories(ctx context.Context) ([]domain.Category, error)
	SetCategories(ctx context.Context, categories []domain.Category) error
	Invalidate(ctx context.Context) error
}
