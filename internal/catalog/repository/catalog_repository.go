package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"slmarkets/internal/domain"
	"slmarkets/internal/errors"
)

type MySQLCatalogRepository struct {
	db *sql.DB
}

func NewMySQLCatalogRepository(db *sql.DB) *MySQLCatalogRepository {
	return &MySQLCatalogRepository{db: db}
}

// FindActiveProducts lists the storefront catalog: active products only,
// newest first, optionally narrowed by category, condition or a name search.
func (r *MySQLCatalogRepository) FindActiveProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.product_condition,
		       p.category_id, c.name, p.stock_quantity, p.images, p.is_active,
		       p.created_at, p.updated_at
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.is_active = 1
	`
	args := []interface{}{}

	if filter.CategoryID != 0 {
		query += " AND p.category_id = ?"
		args = append(args, filter.CategoryID)
	}

	if filter.Condition != "" {
		query += " AND p.product_condition = ?"
		args = append(args, filter.Condition)
	}

	if filter.Search != "" {
		query += " AND p.name LIKE ?"
		args = append(args, "%"+filter.Search+"%")
	}

	query += " ORDER BY p.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (r *MySQLCatalogRepository) FindProductByID(ctx context.Context, id uint) (*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.product_condition,
		       p.category_id, c.name, p.stock_quantity, p.images, p.is_active,
		       p.created_at, p.updated_at
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = ?
	`

	row := r.db.QueryRowContext(ctx, query, id)
	product, err := scanProduct(row.Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product %d not found", id))
	}
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (r *MySQLCatalogRepository) InsertProduct(ctx context.Context, product domain.Product) (uint, error) {
	images, err := json.Marshal(product.Images)
	if err != nil {
		return 0, fmt.Errorf("encoding product images: %w", err)
	}

	query := `
		INSERT INTO products (name, description, price, product_condition,
			category_id, stock_quantity, images, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		product.Name, product.Description, product.Price, product.Condition,
		product.CategoryID, product.StockQuantity, images, product.IsActive,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLCatalogRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	images, err := json.Marshal(product.Images)
	if err != nil {
		return fmt.Errorf("encoding product images: %w", err)
	}

	query := `
		UPDATE products
		SET name = ?, description = ?, price = ?, product_condition = ?,
		    category_id = ?, stock_quantity = ?, images = ?, is_active = ?,
		    updated_at = NOW()
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		product.Name, product.Description, product.Price, product.Condition,
		product.CategoryID, product.StockQuantity, images, product.IsActive,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product %d not found", product.ID))
	}

	return nil
}

func (r *MySQLCatalogRepository) FindCategories(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM categories
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return categories, nil
}

func scanProduct(scan func(...interface{}) error) (*domain.Product, error) {
	var p domain.Product
	var images []byte

	err := scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Condition,
		&p.CategoryID, &p.CategoryName, &p.StockQuantity, &images, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning product row: %w", err)
	}

	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, fmt.Errorf("decoding product images: %w", err)
		}
	}

	return &p, nil
}
