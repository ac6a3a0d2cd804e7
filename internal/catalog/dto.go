package catalog

import "time"

type ProductDTO struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Condition     string    `json:"condition"`
	CategoryID    uint      `json:"categoryId"`
	CategoryName  string    `json:"categoryName,omitempty"`
	StockQuantity int       `json:"stockQuantity"`
	Images        []string  `json:"images"`
	InStock       bool      `json:"inStock"`
	CreatedAt     time.Time `json:"createdAt"`
}

type CategoryDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ListProductsResponse struct {
	Products []ProductDTO `json:"products"`
}

type ListCategoriesResponse struct {
	Categories []CategoryDTO `json:"categories"`
}

type UpsertProductRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Condition     string   `json:"condition"`
	CategoryID    uint     `json:"categoryId"`
	StockQuantity int      `json:"stockQuantity"`
	Images        []string `json:"images"`
	IsActive      *bool    `json:"isActive,omitempty"`
}
