package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"slmarkets/internal/domain"
	apperrors "slmarkets/internal/errors"
	"slmarkets/internal/validate"
)

type Controller struct {
	service Service
	logger  *zap.Logger
}

func NewController(service Service, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := domain.ProductFilter{
		Condition: r.URL.Query().Get("condition"),
		Search:    validate.Sanitize(r.URL.Query().Get("search")),
	}

	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.writeValidationError(w, "invalid categoryId", apperrors.ValidationDetail{
				Field:   "categoryId",
				Message: "categoryId must be a positive integer",
			})
			return
		}
		filter.CategoryID = uint(categoryID)
	}

	if filter.Condition != "" && !domain.ValidCondition(filter.Condition) {
		c.writeValidationError(w, "invalid condition", apperrors.ValidationDetail{
			Field:   "condition",
			Message: "condition must be new or used",
		})
		return
	}

	products, err := c.service.ListProducts(r.Context(), filter)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, ListProductsResponse{Products: toProductDTOs(products)})
}

func (c *Controller) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.service.ListCategories(r.Context())
	if err != nil {
		c.handleError(w, err)
		return
	}

	out := make([]CategoryDTO, 0, len(categories))
	for _, cat := range categories {
		out = append(out, CategoryDTO{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
		})
	}

	c.writeJSON(w, http.StatusOK, ListCategoriesResponse{Categories: out})
}

func (c *Controller) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req UpsertProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateUpsertRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	product, err := c.service.CreateProduct(r.Context(), toProduct(req, 0))
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, toProductDTO(*product))
}

func (c *Controller) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseUint(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		c.writeValidationError(w, "invalid productId", apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be a positive integer",
		})
		return
	}

	var req UpsertProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateUpsertRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	product, err := c.service.UpdateProduct(r.Context(), toProduct(req, uint(productID)))
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toProductDTO(*product))
}

func (c *Controller) validateUpsertRequest(req UpsertProductRequest) error {
	var details []apperrors.ValidationDetail

	if !validate.Name(req.Name) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name must be at least 2 characters long",
		})
	}

	if req.Price <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be greater than 0",
		})
	}

	if !domain.ValidCondition(req.Condition) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "condition",
			Message: "condition must be new or used",
		})
	}

	if req.CategoryID == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "categoryId",
			Message: "categoryId is required",
		})
	}

	if req.StockQuantity < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "stockQuantity",
			Message: "stockQuantity must not be negative",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func toProduct(req UpsertProductRequest, id uint) domain.Product {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	return domain.Product{
		ID:            id,
		Name:          validate.Sanitize(req.Name),
		Description:   validate.Sanitize(req.Description),
		Price:         req.Price,
		Condition:     req.Condition,
		CategoryID:    req.CategoryID,
		StockQuantity: req.StockQuantity,
		Images:        req.Images,
		IsActive:      active,
	}
}

func toProductDTO(p domain.Product) ProductDTO {
	images := p.Images
	if images == nil {
		images = []string{}
	}

	return ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Condition:     p.Condition,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
		StockQuantity: p.StockQuantity,
		Images:        images,
		InStock:       p.InStock(),
		CreatedAt:     p.CreatedAt,
	}
}

func toProductDTOs(products []domain.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDTO(p))
	}
	return out
}

func (c *Controller) handleError(w http.ResponseWriter, err error) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": err.Error(),
		})
		return
	}

	c.logger.Error("catalog operation failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
