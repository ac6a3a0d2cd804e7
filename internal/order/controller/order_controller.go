package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"slmarkets/internal/config"
	"slmarkets/internal/domain"
	"slmarkets/internal/dto"
	apperrors "slmarkets/internal/errors"
	"slmarkets/internal/metrics"
	"slmarkets/internal/validate"
)

type CreateOrderUseCase interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, []domain.OrderItem, error)
}

type TrackOrderUseCase interface {
	TrackOrder(ctx context.Context, code, phone string) (*domain.Order, []domain.OrderItem, error)
}

type UpdateStatusUseCase interface {
	UpdateStatus(ctx context.Context, code, status string) error
}

type OrderController struct {
	createUC CreateOrderUseCase
	trackUC  TrackOrderUseCase
	statusUC UpdateStatusUseCase
	policy   config.OrderConfig
	logger   *zap.Logger
}

func NewOrderController(
	createUC CreateOrderUseCase,
	trackUC TrackOrderUseCase,
	statusUC UpdateStatusUseCase,
	policy config.OrderConfig,
	logger *zap.Logger,
) *OrderController {
	return &OrderController{
		createUC: createUC,
		trackUC:  trackUC,
		statusUC: statusUC,
		policy:   policy,
		logger:   logger,
	}
}

func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if validationErr := c.validateCreateOrderRequest(req); validationErr != nil {
		ve, _ := apperrors.IsValidationError(validationErr)
		metrics.ObserveOrderOperation("create", "validation_error")
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	order, items, err := c.createUC.CreateOrder(r.Context(), req)
	if err != nil {
		metrics.ObserveOrderOperation("create", "error")
		c.handleError(w, err, logger)
		return
	}

	metrics.ObserveOrderOperation("create", "success")

	c.writeJSON(w, http.StatusCreated, dto.CreateOrderResponse{
		TraceID:   traceID,
		Order:     toOrderDTO(*order),
		Items:     toOrderItemDTOs(items),
		Timestamp: time.Now().UTC(),
	})
}

func (c *OrderController) validateCreateOrderRequest(req dto.CreateOrderRequest) error {
	var details []apperrors.ValidationDetail

	if !validate.Name(req.CustomerName) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerName",
			Message: "customer name must be at least 2 characters long",
		})
	}

	if !validate.Phone(req.CustomerPhone) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerPhone",
			Message: "phone must be a valid Kenyan phone number",
		})
	}

	if req.CustomerEmail != "" && !validate.Email(req.CustomerEmail) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerEmail",
			Message: "email must be a valid address",
		})
	}

	if !validate.Address(req.DeliveryAddress) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "deliveryAddress",
			Message: "delivery address must be at least 5 characters long",
		})
	}

	if validate.Sanitize(req.County) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "county",
			Message: "county is required",
		})
	}

	if validate.Sanitize(req.Town) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "town",
			Message: "town is required",
		})
	}

	if !validate.Amount(req.TotalAmount, c.policy.MaxAmount) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "totalAmount",
			Message: "total amount must be greater than 0 and within the order ceiling",
		})
	}

	if len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "order must contain at least one item",
		})
	}

	var subtotal float64
	for _, item := range req.Items {
		subtotal += item.TotalPrice
	}

	if len(req.Items) > 0 && req.DeliveryFee != c.policy.DeliveryFeeFor(subtotal) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "deliveryFee",
			Message: "deliveryFee must match the delivery fee policy",
		})
	}

	for idx, item := range req.Items {
		if item.ProductID == 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].productId",
				Message: "productId is required",
			})
		}

		if item.Quantity < 1 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].quantity",
				Message: "quantity must be a positive integer",
			})
		}

		if item.UnitPrice < 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].unitPrice",
				Message: "unitPrice must be non-negative",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func (c *OrderController) TrackOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.TrackOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.OrderCode == "" || req.Phone == "" {
		c.writeValidationError(w, "orderCode and phone are required",
			apperrors.ValidationDetail{Field: "orderCode", Message: "orderCode is required"},
			apperrors.ValidationDetail{Field: "phone", Message: "phone is required"},
		)
		return
	}

	order, items, err := c.trackUC.TrackOrder(r.Context(),
		validate.Sanitize(req.OrderCode), validate.NormalizePhone(req.Phone))
	if err != nil {
		// A missing or mismatched order is an ordinary empty result here, not
		// an error: the code+phone pair is the customer's lookup key.
		if _, ok := apperrors.IsNotFoundError(err); ok {
			metrics.ObserveOrderOperation("track", "not_found")
			c.writeJSON(w, http.StatusOK, dto.TrackOrderResponse{Found: false})
			return
		}
		metrics.ObserveOrderOperation("track", "error")
		c.handleError(w, err, c.logger)
		return
	}

	metrics.ObserveOrderOperation("track", "success")

	orderDTO := toOrderDTO(*order)
	c.writeJSON(w, http.StatusOK, dto.TrackOrderResponse{
		Found: true,
		Order: &orderDTO,
		Items: toOrderItemDTOs(items),
	})
}

func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "orderCode")

	var req dto.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.statusUC.UpdateStatus(r.Context(), code, req.Status); err != nil {
		metrics.ObserveOrderOperation("status_update", "error")
		c.handleError(w, err, c.logger)
		return
	}

	metrics.ObserveOrderOperation("status_update", "success")

	c.writeJSON(w, http.StatusOK, dto.UpdateOrderStatusResponse{
		OrderCode: code,
		Status:    req.Status,
	})
}

func (c *OrderController) handleError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": err.Error(),
		})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

func toOrderDTO(order domain.Order) dto.OrderDTO {
	out := dto.OrderDTO{
		ID:                   order.ID,
		Code:                 order.Code,
		CustomerName:         order.CustomerName,
		CustomerPhone:        order.CustomerPhone,
		CustomerEmail:        order.CustomerEmail,
		DeliveryAddress:      order.DeliveryAddress,
		County:               order.County,
		Town:                 order.Town,
		TotalAmount:          order.TotalAmount,
		DeliveryFee:          order.DeliveryFee,
		Status:               order.Status,
		PaymentMethod:        order.PaymentMethod,
		MpesaTransactionCode: order.MpesaTransactionCode,
		CreatedAt:            order.CreatedAt,
		UpdatedAt:            order.UpdatedAt,
	}

	if order.EstimatedDeliveryDate != nil {
		date := order.EstimatedDeliveryDate.Format("2006-01-02")
		out.EstimatedDeliveryDate = &date
	}

	return out
}

func toOrderItemDTOs(items []domain.OrderItem) []dto.OrderItemDTO {
	out := make([]dto.OrderItemDTO, len(items))
	for i, item := range items {
		out[i] = dto.OrderItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		}
	}
	return out
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *OrderController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
