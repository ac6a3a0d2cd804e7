package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"slmarkets/internal/config"
	"slmarkets/internal/dto"
	apperrors "slmarkets/internal/errors"
	"slmarkets/internal/metrics"
	"slmarkets/internal/validate"
)

type MpesaService interface {
	Initiate(ctx context.Context, orderCode, phone string, amount float64) (*dto.InitiatePaymentResponse, error)
	Callback(ctx context.Context, orderCode, transactionCode, status, resultDesc string) (*dto.PaymentResponse, error)
	Verify(ctx context.Context, orderCode, transactionCode string) (*dto.PaymentResponse, error)
}

// PaymentController keeps the serverless-function contract the storefront
// already speaks: one endpoint, an `action` query value, JSON bodies and
// permissive CORS on every response.
type PaymentController struct {
	service MpesaService
	policy  config.OrderConfig
	logger  *zap.Logger
}

func NewPaymentController(service MpesaService, policy config.OrderConfig, logger *zap.Logger) *PaymentController {
	return &PaymentController{
		service: service,
		policy:  policy,
		logger:  logger,
	}
}

func (c *PaymentController) Handle(w http.ResponseWriter, r *http.Request) {
	writeCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	action := r.URL.Query().Get("action")

	switch action {
	case "initiate":
		c.handleInitiate(w, r)
	case "callback":
		c.handleCallback(w, r)
	case "verify":
		c.handleVerify(w, r)
	default:
		c.writeError(w, http.StatusBadRequest, "Invalid action")
	}
}

func (c *PaymentController) handleInitiate(w http.ResponseWriter, r *http.Request) {
	var req dto.InitiatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	if !validate.OrderCode(req.OrderCode) {
		metrics.ObserveOrderOperation("payment_initiate", "validation_error")
		c.writeError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	if !validate.Phone(req.Phone) {
		metrics.ObserveOrderOperation("payment_initiate", "validation_error")
		c.writeError(w, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	if !validate.Amount(req.Amount, c.policy.MaxAmount) {
		metrics.ObserveOrderOperation("payment_initiate", "validation_error")
		c.writeError(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	resp, err := c.service.Initiate(r.Context(), req.OrderCode, validate.NormalizePhone(req.Phone), req.Amount)
	if err != nil {
		c.handleServiceError(w, "payment_initiate", err)
		return
	}

	metrics.ObserveOrderOperation("payment_initiate", "success")
	c.writeJSON(w, http.StatusOK, resp)
}

func (c *PaymentController) handleCallback(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	if !validate.OrderCode(req.OrderCode) {
		metrics.ObserveOrderOperation("payment_callback", "validation_error")
		c.writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	if !validate.MpesaCode(req.TransactionCode) {
		metrics.ObserveOrderOperation("payment_callback", "validation_error")
		c.writeError(w, http.StatusBadRequest, "Invalid transaction code")
		return
	}

	resp, err := c.service.Callback(r.Context(), req.OrderCode, req.TransactionCode, req.Status, req.ResultDesc)
	if err != nil {
		c.handleServiceError(w, "payment_callback", err)
		return
	}

	metrics.ObserveOrderOperation("payment_callback", "success")
	c.writeJSON(w, http.StatusOK, resp)
}

func (c *PaymentController) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	if !validate.OrderCode(req.OrderCode) {
		metrics.ObserveOrderOperation("payment_verify", "validation_error")
		c.writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	if !validate.MpesaCode(req.TransactionCode) {
		metrics.ObserveOrderOperation("payment_verify", "validation_error")
		c.writeError(w, http.StatusBadRequest, "Invalid transaction code")
		return
	}

	resp, err := c.service.Verify(r.Context(), req.OrderCode, req.TransactionCode)
	if err != nil {
		c.handleServiceError(w, "payment_verify", err)
		return
	}

	metrics.ObserveOrderOperation("payment_verify", "success")
	c.writeJSON(w, http.StatusOK, resp)
}

func (c *PaymentController) handleServiceError(w http.ResponseWriter, operation string, err error) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		metrics.ObserveOrderOperation(operation, "not_found")
		c.writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	metrics.ObserveOrderOperation(operation, "error")
	c.logger.Error("payment operation failed", zap.String("operation", operation), zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "Failed to update order")
}

// The storefront calls this surface directly from the browser, so every
// response carries open CORS headers, mirroring the hosted functions it
// replaces.
func writeCORSHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Headers", "authorization, content-type")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("X-Content-Type-Options", "nosniff")
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (c *PaymentController) writeError(w http.ResponseWriter, status int, message string) {
	c.writeJSON(w, status, errorResponse{Success: false, Error: message})
}

func (c *PaymentController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
