package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"slmarkets/internal/catalog"
	"slmarkets/internal/metrics"
	ordercontroller "slmarkets/internal/order/controller"
	paymentcontroller "slmarkets/internal/payment/controller"
)

// NewRouter assembles the HTTP surface: the public storefront API, the admin
// endpoints and the simulated payment function.
func NewRouter(
	orderCtrl *ordercontroller.OrderController,
	paymentCtrl *paymentcontroller.PaymentController,
	catalogCtrl *catalog.Controller,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", catalogCtrl.ListProducts)
		r.Get("/categories", catalogCtrl.ListCategories)

		r.Post("/orders", orderCtrl.CreateOrder)
		r.Post("/orders/track", orderCtrl.TrackOrder)

		r.Route("/admin", func(r chi.Router) {
			r.Put("/orders/{orderCode}/status", orderCtrl.UpdateStatus)
			r.Post("/products", catalogCtrl.CreateProduct)
			r.Put("/products/{productId}", catalogCtrl.UpdateProduct)
		})
	})

	// The payment endpoint mirrors a serverless function surface: one path,
	// action dispatch in the body, permissive CORS, OPTIONS preflight.
	r.Post("/functions/mpesa-payment", paymentCtrl.Handle)
	r.Options("/functions/mpesa-payment", paymentCtrl.Handle)

	return r
}
