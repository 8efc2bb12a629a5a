package api

import (
	"net/http"

	"freshcart-be/internal/category"
	"freshcart-be/internal/checkout"
	"freshcart-be/internal/dashboard"
	"freshcart-be/internal/httpx"
	"freshcart-be/internal/logger"
	"freshcart-be/internal/media"
	"freshcart-be/internal/middleware"
	"freshcart-be/internal/order"
	"freshcart-be/internal/payment"
	"freshcart-be/internal/product"
	"freshcart-be/internal/user"

	"github.com/go-chi/chi/v5"
)

// Deps collects everything the HTTP layer needs.
type Deps struct {
	Users      user.Service
	Categories category.Service
	Products   product.Service
	Orders     order.Service
	Dashboard  dashboard.Service
	Checkout   checkout.Service
	Gateway    payment.Gateway
	Uploader   media.Uploader
	ClientURL  string
}

// NewRouter wires the full route table with its middleware stack.
func NewRouter(deps Deps) chi.Router {
	authH := NewAuthHandler(deps.Users)
	categoryH := NewCategoryHandler(deps.Categories)
	productH := NewProductHandler(deps.Products, deps.Uploader)
	orderH := NewOrderHandler(deps.Orders)
	paymentH := NewPaymentHandler(deps.Gateway, deps.Checkout)
	userH := NewUserHandler(deps.Users)
	dashboardH := NewDashboardHandler(deps.Dashboard)

	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.CORS(deps.ClientURL))
	r.Use(middleware.RateLimitMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authH.Register)
			r.Post("/login", authH.Login)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryH.List)
			r.Get("/{id}", categoryH.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth, middleware.RequireAdmin)
				r.Post("/", categoryH.Create)
				r.Put("/{id}", categoryH.Update)
				r.Delete("/{id}", categoryH.Delete)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productH.List)
			r.Get("/{idOrSlug}", productH.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth, middleware.RequireAdmin)
				r.Post("/", productH.Create)
				r.Put("/{id}", productH.Update)
				r.Delete("/{id}", productH.Delete)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", orderH.Create)
			r.Get("/myorders", orderH.ListMine)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/admin", orderH.ListAll)
				r.Put("/{id}/status", orderH.UpdateStatus)
			})
		})

		r.Route("/payments", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/create-paypal-order", paymentH.CreateIntent)
			r.Post("/capture-paypal-payment", paymentH.Capture)
		})

		r.With(middleware.RequireAuth).Post("/checkout/complete", paymentH.CompleteCheckout)

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireAuth, middleware.RequireAdmin)
			r.Get("/", userH.List)
			r.Get("/stats", userH.Stats)
			r.Delete("/{id}", userH.Delete)
		})

		r.With(middleware.RequireAuth, middleware.RequireAdmin).
			Get("/dashboard/stats", dashboardH.Stats)
	})

	return r
}
