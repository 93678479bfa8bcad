// Package rest wires the HTTP surface: router, middleware chain, and the
// route table for products, orders, users, payments, and the admin dashboard.
package rest

import (
	"fmt"
	"net/http"
	"time"

	"storefront-backend/infrastructure/di"
	"storefront-backend/interfaces/http/rest/handlers"
	custommw "storefront-backend/interfaces/http/rest/middleware"
	"storefront-backend/pkg/auth"
	"storefront-backend/pkg/common"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Setup builds the router from the dependency container. It fails when the
// container carries an unusable auth configuration, so a misconfigured
// deployment dies on startup instead of serving unverifiable tokens.
func Setup(c *di.Container) (chi.Router, error) {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(custommw.Logger(c.Logger))

	if c.Config.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		common.RespondJSON(w, http.StatusOK, common.Fields{"status": "healthy"})
	})
	r.Get("/ready", func(w http.ResponseWriter, _ *http.Request) {
		common.RespondJSON(w, http.StatusOK, common.Fields{"status": "ready"})
	})

	validator, err := auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: c.Config.JWTSecret,
		Issuer:    c.Config.JWTIssuer,
	})
	if err != nil {
		return nil, fmt.Errorf("building JWT validator: %w", err)
	}
	authenticate := custommw.Authenticate(validator, c.Logger)
	adminOnly := custommw.AdminOnly()

	productHandler := handlers.NewProductHandler(c.CommandBus, c.QueryBus, c.ErrorHandler, c.Logger)
	orderHandler := handlers.NewOrderHandler(c.CommandBus, c.QueryBus, c.ErrorHandler, c.Logger)
	userHandler := handlers.NewUserHandler(c.CommandBus, c.QueryBus, c.ErrorHandler, c.Logger)
	paymentHandler := handlers.NewPaymentHandler(
		c.CommandBus, c.QueryBus, c.PaymentGateway, c.Config.PaymentCurrency, c.ErrorHandler, c.Logger)
	dashboardHandler := handlers.NewDashboardHandler(c.QueryBus, c.ErrorHandler, c.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/new", userHandler.RegisterUser)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, adminOnly)
				r.Get("/all", userHandler.AllUsers)
				r.Get("/{userID}", userHandler.GetUser)
				r.Delete("/{userID}", userHandler.DeleteUser)
			})
		})

		r.Route("/product", func(r chi.Router) {
			r.Get("/latest", productHandler.LatestProducts)
			r.Get("/categories", productHandler.Categories)
			r.Get("/all", productHandler.SearchProducts)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, adminOnly)
				r.Get("/admin-products", productHandler.AdminProducts)
				r.Post("/new", productHandler.CreateProduct)
				r.Put("/{productID}", productHandler.UpdateProduct)
				r.Delete("/{productID}", productHandler.DeleteProduct)
			})

			r.Get("/{productID}", productHandler.GetProduct)
		})

		r.Route("/order", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/new", orderHandler.PlaceOrder)
				r.Get("/my", orderHandler.MyOrders)
			})

			r.Group(func(r chi.Router) {
				r.Use(authenticate, adminOnly)
				r.Get("/all", orderHandler.AllOrders)
				r.Put("/{orderID}", orderHandler.ProcessOrder)
				r.Delete("/{orderID}", orderHandler.DeleteOrder)
			})

			r.With(authenticate).Get("/{orderID}", orderHandler.GetOrder)
		})

		r.Route("/payment", func(r chi.Router) {
			r.With(authenticate).Post("/create", paymentHandler.CreateIntent)
			r.Get("/discount", paymentHandler.ApplyDiscount)

			r.Route("/coupon", func(r chi.Router) {
				r.Use(authenticate, adminOnly)
				r.Post("/new", paymentHandler.CreateCoupon)
				r.Get("/all", paymentHandler.AllCoupons)
				r.Delete("/{couponID}", paymentHandler.DeleteCoupon)
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(authenticate, adminOnly)
			r.Get("/stats", dashboardHandler.Stats)
			r.Get("/pie", dashboardHandler.PieCharts)
			r.Get("/bar", dashboardHandler.BarCharts)
			r.Get("/line", dashboardHandler.LineCharts)
		})
	})

	return r, nil
}
