package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rahulvj/atm-inventory-be/internal/api/handlers"
	"github.com/rahulvj/atm-inventory-be/internal/atm"
	"github.com/rahulvj/atm-inventory-be/internal/auth"
	"github.com/rahulvj/atm-inventory-be/internal/services"
	"github.com/rahulvj/atm-inventory-be/internal/websocket"
)

// newBase creates a chi router with the shared middleware stack.
func newBase() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	return r
}

// NewATMRouter configures the router for the ATM app.
func NewATMRouter(store *atm.AccountStore, sessions *atm.SessionManager, logoPath string) *chi.Mux {
	r := newBase()

	atmHandler := handlers.NewATMHandler(store, sessions, logoPath)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/login", atmHandler.Login)
		r.Get("/logo", atmHandler.GetLogo)

		// Everything else needs an authenticated session.
		r.Group(func(r chi.Router) {
			r.Use(atmHandler.SessionMiddleware)
			r.Post("/logout", atmHandler.Logout)
			r.Get("/screen", atmHandler.GetScreen)
			r.Post("/screen", atmHandler.SetScreen)
			r.Route("/account", func(r chi.Router) {
				r.Get("/", atmHandler.GetAccount)
				r.Get("/balance", atmHandler.GetBalance)
				r.Post("/deposit", atmHandler.Deposit)
				r.Post("/withdraw", atmHandler.Withdraw)
				r.Get("/history", atmHandler.GetHistory)
			})
		})
	})

	return r
}

// NewInventoryRouter configures the router for the inventory app.
func NewInventoryRouter(
	authService services.AuthServiceProvider,
	productService services.ProductServiceProvider,
	eventService services.EventServiceProvider,
	hub *websocket.Hub,
) *chi.Mux {
	r := newBase()

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, eventService, hub)
	eventHandler := handlers.NewEventHandler(eventService)
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware())

			r.Get("/ws", wsHandler.Serve)
			r.Get("/events", eventHandler.GetRecent)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", productHandler.GetAll)
				r.Post("/", productHandler.Create)
				r.Get("/low-stock", productHandler.LowStock)
				r.Get("/sales-summary", productHandler.SalesSummary)
				r.Route("/{id}", func(r chi.Router) {
					r.Put("/", productHandler.Update)
					r.Delete("/", productHandler.Delete)
				})
			})
		})
	})

	return r
}
