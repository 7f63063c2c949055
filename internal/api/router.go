package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mblanco/stockroom-be/internal/api/handlers"
	"github.com/mblanco/stockroom-be/internal/auth"
	"github.com/mblanco/stockroom-be/internal/services"
)

// RouterOptions carries the request-surface configuration.
type RouterOptions struct {
	AllowedOrigins []string
	SecureCookies  bool
}

// NewRouter creates and configures a new Chi router.
func NewRouter(
	userService services.UserServiceProvider,
	sessionService services.SessionServiceProvider,
	categoryService services.CategoryServiceProvider,
	productService services.ProductServiceProvider,
	opts RouterOptions,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration; credentials must be allowed for the session cookie.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, sessionService, opts.SecureCookies)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)

	r.Get("/", authHandler.Index)

	// Auth endpoints
	r.Post("/signup", authHandler.Signup)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)
	r.Get("/check_session", authHandler.CheckSession)

	// Category endpoints; listing and creation are open
	r.Get("/categories", categoryHandler.List)
	r.Post("/categories/new", categoryHandler.Create)

	// Session-protected endpoints
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSession(sessionService))

		r.Get("/profile", authHandler.Profile)
		r.Delete("/profile", authHandler.DeleteAccount)

		r.Route("/products", func(r chi.Router) {
			r.Post("/new", productHandler.Create)
			r.Patch("/{id}/edit", productHandler.Update)
			r.Delete("/{id}", productHandler.Delete)
		})
	})

	return r
}
