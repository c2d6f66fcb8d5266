package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	authHandler *handler.AuthHandler,
	cartHandler *handler.CartHandler,
	tokens middleware.TokenResolver,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Catalog routes (public)
	mux.HandleFunc("/items", productHandler.List)
	mux.HandleFunc("/items/categories", productHandler.Categories)

	// Auth routes (public)
	mux.HandleFunc("/auth/signup", authHandler.Signup)
	mux.HandleFunc("/auth/login", authHandler.Login)

	// Cart routes require a bearer token
	auth := middleware.BearerAuth(tokens, logger.With().Str("middleware", "auth").Logger())
	mux.Handle("/cart", auth(http.HandlerFunc(cartHandler.Get)))
	mux.Handle("/cart/add", auth(http.HandlerFunc(cartHandler.Add)))

	// Apply middleware in order: Recovery -> Logging -> RequestID -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
