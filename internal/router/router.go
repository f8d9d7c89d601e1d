package router

import (
	"net/http"

	"shopease/internal/handler"
	"shopease/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", handler.NotFound(logger))
	mux.HandleFunc("/health", catalogHandler.Health)

	// Product handler function
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Check if this is a request for a specific product ID
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			catalogHandler.GetByID(w, r)
			return
		}
		if r.Method == http.MethodPost {
			catalogHandler.Create(w, r)
			return
		}
		catalogHandler.List(w, r)
	}

	// Register product routes (both with and without trailing slash)
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	mux.HandleFunc("/api/categories", catalogHandler.Categories)
	mux.HandleFunc("/api/stats", catalogHandler.Stats)

	mux.HandleFunc("/api/cart", cartHandler.Cart)
	mux.HandleFunc("/api/cart/items", cartHandler.Items)
	mux.HandleFunc("/api/cart/items/", cartHandler.Items)

	// Apply middleware in order: Recovery -> Logging -> RequestID -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
