package router

import (
	"net/http"

	"shopfront/internal/handler"
	"shopfront/internal/metrics"
	"shopfront/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Products  *handler.ProductHandler
	Cart      *handler.CartHandler
	Orders    *handler.OrderHandler
	Addresses *handler.AddressHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, parser middleware.TokenParser, m *metrics.Metrics, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	})
	mux.Handle("GET /metrics", m.Handler())

	mux.HandleFunc("GET /api/products", h.Products.GetAll)
	mux.HandleFunc("GET /api/products/{id}", h.Products.GetByID)

	mux.HandleFunc("GET /api/cart", h.Cart.Get)
	mux.HandleFunc("POST /api/cart/items", h.Cart.AddItem)
	mux.HandleFunc("PATCH /api/cart/items/{id}", h.Cart.UpdateItem)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.Cart.RemoveItem)
	mux.HandleFunc("POST /api/cart/clear", h.Cart.Clear)

	mux.HandleFunc("GET /api/addresses", h.Addresses.List)
	mux.HandleFunc("POST /api/addresses", h.Addresses.Create)

	mux.HandleFunc("POST /api/orders/checkout", h.Orders.Checkout)
	mux.HandleFunc("POST /api/orders/reviews", h.Orders.CreateReview)
	mux.HandleFunc("GET /api/orders", h.Orders.List)
	mux.HandleFunc("GET /api/orders/{id}", h.Orders.GetByID)
	mux.HandleFunc("PATCH /api/orders/{id}/status", h.Orders.UpdateStatus)

	// Apply middleware in order: Recovery -> Logging -> CORS -> Authenticate -> Metrics
	var handler http.Handler = mux
	handler = middleware.Metrics(m)(handler)
	handler = middleware.Authenticate(parser, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
