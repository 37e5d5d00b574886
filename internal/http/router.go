package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxRequestBodySize = 1 << 20

type Handlers struct {
	Orders   *OrdersHandler
	Reviews  *ReviewsHandler
	Users    *UsersHandler
	Products *ProductsHandler
	Cart     *CartHandler
}

// NewRouter mounts every route at the root and again under /api, the paths
// the storefront pages call.
func NewRouter(handlers Handlers, tokens TokenParser, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.RequestSize(maxRequestBodySize))
	r.Use(middleware.Compress(5))
	r.Use(OptionalAuth(tokens))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	routes := func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", handlers.Orders.CreateOrder)
			r.Get("/", handlers.Orders.ListOrders)
		})
		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", handlers.Reviews.CreateReview)
			r.Get("/", handlers.Reviews.ListReviews)
		})
		r.Post("/users", handlers.Users.Register)
		r.Post("/auth/login", handlers.Users.Login)
		r.Route("/products", func(r chi.Router) {
			r.Get("/", handlers.Products.ListProducts)
			r.Get("/{id}", handlers.Products.GetProduct)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", handlers.Cart.GetCart)
			r.Delete("/", handlers.Cart.ClearCart)
			r.Post("/items", handlers.Cart.AddItem)
			r.Put("/items/{productId}", handlers.Cart.UpdateQuantity)
			r.Delete("/items/{productId}", handlers.Cart.RemoveItem)
			r.Post("/checkout", handlers.Cart.Checkout)
			r.Get("/orders", handlers.Cart.ListHistory)
		})
	}
	r.Group(routes)
	r.Route("/api", routes)

	return otelhttp.NewHandler(r, "storefront")
}
