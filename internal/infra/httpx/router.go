package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/jcmexdev/warung-orders/internal/infra/httpx/middlewares"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 1 << 20

func NewRouter(handler *Handler, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachTracingMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(MaxBodyBytes))
	if requestTimeout > 0 {
		r.Use(middleware.Timeout(requestTimeout))
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handler.Health)

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", handler.ListMenu)
			r.Post("/", handler.CreateMenuItem)
			r.Put("/{id}", handler.UpdateMenuItem)
			r.Delete("/{id}", handler.DeleteMenuItem)
		})

		r.Get("/payment-methods", handler.ListPaymentMethods)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", handler.ListOrders)
			r.Post("/", handler.CreateOrder)
			r.Get("/{id}", handler.GetOrderByID)
			r.Get("/{id}/placement", handler.GetPlacement)
			r.Patch("/{id}/status", handler.UpdateOrderStatus)
		})

		r.Get("/admin/dashboard", handler.Dashboard)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "not_found", "Not found")
	})

	return r
}
