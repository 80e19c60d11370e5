package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/warung-orders/internal/pkg/interceptors"
	"github.com/jcmexdev/warung-orders/internal/pkg/interceptors/constants"
)

// AttachTracingMetadata copies chi's request id and the X-Idempotency-Key
// header into the context and echoes the request id back to the client.
func AttachTracingMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())
		idempotencyKey := r.Header.Get(constants.HeaderXIdempotencyKey)

		ctx := interceptors.WithRequestID(r.Context(), requestID)
		ctx = interceptors.WithIdempotencyKey(ctx, idempotencyKey)

		if requestID != "" {
			w.Header().Set(middleware.RequestIDHeader, requestID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
