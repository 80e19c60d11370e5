package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/jcmexdev/warung-orders/internal/core/checkout"
	"github.com/jcmexdev/warung-orders/internal/core/ports"
	"github.com/jcmexdev/warung-orders/internal/placement/placementlog"
)

// errBadRequest marks malformed bodies and failed field validation.
var errBadRequest = errors.New("bad request")

// writeDomainError maps an error from the core to a status code and body.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, checkout.ErrInvalidCart),
		errors.Is(err, checkout.ErrInvalidCustomer):
		writeError(w, r, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, checkout.ErrUnknownMenuItem),
		errors.Is(err, checkout.ErrUnknownPaymentMethod):
		writeError(w, r, http.StatusUnprocessableEntity, "unknown_reference", err.Error())
	case errors.Is(err, ports.ErrOrderNotFound):
		writeError(w, r, http.StatusNotFound, "order_not_found", err.Error())
	case errors.Is(err, ports.ErrMenuItemNotFound):
		writeError(w, r, http.StatusNotFound, "menu_not_found", err.Error())
	case errors.Is(err, placementlog.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "placement_not_found", err.Error())
	case errors.Is(err, ports.ErrOrderInProgress):
		writeError(w, r, http.StatusConflict, "order_in_progress", err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, r, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
