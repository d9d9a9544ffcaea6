package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/http/dto"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/vendorwait"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to a status code. state, when set, is the resource as it
// stands after the failure so clients can re-render without another round trip.
func writeError(w http.ResponseWriter, r *http.Request, err error, state any) {
	body := dto.ErrorResponse{
		Error:         err.Error(),
		CorrelationID: middleware.GetCorrelationID(r.Context()),
		State:         state,
	}

	var pe *checkout.PromptError
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &pe):
		body.Prompt = &pe.Prompt
		status = http.StatusUnprocessableEntity
		if errors.Is(err, checkout.ErrNotLoggedIn) {
			status = http.StatusUnauthorized
		}
	case errors.Is(err, checkout.ErrNoSession), errors.Is(err, checkout.ErrSubmitInProgress):
		status = http.StatusConflict
	case errors.Is(err, checkout.ErrSlotNotRequired), errors.Is(err, cart.ErrQuantityBelowMinimum):
		status = http.StatusBadRequest
	case errors.Is(err, cart.ErrItemNotFound), errors.Is(err, vendorwait.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, checkout.ErrUpdateFailed), errors.Is(err, checkout.ErrLeadAssignment),
		errors.Is(err, cart.ErrUpdateFailed), errors.Is(err, cart.ErrRemoveFailed),
		errors.Is(err, cart.ErrAddFailed), errors.Is(err, order.ErrTransport):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, body)
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
		Error:         msg,
		CorrelationID: middleware.GetCorrelationID(r.Context()),
	})
}
