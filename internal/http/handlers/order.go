package handlers

import (
	"net/http"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/session"
)

type OrderHandler struct{ gw order.Gateway }

func NewOrderHandler(gw order.Gateway) *OrderHandler { return &OrderHandler{gw: gw} }

// ListOrdersMe lists the caller's orders, optionally narrowed by ?status=.
func (h *OrderHandler) ListOrdersMe(w http.ResponseWriter, r *http.Request) {
	status := order.Status(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeBadRequest(w, r, "unknown status: "+string(status))
		return
	}

	records, err := h.gw.List(r.Context(), order.Filter{UserID: session.UserID(r.Context()), Status: status})
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	if records == nil {
		records = []order.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": records})
}
