package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/session"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/vendorwait"
)

type WaitHandler struct{ waits *vendorwait.Registry }

func NewWaitHandler(waits *vendorwait.Registry) *WaitHandler { return &WaitHandler{waits: waits} }

func (h *WaitHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.waits.Get)
}

// ResumeMe is called when the page regains focus and asks for an immediate status query.
func (h *WaitHandler) ResumeMe(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.waits.Nudge)
}

func (h *WaitHandler) StopMe(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.waits.Stop)
}

func (h *WaitHandler) respond(w http.ResponseWriter, r *http.Request, op func(userID, orderID string) (vendorwait.Snapshot, error)) {
	snap, err := op(session.UserID(r.Context()), chi.URLParam(r, "orderId"))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
