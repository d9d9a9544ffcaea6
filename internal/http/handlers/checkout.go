package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/http/dto"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/session"
)

type CheckoutHandler struct {
	c   *checkout.Coordinator
	now func() time.Time
}

func NewCheckoutHandler(c *checkout.Coordinator) *CheckoutHandler {
	return &CheckoutHandler{c: c, now: time.Now}
}

func (h *CheckoutHandler) BeginMe(w http.ResponseWriter, r *http.Request) {
	var req dto.BeginCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	view, err := h.c.Begin(r.Context(), session.UserID(r.Context()), req.OrderType)
	h.respond(w, r, view, err)
}

func (h *CheckoutHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.c.Get(session.UserID(r.Context())), nil)
}

func (h *CheckoutHandler) CancelMe(w http.ResponseWriter, r *http.Request) {
	h.c.Cancel(session.UserID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

// SlotsMe lists bookable slots. ?fixed=true returns the static schedule.
func (h *CheckoutHandler) SlotsMe(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("fixed") == "true" {
		writeJSON(w, http.StatusOK, checkout.FixedSlots())
		return
	}
	writeJSON(w, http.StatusOK, checkout.GenerateSlots(h.now()))
}

func (h *CheckoutHandler) SelectAddressMe(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	view, err := h.c.SelectAddress(session.UserID(r.Context()), raw)
	h.respond(w, r, view, err)
}

func (h *CheckoutHandler) SelectSlotMe(w http.ResponseWriter, r *http.Request) {
	var slot checkout.Slot
	if err := json.NewDecoder(r.Body).Decode(&slot); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	view, err := h.c.SelectSlot(session.UserID(r.Context()), slot)
	h.respond(w, r, view, err)
}

func (h *CheckoutHandler) SubmitMe(w http.ResponseWriter, r *http.Request) {
	view, err := h.c.Submit(r.Context(), session.UserID(r.Context()))
	h.respond(w, r, view, err)
}

func (h *CheckoutHandler) respond(w http.ResponseWriter, r *http.Request, view checkout.View, err error) {
	if err != nil {
		writeError(w, r, err, view)
		return
	}
	resp := dto.CheckoutResponse{View: view}
	if view.State == checkout.StateSubmitted && view.OrderID != "" {
		resp.WaitURL = "/me/orders/" + view.OrderID + "/wait"
	}
	writeJSON(w, http.StatusOK, resp)
}
