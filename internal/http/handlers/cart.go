package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/http/dto"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/session"
)

type CartHandler struct{ carts *cart.Store }

func NewCartHandler(carts *cart.Store) *CartHandler { return &CartHandler{carts: carts} }

func (h *CartHandler) GetCartMe(w http.ResponseWriter, r *http.Request) {
	c := h.carts.For(session.UserID(r.Context()))
	c.Load(r.Context())
	writeJSON(w, http.StatusOK, dto.NewCartResponse(c))
}

func (h *CartHandler) SummaryMe(w http.ResponseWriter, r *http.Request) {
	c := h.carts.For(session.UserID(r.Context()))
	writeJSON(w, http.StatusOK, c.Summary(r.Context()))
}

func (h *CartHandler) AddItemMe(w http.ResponseWriter, r *http.Request) {
	var p cart.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}
	if p.ItemName == "" {
		writeBadRequest(w, r, "itemName is required")
		return
	}

	c := h.carts.For(session.UserID(r.Context()))
	if _, err := c.Add(r.Context(), p); err != nil {
		writeError(w, r, err, dto.NewCartResponse(c))
		return
	}
	writeJSON(w, http.StatusCreated, dto.NewCartResponse(c))
}

func (h *CartHandler) RemoveItemMe(w http.ResponseWriter, r *http.Request) {
	c := h.carts.For(session.UserID(r.Context()))
	if err := c.Remove(r.Context(), chi.URLParam(r, "itemId")); err != nil {
		writeError(w, r, err, dto.NewCartResponse(c))
		return
	}
	writeJSON(w, http.StatusOK, dto.NewCartResponse(c))
}

func (h *CartHandler) SetQuantityMe(w http.ResponseWriter, r *http.Request) {
	var req dto.QuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	c := h.carts.For(session.UserID(r.Context()))
	if err := c.SetQuantity(r.Context(), chi.URLParam(r, "orderId"), req.Quantity); err != nil {
		writeError(w, r, err, dto.NewCartResponse(c))
		return
	}
	writeJSON(w, http.StatusOK, dto.NewCartResponse(c))
}
