package handlers

import (
	"net/http"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/http/dto"
)

type HealthHandler struct {
	Service string
	Probes  []clients.HealthProbe
}

func (h *HealthHandler) Gateway(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok", Service: h.Service})
}

func (h *HealthHandler) Upstreams(w http.ResponseWriter, r *http.Request) {
	results := clients.CheckAll(r.Context(), h.Probes)

	status := "ok"
	for _, res := range results {
		if !res.OK {
			status = "degraded"
			break
		}
	}
	writeJSON(w, http.StatusOK, dto.UpstreamsHealthResponse{
		Status:   status,
		Service:  h.Service,
		Upstream: results,
	})
}
