package dto

import "github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/checkout"

type BeginCheckoutRequest struct {
	OrderType string `json:"orderType"`
}

type CheckoutResponse struct {
	checkout.View
	WaitURL string `json:"waitUrl,omitempty"`
}

type ErrorResponse struct {
	Error         string           `json:"error"`
	CorrelationID string           `json:"correlationId,omitempty"`
	Prompt        *checkout.Prompt `json:"prompt,omitempty"`
	State         any              `json:"state,omitempty"`
}
