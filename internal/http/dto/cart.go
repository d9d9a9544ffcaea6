package dto

import (
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/cart"
)

type CartResponse struct {
	OrderID       string          `json:"orderId,omitempty"`
	Items         []cart.Item     `json:"items"`
	TotalQuantity int             `json:"totalQuantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountTotal decimal.Decimal `json:"discountTotal"`
	Total         decimal.Decimal `json:"total"`
}

func NewCartResponse(c *cart.Cart) CartResponse {
	items := c.Items()
	return CartResponse{
		OrderID:       c.OrderID(),
		Items:         items,
		TotalQuantity: cart.TotalQuantity(items),
		Subtotal:      cart.Subtotal(items),
		DiscountTotal: cart.DiscountTotal(items),
		Total:         c.Total(),
	}
}

type QuantityRequest struct {
	Quantity int `json:"quantity"`
}
