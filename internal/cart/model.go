package cart

import (
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/order"
)

type Item struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"orderId"`
	OrderType     string          `json:"orderType,omitempty"`
	ItemName      string          `json:"itemName"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	DiscountPrice decimal.Decimal `json:"discountPrice"`
	Quantity      int             `json:"quantity"`
	ImageRef      string          `json:"imageRef,omitempty"`
}

// Product is what the storefront adds to the cart.
type Product struct {
	OrderID   string          `json:"orderId,omitempty"`
	OrderType string          `json:"orderType"`
	ItemName  string          `json:"itemName"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	ImageRef  string          `json:"imageRef,omitempty"`
}

func itemFromRecord(r order.Record) Item {
	qty := r.Quantity
	if qty < MinQuantity {
		qty = MinQuantity
	}
	return Item{
		ID:            r.ID,
		OrderID:       r.OrderID,
		OrderType:     r.OrderType,
		ItemName:      r.ItemName,
		UnitPrice:     r.Price,
		DiscountPrice: r.DiscountPrice,
		Quantity:      qty,
		ImageRef:      r.ItemImages,
	}
}

// Subtotal is the sum of unit price times quantity.
func Subtotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// DiscountTotal sums (unit price - discounted price) per unit. Items without a discounted
// price contribute nothing.
func DiscountTotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		discounted := it.DiscountPrice
		if discounted.IsZero() {
			discounted = it.UnitPrice
		}
		total = total.Add(it.UnitPrice.Sub(discounted).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

func TotalQuantity(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
