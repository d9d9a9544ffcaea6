package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderTypeProduct marks physical-goods orders, which need no slot or vendor matching.
const OrderTypeProduct = "Product"

// Record is one order line as the remote order service reports it.
type Record struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"orderId"`
	UserID        string          `json:"userId"`
	OrderType     string          `json:"orderType"`
	ItemImages    string          `json:"itemImages,omitempty"`
	ItemName      string          `json:"itemName"`
	Price         decimal.Decimal `json:"price"`
	DiscountPrice decimal.Decimal `json:"discountPrice"`
	Quantity      int             `json:"quantity"`
	Address       string          `json:"address,omitempty"`
	Slot          string          `json:"slot,omitempty"`
	SlotDatetime  string          `json:"slotDatetime,omitempty"`
	OrderDatetime string          `json:"orderDatetime,omitempty"`
	Status        Status          `json:"status"`
	VendorPhone   string          `json:"vendorPhone,omitempty"`
	OTP           string          `json:"otp,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
}

// NewOrder holds the fields accepted by the create operation.
type NewOrder struct {
	OrderID       string
	UserID        string
	OrderType     string
	ItemImages    string
	ItemName      string
	Price         decimal.Decimal
	Quantity      int
	Address       string
	Slot          string
	SlotDatetime  string
	OrderDatetime time.Time
	VendorPhone   string
	PaymentMethod string
	Lat           string
	Lon           string
}

// Patch holds the fields accepted by the update operation. Zero values are sent as empty strings.
type Patch struct {
	Address       string
	Slot          string
	Status        Status
	Quantity      int
	VendorPhone   string
	OTP           string
	PaymentMethod string
}

// Filter narrows a list query. Empty fields are not constrained.
type Filter struct {
	OrderID     string
	UserID      string
	VendorPhone string
	Status      Status
}

type Vendor struct {
	Fullname    string `json:"fullname"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}
