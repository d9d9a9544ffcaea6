package order

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// flexString accepts a JSON string, number or null.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	*f = flexString(string(b))
	return nil
}

// flexDecimal accepts a JSON number, a numeric string, "" or null. Unparseable values decode to zero.
type flexDecimal decimal.Decimal

func (f *flexDecimal) UnmarshalJSON(b []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	d, err := decimal.NewFromString(string(s))
	if err != nil {
		d = decimal.Zero
	}
	*f = flexDecimal(d)
	return nil
}

// flexInt accepts a JSON number, a numeric string, "" or null. Fractions are truncated.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	if n, err := strconv.Atoi(string(s)); err == nil {
		*f = flexInt(n)
		return nil
	}
	d, err := decimal.NewFromString(string(s))
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(d.IntPart())
	return nil
}

type wireRecord struct {
	ID            flexString  `json:"ID"`
	OrderID       flexString  `json:"OrderID"`
	UserID        flexString  `json:"UserID"`
	OrderType     flexString  `json:"OrderType"`
	ItemImages    flexString  `json:"ItemImages"`
	ItemName      flexString  `json:"ItemName"`
	Price         flexDecimal `json:"Price"`
	DiscountPrice flexDecimal `json:"DiscountPrice"`
	Quantity      flexInt     `json:"Quantity"`
	Address       flexString  `json:"Address"`
	Slot          flexString  `json:"Slot"`
	SlotDatetime  flexString  `json:"SlotDatetime"`
	OrderDatetime flexString  `json:"OrderDatetime"`
	Status        flexString  `json:"Status"`
	VendorPhone   flexString  `json:"VendorPhone"`
	OTP           flexString  `json:"OTP"`
	PaymentMethod flexString  `json:"PaymentMethod"`
}

func (w wireRecord) toRecord() Record {
	return Record{
		ID:            string(w.ID),
		OrderID:       string(w.OrderID),
		UserID:        string(w.UserID),
		OrderType:     string(w.OrderType),
		ItemImages:    string(w.ItemImages),
		ItemName:      string(w.ItemName),
		Price:         decimal.Decimal(w.Price),
		DiscountPrice: decimal.Decimal(w.DiscountPrice),
		Quantity:      int(w.Quantity),
		Address:       string(w.Address),
		Slot:          string(w.Slot),
		SlotDatetime:  string(w.SlotDatetime),
		OrderDatetime: string(w.OrderDatetime),
		Status:        Status(w.Status),
		VendorPhone:   string(w.VendorPhone),
		OTP:           string(w.OTP),
		PaymentMethod: string(w.PaymentMethod),
	}
}

type wireVendor struct {
	Fullname    flexString `json:"Fullname"`
	PhoneNumber flexString `json:"PhoneNumber"`
	Address     flexString `json:"Address"`
}

func (w wireVendor) toVendor() Vendor {
	return Vendor{
		Fullname:    string(w.Fullname),
		PhoneNumber: string(w.PhoneNumber),
		Address:     string(w.Address),
	}
}
