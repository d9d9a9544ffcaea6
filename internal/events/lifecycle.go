package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/vendorwait"
)

const (
	EventTypeCheckoutSubmitted = "CheckoutSubmitted"
	EventTypeVendorAccepted    = "VendorAccepted"
	EventTypeWaitExpired       = "VendorWaitExpired"

	checkoutSubmittedSchema = "contracts/events/booking/CheckoutSubmitted.v1.payload.schema.json"
	vendorAcceptedSchema    = "contracts/events/booking/VendorAccepted.v1.payload.schema.json"
	waitExpiredSchema       = "contracts/events/booking/VendorWaitExpired.v1.payload.schema.json"
)

type CheckoutSubmittedPayload struct {
	OrderID       string    `json:"orderId"`
	UserID        string    `json:"userId"`
	OrderType     string    `json:"orderType,omitempty"`
	Address       string    `json:"address"`
	Slot          string    `json:"slot,omitempty"`
	LeadsAssigned bool      `json:"leadsAssigned"`
	Timestamp     time.Time `json:"timestamp"`
}

type VendorAcceptedPayload struct {
	OrderID     string    `json:"orderId"`
	UserID      string    `json:"userId"`
	VendorPhone string    `json:"vendorPhone,omitempty"`
	VendorName  string    `json:"vendorName,omitempty"`
	Polls       int       `json:"polls"`
	Timestamp   time.Time `json:"timestamp"`
}

type WaitExpiredPayload struct {
	OrderID   string    `json:"orderId"`
	UserID    string    `json:"userId"`
	Polls     int       `json:"polls"`
	Timestamp time.Time `json:"timestamp"`
}

type (
	CheckoutSubmittedEvent = EventEnvelope[CheckoutSubmittedPayload]
	VendorAcceptedEvent    = EventEnvelope[VendorAcceptedPayload]
	WaitExpiredEvent       = EventEnvelope[WaitExpiredPayload]
)

func newEnvelope[T any](name, schema string, meta EventMeta, seq int64, producer string, payload T, occurredAt time.Time) EventEnvelope[T] {
	return EventEnvelope[T]{
		EventName:     name,
		EventVersion:  1,
		EventID:       uuid.NewString(),
		CorrelationID: meta.CorrelationID,
		CausationID:   meta.CausationID,
		Producer:      producer,
		PartitionKey:  meta.PartitionKey,
		Sequence:      seq,
		OccurredAt:    occurredAt,
		Schema:        schema,
		Payload:       payload,
	}
}

func newCheckoutSubmittedEvent(meta EventMeta, seq int64, producer string, s checkout.Submission, now time.Time) CheckoutSubmittedEvent {
	return newEnvelope(EventTypeCheckoutSubmitted, checkoutSubmittedSchema, meta, seq, producer, CheckoutSubmittedPayload{
		OrderID:       s.OrderID,
		UserID:        s.UserID,
		OrderType:     s.OrderType,
		Address:       s.Address,
		Slot:          s.Slot,
		LeadsAssigned: s.LeadsAssigned,
		Timestamp:     now,
	}, now)
}

func newVendorAcceptedEvent(meta EventMeta, seq int64, producer string, s vendorwait.Snapshot, now time.Time) VendorAcceptedEvent {
	payload := VendorAcceptedPayload{
		OrderID:   s.OrderID,
		UserID:    s.UserID,
		Polls:     s.Polls,
		Timestamp: now,
	}
	for _, o := range s.Orders {
		if o.VendorPhone != "" {
			payload.VendorPhone = o.VendorPhone
			break
		}
	}
	if s.Vendor != nil {
		payload.VendorName = s.Vendor.Fullname
		if payload.VendorPhone == "" {
			payload.VendorPhone = s.Vendor.PhoneNumber
		}
	}
	return newEnvelope(EventTypeVendorAccepted, vendorAcceptedSchema, meta, seq, producer, payload, now)
}

func newWaitExpiredEvent(meta EventMeta, seq int64, producer string, s vendorwait.Snapshot, now time.Time) WaitExpiredEvent {
	return newEnvelope(EventTypeWaitExpired, waitExpiredSchema, meta, seq, producer, WaitExpiredPayload{
		OrderID:   s.OrderID,
		UserID:    s.UserID,
		Polls:     s.Polls,
		Timestamp: now,
	}, now)
}
