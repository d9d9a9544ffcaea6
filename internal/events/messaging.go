package events

import (
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange              = "booking.events"
	CheckoutSubmittedRoutingKey = "checkout.submitted.v1"
	VendorAcceptedRoutingKey    = "vendor.accepted.v1"
	WaitExpiredRoutingKey       = "vendor.wait_expired.v1"
	bookingServiceName          = "booking-service"
)

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}

// Dial connects to the broker at url with a bounded connect timeout.
func Dial(url string) (*amqp.Connection, error) {
	return amqp.DialConfig(url, amqp.Config{
		Dial: amqp.DefaultDial(10 * time.Second),
	})
}
