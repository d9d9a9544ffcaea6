package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/http/handlers"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/metrics"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/vendorwait"
)

type Deps struct {
	Logger  *zap.Logger
	Cfg     config.Config
	Metrics *metrics.Metrics

	Gateway  order.Gateway
	Carts    *cart.Store
	Checkout *checkout.Coordinator
	Waits    *vendorwait.Registry

	HealthProbes []clients.HealthProbe
}

func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(d.Cfg.CORSAllowOrigins))
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Logging(logger))

	health := &handlers.HealthHandler{Service: "booking-service", Probes: d.HealthProbes}
	r.Get("/health", health.Gateway)
	r.Get("/health/upstreams", health.Upstreams)
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	cartH := handlers.NewCartHandler(d.Carts)
	checkoutH := handlers.NewCheckoutHandler(d.Checkout)
	waitH := handlers.NewWaitHandler(d.Waits)
	orderH := handlers.NewOrderHandler(d.Gateway)

	r.Route("/me", func(r chi.Router) {
		r.Use(middleware.RequireUserID)

		r.Get("/cart", cartH.GetCartMe)
		r.Get("/cart/summary", cartH.SummaryMe)
		r.Post("/cart/items", cartH.AddItemMe)
		r.Delete("/cart/items/{itemId}", cartH.RemoveItemMe)
		r.Put("/cart/orders/{orderId}/quantity", cartH.SetQuantityMe)

		r.Post("/checkout", checkoutH.BeginMe)
		r.Get("/checkout", checkoutH.GetMe)
		r.Delete("/checkout", checkoutH.CancelMe)
		r.Get("/checkout/slots", checkoutH.SlotsMe)
		r.Put("/checkout/address", checkoutH.SelectAddressMe)
		r.Put("/checkout/slot", checkoutH.SelectSlotMe)
		r.Post("/checkout/submit", checkoutH.SubmitMe)

		r.Get("/orders", orderH.ListOrdersMe)
		r.Get("/orders/{orderId}/wait", waitH.GetMe)
		r.Post("/orders/{orderId}/wait/resume", waitH.ResumeMe)
		r.Delete("/orders/{orderId}/wait", waitH.StopMe)
	})

	return r
}
