package order

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/metrics"
)

// Gateway is the typed view of the remote order service.
type Gateway interface {
	Create(ctx context.Context, o NewOrder) (Result, error)
	Update(ctx context.Context, orderID string, p Patch) (Result, error)
	List(ctx context.Context, f Filter) ([]Record, error)
	Delete(ctx context.Context, itemID string) (Result, error)
	AssignLeads(ctx context.Context, orderID string) (Result, error)
	Vendor(ctx context.Context, phone string) ([]Vendor, error)
}

type OrdersAPI interface {
	InsertOrders(ctx context.Context, form url.Values) ([]byte, error)
	UpdateOrders(ctx context.Context, form url.Values) ([]byte, error)
	ShowOrders(ctx context.Context, form url.Values) ([]byte, error)
	DeleteOrders(ctx context.Context, form url.Values) ([]byte, error)
}

type LeadsAPI interface {
	AssignLeads(ctx context.Context, form url.Values) ([]byte, error)
}

type VendorsAPI interface {
	ShowVendor(ctx context.Context, form url.Values) ([]byte, error)
}

type HTTPGateway struct {
	orders  OrdersAPI
	leads   LeadsAPI
	vendors VendorsAPI
	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewHTTPGateway(orders OrdersAPI, leads LeadsAPI, vendors VendorsAPI, logger *zap.Logger, m *metrics.Metrics) *HTTPGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPGateway{
		orders:  orders,
		leads:   leads,
		vendors: vendors,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

func (g *HTTPGateway) Create(ctx context.Context, o NewOrder) (Result, error) {
	at := o.OrderDatetime
	if at.IsZero() {
		at = g.now()
	}
	form := url.Values{}
	form.Set("OrderID", o.OrderID)
	form.Set("UserID", o.UserID)
	form.Set("OrderType", o.OrderType)
	form.Set("ItemImages", o.ItemImages)
	form.Set("ItemName", o.ItemName)
	form.Set("Price", o.Price.String())
	form.Set("Quantity", intField(o.Quantity))
	form.Set("Address", o.Address)
	form.Set("Slot", o.Slot)
	form.Set("SlotDatetime", o.SlotDatetime)
	form.Set("OrderDatetime", at.UTC().Format(time.RFC3339))
	form.Set("VendorPhone", o.VendorPhone)
	form.Set("BeforVideo", "") // field name as the API defines it
	form.Set("AfterVideo", "")
	form.Set("PaymentMethod", o.PaymentMethod)
	form.Set("lat", o.Lat)
	form.Set("lon", o.Lon)

	return g.mutate(ctx, "create", func() ([]byte, error) { return g.orders.InsertOrders(ctx, form) }, parseMutation)
}

func (g *HTTPGateway) Update(ctx context.Context, orderID string, p Patch) (Result, error) {
	form := url.Values{}
	form.Set("OrderID", orderID)
	form.Set("Address", p.Address)
	form.Set("Slot", p.Slot)
	form.Set("Status", string(p.Status))
	form.Set("Quantity", intField(p.Quantity))
	form.Set("VendorPhone", p.VendorPhone)
	form.Set("BeforVideo", "")
	form.Set("AfterVideo", "")
	form.Set("OTP", p.OTP)
	form.Set("PaymentMethod", p.PaymentMethod)

	return g.mutate(ctx, "update", func() ([]byte, error) { return g.orders.UpdateOrders(ctx, form) }, parseMutation)
}

func (g *HTTPGateway) Delete(ctx context.Context, itemID string) (Result, error) {
	form := url.Values{}
	form.Set("ID", itemID)

	return g.mutate(ctx, "delete", func() ([]byte, error) { return g.orders.DeleteOrders(ctx, form) }, parseMutation)
}

func (g *HTTPGateway) AssignLeads(ctx context.Context, orderID string) (Result, error) {
	form := url.Values{}
	form.Set("OrderID", orderID)

	return g.mutate(ctx, "assign_leads", func() ([]byte, error) { return g.leads.AssignLeads(ctx, form) }, parseLeadAssignment)
}

func (g *HTTPGateway) List(ctx context.Context, f Filter) ([]Record, error) {
	form := url.Values{}
	form.Set("orderid", f.OrderID)
	form.Set("UserID", f.UserID)
	form.Set("VendorPhone", f.VendorPhone)
	form.Set("Status", string(f.Status))

	start := g.now()
	raw, err := g.orders.ShowOrders(ctx, form)
	if err != nil {
		g.metrics.ObserveGatewayCall("list", "transport_error", time.Since(start))
		return nil, fmt.Errorf("%w: list orders: %v", ErrTransport, err)
	}
	records, err := decodeRecords(raw)
	if err != nil {
		g.metrics.ObserveGatewayCall("list", "decode_error", time.Since(start))
		return nil, fmt.Errorf("list orders: %w", err)
	}
	g.metrics.ObserveGatewayCall("list", "ok", time.Since(start))
	return records, nil
}

func (g *HTTPGateway) Vendor(ctx context.Context, phone string) ([]Vendor, error) {
	form := url.Values{}
	form.Set("PhoneNumber", phone)

	start := g.now()
	raw, err := g.vendors.ShowVendor(ctx, form)
	if err != nil {
		g.metrics.ObserveGatewayCall("vendor", "transport_error", time.Since(start))
		return nil, fmt.Errorf("%w: vendor lookup: %v", ErrTransport, err)
	}
	vendors, err := decodeVendors(raw)
	if err != nil {
		g.metrics.ObserveGatewayCall("vendor", "decode_error", time.Since(start))
		return nil, fmt.Errorf("vendor lookup: %w", err)
	}
	g.metrics.ObserveGatewayCall("vendor", "ok", time.Since(start))
	return vendors, nil
}

func (g *HTTPGateway) mutate(ctx context.Context, op string, call func() ([]byte, error), parse func([]byte) Result) (Result, error) {
	start := g.now()
	raw, err := call()
	if err != nil {
		g.metrics.ObserveGatewayCall(op, "transport_error", time.Since(start))
		return Result{}, fmt.Errorf("%w: %s: %v", ErrTransport, op, err)
	}

	res := parse(raw)
	outcome := "ok"
	if !res.OK {
		outcome = "rejected"
		g.logger.Debug("order service did not report success",
			zap.String("op", op),
			zap.String("message", res.Message))
	}
	g.metrics.ObserveGatewayCall(op, outcome, time.Since(start))
	return res, nil
}

func intField(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
