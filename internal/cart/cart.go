package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/metrics"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/order"
)

const MinQuantity = 1

var (
	ErrQuantityBelowMinimum = errors.New("quantity must be at least 1")
	ErrItemNotFound         = errors.New("cart item not found")
	ErrUpdateFailed         = errors.New("quantity update failed")
	ErrRemoveFailed         = errors.New("remove failed")
	ErrAddFailed            = errors.New("add to cart failed")
)

// cartIdleTTL is how long a cart nobody asked for is kept in memory.
const cartIdleTTL = 30 * time.Minute

// Store owns one Cart per user.
type Store struct {
	gw      order.Gateway
	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	mu    sync.Mutex
	carts map[string]*Cart
}

func NewStore(gw order.Gateway, logger *zap.Logger, m *metrics.Metrics) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{gw: gw, logger: logger, metrics: m, now: time.Now, carts: map[string]*Cart{}}
}

func (s *Store) For(userID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.prune(now)
	c, ok := s.carts[userID]
	if !ok {
		c = &Cart{
			userID:    userID,
			gw:        s.gw,
			logger:    s.logger.With(zap.String("user_id", userID)),
			metrics:   s.metrics,
			confirmed: map[string]int{},
			lanes:     map[string]*lane{},
		}
		s.carts[userID] = c
	}
	c.lastUsed = now
	return c
}

// prune drops carts idle for cartIdleTTL with no remote call queued. They only mirror
// remote state, so the next For reloads an equivalent cart. Caller holds s.mu.
func (s *Store) prune(now time.Time) {
	for id, c := range s.carts {
		if now.Sub(c.lastUsed) > cartIdleTTL && c.idle() {
			delete(s.carts, id)
		}
	}
}

// Cart is the local view of a user's pending order lines.
type Cart struct {
	userID  string
	gw      order.Gateway
	logger  *zap.Logger
	metrics *metrics.Metrics

	lastUsed time.Time // guarded by Store.mu

	mu        sync.Mutex
	items     []Item
	confirmed map[string]int   // last quantity the remote service accepted, per order id
	lanes     map[string]*lane // keys with remote calls queued or running
}

func (c *Cart) idle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lanes) == 0
}

// Load replaces local state with the user's pending lines. Transport errors yield an empty cart.
func (c *Cart) Load(ctx context.Context) []Item {
	items, err := c.fetch(ctx, order.StatusPending)
	if err != nil {
		c.logger.Warn("load cart failed", zap.Error(err))
		items = nil
	}

	c.mu.Lock()
	c.items = items
	for _, it := range items {
		c.confirmed[it.OrderID] = it.Quantity
	}
	c.mu.Unlock()

	return c.Items()
}

func (c *Cart) fetch(ctx context.Context, status order.Status) ([]Item, error) {
	records, err := c.gw.List(ctx, order.Filter{UserID: c.userID, Status: status})
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(records))
	for _, r := range records {
		items = append(items, itemFromRecord(r))
	}
	return items, nil
}

// Add creates a line on the user's pending order remotely and reloads the cart. Lines
// join the cart's order; a new order id is minted only when the user has no pending order.
func (c *Cart) Add(ctx context.Context, p Product) ([]Item, error) {
	qty := p.Quantity
	if qty == 0 {
		qty = MinQuantity
	}
	if qty < MinQuantity {
		return c.Items(), ErrQuantityBelowMinimum
	}
	orderID := p.OrderID
	if orderID == "" {
		orderID = c.pendingOrderID(ctx)
	}
	if orderID == "" {
		orderID = uuid.NewString()
	}

	res, err := c.gw.Create(ctx, order.NewOrder{
		OrderID:    orderID,
		UserID:     c.userID,
		OrderType:  p.OrderType,
		ItemImages: p.ImageRef,
		ItemName:   p.ItemName,
		Price:      p.UnitPrice,
		Quantity:   qty,
	})
	if err != nil {
		return c.Items(), fmt.Errorf("%w: %v", ErrAddFailed, err)
	}
	if !res.OK {
		return c.Items(), fmt.Errorf("%w: %s", ErrAddFailed, res.Message)
	}
	return c.Load(ctx), nil
}

// pendingOrderID returns the cart's canonical order id, asking the order service when
// nothing is loaded locally.
func (c *Cart) pendingOrderID(ctx context.Context) string {
	if id := c.OrderID(); id != "" {
		return id
	}
	items, err := c.fetch(ctx, order.StatusPending)
	if err != nil {
		c.logger.Warn("resolve pending order failed", zap.Error(err))
		return ""
	}
	for _, it := range items {
		if it.OrderID != "" {
			return it.OrderID
		}
	}
	return ""
}

// Remove drops the item locally, then deletes it remotely. A failed delete is reported
// but the item stays removed from local state.
func (c *Cart) Remove(ctx context.Context, itemID string) error {
	c.mu.Lock()
	t, ok := c.begin("item:"+itemID, keepOnFailure,
		func(it Item) bool { return it.ID == itemID },
		func(*Item) bool { return false })
	c.mu.Unlock()
	if !ok {
		return ErrItemNotFound
	}

	t.lane.wait(t.ticket)
	res, err := c.gw.Delete(ctx, itemID)
	t.lane.done()

	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.release(t)
	if err == nil && res.OK {
		return nil
	}
	c.fail(t)

	if err != nil {
		c.logger.Warn("remove item failed", zap.String("item_id", itemID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrRemoveFailed, err)
	}
	c.logger.Warn("remove item rejected", zap.String("item_id", itemID), zap.String("message", res.Message))
	return fmt.Errorf("%w: %s", ErrRemoveFailed, res.Message)
}

// SetQuantity applies qty to every line of the order immediately and then updates the
// remote record. Remote calls for one order run one at a time in call order. On failure the
// last confirmed quantity is restored unless a newer change has been made meanwhile.
func (c *Cart) SetQuantity(ctx context.Context, orderID string, qty int) error {
	if qty < MinQuantity {
		return ErrQuantityBelowMinimum
	}

	c.mu.Lock()
	t, ok := c.begin(orderID, restoreOnFailure,
		func(it Item) bool { return it.OrderID == orderID },
		func(it *Item) bool { it.Quantity = qty; return true })
	c.mu.Unlock()
	if !ok {
		return ErrItemNotFound
	}

	t.lane.wait(t.ticket)
	res, err := c.gw.Update(ctx, orderID, order.Patch{Status: order.StatusPending, Quantity: qty})
	t.lane.done()

	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.release(t)
	if err == nil && res.OK {
		c.commit(t, qty)
		return nil
	}

	if c.fail(t) {
		c.metrics.CartRollback()
	}
	if err != nil {
		c.logger.Warn("quantity update failed", zap.String("order_id", orderID), zap.Int("quantity", qty), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	c.logger.Warn("quantity update rejected", zap.String("order_id", orderID), zap.Int("quantity", qty), zap.String("message", res.Message))
	return fmt.Errorf("%w: %s", ErrUpdateFailed, res.Message)
}

// laneFor returns the lane for key, creating it if needed. Caller holds c.mu.
func (c *Cart) laneFor(key string) *lane {
	l, ok := c.lanes[key]
	if !ok {
		l = newLane()
		c.lanes[key] = l
	}
	return l
}

func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Subtotal() decimal.Decimal      { return Subtotal(c.Items()) }
func (c *Cart) DiscountTotal() decimal.Decimal { return DiscountTotal(c.Items()) }

// Total is the amount payable after discounts.
func (c *Cart) Total() decimal.Decimal {
	items := c.Items()
	return Subtotal(items).Sub(DiscountTotal(items))
}

// OrderID returns the first pending line's order id, which checkout treats as canonical.
func (c *Cart) OrderID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if it.OrderID != "" {
			return it.OrderID
		}
	}
	return ""
}

type Summary struct {
	Source        string          `json:"source"`
	Items         []Item          `json:"items"`
	TotalQuantity int             `json:"totalQuantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountTotal decimal.Decimal `json:"discountTotal"`
	Total         decimal.Decimal `json:"total"`
}

const (
	SourceReorder = "reorder"
	SourceCart    = "cart"
)

// Summary shows reorder suggestions when the user has any, the cart otherwise.
func (c *Cart) Summary(ctx context.Context) Summary {
	source := SourceReorder
	items, err := c.fetch(ctx, order.StatusPending1)
	if err != nil {
		c.logger.Warn("load reorder suggestions failed", zap.Error(err))
	}
	if len(items) == 0 {
		source = SourceCart
		items = c.Load(ctx)
	}
	sub, disc := Subtotal(items), DiscountTotal(items)
	return Summary{
		Source:        source,
		Items:         items,
		TotalQuantity: TotalQuantity(items),
		Subtotal:      sub,
		DiscountTotal: disc,
		Total:         sub.Sub(disc),
	}
}
