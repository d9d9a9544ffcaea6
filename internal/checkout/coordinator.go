package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/metrics"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/session"
)

// Handoff receives a successfully submitted order. It is called once per checkout.
type Handoff interface {
	Start(userID, orderID string) error
}

// Submission describes a completed checkout for downstream notification.
type Submission struct {
	UserID        string
	OrderID       string
	OrderType     string
	Address       string
	Slot          string
	LeadsAssigned bool
}

type Notifier interface {
	CheckoutSubmitted(ctx context.Context, s Submission) error
}

type Deps struct {
	Gateway  order.Gateway
	Handoff  Handoff
	Notifier Notifier
	Logger   *zap.Logger
	Metrics  *metrics.Metrics

	// RepeatUpdateOnRetry re-sends an order update that already succeeded when a
	// submission is retried after lead assignment failed.
	RepeatUpdateOnRetry bool
}

// sessionIdleTTL is how long an untouched checkout is kept before it is dropped.
const sessionIdleTTL = 30 * time.Minute

// Coordinator owns the per-user checkout state machine.
type Coordinator struct {
	gw       order.Gateway
	handoff  Handoff
	notifier Notifier
	logger   *zap.Logger
	metrics  *metrics.Metrics
	repeat   bool
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*checkoutSession
}

func NewCoordinator(d Deps) *Coordinator {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		gw:       d.Gateway,
		handoff:  d.Handoff,
		notifier: d.Notifier,
		logger:   logger,
		metrics:  d.Metrics,
		repeat:   d.RepeatUpdateOnRetry,
		now:      time.Now,
		sessions: map[string]*checkoutSession{},
	}
}

type checkoutSession struct {
	mu sync.Mutex

	userID    string
	orderID   string
	orderType string
	state     State
	address   *Address
	slot      *Slot
	lastErr   string
	inFlight  bool
	handedOff bool
	touched   time.Time

	// address and slot of the last update the order service accepted
	appliedKey string
}

type View struct {
	OrderID       string   `json:"orderId"`
	OrderType     string   `json:"orderType,omitempty"`
	State         State    `json:"state"`
	Address       *Address `json:"address,omitempty"`
	Slot          *Slot    `json:"slot,omitempty"`
	SlotText      string   `json:"slotText,omitempty"`
	UpdateApplied bool     `json:"updateApplied"`
	Error         string   `json:"error,omitempty"`
}

func (s *checkoutSession) product() bool { return s.orderType == order.OrderTypeProduct }

func (s *checkoutSession) slotText() string {
	if s.product() || s.slot == nil {
		return ""
	}
	return s.slot.Format()
}

func (s *checkoutSession) submissionKey() string {
	if s.address == nil {
		return ""
	}
	return s.address.FullAddress + "\x00" + s.slotText()
}

// settle moves a selecting session to the first step still missing.
func (s *checkoutSession) settle() {
	switch {
	case s.address == nil:
		s.state = StateAddressPending
	case !s.product() && s.slot == nil:
		s.state = StateSlotPending
	default:
		s.state = StateReady
	}
}

func (s *checkoutSession) view() View {
	v := View{
		OrderID:       s.orderID,
		OrderType:     s.orderType,
		State:         s.state,
		SlotText:      s.slotText(),
		UpdateApplied: s.appliedKey != "",
		Error:         s.lastErr,
	}
	if s.address != nil {
		a := *s.address
		v.Address = &a
	}
	if s.slot != nil && !s.product() {
		sl := *s.slot
		v.Slot = &sl
	}
	return v
}

// Begin opens checkout for the user's canonical pending order, the first one the order
// service lists. Reopening the same order keeps earlier selections, and so does a failed
// lookup when the user already has a checkout.
func (c *Coordinator) Begin(ctx context.Context, userID, orderType string) (View, error) {
	if !session.LoggedIn(userID) {
		return View{State: StateIdle}, promptFor(StepLogin)
	}

	records, err := c.gw.List(ctx, order.Filter{UserID: userID, Status: order.StatusPending})
	if err != nil {
		c.logger.Warn("resolve pending order failed", zap.String("user_id", userID), zap.Error(err))
	}
	var orderID string
	for _, r := range records {
		if r.OrderID != "" {
			orderID = r.OrderID
			if orderType == "" {
				orderType = r.OrderType
			}
			break
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	c.prune(now)
	if s, ok := c.sessions[userID]; ok {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.touched = now
		if s.inFlight {
			return s.view(), ErrSubmitInProgress
		}
		if err != nil {
			return s.view(), nil
		}
		if s.orderID == orderID && orderID != "" && s.state != StateSubmitted {
			s.orderType = orderType
			s.lastErr = ""
			if s.state != StateSubmitting {
				s.settle()
			}
			return s.view(), nil
		}
	}

	s := &checkoutSession{userID: userID, orderID: orderID, orderType: orderType, touched: now}
	s.settle()
	c.sessions[userID] = s
	return s.view(), nil
}

// prune drops checkouts nobody has touched for sessionIdleTTL. Caller holds c.mu.
func (c *Coordinator) prune(now time.Time) {
	for id, s := range c.sessions {
		s.mu.Lock()
		idle := !s.inFlight && now.Sub(s.touched) > sessionIdleTTL
		s.mu.Unlock()
		if idle {
			delete(c.sessions, id)
		}
	}
}

func (c *Coordinator) Get(userID string) View {
	s := c.lookup(userID)
	if s == nil {
		return View{State: StateIdle}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// Cancel discards the user's checkout.
func (c *Coordinator) Cancel(userID string) {
	c.mu.Lock()
	delete(c.sessions, userID)
	c.mu.Unlock()
}

func (c *Coordinator) SelectAddress(userID string, raw map[string]any) (View, error) {
	addr := NormalizeAddress(raw)
	return c.mutate(userID, func(s *checkoutSession) error {
		s.address = &addr
		return nil
	})
}

func (c *Coordinator) SelectSlot(userID string, slot Slot) (View, error) {
	return c.mutate(userID, func(s *checkoutSession) error {
		if s.product() {
			return ErrSlotNotRequired
		}
		if slot.Empty() {
			return promptFor(StepSlot)
		}
		s.slot = &slot
		return nil
	})
}

func (c *Coordinator) mutate(userID string, fn func(s *checkoutSession) error) (View, error) {
	s := c.lookup(userID)
	if s == nil {
		return View{State: StateIdle}, ErrNoSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = c.now()
	if s.inFlight {
		return s.view(), ErrSubmitInProgress
	}
	if s.state == StateSubmitted {
		return s.view(), nil
	}
	if err := fn(s); err != nil {
		return s.view(), err
	}
	s.lastErr = ""
	s.settle()
	return s.view(), nil
}

func (c *Coordinator) lookup(userID string) *checkoutSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessions[userID]
}

// Submit runs the gate and then the remote sequence: update the order, then assign leads.
// Lead assignment only follows an update the order service reported as successful.
// Product orders stop after the update. On failure the session stays in StateSubmitting
// and can be retried; an update already applied with the same address and slot is not
// re-sent unless RepeatUpdateOnRetry is set.
func (c *Coordinator) Submit(ctx context.Context, userID string) (View, error) {
	if !session.LoggedIn(userID) {
		return View{State: StateIdle}, promptFor(StepLogin)
	}
	s := c.lookup(userID)
	if s == nil {
		return View{State: StateIdle}, ErrNoSession
	}

	s.mu.Lock()
	if s.inFlight {
		v := s.view()
		s.mu.Unlock()
		return v, ErrSubmitInProgress
	}
	if s.state == StateSubmitted {
		v := s.view()
		s.mu.Unlock()
		return v, nil
	}
	if pe := c.gate(s); pe != nil {
		v := s.view()
		s.mu.Unlock()
		c.metrics.Submission("blocked")
		return v, pe
	}

	s.touched = c.now()
	s.state = StateSubmitting
	s.inFlight = true
	s.lastErr = ""
	orderID, orderType, addr, slotText, product := s.orderID, s.orderType, s.address.FullAddress, s.slotText(), s.product()
	key := s.submissionKey()
	skipUpdate := s.appliedKey == key && !c.repeat
	s.mu.Unlock()

	log := c.logger.With(zap.String("user_id", userID), zap.String("order_id", orderID))

	if skipUpdate {
		log.Info("order update already applied, retrying lead assignment only")
	} else {
		res, err := c.gw.Update(ctx, orderID, order.Patch{
			Address: addr,
			Slot:    slotText,
			Status:  order.StatusPending,
		})
		if err != nil || !res.OK {
			return c.failed(s, log, fmt.Errorf("%w: %s", ErrUpdateFailed, reason(res, err)))
		}
		s.mu.Lock()
		s.appliedKey = key
		s.mu.Unlock()
	}

	if !product {
		res, err := c.gw.AssignLeads(ctx, orderID)
		if err != nil || !res.OK {
			return c.failed(s, log, fmt.Errorf("%w: %s", ErrLeadAssignment, reason(res, err)))
		}
	}

	s.mu.Lock()
	s.state = StateSubmitted
	s.inFlight = false
	handoff := !product && !s.handedOff
	s.handedOff = s.handedOff || handoff
	v := s.view()
	s.mu.Unlock()

	c.metrics.Submission("submitted")
	log.Info("checkout submitted", zap.Bool("product", product))

	if handoff && c.handoff != nil {
		if err := c.handoff.Start(userID, orderID); err != nil {
			log.Error("start vendor wait failed", zap.Error(err))
		}
	}
	if c.notifier != nil {
		sub := Submission{
			UserID:        userID,
			OrderID:       orderID,
			OrderType:     orderType,
			Address:       addr,
			Slot:          slotText,
			LeadsAssigned: !product,
		}
		if err := c.notifier.CheckoutSubmitted(ctx, sub); err != nil {
			log.Warn("publish checkout submitted failed", zap.Error(err))
		}
	}
	return v, nil
}

// gate checks login, address, slot and order id in that order. Caller holds s.mu.
func (c *Coordinator) gate(s *checkoutSession) *PromptError {
	switch {
	case !session.LoggedIn(s.userID):
		return promptFor(StepLogin)
	case s.address == nil:
		s.state = StateAddressPending
		return promptFor(StepAddress)
	case !s.product() && s.slot == nil:
		s.state = StateSlotPending
		return promptFor(StepSlot)
	case s.orderID == "":
		return promptFor(StepOrder)
	}
	return nil
}

func (c *Coordinator) failed(s *checkoutSession, log *zap.Logger, err error) (View, error) {
	s.mu.Lock()
	s.inFlight = false
	s.lastErr = err.Error()
	v := s.view()
	s.mu.Unlock()

	c.metrics.Submission("failed")
	log.Warn("checkout submission failed", zap.Error(err))
	return v, err
}

func reason(res order.Result, err error) string {
	if err != nil {
		return err.Error()
	}
	if res.Message == "" {
		return "no success indicator in response"
	}
	return res.Message
}
