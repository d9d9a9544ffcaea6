package vendorwait

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/order"
)

type State string

const (
	StateWaiting  State = "waiting"
	StateAccepted State = "accepted"
	StateExpired  State = "expired"
	StateStopped  State = "stopped"
)

func (s State) Terminal() bool { return s != StateWaiting }

// Source is the part of the order gateway the poller reads from.
type Source interface {
	List(ctx context.Context, f order.Filter) ([]order.Record, error)
	Vendor(ctx context.Context, phone string) ([]order.Vendor, error)
}

type Config struct {
	Interval       time.Duration
	Timeout        time.Duration
	AcceptedStatus order.Status
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = 4 * time.Second
	}
	if c.Timeout <= 0 {
		c.Timeout = 120 * time.Second
	}
	if c.AcceptedStatus == "" {
		c.AcceptedStatus = order.StatusDone
	}
	return c
}

type Snapshot struct {
	UserID           string         `json:"userId"`
	OrderID          string         `json:"orderId"`
	State            State          `json:"state"`
	RemainingSeconds int            `json:"remainingSeconds"`
	Polls            int            `json:"polls"`
	Orders           []order.Record `json:"orders,omitempty"`
	Vendor           *order.Vendor  `json:"vendor,omitempty"`
	StartedAt        time.Time      `json:"startedAt"`
	FinishedAt       *time.Time     `json:"finishedAt,omitempty"`
}

// Poller watches one submitted order until a vendor accepts it or the wait times out.
type Poller struct {
	userID  string
	orderID string
	src     Source
	cfg     Config
	clock   Clock
	logger  *zap.Logger

	cancel   context.CancelFunc
	done     chan struct{}
	nudge    chan struct{}
	onFinish func(Snapshot)

	mu              sync.Mutex
	state           State
	polls           int
	orders          []order.Record
	vendor          *order.Vendor
	vendorRequested bool
	startedAt       time.Time
	deadline        time.Time
	finishedAt      time.Time
}

func newPoller(userID, orderID string, src Source, cfg Config, clock Clock, logger *zap.Logger, onFinish func(Snapshot)) *Poller {
	if clock == nil {
		clock = realClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	now := clock.Now()
	return &Poller{
		userID:    userID,
		orderID:   orderID,
		src:       src,
		cfg:       cfg,
		clock:     clock,
		logger:    logger.With(zap.String("user_id", userID), zap.String("order_id", orderID)),
		done:      make(chan struct{}),
		nudge:     make(chan struct{}, 1),
		onFinish:  onFinish,
		state:     StateWaiting,
		startedAt: now,
		deadline:  now.Add(cfg.Timeout),
	}
}

// Start runs the poller until it reaches a terminal state or parent is cancelled.
func Start(parent context.Context, userID, orderID string, src Source, cfg Config, clock Clock, logger *zap.Logger) *Poller {
	p := newPoller(userID, orderID, src, cfg, clock, logger, nil)
	p.start(parent)
	return p
}

func (p *Poller) start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	p.cancel = cancel
	go p.run(ctx)
}

type pollResult struct {
	records []order.Record
	err     error
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	// one cancellation tears down both timers
	tick, stopTick := p.clock.Ticker(p.cfg.Interval)
	defer stopTick()
	expire, stopExpire := p.clock.Timer(p.cfg.Timeout)
	defer stopExpire()

	p.logger.Info("waiting for vendor", zap.Duration("interval", p.cfg.Interval), zap.Duration("timeout", p.cfg.Timeout))

	results := make(chan pollResult, 1)
	inFlight := true
	go p.query(ctx, results)

	for !p.terminal() {
		// ticks and nudges wait while a query is out; the deadline does not
		tickC, nudgeC := tick, (<-chan struct{})(p.nudge)
		if inFlight {
			tickC, nudgeC = nil, nil
		}
		select {
		case <-ctx.Done():
			p.finish(StateStopped)
		case <-expire:
			p.finish(StateExpired)
		case res := <-results:
			inFlight = false
			p.handle(ctx, res)
		case <-tickC:
			inFlight = true
			go p.query(ctx, results)
		case <-nudgeC:
			inFlight = true
			go p.query(ctx, results)
		}
	}

	p.cancel()
	if inFlight {
		<-results
	}
}

// query issues one status query and reports it on results.
func (p *Poller) query(ctx context.Context, results chan<- pollResult) {
	callCtx, cancel := context.WithTimeout(ctx, p.cfg.Interval)
	defer cancel()
	records, err := p.src.List(callCtx, order.Filter{OrderID: p.orderID, UserID: p.userID})
	results <- pollResult{records: records, err: err}
}

// handle applies one query result. Errors are logged and the loop keeps going. Results
// are discarded once the poller is no longer waiting, and an acceptance that arrives at
// or after the deadline counts as expiry.
func (p *Poller) handle(ctx context.Context, res pollResult) {
	p.mu.Lock()
	if p.state != StateWaiting {
		p.mu.Unlock()
		return
	}
	p.polls++
	if res.err != nil {
		p.mu.Unlock()
		p.logger.Warn("vendor status poll failed", zap.Error(res.err))
		return
	}

	var matches []order.Record
	accepted := false
	phone := ""
	for _, r := range res.records {
		if r.OrderID != p.orderID {
			continue
		}
		matches = append(matches, r)
		if r.Status == p.cfg.AcceptedStatus {
			accepted = true
		}
		if phone == "" && r.VendorPhone != "" {
			phone = r.VendorPhone
		}
	}
	if !accepted {
		p.mu.Unlock()
		return
	}
	if !p.clock.Now().Before(p.deadline) {
		p.mu.Unlock()
		p.logger.Info("vendor accepted after the deadline", zap.String("vendor_phone", phone))
		p.finish(StateExpired)
		return
	}

	p.state = StateAccepted
	p.finishedAt = p.clock.Now()
	p.orders = matches
	lookup := phone != "" && p.vendor == nil && !p.vendorRequested
	if lookup {
		p.vendorRequested = true
	}
	p.mu.Unlock()

	p.logger.Info("vendor accepted order", zap.String("vendor_phone", phone))
	p.cancel()

	if lookup {
		p.lookupVendor(ctx, phone)
	}
	p.notifyFinished()
}

func (p *Poller) lookupVendor(ctx context.Context, phone string) {
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.cfg.Timeout)
	defer cancel()

	vendors, err := p.src.Vendor(callCtx, phone)
	if err != nil {
		p.logger.Warn("vendor lookup failed", zap.Error(err))
		return
	}
	if len(vendors) == 0 {
		p.logger.Warn("vendor lookup returned no vendor", zap.String("vendor_phone", phone))
		return
	}
	v := vendors[0]
	p.mu.Lock()
	p.vendor = &v
	p.mu.Unlock()
}

func (p *Poller) finish(s State) {
	p.mu.Lock()
	if p.state != StateWaiting {
		p.mu.Unlock()
		return
	}
	p.state = s
	p.finishedAt = p.clock.Now()
	p.mu.Unlock()

	p.logger.Info("vendor wait finished", zap.String("state", string(s)))
	p.notifyFinished()
}

func (p *Poller) notifyFinished() {
	if p.onFinish != nil {
		p.onFinish(p.Snapshot())
	}
}

func (p *Poller) terminal() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Terminal()
}

// Nudge asks for one extra status query now. Calls made while a query is pending
// collapse into one. It does nothing once the wait is over.
func (p *Poller) Nudge() {
	if p.terminal() {
		return
	}
	select {
	case p.nudge <- struct{}{}:
	default:
	}
}

// Stop ends the wait. Calling it again, or after a terminal state, has no effect.
func (p *Poller) Stop() {
	p.mu.Lock()
	stopped := p.state == StateWaiting
	if stopped {
		p.state = StateStopped
		p.finishedAt = p.clock.Now()
	}
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}
	if stopped {
		p.logger.Info("vendor wait stopped")
		p.notifyFinished()
	}
}

// Done is closed once the poll loop has exited and its timers are released.
func (p *Poller) Done() <-chan struct{} { return p.done }

func (p *Poller) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Snapshot{
		UserID:    p.userID,
		OrderID:   p.orderID,
		State:     p.state,
		Polls:     p.polls,
		StartedAt: p.startedAt,
	}
	end := p.clock.Now()
	if p.state.Terminal() {
		end = p.finishedAt
		f := p.finishedAt
		s.FinishedAt = &f
	}
	if p.state != StateExpired {
		if rem := p.deadline.Sub(end); rem > 0 {
			s.RemainingSeconds = int((rem + time.Second - 1) / time.Second)
		}
	}
	if len(p.orders) > 0 {
		s.Orders = append([]order.Record(nil), p.orders...)
	}
	if p.vendor != nil {
		v := *p.vendor
		s.Vendor = &v
	}
	return s
}
