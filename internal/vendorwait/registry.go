package vendorwait

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/metrics"
)

var (
	ErrNotFound     = errors.New("vendor wait not found")
	ErrOrderClaimed = errors.New("vendor wait for order belongs to another user")
)

// finishedRetention is how long terminal waits stay readable.
const finishedRetention = 15 * time.Minute

type Notifier interface {
	VendorAccepted(ctx context.Context, s Snapshot) error
	WaitExpired(ctx context.Context, s Snapshot) error
}

type Deps struct {
	Source   Source
	Config   Config
	Clock    Clock
	Notifier Notifier
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
}

// Registry runs at most one poller per order and receives the checkout handoff.
type Registry struct {
	base     context.Context
	src      Source
	cfg      Config
	clock    Clock
	notifier Notifier
	logger   *zap.Logger
	metrics  *metrics.Metrics

	mu      sync.Mutex
	pollers map[string]*Poller
}

// NewRegistry ties every poller to base, which should live as long as the service.
func NewRegistry(base context.Context, d Deps) *Registry {
	clock := d.Clock
	if clock == nil {
		clock = realClock{}
	}
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		base:     base,
		src:      d.Source,
		cfg:      d.Config.withDefaults(),
		clock:    clock,
		notifier: d.Notifier,
		logger:   logger,
		metrics:  d.Metrics,
		pollers:  map[string]*Poller{},
	}
}

// Start begins waiting for a vendor on orderID. A wait already running for the order is
// kept; if it belongs to another user the handoff is refused with ErrOrderClaimed.
func (r *Registry) Start(userID, orderID string) error {
	if orderID == "" {
		return ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune()

	if p, ok := r.pollers[orderID]; ok && !p.terminal() {
		if p.userID != userID {
			r.logger.Warn("vendor wait owned by another user",
				zap.String("order_id", orderID),
				zap.String("user_id", userID),
				zap.String("owner_id", p.userID))
			return ErrOrderClaimed
		}
		return nil
	}

	p := newPoller(userID, orderID, r.src, r.cfg, r.clock, r.logger, r.finished)
	r.pollers[orderID] = p
	r.metrics.WaitStarted()
	p.start(r.base)
	return nil
}

func (r *Registry) finished(s Snapshot) {
	r.metrics.WaitFinished(string(s.State))
	if r.notifier == nil {
		return
	}

	var err error
	switch s.State {
	case StateAccepted:
		err = r.notifier.VendorAccepted(context.WithoutCancel(r.base), s)
	case StateExpired:
		err = r.notifier.WaitExpired(context.WithoutCancel(r.base), s)
	}
	if err != nil {
		r.logger.Warn("publish vendor wait outcome failed",
			zap.String("order_id", s.OrderID),
			zap.String("state", string(s.State)),
			zap.Error(err))
	}
}

// prune drops terminal waits past retention. Caller holds r.mu.
func (r *Registry) prune() {
	now := r.clock.Now()
	for id, p := range r.pollers {
		s := p.Snapshot()
		if s.FinishedAt != nil && now.Sub(*s.FinishedAt) > finishedRetention {
			delete(r.pollers, id)
		}
	}
}

func (r *Registry) lookup(userID, orderID string) (*Poller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pollers[orderID]
	if !ok || p.userID != userID {
		return nil, ErrNotFound
	}
	return p, nil
}

func (r *Registry) Get(userID, orderID string) (Snapshot, error) {
	p, err := r.lookup(userID, orderID)
	if err != nil {
		return Snapshot{}, err
	}
	return p.Snapshot(), nil
}

// Nudge requests an immediate status query, e.g. when the client regains focus.
func (r *Registry) Nudge(userID, orderID string) (Snapshot, error) {
	p, err := r.lookup(userID, orderID)
	if err != nil {
		return Snapshot{}, err
	}
	p.Nudge()
	return p.Snapshot(), nil
}

func (r *Registry) Stop(userID, orderID string) (Snapshot, error) {
	p, err := r.lookup(userID, orderID)
	if err != nil {
		return Snapshot{}, err
	}
	p.Stop()
	return p.Snapshot(), nil
}

// Shutdown stops every running wait and blocks until their loops exit or ctx is done.
func (r *Registry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	pollers := make([]*Poller, 0, len(r.pollers))
	for _, p := range r.pollers {
		pollers = append(pollers, p)
	}
	r.mu.Unlock()

	for _, p := range pollers {
		p.Stop()
	}
	for _, p := range pollers {
		select {
		case <-p.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
