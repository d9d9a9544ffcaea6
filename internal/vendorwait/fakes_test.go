package vendorwait

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/order"
)

type fakeClock struct {
	mu            sync.Mutex
	now           time.Time
	ticks         chan time.Time
	expire        chan time.Time
	tickers       int
	tickerStopped bool
	timerStopped  bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		now:    time.Date(2024, 5, 17, 18, 0, 0, 0, time.UTC),
		ticks:  make(chan time.Time),
		expire: make(chan time.Time),
	}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func (c *fakeClock) Ticker(time.Duration) (<-chan time.Time, func()) {
	c.mu.Lock()
	c.tickers++
	c.mu.Unlock()
	return c.ticks, func() {
		c.mu.Lock()
		c.tickerStopped = true
		c.mu.Unlock()
	}
}

func (c *fakeClock) Timer(time.Duration) (<-chan time.Time, func()) {
	return c.expire, func() {
		c.mu.Lock()
		c.timerStopped = true
		c.mu.Unlock()
	}
}

func (c *fakeClock) stopped() (ticker, timer bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tickerStopped, c.timerStopped
}

// fire delivers on ch, failing when the poll loop is not there to receive it.
func fire(t *testing.T, ch chan time.Time) bool {
	t.Helper()
	select {
	case ch <- time.Time{}:
		return true
	case <-time.After(200 * time.Millisecond):
		return false
	}
}

type fakeSource struct {
	mu       sync.Mutex
	statuses []order.Status
	errs     map[int]error
	hold     map[int]chan struct{} // query i blocks until its channel is closed
	phone    string
	lists    int
	vendors  int
	vendorFn func() ([]order.Vendor, error)
}

func (s *fakeSource) List(_ context.Context, f order.Filter) ([]order.Record, error) {
	s.mu.Lock()
	i := s.lists
	s.lists++
	gate := s.hold[i]
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.errs[i]; err != nil {
		return nil, err
	}
	status := order.StatusPending
	if len(s.statuses) > 0 {
		if i < len(s.statuses) {
			status = s.statuses[i]
		} else {
			status = s.statuses[len(s.statuses)-1]
		}
	}
	rec := order.Record{ID: "1", OrderID: f.OrderID, UserID: f.UserID, ItemName: "Haircut", Status: status}
	if status == order.StatusDone {
		rec.VendorPhone = s.phone
	}
	other := order.Record{ID: "2", OrderID: "OTHER", Status: order.StatusDone, VendorPhone: "0000000000"}
	return []order.Record{other, rec}, nil
}

func (s *fakeSource) Vendor(context.Context, string) ([]order.Vendor, error) {
	s.mu.Lock()
	s.vendors++
	fn := s.vendorFn
	s.mu.Unlock()
	if fn != nil {
		return fn()
	}
	return []order.Vendor{{Fullname: "Asha Salon", PhoneNumber: s.phone, Address: "MG Road"}}, nil
}

func (s *fakeSource) counts() (lists, vendors int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists, s.vendors
}

func waitDone(t *testing.T, p *Poller) {
	t.Helper()
	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not finish")
	}
}
