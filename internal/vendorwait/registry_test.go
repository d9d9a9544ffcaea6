package vendorwait

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/metrics"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/order"
)

type fakeNotifier struct {
	mu       sync.Mutex
	accepted []Snapshot
	expired  []Snapshot
}

func (n *fakeNotifier) VendorAccepted(_ context.Context, s Snapshot) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.accepted = append(n.accepted, s)
	return nil
}

func (n *fakeNotifier) WaitExpired(_ context.Context, s Snapshot) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.expired = append(n.expired, s)
	return nil
}

func (n *fakeNotifier) counts() (accepted, expired int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.accepted), len(n.expired)
}

func newTestRegistry(src Source, clock Clock, n Notifier) *Registry {
	return NewRegistry(context.Background(), Deps{
		Source:   src,
		Config:   testConfig,
		Clock:    clock,
		Notifier: n,
		Metrics:  metrics.New(),
	})
}

func TestRegistryStartsOncePerOrder(t *testing.T) {
	src := &fakeSource{}
	clock := newFakeClock()
	r := newTestRegistry(src, clock, nil)
	t.Cleanup(func() { _ = r.Shutdown(context.Background()) })

	require.NoError(t, r.Start("u1", "O1"))
	require.NoError(t, r.Start("u1", "O1"))

	require.Eventually(t, func() bool {
		s, err := r.Get("u1", "O1")
		return err == nil && s.Polls == 1
	}, time.Second, time.Millisecond)

	clock.mu.Lock()
	tickers := clock.tickers
	clock.mu.Unlock()
	assert.Equal(t, 1, tickers)

	_, err := r.Get("someone-else", "O1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, r.Start("u1", ""), ErrNotFound)
}

func TestRegistryRefusesOrderOwnedByAnotherUser(t *testing.T) {
	src := &fakeSource{}
	r := newTestRegistry(src, newFakeClock(), nil)
	t.Cleanup(func() { _ = r.Shutdown(context.Background()) })

	require.NoError(t, r.Start("u1", "O1"))
	assert.ErrorIs(t, r.Start("u2", "O1"), ErrOrderClaimed)

	s, err := r.Get("u1", "O1")
	require.NoError(t, err)
	assert.Equal(t, StateWaiting, s.State)
	_, err = r.Get("u2", "O1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryPublishesAcceptance(t *testing.T) {
	src := &fakeSource{statuses: []order.Status{order.StatusPending, order.StatusDone}, phone: "9123456780"}
	clock := newFakeClock()
	n := &fakeNotifier{}
	r := newTestRegistry(src, clock, n)

	require.NoError(t, r.Start("u1", "O1"))
	require.Eventually(t, func() bool {
		s, _ := r.Get("u1", "O1")
		return s.Polls == 1
	}, time.Second, time.Millisecond)

	s, err := r.Nudge("u1", "O1")
	require.NoError(t, err)
	assert.Equal(t, "O1", s.OrderID)

	require.Eventually(t, func() bool {
		accepted, _ := n.counts()
		return accepted == 1
	}, time.Second, time.Millisecond)

	s, err = r.Get("u1", "O1")
	require.NoError(t, err)
	assert.Equal(t, StateAccepted, s.State)
	require.NotNil(t, s.Vendor)
	assert.Equal(t, "9123456780", n.accepted[0].Vendor.PhoneNumber)
}

func TestRegistryStopAndRestart(t *testing.T) {
	src := &fakeSource{}
	clock := newFakeClock()
	n := &fakeNotifier{}
	r := newTestRegistry(src, clock, n)

	require.NoError(t, r.Start("u1", "O1"))
	s, err := r.Stop("u1", "O1")
	require.NoError(t, err)
	assert.Equal(t, StateStopped, s.State)

	accepted, expired := n.counts()
	assert.Zero(t, accepted)
	assert.Zero(t, expired)

	require.NoError(t, r.Start("u1", "O1"))
	s, err = r.Get("u1", "O1")
	require.NoError(t, err)
	assert.Equal(t, StateWaiting, s.State)

	require.NoError(t, r.Shutdown(context.Background()))
	s, _ = r.Get("u1", "O1")
	assert.Equal(t, StateStopped, s.State)
}

func TestRegistryPrunesOldWaits(t *testing.T) {
	clock := newFakeClock()
	r := newTestRegistry(&fakeSource{}, clock, nil)

	require.NoError(t, r.Start("u1", "O1"))
	_, err := r.Stop("u1", "O1")
	require.NoError(t, err)

	clock.Advance(finishedRetention + time.Minute)
	require.NoError(t, r.Start("u2", "O2"))
	t.Cleanup(func() { _ = r.Shutdown(context.Background()) })

	_, err = r.Get("u1", "O1")
	assert.ErrorIs(t, err, ErrNotFound)
}
