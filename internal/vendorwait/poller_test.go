package vendorwait

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/order"
)

var testConfig = Config{Interval: 4 * time.Second, Timeout: 120 * time.Second, AcceptedStatus: order.StatusDone}

func startTestPoller(t *testing.T, src *fakeSource, clock *fakeClock) *Poller {
	t.Helper()
	p := Start(context.Background(), "9876543210", "O1", src, testConfig, clock, nil)
	t.Cleanup(p.Stop)
	require.Eventually(t, func() bool { return p.Snapshot().Polls >= 1 }, time.Second, time.Millisecond)
	return p
}

func TestAcceptedOnThirdPoll(t *testing.T) {
	src := &fakeSource{statuses: []order.Status{order.StatusPending, order.StatusPending, order.StatusDone}, phone: "9123456780"}
	clock := newFakeClock()
	p := startTestPoller(t, src, clock)

	assert.Equal(t, StateWaiting, p.Snapshot().State)
	require.True(t, fire(t, clock.ticks))
	require.True(t, fire(t, clock.ticks))
	waitDone(t, p)

	s := p.Snapshot()
	assert.Equal(t, StateAccepted, s.State)
	assert.Equal(t, 3, s.Polls)
	require.Len(t, s.Orders, 1)
	assert.Equal(t, "O1", s.Orders[0].OrderID)
	require.NotNil(t, s.Vendor)
	assert.Equal(t, "Asha Salon", s.Vendor.Fullname)

	assert.False(t, fire(t, clock.ticks), "no polling after acceptance")
	lists, vendors := src.counts()
	assert.Equal(t, 3, lists)
	assert.Equal(t, 1, vendors)

	tickerStopped, timerStopped := clock.stopped()
	assert.True(t, tickerStopped)
	assert.True(t, timerStopped)
}

func TestExpiresWithoutAcceptance(t *testing.T) {
	src := &fakeSource{}
	clock := newFakeClock()
	p := startTestPoller(t, src, clock)

	require.True(t, fire(t, clock.ticks))
	clock.Advance(120 * time.Second)
	require.True(t, fire(t, clock.expire))
	waitDone(t, p)

	s := p.Snapshot()
	assert.Equal(t, StateExpired, s.State)
	assert.Zero(t, s.RemainingSeconds)
	assert.Nil(t, s.Vendor)
	assert.False(t, fire(t, clock.ticks), "no polling after expiry")

	lists, vendors := src.counts()
	assert.Equal(t, 2, lists)
	assert.Zero(t, vendors)
	tickerStopped, timerStopped := clock.stopped()
	assert.True(t, tickerStopped)
	assert.True(t, timerStopped)
}

func TestDeadlineFiresWhileQueryInFlight(t *testing.T) {
	gate := make(chan struct{})
	src := &fakeSource{
		statuses: []order.Status{order.StatusPending, order.StatusDone},
		phone:    "9123456780",
		hold:     map[int]chan struct{}{1: gate},
	}
	clock := newFakeClock()
	p := startTestPoller(t, src, clock)

	require.True(t, fire(t, clock.ticks))
	require.Eventually(t, func() bool { lists, _ := src.counts(); return lists == 2 }, time.Second, time.Millisecond)

	clock.Advance(testConfig.Timeout)
	require.True(t, fire(t, clock.expire), "deadline must be served while a query is out")
	require.Eventually(t, func() bool { return p.Snapshot().State == StateExpired }, time.Second, time.Millisecond)

	close(gate)
	waitDone(t, p)

	s := p.Snapshot()
	assert.Equal(t, StateExpired, s.State)
	assert.Nil(t, s.Vendor)
	assert.Empty(t, s.Orders)
	_, vendors := src.counts()
	assert.Zero(t, vendors)
}

func TestAcceptanceAfterDeadlineExpires(t *testing.T) {
	gate := make(chan struct{})
	src := &fakeSource{
		statuses: []order.Status{order.StatusPending, order.StatusDone},
		phone:    "9123456780",
		hold:     map[int]chan struct{}{1: gate},
	}
	clock := newFakeClock()
	p := startTestPoller(t, src, clock)

	require.True(t, fire(t, clock.ticks))
	require.Eventually(t, func() bool { lists, _ := src.counts(); return lists == 2 }, time.Second, time.Millisecond)

	clock.Advance(testConfig.Timeout + time.Second)
	close(gate)
	waitDone(t, p)

	s := p.Snapshot()
	assert.Equal(t, StateExpired, s.State)
	assert.Zero(t, s.RemainingSeconds)
	assert.Nil(t, s.Vendor)
	_, vendors := src.counts()
	assert.Zero(t, vendors)
}

func TestTickWaitsForQueryInFlight(t *testing.T) {
	gate := make(chan struct{})
	src := &fakeSource{hold: map[int]chan struct{}{1: gate}}
	clock := newFakeClock()
	p := startTestPoller(t, src, clock)

	require.True(t, fire(t, clock.ticks))
	assert.False(t, fire(t, clock.ticks), "no second query while one is out")

	close(gate)
	require.True(t, fire(t, clock.ticks))
	require.Eventually(t, func() bool { return p.Snapshot().Polls == 3 }, time.Second, time.Millisecond)
}

func TestNetworkErrorsDoNotStopPolling(t *testing.T) {
	src := &fakeSource{
		statuses: []order.Status{order.StatusPending, order.StatusPending, order.StatusDone},
		errs:     map[int]error{0: order.ErrTransport, 1: errors.New("timeout")},
	}
	clock := newFakeClock()
	p := startTestPoller(t, src, clock)

	require.True(t, fire(t, clock.ticks))
	assert.Equal(t, StateWaiting, p.Snapshot().State)
	require.True(t, fire(t, clock.ticks))
	waitDone(t, p)

	s := p.Snapshot()
	assert.Equal(t, StateAccepted, s.State)
	assert.Nil(t, s.Vendor, "no vendor phone, no lookup")
	_, vendors := src.counts()
	assert.Zero(t, vendors)
}

func TestNudgeTriggersOneExtraPoll(t *testing.T) {
	src := &fakeSource{}
	clock := newFakeClock()
	p := startTestPoller(t, src, clock)

	p.Nudge()
	require.Eventually(t, func() bool { return p.Snapshot().Polls == 2 }, time.Second, time.Millisecond)

	require.True(t, fire(t, clock.ticks))
	require.Eventually(t, func() bool { return p.Snapshot().Polls == 3 }, time.Second, time.Millisecond)

	clock.mu.Lock()
	tickers := clock.tickers
	clock.mu.Unlock()
	assert.Equal(t, 1, tickers, "nudge must not reset the interval")
	assert.Equal(t, StateWaiting, p.Snapshot().State)
}

func TestNudgeAfterAcceptanceIsIgnored(t *testing.T) {
	src := &fakeSource{statuses: []order.Status{order.StatusDone}, phone: "9123456780"}
	clock := newFakeClock()
	p := startTestPoller(t, src, clock)
	waitDone(t, p)

	p.Nudge()
	p.Nudge()

	lists, vendors := src.counts()
	assert.Equal(t, 1, lists)
	assert.Equal(t, 1, vendors)
	assert.Equal(t, StateAccepted, p.Snapshot().State)
}

func TestStopIsIdempotent(t *testing.T) {
	src := &fakeSource{}
	clock := newFakeClock()
	p := startTestPoller(t, src, clock)

	clock.Advance(30 * time.Second)
	p.Stop()
	p.Stop()
	waitDone(t, p)

	s := p.Snapshot()
	assert.Equal(t, StateStopped, s.State)
	assert.Equal(t, 90, s.RemainingSeconds)
	assert.False(t, fire(t, clock.ticks))
}

func TestRemainingSecondsCountsDown(t *testing.T) {
	src := &fakeSource{}
	clock := newFakeClock()
	p := startTestPoller(t, src, clock)

	assert.Equal(t, 120, p.Snapshot().RemainingSeconds)
	clock.Advance(4500 * time.Millisecond)
	assert.Equal(t, 116, p.Snapshot().RemainingSeconds)
}

func TestVendorLookupFailureIsNotRetried(t *testing.T) {
	src := &fakeSource{
		statuses: []order.Status{order.StatusDone},
		phone:    "9123456780",
		vendorFn: func() ([]order.Vendor, error) { return nil, order.ErrTransport },
	}
	p := startTestPoller(t, src, newFakeClock())
	waitDone(t, p)

	assert.Equal(t, StateAccepted, p.Snapshot().State)
	assert.Nil(t, p.Snapshot().Vendor)
	_, vendors := src.counts()
	assert.Equal(t, 1, vendors)
}

func TestParentCancellationStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Start(ctx, "u", "O1", &fakeSource{}, testConfig, newFakeClock(), nil)
	cancel()
	waitDone(t, p)
	assert.Equal(t, StateStopped, p.Snapshot().State)
}
