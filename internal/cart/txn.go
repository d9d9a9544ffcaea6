package cart

import "sync"

// rollback decides what a failed mutation does to local state.
type rollback int

const (
	restoreOnFailure rollback = iota
	keepOnFailure
)

// txn is one optimistic mutation: snapshot, apply, then commit or restore.
// Callers hold Cart.mu around begin, commit, fail and release.
type txn struct {
	key      string
	lane     *lane
	ticket   uint64
	policy   rollback
	snapshot map[string]Item
}

func (c *Cart) begin(key string, policy rollback, match func(Item) bool, apply func(*Item) bool) (*txn, bool) {
	t := &txn{key: key, policy: policy, snapshot: map[string]Item{}}

	kept := c.items[:0:0]
	for _, it := range c.items {
		if !match(it) {
			kept = append(kept, it)
			continue
		}
		t.snapshot[it.ID] = it
		if apply(&it) {
			kept = append(kept, it)
		}
	}
	if len(t.snapshot) == 0 {
		return nil, false
	}
	c.items = kept
	t.lane = c.laneFor(key)
	t.ticket = t.lane.take()
	return t, true
}

func (c *Cart) commit(t *txn, confirmed int) {
	c.confirmed[t.key] = confirmed
}

// fail restores the snapshot unless the policy keeps the speculative state or a newer
// intent for the same key has been applied since.
func (c *Cart) fail(t *txn) bool {
	if t.policy == keepOnFailure {
		return false
	}
	if t.lane.latest() != t.ticket {
		return false
	}
	good, haveGood := c.confirmed[t.key]
	restored := false
	for i := range c.items {
		prev, ok := t.snapshot[c.items[i].ID]
		if !ok {
			continue
		}
		if haveGood {
			prev.Quantity = good
		}
		c.items[i].Quantity = prev.Quantity
		restored = true
	}
	return restored
}

// release forgets the lane once no ticket on it is waiting or running.
func (c *Cart) release(t *txn) {
	if t.lane.idle() && c.lanes[t.key] == t.lane {
		delete(c.lanes, t.key)
	}
}

// lane hands out tickets per key and lets exactly one ticket holder talk to the
// remote service at a time, in ticket order.
type lane struct {
	mu      sync.Mutex
	cond    *sync.Cond
	next    uint64
	serving uint64
}

func newLane() *lane {
	l := &lane{}
	l.cond = sync.NewCond(&l.mu)
	return l
}

func (l *lane) take() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	t := l.next
	l.next++
	return t
}

func (l *lane) latest() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.next - 1
}

func (l *lane) idle() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.serving == l.next
}

func (l *lane) wait(ticket uint64) {
	l.mu.Lock()
	for l.serving != ticket {
		l.cond.Wait()
	}
	l.mu.Unlock()
}

func (l *lane) done() {
	l.mu.Lock()
	l.serving++
	l.cond.Broadcast()
	l.mu.Unlock()
}
