package domain

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/lazharichir/holdem/domain/cards"
	"github.com/lazharichir/holdem/domain/events"
	"github.com/lazharichir/holdem/domain/settings"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// fakeClock fires timers only when Advance is called.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock *fakeClock
	at    time.Duration
	fn    func()
	done  bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now + d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward and fires every timer that came due, oldest first.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	pending := c.timers[:0]
	for _, t := range c.timers {
		switch {
		case t.done:
		case t.at <= c.now:
			t.done = true
			due = append(due, t)
		default:
			pending = append(pending, t)
		}
	}
	c.timers = pending
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fn()
	}
}

// recorder captures every event a room emits.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) handle(event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func findEventsOfType[T events.Event](r *recorder) []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []T
	for _, e := range r.events {
		if typed, ok := e.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

func findEventOfType[T events.Event](t *testing.T, r *recorder) T {
	t.Helper()
	found := findEventsOfType[T](r)
	var zero T
	require.NotEmpty(t, found, "no %T event emitted", zero)
	return found[len(found)-1]
}

// table drives a room with a fake clock.
type table struct {
	t     *testing.T
	clock *fakeClock
	room  *Room
	rec   *recorder
	hook  *test.Hook
}

// headsUpDeck gives bob (dealt first) a pair of aces against alice.
var headsUpDeck = cards.MustParse("A♠ 2♣ A♦ 7♦ K♥ 9♠ 4♣ 3♦ J♥")

func newTable(t *testing.T, deck []cards.Card, configure ...func(*RoomConfig)) *table {
	t.Helper()
	logger, hook := test.NewNullLogger()
	clock := &fakeClock{}
	cfg := RoomConfig{Clock: clock, Logger: logger, Settings: settings.Default()}
	if deck != nil {
		cfg.NewDeck = func() *cards.Deck { return cards.NewStackedDeck(deck...) }
	}
	for _, fn := range configure {
		fn(&cfg)
	}

	rec := &recorder{}
	room := NewRoom("test-room", cfg, rec.handle)
	t.Cleanup(room.Close)
	return &table{t: t, clock: clock, room: room, rec: rec, hook: hook}
}

func (tb *table) snapshot() Snapshot {
	tb.t.Helper()
	snap, err := tb.room.Snapshot()
	require.NoError(tb.t, err)
	return snap
}

// advance steps the clock in quarter seconds, letting the room drain its
// inbox after each step so chained timers fire in order.
func (tb *table) advance(d time.Duration) {
	tb.t.Helper()
	const step = 250 * time.Millisecond
	for elapsed := time.Duration(0); elapsed < d; elapsed += step {
		tb.clock.Advance(step)
		tb.snapshot()
	}
}

func (tb *table) join(handles ...string) {
	tb.t.Helper()
	for _, h := range handles {
		require.NoError(tb.t, tb.room.Join(h, h))
	}
}

func (tb *table) act(handle string, action Action, amount int) {
	tb.t.Helper()
	require.NoError(tb.t, tb.room.Act(handle, action, amount))
}

func (tb *table) player(handle string) events.PlayerView {
	tb.t.Helper()
	for _, p := range tb.snapshot().Players {
		if p.Handle == handle {
			return p
		}
	}
	tb.t.Fatalf("player %s not seated", handle)
	return events.PlayerView{}
}

// chipsInPlay is every stack plus the pot.
func (tb *table) chipsInPlay() int {
	tb.t.Helper()
	snap := tb.snapshot()
	total := snap.GameState.Pot
	for _, p := range snap.Players {
		total += p.Chips
	}
	return total
}
