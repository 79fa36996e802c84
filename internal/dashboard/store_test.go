package dashboard

import (
	"context"
	"testing"
	"time"

	"shotboard/internal/shared/errors"
	"shotboard/internal/shared/metrics"
	"shotboard/internal/testutil"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestStore(t *testing.T, idle time.Duration, max int) (*Store, *fakeClock, *metrics.Metrics) {
	t.Helper()
	m := metrics.New(prometheus.NewRegistry())
	st := NewStore(newSampleService(t, nil), idle, max, m, testutil.DiscardLogger())
	clock := &fakeClock{t: time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC)}
	st.now = clock.now
	return st, clock, m
}

func TestStoreCreateGetDelete(t *testing.T) {
	st, _, m := newTestStore(t, time.Hour, 10)

	id, sess, err := st.Create(context.Background())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected uuid session id, got %q", id)
	}
	if got := promtest.ToFloat64(m.ActiveSessions); got != 1 {
		t.Fatalf("expected 1 active session, got %v", got)
	}

	got, err := st.Get(id)
	if err != nil || got != sess {
		t.Fatalf("Get returned %v, %v", got, err)
	}

	if err := st.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Get(id); !errors.Is(err, errors.ErrorTypeNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := st.Delete(id); !errors.Is(err, errors.ErrorTypeNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
	if got := promtest.ToFloat64(m.ActiveSessions); got != 0 {
		t.Fatalf("expected 0 active sessions, got %v", got)
	}
}

func TestStoreRejectsMalformedID(t *testing.T) {
	st, _, _ := newTestStore(t, time.Hour, 10)

	if _, err := st.Get("not-a-session"); !errors.Is(err, errors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStoreExpiresIdleSessions(t *testing.T) {
	st, clock, _ := newTestStore(t, 30*time.Minute, 10)

	id, _, err := st.Create(context.Background())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	clock.t = clock.t.Add(20 * time.Minute)
	if _, err := st.Get(id); err != nil {
		t.Fatalf("session should still be live: %v", err)
	}

	// Get refreshed lastSeen, so another 20 minutes is still fine.
	clock.t = clock.t.Add(20 * time.Minute)
	if n := st.Sweep(); n != 0 {
		t.Fatalf("expected nothing swept, got %d", n)
	}

	clock.t = clock.t.Add(31 * time.Minute)
	if n := st.Sweep(); n != 1 {
		t.Fatalf("expected the idle session swept, got %d", n)
	}
	if _, err := st.Get(id); !errors.Is(err, errors.ErrorTypeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStoreEvictsLeastRecentlyUsed(t *testing.T) {
	st, clock, _ := newTestStore(t, 0, 2)
	ctx := context.Background()

	first, _, _ := st.Create(ctx)
	clock.t = clock.t.Add(time.Minute)
	second, _, _ := st.Create(ctx)
	clock.t = clock.t.Add(time.Minute)
	if _, err := st.Get(first); err != nil {
		t.Fatalf("Get: %v", err)
	}
	clock.t = clock.t.Add(time.Minute)
	third, _, err := st.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if st.Len() != 2 {
		t.Fatalf("expected the limit to hold, got %d sessions", st.Len())
	}
	if _, err := st.Get(second); err == nil {
		t.Fatalf("expected the least recently used session to be evicted")
	}
	for _, id := range []string{first, third} {
		if _, err := st.Get(id); err != nil {
			t.Fatalf("session %s should survive: %v", id, err)
		}
	}
}

func TestStoreRunStopsWithContext(t *testing.T) {
	st, _, _ := newTestStore(t, time.Minute, 10)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		st.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
