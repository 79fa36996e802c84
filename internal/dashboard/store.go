package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"shotboard/internal/shared/errors"
	"shotboard/internal/shared/metrics"

	"github.com/google/uuid"
)

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Store keeps live sessions by id. Sessions idle longer than idleTimeout
// are dropped; when full, the least recently used session makes room.
type Store struct {
	service     *Service
	idleTimeout time.Duration
	maxSessions int
	metrics     *metrics.Metrics
	logger      *slog.Logger
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

func NewStore(service *Service, idleTimeout time.Duration, maxSessions int, m *metrics.Metrics, logger *slog.Logger) *Store {
	if maxSessions < 1 {
		maxSessions = 1
	}
	return &Store{
		service:     service,
		idleTimeout: idleTimeout,
		maxSessions: maxSessions,
		metrics:     m,
		logger:      logger.With("component", "session_store"),
		now:         time.Now,
		sessions:    make(map[string]*entry),
	}
}

// Create starts a session on the default selection.
func (st *Store) Create(ctx context.Context) (string, *Session, error) {
	sess, err := st.service.NewSession(ctx)
	if err != nil {
		return "", nil, err
	}

	id := uuid.NewString()

	st.mu.Lock()
	defer st.mu.Unlock()

	st.sweepLocked()
	if len(st.sessions) >= st.maxSessions {
		st.evictOldestLocked()
	}
	st.sessions[id] = &entry{session: sess, lastSeen: st.now()}
	st.metrics.SetActiveSessions(len(st.sessions))

	st.logger.Info("Session created", "session_id", id, "active", len(st.sessions))
	return id, sess, nil
}

func (st *Store) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.WrapValidation("invalid session ID format", err)
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[id]
	if !ok || st.expiredLocked(e) {
		if ok {
			delete(st.sessions, id)
			st.metrics.SetActiveSessions(len(st.sessions))
		}
		return nil, errors.NotFoundf("session %s not found", id)
	}

	e.lastSeen = st.now()
	return e.session, nil
}

func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return errors.NotFoundf("session %s not found", id)
	}
	delete(st.sessions, id)
	st.metrics.SetActiveSessions(len(st.sessions))

	st.logger.Info("Session ended", "session_id", id, "active", len(st.sessions))
	return nil
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops idle sessions and reports how many went.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sweepLocked()
}

// Run sweeps on every tick until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				st.logger.Debug("Expired idle sessions", "expired", n)
			}
		}
	}
}

func (st *Store) expiredLocked(e *entry) bool {
	return st.idleTimeout > 0 && st.now().Sub(e.lastSeen) > st.idleTimeout
}

func (st *Store) sweepLocked() int {
	removed := 0
	for id, e := range st.sessions {
		if st.expiredLocked(e) {
			delete(st.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		st.metrics.SetActiveSessions(len(st.sessions))
	}
	return removed
}

func (st *Store) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, e := range st.sessions {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	if oldestID != "" {
		delete(st.sessions, oldestID)
		st.logger.Warn("Session limit reached, evicted least recently used", "session_id", oldestID)
	}
}
