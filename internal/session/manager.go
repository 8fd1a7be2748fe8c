// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session keeps one query.Session per user of the web host. All
// sessions share the same read-only catalog records; nothing else is shared
// between them.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/journal-search/internal/query"
	"github.com/pdiddy/journal-search/pkg/types"
)

// minSweepInterval bounds how often the janitor runs.
const minSweepInterval = time.Second

type entry struct {
	session  *query.Session
	lastSeen time.Time
}

// Manager maps session ids to sessions.
type Manager struct {
	mu       sync.Mutex
	records  []types.Article
	sessions map[string]*entry
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewManager returns a Manager over records. When ttl is positive a
// background janitor expires sessions idle longer than ttl until Close is
// called.
func NewManager(records []types.Article, ttl time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		records:  records,
		sessions: make(map[string]*entry),
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	if ttl > 0 {
		go m.janitor(sweepInterval(ttl))
	} else {
		close(m.done)
	}
	return m
}

func sweepInterval(ttl time.Duration) time.Duration {
	if iv := ttl / 4; iv > minSweepInterval {
		return iv
	}
	return minSweepInterval
}

func (m *Manager) janitor(interval time.Duration) {
	defer close(m.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.Expire()
		}
	}
}

// Create starts a new session and returns its id.
func (m *Manager) Create() (string, *query.Session) {
	id := uuid.NewString()
	s := query.NewSession(m.records, m.logger.With(zap.String("session", id)))

	m.mu.Lock()
	m.sessions[id] = &entry{session: s, lastSeen: m.now()}
	n := len(m.sessions)
	m.mu.Unlock()

	m.logger.Debug("session created", zap.String("session", id), zap.Int("sessions", n))
	return id, s
}

// Get returns the session for id and marks it as used.
func (m *Manager) Get(id string) (*query.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = m.now()
	return e.session, true
}

// GetOrCreate returns the session for id, or a new session with a fresh id
// when id is unknown. created reports which happened.
func (m *Manager) GetOrCreate(id string) (sid string, s *query.Session, created bool) {
	if id != "" {
		if s, ok := m.Get(id); ok {
			return id, s, false
		}
	}
	sid, s = m.Create()
	return sid, s, true
}

// Delete drops the session for id.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Expire removes sessions idle longer than the ttl and returns how many
// were removed. It does nothing when the ttl is not positive.
func (m *Manager) Expire() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	removed := 0
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	left := len(m.sessions)
	m.mu.Unlock()

	if removed > 0 {
		m.logger.Info("sessions expired", zap.Int("removed", removed), zap.Int("sessions", left))
	}
	return removed
}

// Close stops the janitor and waits for it to exit. It is safe to call
// more than once.
func (m *Manager) Close() {
	m.closeOnce.Do(func() { close(m.stop) })
	<-m.done
}
