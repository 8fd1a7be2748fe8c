// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/journal-search/pkg/types"
)

// Session holds one user's query state over a shared, read-only catalog.
// Each user gets their own Session; a Session is safe for concurrent use
// so that overlapping requests from one browser are applied in turn.
type Session struct {
	mu      sync.Mutex
	records []types.Article
	state   State
	logger  *zap.Logger
}

// NewSession starts a session in the Initial state. records is never
// modified. A nil logger discards output.
func NewSession(records []types.Article, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{records: records, state: Initial(), logger: logger}
}

// Dispatch applies a to the session state. On error the state is left as
// it was.
func (s *Session) Dispatch(a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Reduce(s.records, s.state, a)
	if err != nil {
		s.logger.Debug("action rejected", zap.String("action", actionName(a)), zap.Error(err))
		return err
	}
	s.logger.Debug("action applied",
		zap.String("action", actionName(a)),
		zap.Stringer("criteria", next.Criteria),
		zap.Int("page", next.Page),
		zap.Bool("active", next.Active))
	s.state = next
	return nil
}

// SubmitSearch starts a new search. It returns ErrEmptyCriteria when every
// criterion is blank.
func (s *Session) SubmitSearch(c Criteria) error {
	return s.Dispatch(Submit{Criteria: c})
}

// Reset clears the search.
func (s *Session) Reset() {
	_ = s.Dispatch(Reset{})
}

// Navigate moves to another page of the active search.
func (s *Session) Navigate(n Nav) error {
	return s.Dispatch(Navigate{Nav: n})
}

// JumpTo moves the active search to page.
func (s *Session) JumpTo(page int) error {
	return s.Dispatch(Jump{Page: page})
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// View returns the page to display for the current state.
func (s *Session) View() Page {
	return View(s.records, s.State())
}

func actionName(a Action) string {
	switch a := a.(type) {
	case Submit:
		return "submit"
	case Reset:
		return "reset"
	case Navigate:
		return "navigate:" + a.Nav.String()
	case Jump:
		return "jump"
	}
	return "unknown"
}
