// Package session implements the chat submission state machine.
//
// A session is either idle or has exactly one query in flight. Submitting
// while pending is rejected; there is no queue and no cancellation. The
// user's turn is appended optimistically before the search runs and is
// never rolled back, even when the search later fails.
package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sreehariX/sarcv2/internal/diag"
	"github.com/sreehariX/sarcv2/internal/history"
	"github.com/sreehariX/sarcv2/internal/models"
)

// Guard errors. Neither creates a turn or a network call.
var (
	ErrEmptyQuery = errors.New("query is empty")
	ErrBusy       = errors.New("a query is already in flight")
)

// Searcher is the slice of the search client the session needs.
type Searcher interface {
	Search(query string) ([]models.Match, error)
}

// Session drives query submission against the store and the search
// service.
type Session struct {
	searcher Searcher
	store    *history.Store

	mu           sync.Mutex
	pending      bool
	pendingQuery string
}

// New creates a session over a searcher and a conversation store.
func New(searcher Searcher, store *history.Store) *Session {
	return &Session{searcher: searcher, store: store}
}

// Pending reports whether a query is currently in flight.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Begin validates text, enters the pending state and appends the user
// turn. The caller follows up with Resolve; the split lets a UI render
// the user's message before suspending on the network.
func (s *Session) Begin(text string) (history.Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return history.Turn{}, ErrEmptyQuery
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return history.Turn{}, ErrBusy
	}
	s.pending = true
	s.pendingQuery = text
	s.mu.Unlock()

	turn := history.Turn{
		Role:      history.RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	}

	if _, err := s.store.Append(turn); err != nil {
		diag.L().Warn("user turn persist failed", zap.Error(err))
	}

	return turn, nil
}

// Resolve runs the search for the pending query, appends the resulting
// assistant turn and returns the session to idle. Search failures are
// absorbed into the fixed error notice; the cause is logged only.
func (s *Session) Resolve() history.Turn {
	s.mu.Lock()
	query := s.pendingQuery
	s.mu.Unlock()

	matches, err := s.searcher.Search(query)

	var turn history.Turn
	switch {
	case err != nil:
		diag.L().Warn("search failed",
			zap.String("query", query),
			zap.Error(err))
		turn = noticeTurn(history.NoticeError, models.ErrorNotice)
	case len(matches) == 0:
		turn = noticeTurn(history.NoticeNoMatch, models.NoMatchNotice)
	default:
		turn = AnswerTurn(matches)
	}

	if _, err := s.store.Append(turn); err != nil {
		diag.L().Warn("assistant turn persist failed", zap.Error(err))
	}

	s.mu.Lock()
	s.pending = false
	s.pendingQuery = ""
	s.mu.Unlock()

	return turn
}

// Submit is the one-call form of Begin+Resolve used outside the TUI.
func (s *Session) Submit(text string) (history.Turn, history.Turn, error) {
	userTurn, err := s.Begin(text)
	if err != nil {
		return history.Turn{}, history.Turn{}, err
	}

	return userTurn, s.Resolve(), nil
}

// AnswerTurn builds an assistant turn from ranked matches: the first
// MaxDisplayedMatches render, and citations carry their 0-based rank in
// that window. The service's order is preserved.
func AnswerTurn(matches []models.Match) history.Turn {
	if len(matches) > models.MaxDisplayedMatches {
		matches = matches[:models.MaxDisplayedMatches]
	}

	shown := make([]models.Match, len(matches))
	copy(shown, matches)

	citations := make([]history.Citation, len(shown))
	for i, match := range shown {
		citations[i] = history.Citation{
			Category:    match.Category,
			Question:    match.Question,
			TargetIndex: i,
		}
	}

	return history.Turn{
		Role:      history.RoleAssistant,
		Matches:   shown,
		Citations: citations,
		Timestamp: time.Now(),
	}
}

func noticeTurn(notice, content string) history.Turn {
	return history.Turn{
		Role:      history.RoleAssistant,
		Content:   content,
		Notice:    notice,
		Timestamp: time.Now(),
	}
}
