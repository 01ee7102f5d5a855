// Package history provides the persisted conversation log for the widget.
//
// The log is a single fixed slot on disk. Turns are append-only: once
// written, a turn is never mutated, and every append reaches the file
// before the call returns.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sreehariX/sarcv2/internal/config"
	"github.com/sreehariX/sarcv2/internal/diag"
	"github.com/sreehariX/sarcv2/internal/models"
)

// Turn roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Notice kinds for fallback assistant turns
const (
	NoticeNone    = ""
	NoticeNoMatch = "no-match"
	NoticeError   = "error"
)

// Citation references one ranked match from an assistant turn.
// TargetIndex is the 0-based rank used to correlate a citation click
// with the frame navigation target.
type Citation struct {
	Category    string `json:"category"`
	Question    string `json:"question"`
	TargetIndex int    `json:"target_index"`
}

// Turn represents a single message in the conversation
type Turn struct {
	Role      string         `json:"role"` // "user" or "assistant"
	Content   string         `json:"content,omitempty"`
	Notice    string         `json:"notice,omitempty"`
	Matches   []models.Match `json:"matches,omitempty"`
	Citations []Citation     `json:"citations,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Conversation is the full ordered turn sequence plus the fresh-session
// flag that decides whether example-question affordances render.
type Conversation struct {
	Turns        []Turn
	FreshSession bool
}

// Last returns the most recent turn, or nil for an empty conversation.
func (c *Conversation) Last() *Turn {
	if len(c.Turns) == 0 {
		return nil
	}
	return &c.Turns[len(c.Turns)-1]
}

// Store manages conversation persistence. It is the sole owner of the
// storage slot; appends serialize through it.
type Store struct {
	path  string
	mu    sync.Mutex
	turns []Turn // nil until first load
}

// NewStore creates a store over the given slot path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore creates a store using the default location.
func DefaultStore() (*Store, error) {
	path, err := config.GetConversationPath()
	if err != nil {
		return nil, err
	}
	return NewStore(path), nil
}

// Load restores the conversation from disk. It never fails: a missing or
// unparsable slot yields the seeded fresh conversation, and the read
// problem goes to the diagnostics log only.
func (s *Store) Load() *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadLocked()
	return s.snapshotLocked()
}

// Append adds a turn and writes the slot synchronously before returning.
// The returned conversation is a copy of the new state.
func (s *Store) Append(turn Turn) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadLocked()
	s.turns = append(s.turns, turn)

	err := s.persistLocked()
	return s.snapshotLocked(), err
}

// Clear removes the persisted conversation. The next Load starts fresh.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// loadLocked populates s.turns from disk on first use. Corrupt or absent
// state falls back to the seed turn.
func (s *Store) loadLocked() {
	if s.turns != nil {
		return
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			diag.L().Warn("conversation slot unreadable, starting fresh",
				zap.String("path", s.path),
				zap.Error(err))
		}
		s.turns = seedTurns()
		return
	}

	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		diag.L().Warn("conversation slot corrupt, starting fresh",
			zap.String("path", s.path),
			zap.Error(err))
		s.turns = seedTurns()
		return
	}

	if len(turns) == 0 {
		s.turns = seedTurns()
		return
	}

	s.turns = turns
}

func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.turns, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}

func (s *Store) snapshotLocked() *Conversation {
	turns := make([]Turn, len(s.turns))
	copy(turns, s.turns)

	return &Conversation{
		Turns:        turns,
		FreshSession: freshSession(turns),
	}
}

// freshSession is true until the first user turn exists.
func freshSession(turns []Turn) bool {
	for _, turn := range turns {
		if turn.Role == RoleUser {
			return false
		}
	}
	return true
}

// seedTurns is the initial conversation: a single introductory
// assistant turn.
func seedTurns() []Turn {
	return []Turn{{
		Role:      RoleAssistant,
		Content:   models.IntroMessage,
		Timestamp: time.Now(),
	}}
}
