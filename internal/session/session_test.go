package session

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sreehariX/sarcv2/internal/history"
	"github.com/sreehariX/sarcv2/internal/models"
)

type fakeSearcher struct {
	mu      sync.Mutex
	matches []models.Match
	err     error
	calls   int
	block   chan struct{}
}

func (f *fakeSearcher) Search(query string) ([]models.Match, error) {
	f.mu.Lock()
	f.calls++
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.matches, f.err
}

func newTestSession(t *testing.T, searcher *fakeSearcher) (*Session, *history.Store) {
	t.Helper()
	store := history.NewStore(filepath.Join(t.TempDir(), "conversation.json"))
	store.Load()
	return New(searcher, store), store
}

func TestSubmitAppendsTwoTurns(t *testing.T) {
	searcher := &fakeSearcher{matches: []models.Match{
		{Category: "Billing", Question: "What is the refund policy?", Answer: "Refunds within 30 days."},
		{Category: "Billing", Question: "How do I cancel?", Answer: "From account settings."},
	}}
	sess, store := newTestSession(t, searcher)

	userTurn, answerTurn, err := sess.Submit("What is the refund policy?")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if userTurn.Role != history.RoleUser || userTurn.Content != "What is the refund policy?" {
		t.Errorf("user turn = %+v", userTurn)
	}
	if answerTurn.Role != history.RoleAssistant {
		t.Errorf("answer role = %q, want assistant", answerTurn.Role)
	}
	if len(answerTurn.Matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(answerTurn.Matches))
	}
	for i, citation := range answerTurn.Citations {
		if citation.TargetIndex != i {
			t.Errorf("citation %d target = %d", i, citation.TargetIndex)
		}
	}

	conv := store.Load()
	// Seed intro plus the two submitted turns.
	if len(conv.Turns) != 3 {
		t.Fatalf("got %d turns, want 3", len(conv.Turns))
	}
	if conv.Turns[1].Role != history.RoleUser || conv.Turns[2].Role != history.RoleAssistant {
		t.Errorf("turn order = %q, %q", conv.Turns[1].Role, conv.Turns[2].Role)
	}
}

func TestAnswerTurnTruncatesToDisplayWindow(t *testing.T) {
	matches := []models.Match{
		{Question: "q0", Answer: "a0"},
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
		{Question: "q3", Answer: "a3"},
	}

	turn := AnswerTurn(matches)

	if len(turn.Matches) != models.MaxDisplayedMatches {
		t.Fatalf("got %d matches, want %d", len(turn.Matches), models.MaxDisplayedMatches)
	}
	for i, match := range turn.Matches {
		if match.Question != matches[i].Question {
			t.Errorf("match %d = %q, want %q", i, match.Question, matches[i].Question)
		}
		if turn.Citations[i].TargetIndex != i {
			t.Errorf("citation %d target = %d", i, turn.Citations[i].TargetIndex)
		}
	}
}

func TestSubmitEmptyResult(t *testing.T) {
	sess, _ := newTestSession(t, &fakeSearcher{})

	_, answerTurn, err := sess.Submit("unknown topic")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if answerTurn.Notice != history.NoticeNoMatch {
		t.Errorf("notice = %q, want %q", answerTurn.Notice, history.NoticeNoMatch)
	}
	if answerTurn.Content != models.NoMatchNotice {
		t.Errorf("content = %q", answerTurn.Content)
	}
}

func TestSubmitSearchFailure(t *testing.T) {
	sess, store := newTestSession(t, &fakeSearcher{err: errors.New("connection refused")})

	_, answerTurn, err := sess.Submit("anything")
	if err != nil {
		t.Fatalf("Submit() error = %v, search failures must not surface", err)
	}
	if answerTurn.Notice != history.NoticeError {
		t.Errorf("notice = %q, want %q", answerTurn.Notice, history.NoticeError)
	}
	if answerTurn.Content != models.ErrorNotice {
		t.Errorf("content = %q", answerTurn.Content)
	}

	// The user turn is kept even though the search failed.
	conv := store.Load()
	if len(conv.Turns) != 3 {
		t.Fatalf("got %d turns, want 3", len(conv.Turns))
	}
	if conv.Turns[1].Role != history.RoleUser {
		t.Errorf("turn 1 role = %q, want user", conv.Turns[1].Role)
	}
	if sess.Pending() {
		t.Error("session still pending after failed resolve")
	}
}

func TestSubmitRejectsEmptyQuery(t *testing.T) {
	searcher := &fakeSearcher{}
	sess, store := newTestSession(t, searcher)

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, _, err := sess.Submit(text); !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("Submit(%q) error = %v, want ErrEmptyQuery", text, err)
		}
	}
	if searcher.calls != 0 {
		t.Errorf("search called %d times for empty input", searcher.calls)
	}

	conv := store.Load()
	if len(conv.Turns) != 1 {
		t.Errorf("got %d turns, want seed only", len(conv.Turns))
	}
}

func TestBeginRejectsWhilePending(t *testing.T) {
	block := make(chan struct{})
	searcher := &fakeSearcher{block: block}
	sess, _ := newTestSession(t, searcher)

	if _, err := sess.Begin("first"); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}

	done := make(chan history.Turn, 1)
	go func() { done <- sess.Resolve() }()

	if _, err := sess.Begin("second"); !errors.Is(err, ErrBusy) {
		t.Errorf("Begin() while pending error = %v, want ErrBusy", err)
	}

	close(block)
	<-done

	if sess.Pending() {
		t.Error("session still pending after resolve")
	}
	if _, err := sess.Begin("third"); err != nil {
		t.Errorf("Begin() after resolve error = %v", err)
	}
}

func TestBeginTrimsWhitespace(t *testing.T) {
	sess, _ := newTestSession(t, &fakeSearcher{})

	turn, err := sess.Begin("  spaced out  ")
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if turn.Content != "spaced out" {
		t.Errorf("content = %q, want trimmed", turn.Content)
	}
	sess.Resolve()
}
