// Package viewer renders the FAQ corpus in a scrollable pane and reacts
// to bridge envelopes. It never talks to the bus directly; the host
// program forwards relayed envelopes as EnvelopeMsg values, which keeps
// the pane isolated from every other widget surface.
package viewer

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sreehariX/sarcv2/internal/bridge"
	"github.com/sreehariX/sarcv2/internal/diag"
	"github.com/sreehariX/sarcv2/internal/faq"
)

// EnvelopeMsg carries a relayed bridge envelope into the pane.
type EnvelopeMsg struct {
	Env bridge.Envelope
}

var highlightStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("#3a3a1a")).
	Bold(true)

// Model is the FAQ pane state.
type Model struct {
	viewport viewport.Model
	entries  []faq.Entry
	doc      faq.Document
	origin   string
	ready    bool

	highlighted int
}

// New creates a pane over the given entries. The pane sizes itself on
// the first SetSize call.
func New(entries []faq.Entry) Model {
	return Model{
		entries:     entries,
		origin:      uuid.NewString(),
		highlighted: -1,
	}
}

// Origin is the pane's bridge identity. Envelopes published under this
// origin are never relayed back to the pane.
func (m Model) Origin() string {
	return m.origin
}

// SetSize rebuilds the rendered document for the new dimensions. Anchor
// positions depend on the wrap width, so the document re-renders on
// every resize.
func (m Model) SetSize(width, height int) Model {
	m.doc = faq.BuildDocument(m.entries, width)

	if !m.ready {
		m.viewport = viewport.New(width, height)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = height
	}
	m.setContent()
	return m
}

// Update handles pane messages. Unknown envelope types never reach the
// pane; the bridge drops them before delivery.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EnvelopeMsg:
		switch msg.Env.Type {
		case bridge.TypeScrollToFAQ:
			m = m.scrollTo(msg.Env.Index)
		case bridge.TypeHighlightAnswer:
			m = m.toggleHighlight(msg.Env.Index)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the pane.
func (m Model) View() string {
	if !m.ready {
		return ""
	}
	return m.viewport.View()
}

// ScrollPercent reports the viewport position, used by the status bar.
func (m Model) ScrollPercent() float64 {
	if !m.ready {
		return 0
	}
	return m.viewport.ScrollPercent()
}

// scrollTo jumps the viewport to the entry's anchor line. Out-of-range
// indexes are dropped without moving the pane.
func (m Model) scrollTo(index int) Model {
	if !m.ready {
		return m
	}
	if index < 0 || index >= len(m.doc.Anchors) {
		diag.L().Debug("scroll target out of range",
			zap.Int("index", index),
			zap.Int("entries", len(m.doc.Anchors)))
		return m
	}
	m.viewport.SetYOffset(m.doc.Anchors[index])
	return m
}

// toggleHighlight marks one entry; highlighting it again clears the
// mark, and highlighting another entry moves it.
func (m Model) toggleHighlight(index int) Model {
	if index < 0 || index >= len(m.doc.Anchors) {
		return m
	}
	if m.highlighted == index {
		m.highlighted = -1
	} else {
		m.highlighted = index
	}
	m.setContent()
	return m
}

// setContent pushes the document into the viewport, styling the
// highlighted entry's lines if one is set.
func (m *Model) setContent() {
	if !m.ready {
		return
	}
	if m.highlighted < 0 || m.highlighted >= len(m.doc.Anchors) {
		m.viewport.SetContent(m.doc.Content)
		return
	}

	lines := strings.Split(m.doc.Content, "\n")
	from := m.doc.Anchors[m.highlighted]
	to := len(lines)
	if m.highlighted+1 < len(m.doc.Anchors) {
		to = m.doc.Anchors[m.highlighted+1]
	}
	for i := from; i < to && i < len(lines); i++ {
		lines[i] = highlightStyle.Render(lines[i])
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}
