package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sreehariX/sarcv2/internal/bridge"
	"github.com/sreehariX/sarcv2/internal/config"
	"github.com/sreehariX/sarcv2/internal/faq"
	"github.com/sreehariX/sarcv2/internal/history"
	"github.com/sreehariX/sarcv2/internal/panel"
	"github.com/sreehariX/sarcv2/internal/render"
	"github.com/sreehariX/sarcv2/internal/search"
	"github.com/sreehariX/sarcv2/internal/session"
	"github.com/sreehariX/sarcv2/internal/viewer"
)

// Message types for the widget
type (
	showPanelMsg struct {
		token int
	}
	unmountPanelMsg struct {
		token int
	}
	answerMsg struct {
		turn history.Turn
	}
)

// Model represents the widget state: the FAQ pane is always present,
// the chat panel mounts and unmounts over it.
type Model struct {
	pane  viewer.Model
	coord *panel.Coordinator
	sess  *session.Session
	br    *bridge.Bridge

	// UI components
	chatViewport viewport.Model
	textarea     textarea.Model
	spinner      spinner.Model

	turns   []history.Turn
	loading bool
	ready   bool

	width  int
	height int
}

// newModel assembles the widget from its parts. The conversation is
// whatever the store restored, seed included.
func newModel(pane viewer.Model, coord *panel.Coordinator, sess *session.Session, br *bridge.Bridge, turns []history.Turn) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask a question..."
	ta.CharLimit = 500
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		pane:     pane,
		coord:    coord,
		sess:     sess,
		br:       br,
		textarea: ta,
		spinner:  s,
		turns:    turns,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// panelWidth is how many columns the chat panel takes when mounted.
func (m Model) panelWidth() int {
	w := m.width / 2
	if w > 52 {
		w = 52
	}
	if w < 30 {
		w = 30
	}
	return w
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		// The restored conversation lands at the bottom with no
		// animation on the first render.
		m.updateChatViewport()
		m.chatViewport.GotoBottom()

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case showPanelMsg:
		m.coord.ConfirmShow(msg.token)

	case unmountPanelMsg:
		m.coord.ConfirmUnmount(msg.token)
		m.resize()

	case closePanelMsg:
		if m.coord.Mounted() {
			cmds = append(cmds, m.closePanel())
		}

	case answerMsg:
		m.loading = false
		m.turns = append(m.turns, msg.turn)
		m.updateChatViewport()
		m.chatViewport.GotoBottom()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.pane, cmd = m.pane.Update(msg)
	cmds = append(cmds, cmd)

	if m.coord.Visible() {
		m.chatViewport, cmd = m.chatViewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// updateKeys routes key presses depending on whether the panel is open.
func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Anything short of a visible panel routes like the closed state, so
	// a reopen during the unmount delay lands here and cancels it.
	if !m.coord.Visible() {
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "enter", "c":
			return m, m.openPanel()
		}
		m.pane, cmd = m.pane.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		return m, m.closePanel()

	case "enter":
		if m.loading {
			return m, nil
		}
		userTurn, err := m.sess.Begin(m.textarea.Value())
		if err != nil {
			// Empty input and in-flight queries are both silent
			// rejections; the draft stays in the box.
			if errors.Is(err, session.ErrEmptyQuery) || errors.Is(err, session.ErrBusy) {
				return m, nil
			}
			return m, nil
		}
		m.turns = append(m.turns, userTurn)
		m.textarea.Reset()
		m.loading = true
		m.updateChatViewport()
		m.chatViewport.GotoBottom()
		return m, tea.Batch(m.resolve(), m.spinner.Tick)

	case "1", "2", "3":
		// Digits activate citations only while the draft is empty;
		// otherwise they type.
		if strings.TrimSpace(m.textarea.Value()) == "" {
			if cmd := m.activateCitation(int(msg.String()[0] - '1')); cmd != nil {
				return m, cmd
			}
		}
	}

	if !m.loading {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// openPanel mounts the chat panel and schedules the show transition.
func (m *Model) openPanel() tea.Cmd {
	delay, token := m.coord.Open()
	m.resize()
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return showPanelMsg{token: token}
	})
}

// closePanel hides the panel and schedules the unmount.
func (m *Model) closePanel() tea.Cmd {
	delay, token := m.coord.Close()
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return unmountPanelMsg{token: token}
	})
}

// resolve runs the pending search off the update loop.
func (m Model) resolve() tea.Cmd {
	return func() tea.Msg {
		return answerMsg{turn: m.sess.Resolve()}
	}
}

// activateCitation emits the scroll request for the idx-th citation of
// the latest answer. Returns nil when there is no such citation.
func (m Model) activateCitation(idx int) tea.Cmd {
	var citations []history.Citation
	for i := len(m.turns) - 1; i >= 0; i-- {
		if m.turns[i].Role == history.RoleAssistant {
			citations = m.turns[i].Citations
			break
		}
	}
	if idx < 0 || idx >= len(citations) {
		return nil
	}

	target := citations[idx].TargetIndex
	return func() tea.Msg {
		m.br.EmitScrollTarget(target)
		return nil
	}
}

// resize recomputes pane and panel dimensions.
func (m *Model) resize() {
	if !m.ready {
		return
	}

	paneWidth := m.width
	if m.coord.Mounted() {
		paneWidth = m.width - m.panelWidth()
	}
	paneInner := paneWidth - 4
	paneHeight := m.height - 3
	if paneInner < 20 {
		paneInner = 20
	}
	if paneHeight < 5 {
		paneHeight = 5
	}
	m.pane = m.pane.SetSize(paneInner, paneHeight)

	chatWidth := m.panelWidth() - 4
	chatHeight := m.height - 9
	if chatHeight < 5 {
		chatHeight = 5
	}
	if m.chatViewport.Width == 0 {
		m.chatViewport = viewport.New(chatWidth, chatHeight)
	} else {
		m.chatViewport.Width = chatWidth
		m.chatViewport.Height = chatHeight
	}
	m.textarea.SetWidth(chatWidth)
	m.updateChatViewport()
}

// View renders the widget
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Loading...")
	}

	pane := paneStyle.Render(m.pane.View())

	if !m.coord.Mounted() {
		launcher := launcherStyle.Render("? Ask a question") +
			statusDescStyle.Render("  press Enter")
		status := m.renderStatusBar(false)
		return lipgloss.JoinVertical(lipgloss.Left, pane, launcher, status)
	}

	var chat string
	if m.coord.Visible() {
		chat = m.renderPanel()
	} else {
		// Mounted but pre-show: the frame reserves its space so the
		// pane does not reflow when the panel appears.
		chat = panelStyle.Width(m.panelWidth() - 2).Render("")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, pane, chat)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar(true))
}

// renderPanel renders the open chat panel.
func (m Model) renderPanel() string {
	title := panelTitleStyle.Render("Saras AI Assistant")

	var input string
	if m.loading {
		input = m.spinner.View() + loadingStyle.Render(" Searching...")
	} else {
		input = m.textarea.View()
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		m.chatViewport.View(),
		"",
		input,
	)
	return panelStyle.Width(m.panelWidth() - 2).Render(content)
}

// renderStatusBar renders the bottom hint line.
func (m Model) renderStatusBar(panelOpen bool) string {
	type hint struct {
		key  string
		desc string
	}

	var hints []hint
	if panelOpen {
		hints = []hint{
			{"Enter", "Send"},
			{"1-3", "Go to answer"},
			{"Esc", "Close"},
		}
	} else {
		hints = []hint{
			{"Enter", "Ask"},
			{"↑↓", "Scroll"},
			{"q", "Quit"},
		}
	}

	items := make([]string, 0, len(hints))
	for _, h := range hints {
		items = append(items, statusKeyStyle.Render(h.key)+statusDescStyle.Render(" "+h.desc))
	}
	items = append(items, statusDescStyle.Render(fmt.Sprintf("%3.0f%%", m.pane.ScrollPercent()*100)))

	return statusBarStyle.Render(strings.Join(items, "  │  "))
}

// updateChatViewport refreshes the chat transcript.
func (m *Model) updateChatViewport() {
	if m.chatViewport.Width == 0 {
		return
	}

	width := m.chatViewport.Width
	var sb strings.Builder
	for i, turn := range m.turns {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(renderTurn(turn, width))
		sb.WriteString("\n")
	}
	m.chatViewport.SetContent(sb.String())
}

// renderTurn renders one transcript turn.
func renderTurn(turn history.Turn, width int) string {
	if turn.Role == history.RoleUser {
		return userLabelStyle.Render("You") + "\n" + turn.Content
	}

	label := assistantLabelStyle.Render("Assistant")
	if turn.Notice != history.NoticeNone {
		return label + "\n" + noticeStyle.Render(turn.Content)
	}
	if len(turn.Matches) == 0 {
		content, err := render.MarkdownWithWidth(turn.Content, width)
		if err != nil {
			content = turn.Content
		}
		return label + "\n" + strings.TrimRight(content, "\n")
	}

	var sb strings.Builder
	sb.WriteString(label)
	for _, match := range turn.Matches {
		block := fmt.Sprintf("**%s**\n\n%s", match.Question, match.Answer)
		rendered, err := render.MarkdownWithWidth(block, width)
		if err != nil {
			rendered = block
		}
		sb.WriteString("\n")
		sb.WriteString(strings.TrimRight(rendered, "\n"))
	}
	if len(turn.Citations) > 0 {
		sb.WriteString("\n")
		for i, citation := range turn.Citations {
			sb.WriteString("\n")
			sb.WriteString(citationStyle.Render(
				fmt.Sprintf("[%d] %s · %s", i+1, citation.Category, citation.Question)))
		}
	}
	return sb.String()
}

// Run wires the widget together and blocks until it exits.
func Run(cfg *config.Config) error {
	entries, err := faq.Load(cfg.FAQPath)
	if err != nil {
		return err
	}

	client, err := search.NewClient(
		search.WithEndpoint(cfg.SearchURL),
		search.WithTimeout(time.Duration(cfg.RequestTimeout)*time.Second),
	)
	if err != nil {
		return err
	}

	store, err := history.DefaultStore()
	if err != nil {
		return err
	}
	conv := store.Load()

	pane := viewer.New(entries)
	pump := &programPump{}

	bus := bridge.NewBus()
	defer bus.Close()

	br := bridge.New(bus, pump, pump,
		bridge.WithFrameOrigin(pane.Origin()),
		bridge.WithAllowedOrigins(cfg.AllowedOrigins),
	)
	if err := br.Run(context.Background()); err != nil {
		return err
	}
	defer br.Close()

	m := newModel(pane, &panel.Coordinator{}, session.New(client, store), br, conv.Turns)

	p := tea.NewProgram(m, tea.WithAltScreen())
	pump.attach(p)

	_, err = p.Run()
	return err
}
