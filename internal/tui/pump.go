package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sreehariX/sarcv2/internal/bridge"
	"github.com/sreehariX/sarcv2/internal/viewer"
)

// closePanelMsg is a bridge-initiated request to close the chat panel.
type closePanelMsg struct{}

// programPump feeds bridge callbacks into the running program as
// messages. The bridge is built before the program exists, so the pump
// queues anything delivered before attach and flushes it afterwards.
type programPump struct {
	mu     sync.Mutex
	p      *tea.Program
	queued []tea.Msg
}

var (
	_ bridge.FrameSink   = (*programPump)(nil)
	_ bridge.PanelCloser = (*programPump)(nil)
)

func (pp *programPump) attach(p *tea.Program) {
	pp.mu.Lock()
	pp.p = p
	queued := pp.queued
	pp.queued = nil
	pp.mu.Unlock()

	for _, msg := range queued {
		p.Send(msg)
	}
}

func (pp *programPump) send(msg tea.Msg) {
	pp.mu.Lock()
	p := pp.p
	if p == nil {
		pp.queued = append(pp.queued, msg)
		pp.mu.Unlock()
		return
	}
	pp.mu.Unlock()

	p.Send(msg)
}

// Deliver forwards a relayed envelope to the viewer pane.
func (pp *programPump) Deliver(env bridge.Envelope) {
	pp.send(viewer.EnvelopeMsg{Env: env})
}

// RequestClose asks the model to run the panel close transition.
func (pp *programPump) RequestClose() {
	pp.send(closePanelMsg{})
}
