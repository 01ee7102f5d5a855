package bridge

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sreehariX/sarcv2/internal/diag"
	apierrors "github.com/sreehariX/sarcv2/internal/errors"
)

// FrameSink receives envelopes addressed to the sandboxed frame. The
// frame is the only component behind this interface; the bridge never
// reaches it any other way.
type FrameSink interface {
	Deliver(env Envelope)
}

// PanelCloser requests the chat panel close. Implemented by the host UI.
type PanelCloser interface {
	RequestClose()
}

// Bridge relays envelopes between the chat surface and the frame. One
// bridge is registered per mounted panel and torn down with it.
type Bridge struct {
	bus    *Bus
	frame  FrameSink
	closer PanelCloser

	// origin identifies this bridge's own publications on the bus.
	origin string
	// frameOrigin identifies the frame; its messages are never reflected
	// back at it.
	frameOrigin string
	// allowed restricts which origins the relay forwards. Empty forwards
	// all origins; restrict via allowed_origins in the config.
	allowed map[string]struct{}

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithFrameOrigin sets the bus identity of the frame so its own messages
// are not echoed back to it.
func WithFrameOrigin(origin string) Option {
	return func(b *Bridge) {
		b.frameOrigin = origin
	}
}

// WithAllowedOrigins restricts forwarding to the listed origins.
func WithAllowedOrigins(origins []string) Option {
	return func(b *Bridge) {
		if len(origins) == 0 {
			return
		}
		b.allowed = make(map[string]struct{}, len(origins))
		for _, o := range origins {
			b.allowed[o] = struct{}{}
		}
	}
}

// New creates a bridge between the bus, the frame and the panel.
func New(bus *Bus, frame FrameSink, closer PanelCloser, opts ...Option) *Bridge {
	b := &Bridge{
		bus:    bus,
		frame:  frame,
		closer: closer,
		origin: uuid.NewString(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Origin returns the identity this bridge publishes under.
func (b *Bridge) Origin() string {
	return b.origin
}

// EmitScrollTarget handles a citation click: it requests the panel close
// and publishes the navigation request, in that order. Both side effects
// run regardless of which visual transition finishes first, and a failed
// publish never surfaces to the user.
func (b *Bridge) EmitScrollTarget(index int) {
	if b.closer != nil {
		b.closer.RequestClose()
	}

	env := Envelope{Type: TypeScrollToFAQ, Index: index}
	if err := b.bus.Publish(b.origin, env.Marshal()); err != nil {
		diag.L().Warn("scroll target publish failed",
			zap.Int("index", index),
			zap.Error(err))
	}
}

// Run subscribes to the bus and forwards navigation envelopes to the
// frame until ctx is cancelled or Close is called. A bridge with no
// frame sink has nowhere to relay to and returns ErrFrameAbsent.
// Calling Run on an already-running bridge is a no-op.
func (b *Bridge) Run(ctx context.Context) error {
	if b.frame == nil {
		return apierrors.ErrFrameAbsent
	}

	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	messages, err := b.bus.Subscribe(runCtx)
	if err != nil {
		cancel()
		b.mu.Unlock()
		return err
	}

	b.running = true
	b.cancel = cancel
	b.done = make(chan struct{})
	done := b.done
	b.mu.Unlock()

	go func() {
		defer close(done)
		for msg := range messages {
			// The bus has no redelivery; ack unconditionally.
			msg.Ack()
			b.relay(msg.Metadata.Get(originKey), msg.Payload)
		}
	}()

	return nil
}

// relay forwards one inbound payload to the frame. Exactly one delivery
// per accepted message; the message is never re-published, so a frame
// cannot be flooded by its own traffic echoing around the bus.
func (b *Bridge) relay(origin string, payload []byte) {
	if b.frameOrigin != "" && origin == b.frameOrigin {
		return
	}

	if b.allowed != nil {
		if _, ok := b.allowed[origin]; !ok {
			diag.L().Warn("dropped envelope from disallowed origin",
				zap.String("origin", origin))
			return
		}
	}

	env, ok := ParseEnvelope(payload)
	if !ok {
		return
	}

	b.frame.Deliver(env)
}

// Close tears the subscription down. Idempotent; matches the panel's
// unmount lifecycle.
func (b *Bridge) Close() {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return
	}
	b.running = false
	cancel := b.cancel
	done := b.done
	b.mu.Unlock()

	cancel()
	<-done
}
