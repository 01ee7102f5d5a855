package bridge

import (
	"context"
	"errors"
	"testing"
	"time"

	apierrors "github.com/sreehariX/sarcv2/internal/errors"
)

// fakeSink records envelopes delivered to the frame
type fakeSink struct {
	envelopes chan Envelope
}

func newFakeSink() *fakeSink {
	return &fakeSink{envelopes: make(chan Envelope, 16)}
}

func (f *fakeSink) Deliver(env Envelope) {
	f.envelopes <- env
}

func (f *fakeSink) next(t *testing.T) Envelope {
	t.Helper()
	select {
	case env := <-f.envelopes:
		return env
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame delivery")
		return Envelope{}
	}
}

func (f *fakeSink) expectNone(t *testing.T) {
	t.Helper()
	select {
	case env := <-f.envelopes:
		t.Fatalf("unexpected delivery: %+v", env)
	case <-time.After(150 * time.Millisecond):
	}
}

// fakeCloser records panel close requests
type fakeCloser struct {
	requests chan struct{}
}

func newFakeCloser() *fakeCloser {
	return &fakeCloser{requests: make(chan struct{}, 16)}
}

func (f *fakeCloser) RequestClose() {
	f.requests <- struct{}{}
}

func startBridge(t *testing.T, opts ...Option) (*Bridge, *Bus, *fakeSink, *fakeCloser) {
	t.Helper()

	bus := NewBus()
	sink := newFakeSink()
	closer := newFakeCloser()

	b := New(bus, sink, closer, opts...)
	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	t.Cleanup(func() {
		b.Close()
		_ = bus.Close()
	})

	return b, bus, sink, closer
}

func TestBridge_RunWithoutFrame(t *testing.T) {
	bus := NewBus()
	t.Cleanup(func() { _ = bus.Close() })

	b := New(bus, nil, newFakeCloser())
	if err := b.Run(context.Background()); !errors.Is(err, apierrors.ErrFrameAbsent) {
		t.Fatalf("Run without a frame = %v, want ErrFrameAbsent", err)
	}
}

func TestBridge_RelayForwardsExactlyOnce(t *testing.T) {
	_, bus, sink, _ := startBridge(t)

	if err := bus.Publish("external", []byte(`{"type":"scrollToFAQ","index":2}`)); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	env := sink.next(t)
	if env.Type != TypeScrollToFAQ || env.Index != 2 {
		t.Errorf("forwarded envelope = %+v", env)
	}

	sink.expectNone(t)
}

func TestBridge_DropsPayloadWithoutType(t *testing.T) {
	_, bus, sink, _ := startBridge(t)

	if err := bus.Publish("external", []byte(`{"index":2}`)); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	sink.expectNone(t)
}

func TestBridge_DropsUnknownType(t *testing.T) {
	_, bus, sink, _ := startBridge(t)

	if err := bus.Publish("external", []byte(`{"type":"future","index":2}`)); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	sink.expectNone(t)
}

func TestBridge_NoReflectionToFrameOrigin(t *testing.T) {
	_, bus, sink, _ := startBridge(t, WithFrameOrigin("the-frame"))

	// A message from the frame itself must not be sent back to it
	if err := bus.Publish("the-frame", []byte(`{"type":"scrollToFAQ","index":1}`)); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	sink.expectNone(t)

	// Other origins still forward
	if err := bus.Publish("elsewhere", []byte(`{"type":"scrollToFAQ","index":1}`)); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if env := sink.next(t); env.Index != 1 {
		t.Errorf("Index = %d, want 1", env.Index)
	}
}

func TestBridge_OriginAllowList(t *testing.T) {
	b, bus, sink, _ := startBridge(t, WithAllowedOrigins([]string{"trusted"}))

	if err := bus.Publish("untrusted", []byte(`{"type":"scrollToFAQ","index":0}`)); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	sink.expectNone(t)

	if err := bus.Publish("trusted", []byte(`{"type":"scrollToFAQ","index":0}`)); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if env := sink.next(t); env.Type != TypeScrollToFAQ {
		t.Errorf("Type = %s", env.Type)
	}

	_ = b
}

func TestBridge_EmitScrollTarget(t *testing.T) {
	b, _, sink, closer := startBridge(t)

	b.EmitScrollTarget(1)

	// Close is requested and the scroll request reaches the frame
	select {
	case <-closer.requests:
	case <-time.After(2 * time.Second):
		t.Fatal("panel close was not requested")
	}

	env := sink.next(t)
	if env.Type != TypeScrollToFAQ || env.Index != 1 {
		t.Errorf("delivered envelope = %+v", env)
	}
}

func TestBridge_RunIdempotent(t *testing.T) {
	b, bus, sink, _ := startBridge(t)

	// A second Run must not create a second forwarding path
	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	if err := bus.Publish("external", []byte(`{"type":"scrollToFAQ","index":3}`)); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	sink.next(t)
	sink.expectNone(t)
}

func TestBridge_CloseIdempotent(t *testing.T) {
	bus := NewBus()
	defer func() { _ = bus.Close() }()

	b := New(bus, newFakeSink(), newFakeCloser())
	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	b.Close()
	b.Close() // second close is a no-op
}

func TestBridge_HighlightRelayedToFrame(t *testing.T) {
	_, bus, sink, _ := startBridge(t)

	raw := `{"type":"highlightAnswer","className":"Sora_R","highlightColor":"yellow"}`
	if err := bus.Publish("debug", []byte(raw)); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	env := sink.next(t)
	if env.Type != TypeHighlightAnswer || env.HighlightColor != "yellow" {
		t.Errorf("envelope = %+v", env)
	}
}
