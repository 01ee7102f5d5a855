package bridge

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Topic carries every envelope exchanged between widget contexts.
const Topic = "sarcv2.bridge"

// originKey is the message metadata key identifying the publishing context.
const originKey = "origin"

// Bus is the in-process broadcast channel shared by all widget contexts.
// Delivery is best-effort: a message published while no subscriber is
// attached is lost, which the protocol tolerates.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// NewBus creates the broadcast bus.
func NewBus() *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}),
	}
}

// Publish posts a raw payload tagged with the origin of its sender.
func (b *Bus) Publish(origin string, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(originKey, origin)
	return b.pubsub.Publish(Topic, msg)
}

// Subscribe attaches a listener to the bus. The returned channel closes
// when ctx is cancelled or the bus is closed.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, Topic)
}

// Close shuts down the bus and all subscriptions.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
