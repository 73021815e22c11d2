// Package bus is the in-process event transport, backed by a watermill
// gochannel. It stands in for NATS when no broker is reachable.
package bus

import (
	"context"
	"log"
	"sync"

	"fluentko-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	topic           = "events"
	metadataSubject = "subject"
)

type LocalBus struct {
	pubSub *gochannel.GoChannel
	cancel context.CancelFunc
	ctx    context.Context
	wg     sync.WaitGroup
}

var (
	_ events.Publisher  = (*LocalBus)(nil)
	_ events.Subscriber = (*LocalBus)(nil)
)

func NewLocalBus() *LocalBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &LocalBus{
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 256},
			watermill.NewStdLogger(false, false),
		),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (b *LocalBus) Publish(ctx context.Context, event events.Event) error {
	payload, err := events.Encode(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(metadataSubject, events.Subject(event.EventType()))
	msg.SetContext(ctx)
	return b.pubSub.Publish(topic, msg)
}

// Subscribe ignores durableName: a gochannel subscription already lives
// for the process lifetime.
func (b *LocalBus) Subscribe(subject, durableName string, handler events.Handler) error {
	messages, err := b.pubSub.Subscribe(b.ctx, topic)
	if err != nil {
		return err
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for msg := range messages {
			b.dispatch(subject, msg, handler)
		}
	}()
	return nil
}

func (b *LocalBus) dispatch(subject string, msg *message.Message, handler events.Handler) {
	// Ack even on failure; a gochannel nack redelivers immediately and
	// would spin on a permanently failing handler.
	defer msg.Ack()

	if !events.MatchSubject(subject, msg.Metadata.Get(metadataSubject)) {
		return
	}

	event, err := events.Decode(msg.Payload)
	if err != nil {
		log.Printf("[ERROR] Failed to decode local event: %v", err)
		return
	}

	if err := handler(context.Background(), event); err != nil {
		log.Printf("[ERROR] Local handler failed for %s: %v", event.EventType(), err)
	}
}

func (b *LocalBus) Close() {
	b.cancel()
	_ = b.pubSub.Close()
	b.wg.Wait()
}
