package notify

import (
	"context"
	"log"

	"quote3d/internal/domain/entities"
	"quote3d/internal/usecase/interfaces"

	"github.com/google/uuid"
)

const DefaultBufferSize = 64

// ChannelNotifier publishes notifications on a buffered channel. Notify never
// blocks: when the buffer is full the notification is dropped and logged.
type ChannelNotifier struct {
	ch chan entities.Notification
}

var _ interfaces.INotifier = (*ChannelNotifier)(nil)

func NewChannelNotifier(buffer int) *ChannelNotifier {
	if buffer <= 0 {
		buffer = DefaultBufferSize
	}
	return &ChannelNotifier{ch: make(chan entities.Notification, buffer)}
}

func (n *ChannelNotifier) Notify(_ context.Context, msg entities.Notification) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Duration <= 0 {
		msg.Duration = entities.DefaultNotificationDuration
	}

	select {
	case n.ch <- msg:
	default:
		log.Printf("[notify][channel] buffer full, dropped id=%s subject=%q", msg.ID, msg.Subject)
	}
}

// C is the stream of published notifications.
func (n *ChannelNotifier) C() <-chan entities.Notification {
	return n.ch
}

// Drain logs notifications until ctx is done.
func (n *ChannelNotifier) Drain(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-n.ch:
			log.Printf("[notify][channel] variant=%s subject=%q message=%q", msg.Variant, msg.Subject, msg.Message)
		}
	}
}
