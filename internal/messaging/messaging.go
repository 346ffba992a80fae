package messaging

import (
	"context"
	"sync"
	"time"
)

// Message is a delivered bus message
type Message struct {
	Channel string
	Payload []byte
	Time    time.Time
}

// Bus is the publish/subscribe contract the verification path publishes
// events through. Publishing is best effort: a failed publish never blocks
// or fails the payment flow.
type Bus interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan Message, error)
	Close() error
}

// PaymentVerifiedChannel carries events emitted after a payment settles.
const PaymentVerifiedChannel = "payments.verified"

// PaymentVerifiedEvent is published once per settled payment. Consumers
// must tolerate redelivery.
type PaymentVerifiedEvent struct {
	Reference   string    `json:"reference"`
	PaymentType string    `json:"payment_type"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	Email       string    `json:"email"`
	MemberID    string    `json:"member_id"`
	MemberName  string    `json:"member_name"`
	Description string    `json:"description"`
	PaidAt      time.Time `json:"paid_at"`

	// MembershipExpiresAt is set for membership payments only, formatted
	// for display in the activation notice.
	MembershipExpiresAt string `json:"membership_expires_at,omitempty"`
}

// inProcessBus is the fallback Bus used when no redis is configured.
// Delivery stays within the process but keeps the same decoupling: the
// publisher never waits on consumers.
type inProcessBus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan Message
	closed      bool
}

// NewInProcessBus creates a bus that delivers messages to in-process
// subscribers only.
func NewInProcessBus() Bus {
	return &inProcessBus{
		subscribers: make(map[string][]chan Message),
	}
}

func (b *inProcessBus) Publish(_ context.Context, channel string, message interface{}) error {
	payload, err := encodeMessage(message)
	if err != nil {
		return err
	}

	b.mu.RLock()
	subs := b.subscribers[channel]
	b.mu.RUnlock()

	msg := Message{Channel: channel, Payload: payload, Time: time.Now()}
	for _, sub := range subs {
		select {
		case sub <- msg:
		default:
			// Slow consumer: drop rather than block the payment path.
		}
	}

	return nil
}

func (b *inProcessBus) Subscribe(ctx context.Context, channel string) (<-chan Message, error) {
	sub := make(chan Message, 16)

	b.mu.Lock()
	b.subscribers[channel] = append(b.subscribers[channel], sub)
	b.mu.Unlock()

	out := make(chan Message)
	go func() {
		defer close(out)
		for {
			select {
			case msg, ok := <-sub:
				if !ok {
					return
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (b *inProcessBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, subs := range b.subscribers {
		for _, sub := range subs {
			close(sub)
		}
	}
	b.subscribers = make(map[string][]chan Message)
	return nil
}
