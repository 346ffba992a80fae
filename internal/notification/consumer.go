package notification

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/CIPMABUJA/hr-hub-backend/internal/messaging"
)

// Consumer subscribes to payment-verified events and performs delivery
// outside the verification path, decoupling user-facing latency from
// email provider availability.
type Consumer struct {
	bus        messaging.Bus
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewConsumer creates a new notification consumer
func NewConsumer(bus messaging.Bus, dispatcher *Dispatcher, logger *zap.Logger) *Consumer {
	return &Consumer{
		bus:        bus,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Run consumes events until ctx is cancelled. Intended to run in its own
// goroutine; it never returns an error into the payment flow.
func (c *Consumer) Run(ctx context.Context) error {
	messages, err := c.bus.Subscribe(ctx, messaging.PaymentVerifiedChannel)
	if err != nil {
		return err
	}

	c.logger.Info("Notification consumer started",
		zap.String("channel", messaging.PaymentVerifiedChannel))

	for msg := range messages {
		var event messaging.PaymentVerifiedEvent
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			c.logger.Warn("Discarding malformed payment event", zap.Error(err))
			continue
		}
		c.handle(event)
	}

	c.logger.Info("Notification consumer stopped")
	return nil
}

func (c *Consumer) handle(event messaging.PaymentVerifiedEvent) {
	data := TemplateData{
		Name:        event.MemberName,
		Reference:   event.Reference,
		Amount:      event.Amount,
		Currency:    event.Currency,
		Description: event.Description,
		ExpiresAt:   event.MembershipExpiresAt,
	}

	if _, err := c.dispatcher.Dispatch(event.Email, TemplatePaymentReceipt, data); err != nil {
		c.logger.Warn("Failed to render payment receipt",
			zap.String("reference", event.Reference),
			zap.Error(err))
	}

	if event.PaymentType == "membership" {
		if _, err := c.dispatcher.Dispatch(event.Email, TemplateMembershipActivated, data); err != nil {
			c.logger.Warn("Failed to render membership notice",
				zap.String("reference", event.Reference),
				zap.Error(err))
		}
	}
}
