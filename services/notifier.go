package services

import (
	"context"
	"log/slog"

	"tickethub/utils"

	pubnub "github.com/pubnub/go"
)

// Notifier publishes realtime inventory updates to event channels. A nil
// receiver or a missing PubNub client turns every publish into a no-op, so
// the API keeps working without realtime credentials.
type Notifier struct {
	pn      *pubnub.PubNub
	breaker *utils.CircuitBreaker
}

func NewNotifier(publishKey, subscribeKey string) *Notifier {
	if publishKey == "" || subscribeKey == "" {
		return &Notifier{breaker: utils.NewCircuitBreaker("pubnub")}
	}

	config := pubnub.NewConfig()
	config.PublishKey = publishKey
	config.SubscribeKey = subscribeKey

	return &Notifier{
		pn:      pubnub.NewPubNub(config),
		breaker: utils.NewCircuitBreaker("pubnub"),
	}
}

// TicketsGenerated announces a batch of new tickets on the event's channel.
// Publish failures are logged, never surfaced to the request.
func (n *Notifier) TicketsGenerated(ctx context.Context, eventID, categoryID string, count int) {
	n.publish(ctx, "event-"+eventID, map[string]any{
		"type":               "tickets_generated",
		"event_id":           eventID,
		"ticket_category_id": categoryID,
		"count":              count,
	})
}

// EventChanged announces a lifecycle change (created, updated, deleted) on
// the event's channel.
func (n *Notifier) EventChanged(ctx context.Context, eventID, action string) {
	n.publish(ctx, "event-"+eventID, map[string]any{
		"type":     "event_" + action,
		"event_id": eventID,
	})
}

func (n *Notifier) publish(ctx context.Context, channel string, message map[string]any) {
	if n == nil || n.pn == nil {
		return
	}

	err := n.breaker.Execute(ctx, func() error {
		_, _, err := n.pn.Publish().
			Channel(channel).
			Message(message).
			Execute()
		return err
	})
	if err != nil {
		slog.Warn("realtime publish failed", "channel", channel, "error", err)
	}
}
