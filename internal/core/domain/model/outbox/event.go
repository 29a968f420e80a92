// Package outbox implements the notification outbox: domain events persisted
// atomically with the order mutation that produced them, drained
// asynchronously by a dispatcher job. This replaces fire-and-forget emission
// as a direct side effect of mutations, so a crash right after commit cannot
// silently drop notifications. Delivery stays best-effort; only persisted
// order state is authoritative.
package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/pkg/errs"
)

// Event names published on the notification channels.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusUpdated = "order.status_updated"
)

// Event is one pending or dispatched notification. Channel is the logical
// destination (shop:<id>, zone:<id>, or customer:<phone>:<orderNumber>);
// Payload is the JSON document delivered verbatim.
type Event struct {
	id           kernel.UUID
	name         string
	channel      string
	orderID      kernel.UUID
	payload      []byte
	occurredAt   time.Time
	dispatchedAt *time.Time
	attempts     int

	isConstructed bool
}

// NewEvent creates a pending outbox event.
func NewEvent(name, channel string, orderID kernel.UUID, payload []byte, occurredAt time.Time) (*Event, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("event name")
	}
	if channel == "" {
		return nil, errs.NewValueIsRequiredError("event channel")
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, errs.NewValueIsRequiredError("event payload")
	}

	return &Event{
		id:            kernel.NewUUID(),
		name:          name,
		channel:       channel,
		orderID:       orderID,
		payload:       payload,
		occurredAt:    occurredAt,
		isConstructed: true,
	}, nil
}

// RestoreEvent reconstructs an event from persistence.
func RestoreEvent(
	id kernel.UUID,
	name, channel string,
	orderID kernel.UUID,
	payload []byte,
	occurredAt time.Time,
	dispatchedAt *time.Time,
	attempts int,
) (*Event, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	event, err := NewEvent(name, channel, orderID, payload, occurredAt)
	if err != nil {
		return nil, err
	}
	event.id = id
	event.dispatchedAt = dispatchedAt
	event.attempts = attempts
	return event, nil
}

// ID returns the event identifier.
func (e *Event) ID() kernel.UUID { return e.id }

// Name returns the event name (order.created, order.status_updated).
func (e *Event) Name() string { return e.name }

// Channel returns the logical destination channel.
func (e *Event) Channel() string { return e.channel }

// OrderID returns the order the event refers to.
func (e *Event) OrderID() kernel.UUID { return e.orderID }

// Payload returns the JSON document to deliver.
func (e *Event) Payload() []byte { return e.payload }

// OccurredAt returns when the producing mutation committed.
func (e *Event) OccurredAt() time.Time { return e.occurredAt }

// DispatchedAt returns when the event was delivered, nil while pending.
func (e *Event) DispatchedAt() *time.Time { return e.dispatchedAt }

// Attempts returns how many delivery attempts have been made.
func (e *Event) Attempts() int { return e.attempts }

// IsPending reports whether the event still awaits delivery.
func (e *Event) IsPending() bool { return e.dispatchedAt == nil }

// MarkDispatched records a successful delivery.
func (e *Event) MarkDispatched(at time.Time) {
	e.dispatchedAt = &at
	e.attempts++
}

// MarkFailed records a failed delivery attempt; the event stays pending.
func (e *Event) MarkFailed() {
	e.attempts++
}

// Validate ensures the Event was created through a constructor.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return errs.NewValueIsRequiredError("Event must be created via NewEvent or RestoreEvent")
	}
	return nil
}

// ShopChannel names the channel of a shop's staff displays.
func ShopChannel(shopID kernel.UUID) string {
	return fmt.Sprintf("shop:%s", shopID)
}

// ZoneChannel names the channel of a zone's shared dashboards.
func ZoneChannel(zoneID kernel.UUID) string {
	return fmt.Sprintf("zone:%s", zoneID)
}

// CustomerChannel names a customer's tracking channel. The order number
// multiplexes several concurrent orders from one phone.
func CustomerChannel(phone, orderNumber string) string {
	return fmt.Sprintf("customer:%s:%s", phone, orderNumber)
}

type orderPayload struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	OrderType   string `json:"orderType"`
	ZoneID      string `json:"zoneId"`
	ShopID      string `json:"shopId,omitempty"`
	Status      string `json:"status"`
	Actor       string `json:"actor,omitempty"`
	TotalCents  int64  `json:"totalCents"`
	OccurredAt  string `json:"occurredAt"`
}

func payloadFor(o *order.Order, actor string, at time.Time) ([]byte, error) {
	p := orderPayload{
		OrderID:     o.ID().String(),
		OrderNumber: o.OrderNumber(),
		OrderType:   o.Type().String(),
		ZoneID:      o.ZoneID().String(),
		Status:      o.Status().String(),
		Actor:       actor,
		TotalCents:  o.Pricing().Total(),
		OccurredAt:  at.UTC().Format(time.RFC3339Nano),
	}
	if shopID := o.ShopID(); shopID != nil {
		p.ShopID = shopID.String()
	}
	return json.Marshal(p)
}

// channelsFor lists the destinations interested in changes to one order:
// the owning shop's channel (children and singles), the zone dashboard, and
// the customer's per-order channel.
func channelsFor(o *order.Order) []string {
	var channels []string
	if shopID := o.ShopID(); shopID != nil {
		channels = append(channels, ShopChannel(*shopID))
	}
	channels = append(channels,
		ZoneChannel(o.ZoneID()),
		CustomerChannel(o.Customer().Phone(), o.OrderNumber()),
	)
	return channels
}

// EventsFor fans one order change out to its interested channels as pending
// outbox events.
func EventsFor(name string, o *order.Order, actor string, at time.Time) ([]*Event, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	payload, err := payloadFor(o, actor, at)
	if err != nil {
		return nil, err
	}

	channels := channelsFor(o)
	events := make([]*Event, 0, len(channels))
	for _, channel := range channels {
		event, eventErr := NewEvent(name, channel, o.ID(), payload, at)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}
	return events, nil
}
