// Package notify delivers order events to dashboards and tracking views.
package notify

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

const (
	EventNewOrder           = "new_order"
	EventOrderCancelled     = "order_cancelled"
	EventOrderStatusUpdated = "order_status_updated"
	EventDriverOrderReady   = "driver_order_ready"
)

// Event is a named message. An empty Room broadcasts to every subscriber.
type Event struct {
	Name    string `json:"name"`
	Room    string `json:"room,omitempty"`
	Payload any    `json:"payload"`
}

// Publisher sends events to subscribers. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// OrderRoom is the room a tracking view joins for one order.
func OrderRoom(orderID uuid.UUID) string {
	return "order_" + orderID.String()
}

// Fanout publishes to every sink and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, ev Event) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	Err    error
}

func (r *Recorder) Publish(_ context.Context, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.Err
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Named returns the recorded events with the given name.
func (r *Recorder) Named(name string) []Event {
	var out []Event
	for _, ev := range r.Events() {
		if ev.Name == name {
			out = append(out, ev)
		}
	}
	return out
}
