// Package messaging delivers domain events to in-process handlers
package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/cookbook/catalog/internal/domain/shared"
)

// EventRecorder counts published events
type EventRecorder interface {
	EventPublished(name string)
}

// Dispatcher is a synchronous in-process event bus
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]shared.EventHandler
	recorder EventRecorder
	logger   *zap.Logger
}

// NewDispatcher creates a dispatcher. recorder may be nil.
func NewDispatcher(recorder EventRecorder, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]shared.EventHandler),
		recorder: recorder,
		logger:   logger.Named("events"),
	}
}

// Register adds a handler for events with the given name
func (d *Dispatcher) Register(eventName string, handler shared.EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[eventName] = append(d.handlers[eventName], handler)
}

// Dispatch runs every handler registered for the event in registration
// order. All handlers run; their errors are joined.
func (d *Dispatcher) Dispatch(event shared.DomainEvent) error {
	d.mu.RLock()
	handlers := append([]shared.EventHandler(nil), d.handlers[event.EventName()]...)
	d.mu.RUnlock()

	d.logger.Debug("Dispatching event",
		zap.String("event", event.EventName()),
		zap.Time("occurred_at", event.OccurredAt()),
		zap.Int("handlers", len(handlers)),
	)

	if d.recorder != nil {
		d.recorder.EventPublished(event.EventName())
	}

	var errs []error
	for _, h := range handlers {
		if err := h(event); err != nil {
			errs = append(errs, fmt.Errorf("%s handler: %w", event.EventName(), err))
		}
	}
	return errors.Join(errs...)
}

// Publish dispatches events in order
func (d *Dispatcher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	var errs []error
	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.Dispatch(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
