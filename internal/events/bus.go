package events

import (
	"sync"

	"voltrent-backend/internal/logger"
)

// Handler consumes a booking event. Handlers must tolerate redelivery; the
// bus guarantees at-least-once dispatch to every subscriber and never
// propagates handler failures back to the publisher.
type Handler interface {
	HandleBookingEvent(ev BookingEvent)
}

// Publisher is the narrow interface the engines depend on.
type Publisher interface {
	Publish(ev BookingEvent)
}

// Bus is an in-process publish/subscribe channel between the booking/trip
// engines and the notification fan-out. Publishing happens after the
// originating transaction commits, so a slow or failing subscriber can
// never roll it back.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	ch       chan BookingEvent
	done     chan struct{}
}

func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = 256
	}
	return &Bus{
		ch:   make(chan BookingEvent, buffer),
		done: make(chan struct{}),
	}
}

// Subscribe registers a handler. Must be called before Run.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	b.handlers = append(b.handlers, h)
	b.mu.Unlock()
}

// Publish enqueues an event for dispatch. Blocks only when the buffer is
// full, which keeps delivery at-least-once rather than dropping on pressure.
func (b *Bus) Publish(ev BookingEvent) {
	select {
	case <-b.done:
		logger.Warn("Event bus closed, dropping event", "type", ev.Type, "booking_id", ev.BookingID)
	case b.ch <- ev:
	}
}

// Run dispatches events to all subscribers until Close is called. Intended
// to run as a single goroutine owned by main.
func (b *Bus) Run() {
	for ev := range b.ch {
		b.mu.RLock()
		handlers := b.handlers
		b.mu.RUnlock()
		for _, h := range handlers {
			b.dispatch(h, ev)
		}
	}
}

func (b *Bus) dispatch(h Handler, ev BookingEvent) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Event handler panicked", "type", ev.Type, "booking_id", ev.BookingID, "panic", r)
		}
	}()
	h.HandleBookingEvent(ev)
}

// Close stops accepting events and lets Run drain the remaining buffer.
func (b *Bus) Close() {
	close(b.done)
	close(b.ch)
}
