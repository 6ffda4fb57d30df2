// File: /events/bus.go
package events

import (
	"log"
	"sync"
)

// Handler consumes events published on the bus. Handlers run on the bus
// worker goroutine, one event at a time, in publish order.
type Handler func(event interface{})

// Bus is a small in-process pub/sub pipe for post-commit side effects.
// Publishing costs the request path one channel hand-off; whatever a
// handler does with the event can be logged but never surfaced to the
// request that caused it.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	events   chan interface{}
	done     chan struct{}
}

type flushMarker struct {
	done chan struct{}
}

const defaultBuffer = 256

func NewBus() *Bus {
	bus := &Bus{
		events: make(chan interface{}, defaultBuffer),
		done:   make(chan struct{}),
	}
	go bus.run()
	return bus
}

// Subscribe registers a handler for every subsequent event. Handlers are
// expected to type-switch on the events they care about and ignore the rest.
func (b *Bus) Subscribe(handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
}

// Publish hands the event to the worker. Callers publish only after their
// primary write has committed.
func (b *Bus) Publish(event interface{}) {
	select {
	case b.events <- event:
	case <-b.done:
	}
}

func (b *Bus) run() {
	for {
		select {
		case event := <-b.events:
			b.handle(event)
		case <-b.done:
			// Drain whatever was queued before the close.
			for {
				select {
				case event := <-b.events:
					b.handle(event)
				default:
					return
				}
			}
		}
	}
}

func (b *Bus) handle(event interface{}) {
	if marker, ok := event.(flushMarker); ok {
		close(marker.done)
		return
	}

	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.deliver(handler, event)
	}
}

// deliver isolates handler panics so one bad consumer cannot take down the
// worker or the other consumers.
func (b *Bus) deliver(handler Handler, event interface{}) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("events: handler panic on %T: %v", event, r)
		}
	}()
	handler(event)
}

// Flush blocks until every event published before the call has been
// handled. Tests use it to observe fan-out deterministically. On a closed
// bus Flush returns without waiting.
func (b *Bus) Flush() {
	marker := flushMarker{done: make(chan struct{})}
	select {
	case b.events <- marker:
		// The buffer can still accept the marker after the worker has
		// exited, so keep watching done while waiting for the echo.
		select {
		case <-marker.done:
		case <-b.done:
		}
	case <-b.done:
	}
}

// Close stops the worker after draining queued events. Publishing after
// Close quietly drops the event.
func (b *Bus) Close() {
	close(b.done)
}
