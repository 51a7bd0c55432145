package observer

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Dispatcher fans an Event out to every registered observer, in registration
// order. Observers run synchronously; the next one is only invoked once the
// previous returned. A panicking observer is recovered and logged so the
// remaining observers still see the event.
type Dispatcher struct {
	mu        sync.RWMutex
	observers []Observer
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) Register(o Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
}

func (d *Dispatcher) Notify(e Event) {
	d.mu.RLock()
	observers := d.observers
	d.mu.RUnlock()

	for _, o := range observers {
		notifyOne(o, e)
	}
}

func notifyOne(o Observer, e Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("product", e.Product).Msg("Observer panicked, skipping it for this event")
		}
	}()
	o.OnNotify(e)
}
