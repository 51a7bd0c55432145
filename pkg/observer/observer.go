package observer

import "status-tracker/models/entities"

// Event carries one detected change: the product whose feed moved and the
// entry it moved to.
type Event struct {
	Product string
	Entry   *entities.Entry
}

func NewIncidentEvent(product string, entry *entities.Entry) Event {
	return Event{Product: product, Entry: entry}
}

type Observer interface {
	OnNotify(Event)
}

type Notifier interface {
	Register(Observer)
	Notify(Event)
}
