package tracker

import (
	"sync"

	"status-tracker/pkg/observer"
	"status-tracker/repositories/sources"
	"status-tracker/repositories/state"
	"status-tracker/services/fetcher"
)

type Service interface {
	RegisterObserver(o observer.Observer)
	PollOnce()
}

type Impl struct {
	fetcherService fetcher.Service
	stateRepo      state.Repository
	sourcesRepo    sources.Repository
	dispatcher     *observer.Dispatcher

	// Guards the in-memory state record while a cycle's fetches run
	// concurrently. The tracker is the only writer of the state file.
	mu    sync.Mutex
	state map[string]string
}
