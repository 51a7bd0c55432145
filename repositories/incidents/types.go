package incidents

import "sync"

// MaxRecent bounds the in-memory notification history served by the web
// status page. Oldest notifications are evicted first.
const MaxRecent = 50

type Repository interface {
	Append(notification string)
	Snapshot() []string
}

type Impl struct {
	mu     sync.Mutex
	limit  int
	recent []string
}
