package entities

import "time"

// Entry is a normalized feed item. Only its ID survives a cycle, via the
// state repository; the rest exists for notification formatting.
type Entry struct {
	// Provider-assigned GUID, or the entry link when the feed carries none.
	// Empty when the feed provides neither.
	ID          string
	Title       string
	Link        string
	Summary     string
	Published   string
	PublishedAt *time.Time
}
