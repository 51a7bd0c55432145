package dates

import "time"

const (
	NotificationTimeFormat = "2006-01-02 15:04:05"
)

// EntryTimestamp renders a feed entry's publication moment for display.
// Structured times win; feeds without a parseable date fall back to whatever
// raw string they carried, and the fallback marker covers feeds with neither.
func EntryTimestamp(at *time.Time, raw string, fallback string) string {
	if at != nil {
		return at.Format(NotificationTimeFormat)
	}
	if raw != "" {
		return raw
	}
	return fallback
}
