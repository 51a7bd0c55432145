package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEntryTimestamp(t *testing.T) {
	parsed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name     string
		at       *time.Time
		raw      string
		expected string
	}{
		{"structured time wins", &parsed, "Sat, 14 Mar 2026 09:26:53 GMT", "2026-03-14 09:26:53"},
		{"raw string when unparsed", nil, "Sat, 14 Mar 2026 09:26:53 GMT", "Sat, 14 Mar 2026 09:26:53 GMT"},
		{"fallback when nothing", nil, "", "Unknown Time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EntryTimestamp(tt.at, tt.raw, "Unknown Time"))
		})
	}
}
