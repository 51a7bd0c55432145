package incident

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"status-tracker/models/entities"
	"status-tracker/pkg/observer"
	"status-tracker/repositories/incidents"
	"status-tracker/utils/dates"
)

const (
	unknownTimeMarker = "Unknown Time"
	unknownTitle      = "Unknown Title"
	noDescription     = "No Description"
)

var (
	markupTagPattern = regexp.MustCompile(`<[^>]*>`)
	newlinePattern   = regexp.MustCompile(`[\r\n]+`)
)

func New(incidentsRepo incidents.Repository) *Impl {
	return &Impl{incidentsRepo: incidentsRepo}
}

// OnNotify turns one detected change into the human-readable notification
// shown on the status page, and logs it for operators following stdout.
func (service *Impl) OnNotify(e observer.Event) {
	notification := FormatNotification(e.Product, e.Entry)
	service.incidentsRepo.Append(notification)
	log.Info().Msg(notification)
}

// FormatNotification renders `[<timestamp>] Product: <name> - <title>` with
// a second `Status:` line holding the entry summary, markup stripped and
// newlines collapsed so the whole description stays on one line.
func FormatNotification(product string, entry *entities.Entry) string {
	timestamp := dates.EntryTimestamp(entry.PublishedAt, entry.Published, unknownTimeMarker)

	title := entry.Title
	if title == "" {
		title = unknownTitle
	}

	description := entry.Summary
	if description == "" {
		description = noDescription
	}
	description = markupTagPattern.ReplaceAllString(description, "")
	description = strings.TrimSpace(description)
	description = newlinePattern.ReplaceAllString(description, " ")

	return fmt.Sprintf("[%s] Product: %s - %s\nStatus: %s", timestamp, product, title, description)
}
