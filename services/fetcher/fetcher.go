package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"status-tracker/models/constants"
	"status-tracker/models/entities"
)

const (
	// Ceiling for in-flight fetches across all products; beyond it a cycle's
	// fan-out queues on the gate instead of opening more connections.
	maxInFlight = 100

	// Connections kept alive between cycles.
	maxIdleConns = 20
)

func New() *Impl {
	return &Impl{
		client: &http.Client{
			Timeout: time.Duration(viper.GetInt(constants.FeedTimeout)) * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        maxIdleConns,
				MaxIdleConnsPerHost: maxIdleConns,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		feedParser: gofeed.NewParser(),
		userAgent:  viper.GetString(constants.FeedUserAgent),
		gate:       make(chan struct{}, maxInFlight),
	}
}

// Fetch retrieves one product's feed and returns its newest entry. A feed
// that parses but carries no entries yields (nil, nil). Transport and parse
// failures come back as errors so the caller can skip the product for the
// cycle without touching the others.
func (service *Impl) Fetch(ctx context.Context, product string, url string) (*entities.Entry, error) {
	select {
	case service.gate <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-service.gate }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid feed request: %w", err)
	}
	req.Header.Set("User-Agent", service.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, */*")

	resp, err := service.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}

	feed, err := service.parse(product, url, body)
	if err != nil {
		return nil, err
	}

	if len(feed.Items) == 0 {
		return nil, nil
	}

	return normalizeEntry(feed.Items[0]), nil
}

func (service *Impl) parse(product string, url string, body []byte) (*gofeed.Feed, error) {
	feed, err := service.feedParser.ParseString(string(body))
	if err == nil {
		return feed, nil
	}

	// Some status pages emit control characters XML forbids. Scrub them and
	// retry once; a salvaged feed is still worth a notification.
	feed, errRetry := service.feedParser.ParseString(string(scrubControlChars(body)))
	if errRetry != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableFeed, err)
	}

	log.Warn().
		Err(err).
		Str(constants.LogProduct, product).
		Str(constants.LogFeedURL, url).
		Msg("Malformed feed salvaged after scrubbing, keeping its entries")
	return feed, nil
}

func normalizeEntry(item *gofeed.Item) *entities.Entry {
	id := item.GUID
	if id == "" {
		id = item.Link
	}

	summary := item.Description
	if summary == "" {
		summary = item.Content
	}

	published := item.Published
	if published == "" {
		published = item.Updated
	}

	publishedAt := item.PublishedParsed
	if publishedAt == nil {
		publishedAt = item.UpdatedParsed
	}

	return &entities.Entry{
		ID:          id,
		Title:       item.Title,
		Link:        item.Link,
		Summary:     summary,
		Published:   published,
		PublishedAt: publishedAt,
	}
}

func scrubControlChars(body []byte) []byte {
	return bytes.Map(func(r rune) rune {
		if r == 0x9 || r == 0xA || r == 0xD || r >= 0x20 {
			return r
		}
		return -1
	}, body)
}
