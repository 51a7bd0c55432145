package fetcher

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"status-tracker/models/constants"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Acme Status</title>
    <item>
      <guid>incident-1</guid>
      <title>Outage</title>
      <link>https://status.acme.example/incidents/1</link>
      <description>&lt;p&gt;Down&lt;/p&gt;</description>
      <pubDate>Tue, 03 Mar 2026 10:00:00 GMT</pubDate>
    </item>
    <item>
      <guid>incident-0</guid>
      <title>All clear</title>
      <link>https://status.acme.example/incidents/0</link>
      <description>Resolved</description>
      <pubDate>Mon, 02 Mar 2026 10:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

const noGUIDRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Initech Status</title>
    <item>
      <title>Degraded performance</title>
      <link>https://status.initech.example/incidents/9</link>
      <description>Slow</description>
    </item>
  </channel>
</rss>`

const emptyRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Quiet Status</title></channel></rss>`

func newTestService(t *testing.T) *Impl {
	t.Helper()
	viper.Set(constants.FeedTimeout, 2)
	viper.Set(constants.FeedUserAgent, "status-tracker-test")
	return New()
}

func serveFeed(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchReturnsNewestEntry(t *testing.T) {
	srv := serveFeed(t, sampleRSS)
	service := newTestService(t)

	entry, err := service.Fetch(context.Background(), "acme", srv.URL)

	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "incident-1", entry.ID)
	assert.Equal(t, "Outage", entry.Title)
	assert.Equal(t, "<p>Down</p>", entry.Summary)
	require.NotNil(t, entry.PublishedAt)
	assert.Equal(t, 2026, entry.PublishedAt.Year())
}

func TestFetchFallsBackToLinkWhenNoGUID(t *testing.T) {
	srv := serveFeed(t, noGUIDRSS)
	service := newTestService(t)

	entry, err := service.Fetch(context.Background(), "initech", srv.URL)

	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "https://status.initech.example/incidents/9", entry.ID)
}

func TestFetchEmptyFeedYieldsNothing(t *testing.T) {
	srv := serveFeed(t, emptyRSS)
	service := newTestService(t)

	entry, err := service.Fetch(context.Background(), "quiet", srv.URL)

	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	service := newTestService(t)

	entry, err := service.Fetch(context.Background(), "acme", srv.URL)

	require.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Nil(t, entry)
}

func TestFetchUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	service := newTestService(t)

	_, err := service.Fetch(context.Background(), "acme", srv.URL)

	assert.Error(t, err)
}

func TestFetchGarbageBody(t *testing.T) {
	srv := serveFeed(t, "this is not a feed at all")
	service := newTestService(t)

	entry, err := service.Fetch(context.Background(), "acme", srv.URL)

	require.ErrorIs(t, err, ErrUnparsableFeed)
	assert.Nil(t, entry)
}

func TestFetchSalvagesFeedWithIllegalControlChars(t *testing.T) {
	// A vertical tab inside the title makes the XML ill-formed; the scrub
	// retry should still surface the entry, with a warning logged.
	malformed := "<?xml version=\"1.0\"?><rss version=\"2.0\"><channel><title>Acme</title>" +
		"<item><guid>incident-2</guid><title>Par\x0btial outage</title><description>Down</description></item>" +
		"</channel></rss>"
	srv := serveFeed(t, malformed)
	service := newTestService(t)

	var logged bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&logged)
	t.Cleanup(func() { log.Logger = prev })

	entry, err := service.Fetch(context.Background(), "acme", srv.URL)

	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "incident-2", entry.ID)
	assert.Contains(t, logged.String(), "warn")
	assert.Contains(t, logged.String(), "Malformed feed salvaged")
}
