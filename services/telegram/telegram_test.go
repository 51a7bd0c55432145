package telegram

import (
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"status-tracker/models/entities"
	"status-tracker/pkg/observer"
)

type stubSubscriberRepo struct {
	fetchCalls int
}

func (s *stubSubscriberRepo) SaveOrUpdate(entities.Subscriber) error { return nil }
func (s *stubSubscriberRepo) Delete(entities.Subscriber) error       { return nil }
func (s *stubSubscriberRepo) FetchAll() ([]entities.Subscriber, error) {
	s.fetchCalls++
	return nil, nil
}

func TestNewWithoutTokenIsRejected(t *testing.T) {
	_, err := New("", &stubSubscriberRepo{})

	require.ErrorIs(t, err, ErrTokenIsMissing)
}

func TestBuildIncidentMessage(t *testing.T) {
	published := time.Now().Add(-10 * time.Minute)
	entry := &entities.Entry{
		ID:          "e1",
		Title:       "Outage",
		Summary:     "<p>Down</p>",
		Link:        "https://status.acme.example/incidents/1",
		PublishedAt: &published,
	}

	msg := buildIncidentMessage("acme", entry)

	assert.Contains(t, msg, "Product: acme - Outage")
	assert.Contains(t, msg, "Status: Down")
	assert.Contains(t, msg, "minutes ago")
	assert.Contains(t, msg, "https://status.acme.example/incidents/1")
}

func TestOnNotifySuppressesResends(t *testing.T) {
	repo := &stubSubscriberRepo{}
	service := &Impl{
		subscriberRepo: repo,
		sentCache:      cache.New(resendSuppressionTTL, 2*resendSuppressionTTL),
	}
	event := observer.NewIncidentEvent("acme", &entities.Entry{ID: "e1", Title: "Outage"})

	service.OnNotify(event)
	service.OnNotify(event)

	assert.Equal(t, 1, repo.fetchCalls)
}

func TestOnNotifyDistinguishesEntries(t *testing.T) {
	repo := &stubSubscriberRepo{}
	service := &Impl{
		subscriberRepo: repo,
		sentCache:      cache.New(resendSuppressionTTL, 2*resendSuppressionTTL),
	}

	service.OnNotify(observer.NewIncidentEvent("acme", &entities.Entry{ID: "e1"}))
	service.OnNotify(observer.NewIncidentEvent("acme", &entities.Entry{ID: "e2"}))

	assert.Equal(t, 2, repo.fetchCalls)
}
