package fetcher

import (
	"context"
	"errors"
	"net/http"

	"github.com/mmcdole/gofeed"

	"status-tracker/models/entities"
)

var (
	ErrUnexpectedStatus = errors.New("feed endpoint returned a non-success status")
	ErrUnparsableFeed   = errors.New("feed could not be parsed")
)

type Service interface {
	Fetch(ctx context.Context, product string, url string) (*entities.Entry, error)
}

type Impl struct {
	client     *http.Client
	feedParser *gofeed.Parser
	userAgent  string
	gate       chan struct{}
}
