package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"status-tracker/models/constants"
	"status-tracker/models/entities"
	"status-tracker/pkg/observer"
	"status-tracker/repositories/sources"
	"status-tracker/repositories/state"
	"status-tracker/services/fetcher"
)

func New(scheduler gocron.Scheduler, fetcherService fetcher.Service,
	stateRepo state.Repository, sourcesRepo sources.Repository) (*Impl, error) {
	service := &Impl{
		fetcherService: fetcherService,
		stateRepo:      stateRepo,
		sourcesRepo:    sourcesRepo,
		dispatcher:     observer.NewDispatcher(),
		state:          stateRepo.Load(),
	}

	interval := time.Duration(viper.GetInt(constants.PollInterval)) * time.Second
	_, errJob := scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { service.PollOnce() }),
		gocron.WithName("Poll status feeds"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if errJob != nil {
		return nil, errJob
	}

	return service, nil
}

func (service *Impl) RegisterObserver(o observer.Observer) {
	service.dispatcher.Register(o)
}

// PollOnce runs one cycle: reload the source registry, fetch every product's
// feed concurrently and push detected changes to the observers. It returns
// only once every product has resolved, so cycles never overlap.
func (service *Impl) PollOnce() {
	registry := service.sourcesRepo.Load()
	log.Info().Int(constants.LogSourceNumber, len(registry)).Msg("Checking feeds...")

	ctx := context.Background()

	var wg sync.WaitGroup
	for product, url := range registry {
		wg.Add(1)
		go func(product, url string) {
			defer wg.Done()
			service.checkFeed(ctx, product, url)
		}(product, url)
	}
	wg.Wait()
}

func (service *Impl) checkFeed(ctx context.Context, product string, url string) {
	entry, err := service.fetcherService.Fetch(ctx, product, url)
	if err != nil {
		log.Error().
			Err(err).
			Str(constants.LogProduct, product).
			Str(constants.LogFeedURL, url).
			Msg("Cannot read feed, source ignored for this cycle")
		return
	}
	if entry == nil {
		log.Debug().
			Str(constants.LogProduct, product).
			Str(constants.LogFeedURL, url).
			Msg("Feed has no entries")
		return
	}

	if !service.detectChange(product, entry) {
		return
	}

	log.Info().
		Str(constants.LogProduct, product).
		Str(constants.LogEntryID, entry.ID).
		Str(constants.LogEntryTitle, entry.Title).
		Msg("Feed changed, dispatching notification")
	service.dispatcher.Notify(observer.NewIncidentEvent(product, entry))
}

// detectChange compares the newest entry's identifier with the last one seen
// for the product, updating and persisting the state record on change. A
// first observation counts as a change; an entry without an identifier never
// does.
func (service *Impl) detectChange(product string, entry *entities.Entry) bool {
	if entry.ID == "" {
		return false
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	if service.state[product] == entry.ID {
		return false
	}

	service.state[product] = entry.ID
	if err := service.stateRepo.Save(service.state); err != nil {
		log.Error().
			Err(err).
			Str(constants.LogProduct, product).
			Msg("Failed to persist state, this change may notify again next cycle")
	}

	return true
}
