package application

import (
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"status-tracker/models/constants"
	"status-tracker/models/entities"
	incidentsRepo "status-tracker/repositories/incidents"
	sourcesRepo "status-tracker/repositories/sources"
	stateRepo "status-tracker/repositories/state"
	subscribersRepo "status-tracker/repositories/subscribers"
	"status-tracker/services/fetcher"
	"status-tracker/services/health"
	"status-tracker/services/incident"
	"status-tracker/services/telegram"
	"status-tracker/services/tracker"
	"status-tracker/services/web"
	"status-tracker/utils/databases"
)

func New() (*Impl, error) {
	scheduler, errScheduler := gocron.NewScheduler()
	if errScheduler != nil {
		return nil, errScheduler
	}

	// Repositories
	states := stateRepo.New(viper.GetString(constants.StateFile))
	sources := sourcesRepo.New(viper.GetString(constants.SourcesFile))
	incidents := incidentsRepo.New()

	fetcherService := fetcher.New()
	trackerService, errTracker := tracker.New(scheduler, fetcherService, states, sources)
	if errTracker != nil {
		return nil, errTracker
	}

	// The buffer-filling listener registers first so the status page always
	// reflects a change even when later listeners fail.
	trackerService.RegisterObserver(incident.New(incidents))

	webService := web.New(incidents)

	healthService, errHealth := health.New(scheduler, incidents)
	if errHealth != nil {
		return nil, errHealth
	}

	app := &Impl{
		scheduler:      scheduler,
		trackerService: trackerService,
		healthService:  healthService,
		webService:     webService,
	}

	token := viper.GetString(constants.TelegramBotToken)
	if token == "" {
		log.Info().Msg("No telegram token configured, incident push channel disabled")
		return app, nil
	}

	db := databases.New(viper.GetString(constants.SqliteURL))
	if errDB := db.Run(); errDB != nil {
		return nil, errDB
	}
	if errMigration := db.GetDB().AutoMigrate(&entities.Subscriber{}); errMigration != nil {
		return nil, errMigration
	}

	telegramService, errTg := telegram.New(token, subscribersRepo.New(db))
	if errTg != nil {
		return nil, errTg
	}
	trackerService.RegisterObserver(telegramService)

	app.db = db
	app.telegramService = telegramService
	return app, nil
}

func (app *Impl) Run() {
	app.scheduler.Start()

	for _, job := range app.scheduler.Jobs() {
		scheduledTime, err := job.NextRun()
		if err == nil {
			log.Info().Msgf("%v scheduled at %v", job.Name(), scheduledTime)
		}
	}

	if app.telegramService != nil {
		go app.telegramService.ListenAndDispatch()
	}

	go app.webService.ListenAndServe()
}

func (app *Impl) Shutdown() {
	if err := app.scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown scheduler, continuing...")
	}
	app.webService.Shutdown()
	if app.db != nil {
		app.db.Shutdown()
	}
	log.Info().Msgf("Application is no longer running")
}
