package application

import (
	"github.com/go-co-op/gocron/v2"

	"status-tracker/services/health"
	"status-tracker/services/telegram"
	"status-tracker/services/tracker"
	"status-tracker/services/web"
	"status-tracker/utils/databases"
)

type Application interface {
	Run()
	Shutdown()
}

type Impl struct {
	scheduler       gocron.Scheduler
	trackerService  tracker.Service
	healthService   health.Service
	webService      web.Service
	telegramService telegram.Service
	db              databases.SqlConnection
}
