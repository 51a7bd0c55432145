package health

import (
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"status-tracker/models/constants"
	"status-tracker/repositories/incidents"
)

type Service interface{}

type Impl struct {
	incidentsRepo incidents.Repository
}

func New(scheduler gocron.Scheduler, incidentsRepo incidents.Repository) (*Impl, error) {
	service := Impl{incidentsRepo: incidentsRepo}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.HealthCronTab), true),
		gocron.NewTask(func() { service.echo() }),
		gocron.WithName("Check app running"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return &service, nil
}

func (service *Impl) echo() {
	log.Info().Int("recentIncidents", len(service.incidentsRepo.Snapshot())).Msg("Application is running")
}
