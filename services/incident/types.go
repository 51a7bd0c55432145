package incident

import (
	"status-tracker/pkg/observer"
	"status-tracker/repositories/incidents"
)

type Service interface {
	observer.Observer
}

type Impl struct {
	incidentsRepo incidents.Repository
}
