package subscribers

import (
	"status-tracker/models/entities"
	"status-tracker/utils/databases"
)

type Repository interface {
	SaveOrUpdate(subscriber entities.Subscriber) error
	Delete(subscriber entities.Subscriber) error
	FetchAll() ([]entities.Subscriber, error)
}

type Impl struct {
	db databases.SqlConnection
}
