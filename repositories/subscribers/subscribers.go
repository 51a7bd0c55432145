package subscribers

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"status-tracker/models/entities"
	"status-tracker/utils/databases"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

func (repo *Impl) FetchAll() ([]entities.Subscriber, error) {
	var subs []entities.Subscriber
	result := repo.db.GetDB().Find(&subs)

	return subs, result.Error
}

func (repo *Impl) SaveOrUpdate(subscriber entities.Subscriber) error {
	var existing entities.Subscriber

	result := repo.db.GetDB().Where("chat_id = ?", subscriber.ChatID).First(&existing)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			if err := repo.db.GetDB().Create(&subscriber).Error; err != nil {
				return fmt.Errorf("failed to create subscriber: %w", err)
			}
			return nil
		}
		return fmt.Errorf("failed to check subscriber existence: %w", result.Error)
	}

	return nil
}

func (repo *Impl) Delete(subscriber entities.Subscriber) error {
	result := repo.db.GetDB().Delete(&entities.Subscriber{}, subscriber.ChatID)
	return result.Error
}
