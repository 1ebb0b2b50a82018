package stores

import (
	"github.com/flaboy/aira-pay/pkg/database"
	"github.com/flaboy/aira-pay/pkg/models"
	"gorm.io/gorm/clause"
)

// WebhookEventStore 处理器回调事件的去重记录
type WebhookEventStore interface {
	// Record 写入事件记录，返回true表示该事件此前已投递过
	Record(provider, eventID, eventType, intentRef string) (bool, error)
}

type webhookEventStore struct{}

func NewWebhookEventStore() WebhookEventStore {
	return &webhookEventStore{}
}

func (s *webhookEventStore) Record(provider, eventID, eventType, intentRef string) (bool, error) {
	event := models.WebhookEvent{
		Provider:        provider,
		ProviderEventID: eventID,
		EventType:       eventType,
		IntentRef:       intentRef,
	}
	result := database.Database().Clauses(clause.OnConflict{DoNothing: true}).Create(&event)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 0, nil
}
