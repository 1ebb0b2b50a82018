package models

import (
	"time"

	"github.com/flaboy/aira-pay/pkg/migration"
)

// WebhookEvent 已处理的处理器回调事件记录。
// provider+事件ID唯一索引，用于at-least-once投递下的去重。
type WebhookEvent struct {
	ID              uint   `gorm:"primaryKey"`
	Provider        string `gorm:"size:20;not null;uniqueIndex:ux_pay_webhook_events_provider_event,priority:1"`
	ProviderEventID string `gorm:"size:191;not null;uniqueIndex:ux_pay_webhook_events_provider_event,priority:2"`
	EventType       string `gorm:"size:100"`
	IntentRef       string `gorm:"size:100;index"`
	CreatedAt       time.Time
}

func (e *WebhookEvent) TableName() string {
	return "pay_webhook_events"
}

func init() {
	migration.RegisterAutoMigrateModels(&WebhookEvent{})
}
