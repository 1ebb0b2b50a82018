package commence

import (
	"github.com/flaboy/aira-pay/pkg/config"
	"github.com/flaboy/aira-pay/pkg/database"
	"github.com/flaboy/aira-pay/pkg/events"
	"github.com/flaboy/aira-pay/pkg/extensions/payment"
	"github.com/flaboy/aira-pay/pkg/migration"
	"github.com/flaboy/aira-pay/pkg/notify"
	"github.com/flaboy/aira-pay/pkg/queue"
)

func Start(cfg *config.PaymentConfig) error {
	config.Config = cfg

	if err := database.Init(); err != nil {
		return err
	}
	if err := migration.AutoMigrate(database.Database()); err != nil {
		return err
	}

	// 启动支付渠道
	if err := payment.Init(); err != nil {
		return err
	}

	// 按配置接好默认的事件下游，业务系统可用RegisterEventHandler覆盖
	var sinks events.Fanout
	if cfg.Events.SQSQueueURL != "" {
		publisher, err := queue.NewPublisher()
		if err != nil {
			return err
		}
		sinks = append(sinks, publisher)
	}
	if cfg.Events.MerchantNotifyURL != "" {
		sinks = append(sinks, notify.NewNotifier(cfg.Events.MerchantNotifyURL))
	}
	if len(sinks) > 0 {
		events.SetEventHandler(sinks)
	}

	return nil
}

// RegisterEventHandler 注册业务系统的事件处理器
func RegisterEventHandler(handler events.EventHandler) {
	events.SetEventHandler(handler)
}
