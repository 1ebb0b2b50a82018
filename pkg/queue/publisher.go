package queue

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/flaboy/aira-pay/pkg/config"
	"github.com/flaboy/aira-pay/pkg/types"
)

// Publisher 把支付结果事件发布到平台SQS总线，实现events.EventHandler
type Publisher struct {
	client   *sqs.Client
	queueURL string
}

func NewPublisher() (*Publisher, error) {
	ctx := context.Background()

	// 配置了专用凭证就用静态凭证，否则走默认凭证链
	var cfg aws.Config
	var err error
	if config.Config.Events.AWSAccessKey != "" && config.Config.Events.AWSSecret != "" {
		cfg, err = awsConfig.LoadDefaultConfig(ctx,
			awsConfig.WithRegion(config.Config.Events.AWSRegion),
			awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.Config.Events.AWSAccessKey,
				config.Config.Events.AWSSecret,
				"",
			)),
		)
	} else {
		cfg, err = awsConfig.LoadDefaultConfig(ctx,
			awsConfig.WithRegion(config.Config.Events.AWSRegion),
		)
	}
	if err != nil {
		return nil, err
	}

	return &Publisher{
		client:   sqs.NewFromConfig(cfg),
		queueURL: config.Config.Events.SQSQueueURL,
	}, nil
}

func (p *Publisher) publish(eventType string, payload interface{}) error {
	body, err := json.Marshal(map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	})
	if err != nil {
		return err
	}

	_, err = p.client.SendMessage(context.Background(), &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
	})
	return err
}

func (p *Publisher) OnPaymentCompleted(event *types.PaymentCompletedEvent) error {
	return p.publish("payment.completed", event)
}

func (p *Publisher) OnPaymentFailed(event *types.PaymentFailedEvent) error {
	return p.publish("payment.failed", event)
}
