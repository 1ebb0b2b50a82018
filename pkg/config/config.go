package config

type PaymentConfig struct {
	// 对外基础URL，用于拼接支付页和回调地址
	BaseURL string `cfg:"BASE_URL"`

	Database struct {
		Driver string `cfg:"DRIVER" default:"mysql"`
		DSN    string `cfg:"DSN"`
		// 平台auth库与ordering库，未配置时复用主库连接
		AuthDSN     string `cfg:"AUTH_DSN"`
		OrderingDSN string `cfg:"ORDERING_DSN"`
	} `cfg:"DATABASE"`

	// 支付处理器配置
	Stripe struct {
		WebhookSecret   string `cfg:"WEBHOOK_SECRET"`
		DefaultCurrency string `cfg:"DEFAULT_CURRENCY" default:"gbp"`
		// 未知货币符号直接报错，而不是回退到默认货币
		StrictCurrency bool `cfg:"STRICT_CURRENCY" default:"false"`
	} `cfg:"STRIPE"`

	// 支付结果事件的下游投递配置
	Events struct {
		SQSQueueURL       string `cfg:"SQS_QUEUE_URL"`
		AWSRegion         string `cfg:"AWS_REGION"`
		AWSAccessKey      string `cfg:"AWS_ACCESS_KEY"`
		AWSSecret         string `cfg:"AWS_SECRET"`
		MerchantNotifyURL string `cfg:"MERCHANT_NOTIFY_URL"`
	} `cfg:"EVENTS"`
}

var Config *PaymentConfig
