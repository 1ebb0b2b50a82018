package payment

import (
	"github.com/flaboy/aira-pay/pkg/extensions/payment/stripe"
	"github.com/flaboy/aira-pay/pkg/extensions/payment/types"
)

type ProcessorChannel interface {
	// InitiatePayment 创建扣款意图并把意图引用落到发票上。
	// 业务失败通过InitiateResult.Accepted表达，不向调用方抛错误细节。
	InitiatePayment(req *types.InitiateRequest) (*types.InitiateResult, error)

	// CheckoutRedirect 组装托管结账会话，返回用户跳转地址
	CheckoutRedirect(invoiceID uint, referrerURL string) (string, error)

	// HandleWebhook 校验处理器回调签名并应用发票状态迁移
	HandleWebhook(rawBody []byte, signatureHeader string) (*types.WebhookResult, error)

	// 资源初始化
	Init() error

	// 获取渠道名称
	GetChannelName() string
}

var paymentChannels map[string]ProcessorChannel

func Init() error {
	paymentChannels = make(map[string]ProcessorChannel)

	stripeChannel := stripe.NewChannel()
	if err := stripeChannel.Init(); err != nil {
		return err
	}
	paymentChannels[stripeChannel.GetChannelName()] = stripeChannel

	return nil
}

func Get(channel string) ProcessorChannel {
	return paymentChannels[channel]
}

// GetAvailableChannels 获取所有可用的支付渠道
func GetAvailableChannels() []string {
	channels := make([]string, 0, len(paymentChannels))
	for name := range paymentChannels {
		channels = append(channels, name)
	}
	return channels
}
