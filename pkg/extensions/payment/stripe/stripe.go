package stripe

import (
	"log"

	"github.com/flaboy/aira-pay/pkg/config"
	"github.com/flaboy/aira-pay/pkg/extensions/payment/currency"
	ptypes "github.com/flaboy/aira-pay/pkg/extensions/payment/types"
	"github.com/flaboy/aira-pay/pkg/extensions/payment/utils"
	"github.com/flaboy/aira-pay/pkg/helper"
	"github.com/flaboy/aira-pay/pkg/stores"
)

// CredentialKind 凭证表中本渠道的凭证类型
const CredentialKind = "stripe"

type Stripe struct {
	invoices    stores.InvoiceStore
	credentials stores.CredentialStore
	orders      stores.OrderStore
	seenEvents  stores.WebhookEventStore

	api           processorAPI
	codec         *currency.Codec
	webhookSecret string
}

func NewChannel() *Stripe {
	return &Stripe{}
}

// Init 初始化Stripe渠道。密钥按租户从凭证表解析，这里不持有全局key。
func (s *Stripe) Init() error {
	s.invoices = stores.NewInvoiceStore()
	s.credentials = stores.NewCredentialStore()
	s.orders = stores.NewOrderStore()
	s.seenEvents = stores.NewWebhookEventStore()

	s.api = &stripeAPI{}
	s.codec = currency.NewCodec(config.Config.Stripe.DefaultCurrency, config.Config.Stripe.StrictCurrency)
	s.webhookSecret = config.Config.Stripe.WebhookSecret

	log.Printf("Stripe payment channel initialized successfully")
	return nil
}

// GetChannelName 获取渠道名称
func (s *Stripe) GetChannelName() string {
	return "stripe"
}

// InitiatePayment 解析租户凭证并创建扣款意图，意图引用与跳转地址落到发票上。
// 跳转地址同时写进意图metadata，回调侧靠它恢复跳转目标。
// 成功时返回托管支付页链接，业务系统引导用户访问。
// 任何一步失败都只体现为Accepted=false，原因记日志。
func (s *Stripe) InitiatePayment(req *ptypes.InitiateRequest) (*ptypes.InitiateResult, error) {
	log.Printf("[Stripe InitiatePayment] Starting - invoice: %d, amount: %d, currency: %s",
		req.InvoiceID, req.Amount, req.Currency)

	secret, err := s.credentials.GetSecret(req.TenantID, CredentialKind)
	if err != nil {
		log.Printf("[Stripe InitiatePayment] credential lookup failed for tenant %s: %v", req.TenantID, err)
		return &ptypes.InitiateResult{Accepted: false}, nil
	}

	invoiceRef := utils.EncodeInvoiceRef(req.InvoiceID)
	metadata := map[string]string{
		"invoiceId":  invoiceRef,
		"successUrl": req.SuccessURL,
		"cancelUrl":  req.CancelURL,
	}

	intentRef, err := s.api.CreateIntent(secret, req.Amount, req.Currency, metadata)
	if err != nil {
		log.Printf("[Stripe InitiatePayment] processor rejected intent for invoice %d: %v", req.InvoiceID, err)
		return &ptypes.InitiateResult{Accepted: false}, nil
	}

	if err := s.invoices.SetIntentRef(req.InvoiceID, intentRef, req.SuccessURL, req.CancelURL); err != nil {
		log.Printf("[Stripe InitiatePayment] failed to persist intent %s on invoice %d: %v",
			intentRef, req.InvoiceID, err)
		return &ptypes.InitiateResult{Accepted: false}, nil
	}

	log.Printf("[Stripe InitiatePayment] created intent %s for invoice %d", intentRef, req.InvoiceID)
	return &ptypes.InitiateResult{
		Accepted:   true,
		IntentRef:  intentRef,
		PaymentURL: helper.BuildUrl("pay/" + invoiceRef),
	}, nil
}
