package payment

import (
	"log/slog"

	payerrors "github.com/flaboy/aira-pay/pkg/errors"
	"github.com/flaboy/aira-pay/pkg/extensions/payment/types"
)

// PaymentManager 支付管理器，按渠道名分发支付操作
type PaymentManager struct{}

// NewPaymentManager 创建支付管理器
func NewPaymentManager() *PaymentManager {
	return &PaymentManager{}
}

// InitiatePayment 发起扣款意图
func (pm *PaymentManager) InitiatePayment(channel string, req *types.InitiateRequest) (*types.InitiateResult, error) {
	paymentChannel := Get(channel)
	if paymentChannel == nil {
		return nil, payerrors.ErrChannelNotFound
	}

	slog.Info("[PaymentManager] Calling InitiatePayment",
		"channel", channel, "invoice_id", req.InvoiceID, "tenant_id", req.TenantID, "amount", req.Amount)
	result, err := paymentChannel.InitiatePayment(req)
	if err != nil {
		return nil, err
	}
	slog.Info("[PaymentManager] InitiatePayment returned",
		"channel", channel, "invoice_id", req.InvoiceID, "accepted", result.Accepted)

	return result, nil
}

// CheckoutRedirect 组装托管结账会话并返回跳转地址
func (pm *PaymentManager) CheckoutRedirect(channel string, invoiceID uint, referrerURL string) (string, error) {
	paymentChannel := Get(channel)
	if paymentChannel == nil {
		return "", payerrors.ErrChannelNotFound
	}

	return paymentChannel.CheckoutRedirect(invoiceID, referrerURL)
}

// HandleWebhook 处理处理器回调
func (pm *PaymentManager) HandleWebhook(channel string, rawBody []byte, signatureHeader string) (*types.WebhookResult, error) {
	paymentChannel := Get(channel)
	if paymentChannel == nil {
		return nil, payerrors.ErrChannelNotFound
	}

	return paymentChannel.HandleWebhook(rawBody, signatureHeader)
}
