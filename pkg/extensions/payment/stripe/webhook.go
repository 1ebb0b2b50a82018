package stripe

import (
	"errors"
	"log"
	"time"

	payerrors "github.com/flaboy/aira-pay/pkg/errors"
	"github.com/flaboy/aira-pay/pkg/events"
	ptypes "github.com/flaboy/aira-pay/pkg/extensions/payment/types"
	"github.com/flaboy/aira-pay/pkg/extensions/payment/utils"
	"github.com/flaboy/aira-pay/pkg/models"
	"github.com/flaboy/aira-pay/pkg/types"
	"gorm.io/gorm"
)

// HandleWebhook 校验回调签名后应用发票状态迁移。
// 签名不合法直接拒绝，不碰报文内容。
func (s *Stripe) HandleWebhook(rawBody []byte, signatureHeader string) (*ptypes.WebhookResult, error) {
	event, err := s.api.VerifySignature(rawBody, signatureHeader, s.webhookSecret)
	if err != nil {
		log.Printf("[Stripe Webhook] signature verification failed: %v", err)
		return nil, payerrors.ErrInvalidSignature
	}
	return s.reconcile(event)
}

// reconcile 按意图引用匹配发票并应用状态机迁移：
// pending→paid / pending→failed，只走条件更新。
// 重复投递、未匹配发票、无关事件都是no-op而不是错误；
// 重复投递仍然返回记录过的跳转目标。
func (s *Stripe) reconcile(event *ptypes.PaymentEvent) (*ptypes.WebhookResult, error) {
	if event.Kind == ptypes.EventIgnored {
		return &ptypes.WebhookResult{}, nil
	}

	if event.EventID != "" {
		seen, err := s.seenEvents.Record(s.GetChannelName(), event.EventID, event.Type, event.IntentRef)
		if err != nil {
			return nil, err
		}
		if seen {
			log.Printf("[Stripe Webhook] duplicate delivery of event %s (intent %s)", event.EventID, event.IntentRef)
		}
	}

	invoice, err := s.invoices.FindByIntentRef(event.IntentRef)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[Stripe Webhook] no invoice matches intent %s, nothing to do", event.IntentRef)
		return &ptypes.WebhookResult{}, nil
	}
	if err != nil {
		return nil, err
	}

	status := models.InvoiceStatusPaid
	redirectURL := event.SuccessURL
	if event.Kind == ptypes.EventIntentFailed {
		status = models.InvoiceStatusFailed
		redirectURL = event.CancelURL
	}

	// 条件更新才是幂等的真正保障：重复或并发投递最多一次命中
	transitioned, err := s.invoices.SetStatusIfPending(invoice.ID, status)
	if err != nil {
		return nil, err
	}

	if transitioned {
		log.Printf("[Stripe Webhook] invoice %d marked %s (intent %s)", invoice.ID, status, event.IntentRef)
		s.emitOutcome(invoice, event)
	} else {
		// 已被并发投递或更早的事件对账过
		log.Printf("[Stripe Webhook] invoice %d already reconciled, skipping (intent %s)",
			invoice.ID, event.IntentRef)
	}

	if redirectURL == "" {
		// 老事件元数据缺地址时用发票上的镜像兜底
		if event.Kind == ptypes.EventIntentSucceeded {
			redirectURL = invoice.SuccessURL
		} else {
			redirectURL = invoice.CancelURL
		}
	}

	return &ptypes.WebhookResult{RedirectURL: redirectURL, Handled: true}, nil
}

// emitOutcome 状态真正发生迁移时通知业务系统，投递失败不影响对账结果
func (s *Stripe) emitOutcome(invoice *models.Invoice, event *ptypes.PaymentEvent) {
	amount := invoice.Amount
	invoiceRef := utils.EncodeInvoiceRef(invoice.ID)

	var err error
	if event.Kind == ptypes.EventIntentSucceeded {
		err = events.EmitPaymentCompleted(&types.PaymentCompletedEvent{
			InvoiceRef:  invoiceRef,
			InvoiceID:   invoice.ID,
			TenantID:    invoice.TenantID,
			Channel:     s.GetChannelName(),
			Amount:      &amount,
			Currency:    invoice.Currency,
			IntentRef:   event.IntentRef,
			CompletedAt: time.Now(),
		})
	} else {
		err = events.EmitPaymentFailed(&types.PaymentFailedEvent{
			InvoiceRef: invoiceRef,
			InvoiceID:  invoice.ID,
			TenantID:   invoice.TenantID,
			Channel:    s.GetChannelName(),
			Amount:     &amount,
			Currency:   invoice.Currency,
			IntentRef:  event.IntentRef,
			FailedAt:   time.Now(),
		})
	}
	if err != nil {
		log.Printf("[Stripe Webhook] failed to notify business system for invoice %d: %v", invoice.ID, err)
	}
}
