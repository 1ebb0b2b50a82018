package notify

import (
	"encoding/json"
	"fmt"

	"github.com/flaboy/aira-pay/pkg/types"
	"github.com/valyala/fasthttp"
)

// Notifier 支付结果的商户HTTP回调，实现events.EventHandler
type Notifier struct {
	endpoint string
}

func NewNotifier(endpoint string) *Notifier {
	return &Notifier{endpoint: endpoint}
}

func (n *Notifier) post(eventType string, payload interface{}) error {
	body, err := json.Marshal(map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	})
	if err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(n.endpoint)
	req.Header.SetMethod("POST")
	req.Header.Set("Content-Type", "application/json")
	req.SetBody(body)

	if err := fasthttp.Do(req, resp); err != nil {
		return err
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("merchant notify rejected, status code: %d", resp.StatusCode())
	}
	return nil
}

func (n *Notifier) OnPaymentCompleted(event *types.PaymentCompletedEvent) error {
	return n.post("payment.completed", event)
}

func (n *Notifier) OnPaymentFailed(event *types.PaymentFailedEvent) error {
	return n.post("payment.failed", event)
}
