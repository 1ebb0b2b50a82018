package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentCompletedEvent 发票对账为已支付后发出
type PaymentCompletedEvent struct {
	InvoiceRef  string           `json:"invoice_ref"`
	InvoiceID   uint             `json:"invoice_id"`
	TenantID    string           `json:"tenant_id"`
	Channel     string           `json:"channel"`
	Amount      *decimal.Decimal `json:"amount"`
	Currency    string           `json:"currency"`
	IntentRef   string           `json:"intent_ref"`
	CompletedAt time.Time        `json:"completed_at"`
}

// PaymentFailedEvent 发票对账为支付失败后发出
type PaymentFailedEvent struct {
	InvoiceRef string           `json:"invoice_ref"`
	InvoiceID  uint             `json:"invoice_id"`
	TenantID   string           `json:"tenant_id"`
	Channel    string           `json:"channel"`
	Amount     *decimal.Decimal `json:"amount"`
	Currency   string           `json:"currency"`
	IntentRef  string           `json:"intent_ref"`
	FailedAt   time.Time        `json:"failed_at"`
}
