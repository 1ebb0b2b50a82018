package types

// CheckoutLineItem 按正价商品派生的结账行，不落库
type CheckoutLineItem struct {
	Currency    string `json:"currency"`
	UnitAmount  int64  `json:"unit_amount"` // 最小货币单位
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Quantity    int64  `json:"quantity"`
}

// QuantityOverride 按商品名匹配的数量覆盖，来自发票行
type QuantityOverride struct {
	Name     string
	Quantity int64
}

type EventKind string

const (
	EventIntentSucceeded EventKind = "intent_succeeded"
	EventIntentFailed    EventKind = "intent_failed"
	EventIgnored         EventKind = "ignored"
)

// PaymentEvent 签名校验后的处理器事件。
// 回调payload在边界处收敛成按kind打标的结构，下游不再接触原始报文。
type PaymentEvent struct {
	Kind       EventKind
	EventID    string
	Type       string // 处理器原始事件类型
	IntentRef  string
	SuccessURL string
	CancelURL  string
}

// InitiateRequest 发起扣款意图的入参，金额为最小货币单位
type InitiateRequest struct {
	InvoiceID  uint
	TenantID   string
	Amount     int64
	Currency   string
	SuccessURL string
	CancelURL  string
}

// InitiateResult 发起结果。失败只体现为Accepted=false，原因记日志
type InitiateResult struct {
	Accepted  bool   `json:"accepted"`
	IntentRef string `json:"intent_ref,omitempty"`
	// 托管支付页链接，业务系统引导用户跳转
	PaymentURL string `json:"payment_url,omitempty"`
}

// WebhookResult 回调处理结果。Handled=false表示与业务无关的事件
type WebhookResult struct {
	RedirectURL string `json:"redirect_url,omitempty"`
	Handled     bool   `json:"handled"`
}
