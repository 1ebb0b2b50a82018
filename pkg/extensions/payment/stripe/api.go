package stripe

import (
	"strings"

	ptypes "github.com/flaboy/aira-pay/pkg/extensions/payment/types"
	"github.com/spf13/cast"
	stripego "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"
)

// sessionParams 结账会话请求参数
type sessionParams struct {
	LineItems      []ptypes.CheckoutLineItem
	SuccessURL     string
	CancelURL      string
	CouponID       string
	IdempotencyKey string
	Metadata       map[string]string
}

// processorAPI 收敛对处理器的网络调用。
// 密钥逐调用传入，因为每个租户使用自己的凭证。
type processorAPI interface {
	CreateIntent(secret string, amount int64, currencyCode string, metadata map[string]string) (string, error)
	RetrieveIntent(secret, intentRef string) (map[string]string, error)
	CreateCoupon(secret string, amountOff int64, currencyCode string) (string, error)
	DeleteCoupon(secret, couponID string) error
	CreateSession(secret string, params *sessionParams) (string, error)
	VerifySignature(payload []byte, signatureHeader, webhookSecret string) (*ptypes.PaymentEvent, error)
}

type stripeAPI struct{}

func (a *stripeAPI) clientFor(secret string) *client.API {
	sc := &client.API{}
	sc.Init(secret, nil)
	return sc
}

func (a *stripeAPI) CreateIntent(secret string, amount int64, currencyCode string, metadata map[string]string) (string, error) {
	params := &stripego.PaymentIntentParams{
		Amount:   stripego.Int64(amount),
		Currency: stripego.String(strings.ToLower(currencyCode)),
	}
	params.Metadata = metadata

	intent, err := a.clientFor(secret).PaymentIntents.New(params)
	if err != nil {
		return "", err
	}
	return intent.ID, nil
}

func (a *stripeAPI) RetrieveIntent(secret, intentRef string) (map[string]string, error) {
	intent, err := a.clientFor(secret).PaymentIntents.Get(intentRef, nil)
	if err != nil {
		return nil, err
	}
	return intent.Metadata, nil
}

func (a *stripeAPI) CreateCoupon(secret string, amountOff int64, currencyCode string) (string, error) {
	params := &stripego.CouponParams{
		AmountOff: stripego.Int64(amountOff),
		Currency:  stripego.String(currencyCode),
		Duration:  stripego.String(string(stripego.CouponDurationOnce)),
	}

	coupon, err := a.clientFor(secret).Coupons.New(params)
	if err != nil {
		return "", err
	}
	return coupon.ID, nil
}

func (a *stripeAPI) DeleteCoupon(secret, couponID string) error {
	_, err := a.clientFor(secret).Coupons.Del(couponID, nil)
	return err
}

func (a *stripeAPI) CreateSession(secret string, params *sessionParams) (string, error) {
	lineItems := make([]*stripego.CheckoutSessionLineItemParams, 0, len(params.LineItems))
	for _, item := range params.LineItems {
		productData := &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripego.String(item.Name),
		}
		if item.Description != "" {
			productData.Description = stripego.String(item.Description)
		}
		lineItems = append(lineItems, &stripego.CheckoutSessionLineItemParams{
			PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripego.String(item.Currency),
				ProductData: productData,
				UnitAmount:  stripego.Int64(item.UnitAmount),
			},
			Quantity: stripego.Int64(item.Quantity),
		})
	}

	sessionReq := &stripego.CheckoutSessionParams{
		LineItems:  lineItems,
		Mode:       stripego.String(string(stripego.CheckoutSessionModePayment)),
		SuccessURL: stripego.String(params.SuccessURL),
		CancelURL:  stripego.String(params.CancelURL),
	}
	if params.CouponID != "" {
		sessionReq.Discounts = []*stripego.CheckoutSessionDiscountParams{
			{Coupon: stripego.String(params.CouponID)},
		}
	}
	sessionReq.Metadata = params.Metadata
	if params.IdempotencyKey != "" {
		sessionReq.SetIdempotencyKey(params.IdempotencyKey)
	}

	session, err := a.clientFor(secret).CheckoutSessions.New(sessionReq)
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

// VerifySignature 校验回调签名并把动态payload收敛成按kind打标的事件
func (a *stripeAPI) VerifySignature(payload []byte, signatureHeader, webhookSecret string) (*ptypes.PaymentEvent, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, webhookSecret)
	if err != nil {
		return nil, err
	}

	var kind ptypes.EventKind
	switch event.Type {
	case "payment_intent.succeeded":
		kind = ptypes.EventIntentSucceeded
	case "payment_intent.payment_failed":
		kind = ptypes.EventIntentFailed
	default:
		return &ptypes.PaymentEvent{
			Kind:    ptypes.EventIgnored,
			EventID: event.ID,
			Type:    string(event.Type),
		}, nil
	}

	object := event.Data.Object
	metadata := cast.ToStringMapString(object["metadata"])
	return &ptypes.PaymentEvent{
		Kind:       kind,
		EventID:    event.ID,
		Type:       string(event.Type),
		IntentRef:  cast.ToString(object["id"]),
		SuccessURL: metadata["successUrl"],
		CancelURL:  metadata["cancelUrl"],
	}, nil
}
