package stripe

import (
	"errors"
	"fmt"
	"log"
	"log/slog"

	payerrors "github.com/flaboy/aira-pay/pkg/errors"
	"github.com/flaboy/aira-pay/pkg/extensions/payment/checkout"
	"github.com/flaboy/aira-pay/pkg/extensions/payment/currency"
	ptypes "github.com/flaboy/aira-pay/pkg/extensions/payment/types"
	"github.com/flaboy/aira-pay/pkg/extensions/payment/utils"
	"gorm.io/gorm"
)

// CheckoutRedirect 组装托管结账会话并返回跳转地址。
// 任何一步失败整个操作中止，不产生半成品会话；
// 只有优惠券和会话这两个处理器侧副作用可能残留，见releaseCoupon。
func (s *Stripe) CheckoutRedirect(invoiceID uint, referrerURL string) (string, error) {
	invoice, err := s.invoices.Get(invoiceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", payerrors.ErrInvoiceNotFound
	}
	if err != nil {
		return "", err
	}

	currencyCode, err := s.codec.SymbolToCode(invoice.Currency)
	if err != nil {
		return "", err
	}

	productIDs, err := s.orders.ListProductIDs(invoice.OrderBatchID)
	if err != nil {
		return "", err
	}
	products, err := s.orders.ListProducts(productIDs)
	if err != nil {
		return "", err
	}

	secret, err := s.credentials.GetSecret(invoice.TenantID, CredentialKind)
	if err != nil {
		return "", err
	}

	successURL, cancelURL, err := s.redirectTargets(secret, invoice.PaymentIntentID, invoice.SuccessURL, invoice.CancelURL)
	if err != nil {
		return "", err
	}

	lines, err := s.invoices.QuantityOverrides(invoiceID)
	if err != nil {
		return "", err
	}
	overrides := make([]ptypes.QuantityOverride, 0, len(lines))
	for _, line := range lines {
		overrides = append(overrides, ptypes.QuantityOverride{Name: line.Name, Quantity: line.Quantity})
	}

	items, discount := checkout.Assemble(products, currencyCode, overrides)
	if len(items) == 0 {
		// 处理器要求至少一个行项目，纯折扣batch在这里拦下
		return "", payerrors.ErrEmptyCheckout
	}

	var couponID string
	if discount.IsPositive() {
		// 会话请求引用券ID，必须先建券
		couponID, err = s.api.CreateCoupon(secret, currency.ToMinorUnits(discount), currencyCode)
		if err != nil {
			return "", err
		}
	}

	effectiveCancelURL := cancelURL
	if referrerURL != "" {
		effectiveCancelURL = referrerURL
	}

	attempt, err := s.invoices.NextCheckoutAttempt(invoiceID)
	if err != nil {
		s.releaseCoupon(secret, couponID, invoiceID, invoice.TenantID)
		return "", err
	}

	invoiceRef := utils.EncodeInvoiceRef(invoiceID)
	redirectURL, err := s.api.CreateSession(secret, &sessionParams{
		LineItems:      items,
		SuccessURL:     successURL,
		CancelURL:      effectiveCancelURL,
		CouponID:       couponID,
		IdempotencyKey: fmt.Sprintf("%s:%d", invoiceRef, attempt),
		Metadata: map[string]string{
			"invoiceId": invoiceRef,
			"tenantId":  invoice.TenantID,
			"returnUrl": effectiveCancelURL,
		},
	})
	if err != nil {
		s.releaseCoupon(secret, couponID, invoiceID, invoice.TenantID)
		return "", err
	}

	slog.Info("[Stripe Checkout] created checkout session",
		"invoice_id", invoiceID, "tenant_id", invoice.TenantID, "line_items", len(items))
	return redirectURL, nil
}

// redirectTargets 返回发起时记录的成功/取消跳转地址。
// 优先读发票上的本地镜像，旧数据没有镜像时回查处理器意图元数据。
func (s *Stripe) redirectTargets(secret, intentRef, mirroredSuccess, mirroredCancel string) (string, string, error) {
	if mirroredSuccess != "" && mirroredCancel != "" {
		return mirroredSuccess, mirroredCancel, nil
	}

	if intentRef == "" {
		return "", "", payerrors.ErrIntentNotFound
	}
	metadata, err := s.api.RetrieveIntent(secret, intentRef)
	if err != nil {
		log.Printf("[Stripe Checkout] failed to retrieve intent %s: %v", intentRef, err)
		return "", "", payerrors.ErrIntentNotFound
	}
	return metadata["successUrl"], metadata["cancelUrl"], nil
}

// releaseCoupon 会话创建失败后的补偿清理。
// 删不掉的孤儿券记下足够人工对账的标识。
func (s *Stripe) releaseCoupon(secret, couponID string, invoiceID uint, tenantID string) {
	if couponID == "" {
		return
	}
	if err := s.api.DeleteCoupon(secret, couponID); err != nil {
		log.Printf("[Stripe Checkout] orphan coupon %s left on processor (invoice=%d, tenant=%s): %v",
			couponID, invoiceID, tenantID, err)
	}
}
