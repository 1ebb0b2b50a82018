package stripe

import (
	"errors"
	"testing"

	payerrors "github.com/flaboy/aira-pay/pkg/errors"
	"github.com/flaboy/aira-pay/pkg/extensions/payment/currency"
	"github.com/flaboy/aira-pay/pkg/extensions/payment/utils"
	"github.com/flaboy/aira-pay/pkg/models"
	"github.com/shopspring/decimal"
)

func newTestChannel(invoices *mockInvoiceStore, credentials *mockCredentialStore, orders *mockOrderStore, api *fakeAPI) *Stripe {
	return &Stripe{
		invoices:      invoices,
		credentials:   credentials,
		orders:        orders,
		seenEvents:    &mockWebhookEventStore{},
		api:           api,
		codec:         currency.NewCodec("gbp", false),
		webhookSecret: "whsec_test",
	}
}

func pendingInvoice(id uint) *models.Invoice {
	return &models.Invoice{
		ID:              id,
		TenantID:        "acme",
		Currency:        "£",
		Amount:          decimal.RequireFromString("8.00"),
		OrderBatchID:    7,
		PaymentIntentID: "pi_123",
		Status:          models.InvoiceStatusPending,
		SuccessURL:      "https://shop.example/success",
		CancelURL:       "https://shop.example/cancel",
	}
}

func TestCheckoutRedirect(t *testing.T) {
	invoices := &mockInvoiceStore{invoices: map[uint]*models.Invoice{1: pendingInvoice(1)}}
	orders := &mockOrderStore{
		productIDs: []uint{11, 12},
		products: []models.Product{
			{ID: 11, Name: "Widget", Price: decimal.RequireFromString("10.00")},
			{ID: 12, Name: "Intro discount", Price: decimal.RequireFromString("-2.00")},
		},
	}
	api := &fakeAPI{couponID: "co_1", sessionURL: "https://checkout.example/s/abc"}
	channel := newTestChannel(invoices, &mockCredentialStore{secrets: map[string]string{"acme": "sk_test"}}, orders, api)

	redirectURL, err := channel.CheckoutRedirect(1, "")
	if err != nil {
		t.Fatalf("CheckoutRedirect returned error: %v", err)
	}
	if redirectURL != "https://checkout.example/s/abc" {
		t.Errorf("unexpected redirect url %q", redirectURL)
	}

	if len(api.couponCalls) != 1 {
		t.Fatalf("expected 1 coupon call, got %d", len(api.couponCalls))
	}
	if api.couponCalls[0].amountOff != 200 || api.couponCalls[0].currency != "gbp" {
		t.Errorf("coupon = %d %s, want 200 gbp", api.couponCalls[0].amountOff, api.couponCalls[0].currency)
	}

	session := api.lastSession
	if session == nil {
		t.Fatal("no session was created")
	}
	if len(session.LineItems) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(session.LineItems))
	}
	if session.LineItems[0].UnitAmount != 1000 || session.LineItems[0].Currency != "gbp" {
		t.Errorf("line item = %d %s, want 1000 gbp",
			session.LineItems[0].UnitAmount, session.LineItems[0].Currency)
	}
	if session.CouponID != "co_1" {
		t.Errorf("session coupon = %q, want co_1", session.CouponID)
	}
	if session.SuccessURL != "https://shop.example/success" {
		t.Errorf("success url = %q", session.SuccessURL)
	}
	if session.CancelURL != "https://shop.example/cancel" {
		t.Errorf("cancel url = %q", session.CancelURL)
	}
	if session.Metadata["tenantId"] != "acme" {
		t.Errorf("metadata tenantId = %q", session.Metadata["tenantId"])
	}
	if session.Metadata["invoiceId"] != utils.EncodeInvoiceRef(1) {
		t.Errorf("metadata invoiceId = %q", session.Metadata["invoiceId"])
	}
	if session.IdempotencyKey == "" {
		t.Error("expected an idempotency key")
	}
}

func TestCheckoutRedirect_ReferrerOverridesCancel(t *testing.T) {
	invoices := &mockInvoiceStore{invoices: map[uint]*models.Invoice{1: pendingInvoice(1)}}
	orders := &mockOrderStore{
		productIDs: []uint{11},
		products:   []models.Product{{ID: 11, Name: "Widget", Price: decimal.RequireFromString("10.00")}},
	}
	api := &fakeAPI{sessionURL: "https://checkout.example/s/abc"}
	channel := newTestChannel(invoices, &mockCredentialStore{secrets: map[string]string{"acme": "sk_test"}}, orders, api)

	if _, err := channel.CheckoutRedirect(1, "https://merchant.example/basket"); err != nil {
		t.Fatalf("CheckoutRedirect returned error: %v", err)
	}
	if api.lastSession.CancelURL != "https://merchant.example/basket" {
		t.Errorf("cancel url = %q, want referrer", api.lastSession.CancelURL)
	}
	if api.lastSession.Metadata["returnUrl"] != "https://merchant.example/basket" {
		t.Errorf("metadata returnUrl = %q, want referrer", api.lastSession.Metadata["returnUrl"])
	}
	// 成功地址不受referrer影响
	if api.lastSession.SuccessURL != "https://shop.example/success" {
		t.Errorf("success url = %q", api.lastSession.SuccessURL)
	}
}

func TestCheckoutRedirect_InvoiceNotFound(t *testing.T) {
	channel := newTestChannel(
		&mockInvoiceStore{invoices: map[uint]*models.Invoice{}},
		&mockCredentialStore{},
		&mockOrderStore{},
		&fakeAPI{},
	)

	_, err := channel.CheckoutRedirect(99, "")
	if !errors.Is(err, payerrors.ErrInvoiceNotFound) {
		t.Errorf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestCheckoutRedirect_CredentialMissingAbortsEarly(t *testing.T) {
	invoices := &mockInvoiceStore{invoices: map[uint]*models.Invoice{1: pendingInvoice(1)}}
	orders := &mockOrderStore{
		productIDs: []uint{11, 12},
		products: []models.Product{
			{ID: 11, Name: "Widget", Price: decimal.RequireFromString("10.00")},
			{ID: 12, Name: "Discount", Price: decimal.RequireFromString("-2.00")},
		},
	}
	api := &fakeAPI{couponID: "co_1", sessionURL: "https://checkout.example/s/abc"}
	channel := newTestChannel(invoices, &mockCredentialStore{secrets: map[string]string{}}, orders, api)

	_, err := channel.CheckoutRedirect(1, "")
	if !errors.Is(err, payerrors.ErrCredentialNotFound) {
		t.Fatalf("expected ErrCredentialNotFound, got %v", err)
	}
	// 凭证缺失必须在任何处理器副作用之前中止
	if len(api.couponCalls) != 0 {
		t.Errorf("expected no coupon calls, got %d", len(api.couponCalls))
	}
	if api.lastSession != nil {
		t.Error("expected no session creation")
	}
}

func TestCheckoutRedirect_DiscountOnlyBatchRejected(t *testing.T) {
	invoices := &mockInvoiceStore{invoices: map[uint]*models.Invoice{1: pendingInvoice(1)}}
	orders := &mockOrderStore{
		productIDs: []uint{12},
		products:   []models.Product{{ID: 12, Name: "Discount", Price: decimal.RequireFromString("-2.00")}},
	}
	api := &fakeAPI{couponID: "co_1"}
	channel := newTestChannel(invoices, &mockCredentialStore{secrets: map[string]string{"acme": "sk_test"}}, orders, api)

	_, err := channel.CheckoutRedirect(1, "")
	if !errors.Is(err, payerrors.ErrEmptyCheckout) {
		t.Fatalf("expected ErrEmptyCheckout, got %v", err)
	}
	if len(api.couponCalls) != 0 {
		t.Errorf("expected no coupon creation for rejected batch, got %d", len(api.couponCalls))
	}
}

func TestCheckoutRedirect_SessionFailureReleasesCoupon(t *testing.T) {
	invoices := &mockInvoiceStore{invoices: map[uint]*models.Invoice{1: pendingInvoice(1)}}
	orders := &mockOrderStore{
		productIDs: []uint{11, 12},
		products: []models.Product{
			{ID: 11, Name: "Widget", Price: decimal.RequireFromString("10.00")},
			{ID: 12, Name: "Discount", Price: decimal.RequireFromString("-2.00")},
		},
	}
	api := &fakeAPI{couponID: "co_1", sessionErr: errFake}
	channel := newTestChannel(invoices, &mockCredentialStore{secrets: map[string]string{"acme": "sk_test"}}, orders, api)

	_, err := channel.CheckoutRedirect(1, "")
	if err == nil {
		t.Fatal("expected error from session creation")
	}
	if len(api.deletedCoupons) != 1 || api.deletedCoupons[0] != "co_1" {
		t.Errorf("expected coupon co_1 to be released, got %v", api.deletedCoupons)
	}
}

func TestCheckoutRedirect_MirrorAbsentFallsBackToIntent(t *testing.T) {
	invoice := pendingInvoice(1)
	invoice.SuccessURL = ""
	invoice.CancelURL = ""
	invoices := &mockInvoiceStore{invoices: map[uint]*models.Invoice{1: invoice}}
	orders := &mockOrderStore{
		productIDs: []uint{11},
		products:   []models.Product{{ID: 11, Name: "Widget", Price: decimal.RequireFromString("10.00")}},
	}

	t.Run("intent metadata recovered", func(t *testing.T) {
		api := &fakeAPI{
			sessionURL: "https://checkout.example/s/abc",
			intentMeta: map[string]string{
				"successUrl": "https://legacy.example/ok",
				"cancelUrl":  "https://legacy.example/ko",
			},
		}
		channel := newTestChannel(invoices, &mockCredentialStore{secrets: map[string]string{"acme": "sk_test"}}, orders, api)

		if _, err := channel.CheckoutRedirect(1, ""); err != nil {
			t.Fatalf("CheckoutRedirect returned error: %v", err)
		}
		if api.lastSession.SuccessURL != "https://legacy.example/ok" {
			t.Errorf("success url = %q", api.lastSession.SuccessURL)
		}
		if api.lastSession.CancelURL != "https://legacy.example/ko" {
			t.Errorf("cancel url = %q", api.lastSession.CancelURL)
		}
	})

	t.Run("stale intent reference", func(t *testing.T) {
		api := &fakeAPI{retrieveErr: errFake}
		channel := newTestChannel(invoices, &mockCredentialStore{secrets: map[string]string{"acme": "sk_test"}}, orders, api)

		_, err := channel.CheckoutRedirect(1, "")
		if !errors.Is(err, payerrors.ErrIntentNotFound) {
			t.Errorf("expected ErrIntentNotFound, got %v", err)
		}
	})
}

func TestCheckoutRedirect_QuantityOverrides(t *testing.T) {
	invoices := &mockInvoiceStore{
		invoices: map[uint]*models.Invoice{1: pendingInvoice(1)},
		lines: map[uint][]models.InvoiceLine{
			1: {{InvoiceID: 1, Name: "Widget", Quantity: 3}},
		},
	}
	orders := &mockOrderStore{
		productIDs: []uint{11},
		products:   []models.Product{{ID: 11, Name: "Widget", Price: decimal.RequireFromString("10.00")}},
	}
	api := &fakeAPI{sessionURL: "https://checkout.example/s/abc"}
	channel := newTestChannel(invoices, &mockCredentialStore{secrets: map[string]string{"acme": "sk_test"}}, orders, api)

	if _, err := channel.CheckoutRedirect(1, ""); err != nil {
		t.Fatalf("CheckoutRedirect returned error: %v", err)
	}
	if api.lastSession.LineItems[0].Quantity != 3 {
		t.Errorf("quantity = %d, want 3", api.lastSession.LineItems[0].Quantity)
	}
}
