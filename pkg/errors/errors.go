package errors

import "github.com/flaboy/pin/usererrors"

// 支付相关错误
var (
	ErrInvoiceNotFound    = usererrors.New("payment.invoice_not_found", "Invoice not found")
	ErrCredentialNotFound = usererrors.New("payment.credential_not_found", "Processor credentials not found for tenant")
	ErrIntentNotFound     = usererrors.New("payment.intent_not_found", "Payment intent not found")
	ErrEmptyCheckout      = usererrors.New("payment.empty_checkout", "Order batch contains no chargeable items")
	ErrUnknownCurrency    = usererrors.New("payment.unknown_currency", "Unknown currency symbol")
	ErrCheckoutFailed     = usererrors.New("payment.checkout_failed", "Could not create checkout session")
	ErrInvalidSignature   = usererrors.New("payment.invalid_signature", "Invalid webhook signature")
	ErrChannelNotFound    = usererrors.New("payment.channel_not_found", "Payment channel not found")
	ErrInvalidRequest     = usererrors.New("payment.invalid_request", "Invalid request body")
)
