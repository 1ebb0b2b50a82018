package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	payerrors "github.com/flaboy/aira-pay/pkg/errors"
	"github.com/flaboy/aira-pay/pkg/extensions/payment"
	ptypes "github.com/flaboy/aira-pay/pkg/extensions/payment/types"
	"github.com/flaboy/aira-pay/pkg/extensions/payment/utils"
	"github.com/flaboy/pin"
)

// PaymentController 支付HTTP入口，只做解析、分发和错误映射
type PaymentController struct {
	manager *payment.PaymentManager
	channel string
}

func NewPaymentController() *PaymentController {
	return &PaymentController{
		manager: payment.NewPaymentManager(),
		channel: "stripe",
	}
}

// HandleRequest 分发支付相关请求
// POST payments        发起扣款意图
// GET  pay/{ref}       跳转托管结账页，可带?referrer=
// POST webhook/stripe  处理器回调
func (pc *PaymentController) HandleRequest(c *pin.Context, path string) error {
	switch {
	case path == "payments":
		return pc.createPayment(c)
	case strings.HasPrefix(path, "pay/"):
		return pc.paymentPage(c, strings.TrimPrefix(path, "pay/"))
	case path == "webhook/stripe":
		return pc.processorCallback(c)
	default:
		c.JSON(404, map[string]string{"error": "Not found"})
		return nil
	}
}

type createPaymentRequest struct {
	InvoiceRef string `json:"invoice_id"`
	TenantID   string `json:"tenant_id"`
	Amount     int64  `json:"amount"` // 最小货币单位
	Currency   string `json:"currency"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

func (pc *PaymentController) createPayment(c *pin.Context) error {
	var req createPaymentRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		return payerrors.ErrInvalidRequest
	}

	invoiceID, err := utils.DecodeInvoiceRef(req.InvoiceRef)
	if err != nil {
		return payerrors.ErrInvoiceNotFound
	}

	result, err := pc.manager.InitiatePayment(pc.channel, &ptypes.InitiateRequest{
		InvoiceID:  invoiceID,
		TenantID:   req.TenantID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		return err
	}

	if !result.Accepted {
		c.JSON(500, map[string]interface{}{"success": false, "error": "Failed to create payment intent"})
		return nil
	}
	c.JSON(201, map[string]interface{}{"success": true, "payment_url": result.PaymentURL})
	return nil
}

func (pc *PaymentController) paymentPage(c *pin.Context, ref string) error {
	invoiceID, err := utils.DecodeInvoiceRef(ref)
	if err != nil {
		return payerrors.ErrInvoiceNotFound
	}

	redirectURL, err := pc.manager.CheckoutRedirect(pc.channel, invoiceID, c.Query("referrer"))
	if err != nil {
		if errors.Is(err, payerrors.ErrInvoiceNotFound) {
			return err
		}
		// 组装失败对外只给笼统错误，原因记日志
		slog.Error("[PaymentController] checkout assembly failed", "invoice_id", invoiceID, "error", err)
		return payerrors.ErrCheckoutFailed
	}

	c.Redirect(http.StatusFound, redirectURL)
	return nil
}

func (pc *PaymentController) processorCallback(c *pin.Context) error {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return payerrors.ErrInvalidSignature
	}

	result, err := pc.manager.HandleWebhook(pc.channel, rawBody, c.Request.Header.Get("Stripe-Signature"))
	if err != nil {
		return err
	}

	if result.RedirectURL != "" {
		c.Redirect(http.StatusFound, result.RedirectURL)
		return nil
	}
	c.JSON(200, map[string]string{"status": "ignored"})
	return nil
}
