package stripe

import (
	"errors"

	payerrors "github.com/flaboy/aira-pay/pkg/errors"
	ptypes "github.com/flaboy/aira-pay/pkg/extensions/payment/types"
	"github.com/flaboy/aira-pay/pkg/models"
	"gorm.io/gorm"
)

type mockInvoiceStore struct {
	invoices map[uint]*models.Invoice
	lines    map[uint][]models.InvoiceLine

	attempt       int
	setStatusErr  error
	setIntentErr  error
	statusChanges []string
}

func (m *mockInvoiceStore) Get(id uint) (*models.Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *inv
	return &clone, nil
}

func (m *mockInvoiceStore) FindByIntentRef(ref string) (*models.Invoice, error) {
	for _, inv := range m.invoices {
		if inv.PaymentIntentID == ref {
			clone := *inv
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInvoiceStore) SetIntentRef(id uint, ref, successURL, cancelURL string) error {
	if m.setIntentErr != nil {
		return m.setIntentErr
	}
	inv, ok := m.invoices[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	inv.PaymentIntentID = ref
	inv.SuccessURL = successURL
	inv.CancelURL = cancelURL
	return nil
}

func (m *mockInvoiceStore) SetStatusIfPending(id uint, status string) (bool, error) {
	if m.setStatusErr != nil {
		return false, m.setStatusErr
	}
	inv, ok := m.invoices[id]
	if !ok || inv.Status != models.InvoiceStatusPending {
		return false, nil
	}
	inv.Status = status
	m.statusChanges = append(m.statusChanges, status)
	return true, nil
}

func (m *mockInvoiceStore) NextCheckoutAttempt(id uint) (int, error) {
	m.attempt++
	return m.attempt, nil
}

func (m *mockInvoiceStore) QuantityOverrides(id uint) ([]models.InvoiceLine, error) {
	return m.lines[id], nil
}

type mockCredentialStore struct {
	secrets map[string]string
	err     error
}

func (m *mockCredentialStore) GetSecret(tenantID, kind string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	secret, ok := m.secrets[tenantID]
	if !ok {
		return "", payerrors.ErrCredentialNotFound
	}
	return secret, nil
}

type mockOrderStore struct {
	productIDs []uint
	products   []models.Product
}

func (m *mockOrderStore) ListProductIDs(batchID uint) ([]uint, error) {
	return m.productIDs, nil
}

func (m *mockOrderStore) ListProducts(ids []uint) ([]models.Product, error) {
	return m.products, nil
}

type mockWebhookEventStore struct {
	seen     map[string]bool
	recorded []string
	err      error
}

func (m *mockWebhookEventStore) Record(provider, eventID, eventType, intentRef string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.recorded = append(m.recorded, eventID)
	if m.seen == nil {
		m.seen = make(map[string]bool)
	}
	if m.seen[eventID] {
		return true, nil
	}
	m.seen[eventID] = true
	return false, nil
}

type couponCall struct {
	amountOff int64
	currency  string
}

type fakeAPI struct {
	intentRef   string
	intentErr   error
	intentMeta  map[string]string
	retrieveErr error

	couponID    string
	couponErr   error
	couponCalls []couponCall

	deleteErr      error
	deletedCoupons []string

	sessionURL  string
	sessionErr  error
	lastSession *sessionParams

	verifyEvent *ptypes.PaymentEvent
	verifyErr   error

	intentCalls int
}

var errFake = errors.New("fake processor error")

func (f *fakeAPI) CreateIntent(secret string, amount int64, currencyCode string, metadata map[string]string) (string, error) {
	f.intentCalls++
	f.intentMeta = metadata
	if f.intentErr != nil {
		return "", f.intentErr
	}
	return f.intentRef, nil
}

func (f *fakeAPI) RetrieveIntent(secret, intentRef string) (map[string]string, error) {
	if f.retrieveErr != nil {
		return nil, f.retrieveErr
	}
	return f.intentMeta, nil
}

func (f *fakeAPI) CreateCoupon(secret string, amountOff int64, currencyCode string) (string, error) {
	if f.couponErr != nil {
		return "", f.couponErr
	}
	f.couponCalls = append(f.couponCalls, couponCall{amountOff: amountOff, currency: currencyCode})
	return f.couponID, nil
}

func (f *fakeAPI) DeleteCoupon(secret, couponID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedCoupons = append(f.deletedCoupons, couponID)
	return nil
}

func (f *fakeAPI) CreateSession(secret string, params *sessionParams) (string, error) {
	if f.sessionErr != nil {
		return "", f.sessionErr
	}
	f.lastSession = params
	return f.sessionURL, nil
}

func (f *fakeAPI) VerifySignature(payload []byte, signatureHeader, webhookSecret string) (*ptypes.PaymentEvent, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.verifyEvent, nil
}
