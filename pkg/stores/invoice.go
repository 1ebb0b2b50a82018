package stores

import (
	"github.com/flaboy/aira-pay/pkg/database"
	"github.com/flaboy/aira-pay/pkg/models"
	"gorm.io/gorm"
)

// InvoiceStore 发票持久化边界。
// 查不到记录时返回gorm.ErrRecordNotFound，由调用方映射成领域错误。
type InvoiceStore interface {
	Get(id uint) (*models.Invoice, error)
	FindByIntentRef(ref string) (*models.Invoice, error)
	SetIntentRef(id uint, ref, successURL, cancelURL string) error

	// SetStatusIfPending 条件更新：只在当前状态为pending时写入终态。
	// 返回false表示没有命中行，即已被并发投递对账过或发票不存在。
	SetStatusIfPending(id uint, status string) (bool, error)

	// NextCheckoutAttempt 单调递增并返回结账尝试计数，供会话幂等键使用
	NextCheckoutAttempt(id uint) (int, error)

	QuantityOverrides(id uint) ([]models.InvoiceLine, error)
}

type invoiceStore struct{}

func NewInvoiceStore() InvoiceStore {
	return &invoiceStore{}
}

func (s *invoiceStore) Get(id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := database.Database().Where("id = ?", id).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *invoiceStore) FindByIntentRef(ref string) (*models.Invoice, error) {
	var inv models.Invoice
	if err := database.Database().Where("payment_intent_id = ?", ref).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *invoiceStore) SetIntentRef(id uint, ref, successURL, cancelURL string) error {
	return database.Database().Model(&models.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_intent_id": ref,
			"success_url":       successURL,
			"cancel_url":        cancelURL,
		}).Error
}

func (s *invoiceStore) SetStatusIfPending(id uint, status string) (bool, error) {
	result := database.Database().Model(&models.Invoice{}).
		Where("id = ? AND status = ?", id, models.InvoiceStatusPending).
		Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *invoiceStore) NextCheckoutAttempt(id uint) (int, error) {
	var attempt int
	err := database.Database().Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Invoice{}).
			Where("id = ?", id).
			UpdateColumn("checkout_attempts", gorm.Expr("checkout_attempts + ?", 1)).Error
		if err != nil {
			return err
		}
		row := tx.Model(&models.Invoice{}).
			Where("id = ?", id).
			Select("checkout_attempts").Row()
		return row.Scan(&attempt)
	})
	return attempt, err
}

func (s *invoiceStore) QuantityOverrides(id uint) ([]models.InvoiceLine, error) {
	var lines []models.InvoiceLine
	err := database.Database().Where("invoice_id = ?", id).Find(&lines).Error
	return lines, err
}
