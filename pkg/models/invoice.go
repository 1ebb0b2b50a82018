package models

import (
	"time"

	"github.com/flaboy/aira-pay/pkg/migration"
	"github.com/shopspring/decimal"
)

const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusFailed  = "failed"
)

type Invoice struct {
	ID           uint            `gorm:"primaryKey"`
	TenantID     string          `gorm:"size:100;index"`
	Currency     string          `gorm:"size:10"` // 显示货币符号，如 £ $ €
	Amount       decimal.Decimal `gorm:"type:decimal(12,2)"`
	OrderBatchID uint            `gorm:"index"`

	// 处理器意图引用，发起扣款后写入
	PaymentIntentID string `gorm:"size:100;index"`
	Status          string `gorm:"size:20;default:'pending'"` // pending, paid, failed

	// 意图元数据中跳转地址的本地镜像，重建结账会话时不再依赖第三方往返
	SuccessURL string `gorm:"size:500"`
	CancelURL  string `gorm:"size:500"`

	// 结账会话幂等键使用的单调尝试计数
	CheckoutAttempts int `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (i *Invoice) TableName() string {
	return "pay_invoices"
}

// InvoiceLine 发票行，按商品名覆盖结账数量
type InvoiceLine struct {
	ID        uint   `gorm:"primaryKey"`
	InvoiceID uint   `gorm:"index"`
	Name      string `gorm:"size:255"`
	Quantity  int64  `gorm:"default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (l *InvoiceLine) TableName() string {
	return "pay_invoice_lines"
}

func init() {
	migration.RegisterAutoMigrateModels(&Invoice{}, &InvoiceLine{})
}
