package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Currency 买家支付所用的币种
type Currency string

const (
	CurrencyNative Currency = "NATIVE" // SOL
	CurrencyStable Currency = "STABLE" // USDT
)

// ParseCurrency 兼容前端传入的 SOL/USDT 别名
// 未识别的币种原样保留，确认支付时会校验失败
func ParseCurrency(s string) Currency {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NATIVE", "SOL":
		return CurrencyNative
	case "STABLE", "USDT":
		return CurrencyStable
	default:
		return Currency(s)
	}
}

// Status 购买意向的状态
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING" // 确认中，已被某个请求锁定
	StatusCompleted  Status = "COMPLETED"
)

// PurchaseIntent 购买意向表
type PurchaseIntent struct {
	ID               string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	BuyerAddress     string          `gorm:"type:varchar(64);not null" json:"buyerAddress"`
	Amount           decimal.Decimal `gorm:"type:decimal(36,18);not null" json:"amount"`
	Currency         Currency        `gorm:"type:varchar(16);not null" json:"currency"`
	Status           Status          `gorm:"type:varchar(16);not null;index" json:"status"`
	TokenAmount      uint64          `gorm:"not null" json:"tokenAmount"`                         // 发放的预售代币数量 (最小单位)
	PaymentSignature string          `gorm:"type:varchar(128)" json:"paymentSignature,omitempty"` // 买家支付交易签名
	TokenSignature   string          `gorm:"type:varchar(128)" json:"tokenSignature,omitempty"`   // 代币发放交易签名
	CreatedAt        time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func (PurchaseIntent) TableName() string {
	return "purchase_intents"
}

// Clone 返回一份副本，避免调用方修改存储中的记录
func (p *PurchaseIntent) Clone() *PurchaseIntent {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}
