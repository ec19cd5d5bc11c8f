package service

import (
	"context"

	"github.com/shopspring/decimal"

	"presale-core/internal/model"
)

// PaymentChecker 校验买家的链上支付
type PaymentChecker interface {
	// Verify 任何查询或解码错误都视为校验失败，不向上返回
	Verify(ctx context.Context, txReference string, expectedAmount decimal.Decimal, currency model.Currency) bool
}

// TokenSender 向买家发放预售代币
type TokenSender interface {
	// SendTokens 返回发放交易的签名
	SendTokens(ctx context.Context, buyerAddress string, amount uint64) (string, error)
}
