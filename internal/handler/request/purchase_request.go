package request

import "github.com/shopspring/decimal"

// InitiatePurchaseRequest 字段名与前端保持一致 (camelCase)
// 不做必填校验，非法值在确认支付时被拒绝
type InitiatePurchaseRequest struct {
	BuyerAddress string          `json:"buyerAddress" example:"7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"`
	Amount       decimal.Decimal `json:"amount" swaggertype:"number" example:"0.001"`
	Currency     string          `json:"currency" example:"USDT"` // NATIVE/SOL 或 STABLE/USDT
}

type ConfirmPaymentRequest struct {
	TransactionID string `json:"transactionId"`
	Signature     string `json:"signature"` // 买家支付交易的 base58 签名
}

type PurchaseURI struct {
	ID string `uri:"id" binding:"required"`
}
