package event

import "time"

// PurchaseCompletedEvent 代币发放完成事件
// Topic: presale_events_purchase
type PurchaseCompletedEvent struct {
	PurchaseID       string    `json:"purchase_id"`
	BuyerAddress     string    `json:"buyer_address"`
	Amount           string    `json:"amount"` // Decimal string
	Currency         string    `json:"currency"`
	TokenAmount      uint64    `json:"token_amount"`
	PaymentSignature string    `json:"payment_signature"`
	TokenSignature   string    `json:"token_signature"`
	CompletedAt      time.Time `json:"completed_at"`
}
