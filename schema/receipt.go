package schema

import (
	"time"
)

// ReceiptTokenTx status
const (
	UnSpent = "unspent"
	Spent   = "spent"
	Invalid = "invalid"
)

// TokenTx is one transfer returned by the external token service.
type TokenTx struct {
	RawId  uint64 `json:"rawId"`
	TxHash string `json:"txHash"`
	Nonce  int64  `json:"nonce"` // ms
	Symbol string `json:"symbol"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// ReceiptTokenTx is a watched transfer whose sender is the contract
// account itself, persisted so unstake confirmations survive restarts and
// replays. TxHash is unique so a duplicated notification inserts nothing.
type ReceiptTokenTx struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	RawId  uint64 `gorm:"index:idx_receipt_rawid" json:"rawId"`
	TxHash string `gorm:"index:idx_receipt_hash,unique" json:"txHash"`
	Nonce  int64  `json:"nonce"`
	Symbol string `json:"symbol"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`

	Status string `gorm:"index:idx_receipt_status" json:"status"`
}
