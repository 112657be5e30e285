package schema

import (
	"time"
)

// UnstakeRequest status
const (
	UnstakeRequested = "requested"
	UnstakeConfirmed = "confirmed"
)

// UnstakeRequest tracks one outbound unstake through its two-phase
// lifecycle: requested when the delegation bridge asks the external
// service to release stake, confirmed when the matching refund transfer
// shows up and the staked counter has been reconciled. The staked counter
// is never touched at request time.
type UnstakeRequest struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	RequestId string `gorm:"index:idx_unstake_rid,unique" json:"requestId"`
	Owner     string `gorm:"index:idx_unstake_owner" json:"owner"`
	Symbol    string `json:"symbol"`
	Provider  string `json:"provider"`
	Service   string `json:"service"`
	Amount    int64  `json:"amount"`

	Status string `gorm:"index:idx_unstake_status" json:"status"`
}
