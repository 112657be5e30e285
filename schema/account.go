package schema

import (
	"time"
)

// Account is the per-(owner, symbol) ledger record. Allocation is fixed by
// the first credit and never raised afterwards; later credits only add to
// Balance. Payer is whoever bears the record's storage-lifecycle cost,
// starting as the issuer and handed over by a claim.
type Account struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Owner  string `gorm:"index:idx_account_owner_symbol,unique" json:"owner"`
	Symbol string `gorm:"index:idx_account_owner_symbol,unique;index:idx_account_symbol" json:"symbol"`

	Allocation int64 `json:"allocation"`
	Balance    int64 `json:"balance"`
	Staked     int64 `json:"staked"`

	Claimed bool   `json:"claimed"`
	Payer   string `json:"payer"`
}
