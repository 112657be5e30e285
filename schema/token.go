package schema

import (
	"time"
)

// Token is the per-symbol registry record. Supply and ForfeiturePool are
// raw ledger units at Precision. VestingStart/VestingEnd are unix ms and
// stay zero until the issuer activates the vesting window.
type Token struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Symbol    string `gorm:"index:idx_token_symbol,unique" json:"symbol"` // e.g. "HODL"
	Precision int    `json:"precision"`
	Issuer    string `json:"issuer"`

	MaxSupply      int64 `json:"maxSupply"`
	Supply         int64 `json:"supply"`
	ForfeiturePool int64 `json:"forfeiturePool"`

	VestingStart int64 `json:"vestingStart"` // unix ms, 0 means not activated
	VestingEnd   int64 `json:"vestingEnd"`
}

func (t *Token) Activated() bool {
	return t.VestingStart > 0
}
