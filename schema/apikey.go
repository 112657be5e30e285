package schema

import (
	"time"

	"gorm.io/datatypes"
)

// ApiKey maps an API key to the principal address it authenticates.
// Every mutating entry point resolves the caller through this table and
// then checks the caller against the operation's required role.
type ApiKey struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ApiKey  string `gorm:"index:idx_apikey_key,unique" json:"-"`
	Address string `gorm:"index:idx_apikey_addr,unique" json:"address"`

	Meta datatypes.JSONMap `json:"meta"`
}
