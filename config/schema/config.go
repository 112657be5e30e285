package schema

// Param is the singleton row of runtime-tunable settings. LedgerPaused
// is the operational kill switch for all mutating endpoints.
type Param struct {
	ID           uint `gorm:"primarykey"`
	LedgerPaused bool
}

type IpRateWhitelist struct {
	ID          uint   `gorm:"primarykey"`
	OriginOrIP  string // e.g "188.0.2.2"
	Available   bool   `gorm:"index:idx3"` // true means effective
	Description string
}
