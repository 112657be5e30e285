package schema

// LedgerEvent action
const (
	EventCreate           = "create"
	EventActivate         = "activate"
	EventIssue            = "issue"
	EventClaim            = "claim"
	EventStake            = "stake"
	EventUnstakeRequested = "unstake_requested"
	EventUnstakeConfirmed = "unstake_confirmed"
	EventWithdraw         = "withdraw"
)

// LedgerEvent is the journal entry published to kafka after a ledger
// mutation commits. It is a side channel only, never part of the
// transaction itself.
type LedgerEvent struct {
	Action    string `json:"action"`
	Owner     string `json:"owner"`
	Symbol    string `json:"symbol"`
	Amount    string `json:"amount"`
	Timestamp int64  `json:"timestamp"` // unix ms
}
