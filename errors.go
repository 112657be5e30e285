package hodlbank

import (
	"errors"

	"github.com/everFinance/hodlbank/schema"
)

var (
	ErrNotFound = errors.New("not_found")

	// shared with amount/symbol parsing in schema
	ErrInvalidSymbol     = schema.ErrInvalidSymbol
	ErrInvalidAmount     = schema.ErrInvalidAmount
	ErrPrecisionMismatch = schema.ErrPrecisionMismatch

	ErrMemoTooLong = errors.New("memo_too_long")

	ErrTokenExist       = errors.New("token_exist")
	ErrTokenNotExist    = errors.New("token_not_exist")
	ErrAlreadyActivated = errors.New("already_activated")
	ErrVestingWindow    = errors.New("invalid_vesting_window")
	ErrExceedMaxSupply  = errors.New("exceed_max_supply")

	ErrAccountNotExist   = errors.New("account_not_exist")
	ErrAlreadyClaimed    = errors.New("already_claimed")
	ErrOverdrawnBalance  = errors.New("overdrawn_balance")
	ErrOverdrawnStake    = errors.New("overdrawn_stake")
	ErrVestingNotStarted = errors.New("vesting_not_started")
	ErrStakeNotCleared   = errors.New("stake_not_cleared")
	ErrNoDestination     = errors.New("no_destination_balance")

	ErrReceiptNotFound = errors.New("receipt_not_found")

	ErrUnauthorized = errors.New("unauthorized")
	ErrPaused       = errors.New("ledger_paused")
)
