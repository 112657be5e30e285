package hodlbank

import (
	"github.com/shopspring/decimal"
)

// Vesting math. Accrual is never stored incrementally; every operation
// that needs an up-to-date figure recomputes from the absolute
// quantities. All results are truncated towards zero with Floor so the
// same inputs always produce the same raw units.
//
// The elapsed/duration ratio is clamped to [0,1]: before the window
// nothing has vested, after the window everything has, and the
// forfeiture pool can never be driven negative by late withdrawals.

// vestedPrincipal returns floor(allocation * elapsed / duration),
// multiplying before dividing so truncation happens once.
func vestedPrincipal(now, start, end, allocation int64) int64 {
	if start <= 0 || end <= start || now <= start {
		return 0
	}
	if now >= end {
		return allocation
	}
	elapsed := decimal.NewFromInt(now - start)
	duration := decimal.NewFromInt(end - start)
	return decimal.NewFromInt(allocation).Mul(elapsed).Div(duration).Floor().IntPart()
}

// vestedBonus returns the vested slice of the account's proportional
// share of the forfeiture pool:
//
//	floor(pool * (allocation / supply) * elapsed / duration)
func vestedBonus(now, start, end, allocation, pool, supply int64) int64 {
	if start <= 0 || end <= start || now <= start || supply <= 0 || pool <= 0 {
		return 0
	}
	share := decimal.NewFromInt(pool).Mul(decimal.NewFromInt(allocation)).Div(decimal.NewFromInt(supply))
	if now >= end {
		return share.Floor().IntPart()
	}
	elapsed := decimal.NewFromInt(now - start)
	duration := decimal.NewFromInt(end - start)
	return share.Mul(elapsed).Div(duration).Floor().IntPart()
}
