package hodlbank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestAddSubStakeRoundTrip(t *testing.T) {
	b, _ := newVestedBank(t, "alice")

	now := b.nowMs()
	tok, err := b.wdb.GetToken("TEST", nil)
	assert.NoError(t, err)
	acct, err := b.wdb.GetAccount("alice", "TEST", nil)
	assert.NoError(t, err)

	before := acct

	// add then sub with no time elapsed restores the counters exactly
	assert.NoError(t, b.addStake(nil, &tok, &acct, 1000000, now))
	acct, _ = b.wdb.GetAccount("alice", "TEST", nil)
	assert.Equal(t, before.Balance-1000000, acct.Balance)
	assert.Equal(t, int64(1000000), acct.Staked)

	assert.NoError(t, b.subStake(nil, "alice", "TEST", 1000000))
	acct, _ = b.wdb.GetAccount("alice", "TEST", nil)
	assert.Equal(t, before.Balance, acct.Balance)
	assert.Equal(t, before.Staked, acct.Staked)
	assert.Equal(t, before.Allocation, acct.Allocation)
}

func TestAddStakeImplicitClaim(t *testing.T) {
	b, _ := newVestedBank(t, "alice")

	now := b.nowMs()
	tok, _ := b.wdb.GetToken("TEST", nil)
	acct, _ := b.wdb.GetAccount("alice", "TEST", nil)
	assert.False(t, acct.Claimed)
	assert.Equal(t, testIssuer, acct.Payer)

	// staking an unclaimed record claims it under the owner instead of failing
	assert.NoError(t, b.addStake(nil, &tok, &acct, 1, now))
	acct, _ = b.wdb.GetAccount("alice", "TEST", nil)
	assert.True(t, acct.Claimed)
	assert.Equal(t, "alice", acct.Payer)
}

func TestAddStakeOverdrawn(t *testing.T) {
	b, _ := newVestedBank(t, "alice")

	now := b.nowMs()
	tok, _ := b.wdb.GetToken("TEST", nil)
	acct, _ := b.wdb.GetAccount("alice", "TEST", nil)

	// pool is empty so the entitlement is exactly the balance
	err := b.addStake(nil, &tok, &acct, acct.Balance+1, now)
	assert.ErrorIs(t, err, ErrOverdrawnBalance)

	assert.NoError(t, b.addStake(nil, &tok, &acct, acct.Balance, now))
}

func TestSubStakeOverdrawn(t *testing.T) {
	b, _ := newVestedBank(t, "alice")

	err := b.subStake(nil, "alice", "TEST", 1)
	assert.ErrorIs(t, err, ErrOverdrawnStake)

	err = b.subStake(nil, "nobody", "TEST", 1)
	assert.ErrorIs(t, err, ErrAccountNotExist)
}

func TestClaim(t *testing.T) {
	b, _ := newVestedBank(t, "alice")

	err := b.Claim("bob.payer", testSymbol, "nobody")
	assert.ErrorIs(t, err, ErrAccountNotExist)

	assert.NoError(t, b.Claim("bob.payer", testSymbol, "alice"))
	acct, _ := b.wdb.GetAccount("alice", "TEST", nil)
	assert.True(t, acct.Claimed)
	assert.Equal(t, "bob.payer", acct.Payer)
	// financial quantities untouched
	assert.Equal(t, int64(10000000), acct.Allocation)
	assert.Equal(t, int64(10000000), acct.Balance)

	// one-way
	err = b.Claim("carol.payer", testSymbol, "alice")
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
}

func TestWithdrawHalfway(t *testing.T) {
	b, svc := newVestedBank(t, "alice")

	// ratio 0.5, empty pool: exactly half the allocation pays out
	assert.NoError(t, b.Withdraw("alice", testSymbol))

	assert.Equal(t, []string{"hodl.contract->alice TEST,4 500.0000"}, svc.transferCalls)

	tok, err := b.wdb.GetToken("TEST", nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(5000000), tok.Supply)
	assert.Equal(t, int64(5000000), tok.ForfeiturePool)

	// the record is erased, not zeroed
	_, err = b.wdb.GetAccount("alice", "TEST", nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestWithdrawPreconditions(t *testing.T) {
	b, _ := newTestBank(t)
	assert.NoError(t, b.CreateToken(testAdminAddr, testSymbol, testIssuer, testMaxSupply))
	assert.NoError(t, b.Issue(testIssuer, testSymbol, "alice", "1000.0000", ""))

	// not activated
	err := b.Withdraw("alice", testSymbol)
	assert.ErrorIs(t, err, ErrVestingNotStarted)

	// activated but before the window opens
	assert.NoError(t, b.ActivateToken(testIssuer, testSymbol, testStart, testEnd))
	err = b.Withdraw("alice", testSymbol)
	assert.ErrorIs(t, err, ErrVestingNotStarted)

	b.now = func() int64 { return testStart + testDuration/2 }

	// nonzero stake blocks withdrawal deterministically
	tok, _ := b.wdb.GetToken("TEST", nil)
	acct, _ := b.wdb.GetAccount("alice", "TEST", nil)
	assert.NoError(t, b.addStake(nil, &tok, &acct, 1, b.nowMs()))
	err = b.Withdraw("alice", testSymbol)
	assert.ErrorIs(t, err, ErrStakeNotCleared)
	assert.NoError(t, b.subStake(nil, "alice", "TEST", 1))

	err = b.Withdraw("nobody", testSymbol)
	assert.ErrorIs(t, err, ErrAccountNotExist)
}

func TestWithdrawNoDestinationRollsBack(t *testing.T) {
	b, svc := newVestedBank(t, "alice")
	svc.hasAccount = false

	err := b.Withdraw("alice", testSymbol)
	assert.ErrorIs(t, err, ErrNoDestination)

	// nothing committed
	tok, _ := b.wdb.GetToken("TEST", nil)
	assert.Equal(t, int64(10000000), tok.Supply)
	assert.Equal(t, int64(0), tok.ForfeiturePool)
	acct, err := b.wdb.GetAccount("alice", "TEST", nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(10000000), acct.Balance)
	assert.Empty(t, svc.transferCalls)
}

// later withdrawers share the forfeiture pool left behind by earlier ones
func TestWithdrawBonusFromForfeiturePool(t *testing.T) {
	b, svc := newTestBank(t)
	assert.NoError(t, b.CreateToken(testAdminAddr, testSymbol, testIssuer, "2000.0000"))
	assert.NoError(t, b.ActivateToken(testIssuer, testSymbol, testStart, testEnd))
	assert.NoError(t, b.Issue(testIssuer, testSymbol, "alice", "1000.0000", ""))
	assert.NoError(t, b.Issue(testIssuer, testSymbol, "bob", "1000.0000", ""))

	// alice withdraws halfway and forfeits 500.0000
	b.now = func() int64 { return testStart + testDuration/2 }
	assert.NoError(t, b.Withdraw("alice", testSymbol))

	tok, _ := b.wdb.GetToken("TEST", nil)
	assert.Equal(t, int64(15000000), tok.Supply)
	assert.Equal(t, int64(5000000), tok.ForfeiturePool)

	// bob at 3/4 of the window: principal 750.0000 plus
	// bonus floor(0.75 * pool * alloc/supply) = floor(0.75 * 5000000 * 2/3)
	b.now = func() int64 { return testStart + testDuration*3/4 }
	assert.NoError(t, b.Withdraw("bob", testSymbol))

	assert.Equal(t, "hodl.contract->bob TEST,4 1000.0000", svc.transferCalls[len(svc.transferCalls)-1])
}
