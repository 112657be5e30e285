package hodlbank

import (
	"fmt"
	"testing"

	"github.com/everFinance/hodlbank/schema"
	"github.com/stretchr/testify/assert"
)

const (
	testContractAcct = "hodl.contract"
	testAdminAddr    = "hodl.admin"
	testIssuer       = "hodl.issuer"

	testSymbol    = "TEST,4"
	testNow       = int64(1700000000000) // unix ms
	testStart     = testNow + 1000
	testDuration  = int64(100000)
	testEnd       = testStart + testDuration
	testMaxSupply = "1000.0000"
)

type fakeTokenService struct {
	transferErr  error
	stakeToErr   error
	unstakeToErr error
	refundToErr  error
	hasAccount   bool
	txs          []schema.TokenTx

	transferCalls []string
	stakeCalls    []string
	unstakeCalls  []string
	refundCalls   []string
}

func (f *fakeTokenService) Transfer(from, to, symbol, amount, memo string) error {
	if f.transferErr != nil {
		return f.transferErr
	}
	f.transferCalls = append(f.transferCalls, fmt.Sprintf("%s->%s %s %s", from, to, symbol, amount))
	return nil
}

func (f *fakeTokenService) StakeTo(contract, owner, provider, service, symbol, amount string) error {
	if f.stakeToErr != nil {
		return f.stakeToErr
	}
	f.stakeCalls = append(f.stakeCalls, fmt.Sprintf("%s %s/%s %s %s", owner, provider, service, symbol, amount))
	return nil
}

func (f *fakeTokenService) UnstakeTo(contract, owner, provider, service, symbol, amount string) error {
	if f.unstakeToErr != nil {
		return f.unstakeToErr
	}
	f.unstakeCalls = append(f.unstakeCalls, fmt.Sprintf("%s %s/%s %s %s", owner, provider, service, symbol, amount))
	return nil
}

func (f *fakeTokenService) RefundTo(owner, provider, service, symbolCode string) error {
	if f.refundToErr != nil {
		return f.refundToErr
	}
	f.refundCalls = append(f.refundCalls, fmt.Sprintf("%s %s/%s %s", owner, provider, service, symbolCode))
	return nil
}

func (f *fakeTokenService) HasAccount(owner, symbol string) (bool, error) {
	return f.hasAccount, nil
}

func (f *fakeTokenService) TxsByAcc(acct string, afterRawId uint64) ([]schema.TokenTx, error) {
	txs := make([]schema.TokenTx, 0)
	for _, tt := range f.txs {
		if tt.RawId > afterRawId {
			txs = append(txs, tt)
		}
	}
	return txs, nil
}

func newTestBank(t *testing.T) (*HodlBank, *fakeTokenService) {
	dir := t.TempDir()
	wdb := NewSqliteDb(dir)
	err := wdb.Migrate()
	assert.NoError(t, err)
	kv, err := NewBoltStore(dir)
	assert.NoError(t, err)

	svc := &fakeTokenService{hasAccount: true}
	b := &HodlBank{
		wdb:          wdb,
		store:        kv,
		cache:        NewCache(),
		tokenCli:     svc,
		contractAcct: testContractAcct,
		adminAddr:    testAdminAddr,
		now:          func() int64 { return testNow },
	}
	t.Cleanup(func() {
		wdb.Close()
		kv.Close()
	})
	return b, svc
}

// newVestedBank returns a bank with TEST,4 created, activated and
// 1000.0000 issued to owner; clock parked halfway through the window.
func newVestedBank(t *testing.T, owner string) (*HodlBank, *fakeTokenService) {
	b, svc := newTestBank(t)
	assert.NoError(t, b.CreateToken(testAdminAddr, testSymbol, testIssuer, testMaxSupply))
	assert.NoError(t, b.ActivateToken(testIssuer, testSymbol, testStart, testEnd))
	assert.NoError(t, b.Issue(testIssuer, testSymbol, owner, "1000.0000", "genesis"))
	b.now = func() int64 { return testStart + testDuration/2 }
	return b, svc
}
