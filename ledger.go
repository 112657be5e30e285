package hodlbank

import (
	"errors"

	"github.com/everFinance/hodlbank/schema"
	"gorm.io/gorm"
)

const withdrawMemo = "Withdrawal from hodlbank"

// addBalance credits an account inside dbTx. A fresh record gets
// allocation == balance == quantity with the issuer as storage payer; an
// existing record only has its balance raised; allocation is fixed by
// the first credit.
func (s *HodlBank) addBalance(dbTx *gorm.DB, to, symbol string, quantity int64, payer string) error {
	acct, err := s.wdb.GetAccount(to, symbol, dbTx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return s.wdb.CreateAccount(&schema.Account{
			Owner:      to,
			Symbol:     symbol,
			Allocation: quantity,
			Balance:    quantity,
			Staked:     0,
			Claimed:    false,
			Payer:      payer,
		}, dbTx)
	}
	return s.wdb.UpdateAccountBalance(acct.ID, acct.Balance+quantity, dbTx)
}

// addStake moves amount from available balance to staked, first
// materializing any bonus accrued since the last mutation:
//
//	diff = (allocation + vestedBonus) - (balance + staked)
//
// is what the account is entitled to but not yet reflected in its
// counters. Staking an unclaimed record also performs the one-way claim
// under the owner, instead of failing.
func (s *HodlBank) addStake(dbTx *gorm.DB, tok *schema.Token, acct *schema.Account, amount, now int64) error {
	bonus := int64(0)
	if tok.Activated() {
		bonus = vestedBonus(now, tok.VestingStart, tok.VestingEnd, acct.Allocation, tok.ForfeiturePool, tok.Supply)
	}

	diff := acct.Allocation + bonus - (acct.Balance + acct.Staked)
	if acct.Balance+diff < amount {
		return ErrOverdrawnBalance
	}

	if err := s.wdb.UpdateAccountLedger(acct.ID, acct.Balance+diff-amount, acct.Staked+amount, dbTx); err != nil {
		return err
	}
	if !acct.Claimed {
		return s.wdb.UpdateAccountClaim(acct.ID, acct.Owner, dbTx)
	}
	return nil
}

// subStake returns previously staked amount to available balance. Only
// invoked once the external service has confirmed the release.
func (s *HodlBank) subStake(dbTx *gorm.DB, owner, symbol string, amount int64) error {
	acct, err := s.wdb.GetAccount(owner, symbol, dbTx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotExist
		}
		return err
	}
	if acct.Staked < amount {
		return ErrOverdrawnStake
	}
	return s.wdb.UpdateAccountLedger(acct.ID, acct.Balance+amount, acct.Staked-amount, dbTx)
}

// Claim hands the record's storage-lifecycle cost over to the caller.
// One-way, no financial quantity changes.
func (s *HodlBank) Claim(caller, symbolStr, owner string) error {
	sym, err := schema.ParseSymbol(symbolStr)
	if err != nil {
		return ErrInvalidSymbol
	}

	s.ledgerLocker.Lock()
	defer s.ledgerLocker.Unlock()

	acct, err := s.wdb.GetAccount(owner, sym.Code, nil)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotExist
		}
		return err
	}
	if acct.Claimed {
		return ErrAlreadyClaimed
	}
	if err = s.wdb.UpdateAccountClaim(acct.ID, caller, nil); err != nil {
		return err
	}
	s.publishEvent(schema.EventClaim, owner, sym, 0)
	return nil
}

// Withdraw pays out the vested principal plus vested bonus, forfeits the
// rest into the pool and erases the account. The outbound transfer runs
// before commit, so a failed transfer leaves no local mutation behind.
func (s *HodlBank) Withdraw(caller, symbolStr string) error {
	owner := caller
	sym, err := schema.ParseSymbol(symbolStr)
	if err != nil {
		return ErrInvalidSymbol
	}

	s.ledgerLocker.Lock()
	defer s.ledgerLocker.Unlock()

	now := s.nowMs()

	dbTx := s.wdb.Db.Begin()
	tok, err := s.wdb.GetToken(sym.Code, dbTx)
	if err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenNotExist
		}
		return err
	}
	if !tok.Activated() || now < tok.VestingStart {
		dbTx.Rollback()
		return ErrVestingNotStarted
	}

	acct, err := s.wdb.GetAccount(owner, sym.Code, dbTx)
	if err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotExist
		}
		return err
	}
	if acct.Staked != 0 {
		dbTx.Rollback()
		return ErrStakeNotCleared
	}

	principal := vestedPrincipal(now, tok.VestingStart, tok.VestingEnd, acct.Allocation)
	bonus := vestedBonus(now, tok.VestingStart, tok.VestingEnd, acct.Allocation, tok.ForfeiturePool, tok.Supply)
	payout := principal + bonus
	forfeited := acct.Allocation - principal

	if err = s.wdb.UpdateTokenSupply(tok.ID, tok.Supply-payout, tok.ForfeiturePool+forfeited-bonus, dbTx); err != nil {
		dbTx.Rollback()
		return err
	}
	if err = s.wdb.DeleteAccount(acct.ID, dbTx); err != nil {
		dbTx.Rollback()
		return err
	}

	// the owner must already hold an open balance slot on the token service
	exist, err := s.tokenCli.HasAccount(owner, sym.String())
	if err != nil {
		dbTx.Rollback()
		return err
	}
	if !exist {
		dbTx.Rollback()
		return ErrNoDestination
	}
	if err = s.tokenCli.Transfer(s.contractAcct, owner, sym.String(),
		schema.FormatAmount(payout, tok.Precision), withdrawMemo); err != nil {
		dbTx.Rollback()
		return err
	}

	if err = dbTx.Commit().Error; err != nil {
		return err
	}
	s.cache.DeleteToken(sym.Code)
	s.publishEvent(schema.EventWithdraw, owner, sym, payout)
	return nil
}
