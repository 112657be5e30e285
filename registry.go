package hodlbank

import (
	"errors"

	"github.com/everFinance/hodlbank/schema"
	"gorm.io/gorm"
)

// CreateToken registers a new symbol. Only the service's administrative
// identity may register; the issuer named here controls activation and
// issuance afterwards.
func (s *HodlBank) CreateToken(caller, symbolStr, issuer, maxSupplyStr string) error {
	if caller != s.adminAddr {
		return ErrUnauthorized
	}
	sym, err := schema.ParseSymbol(symbolStr)
	if err != nil {
		return ErrInvalidSymbol
	}
	maxSupply, err := schema.ParseAmount(maxSupplyStr, sym.Precision)
	if err != nil {
		return err
	}
	if maxSupply <= 0 {
		return ErrInvalidAmount
	}
	if issuer == "" {
		return ErrUnauthorized
	}

	s.ledgerLocker.Lock()
	defer s.ledgerLocker.Unlock()

	_, err = s.wdb.GetToken(sym.Code, nil)
	if err == nil {
		return ErrTokenExist
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	tok := &schema.Token{
		Symbol:    sym.Code,
		Precision: sym.Precision,
		Issuer:    issuer,
		MaxSupply: maxSupply,
	}
	if err = s.wdb.CreateToken(tok); err != nil {
		return err
	}
	s.publishEvent(schema.EventCreate, issuer, sym, maxSupply)
	return nil
}

// ActivateToken sets the vesting window exactly once. The window must lie
// strictly in the future and end after it starts.
func (s *HodlBank) ActivateToken(caller, symbolStr string, start, end int64) error {
	sym, err := schema.ParseSymbol(symbolStr)
	if err != nil {
		return ErrInvalidSymbol
	}

	s.ledgerLocker.Lock()
	defer s.ledgerLocker.Unlock()

	tok, err := s.wdb.GetToken(sym.Code, nil)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenNotExist
		}
		return err
	}
	if caller != tok.Issuer {
		return ErrUnauthorized
	}
	if tok.Activated() {
		return ErrAlreadyActivated
	}
	if start <= s.nowMs() || end <= start {
		return ErrVestingWindow
	}

	if err = s.wdb.UpdateTokenVesting(tok.ID, start, end, nil); err != nil {
		return err
	}
	s.cache.DeleteToken(sym.Code)
	s.publishEvent(schema.EventActivate, tok.Issuer, sym, 0)
	return nil
}

// Issue mints quantity to an account, never past MaxSupply. The first
// credit fixes the account's allocation; later credits only raise its
// balance.
func (s *HodlBank) Issue(caller, symbolStr, to, quantityStr, memo string) error {
	sym, err := schema.ParseSymbol(symbolStr)
	if err != nil {
		return ErrInvalidSymbol
	}
	if len(memo) > schema.MaxMemoBytes {
		return ErrMemoTooLong
	}

	s.ledgerLocker.Lock()
	defer s.ledgerLocker.Unlock()

	tok, err := s.wdb.GetToken(sym.Code, nil)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenNotExist
		}
		return err
	}
	if caller != tok.Issuer {
		return ErrUnauthorized
	}
	if sym.Precision != tok.Precision {
		return ErrPrecisionMismatch
	}
	quantity, err := schema.ParseAmount(quantityStr, tok.Precision)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		return ErrInvalidAmount
	}
	if quantity > tok.MaxSupply-tok.Supply {
		return ErrExceedMaxSupply
	}

	dbTx := s.wdb.Db.Begin()
	if err = s.wdb.UpdateTokenSupply(tok.ID, tok.Supply+quantity, tok.ForfeiturePool, dbTx); err != nil {
		dbTx.Rollback()
		return err
	}
	if err = s.addBalance(dbTx, to, sym.Code, quantity, tok.Issuer); err != nil {
		dbTx.Rollback()
		return err
	}
	if err = dbTx.Commit().Error; err != nil {
		return err
	}
	s.cache.DeleteToken(sym.Code)
	s.publishEvent(schema.EventIssue, to, sym, quantity)
	return nil
}
