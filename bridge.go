package hodlbank

import (
	"errors"

	"github.com/everFinance/hodlbank/schema"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenService is the outbound surface of the external fungible-token
// service that actually holds and moves the tokens. Every call is
// synchronous; a failure aborts the surrounding ledger transaction.
type TokenService interface {
	Transfer(from, to, symbol, amount, memo string) error
	StakeTo(contract, owner, provider, service, symbol, amount string) error
	UnstakeTo(contract, owner, provider, service, symbol, amount string) error
	RefundTo(owner, provider, service, symbolCode string) error
	HasAccount(owner, symbol string) (bool, error)
	TxsByAcc(acct string, afterRawId uint64) ([]schema.TokenTx, error)
}

// Stake debits the local ledger first (addStake enforces availability)
// and then delegates the quantity to (provider, service) through the
// token service. Both sides commit or neither does.
func (s *HodlBank) Stake(caller, symbolStr, provider, service, quantityStr string) error {
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
	if sym.Precision != tok.Precision {
		dbTx.Rollback()
		return ErrPrecisionMismatch
	}
	quantity, err := schema.ParseAmount(quantityStr, tok.Precision)
	if err != nil {
		dbTx.Rollback()
		return err
	}
	if quantity <= 0 {
		dbTx.Rollback()
		return ErrInvalidAmount
	}
	acct, err := s.wdb.GetAccount(owner, sym.Code, dbTx)
	if err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotExist
		}
		return err
	}

	if err = s.addStake(dbTx, &tok, &acct, quantity, now); err != nil {
		dbTx.Rollback()
		return err
	}
	if err = s.tokenCli.StakeTo(s.contractAcct, owner, provider, service, sym.String(), quantityStr); err != nil {
		dbTx.Rollback()
		return err
	}
	if err = dbTx.Commit().Error; err != nil {
		return err
	}
	s.publishEvent(schema.EventStake, owner, sym, quantity)
	return nil
}

// Unstake asks the external service to release stake. No local
// sufficiency check and no counter change here: the service is the
// authority on whether enough stake exists, and the staked counter is
// only reconciled when the refund transfer comes back (processReceipt).
func (s *HodlBank) Unstake(caller, symbolStr, provider, service, quantityStr string) error {
	owner := caller
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

	dbTx := s.wdb.Db.Begin()
	if err = s.wdb.InsertUnstake(&schema.UnstakeRequest{
		RequestId: uuid.NewString(),
		Owner:     owner,
		Symbol:    sym.Code,
		Provider:  provider,
		Service:   service,
		Amount:    quantity,
		Status:    schema.UnstakeRequested,
	}, dbTx); err != nil {
		dbTx.Rollback()
		return err
	}
	if err = s.tokenCli.UnstakeTo(s.contractAcct, owner, provider, service, sym.String(), quantityStr); err != nil {
		dbTx.Rollback()
		return err
	}
	if err = dbTx.Commit().Error; err != nil {
		return err
	}
	s.publishEvent(schema.EventUnstakeRequested, owner, sym, quantity)
	return nil
}

// Refund is a pure pass-through to the external service, no local state.
func (s *HodlBank) Refund(caller, symbolStr, provider, service string) error {
	sym, err := schema.ParseSymbol(symbolStr)
	if err != nil {
		return ErrInvalidSymbol
	}
	return s.tokenCli.RefundTo(caller, provider, service, sym.Code)
}

// NotifyReceipt accepts a push-style transfer notification and persists
// it for reconciliation; the merge job consumes it like any polled
// receipt. The payload arrives unauthenticated, so every field is
// confirmed against the token service's own transfer log before the row
// is stored; a notification the service cannot vouch for settles
// nothing. The unique tx hash makes duplicated notifications no-ops.
func (s *HodlBank) NotifyReceipt(nt schema.ReceiptNotification) error {
	if nt.TxHash == "" {
		return ErrNotFound
	}
	after := uint64(0)
	if nt.RawId > 0 {
		after = nt.RawId - 1
	}
	txs, err := s.tokenCli.TxsByAcc(s.contractAcct, after)
	if err != nil {
		return err
	}
	verified := false
	for _, tt := range txs {
		if tt.RawId == nt.RawId && tt.TxHash == nt.TxHash && tt.From == nt.From &&
			tt.To == nt.To && tt.Symbol == nt.Symbol && tt.Amount == nt.Amount {
			verified = true
			break
		}
	}
	if !verified {
		return ErrReceiptNotFound
	}
	return s.wdb.InsertReceipts([]schema.ReceiptTokenTx{
		{
			RawId:  nt.RawId,
			TxHash: nt.TxHash,
			Nonce:  nt.Nonce,
			Symbol: nt.Symbol,
			From:   nt.From,
			To:     nt.To,
			Amount: nt.Amount,
			Status: schema.UnSpent,
		},
	})
}

// processReceipt settles one watched transfer. A transfer sent by the
// contract account is how the bridge learns a requested unstake has
// completed: it consumes exactly one requested row, moves the amount
// from staked back to balance and marks the receipt spent. Anything that
// cannot be matched is marked invalid and never touches the ledger.
func (s *HodlBank) processReceipt(rt schema.ReceiptTokenTx) error {
	if rt.From != s.contractAcct {
		return s.wdb.UpdateReceiptStatus(rt.ID, schema.Invalid, nil)
	}
	if s.store.IsProcessedReceipt(rt.TxHash) {
		return s.wdb.UpdateReceiptStatus(rt.ID, schema.Spent, nil)
	}

	tok, err := s.wdb.GetToken(rt.Symbol, nil)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.wdb.UpdateReceiptStatus(rt.ID, schema.Invalid, nil)
		}
		return err
	}
	amount, err := schema.ParseAmount(rt.Amount, tok.Precision)
	if err != nil || amount <= 0 {
		return s.wdb.UpdateReceiptStatus(rt.ID, schema.Invalid, nil)
	}

	s.ledgerLocker.Lock()
	defer s.ledgerLocker.Unlock()

	dbTx := s.wdb.Db.Begin()
	req, err := s.wdb.GetRequestedUnstake(rt.To, rt.Symbol, amount, dbTx)
	if err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("receipt without matching unstake request", "txHash", rt.TxHash, "owner", rt.To, "symbol", rt.Symbol)
			return s.wdb.UpdateReceiptStatus(rt.ID, schema.Invalid, nil)
		}
		return err
	}
	if err = s.subStake(dbTx, rt.To, rt.Symbol, amount); err != nil {
		dbTx.Rollback()
		return err
	}
	if err = s.wdb.UpdateUnstakeStatus(req.ID, schema.UnstakeConfirmed, dbTx); err != nil {
		dbTx.Rollback()
		return err
	}
	if err = s.wdb.UpdateReceiptStatus(rt.ID, schema.Spent, dbTx); err != nil {
		dbTx.Rollback()
		return err
	}
	if err = dbTx.Commit().Error; err != nil {
		return err
	}

	if err = s.store.SaveProcessedReceipt(rt.TxHash); err != nil {
		log.Error("s.store.SaveProcessedReceipt(rt.TxHash)", "err", err, "txHash", rt.TxHash)
	}
	s.publishEvent(schema.EventUnstakeConfirmed, rt.To, schema.Symbol{Code: tok.Symbol, Precision: tok.Precision}, amount)
	return nil
}
