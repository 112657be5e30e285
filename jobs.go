package hodlbank

import (
	"github.com/everFinance/hodlbank/schema"
)

func (s *HodlBank) runJobs() {
	s.scheduler.Every(3).Seconds().SingletonMode().Do(s.watcherReceiptTxs)
	s.scheduler.Every(5).Seconds().SingletonMode().Do(s.mergeReceiptAndUnstake)
	s.scheduler.Every(1).Minute().SingletonMode().Do(s.updateStats)

	s.scheduler.StartAsync()
}

// watcherReceiptTxs polls the token service for transfers sent by the
// contract account and persists them for reconciliation. The poll cursor
// lives in bolt; the unique tx hash index drops anything seen twice.
func (s *HodlBank) watcherReceiptTxs() {
	cursor, err := s.store.LoadReceiptCursor()
	if err != nil {
		log.Error("s.store.LoadReceiptCursor()", "err", err)
		return
	}
	txs, err := s.tokenCli.TxsByAcc(s.contractAcct, cursor)
	if err != nil {
		log.Error("s.tokenCli.TxsByAcc(s.contractAcct, cursor)", "err", err, "cursor", cursor)
		return
	}
	if len(txs) == 0 {
		return
	}

	records := make([]schema.ReceiptTokenTx, 0, len(txs))
	maxRawId := cursor
	for _, tt := range txs {
		// the cursor advances over everything polled, kept or not
		if tt.RawId > maxRawId {
			maxRawId = tt.RawId
		}
		if tt.From != s.contractAcct {
			continue
		}
		records = append(records, schema.ReceiptTokenTx{
			RawId:  tt.RawId,
			TxHash: tt.TxHash,
			Nonce:  tt.Nonce,
			Symbol: tt.Symbol,
			From:   tt.From,
			To:     tt.To,
			Amount: tt.Amount,
			Status: schema.UnSpent,
		})
	}
	if len(records) > 0 {
		if err := s.wdb.InsertReceipts(records); err != nil {
			log.Error("s.wdb.InsertReceipts(records)", "err", err)
			return
		}
	}
	if maxRawId > cursor {
		if err := s.store.UpdateReceiptCursor(maxRawId); err != nil {
			log.Error("s.store.UpdateReceiptCursor(maxRawId)", "err", err, "rawId", maxRawId)
		}
	}
}

// mergeReceiptAndUnstake settles unspent receipts against requested
// unstakes, one receipt at a time.
func (s *HodlBank) mergeReceiptAndUnstake() {
	unspentReceipts, err := s.wdb.GetReceiptsByStatus(schema.UnSpent)
	if err != nil {
		log.Error("s.wdb.GetReceiptsByStatus(schema.UnSpent)", "err", err)
		return
	}
	for _, rt := range unspentReceipts {
		if err := s.processReceipt(rt); err != nil {
			log.Error("s.processReceipt(rt)", "err", err, "txHash", rt.TxHash)
		}
	}
}

// updateStats refreshes the per-symbol gauges and the registry cache.
func (s *HodlBank) updateStats() {
	toks, err := s.wdb.GetTokens()
	if err != nil {
		log.Error("s.wdb.GetTokens()", "err", err)
		return
	}
	for _, tok := range toks {
		accts, err := s.wdb.GetAccountsBySymbol(tok.Symbol)
		if err != nil {
			log.Error("s.wdb.GetAccountsBySymbol(tok.Symbol)", "err", err, "symbol", tok.Symbol)
			continue
		}
		totalStaked := int64(0)
		for _, acct := range accts {
			totalStaked += acct.Staked
		}
		metricTokenStats(tok, totalStaked)

		if err := s.cache.SetToken(tokenResp(tok)); err != nil {
			log.Error("s.cache.SetToken(tokenResp(tok))", "err", err, "symbol", tok.Symbol)
		}
	}
}
