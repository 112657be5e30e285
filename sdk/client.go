package sdk

import (
	"errors"
	"fmt"

	"github.com/everFinance/hodlbank/schema"
	"github.com/tidwall/gjson"
	"gopkg.in/h2non/gentleman.v2"
	"gopkg.in/h2non/gentleman.v2/plugins/body"
)

// TokenCli talks to the external fungible-token service that custodies
// the vested tokens and fronts the third-party staking registry. Every
// call is a synchronous request; callers abort their own transaction
// when one fails.
type TokenCli struct {
	SCli *gentleman.Client
}

func NewTokenCli(tokenServiceUrl string) *TokenCli {
	return &TokenCli{
		SCli: gentleman.New().URL(tokenServiceUrl),
	}
}

func (t *TokenCli) Transfer(from, to, symbol, amount, memo string) error {
	return t.post("/transfer", map[string]interface{}{
		"from":   from,
		"to":     to,
		"symbol": symbol,
		"amount": amount,
		"memo":   memo,
	})
}

func (t *TokenCli) StakeTo(contract, owner, provider, service, symbol, amount string) error {
	return t.post("/staketo", map[string]interface{}{
		"contract": contract,
		"owner":    owner,
		"provider": provider,
		"service":  service,
		"symbol":   symbol,
		"amount":   amount,
	})
}

func (t *TokenCli) UnstakeTo(contract, owner, provider, service, symbol, amount string) error {
	return t.post("/unstaketo", map[string]interface{}{
		"contract": contract,
		"owner":    owner,
		"provider": provider,
		"service":  service,
		"symbol":   symbol,
		"amount":   amount,
	})
}

func (t *TokenCli) RefundTo(owner, provider, service, symbolCode string) error {
	return t.post("/refundto", map[string]interface{}{
		"owner":    owner,
		"provider": provider,
		"service":  service,
		"symbol":   symbolCode,
	})
}

// HasAccount reports whether owner already holds an open balance slot
// for symbol on the token service.
func (t *TokenCli) HasAccount(owner, symbol string) (bool, error) {
	req := t.SCli.Get()
	req.AddPath(fmt.Sprintf("/account/%s/%s", owner, symbol))
	resp, err := req.Send()
	if err != nil {
		return false, err
	}
	defer resp.Close()
	if !resp.Ok {
		return false, errors.New(fmt.Sprintf("resp failed: %s", resp.String()))
	}
	return gjson.Get(resp.String(), "exist").Bool(), nil
}

// TxsByAcc returns acct's transfers with rawId greater than afterRawId,
// oldest first.
func (t *TokenCli) TxsByAcc(acct string, afterRawId uint64) ([]schema.TokenTx, error) {
	req := t.SCli.Get()
	req.AddPath(fmt.Sprintf("/txs/%s", acct))
	req.AddQuery("after", fmt.Sprintf("%d", afterRawId))
	resp, err := req.Send()
	if err != nil {
		return nil, err
	}
	defer resp.Close()
	if !resp.Ok {
		return nil, errors.New(fmt.Sprintf("resp failed: %s", resp.String()))
	}

	txs := make([]schema.TokenTx, 0)
	for _, jtx := range gjson.Get(resp.String(), "txs").Array() {
		txs = append(txs, schema.TokenTx{
			RawId:  jtx.Get("rawId").Uint(),
			TxHash: jtx.Get("txHash").String(),
			Nonce:  jtx.Get("nonce").Int(),
			Symbol: jtx.Get("symbol").String(),
			From:   jtx.Get("from").String(),
			To:     jtx.Get("to").String(),
			Amount: jtx.Get("amount").String(),
		})
	}
	return txs, nil
}

func (t *TokenCli) post(path string, payload map[string]interface{}) error {
	req := t.SCli.Post()
	req.AddPath(path)
	req.Use(body.JSON(payload))
	resp, err := req.Send()
	if err != nil {
		return err
	}
	defer resp.Close()
	if !resp.Ok {
		return errors.New(fmt.Sprintf("resp failed: %s", resp.String()))
	}
	return nil
}
