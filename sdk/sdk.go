package sdk

import (
	"errors"
	"fmt"

	"github.com/everFinance/hodlbank/schema"
	"gopkg.in/h2non/gentleman.v2"
	"gopkg.in/h2non/gentleman.v2/plugins/body"
)

// HodlCli is the client SDK for a hodlbank node's own HTTP API. The api
// key identifies the calling principal; role checks happen server side.
type HodlCli struct {
	SCli   *gentleman.Client
	apiKey string
}

func New(hodlUrl, apiKey string) *HodlCli {
	return &HodlCli{
		SCli:   gentleman.New().URL(hodlUrl),
		apiKey: apiKey,
	}
}

func (h *HodlCli) CreateToken(symbol, issuer, maxSupply string) error {
	return h.post("/token", schema.CreateTokenReq{
		Symbol:    symbol,
		Issuer:    issuer,
		MaxSupply: maxSupply,
	})
}

func (h *HodlCli) ActivateToken(symbol string, start, end int64) error {
	return h.post(fmt.Sprintf("/token/%s/activate", symbol), schema.ActivateTokenReq{
		Start: start,
		End:   end,
	})
}

func (h *HodlCli) Issue(symbol, to, quantity, memo string) error {
	return h.post(fmt.Sprintf("/token/%s/issue", symbol), schema.IssueReq{
		To:       to,
		Quantity: quantity,
		Memo:     memo,
	})
}

func (h *HodlCli) Claim(symbol, owner string) error {
	return h.post(fmt.Sprintf("/account/%s/claim", symbol), schema.ClaimReq{
		Owner: owner,
	})
}

func (h *HodlCli) Withdraw(symbol string) error {
	return h.post(fmt.Sprintf("/account/%s/withdraw", symbol), nil)
}

func (h *HodlCli) Stake(symbol, provider, service, quantity string) error {
	return h.post("/stake", schema.StakeReq{
		Symbol:   symbol,
		Provider: provider,
		Service:  service,
		Quantity: quantity,
	})
}

func (h *HodlCli) Unstake(symbol, provider, service, quantity string) error {
	return h.post("/unstake", schema.StakeReq{
		Symbol:   symbol,
		Provider: provider,
		Service:  service,
		Quantity: quantity,
	})
}

func (h *HodlCli) Refund(symbol, provider, service string) error {
	return h.post("/refund", schema.RefundReq{
		Symbol:   symbol,
		Provider: provider,
		Service:  service,
	})
}

func (h *HodlCli) GetToken(symbol string) (res schema.RespToken, err error) {
	err = h.get(fmt.Sprintf("/token/%s", symbol), &res)
	return
}

func (h *HodlCli) GetAccount(owner, symbol string) (res schema.RespAccount, err error) {
	err = h.get(fmt.Sprintf("/account/%s/%s", owner, symbol), &res)
	return
}

func (h *HodlCli) GetInfo() (res schema.RespInfo, err error) {
	err = h.get("/info", &res)
	return
}

func (h *HodlCli) post(path string, payload interface{}) error {
	req := h.SCli.Post()
	req.AddPath(path)
	req.AddHeader("X-API-Key", h.apiKey)
	if payload != nil {
		req.Use(body.JSON(payload))
	}
	resp, err := req.Send()
	if err != nil {
		return err
	}
	defer resp.Close()
	if !resp.Ok {
		respErr := schema.RespErr{}
		if err := resp.JSON(&respErr); err == nil && respErr.Err != "" {
			return respErr
		}
		return errors.New(fmt.Sprintf("resp failed: %s", resp.String()))
	}
	return nil
}

func (h *HodlCli) get(path string, result interface{}) error {
	req := h.SCli.Get()
	req.AddPath(path)
	resp, err := req.Send()
	if err != nil {
		return err
	}
	defer resp.Close()
	if !resp.Ok {
		respErr := schema.RespErr{}
		if err := resp.JSON(&respErr); err == nil && respErr.Err != "" {
			return respErr
		}
		return errors.New(fmt.Sprintf("resp failed: %s", resp.String()))
	}
	return resp.JSON(result)
}
