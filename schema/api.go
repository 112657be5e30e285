package schema

const MaxMemoBytes = 256

type CreateTokenReq struct {
	Symbol    string `json:"symbol"`    // "HODL,4"
	Issuer    string `json:"issuer"`
	MaxSupply string `json:"maxSupply"` // "1000.0000"
}

type ActivateTokenReq struct {
	Start int64 `json:"start"` // unix ms
	End   int64 `json:"end"`
}

type IssueReq struct {
	To       string `json:"to"`
	Quantity string `json:"quantity"`
	Memo     string `json:"memo"`
}

type ClaimReq struct {
	Owner string `json:"owner"`
}

type StakeReq struct {
	Symbol   string `json:"symbol"` // "HODL,4"
	Provider string `json:"provider"`
	Service  string `json:"service"`
	Quantity string `json:"quantity"`
}

type RefundReq struct {
	Symbol   string `json:"symbol"`
	Provider string `json:"provider"`
	Service  string `json:"service"`
}

// ReceiptNotification is the push-style callback from the token service
// when a transfer sent by the contract account completes. The same
// payload shape comes back from polling TxsByAcc.
type ReceiptNotification struct {
	RawId  uint64 `json:"rawId"`
	TxHash string `json:"txHash"`
	Nonce  int64  `json:"nonce"`
	Symbol string `json:"symbol"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type RespToken struct {
	Symbol         string `json:"symbol"`
	Precision      int    `json:"precision"`
	Issuer         string `json:"issuer"`
	MaxSupply      string `json:"maxSupply"`
	Supply         string `json:"supply"`
	ForfeiturePool string `json:"forfeiturePool"`
	VestingStart   int64  `json:"vestingStart"`
	VestingEnd     int64  `json:"vestingEnd"`
}

type RespAccount struct {
	Owner      string `json:"owner"`
	Symbol     string `json:"symbol"`
	Allocation string `json:"allocation"`
	Balance    string `json:"balance"`
	Staked     string `json:"staked"`
	Claimed    bool   `json:"claimed"`
	Payer      string `json:"payer"`
}

type RespInfo struct {
	ContractAcct string   `json:"contractAcct"`
	Admin        string   `json:"admin"`
	Symbols      []string `json:"symbols"`
}

type RespErr struct {
	Err string `json:"error"`
}

func (r RespErr) Error() string {
	return r.Err
}
