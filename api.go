package hodlbank

import (
	"errors"
	"net/http"

	"github.com/everFinance/hodlbank/common"
	"github.com/everFinance/hodlbank/schema"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (s *HodlBank) runAPI(port string) {
	r := s.engine
	r.Use(common.CORSMiddleware())
	if s.config != nil {
		r.Use(common.LimiterMiddleware(6000, "M", s.config.GetIPWhiteList()))
	}

	v1 := r.Group("/")
	{
		v1.GET("/info", s.getInfo)
		v1.GET("/token/:symbol", s.getToken)
		v1.GET("/account/:owner/:symbol", s.getAccount)

		// push-style receipt notification from the token service
		v1.POST("/receipt", s.postReceipt)

		auth := v1.Group("/", s.callerMiddleware(), s.pauseMiddleware())
		{
			auth.POST("/token", s.postCreateToken)
			auth.POST("/token/:symbol/activate", s.postActivateToken)
			auth.POST("/token/:symbol/issue", s.postIssue)
			auth.POST("/account/:symbol/claim", s.postClaim)
			auth.POST("/account/:symbol/withdraw", s.postWithdraw)
			auth.POST("/stake", s.postStake)
			auth.POST("/unstake", s.postUnstake)
			auth.POST("/refund", s.postRefund)
		}
	}

	if err := r.Run(port); err != nil {
		panic(err)
	}
}

func (s *HodlBank) getInfo(c *gin.Context) {
	toks, err := s.wdb.GetTokens()
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}
	symbols := make([]string, 0, len(toks))
	for _, tok := range toks {
		symbols = append(symbols, schema.Symbol{Code: tok.Symbol, Precision: tok.Precision}.String())
	}
	c.JSON(http.StatusOK, schema.RespInfo{
		ContractAcct: s.contractAcct,
		Admin:        s.adminAddr,
		Symbols:      symbols,
	})
}

func (s *HodlBank) getToken(c *gin.Context) {
	sym, err := schema.ParseSymbol(c.Param("symbol"))
	if err != nil {
		errorResponse(c, ErrInvalidSymbol.Error())
		return
	}
	if res, ok := s.cache.GetToken(sym.Code); ok {
		c.JSON(http.StatusOK, res)
		return
	}
	tok, err := s.wdb.GetToken(sym.Code, nil)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errorResponse(c, ErrTokenNotExist.Error())
		} else {
			internalErrorResponse(c, err.Error())
		}
		return
	}
	res := tokenResp(tok)
	if err := s.cache.SetToken(res); err != nil {
		log.Error("s.cache.SetToken(res)", "err", err, "symbol", tok.Symbol)
	}
	c.JSON(http.StatusOK, res)
}

func (s *HodlBank) getAccount(c *gin.Context) {
	sym, err := schema.ParseSymbol(c.Param("symbol"))
	if err != nil {
		errorResponse(c, ErrInvalidSymbol.Error())
		return
	}
	tok, err := s.wdb.GetToken(sym.Code, nil)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errorResponse(c, ErrTokenNotExist.Error())
		} else {
			internalErrorResponse(c, err.Error())
		}
		return
	}
	acct, err := s.wdb.GetAccount(c.Param("owner"), sym.Code, nil)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errorResponse(c, ErrAccountNotExist.Error())
		} else {
			internalErrorResponse(c, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, schema.RespAccount{
		Owner:      acct.Owner,
		Symbol:     schema.Symbol{Code: tok.Symbol, Precision: tok.Precision}.String(),
		Allocation: schema.FormatAmount(acct.Allocation, tok.Precision),
		Balance:    schema.FormatAmount(acct.Balance, tok.Precision),
		Staked:     schema.FormatAmount(acct.Staked, tok.Precision),
		Claimed:    acct.Claimed,
		Payer:      acct.Payer,
	})
}

func (s *HodlBank) postReceipt(c *gin.Context) {
	nt := schema.ReceiptNotification{}
	if err := c.ShouldBindJSON(&nt); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.NotifyReceipt(nt); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *HodlBank) postCreateToken(c *gin.Context) {
	req := schema.CreateTokenReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.CreateToken(c.GetString(callerCtxKey), req.Symbol, req.Issuer, req.MaxSupply); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *HodlBank) postActivateToken(c *gin.Context) {
	req := schema.ActivateTokenReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.ActivateToken(c.GetString(callerCtxKey), c.Param("symbol"), req.Start, req.End); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *HodlBank) postIssue(c *gin.Context) {
	req := schema.IssueReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.Issue(c.GetString(callerCtxKey), c.Param("symbol"), req.To, req.Quantity, req.Memo); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *HodlBank) postClaim(c *gin.Context) {
	req := schema.ClaimReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.Claim(c.GetString(callerCtxKey), c.Param("symbol"), req.Owner); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *HodlBank) postWithdraw(c *gin.Context) {
	if err := s.Withdraw(c.GetString(callerCtxKey), c.Param("symbol")); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *HodlBank) postStake(c *gin.Context) {
	req := schema.StakeReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.Stake(c.GetString(callerCtxKey), req.Symbol, req.Provider, req.Service, req.Quantity); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *HodlBank) postUnstake(c *gin.Context) {
	req := schema.StakeReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.Unstake(c.GetString(callerCtxKey), req.Symbol, req.Provider, req.Service, req.Quantity); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (s *HodlBank) postRefund(c *gin.Context) {
	req := schema.RefundReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.Refund(c.GetString(callerCtxKey), req.Symbol, req.Provider, req.Service); err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func tokenResp(tok schema.Token) schema.RespToken {
	return schema.RespToken{
		Symbol:         tok.Symbol,
		Precision:      tok.Precision,
		Issuer:         tok.Issuer,
		MaxSupply:      schema.FormatAmount(tok.MaxSupply, tok.Precision),
		Supply:         schema.FormatAmount(tok.Supply, tok.Precision),
		ForfeiturePool: schema.FormatAmount(tok.ForfeiturePool, tok.Precision),
		VestingStart:   tok.VestingStart,
		VestingEnd:     tok.VestingEnd,
	}
}

func errorResponse(c *gin.Context, err string) {
	// client error
	c.JSON(http.StatusBadRequest, schema.RespErr{
		Err: err,
	})
}

func internalErrorResponse(c *gin.Context, err string) {
	c.JSON(http.StatusInternalServerError, schema.RespErr{
		Err: err,
	})
}
