package hodlbank

import (
	"net/http"

	"github.com/everFinance/hodlbank/schema"
	"github.com/gin-gonic/gin"
)

const callerCtxKey = "caller"

// callerMiddleware resolves X-API-Key to the principal address it
// authenticates. Role checks (issuer/owner/admin) stay in the operations
// themselves.
func (s *HodlBank) callerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, schema.RespErr{Err: ErrUnauthorized.Error()})
			return
		}
		ak, err := s.wdb.GetApiKey(key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, schema.RespErr{Err: ErrUnauthorized.Error()})
			return
		}
		c.Set(callerCtxKey, ak.Address)
		c.Next()
	}
}

// pauseMiddleware is the operational kill switch: while the config DB
// flags the ledger paused, every mutating endpoint is refused.
func (s *HodlBank) pauseMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.config != nil && s.config.GetParam().LedgerPaused {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, schema.RespErr{Err: ErrPaused.Error()})
			return
		}
		c.Next()
	}
}
