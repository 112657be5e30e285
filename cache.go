package hodlbank

import (
	"encoding/json"
	"time"

	"github.com/everFinance/hodlbank/cache"
	"github.com/everFinance/hodlbank/schema"
)

const cacheExpTime = 10 * time.Minute

// Cache holds the read-side registry snapshots served by the API; the
// ledger itself is never read through it.
type Cache struct {
	bc *cache.BigCache
}

func NewCache() *Cache {
	bc, err := cache.NewBigCache(cacheExpTime)
	if err != nil {
		panic(err)
	}
	return &Cache{bc: bc}
}

func (c *Cache) SetToken(res schema.RespToken) error {
	by, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.bc.Set(res.Symbol, by)
}

// DeleteToken drops the snapshot after a registry mutation so the next
// read goes to the db.
func (c *Cache) DeleteToken(symbol string) {
	_ = c.bc.Delete(symbol)
}

func (c *Cache) GetToken(symbol string) (res schema.RespToken, ok bool) {
	by, err := c.bc.Get(symbol)
	if err != nil {
		return
	}
	if err = json.Unmarshal(by, &res); err != nil {
		return
	}
	return res, true
}
