package hodlbank

import (
	"github.com/everFinance/go-everpay/common"
)

var log = common.NewLog("hodlbank")
