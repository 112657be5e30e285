package hodlbank

import (
	"path"

	"github.com/everFinance/hodlbank/schema"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const sqliteName = "hodlbank.sqlite"

type Wdb struct {
	Db *gorm.DB
}

func NewMysqlDb(dsn string) *Wdb {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:          logger.Default.LogMode(logger.Error),
		CreateBatchSize: 200,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect mysql db success")
	return &Wdb{Db: db}
}

func NewSqliteDb(dbDir string) *Wdb {
	db, err := gorm.Open(sqlite.Open(path.Join(dbDir, sqliteName)), &gorm.Config{
		Logger:          logger.Default.LogMode(logger.Error),
		CreateBatchSize: 200,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect sqlite db success")
	return &Wdb{Db: db}
}

func (w *Wdb) Migrate() error {
	return w.Db.AutoMigrate(
		&schema.Token{}, &schema.Account{},
		&schema.UnstakeRequest{}, &schema.ReceiptTokenTx{}, &schema.ApiKey{},
	)
}

func (w *Wdb) Close() {
	sql, err := w.Db.DB()
	if err == nil {
		sql.Close()
	}
}

// tx returns the ambient transaction when one is passed, else the root
// handle; mutations that must commit together all take a dbTx param.
func (w *Wdb) tx(dbTx *gorm.DB) *gorm.DB {
	if dbTx != nil {
		return dbTx
	}
	return w.Db
}

// token registry

func (w *Wdb) CreateToken(tok *schema.Token) error {
	return w.Db.Create(tok).Error
}

func (w *Wdb) GetToken(symbol string, dbTx *gorm.DB) (tok schema.Token, err error) {
	err = w.tx(dbTx).Where("symbol = ?", symbol).First(&tok).Error
	return
}

func (w *Wdb) GetTokens() ([]schema.Token, error) {
	res := make([]schema.Token, 0, 10)
	err := w.Db.Find(&res).Error
	return res, err
}

func (w *Wdb) UpdateTokenVesting(id uint, start, end int64, dbTx *gorm.DB) error {
	return w.tx(dbTx).Model(&schema.Token{}).Where("id = ?", id).Updates(map[string]interface{}{
		"vesting_start": start,
		"vesting_end":   end,
	}).Error
}

func (w *Wdb) UpdateTokenSupply(id uint, supply, forfeiturePool int64, dbTx *gorm.DB) error {
	return w.tx(dbTx).Model(&schema.Token{}).Where("id = ?", id).Updates(map[string]interface{}{
		"supply":          supply,
		"forfeiture_pool": forfeiturePool,
	}).Error
}

// account ledger

func (w *Wdb) CreateAccount(acct *schema.Account, dbTx *gorm.DB) error {
	return w.tx(dbTx).Create(acct).Error
}

func (w *Wdb) GetAccount(owner, symbol string, dbTx *gorm.DB) (acct schema.Account, err error) {
	err = w.tx(dbTx).Where("owner = ? and symbol = ?", owner, symbol).First(&acct).Error
	return
}

func (w *Wdb) GetAccountsBySymbol(symbol string) ([]schema.Account, error) {
	res := make([]schema.Account, 0)
	err := w.Db.Where("symbol = ?", symbol).Find(&res).Error
	return res, err
}

func (w *Wdb) UpdateAccountBalance(id uint, balance int64, dbTx *gorm.DB) error {
	return w.tx(dbTx).Model(&schema.Account{}).Where("id = ?", id).Update("balance", balance).Error
}

func (w *Wdb) UpdateAccountLedger(id uint, balance, staked int64, dbTx *gorm.DB) error {
	return w.tx(dbTx).Model(&schema.Account{}).Where("id = ?", id).Updates(map[string]interface{}{
		"balance": balance,
		"staked":  staked,
	}).Error
}

func (w *Wdb) UpdateAccountClaim(id uint, payer string, dbTx *gorm.DB) error {
	return w.tx(dbTx).Model(&schema.Account{}).Where("id = ?", id).Updates(map[string]interface{}{
		"claimed": true,
		"payer":   payer,
	}).Error
}

func (w *Wdb) DeleteAccount(id uint, dbTx *gorm.DB) error {
	return w.tx(dbTx).Delete(&schema.Account{}, id).Error
}

// unstake requests

func (w *Wdb) InsertUnstake(req *schema.UnstakeRequest, dbTx *gorm.DB) error {
	return w.tx(dbTx).Create(req).Error
}

// GetRequestedUnstake returns the oldest still-requested unstake matching
// the refund transfer, so duplicated confirmations find nothing to consume.
func (w *Wdb) GetRequestedUnstake(owner, symbol string, amount int64, dbTx *gorm.DB) (req schema.UnstakeRequest, err error) {
	err = w.tx(dbTx).Where("owner = ? and symbol = ? and amount = ? and status = ?",
		owner, symbol, amount, schema.UnstakeRequested).Order("id asc").First(&req).Error
	return
}

func (w *Wdb) UpdateUnstakeStatus(id uint, status string, dbTx *gorm.DB) error {
	return w.tx(dbTx).Model(&schema.UnstakeRequest{}).Where("id = ?", id).Update("status", status).Error
}

// receipts

func (w *Wdb) InsertReceipts(txs []schema.ReceiptTokenTx) error {
	if len(txs) == 0 {
		return nil
	}
	return w.Db.Clauses(clause.OnConflict{DoNothing: true}).Create(&txs).Error
}

func (w *Wdb) GetReceiptsByStatus(status string) ([]schema.ReceiptTokenTx, error) {
	res := make([]schema.ReceiptTokenTx, 0)
	err := w.Db.Where("status = ?", status).Order("raw_id asc").Find(&res).Error
	return res, err
}

func (w *Wdb) UpdateReceiptStatus(id uint, status string, dbTx *gorm.DB) error {
	return w.tx(dbTx).Model(&schema.ReceiptTokenTx{}).Where("id = ?", id).Update("status", status).Error
}

// api keys

func (w *Wdb) InsertApiKey(key *schema.ApiKey) error {
	return w.Db.Create(key).Error
}

func (w *Wdb) GetApiKey(key string) (res schema.ApiKey, err error) {
	err = w.Db.Where("api_key = ?", key).First(&res).Error
	return
}
