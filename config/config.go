package config

import (
	"time"

	"github.com/everFinance/go-everpay/common"
	"github.com/everFinance/hodlbank/config/schema"
	"github.com/go-co-op/gocron"
)

var log = common.NewLog("config")

type Config struct {
	wdb         *Wdb
	param       schema.Param
	ipWhiteList map[string]struct{}
	scheduler   *gocron.Scheduler
}

func New(mysqlDsn string, sqliteDir string, useSqlite bool) *Config {
	wdb := &Wdb{}
	if useSqlite {
		wdb = NewSqliteDb(sqliteDir)
	} else {
		wdb = NewMysqlDb(mysqlDsn)
	}
	if err := wdb.Migrate(); err != nil {
		panic(err)
	}
	param, err := wdb.GetParam()
	if err != nil {
		panic(err)
	}
	return &Config{
		wdb:         wdb,
		param:       param,
		ipWhiteList: make(map[string]struct{}),
		scheduler:   gocron.NewScheduler(time.UTC),
	}
}

func (c *Config) GetParam() schema.Param {
	return c.param
}

func (c *Config) GetIPWhiteList() *map[string]struct{} {
	return &c.ipWhiteList
}

func (c *Config) Run() {
	go c.runJobs()
}

func (c *Config) Close() {
	c.scheduler.Stop()
	c.wdb.Close()
}
