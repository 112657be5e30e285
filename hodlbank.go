package hodlbank

import (
	"sync"
	"time"

	"github.com/everFinance/hodlbank/config"
	"github.com/everFinance/hodlbank/sdk"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/panjf2000/ants/v2"
)

type HodlBank struct {
	wdb    *Wdb
	store  *Store
	engine *gin.Engine

	scheduler *gocron.Scheduler
	tokenCli  TokenService
	cache     *Cache
	config    *config.Config

	kafka     *KWriter
	eventPool *ants.PoolWithFunc

	// serializes all ledger mutations; each operation runs to completion
	// against the persistent state before the next one starts
	ledgerLocker sync.Mutex

	contractAcct string // the account holding the tokens at the token service
	adminAddr    string // administrative identity allowed to register symbols

	now func() int64 // unix ms, overridable in tests
}

func New(
	boltDirPath, mySqlDsn string, sqliteDir string, useSqlite bool,
	tokenServiceUrl, contractAcct, adminAddr string,
	kafkaUri string,
) *HodlBank {
	kv, err := NewBoltStore(boltDirPath)
	if err != nil {
		panic(err)
	}

	var wdb *Wdb
	if useSqlite {
		wdb = NewSqliteDb(sqliteDir)
	} else {
		wdb = NewMysqlDb(mySqlDsn)
	}
	if err = wdb.Migrate(); err != nil {
		panic(err)
	}

	b := &HodlBank{
		wdb:          wdb,
		store:        kv,
		engine:       gin.Default(),
		scheduler:    gocron.NewScheduler(time.UTC),
		tokenCli:     sdk.NewTokenCli(tokenServiceUrl),
		cache:        NewCache(),
		config:       config.New(mySqlDsn, sqliteDir, useSqlite),
		contractAcct: contractAcct,
		adminAddr:    adminAddr,
	}

	if kafkaUri != "" {
		kw, err := NewKWriter(LedgerTopic, kafkaUri)
		if err != nil {
			panic(err)
		}
		b.kafka = kw
		pool, err := ants.NewPoolWithFunc(10, func(i interface{}) {
			if err := b.kafka.Write(i.([]byte)); err != nil {
				log.Error("b.kafka.Write(body)", "err", err)
			}
		})
		if err != nil {
			panic(err)
		}
		b.eventPool = pool
	}
	return b
}

func (s *HodlBank) Run(port string) {
	s.config.Run()
	go s.runAPI(port)
	s.runJobs()
}

func (s *HodlBank) Close() {
	s.scheduler.Stop()
	if s.eventPool != nil {
		s.eventPool.Release()
	}
	if s.kafka != nil {
		s.kafka.Close()
	}
	s.config.Close()
	s.wdb.Close()
	if err := s.store.Close(); err != nil {
		log.Error("s.store.Close()", "err", err)
	}
}

func (s *HodlBank) nowMs() int64 {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UnixMilli()
}
