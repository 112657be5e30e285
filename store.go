package hodlbank

import (
	"encoding/binary"
	"errors"
	"os"
	"path"
	"time"

	"github.com/everFinance/hodlbank/schema"
	bolt "go.etcd.io/bbolt"
)

const (
	boltAllocSize = 8 * 1024 * 1024
	boltName      = "hodlbank.db"
)

// Store keeps the receipt poll cursor and the processed-receipt set in
// bbolt, outside the relational ledger. Losing it is safe: the watcher
// re-reads old transfers and the DB unique index drops the duplicates.
type Store struct {
	BoltDb *bolt.DB
}

func NewBoltStore(dirPath string) (*Store, error) {
	if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
		return nil, err
	}

	boltDB, err := bolt.Open(path.Join(dirPath, boltName), 0660, &bolt.Options{Timeout: 1 * time.Second, InitialMmapSize: 10e6})
	if err != nil {
		if err == bolt.ErrTimeout {
			return nil, errors.New("cannot obtain database lock, database may be in use by another process")
		}
		return nil, err
	}
	boltDB.AllocSize = boltAllocSize

	kv := &Store{
		BoltDb: boltDB,
	}

	if err := kv.BoltDb.Update(func(tx *bolt.Tx) error {
		return createBuckets(tx,
			[]byte(schema.ReceiptCursorBucket),
			[]byte(schema.ProcessedReceiptBucket),
		)
	}); err != nil {
		return nil, err
	}

	return kv, nil
}

func createBuckets(tx *bolt.Tx, buckets ...[]byte) error {
	for _, bucket := range buckets {
		if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.BoltDb.Close()
}

func (s *Store) UpdateReceiptCursor(rawId uint64) error {
	return s.BoltDb.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(schema.ReceiptCursorBucket))
		val := make([]byte, 8)
		binary.BigEndian.PutUint64(val, rawId)
		return bkt.Put([]byte(schema.ReceiptCursorKey), val)
	})
}

func (s *Store) LoadReceiptCursor() (rawId uint64, err error) {
	err = s.BoltDb.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(schema.ReceiptCursorBucket))
		val := bkt.Get([]byte(schema.ReceiptCursorKey))
		if val != nil {
			rawId = binary.BigEndian.Uint64(val)
		}
		return nil
	})
	return
}

func (s *Store) SaveProcessedReceipt(txHash string) error {
	return s.BoltDb.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(schema.ProcessedReceiptBucket))
		return bkt.Put([]byte(txHash), []byte{1})
	})
}

func (s *Store) IsProcessedReceipt(txHash string) (exist bool) {
	_ = s.BoltDb.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(schema.ProcessedReceiptBucket))
		exist = bkt.Get([]byte(txHash)) != nil
		return nil
	})
	return
}
