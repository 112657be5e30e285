package hodlbank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoltStore(t *testing.T) {
	kv, err := NewBoltStore(t.TempDir())
	assert.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	cursor, err := kv.LoadReceiptCursor()
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), cursor)

	assert.NoError(t, kv.UpdateReceiptCursor(42))
	cursor, err = kv.LoadReceiptCursor()
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), cursor)

	assert.False(t, kv.IsProcessedReceipt("tx-1"))
	assert.NoError(t, kv.SaveProcessedReceipt("tx-1"))
	assert.True(t, kv.IsProcessedReceipt("tx-1"))
}
