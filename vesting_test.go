package hodlbank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVestedPrincipal(t *testing.T) {
	start := int64(1000)
	end := int64(101000) // 100s window
	alloc := int64(10000000)

	// not activated
	assert.Equal(t, int64(0), vestedPrincipal(51000, 0, 0, alloc))
	// before the window
	assert.Equal(t, int64(0), vestedPrincipal(500, start, end, alloc))
	assert.Equal(t, int64(0), vestedPrincipal(start, start, end, alloc))
	// halfway
	assert.Equal(t, int64(5000000), vestedPrincipal(51000, start, end, alloc))
	// ratio floors, never rounds up
	assert.Equal(t, int64(3333300), vestedPrincipal(34333, start, end, alloc))
	assert.Equal(t, int64(9), vestedPrincipal(start+1, start, end, 999999))
	// at and past the end the ratio clamps to 1
	assert.Equal(t, alloc, vestedPrincipal(end, start, end, alloc))
	assert.Equal(t, alloc, vestedPrincipal(end+999999, start, end, alloc))
}

func TestVestedBonus(t *testing.T) {
	start := int64(1000)
	end := int64(101000)
	alloc := int64(5000000)
	pool := int64(1000000)
	supply := int64(10000000)

	// share = pool * alloc/supply = 500000
	assert.Equal(t, int64(250000), vestedBonus(51000, start, end, alloc, pool, supply))
	assert.Equal(t, int64(500000), vestedBonus(end, start, end, alloc, pool, supply))
	assert.Equal(t, int64(500000), vestedBonus(end+1, start, end, alloc, pool, supply))

	// empty pool, zero supply, before start
	assert.Equal(t, int64(0), vestedBonus(51000, start, end, alloc, 0, supply))
	assert.Equal(t, int64(0), vestedBonus(51000, start, end, alloc, pool, 0))
	assert.Equal(t, int64(0), vestedBonus(500, start, end, alloc, pool, supply))
}

// the clamp keeps late withdrawals from pulling more than the allocation
// and so from driving the forfeiture pool negative
func TestVestingClampedAfterEnd(t *testing.T) {
	start := int64(1000)
	end := int64(101000)
	alloc := int64(10000000)

	principal := vestedPrincipal(end*10, start, end, alloc)
	assert.Equal(t, alloc, principal)
	assert.Equal(t, int64(0), alloc-principal)
}
