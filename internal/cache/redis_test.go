package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRowsKeyIsStablePerQuery(t *testing.T) {
	a := RowsKey("sid", "sales", "date=2025-03-14")
	b := RowsKey("sid", "sales", "date=2025-03-14")
	c := RowsKey("sid", "sales", "date=2025-03-15")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^rows:sid:sales:[0-9a-f]{24}$`, a)
}

func TestHelpersDegradeWithoutRedis(t *testing.T) {
	client = nil
	ctx := context.Background()

	SetCached(ctx, "k", []byte("v"), time.Minute)
	_, ok := GetCached(ctx, "k")
	assert.False(t, ok)
	assert.False(t, IsHealthy())
	InvalidateSessionRows(ctx, "sid")
	assert.NoError(t, Close())
}
