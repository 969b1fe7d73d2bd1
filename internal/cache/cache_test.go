package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"recyclemart-backend/internal/model"
	"recyclemart-backend/internal/util"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	util.InitLogger("error")
	os.Exit(m.Run())
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client), mr
}

func TestSetGetRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	in := model.UserSummary{ID: "abc", Email: "a@b.com", Role: model.RoleBuyer}
	c.Set(ctx, UserKey("abc"), in, UserSummaryTTL)

	var out model.UserSummary
	require.True(t, c.Get(ctx, UserKey("abc"), &out))
	assert.Equal(t, in, out)

	// TTL 到期后按未命中处理
	mr.FastForward(UserSummaryTTL + time.Second)
	assert.False(t, c.Get(ctx, UserKey("abc"), &out))
}

func TestGetMiss(t *testing.T) {
	c, _ := newTestCache(t)

	var out model.UserSummary
	assert.False(t, c.Get(context.Background(), UserKey("missing"), &out))
}

func TestDelete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, ProductKey("p1"), model.Product{ProductName: "Steel Scrap"}, ProductDetailTTL)
	c.Delete(ctx, ProductKey("p1"))

	var out model.Product
	assert.False(t, c.Get(ctx, ProductKey("p1"), &out))
}

func TestListingGenerationStartsAtZero(t *testing.T) {
	c, _ := newTestCache(t)

	gen, ok := c.ListingGeneration(context.Background())
	assert.True(t, ok)
	assert.Equal(t, int64(0), gen)
}

// 代数递增后，旧代的列表键不再被引用，留给TTL过期
func TestBumpListingGenerationOrphansOldKeys(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	filters := model.ProductFilters{Category: "metals", Page: 1, Limit: 12}
	gen, ok := c.ListingGeneration(ctx)
	require.True(t, ok)
	c.Set(ctx, ListingKey(gen, filters), model.ProductList{}, ListingTTL)

	c.BumpListingGeneration(ctx)

	newGen, ok := c.ListingGeneration(ctx)
	require.True(t, ok)
	assert.Equal(t, gen+1, newGen)

	// 新代的键与旧代不同，等同于整体失效
	assert.NotEqual(t, ListingKey(gen, filters), ListingKey(newGen, filters))
	var out model.ProductList
	assert.False(t, c.Get(ctx, ListingKey(newGen, filters), &out))
}

// Redis 不可用时所有操作静默降级
func TestNilClientDegrades(t *testing.T) {
	c := New(nil)
	ctx := context.Background()

	var out model.Product
	assert.False(t, c.Get(ctx, ProductKey("p1"), &out))
	c.Set(ctx, ProductKey("p1"), model.Product{}, ProductDetailTTL)
	c.Delete(ctx, ProductKey("p1"))
	c.BumpListingGeneration(ctx)

	_, ok := c.ListingGeneration(ctx)
	assert.False(t, ok)
}

func TestListingKeyDeterministic(t *testing.T) {
	a := model.ProductFilters{Search: "steel", Category: "metals", Page: 1, Limit: 12}
	b := model.ProductFilters{Search: "steel", Category: "metals", Page: 1, Limit: 12}
	assert.Equal(t, ListingKey(3, a), ListingKey(3, b))

	// 任一参数不同都会得到不同的键
	b.Page = 2
	assert.NotEqual(t, ListingKey(3, a), ListingKey(3, b))
}
