package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partstack/bomtree/internal/logging"
	"github.com/partstack/bomtree/pkg/adapters/memory"
	"github.com/partstack/bomtree/pkg/adapters/redis"
	"github.com/partstack/bomtree/pkg/domain"
	"github.com/partstack/bomtree/pkg/ports"
)

func setup(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *memory.Repository, *redis.Cache) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	parts, edges := ports.ContractFixture()
	source := memory.Seed(parts, edges)

	opts = append([]redis.Option{redis.WithLogger(logging.NewNop())}, opts...)
	return mr, source, redis.NewFromClient(client, source, opts...)
}

func TestCache_Contract(t *testing.T) {
	_, _, cache := setup(t)
	ports.RunPartRepositoryContract(t, cache)
}

func TestCache_ServesFromRedis(t *testing.T) {
	ctx := context.Background()
	_, source, cache := setup(t)

	part, err := cache.GetPart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Gearbox", part.Name)

	// Mutate the source; the cached entry must keep serving the old snapshot.
	source.AddPart(domain.Part{ID: 1, Name: "Renamed", Assembly: true})

	part, err = cache.GetPart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Gearbox", part.Name)

	// Edges behave the same way.
	edges, err := cache.GetBomEdges(ctx, 1)
	require.NoError(t, err)
	require.Len(t, edges, 2)

	source.AddEdge(domain.BomEdge{ParentID: 1, SubPartID: 4})
	edges, err = cache.GetBomEdges(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, edges, 2)
}

func TestCache_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	mr, source, cache := setup(t, redis.WithTTL(time.Minute))

	_, err := cache.GetPart(ctx, 1)
	require.NoError(t, err)

	source.AddPart(domain.Part{ID: 1, Name: "Renamed", Assembly: true})
	mr.FastForward(2 * time.Minute)

	part, err := cache.GetPart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", part.Name)
}

func TestCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	_, source, cache := setup(t)

	_, err := cache.GetPart(ctx, 1)
	require.NoError(t, err)

	source.AddPart(domain.Part{ID: 1, Name: "Renamed", Assembly: true})
	require.NoError(t, cache.Invalidate(ctx, 1))

	part, err := cache.GetPart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", part.Name)
}

func TestCache_FallsBackWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	mr, _, cache := setup(t)

	mr.Close()

	part, err := cache.GetPart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Gearbox", part.Name)

	_, err = cache.GetPart(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrPartNotFound)
}

func TestCache_NegativeLookupNotCached(t *testing.T) {
	ctx := context.Background()
	_, source, cache := setup(t)

	_, err := cache.GetPart(ctx, 42)
	require.ErrorIs(t, err, domain.ErrPartNotFound)

	source.AddPart(domain.Part{ID: 42, Name: "Late arrival"})

	part, err := cache.GetPart(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Late arrival", part.Name)
}
