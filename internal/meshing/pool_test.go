package meshing

import (
	"context"
	"io"
	"testing"
	"time"

	"voxelmesh/internal/voxel"
	"voxelmesh/internal/voxeltest"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestPool(t *testing.T, workers int) (*WorkerPool, *Metrics) {
	t.Helper()
	metrics := NewMetrics(prometheus.NewRegistry())
	pool := NewWorkerPool(workers, 16, &Greedy{}, quietLogger(), metrics)
	t.Cleanup(pool.Shutdown)
	return pool, metrics
}

func TestPoolBuildSyncCachesUnchangedChunks(t *testing.T) {
	pool, metrics := newTestPool(t, 2)
	ctx := context.Background()
	key := cube.Pos{1, 0, -3}
	g := voxeltest.Random(voxel.Dims{X: 8, Y: 8, Z: 8}, 5, 0.4)

	first, err := pool.BuildSync(ctx, key, g)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, key, first.Key)
	assert.Equal(t, g.Hash(), first.Hash)
	require.NotNil(t, first.Mesh)

	second, err := pool.BuildSync(ctx, key, g)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Same(t, first.Mesh, second.Mesh)
	assert.NotEqual(t, first.ID, second.ID)

	if g.At(0, 0, 0).IsSolid() {
		g.Set(0, 0, 0, voxel.Empty)
	} else {
		g.Set(0, 0, 0, voxel.Stone)
	}
	third, err := pool.BuildSync(ctx, key, g)
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.NotEqual(t, first.Hash, third.Hash)

	pool.Forget(key)
	fourth, err := pool.BuildSync(ctx, key, g)
	require.NoError(t, err)
	assert.False(t, fourth.Cached)

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.builds.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.builds.WithLabelValues("cached")))
}

func TestPoolCacheIsPerChunk(t *testing.T) {
	pool, _ := newTestPool(t, 1)
	g := voxeltest.Solid(voxel.Dims{X: 2, Y: 2, Z: 2}, voxel.Dirt)

	_, err := pool.BuildSync(context.Background(), cube.Pos{0, 0, 0}, g)
	require.NoError(t, err)
	res, err := pool.BuildSync(context.Background(), cube.Pos{1, 0, 0}, g)
	require.NoError(t, err)
	assert.False(t, res.Cached)
}

func TestPoolReportsBuildErrors(t *testing.T) {
	pool, metrics := newTestPool(t, 1)
	res, err := pool.BuildSync(context.Background(), cube.Pos{}, nil)
	assert.ErrorIs(t, err, voxel.ErrGridSize)
	assert.ErrorIs(t, res.Error, voxel.ErrGridSize)
	assert.Nil(t, res.Mesh)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.builds.WithLabelValues("error")))
}

func TestPoolSubmitJobDeliversResults(t *testing.T) {
	pool, _ := newTestPool(t, 4)
	results := make(chan MeshResult, 8)

	ids := map[uuid.UUID]cube.Pos{}
	for i := 0; i < 8; i++ {
		job := MeshJob{
			ID:         uuid.New(),
			Key:        cube.Pos{i, 0, 0},
			Grid:       voxeltest.Random(voxel.Dims{X: 6, Y: 6, Z: 6}, int64(i), 0.3),
			ResultChan: results,
		}
		ids[job.ID] = job.Key
		require.True(t, pool.SubmitJobBlocking(context.Background(), job))
	}

	for i := 0; i < 8; i++ {
		select {
		case res := <-results:
			require.NoError(t, res.Error)
			key, ok := ids[res.ID]
			require.True(t, ok, "unexpected job %v", res.ID)
			assert.Equal(t, key, res.Key)
			assert.NoError(t, res.Mesh.Validate())
			delete(ids, res.ID)
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for result %d", i)
		}
	}
	assert.Empty(t, ids)
}

func TestPoolAssignsMissingJobIDs(t *testing.T) {
	pool, _ := newTestPool(t, 1)
	results := make(chan MeshResult, 1)
	require.True(t, pool.SubmitJob(MeshJob{Grid: voxeltest.Solid(voxel.Dims{X: 1, Y: 1, Z: 1}, voxel.Stone), ResultChan: results}))
	res := <-results
	assert.NotEqual(t, uuid.Nil, res.ID)
}

func TestPoolRejectsJobsAfterShutdown(t *testing.T) {
	pool := NewWorkerPool(2, 4, &Greedy{}, quietLogger(), nil)
	pool.Shutdown()

	g := voxeltest.Solid(voxel.Dims{X: 1, Y: 1, Z: 1}, voxel.Stone)
	assert.False(t, pool.SubmitJob(MeshJob{Grid: g}))
	assert.False(t, pool.SubmitJobBlocking(context.Background(), MeshJob{Grid: g}))
	_, err := pool.BuildSync(context.Background(), cube.Pos{}, g)
	assert.ErrorIs(t, err, ErrPoolClosed)
	assert.Zero(t, pool.GetQueueLength())
}

func TestPoolBuildSyncHonoursContext(t *testing.T) {
	pool, _ := newTestPool(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pool.BuildSync(ctx, cube.Pos{}, voxeltest.Solid(voxel.Dims{X: 1, Y: 1, Z: 1}, voxel.Stone))
	assert.ErrorIs(t, err, context.Canceled)
}
