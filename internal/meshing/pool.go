package meshing

import (
	"context"
	"errors"
	"sync"
	"time"

	"voxelmesh/internal/voxel"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrPoolClosed is returned by BuildSync once the pool has shut down.
var ErrPoolClosed = errors.New("meshing: worker pool is shut down")

// MeshJob represents a meshing job request. Grid must not be modified until the result
// arrives; submit a voxel.Grid.Clone when the chunk keeps changing.
type MeshJob struct {
	ID    uuid.UUID
	Key   cube.Pos
	Grid  *voxel.Grid
	// Result channel - will be sent the result when done
	ResultChan chan MeshResult
}

// MeshResult contains the result of a meshing operation. A cached result shares its
// Mesh with earlier results for the same chunk version and must be treated as read-only.
type MeshResult struct {
	ID      uuid.UUID
	Key     cube.Pos
	Mesh    *Mesh
	Hash    uint64
	Cached  bool
	Elapsed time.Duration
	Error   error
}

type cacheEntry struct {
	hash uint64
	mesh *Mesh
}

// WorkerPool manages goroutines for mesh generation
type WorkerPool struct {
	jobQueue chan MeshJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mesher  Mesher
	log     *logrus.Logger
	metrics *Metrics

	cacheMu sync.Mutex
	cache   map[cube.Pos]cacheEntry
}

// NewWorkerPool creates a new mesh worker pool. log defaults to the logrus standard
// logger and metrics may be nil.
func NewWorkerPool(workers, queueSize int, mesher Mesher, log *logrus.Logger, metrics *Metrics) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	if log == nil {
		log = logrus.StandardLogger()
	}

	pool := &WorkerPool{
		jobQueue: make(chan MeshJob, max(queueSize, 1)),
		workers:  max(workers, 1),
		ctx:      ctx,
		cancel:   cancel,
		mesher:   mesher,
		log:      log,
		metrics:  metrics,
		cache:    make(map[cube.Pos]cacheEntry),
	}

	// Start worker goroutines
	for i := range pool.workers {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	return pool
}

// SubmitJob submits a mesh generation job to the pool
// Returns true if job was submitted successfully, false if queue is full
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	select {
	case p.jobQueue <- job:
		p.metrics.setQueue(len(p.jobQueue))
		return true
	default:
		return false // Queue is full
	}
}

// SubmitJobBlocking submits a job and blocks until it's queued, ctx is done or the pool
// shuts down. It reports whether the job was queued.
func (p *WorkerPool) SubmitJobBlocking(ctx context.Context, job MeshJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	select {
	case p.jobQueue <- job:
		p.metrics.setQueue(len(p.jobQueue))
		return true
	case <-ctx.Done():
		return false
	case <-p.ctx.Done():
		return false
	}
}

// BuildSync queues one job and waits for its result.
func (p *WorkerPool) BuildSync(ctx context.Context, key cube.Pos, g *voxel.Grid) (MeshResult, error) {
	if err := ctx.Err(); err != nil {
		return MeshResult{}, err
	}
	results := make(chan MeshResult, 1)
	job := MeshJob{ID: uuid.New(), Key: key, Grid: g, ResultChan: results}
	if !p.SubmitJobBlocking(ctx, job) {
		if err := ctx.Err(); err != nil {
			return MeshResult{}, err
		}
		return MeshResult{}, ErrPoolClosed
	}
	select {
	case res := <-results:
		return res, res.Error
	case <-ctx.Done():
		return MeshResult{}, ctx.Err()
	case <-p.ctx.Done():
		return MeshResult{}, ErrPoolClosed
	}
}

// worker is the worker goroutine that processes mesh jobs
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	p.log.Debugf("mesh worker %v started", id)

	for {
		select {
		case job := <-p.jobQueue:
			p.metrics.setQueue(len(p.jobQueue))
			result := p.process(job)
			p.metrics.observe(result)

			if job.ResultChan == nil {
				continue
			}
			// Send result back
			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

func (p *WorkerPool) process(job MeshJob) MeshResult {
	start := time.Now()
	result := MeshResult{ID: job.ID, Key: job.Key}
	fields := logrus.Fields{"job": job.ID, "chunk": job.Key}

	if err := job.Grid.Validate(); err != nil {
		result.Error = err
		result.Elapsed = time.Since(start)
		p.log.WithFields(fields).WithError(err).Warn("mesh job rejected")
		return result
	}
	result.Hash = job.Grid.Hash()

	if mesh, ok := p.cached(job.Key, result.Hash); ok {
		result.Mesh = mesh
		result.Cached = true
		result.Elapsed = time.Since(start)
		return result
	}

	mesh, err := p.mesher.Build(job.Grid)
	result.Elapsed = time.Since(start)
	if err != nil {
		// A failed build leaves the cached mesh for this chunk in place.
		result.Error = err
		p.log.WithFields(fields).WithError(err).Warn("mesh build failed")
		return result
	}
	result.Mesh = mesh
	p.store(job.Key, result.Hash, mesh)

	p.log.WithFields(fields).WithFields(logrus.Fields{
		"quads":   mesh.QuadCount(),
		"elapsed": result.Elapsed,
	}).Debug("chunk meshed")
	return result
}

func (p *WorkerPool) cached(key cube.Pos, hash uint64) (*Mesh, bool) {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()
	e, ok := p.cache[key]
	if !ok || e.hash != hash {
		return nil, false
	}
	return e.mesh, true
}

func (p *WorkerPool) store(key cube.Pos, hash uint64, mesh *Mesh) {
	p.cacheMu.Lock()
	p.cache[key] = cacheEntry{hash: hash, mesh: mesh}
	p.cacheMu.Unlock()
}

// Forget drops the cached mesh for key, e.g. when the chunk is unloaded.
func (p *WorkerPool) Forget(key cube.Pos) {
	p.cacheMu.Lock()
	delete(p.cache, key)
	p.cacheMu.Unlock()
}

// Shutdown gracefully shuts down the worker pool. Queued jobs that have not started
// are dropped.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.log.WithField("workers", p.workers).Info("mesh worker pool stopped")
}

// GetQueueLength returns the current number of jobs in the queue
func (p *WorkerPool) GetQueueLength() int {
	return len(p.jobQueue)
}
