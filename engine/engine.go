package engine

import (
	"context"
	"sync"

	"github.com/flarekit/flare/compute"
	"github.com/flarekit/flare/internal/parallel"
	"github.com/flarekit/flare/memo"
	"github.com/flarekit/flare/project"
	"github.com/flarekit/flare/tasks"
)

// Engine owns the compute context, worker pool, and generation counter
// for a running render session. A session renders one project at a time;
// a new Submit while a render is in flight cancels it and starts over,
// so only the most recently requested project ever reaches Completed.
type Engine struct {
	ctx  *compute.ComputeContext
	pool *parallel.WorkerPool

	lensCache *memo.Cache

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc

	requests  chan renderJob
	results   chan Result
	done      chan struct{}
	closeOnce sync.Once
}

type renderJob struct {
	generation uint64
	ctx        context.Context
	project    project.Project
}

// New creates an Engine bound to the named compute device (empty selects
// the best available) with the given worker pool size (0 selects
// GOMAXPROCS), registering every task kernel against the device.
func New(deviceName string, workers int) (*Engine, error) {
	ctx, err := compute.NewContext(deviceName)
	if err != nil {
		return nil, err
	}

	for _, register := range []func(*compute.ComputeContext) error{
		tasks.ApertureKernel,
		tasks.GhostKernel,
		tasks.RaytracingKernel,
		tasks.PreprocessKernel,
		tasks.RasterizingKernel,
		tasks.StarburstKernel,
		tasks.DiagramKernel,
		tasks.ImageSamplingKernel,
	} {
		if err := register(ctx); err != nil {
			return nil, err
		}
	}

	e := &Engine{
		ctx:       ctx,
		pool:      parallel.NewWorkerPool(workers),
		lensCache: memo.New(8),
		requests:  make(chan renderJob, 1),
		results:   make(chan Result, 8),
		done:      make(chan struct{}),
	}
	go e.loop()
	return e, nil
}

// Results returns the channel a caller should drain to observe Running,
// Completed, Cancelled, and Failed transitions for every generation the
// engine starts. A generation whose queued request was replaced by a newer
// Submit before it started emits nothing.
func (e *Engine) Results() <-chan Result {
	return e.results
}

// Submit requests a render of proj, returning its generation number.
// If a render is already in flight, it is cancelled: the engine is a
// latest-wins actor, never a queue of every request ever made. If the
// request channel's single slot is occupied by an older, not-yet-started
// request, that request is dropped in favor of this one.
func (e *Engine) Submit(proj project.Project) uint64 {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	if e.cancel != nil {
		e.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.mu.Unlock()

	job := renderJob{generation: gen, ctx: ctx, project: proj}
	select {
	case e.requests <- job:
	default:
		select {
		case <-e.requests:
		default:
		}
		e.requests <- job
	}
	return gen
}

// loop is the engine's single actor goroutine: it pulls at most one
// in-flight job at a time from requests, emitting Running then a
// terminal Result for every job it receives, in submission order. A job
// dropped from requests by a later Submit is never received.
func (e *Engine) loop() {
	for {
		select {
		case job := <-e.requests:
			e.emit(Result{Generation: job.generation, State: Running})
			res := e.renderProject(job.ctx, job.project)
			res.Generation = job.generation
			e.emit(res)
		case <-e.done:
			return
		}
	}
}

func (e *Engine) emit(res Result) {
	select {
	case e.results <- res:
	case <-e.done:
	}
}

// Close stops the engine's actor loop and shuts down its worker pool.
// Close is safe to call multiple times.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		close(e.done)
		e.pool.Close()
	})
}

// DeviceName returns the name of the underlying compute device.
func (e *Engine) DeviceName() string {
	return e.ctx.DeviceName()
}
