package sandbox

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"
)

var (
	ErrPoolClosed    = errors.New("execution pool is closed")
	ErrPoolSaturated = errors.New("execution queue is full")
)

// Executor runs one snippet to completion.
type Executor interface {
	Execute(ctx context.Context, code, language string) string
}

// Task is the pending result of a submitted execution.
type Task struct {
	done   chan struct{}
	output string
	err    error
}

func newTask() *Task {
	return &Task{done: make(chan struct{})}
}

func (t *Task) finish(output string, err error) {
	t.output = output
	t.err = err
	close(t.done)
}

// Done is closed once the result is available.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Result blocks until the execution finishes.
func (t *Task) Result() (string, error) {
	<-t.done
	return t.output, t.err
}

// Pool runs executions in the background with at most `workers` running at once
// and at most `queueDepth` more waiting. Submit never blocks the caller.
type Pool struct {
	exec       Executor
	sem        *semaphore.Weighted
	maxPending int

	mu      sync.Mutex
	pending int
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPool constructs a Pool.
func NewPool(exec Executor, workers, queueDepth int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueDepth < 0 {
		queueDepth = 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		exec:       exec,
		sem:        semaphore.NewWeighted(int64(workers)),
		maxPending: workers + queueDepth,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Submit schedules an execution and returns its Task immediately.
func (p *Pool) Submit(code, language string) (*Task, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.pending >= p.maxPending {
		p.mu.Unlock()
		return nil, ErrPoolSaturated
	}
	p.pending++
	p.wg.Add(1)
	p.mu.Unlock()

	task := newTask()
	go p.run(task, code, language)
	return task, nil
}

func (p *Pool) run(task *Task, code, language string) {
	defer func() {
		p.mu.Lock()
		p.pending--
		p.mu.Unlock()
		p.wg.Done()
	}()

	if err := p.sem.Acquire(p.ctx, 1); err != nil {
		task.finish("", ErrPoolClosed)
		return
	}
	defer p.sem.Release(1)

	if p.ctx.Err() != nil {
		task.finish("", ErrPoolClosed)
		return
	}
	task.finish(p.exec.Execute(p.ctx, code, language), nil)
}

// Pending reports queued plus running executions.
func (p *Pool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

// Close rejects new work, cancels running executions and waits for them.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
}
