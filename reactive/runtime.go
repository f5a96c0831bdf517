// Package reactive provides dependency-tracked cells for widget state.
//
// Three primitives cover everything the widgets need:
//   - Signal: a mutable cell whose reads are tracked
//   - Computed: a derived cell, evaluated lazily and memoized until a source changes
//   - Effect: an imperative action re-run whenever anything it read changes
//
// The runtime is single-threaded and cooperative. Effects are queued, never run
// per write; the queue is drained by Flush, which a Scheduler (usually the
// render loop) is asked to call at its next yield point.
package reactive

import "log/slog"

// MaxFlushRounds bounds how many times Flush re-drains the effect queue when
// effects keep writing to cells that other effects depend on.
const MaxFlushRounds = 100

// Scheduler decides when queued effects run.
// RequestFlush is called at most once per pending flush; the scheduler must
// eventually invoke flush on the same goroutine that owns the runtime.
type Scheduler interface {
	RequestFlush(flush func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(flush func())

// RequestFlush implements Scheduler.
func (f SchedulerFunc) RequestFlush(flush func()) { f(flush) }

// Value is the read side of a tracked cell. Both *Signal and *Computed
// satisfy it, so components can accept either.
type Value[T any] interface {
	Get() T
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithScheduler routes flush requests through s instead of flushing
// synchronously after each write.
func WithScheduler(s Scheduler) Option {
	return func(rt *Runtime) { rt.scheduler = s }
}

// WithLogger sets the logger used for runtime diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(rt *Runtime) {
		if l != nil {
			rt.logger = l
		}
	}
}

// Runtime owns the dependency graph and the effect queue.
// A Runtime is not safe for concurrent use.
type Runtime struct {
	scheduler Scheduler
	logger    *slog.Logger

	observer *node // node currently recording its sources

	batchDepth     int
	frozen         int // >0 while a pass must observe one snapshot
	flushing       bool
	flushRequested bool

	queue  []*Effect
	staged []func()
}

// NewRuntime creates a runtime. Without a scheduler, effects flush
// synchronously at the end of each write (or outermost Batch).
func NewRuntime(opts ...Option) *Runtime {
	rt := &Runtime{logger: slog.Default()}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Logger returns the runtime's logger.
func (rt *Runtime) Logger() *slog.Logger {
	return rt.logger
}

// Batch runs fn and defers effect execution until it returns, so effects
// depending on several cells written inside fn run once.
func (rt *Runtime) Batch(fn func()) {
	rt.batchDepth++
	defer func() {
		rt.batchDepth--
		if rt.batchDepth == 0 {
			rt.maybeFlush()
		}
	}()
	fn()
}

// Snapshot runs fn as a read pass: writes issued inside fn are staged and
// committed after fn returns, so every read inside fn sees the same state.
func (rt *Runtime) Snapshot(fn func()) {
	rt.frozen++
	defer func() {
		rt.frozen--
		if rt.frozen == 0 && !rt.flushing {
			rt.commitStaged()
			rt.maybeFlush()
		}
	}()
	fn()
}

// Untracked runs fn without recording dependencies for the current observer.
func (rt *Runtime) Untracked(fn func()) {
	rt.withObserver(nil, fn)
}

// Pending reports whether effects are waiting for a flush.
func (rt *Runtime) Pending() bool {
	return len(rt.queue) > 0 || len(rt.staged) > 0
}

// Flush drains the effect queue. Writes made by effects are staged for the
// duration of a round and committed between rounds.
func (rt *Runtime) Flush() {
	if rt.flushing {
		return
	}
	rt.flushing = true
	rt.flushRequested = false
	defer func() { rt.flushing = false }()

	if rt.frozen == 0 {
		rt.commitStaged()
	}

	for round := 0; len(rt.queue) > 0; round++ {
		if round >= MaxFlushRounds {
			rt.logger.Warn("reactive.flush.limit",
				slog.Int("rounds", round),
				slog.Int("pending", len(rt.queue)))
			return
		}
		queue := rt.queue
		rt.queue = nil
		rt.runRound(queue)
		if rt.frozen == 0 {
			rt.commitStaged()
		}
	}
}

func (rt *Runtime) runRound(queue []*Effect) {
	rt.frozen++
	defer func() { rt.frozen-- }()
	for _, e := range queue {
		e.queued = false
		e.run()
	}
}

// commitStaged applies staged writes as one batch.
func (rt *Runtime) commitStaged() {
	if len(rt.staged) == 0 {
		return
	}
	rt.batchDepth++
	for len(rt.staged) > 0 {
		staged := rt.staged
		rt.staged = nil
		for _, write := range staged {
			write()
		}
	}
	rt.batchDepth--
}

func (rt *Runtime) maybeFlush() {
	if len(rt.queue) == 0 || rt.batchDepth > 0 || rt.flushing || rt.frozen > 0 {
		return
	}
	if rt.scheduler != nil {
		if !rt.flushRequested {
			rt.flushRequested = true
			rt.scheduler.RequestFlush(rt.Flush)
		}
		return
	}
	rt.Flush()
}

// write applies commit now, or stages it when a snapshot pass is active.
func (rt *Runtime) write(commit func()) {
	if rt.frozen > 0 {
		rt.staged = append(rt.staged, commit)
		return
	}
	commit()
	rt.maybeFlush()
}

func (rt *Runtime) withObserver(n *node, fn func()) {
	prev := rt.observer
	rt.observer = n
	defer func() { rt.observer = prev }()
	fn()
}

func (rt *Runtime) track(src *node) {
	if obs := rt.observer; obs != nil && obs != src {
		obs.link(src)
	}
}

func (rt *Runtime) propagate(src *node) {
	if len(src.observers) == 0 {
		return
	}
	observers := make([]*node, len(src.observers))
	copy(observers, src.observers)
	for _, o := range observers {
		o.notify()
	}
}

// node is a vertex of the dependency graph.
type node struct {
	rt        *Runtime
	sources   []*node
	observers []*node
	notify    func()
}

func (n *node) link(src *node) {
	for _, s := range n.sources {
		if s == src {
			return
		}
	}
	n.sources = append(n.sources, src)
	src.observers = append(src.observers, n)
}

func (n *node) unlinkAll() {
	for _, src := range n.sources {
		for i, o := range src.observers {
			if o == n {
				src.observers = append(src.observers[:i], src.observers[i+1:]...)
				break
			}
		}
	}
	n.sources = n.sources[:0]
}
