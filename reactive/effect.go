package reactive

// Effect is an imperative action that re-runs whenever a cell it read during
// its previous run changes. Effects never run per write: they are queued and
// drained by Runtime.Flush, at most once per round.
type Effect struct {
	node
	fn       func()
	queued   bool
	disposed bool
}

// Effect registers fn and queues its first run.
func (rt *Runtime) Effect(fn func()) *Effect {
	e := &Effect{fn: fn}
	e.rt = rt
	e.notify = e.schedule
	e.schedule()
	rt.maybeFlush()
	return e
}

// Stop detaches the effect from its sources. It will not run again.
func (e *Effect) Stop() {
	e.disposed = true
	e.unlinkAll()
}

func (e *Effect) schedule() {
	if e.queued || e.disposed {
		return
	}
	e.queued = true
	e.rt.queue = append(e.rt.queue, e)
}

func (e *Effect) run() {
	if e.disposed {
		return
	}
	e.unlinkAll()
	e.rt.withObserver(&e.node, e.fn)
}
