package retained

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// ErrNotSettled is returned by RunUntilIdle when work is still pending after
// the configured number of frames.
var ErrNotSettled = errors.New("retained: loop did not settle")

// LoopConfig configures the frame loop.
type LoopConfig struct {
	// Viewport size in pixels (default 800x600).
	Width  float32
	Height float32

	// MaxFrames bounds RunUntilIdle (default 64).
	MaxFrames int

	// Logger receives per-frame debug records (default slog.Default()).
	Logger *slog.Logger
}

// DefaultLoopConfig returns sensible defaults.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		Width:     800,
		Height:    600,
		MaxFrames: 64,
	}
}

// Frame describes one iteration of the loop.
type Frame struct {
	// Number is the monotonically increasing frame counter.
	Number uint64

	// Flushes is the number of effect flushes run this frame.
	Flushes int

	// LayoutRan is true if the tree was laid out this frame.
	LayoutRan bool

	// AfterLayout is the number of after-layout callbacks run this frame.
	AfterLayout int
}

// Loop drives a headless element tree. Each tick it:
//  1. runs the effect flushes requested since the last tick
//  2. lays out the tree if anything changed
//  3. runs the after-layout callbacks registered before step 2
//
// Loop satisfies reactive.Scheduler, so a runtime created with
// reactive.WithScheduler(loop) defers its effects to the next tick.
type Loop struct {
	config LoopConfig
	logger *slog.Logger
	events *EventDispatcher

	mu           sync.Mutex
	root         *Element
	windowWidth  float32
	windowHeight float32
	layoutDirty  bool
	flushes      []func()
	afterLayout  []func()

	onFrame  func(*Frame)
	onResize func(width, height float32)

	frameCount atomic.Uint64
}

// NewLoop creates a loop with the specified configuration.
func NewLoop(config LoopConfig) *Loop {
	defaults := DefaultLoopConfig()
	if config.Width <= 0 {
		config.Width = defaults.Width
	}
	if config.Height <= 0 {
		config.Height = defaults.Height
	}
	if config.MaxFrames < 1 {
		config.MaxFrames = defaults.MaxFrames
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	l := &Loop{
		config:       config,
		logger:       logger,
		windowWidth:  config.Width,
		windowHeight: config.Height,
	}
	l.events = NewEventDispatcher(l.Root)
	return l
}

// SetRoot installs the tree the loop lays out and dispatches events to.
func (l *Loop) SetRoot(root *Element) {
	l.mu.Lock()
	old := l.root
	l.root = root
	l.layoutDirty = true
	l.mu.Unlock()

	if old != nil && old != root {
		old.attach(nil)
	}
	if root != nil {
		root.attach(l)
	}
}

// Root returns the root element.
func (l *Loop) Root() *Element {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.root
}

// Events returns the event dispatcher for this loop.
func (l *Loop) Events() *EventDispatcher {
	return l.events
}

// WindowSize returns the current viewport dimensions.
func (l *Loop) WindowSize() (width, height float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.windowWidth, l.windowHeight
}

// Resize changes the viewport and schedules a layout pass.
func (l *Loop) Resize(width, height float32) {
	l.mu.Lock()
	l.windowWidth, l.windowHeight = width, height
	l.layoutDirty = true
	fn := l.onResize
	l.mu.Unlock()

	if fn != nil {
		fn(width, height)
	}
}

// OnFrame sets a callback invoked at the end of each tick.
func (l *Loop) OnFrame(fn func(*Frame)) {
	l.mu.Lock()
	l.onFrame = fn
	l.mu.Unlock()
}

// OnResize sets the callback for viewport resize.
func (l *Loop) OnResize(fn func(width, height float32)) {
	l.mu.Lock()
	l.onResize = fn
	l.mu.Unlock()
}

// RequestFlush queues flush to run at the start of the next tick.
func (l *Loop) RequestFlush(flush func()) {
	l.mu.Lock()
	l.flushes = append(l.flushes, flush)
	l.mu.Unlock()
}

// AfterLayout queues fn to run once the next layout pass has completed.
// Callbacks registered while callbacks are running wait for the following tick.
func (l *Loop) AfterLayout(fn func()) {
	l.mu.Lock()
	l.afterLayout = append(l.afterLayout, fn)
	l.mu.Unlock()
}

func (l *Loop) invalidateLayout() {
	l.mu.Lock()
	l.layoutDirty = true
	l.mu.Unlock()
}

// FrameCount returns the number of ticks run so far.
func (l *Loop) FrameCount() uint64 {
	return l.frameCount.Load()
}

// Pending reports whether the next tick has any work to do.
func (l *Loop) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pendingLocked()
}

func (l *Loop) pendingLocked() bool {
	return len(l.flushes) > 0 || len(l.afterLayout) > 0 || l.layoutDirty
}

// Tick runs one frame. It returns true if more work is pending.
func (l *Loop) Tick() bool {
	frame := &Frame{Number: l.frameCount.Add(1)}

	// Flushes requested while flushing run in this frame too.
	for {
		l.mu.Lock()
		flushes := l.flushes
		l.flushes = nil
		l.mu.Unlock()
		if len(flushes) == 0 {
			break
		}
		for _, flush := range flushes {
			flush()
			frame.Flushes++
		}
	}

	l.mu.Lock()
	root := l.root
	dirty := l.layoutDirty
	l.layoutDirty = false
	width, height := l.windowWidth, l.windowHeight
	callbacks := l.afterLayout
	l.afterLayout = nil
	l.mu.Unlock()

	if dirty && root != nil {
		ComputeLayout(root, width, height)
		frame.LayoutRan = true
	}

	for _, fn := range callbacks {
		fn()
		frame.AfterLayout++
	}

	l.logger.Debug("retained.loop.tick",
		slog.Uint64("frame", frame.Number),
		slog.Int("flushes", frame.Flushes),
		slog.Bool("layout", frame.LayoutRan),
		slog.Int("after_layout", frame.AfterLayout))

	l.mu.Lock()
	onFrame := l.onFrame
	pending := l.pendingLocked()
	l.mu.Unlock()

	if onFrame != nil {
		onFrame(frame)
	}
	return pending
}

// RunUntilIdle ticks until no work is pending or MaxFrames is reached.
func (l *Loop) RunUntilIdle() error {
	for i := 0; i < l.config.MaxFrames; i++ {
		if !l.Tick() {
			return nil
		}
	}
	return fmt.Errorf("%w after %d frames", ErrNotSettled, l.config.MaxFrames)
}

// DispatchMouseMove moves the pointer to (x, y), delivering enter and leave
// events against the last layout. Returns true if the hover chain changed.
func (l *Loop) DispatchMouseMove(x, y float32) bool {
	return l.events.DispatchMouseMove(x, y)
}

// Hover moves the pointer to the center of e's bounding box.
func (l *Loop) Hover(e *Element) bool {
	x, y := e.BoundingClientRect().Center()
	return l.DispatchMouseMove(x, y)
}

// Unhover moves the pointer out of the viewport.
func (l *Loop) Unhover() {
	l.events.DispatchMouseLeaveWindow()
}
