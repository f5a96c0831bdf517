package retained

// ============================================================================
// Event Types
// ============================================================================

// EventType identifies the kind of event.
type EventType uint8

const (
	EventMouseEnter EventType = iota + 1
	EventMouseLeave
	EventMouseMove
)

func (t EventType) String() string {
	switch t {
	case EventMouseEnter:
		return "mouseenter"
	case EventMouseLeave:
		return "mouseleave"
	case EventMouseMove:
		return "mousemove"
	}
	return "unknown"
}

// MouseEvent describes pointer movement relative to an element.
type MouseEvent struct {
	Type EventType

	// Position in viewport coordinates
	X, Y float32

	// Position relative to the target's bounding box
	LocalX, LocalY float32

	target *Element
}

// NewMouseEvent creates a mouse event for the given target.
func NewMouseEvent(eventType EventType, x, y float32, target *Element) *MouseEvent {
	e := &MouseEvent{Type: eventType, X: x, Y: y, target: target}
	if target != nil {
		e.LocalX, e.LocalY = target.BoundingClientRect().LocalPoint(x, y)
	}
	return e
}

// Target returns the element the event is delivered to.
func (e *MouseEvent) Target() *Element {
	return e.target
}

// MouseHandler is a callback for mouse events.
type MouseHandler func(*MouseEvent)

// ============================================================================
// Bounds
// ============================================================================

// Bounds represents a bounding box in viewport coordinates.
type Bounds struct {
	X, Y          float32 // Top-left corner
	Width, Height float32
}

// Contains checks if a point is within the bounds.
func (b Bounds) Contains(x, y float32) bool {
	return x >= b.X && x < b.X+b.Width &&
		y >= b.Y && y < b.Y+b.Height
}

// LocalPoint converts viewport coordinates to coordinates relative to the bounds.
func (b Bounds) LocalPoint(x, y float32) (localX, localY float32) {
	return x - b.X, y - b.Y
}

// Center returns the center point of the bounds.
func (b Bounds) Center() (x, y float32) {
	return b.X + b.Width/2, b.Y + b.Height/2
}
