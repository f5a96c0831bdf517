// Package retained provides a headless retained-mode element tree for field
// widgets: elements styled by class strings, CSS-like custom properties that
// inherit down the tree, a layout pass that resolves var() sizes, and a frame
// loop that interleaves effect flushes, layout, and after-layout callbacks.
//
// Geometry read from an element (ClientWidth, ScrollWidth, BoundingClientRect)
// always reflects the most recent layout pass, never pending mutations.
package retained

import (
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/agiangrant/fieldkit/tw"
)

// ElementID uniquely identifies an element.
// IDs are stable for the lifetime of the element.
type ElementID uint64

var nextElementID atomic.Uint64

func newElementID() ElementID {
	return ElementID(nextElementID.Add(1))
}

// Kind identifies how an element lays out its children.
type Kind string

const (
	KindContainer Kind = "container" // children stacked vertically
	KindHStack    Kind = "hstack"    // children in a row, unsized children share leftover width
	KindText      Kind = "text"      // single text run
)

// layoutInvalidator is notified when a mutation requires a new layout pass.
type layoutInvalidator interface {
	invalidateLayout()
}

// Element represents a node in the retained tree.
// Elements are safe for concurrent property updates.
type Element struct {
	mu sync.RWMutex

	id       ElementID
	kind     Kind
	name     string
	parent   *Element
	children []*Element
	host     layoutInvalidator

	classes []string
	styles  tw.ComputedStyles
	props   map[string]string // custom properties (--name)
	attrs   map[string]string

	text string

	// Viewport-anchored placement for fixed elements.
	fixedLeft, fixedTop         float32
	translateXPct, translateYPct float32

	scrollX, scrollY float32

	// Results of the last layout pass.
	computedLayout ComputedLayout
	hovered        bool

	onMouseEnter []MouseHandler
	onMouseLeave []MouseHandler

	onWidthChange []func(width float32)
}

// NewElement creates a detached element.
// name is a debugging label shown in snapshots (e.g. "helper-text").
func NewElement(kind Kind, name string) *Element {
	return &Element{
		id:   newElementID(),
		kind: kind,
		name: name,
	}
}

// Container creates a vertical container with the given classes and children.
func Container(name, classes string, children ...*Element) *Element {
	e := NewElement(KindContainer, name).SetClasses(classes)
	for _, c := range children {
		e.AddChild(c)
	}
	return e
}

// HStack creates a row container with the given classes and children.
func HStack(name, classes string, children ...*Element) *Element {
	e := NewElement(KindHStack, name).SetClasses(classes)
	for _, c := range children {
		e.AddChild(c)
	}
	return e
}

// Text creates a text element.
func Text(name, text, classes string) *Element {
	return NewElement(KindText, name).SetClasses(classes).SetText(text)
}

// ID returns the element's unique identifier.
func (e *Element) ID() ElementID {
	return e.id
}

// Kind returns the element kind.
func (e *Element) Kind() Kind {
	return e.kind
}

// Name returns the element's debugging label.
func (e *Element) Name() string {
	return e.name
}

// ============================================================================
// Tree Structure
// ============================================================================

// Parent returns the element's parent, or nil for a root or detached element.
func (e *Element) Parent() *Element {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.parent
}

// Children returns a copy of the element's children slice.
func (e *Element) Children() []*Element {
	e.mu.RLock()
	defer e.mu.RUnlock()
	result := make([]*Element, len(e.children))
	copy(result, e.children)
	return result
}

// AddChild appends a child, detaching it from any previous parent.
func (e *Element) AddChild(child *Element) *Element {
	if child == nil {
		return e
	}
	child.RemoveFromParent()

	e.mu.Lock()
	child.mu.Lock()
	child.parent = e
	child.mu.Unlock()
	e.children = append(e.children, child)
	host := e.host
	e.mu.Unlock()

	child.attach(host)
	e.markDirty()
	return e
}

// RemoveChild removes a child by reference.
func (e *Element) RemoveChild(child *Element) bool {
	e.mu.Lock()
	idx := slices.Index(e.children, child)
	if idx < 0 {
		e.mu.Unlock()
		return false
	}
	e.children = slices.Delete(e.children, idx, idx+1)
	e.mu.Unlock()

	child.mu.Lock()
	child.parent = nil
	child.mu.Unlock()
	child.attach(nil)
	e.markDirty()
	return true
}

// RemoveFromParent removes this element from its parent.
func (e *Element) RemoveFromParent() {
	if parent := e.Parent(); parent != nil {
		parent.RemoveChild(e)
	}
}

// Find returns the first element in this subtree (including e) with the given name.
func (e *Element) Find(name string) *Element {
	if e.name == name {
		return e
	}
	for _, c := range e.Children() {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// attach propagates the layout host through the subtree.
func (e *Element) attach(host layoutInvalidator) {
	e.mu.Lock()
	e.host = host
	children := e.children
	e.mu.Unlock()
	for _, c := range children {
		c.attach(host)
	}
}

func (e *Element) markDirty() {
	e.mu.RLock()
	host := e.host
	e.mu.RUnlock()
	if host != nil {
		host.invalidateLayout()
	}
}

// ============================================================================
// Classes and Styles
// ============================================================================

// SetClasses replaces the class list and re-parses styles.
func (e *Element) SetClasses(classes string) *Element {
	e.mu.Lock()
	e.classes = strings.Fields(classes)
	e.styles = tw.ParseClasses(classes)
	e.mu.Unlock()
	e.markDirty()
	return e
}

// ToggleClass adds or removes a single class.
func (e *Element) ToggleClass(class string, on bool) *Element {
	e.mu.Lock()
	idx := slices.Index(e.classes, class)
	switch {
	case on && idx < 0:
		e.classes = append(e.classes, class)
	case !on && idx >= 0:
		e.classes = slices.Delete(e.classes, idx, idx+1)
	default:
		e.mu.Unlock()
		return e
	}
	e.styles = tw.ParseClasses(strings.Join(e.classes, " "))
	e.mu.Unlock()
	e.markDirty()
	return e
}

// HasClass reports whether the class list contains class.
func (e *Element) HasClass(class string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Contains(e.classes, class)
}

// Classes returns the class list joined by spaces.
func (e *Element) Classes() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return strings.Join(e.classes, " ")
}

// Style returns the effective style for the current hover state.
func (e *Element) Style() tw.StyleProperties {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.styles.Resolve(e.hovered)
}

// Visible reports whether the element itself is not display:none.
func (e *Element) Visible() bool {
	return !e.Style().Hidden()
}

// SetVisible toggles the "hidden" utility class.
func (e *Element) SetVisible(visible bool) *Element {
	return e.ToggleClass("hidden", !visible)
}

// ============================================================================
// Custom Properties and Attributes
// ============================================================================

// SetProperty sets a custom property (e.g. "--field-width") on this element.
// Descendants see it through LookupProperty.
func (e *Element) SetProperty(name, value string) *Element {
	e.mu.Lock()
	if e.props == nil {
		e.props = make(map[string]string)
	}
	if old, ok := e.props[name]; ok && old == value {
		e.mu.Unlock()
		return e
	}
	e.props[name] = value
	e.mu.Unlock()
	e.markDirty()
	return e
}

// Property returns a custom property set directly on this element.
func (e *Element) Property(name string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.props[name]
	return v, ok
}

// Properties returns a copy of the custom properties set on this element.
func (e *Element) Properties() map[string]string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[string]string, len(e.props))
	for k, v := range e.props {
		out[k] = v
	}
	return out
}

// LookupProperty resolves a custom property the way CSS inheritance does:
// the element's own value first, then the nearest ancestor's.
func (e *Element) LookupProperty(name string) (string, bool) {
	for cur := e; cur != nil; cur = cur.Parent() {
		if v, ok := cur.Property(name); ok {
			return v, true
		}
	}
	return "", false
}

// SetAttr sets a plain attribute (role, aria-describedby, id...).
func (e *Element) SetAttr(name, value string) *Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
	return e
}

// Attr returns a plain attribute.
func (e *Element) Attr(name string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.attrs[name]
}

// ============================================================================
// Content
// ============================================================================

// SetText sets the text content.
func (e *Element) SetText(text string) *Element {
	e.mu.Lock()
	if e.text == text {
		e.mu.Unlock()
		return e
	}
	e.text = text
	e.mu.Unlock()
	e.markDirty()
	return e
}

// Text returns the text content.
func (e *Element) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text
}

// ============================================================================
// Positioning
// ============================================================================

// SetFixedPosition places a fixed element at viewport coordinates (left, top),
// shifted by a translate expressed in percent of the element's own size.
// translate(-50%, -100%) anchors the element's bottom-center at (left, top).
func (e *Element) SetFixedPosition(left, top, translateXPct, translateYPct float32) *Element {
	e.mu.Lock()
	e.fixedLeft, e.fixedTop = left, top
	e.translateXPct, e.translateYPct = translateXPct, translateYPct
	e.mu.Unlock()
	e.markDirty()
	return e
}

// FixedPosition returns the values last passed to SetFixedPosition.
func (e *Element) FixedPosition() (left, top, translateXPct, translateYPct float32) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.fixedLeft, e.fixedTop, e.translateXPct, e.translateYPct
}

// SetScroll sets the element's scroll offset.
func (e *Element) SetScroll(x, y float32) *Element {
	e.mu.Lock()
	if e.scrollX == x && e.scrollY == y {
		e.mu.Unlock()
		return e
	}
	e.scrollX, e.scrollY = x, y
	e.mu.Unlock()
	e.markDirty()
	return e
}

// ============================================================================
// Geometry (from the last layout pass)
// ============================================================================

// ComputedLayout returns the result of the last layout pass.
func (e *Element) ComputedLayout() ComputedLayout {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.computedLayout
}

// ClientWidth returns the visible width of the element's box.
func (e *Element) ClientWidth() float32 {
	return e.ComputedLayout().Width
}

// ScrollWidth returns the width of the element's content, or its box width
// when the content fits.
func (e *Element) ScrollWidth() float32 {
	l := e.ComputedLayout()
	return max(l.ContentWidth, l.Width)
}

// BoundingClientRect returns the element's box in viewport coordinates:
// its layout position minus the scroll offsets of its ancestors.
func (e *Element) BoundingClientRect() Bounds {
	l := e.ComputedLayout()
	b := Bounds{X: l.X, Y: l.Y, Width: l.Width, Height: l.Height}
	if l.Fixed {
		return b
	}
	for p := e.Parent(); p != nil; p = p.Parent() {
		p.mu.RLock()
		b.X -= p.scrollX
		b.Y -= p.scrollY
		p.mu.RUnlock()
	}
	return b
}

// OnWidthChange adds a handler called after a layout pass that changed the
// element's width. The handler receives the new ClientWidth and may mutate
// the tree; the changes are laid out in the next pass.
func (e *Element) OnWidthChange(handler func(width float32)) *Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onWidthChange = append(e.onWidthChange, handler)
	return e
}

func (e *Element) notifyWidthChange(width float32) {
	e.mu.RLock()
	handlers := slices.Clone(e.onWidthChange)
	e.mu.RUnlock()

	for _, h := range handlers {
		h(width)
	}
}

// ============================================================================
// Events
// ============================================================================

// OnMouseEnter adds a handler called when the pointer enters the element.
func (e *Element) OnMouseEnter(handler MouseHandler) *Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onMouseEnter = append(e.onMouseEnter, handler)
	return e
}

// OnMouseLeave adds a handler called when the pointer leaves the element.
func (e *Element) OnMouseLeave(handler MouseHandler) *Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onMouseLeave = append(e.onMouseLeave, handler)
	return e
}

// IsHovered returns true if the pointer is over this element or a descendant.
func (e *Element) IsHovered() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.hovered
}

func (e *Element) setHovered(hovered bool) {
	e.mu.Lock()
	changed := e.hovered != hovered
	e.hovered = hovered
	e.mu.Unlock()
	// hover: variants may change the box
	if changed {
		e.markDirty()
	}
}

// HandleEvent runs the handlers registered for the event's type.
func (e *Element) HandleEvent(event *MouseEvent) {
	e.mu.RLock()
	var handlers []MouseHandler
	switch event.Type {
	case EventMouseEnter:
		handlers = e.onMouseEnter
	case EventMouseLeave:
		handlers = e.onMouseLeave
	}
	handlers = slices.Clone(handlers)
	e.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}
