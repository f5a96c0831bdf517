package retained

import (
	"github.com/mattn/go-runewidth"

	"github.com/agiangrant/fieldkit/tw"
)

// Default text metrics for the built-in monospace measurer.
const (
	DefaultCellWidth  float32 = 8
	DefaultLineHeight float32 = 16
)

// maxVarDepth bounds var() indirection when resolving custom properties.
const maxVarDepth = 8

// ComputedLayout stores the resolved position and size after a layout pass.
type ComputedLayout struct {
	// Final computed values in pixels
	X      float32
	Y      float32
	Width  float32
	Height float32

	// Intrinsic width of the content (single-line text width for text
	// elements); larger than Width when the content is clipped.
	ContentWidth float32

	// Fixed is set for viewport-anchored elements.
	Fixed bool

	// Whether this layout is valid (computed and not hidden)
	Valid bool
}

var (
	cellWidth  = DefaultCellWidth
	lineHeight = DefaultLineHeight
)

// measureTextWidthFunc is the function used to measure single-line text width.
// This can be swapped out for testing or for a proportional-font host.
var measureTextWidthFunc = defaultMeasureTextWidth

// defaultMeasureTextWidth measures text in monospace cells, counting East
// Asian wide runes and emoji as two cells.
func defaultMeasureTextWidth(text string) float32 {
	return float32(runewidth.StringWidth(text)) * cellWidth
}

// SetMeasureTextWidthFunc allows setting a custom text measurement function.
// Passing nil restores the monospace measurer.
func SetMeasureTextWidthFunc(fn func(text string) float32) {
	if fn == nil {
		fn = defaultMeasureTextWidth
	}
	measureTextWidthFunc = fn
}

// SetTextMetrics configures the monospace cell width and the line height.
// Non-positive values restore the defaults.
func SetTextMetrics(cell, line float32) {
	if cell <= 0 {
		cell = DefaultCellWidth
	}
	if line <= 0 {
		line = DefaultLineHeight
	}
	cellWidth, lineHeight = cell, line
}

// MeasureText returns the single-line width of text.
func MeasureText(text string) float32 {
	if text == "" {
		return 0
	}
	return measureTextWidthFunc(text)
}

// ComputeLayout lays out the tree rooted at root inside the viewport.
// Containers stack children vertically; HStacks place them in a row where
// children without a width share the leftover space; text is a single line
// whose box height is the line height. Fixed elements are placed last, at
// their SetFixedPosition coordinates.
func ComputeLayout(root *Element, viewportWidth, viewportHeight float32) {
	if root == nil {
		return
	}
	p := &layoutPass{
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
		seen:           make(map[*Element]bool),
		before:         make(map[*Element]float32),
	}
	p.node(root, 0, 0, viewportWidth, false)

	for i := 0; i < len(p.fixed); i++ {
		p.place(p.fixed[i])
	}

	// Width handlers run once the whole tree is consistent.
	for _, e := range p.resized {
		if width := e.ClientWidth(); width != p.before[e] {
			e.notifyWidthChange(width)
		}
	}
}

type layoutPass struct {
	viewportWidth  float32
	viewportHeight float32
	fixed          []*Element
	seen           map[*Element]bool

	// Widths before this pass, for elements whose width was rewritten.
	before  map[*Element]float32
	resized []*Element
}

// node lays out e at (x, y) and returns its outer size. When assigned is
// set, avail is the element's final width and its own width style is skipped.
func (p *layoutPass) node(e *Element, x, y, avail float32, assigned bool) (width, height float32) {
	style := e.Style()
	if style.Hidden() {
		p.clear(e)
		return 0, 0
	}
	if style.Fixed() {
		if !p.seen[e] {
			p.seen[e] = true
			p.fixed = append(p.fixed, e)
		}
		return 0, 0
	}

	width = avail
	if !assigned && style.Width != nil {
		if w, ok := resolveLength(e, *style.Width, avail); ok {
			width = w
		}
	}

	height, contentWidth := p.box(e, x, y, width, style)
	p.store(e, ComputedLayout{
		X: x, Y: y, Width: width, Height: height,
		ContentWidth: contentWidth,
		Valid:        true,
	})
	return width, height
}

// box lays out e's content at the given width and returns its height.
func (p *layoutPass) box(e *Element, x, y, width float32, style tw.StyleProperties) (height, contentWidth float32) {
	gap := float32(0)
	if style.Gap != nil {
		gap = *style.Gap
	}

	switch e.Kind() {
	case KindText:
		contentWidth = MeasureText(e.Text())
		height = lineHeight
	case KindHStack:
		height, contentWidth = p.row(e, x, y, width, gap)
	default:
		height, contentWidth = p.column(e, x, y, width, gap)
	}

	if style.Height != nil {
		if h, ok := resolveLength(e, *style.Height, p.viewportHeight); ok {
			height = h
		}
	}
	return height, contentWidth
}

func (p *layoutPass) column(e *Element, x, y, width, gap float32) (height, contentWidth float32) {
	cy := y
	placed := 0
	for _, c := range e.Children() {
		if placed > 0 {
			cy += gap
		}
		w, h := p.node(c, x, cy, width, false)
		if w == 0 && h == 0 {
			if placed > 0 {
				cy -= gap
			}
			continue
		}
		cy += h
		placed++
		contentWidth = max(contentWidth, w)
	}
	return cy - y, contentWidth
}

func (p *layoutPass) row(e *Element, x, y, width, gap float32) (height, contentWidth float32) {
	children := e.Children()

	// First pass: resolve explicit widths, count flexible children.
	widths := make([]float32, len(children))
	flexible := make([]bool, len(children))
	inFlow := 0
	flexCount := 0
	used := float32(0)
	for i, c := range children {
		style := c.Style()
		if style.Hidden() || style.Fixed() {
			continue
		}
		inFlow++
		if style.Width != nil {
			if w, ok := resolveLength(c, *style.Width, width); ok {
				widths[i] = w
				used += w
				continue
			}
		}
		flexible[i] = true
		flexCount++
	}
	if inFlow > 1 {
		used += gap * float32(inFlow-1)
	}

	share := float32(0)
	if flexCount > 0 {
		share = max(width-used, 0) / float32(flexCount)
	}

	// Second pass: place children left to right.
	cx := x
	placed := 0
	for i, c := range children {
		style := c.Style()
		if style.Hidden() || style.Fixed() {
			p.node(c, cx, y, 0, true)
			continue
		}
		if placed > 0 {
			cx += gap
		}
		w := widths[i]
		if flexible[i] {
			w = share
		}
		_, h := p.node(c, cx, y, w, true)
		cx += w
		placed++
		height = max(height, h)
	}
	return height, cx - x
}

// place positions a fixed element against the viewport.
func (p *layoutPass) place(e *Element) {
	style := e.Style()
	width := intrinsicWidth(e)
	if style.Width != nil {
		if w, ok := resolveLength(e, *style.Width, p.viewportWidth); ok {
			width = w
		}
	}

	left, top, tx, ty := e.FixedPosition()
	height, _ := p.box(e, 0, 0, width, style)
	x := left + tx/100*width
	y := top + ty/100*height
	height, contentWidth := p.box(e, x, y, width, style)

	p.store(e, ComputedLayout{
		X: x, Y: y, Width: width, Height: height,
		ContentWidth: contentWidth,
		Fixed:        true,
		Valid:        true,
	})
}

// intrinsicWidth is the width an element needs to show its content unclipped.
func intrinsicWidth(e *Element) float32 {
	switch e.Kind() {
	case KindText:
		return MeasureText(e.Text())
	case KindHStack:
		total := float32(0)
		for _, c := range e.Children() {
			if c.Visible() {
				total += intrinsicWidth(c)
			}
		}
		return total
	default:
		widest := float32(0)
		for _, c := range e.Children() {
			if c.Visible() {
				widest = max(widest, intrinsicWidth(c))
			}
		}
		return widest
	}
}

// resolveLength converts a length to pixels, substituting var() references
// from the element's custom properties (inherited from ancestors).
func resolveLength(e *Element, l tw.Length, avail float32) (float32, bool) {
	for depth := 0; l.IsVar(); depth++ {
		if depth >= maxVarDepth {
			return 0, false
		}
		raw, ok := e.LookupProperty(l.Var)
		if !ok {
			raw = l.Fallback
		}
		next, ok := tw.ParseLength(raw)
		if !ok {
			return 0, false
		}
		l = next
	}
	return l.Resolve(avail), true
}

func (p *layoutPass) clear(e *Element) {
	p.store(e, ComputedLayout{})
	for _, c := range e.Children() {
		p.clear(c)
	}
}

// store records e's new layout and remembers its width from before the pass
// if the width changed.
func (p *layoutPass) store(e *Element, l ComputedLayout) {
	old := e.setLayout(l)
	if old == l.Width {
		return
	}
	if _, ok := p.before[e]; !ok {
		p.before[e] = old
		p.resized = append(p.resized, e)
	}
}

func (e *Element) setLayout(l ComputedLayout) (oldWidth float32) {
	e.mu.Lock()
	oldWidth = e.computedLayout.Width
	e.computedLayout = l
	e.mu.Unlock()
	return oldWidth
}
