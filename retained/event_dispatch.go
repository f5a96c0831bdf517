package retained

// EventDispatcher routes pointer movement through the tree and maintains
// hover state, delivering enter/leave events as the hover chain changes.
type EventDispatcher struct {
	root func() *Element

	hovered      *Element   // Deepest element under the pointer
	hoveredChain []*Element // Root to deepest
}

// NewEventDispatcher creates a dispatcher over the tree returned by root.
func NewEventDispatcher(root func() *Element) *EventDispatcher {
	return &EventDispatcher{root: root}
}

// HitTestResult contains the result of a hit test.
type HitTestResult struct {
	Element *Element
	// Chain is the path from root to target.
	Chain []*Element
}

// HitTest finds the topmost visible element at the given viewport coordinates,
// using bounds from the last layout pass.
func (d *EventDispatcher) HitTest(x, y float32) *HitTestResult {
	root := d.root()
	if root == nil {
		return nil
	}
	chain := make([]*Element, 0, 16)
	target := hitTestRecursive(root, x, y, &chain)
	if target == nil {
		return nil
	}
	return &HitTestResult{Element: target, Chain: chain}
}

// hitTestRecursive walks children last-first so later siblings win, and
// descends into fixed children even when they lie outside the parent's box.
func hitTestRecursive(e *Element, x, y float32, chain *[]*Element) *Element {
	if !e.Visible() {
		return nil
	}

	*chain = append(*chain, e)
	children := e.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if hit := hitTestRecursive(children[i], x, y, chain); hit != nil {
			return hit
		}
	}

	if e.BoundingClientRect().Contains(x, y) {
		return e
	}
	*chain = (*chain)[:len(*chain)-1]
	return nil
}

// DispatchMouseMove updates hover state for a pointer at (x, y).
// Returns true if the hover chain changed.
func (d *EventDispatcher) DispatchMouseMove(x, y float32) bool {
	var newHovered *Element
	var newChain []*Element
	if result := d.HitTest(x, y); result != nil {
		newHovered = result.Element
		newChain = result.Chain
	}

	if chainsEqual(d.hoveredChain, newChain) {
		return false
	}
	d.updateHoverState(newHovered, x, y, newChain)
	return true
}

// DispatchMouseLeaveWindow clears hover state as if the pointer left the viewport.
func (d *EventDispatcher) DispatchMouseLeaveWindow() {
	if len(d.hoveredChain) == 0 {
		return
	}
	d.updateHoverState(nil, -1, -1, nil)
}

// updateHoverState handles the transition between hovered elements.
// Parents stay hovered when the pointer moves to a child.
func (d *EventDispatcher) updateHoverState(newHovered *Element, x, y float32, newChain []*Element) {
	oldChain := d.hoveredChain

	oldSet := make(map[*Element]bool, len(oldChain))
	for _, e := range oldChain {
		oldSet[e] = true
	}
	newSet := make(map[*Element]bool, len(newChain))
	for _, e := range newChain {
		newSet[e] = true
	}

	// Leave deepest first
	for i := len(oldChain) - 1; i >= 0; i-- {
		e := oldChain[i]
		if !newSet[e] {
			e.setHovered(false)
			e.HandleEvent(NewMouseEvent(EventMouseLeave, x, y, e))
		}
	}

	// Enter root first
	for _, e := range newChain {
		if !oldSet[e] {
			e.setHovered(true)
			e.HandleEvent(NewMouseEvent(EventMouseEnter, x, y, e))
		}
	}

	d.hovered = newHovered
	d.hoveredChain = newChain
}

// HoveredElement returns the deepest hovered element.
func (d *EventDispatcher) HoveredElement() *Element {
	return d.hovered
}

func chainsEqual(a, b []*Element) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
