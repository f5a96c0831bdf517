package fieldkit

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/agiangrant/fieldkit/reactive"
	"github.com/agiangrant/fieldkit/retained"
)

const (
	// OverflowTolerance absorbs sub-pixel rounding when comparing widths.
	OverflowTolerance float32 = 1

	// TooltipOffset is the gap between the affordance and the tooltip's bottom edge.
	TooltipOffset float32 = 8
)

// Element names inside a HelperText subtree.
const (
	helperRowName  = "helper-text"
	helperTextName = "helper-text-content"
	affordanceName = "helper-text-indicator"
	tooltipName    = "helper-text-tooltip"
)

const (
	defaultHelperHeight = "20px"
	affordanceGlyph     = "!"

	// translate(-50%, -100%): anchor the tooltip by its bottom-center.
	tooltipTranslateX = -50
	tooltipTranslateY = -100
)

// LayoutScheduler runs callbacks once the host's next layout pass has
// completed. retained.Loop implements it.
type LayoutScheduler interface {
	AfterLayout(fn func())
}

// TooltipPlacement is the viewport anchor of a tooltip: the point its
// bottom-center is moved to.
type TooltipPlacement struct {
	Left float32
	Top  float32
}

// PlaceTooltip centers the tooltip horizontally over rect and lifts it
// TooltipOffset above rect's top edge.
func PlaceTooltip(rect retained.Bounds) TooltipPlacement {
	return TooltipPlacement{
		Left: rect.X + rect.Width/2,
		Top:  rect.Y - TooltipOffset,
	}
}

// HelperTextConfig configures a HelperText. Zero values select the defaults.
type HelperTextConfig struct {
	Height  string // allotted height, default "20px"
	Text    string
	IsError bool
}

// HelperText renders one line of text under a field. When the rendered text
// is clipped, it shows an indicator whose hover reveals the full text in a
// tooltip.
//
// Overflow is observed, never computed: after every change to the text, the
// height or the text element's laid-out width, the text element is probed
// immediately and once more after the next layout pass, and the later probe
// wins.
type HelperText struct {
	rt     *reactive.Runtime
	host   LayoutScheduler
	logger *slog.Logger

	height  *reactive.Signal[string]
	text    *reactive.Signal[string]
	isError *reactive.Signal[bool]

	// textWidth mirrors the text element's ClientWidth after each layout.
	textWidth *reactive.Signal[float32]

	hasOverflow   *reactive.Signal[bool]
	showIndicator *reactive.Computed[bool]

	root       *retained.Element
	textEl     *retained.Element
	affordance *retained.Element
	tooltip    *retained.Element

	// probes counts overflow effect runs; deferred probes from older runs are dropped.
	probes  int
	measure func(e *retained.Element) (scrollWidth, clientWidth float32)
	effects []*reactive.Effect
}

// NewHelperText builds the helper's element subtree and starts its effects.
func NewHelperText(rt *reactive.Runtime, host LayoutScheduler, cfg HelperTextConfig) *HelperText {
	if cfg.Height == "" {
		cfg.Height = defaultHelperHeight
	}

	h := &HelperText{
		rt:          rt,
		host:        host,
		logger:      rt.Logger(),
		height:      reactive.NewSignal(rt, cfg.Height),
		text:        reactive.NewSignal(rt, cfg.Text),
		isError:     reactive.NewSignal(rt, cfg.IsError),
		textWidth:   reactive.NewSignal[float32](rt, 0),
		hasOverflow: reactive.NewSignal(rt, false),
		measure:     measureElement,
	}
	h.showIndicator = reactive.NewComputed(rt, func() bool {
		return len(h.text.Get()) > 0 && h.hasOverflow.Get()
	})

	h.build()

	h.effects = append(h.effects,
		rt.Effect(h.renderHeight),
		rt.Effect(h.render),
		rt.Effect(h.watchOverflow),
	)
	return h
}

func (h *HelperText) build() {
	id := "tooltip-" + uuid.NewString()

	h.textEl = retained.Text(helperTextName, "", "truncate text-gray-500")
	h.tooltip = retained.Text(tooltipName, "", "fixed hidden bg-gray-900 text-white whitespace-nowrap").
		SetAttr("id", id).
		SetAttr("role", "tooltip")
	h.affordance = retained.Container(affordanceName, "w-4 hidden",
		retained.Text("helper-text-glyph", affordanceGlyph, "text-error font-semibold"),
		h.tooltip,
	).SetAttr("aria-describedby", id)
	h.root = retained.HStack(helperRowName, "w-full h-[var(--helper-height)] gap-1", h.textEl, h.affordance)

	h.textEl.OnWidthChange(func(width float32) {
		h.textWidth.Set(width)
	})
	h.affordance.OnMouseEnter(func(ev *retained.MouseEvent) {
		h.OnHover(ev.Target())
		h.tooltip.SetVisible(true)
	})
	h.affordance.OnMouseLeave(func(*retained.MouseEvent) {
		h.tooltip.SetVisible(false)
	})
}

// ============================================================================
// Effects
// ============================================================================

// renderHeight publishes the allotted height on the text element's parent,
// where the row's h-[var(--helper-height)] picks it up.
func (h *HelperText) renderHeight() {
	height := h.height.Get()
	if parent := h.textEl.Parent(); parent != nil {
		parent.SetProperty("--helper-height", height)
	}
}

func (h *HelperText) render() {
	text := h.text.Get()
	isError := h.isError.Get()
	show := h.showIndicator.Get()

	h.textEl.SetText(text)
	h.textEl.ToggleClass("text-error", isError)
	h.textEl.ToggleClass("text-gray-500", !isError)
	h.root.ToggleClass("helper-text-error", isError)
	h.tooltip.SetText(text)
	h.affordance.SetVisible(show)
	if !show {
		h.tooltip.SetVisible(false)
	}
}

func (h *HelperText) watchOverflow() {
	text := h.text.Get()
	// Read only to re-probe when the text box is resized.
	h.height.Get()
	h.textWidth.Get()

	h.probes++
	if text == "" {
		h.hasOverflow.Set(false)
		return
	}

	h.CheckOverflow()
	if h.host == nil {
		return
	}
	run := h.probes
	h.host.AfterLayout(func() {
		if run != h.probes {
			return
		}
		h.CheckOverflow()
	})
}

// CheckOverflow measures the text element against its last layout and
// stores the result. A fault while measuring counts as no overflow.
func (h *HelperText) CheckOverflow() {
	h.hasOverflow.Set(h.overflowing())
}

func (h *HelperText) overflowing() (overflow bool) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Debug("helper_text.measure.failed", slog.Any("panic", r))
			overflow = false
		}
	}()
	scroll, client := h.measure(h.textEl)
	return scroll > client+OverflowTolerance
}

func measureElement(e *retained.Element) (scrollWidth, clientWidth float32) {
	return e.ScrollWidth(), e.ClientWidth()
}

// ============================================================================
// Hover
// ============================================================================

// OnHover positions the tooltip inside affordance above the affordance's
// current bounding box. It is a no-op when affordance is nil or has no
// tooltip.
func (h *HelperText) OnHover(affordance *retained.Element) {
	if affordance == nil {
		return
	}
	tooltip := affordance.Find(tooltipName)
	if tooltip == nil {
		return
	}
	p := PlaceTooltip(affordance.BoundingClientRect())
	tooltip.SetFixedPosition(p.Left, p.Top, tooltipTranslateX, tooltipTranslateY)
}

// ============================================================================
// Inputs and State
// ============================================================================

// SetText sets the helper text.
func (h *HelperText) SetText(text string) { h.text.Set(text) }

// SetHeight sets the allotted height (any CSS length).
func (h *HelperText) SetHeight(height string) { h.height.Set(height) }

// SetIsError switches between error and hint styling.
func (h *HelperText) SetIsError(isError bool) { h.isError.Set(isError) }

// Text returns the helper text.
func (h *HelperText) Text() string { return h.text.Get() }

// Height returns the allotted height.
func (h *HelperText) Height() string { return h.height.Get() }

// IsError reports whether error styling is active.
func (h *HelperText) IsError() bool { return h.isError.Get() }

// HasOverflow returns the result of the last completed probe.
func (h *HelperText) HasOverflow() bool { return h.hasOverflow.Get() }

// ShowIndicator reports whether the overflow indicator is rendered.
func (h *HelperText) ShowIndicator() bool { return h.showIndicator.Get() }

// Element returns the helper's root row.
func (h *HelperText) Element() *retained.Element { return h.root }

// TextElement returns the element holding the (possibly clipped) text.
func (h *HelperText) TextElement() *retained.Element { return h.textEl }

// Affordance returns the overflow indicator element.
func (h *HelperText) Affordance() *retained.Element { return h.affordance }

// Tooltip returns the tooltip element.
func (h *HelperText) Tooltip() *retained.Element { return h.tooltip }

// Dispose stops the helper's effects.
func (h *HelperText) Dispose() {
	for _, e := range h.effects {
		e.Stop()
	}
	h.effects = nil
}
