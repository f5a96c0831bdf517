package fieldkit

import (
	"strings"
	"testing"

	"github.com/agiangrant/fieldkit/reactive"
	"github.com/agiangrant/fieldkit/retained"
)

// manualHost queues after-layout callbacks until run is called.
type manualHost struct {
	pending []func()
}

func (h *manualHost) AfterLayout(fn func()) {
	h.pending = append(h.pending, fn)
}

func (h *manualHost) run() {
	pending := h.pending
	h.pending = nil
	for _, fn := range pending {
		fn()
	}
}

var longHint = strings.Repeat("x", 40) // 320px at the default cell width

// mountHelper places h in a 200px wide root and lays it out once.
func mountHelper(h *HelperText) *retained.Element {
	root := retained.Container("root", "w-[200px]", h.Element())
	retained.ComputeLayout(root, 800, 600)
	return root
}

func TestHelperTextShortTextHasNoIndicator(t *testing.T) {
	rt := reactive.NewRuntime()
	host := &manualHost{}
	h := NewHelperText(rt, host, HelperTextConfig{Text: "short"})

	mountHelper(h)
	host.run()

	if h.HasOverflow() {
		t.Error("HasOverflow() = true for short text")
	}
	if h.ShowIndicator() || h.Affordance().Visible() {
		t.Error("indicator shown for short text")
	}
	if got := h.TextElement().Text(); got != "short" {
		t.Errorf("text = %q, want %q", got, "short")
	}
}

func TestHelperTextDeferredProbeSettlesOverflow(t *testing.T) {
	rt := reactive.NewRuntime()
	host := &manualHost{}
	h := NewHelperText(rt, host, HelperTextConfig{Text: longHint})

	// Nothing has been laid out yet, so the immediate probe sees no overflow.
	if h.HasOverflow() {
		t.Fatal("HasOverflow() = true before any layout")
	}
	if len(host.pending) != 1 {
		t.Fatalf("pending after-layout probes = %d, want 1", len(host.pending))
	}

	mountHelper(h)
	host.run()

	if !h.HasOverflow() {
		t.Error("HasOverflow() = false after the deferred probe")
	}
	if !h.ShowIndicator() || !h.Affordance().Visible() {
		t.Error("indicator hidden for clipped text")
	}
	if got := h.Tooltip().Text(); got != longHint {
		t.Errorf("tooltip text = %q, want the full text", got)
	}
}

func TestHelperTextRepeatedProbeIsStable(t *testing.T) {
	rt := reactive.NewRuntime()
	host := &manualHost{}
	h := NewHelperText(rt, host, HelperTextConfig{Text: longHint})
	mountHelper(h)
	host.run()

	runs := 0
	rt.Effect(func() {
		h.HasOverflow()
		runs++
	})

	h.CheckOverflow()
	h.CheckOverflow()

	if !h.HasOverflow() {
		t.Error("HasOverflow() changed on a repeated probe")
	}
	if runs != 1 {
		t.Errorf("observer runs = %d, want 1", runs)
	}
}

func TestHelperTextStaleProbeIsDropped(t *testing.T) {
	rt := reactive.NewRuntime()
	host := &manualHost{}
	h := NewHelperText(rt, host, HelperTextConfig{Text: longHint})
	mountHelper(h)

	h.SetText("")
	host.run()

	if h.HasOverflow() {
		t.Error("stale deferred probe set HasOverflow() for empty text")
	}
}

func TestHelperTextEmptyTextClearsOverflow(t *testing.T) {
	rt := reactive.NewRuntime()
	host := &manualHost{}
	h := NewHelperText(rt, host, HelperTextConfig{Text: longHint})
	mountHelper(h)
	host.run()

	h.SetText("")
	if h.HasOverflow() {
		t.Error("HasOverflow() = true for empty text")
	}
	if h.Affordance().Visible() {
		t.Error("indicator visible for empty text")
	}
}

func TestHelperTextIndicatorRequiresText(t *testing.T) {
	rt := reactive.NewRuntime()
	h := NewHelperText(rt, nil, HelperTextConfig{Text: "hint"})

	rt.Batch(func() {
		h.hasOverflow.Set(true)
		h.SetText("")

		if !h.HasOverflow() {
			t.Fatal("HasOverflow() = false inside the batch")
		}
		if h.ShowIndicator() {
			t.Error("ShowIndicator() = true with empty text")
		}
	})
}

func TestHelperTextMeasureFaultMeansNoOverflow(t *testing.T) {
	rt := reactive.NewRuntime()
	h := NewHelperText(rt, nil, HelperTextConfig{Text: longHint})
	mountHelper(h)
	h.CheckOverflow()
	if !h.HasOverflow() {
		t.Fatal("HasOverflow() = false before injecting a fault")
	}

	h.measure = func(*retained.Element) (float32, float32) {
		panic("detached")
	}
	h.CheckOverflow()

	if h.HasOverflow() {
		t.Error("HasOverflow() = true after a measurement fault")
	}
}

func TestHelperTextOverflowTolerance(t *testing.T) {
	tests := []struct {
		name           string
		scroll, client float32
		want           bool
	}{
		{"fits", 100, 100, false},
		{"sub-pixel", 100.9, 100, false},
		{"at tolerance", 101, 100, false},
		{"past tolerance", 101.5, 100, true},
		{"clipped", 320, 200, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := reactive.NewRuntime()
			h := NewHelperText(rt, nil, HelperTextConfig{})
			h.measure = func(*retained.Element) (float32, float32) { return tt.scroll, tt.client }

			h.CheckOverflow()
			if got := h.HasOverflow(); got != tt.want {
				t.Errorf("HasOverflow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHelperTextHeightProperty(t *testing.T) {
	rt := reactive.NewRuntime()
	h := NewHelperText(rt, nil, HelperTextConfig{})

	if got, _ := h.Element().Property("--helper-height"); got != "20px" {
		t.Errorf("--helper-height = %q, want 20px", got)
	}
	if _, ok := h.TextElement().Property("--helper-height"); ok {
		t.Error("--helper-height set on the text element itself")
	}

	h.SetHeight("32px")
	mountHelper(h)
	if got := h.Element().ComputedLayout().Height; got != 32 {
		t.Errorf("row height = %v, want 32", got)
	}
}

func TestHelperTextErrorStyling(t *testing.T) {
	rt := reactive.NewRuntime()
	h := NewHelperText(rt, nil, HelperTextConfig{Text: "hint"})

	if h.TextElement().HasClass("text-error") {
		t.Error("text-error set without IsError")
	}
	h.SetIsError(true)
	if !h.TextElement().HasClass("text-error") || h.TextElement().HasClass("text-gray-500") {
		t.Errorf("error classes = %q", h.TextElement().Classes())
	}
}

func TestPlaceTooltip(t *testing.T) {
	tests := []struct {
		rect retained.Bounds
		want TooltipPlacement
	}{
		{retained.Bounds{X: 100, Y: 50, Width: 40, Height: 16}, TooltipPlacement{Left: 120, Top: 42}},
		{retained.Bounds{X: 0, Y: 0, Width: 16, Height: 16}, TooltipPlacement{Left: 8, Top: -8}},
		{retained.Bounds{X: 10.5, Y: 100, Width: 0, Height: 0}, TooltipPlacement{Left: 10.5, Top: 92}},
	}

	for _, tt := range tests {
		if got := PlaceTooltip(tt.rect); got != tt.want {
			t.Errorf("PlaceTooltip(%+v) = %+v, want %+v", tt.rect, got, tt.want)
		}
	}
}

func TestHelperTextOnHoverIgnoresMissingTargets(t *testing.T) {
	rt := reactive.NewRuntime()
	h := NewHelperText(rt, nil, HelperTextConfig{Text: "hint"})
	before := func() [4]float32 {
		l, tp, tx, ty := h.Tooltip().FixedPosition()
		return [4]float32{l, tp, tx, ty}
	}
	want := before()

	h.OnHover(nil)
	h.OnHover(retained.Container("bare", "w-4"))

	if got := before(); got != want {
		t.Errorf("tooltip moved to %v, want %v", got, want)
	}
}

func TestHelperTextHoverOnLoop(t *testing.T) {
	loop := retained.NewLoop(retained.LoopConfig{Width: 400, Height: 300, MaxFrames: 16})
	rt := reactive.NewRuntime(reactive.WithScheduler(loop))

	helper := NewHelperText(rt, loop, HelperTextConfig{Text: longHint})
	field := NewField(rt, FieldConfig{}, helper)
	loop.SetRoot(retained.Container("root", "", field.Element()))

	if err := loop.RunUntilIdle(); err != nil {
		t.Fatalf("RunUntilIdle() = %v", err)
	}
	if !helper.ShowIndicator() {
		t.Fatal("indicator not shown after the loop settled")
	}

	affordance := helper.Affordance()
	if !loop.Hover(affordance) {
		t.Fatal("Hover() did not change the hover chain")
	}
	if !helper.Tooltip().Visible() {
		t.Error("tooltip hidden while hovering the indicator")
	}

	want := PlaceTooltip(affordance.BoundingClientRect())
	left, top, tx, ty := helper.Tooltip().FixedPosition()
	if left != want.Left || top != want.Top {
		t.Errorf("tooltip at (%v, %v), want (%v, %v)", left, top, want.Left, want.Top)
	}
	if tx != -50 || ty != -100 {
		t.Errorf("tooltip translate = (%v, %v), want (-50, -100)", tx, ty)
	}

	loop.Unhover()
	if helper.Tooltip().Visible() {
		t.Error("tooltip visible after the pointer left")
	}
}

func TestHelperTextFollowsFieldWidth(t *testing.T) {
	loop := retained.NewLoop(retained.LoopConfig{Width: 800, Height: 600, MaxFrames: 16})
	rt := reactive.NewRuntime(reactive.WithScheduler(loop))

	helper := NewHelperText(rt, loop, HelperTextConfig{Text: longHint})
	field := NewField(rt, FieldConfig{Width: "600px"}, helper)
	loop.SetRoot(retained.Container("root", "", field.Element()))

	steps := []struct {
		width string
		want  bool
	}{
		{"600px", false},
		{"100px", true},
		{"600px", false},
	}

	for _, step := range steps {
		field.SetWidth(step.width)
		if err := loop.RunUntilIdle(); err != nil {
			t.Fatalf("RunUntilIdle() at %s = %v", step.width, err)
		}
		if got := helper.HasOverflow(); got != step.want {
			text := helper.TextElement()
			t.Errorf("%s: HasOverflow() = %v, want %v (scroll=%v client=%v)",
				step.width, got, step.want, text.ScrollWidth(), text.ClientWidth())
		}
		if got := helper.Affordance().Visible(); got != step.want {
			t.Errorf("%s: indicator visible = %v, want %v", step.width, got, step.want)
		}
	}
}

func TestHelperTextFollowsViewportResize(t *testing.T) {
	loop := retained.NewLoop(retained.LoopConfig{Width: 800, Height: 600, MaxFrames: 16})
	rt := reactive.NewRuntime(reactive.WithScheduler(loop))

	helper := NewHelperText(rt, loop, HelperTextConfig{Text: longHint})
	loop.SetRoot(retained.Container("root", "", helper.Element()))
	if err := loop.RunUntilIdle(); err != nil {
		t.Fatalf("RunUntilIdle() = %v", err)
	}
	if helper.HasOverflow() {
		t.Fatal("HasOverflow() = true in an 800px viewport")
	}

	loop.Resize(200, 600)
	if err := loop.RunUntilIdle(); err != nil {
		t.Fatalf("RunUntilIdle() after Resize = %v", err)
	}
	if !helper.HasOverflow() || !helper.ShowIndicator() {
		t.Errorf("HasOverflow() = %v, ShowIndicator() = %v after narrowing the viewport, want true",
			helper.HasOverflow(), helper.ShowIndicator())
	}
}

func BenchmarkHelperTextCheckOverflow(b *testing.B) {
	rt := reactive.NewRuntime()
	h := NewHelperText(rt, nil, HelperTextConfig{Text: longHint})
	mountHelper(h)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.CheckOverflow()
	}
}
