package fieldkit

import (
	"testing"

	"github.com/agiangrant/fieldkit/reactive"
	"github.com/agiangrant/fieldkit/retained"
)

// fakeControl is a static ValidatableControl.
type fakeControl struct {
	valid, touched, dirty bool
	required              bool
	panics                bool
	errs                  []*ValidationError
	candidates            []any
}

func (c *fakeControl) Value() any                 { return nil }
func (c *fakeControl) Valid() bool                { return c.valid }
func (c *fakeControl) Touched() bool              { return c.touched }
func (c *fakeControl) Dirty() bool                { return c.dirty }
func (c *fakeControl) Errors() []*ValidationError { return c.errs }

func (c *fakeControl) WouldRejectAsRequired(candidate any) bool {
	c.candidates = append(c.candidates, candidate)
	if c.panics {
		panic("validator exploded")
	}
	return c.required && candidate == nil
}

func TestFieldIsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		valid   bool
		touched bool
		want    bool
	}{
		{"valid untouched", true, false, false},
		{"valid touched", true, true, false},
		{"invalid untouched", false, false, false},
		{"invalid touched", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := reactive.NewRuntime()
			f := NewField(rt, FieldConfig{Control: &fakeControl{valid: tt.valid, touched: tt.touched}})

			if got := f.IsInvalid(); got != tt.want {
				t.Errorf("IsInvalid() = %v, want %v", got, tt.want)
			}
			if got := f.HasError(); got != tt.want {
				t.Errorf("HasError() = %v, want %v", got, tt.want)
			}
			if got := f.Element().HasClass("field-invalid"); got != tt.want {
				t.Errorf("field-invalid class = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldWithoutControlIsInert(t *testing.T) {
	rt := reactive.NewRuntime()
	f := NewField(rt, FieldConfig{})

	if f.IsInvalid() || f.IsTouched() || f.IsDirty() || f.IsRequired() {
		t.Errorf("flags = invalid %v touched %v dirty %v required %v, want all false",
			f.IsInvalid(), f.IsTouched(), f.IsDirty(), f.IsRequired())
	}
}

func TestFieldDefaults(t *testing.T) {
	rt := reactive.NewRuntime()
	f := NewField(rt, FieldConfig{})

	root := f.Element()
	if got, _ := root.Property("--field-width"); got != "200px" {
		t.Errorf("--field-width = %q, want 200px", got)
	}
	if got, _ := root.Property("--field-height"); got != "60px" {
		t.Errorf("--field-height = %q, want 60px", got)
	}
	if f.HelperText() != nil {
		t.Error("HelperText() != nil without helper content")
	}
}

func TestFieldSizeEffect(t *testing.T) {
	rt := reactive.NewRuntime()
	f := NewField(rt, FieldConfig{Width: "320px"})

	f.SetHeight("80px")
	root := f.Element()
	if got, _ := root.Property("--field-width"); got != "320px" {
		t.Errorf("--field-width = %q, want 320px", got)
	}
	if got, _ := root.Property("--field-height"); got != "80px" {
		t.Errorf("--field-height = %q, want 80px", got)
	}

	retained.ComputeLayout(retained.Container("root", "", root), 800, 600)
	if l := root.ComputedLayout(); l.Width != 320 || l.Height != 80 {
		t.Errorf("layout = %vx%v, want 320x80", l.Width, l.Height)
	}
}

func TestFieldRequired(t *testing.T) {
	tests := []struct {
		name     string
		override bool
		control  ValidatableControl
		want     bool
	}{
		{"override without control", true, nil, true},
		{"override with optional control", true, &fakeControl{}, true},
		{"control requires", false, &fakeControl{required: true}, true},
		{"control optional", false, &fakeControl{}, false},
		{"probe panics", false, &fakeControl{panics: true}, false},
		{"override wins over panic", true, &fakeControl{panics: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := reactive.NewRuntime()
			f := NewField(rt, FieldConfig{Control: tt.control, Required: tt.override})
			if got := f.IsRequired(); got != tt.want {
				t.Errorf("IsRequired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldRequiredAsksWithEmptyCandidate(t *testing.T) {
	rt := reactive.NewRuntime()
	ctrl := &fakeControl{required: true}
	f := NewField(rt, FieldConfig{Control: ctrl})

	if !f.IsRequired() {
		t.Fatal("IsRequired() = false for a required control")
	}
	if len(ctrl.candidates) == 0 {
		t.Fatal("WouldRejectAsRequired was never called")
	}
	for i, c := range ctrl.candidates {
		if c != nil {
			t.Errorf("candidates[%d] = %v, want nil", i, c)
		}
	}
}

func TestFieldRequiredOverrideFlips(t *testing.T) {
	rt := reactive.NewRuntime()
	ctrl := NewControl(rt, "")
	f := NewField(rt, FieldConfig{Control: ctrl, Label: "Name"})
	marker := f.Element().Find("field-required")

	if f.IsRequired() || marker.Visible() {
		t.Fatal("required before override")
	}

	f.SetRequired(true)
	if !f.IsRequired() {
		t.Error("IsRequired() = false after override, want true")
	}
	if !marker.Visible() {
		t.Error("required marker hidden after override")
	}
	if !f.Element().HasClass("field-required") {
		t.Error("field-required class missing")
	}
}

func TestFieldRequiredFollowsValidators(t *testing.T) {
	rt := reactive.NewRuntime()
	ctrl := NewControl(rt, "", Required(), MinLength(2))
	f := NewField(rt, FieldConfig{Control: ctrl})

	if !f.IsRequired() {
		t.Fatal("IsRequired() = false with Required validator")
	}
	ctrl.SetValidators(MinLength(2))
	if f.IsRequired() {
		t.Error("IsRequired() = true after removing Required validator")
	}
}

func TestFieldShowLabel(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"", false},
		{"E", true},
		{"Email address", true},
	}

	for _, tt := range tests {
		rt := reactive.NewRuntime()
		f := NewField(rt, FieldConfig{Label: tt.label})
		if got := f.ShowLabel(); got != tt.want {
			t.Errorf("ShowLabel() with %q = %v, want %v", tt.label, got, tt.want)
		}
		row := f.Element().Find("field-label-row")
		if got := row.Visible(); got != tt.want {
			t.Errorf("label row visible with %q = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestFieldTracksControlState(t *testing.T) {
	rt := reactive.NewRuntime()
	ctrl := NewControl(rt, "", Required())
	f := NewField(rt, FieldConfig{Control: ctrl})
	root := f.Element()

	if f.IsInvalid() {
		t.Fatal("IsInvalid() = true before touch")
	}

	ctrl.MarkAsTouched()
	if !f.IsInvalid() || !root.HasClass("field-invalid") || !root.HasClass("field-touched") {
		t.Errorf("after touch: invalid %v, classes %q", f.IsInvalid(), root.Classes())
	}

	ctrl.SetValue("Ada")
	if f.IsInvalid() {
		t.Error("IsInvalid() = true with a valid value")
	}
	if !f.IsDirty() || !root.HasClass("field-dirty") {
		t.Errorf("after SetValue: dirty %v, classes %q", f.IsDirty(), root.Classes())
	}

	f.SetControl(nil)
	if f.IsTouched() || f.IsDirty() || root.HasClass("field-touched") {
		t.Errorf("after SetControl(nil): touched %v dirty %v classes %q", f.IsTouched(), f.IsDirty(), root.Classes())
	}
}

func TestFieldDiscoversFirstHelperText(t *testing.T) {
	rt := reactive.NewRuntime()
	first := NewHelperText(rt, nil, HelperTextConfig{Text: "first"})
	second := NewHelperText(rt, nil, HelperTextConfig{Text: "second"})
	input := retained.Container("input", "h-[24px] border")

	f := NewField(rt, FieldConfig{}, Raw(input), first, second, nil)

	if f.HelperText() != first {
		t.Fatal("HelperText() is not the first helper")
	}
	content := f.Element().Find("field-content")
	children := content.Children()
	if len(children) != 3 {
		t.Fatalf("content children = %d, want 3", len(children))
	}
	if children[0] != input || children[1] != first.Element() || children[2] != second.Element() {
		t.Error("content nodes mounted out of order")
	}
	if content.Parent() != f.Element() {
		t.Error("content not mounted inside the field root")
	}
}

func TestFieldCustomPropertiesReachHelper(t *testing.T) {
	rt := reactive.NewRuntime()
	helper := NewHelperText(rt, nil, HelperTextConfig{Text: "hint"})
	f := NewField(rt, FieldConfig{Width: "240px"}, helper)

	retained.ComputeLayout(retained.Container("root", "", f.Element()), 800, 600)

	if got, ok := helper.TextElement().LookupProperty("--field-width"); !ok || got != "240px" {
		t.Errorf("helper sees --field-width = %q, %v; want 240px", got, ok)
	}
	if got := helper.Element().ClientWidth(); got != 240 {
		t.Errorf("helper row width = %v, want 240", got)
	}
}
