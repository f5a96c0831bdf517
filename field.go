// Package fieldkit provides reactive form field widgets for a retained
// element tree: Field derives presentation state from a validatable control,
// and HelperText shows one line of hint or error text that reveals its full
// content in a tooltip when clipped.
package fieldkit

import (
	"log/slog"

	"github.com/agiangrant/fieldkit/reactive"
	"github.com/agiangrant/fieldkit/retained"
)

// Node is anything that renders to a retained element. *Field and
// *HelperText are Nodes; wrap plain elements with Raw.
type Node interface {
	Element() *retained.Element
}

type rawNode struct{ e *retained.Element }

func (n rawNode) Element() *retained.Element { return n.e }

// Raw adapts a plain element to Node.
func Raw(e *retained.Element) Node {
	return rawNode{e}
}

// FieldConfig configures a Field. Zero values select the defaults.
type FieldConfig struct {
	Name     string // element name of the field root, default "field"
	Width    string // default "200px"
	Height   string // default "60px"
	Control  ValidatableControl
	Label    string
	Required bool // forces the required marker regardless of the control
}

const (
	defaultFieldName   = "field"
	defaultFieldWidth  = "200px"
	defaultFieldHeight = "60px"
)

// Field wraps form content and derives its display state from a control.
// It never validates and never writes to the control.
type Field struct {
	logger *slog.Logger

	width    *reactive.Signal[string]
	height   *reactive.Signal[string]
	control  *reactive.Signal[ValidatableControl]
	label    *reactive.Signal[string]
	required *reactive.Signal[bool]

	isInvalid  *reactive.Computed[bool]
	isTouched  *reactive.Computed[bool]
	isDirty    *reactive.Computed[bool]
	isRequired *reactive.Computed[bool]
	showLabel  *reactive.Computed[bool]

	root     *retained.Element
	labelRow *retained.Element
	labelEl  *retained.Element
	marker   *retained.Element
	content  *retained.Element

	helper  *HelperText
	effects []*reactive.Effect
}

// NewField builds a field around content. The first *HelperText among the
// content nodes becomes the field's helper; all nodes are mounted inside the
// field's root in order.
func NewField(rt *reactive.Runtime, cfg FieldConfig, content ...Node) *Field {
	if cfg.Name == "" {
		cfg.Name = defaultFieldName
	}
	if cfg.Width == "" {
		cfg.Width = defaultFieldWidth
	}
	if cfg.Height == "" {
		cfg.Height = defaultFieldHeight
	}

	f := &Field{
		logger:   rt.Logger(),
		width:    reactive.NewSignal(rt, cfg.Width),
		height:   reactive.NewSignal(rt, cfg.Height),
		control:  reactive.NewSignalFunc(rt, cfg.Control, sameControl),
		label:    reactive.NewSignal(rt, cfg.Label),
		required: reactive.NewSignal(rt, cfg.Required),
	}

	f.isInvalid = reactive.NewComputed(rt, func() bool {
		ctrl := f.control.Get()
		return ctrl != nil && !ctrl.Valid() && ctrl.Touched()
	})
	f.isTouched = reactive.NewComputed(rt, func() bool {
		ctrl := f.control.Get()
		return ctrl != nil && ctrl.Touched()
	})
	f.isDirty = reactive.NewComputed(rt, func() bool {
		ctrl := f.control.Get()
		return ctrl != nil && ctrl.Dirty()
	})
	f.isRequired = reactive.NewComputed(rt, func() bool {
		if f.required.Get() {
			return true
		}
		ctrl := f.control.Get()
		return ctrl != nil && f.probeRequired(ctrl)
	})
	f.showLabel = reactive.NewComputed(rt, func() bool {
		return len(f.label.Get()) > 0
	})

	f.build(cfg.Name, content)

	f.effects = append(f.effects,
		rt.Effect(f.renderSize),
		rt.Effect(f.render),
	)
	return f
}

func sameControl(a, b ValidatableControl) bool {
	return a == b
}

func (f *Field) build(name string, content []Node) {
	f.labelEl = retained.Text(name+"-label", "", "text-gray-700 font-medium")
	f.marker = retained.Text(name+"-required", "*", "w-4 text-error hidden")
	f.labelRow = retained.HStack(name+"-label-row", "gap-1 hidden", f.labelEl, f.marker)
	f.content = retained.Container(name+"-content", "")

	for _, n := range content {
		if n == nil {
			continue
		}
		if ht, ok := n.(*HelperText); ok && f.helper == nil {
			f.helper = ht
		}
		f.content.AddChild(n.Element())
	}

	f.root = retained.Container(name,
		"field w-[var(--field-width)] h-[var(--field-height)]",
		f.labelRow, f.content)
}

// probeRequired asks the control whether it would reject an empty value as
// required. A panicking control counts as not required.
func (f *Field) probeRequired(ctrl ValidatableControl) (required bool) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Debug("field.required_probe.failed", slog.Any("panic", r))
			required = false
		}
	}()
	return ctrl.WouldRejectAsRequired(nil)
}

// ============================================================================
// Effects
// ============================================================================

// renderSize publishes the configured size as custom properties on the
// field's own root, where descendants inherit them.
func (f *Field) renderSize() {
	width, height := f.width.Get(), f.height.Get()
	f.root.SetProperty("--field-width", width)
	f.root.SetProperty("--field-height", height)
}

func (f *Field) render() {
	invalid := f.isInvalid.Get()
	required := f.isRequired.Get()

	f.labelEl.SetText(f.label.Get())
	f.labelRow.SetVisible(f.showLabel.Get())
	f.marker.SetVisible(required)

	f.root.ToggleClass("field-invalid", invalid)
	f.root.ToggleClass("field-touched", f.isTouched.Get())
	f.root.ToggleClass("field-dirty", f.isDirty.Get())
	f.root.ToggleClass("field-required", required)
	f.root.ToggleClass("border-error", invalid)
}

// ============================================================================
// Inputs
// ============================================================================

// SetWidth sets the field width (any CSS length).
func (f *Field) SetWidth(width string) { f.width.Set(width) }

// SetHeight sets the field height (any CSS length).
func (f *Field) SetHeight(height string) { f.height.Set(height) }

// SetControl replaces the control the field reads from. nil makes the field inert.
func (f *Field) SetControl(ctrl ValidatableControl) { f.control.Set(ctrl) }

// SetLabel sets the label text. An empty label hides the label row.
func (f *Field) SetLabel(label string) { f.label.Set(label) }

// SetRequired sets the required override.
func (f *Field) SetRequired(required bool) { f.required.Set(required) }

// ============================================================================
// Display State
// ============================================================================

// IsInvalid reports whether the control is invalid and has been touched.
func (f *Field) IsInvalid() bool { return f.isInvalid.Get() }

// IsTouched reports whether the control has been touched.
func (f *Field) IsTouched() bool { return f.isTouched.Get() }

// IsDirty reports whether the control's value was changed by the user.
func (f *Field) IsDirty() bool { return f.isDirty.Get() }

// HasError is an alias of IsInvalid.
func (f *Field) HasError() bool { return f.isInvalid.Get() }

// IsRequired reports whether the required marker is shown: the override is
// set, or the control rejects an empty value as required.
func (f *Field) IsRequired() bool { return f.isRequired.Get() }

// ShowLabel reports whether the label is non-empty.
func (f *Field) ShowLabel() bool { return f.showLabel.Get() }

// Width returns the configured width.
func (f *Field) Width() string { return f.width.Get() }

// Height returns the configured height.
func (f *Field) Height() string { return f.height.Get() }

// Label returns the label text.
func (f *Field) Label() string { return f.label.Get() }

// Control returns the control, or nil.
func (f *Field) Control() ValidatableControl { return f.control.Get() }

// ============================================================================
// Tree
// ============================================================================

// Element returns the field's root element.
func (f *Field) Element() *retained.Element { return f.root }

// HelperText returns the helper discovered among the content, or nil.
func (f *Field) HelperText() *HelperText { return f.helper }

// Dispose stops the field's effects and those of its helper.
func (f *Field) Dispose() {
	for _, e := range f.effects {
		e.Stop()
	}
	f.effects = nil
	if f.helper != nil {
		f.helper.Dispose()
	}
}
