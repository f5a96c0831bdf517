// Package showcase turns a form definition into a grid of Fields whose
// helper text switches between the hint and the current error message.
package showcase

import (
	"fmt"

	"github.com/agiangrant/fieldkit"
	"github.com/agiangrant/fieldkit/internal/formdef"
	"github.com/agiangrant/fieldkit/reactive"
	"github.com/agiangrant/fieldkit/retained"
)

const (
	inputHeight = "h-[24px]"
	rowGap      = "gap-4"
)

// Entry is one built field.
type Entry struct {
	Def     formdef.Field
	Control *fieldkit.Control
	Field   *fieldkit.Field
	Helper  *fieldkit.HelperText
	Input   *retained.Element
}

// FieldState is the observable state of one field.
type FieldState struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Value     string `json:"value"`
	Invalid   bool   `json:"invalid"`
	Touched   bool   `json:"touched"`
	Dirty     bool   `json:"dirty"`
	Required  bool   `json:"required"`
	Helper    string `json:"helper,omitempty"`
	IsError   bool   `json:"is_error"`
	Overflow  bool   `json:"overflow"`
	Indicator bool   `json:"indicator"`
}

// View is a built form.
type View struct {
	def     *formdef.Definition
	rt      *reactive.Runtime
	form    *fieldkit.Form
	root    *retained.Element
	entries []*Entry
	byName  map[string]*Entry
	effects []*reactive.Effect
}

// Build creates a control, a Field and a HelperText for every field in def
// and lays them out in rows of def.ColumnCount(). host receives the helpers'
// after-layout probes; it may be nil.
func Build(rt *reactive.Runtime, host fieldkit.LayoutScheduler, def *formdef.Definition) (*View, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	v := &View{
		def:    def,
		rt:     rt,
		form:   fieldkit.NewForm(rt, def.Name),
		byName: make(map[string]*Entry, len(def.Fields)),
	}

	rows := retained.Container(def.Name, rowGap)
	var row *retained.Element
	for i, fd := range def.Fields {
		e, err := v.buildEntry(host, fd)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fd.Name, err)
		}
		if i%def.ColumnCount() == 0 {
			row = retained.HStack(fmt.Sprintf("%s-row-%d", def.Name, i/def.ColumnCount()+1), rowGap)
			rows.AddChild(row)
		}
		row.AddChild(e.Field.Element())
	}
	v.root = rows
	return v, nil
}

func (v *View) buildEntry(host fieldkit.LayoutScheduler, fd formdef.Field) (*Entry, error) {
	validators, err := fd.Validators()
	if err != nil {
		return nil, err
	}

	e := &Entry{Def: fd}
	e.Control = v.form.Add(fd.Name, fd.Initial, validators...)
	e.Helper = fieldkit.NewHelperText(v.rt, host, fieldkit.HelperTextConfig{Text: fd.Hint})
	e.Input = retained.Text(fd.Name+"-input", fd.Initial, inputHeight+" border border-gray-300 truncate")

	width, height := fd.Width, fd.Height
	if width == "" {
		width = v.def.FieldWidth
	}
	if height == "" {
		height = v.def.FieldHeight
	}
	e.Field = fieldkit.NewField(v.rt, fieldkit.FieldConfig{
		Name:     fd.Name,
		Width:    width,
		Height:   height,
		Control:  e.Control,
		Label:    fd.DisplayLabel(),
		Required: fd.Required,
	}, fieldkit.Raw(e.Input), e.Helper)

	v.effects = append(v.effects,
		v.rt.Effect(func() { e.Input.SetText(display(e.Control.Value())) }),
		v.rt.Effect(func() { syncHelper(e) }),
	)

	v.entries = append(v.entries, e)
	v.byName[fd.Name] = e
	return e, nil
}

// syncHelper shows the error message while the control is invalid and
// touched, and the hint otherwise.
func syncHelper(e *Entry) {
	if msg := fieldkit.ErrorMessage(e.Control, e.Def.LongErrors); msg != "" {
		e.Helper.SetText(msg)
		e.Helper.SetIsError(true)
		return
	}
	e.Helper.SetText(e.Def.Hint)
	e.Helper.SetIsError(false)
}

func display(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Definition returns the definition the view was built from.
func (v *View) Definition() *formdef.Definition { return v.def }

// Form returns the form holding the view's controls.
func (v *View) Form() *fieldkit.Form { return v.form }

// Element returns the root of the field grid.
func (v *View) Element() *retained.Element { return v.root }

// Entries returns the fields in definition order.
func (v *View) Entries() []*Entry { return v.entries }

// Entry returns the named field.
func (v *View) Entry(name string) (*Entry, error) {
	e, ok := v.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", fieldkit.ErrUnknownField, name)
	}
	return e, nil
}

// SetValue sets a field's value as user input would.
func (v *View) SetValue(name string, value any) error {
	return v.form.SetValue(name, value)
}

// Touch marks every field touched, as a failed submit does.
func (v *View) Touch() {
	v.form.MarkAllAsTouched()
}

// States reports the state of every field in definition order.
func (v *View) States() []FieldState {
	states := make([]FieldState, 0, len(v.entries))
	for _, e := range v.entries {
		states = append(states, FieldState{
			Name:      e.Def.Name,
			Label:     e.Field.Label(),
			Value:     display(e.Control.Value()),
			Invalid:   e.Field.IsInvalid(),
			Touched:   e.Field.IsTouched(),
			Dirty:     e.Field.IsDirty(),
			Required:  e.Field.IsRequired(),
			Helper:    e.Helper.Text(),
			IsError:   e.Helper.IsError(),
			Overflow:  e.Helper.HasOverflow(),
			Indicator: e.Helper.ShowIndicator(),
		})
	}
	return states
}

// Dispose stops every effect the view started.
func (v *View) Dispose() {
	for _, eff := range v.effects {
		eff.Stop()
	}
	v.effects = nil
	for _, e := range v.entries {
		e.Field.Dispose()
	}
}
