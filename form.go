package fieldkit

import (
	"errors"
	"fmt"
	"sync"

	"github.com/agiangrant/fieldkit/reactive"
)

// ErrUnknownField is returned when a form has no control with the given name.
var ErrUnknownField = errors.New("unknown field")

// ============================================================================
// Form - Control Registry and Value Management
// ============================================================================

// Form manages a named, ordered collection of controls.
// The registry is guarded by a mutex; control state itself belongs to the
// runtime's goroutine like any other reactive cell.
type Form struct {
	name string
	rt   *reactive.Runtime

	mu         sync.RWMutex
	controls   map[string]*Control
	fieldOrder []string // registration order for tab navigation
	onSubmit   func(values map[string]any, valid bool)
}

// NewForm creates an empty form.
func NewForm(rt *reactive.Runtime, name string) *Form {
	return &Form{
		name:     name,
		rt:       rt,
		controls: make(map[string]*Control),
	}
}

// Name returns the form's name.
func (f *Form) Name() string {
	return f.name
}

// Runtime returns the runtime the form's controls live in.
func (f *Form) Runtime() *reactive.Runtime {
	return f.rt
}

// ============================================================================
// Control Registration
// ============================================================================

// Add creates a control with the given initial value and validators and
// registers it under name.
func (f *Form) Add(name string, initial any, validators ...Validator) *Control {
	c := NewControl(f.rt, initial, validators...)
	f.Register(name, c)
	return c
}

// Register adds a control under name. Re-registering a name replaces the
// control but keeps its position.
func (f *Form) Register(name string, c *Control) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.controls[name]; !ok {
		f.fieldOrder = append(f.fieldOrder, name)
	}
	f.controls[name] = c
}

// Control returns the control registered under name.
func (f *Form) Control(name string) (*Control, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	c, ok := f.controls[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return c, nil
}

// Fields returns the ordered list of field names (registration order).
func (f *Form) Fields() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	result := make([]string, len(f.fieldOrder))
	copy(result, f.fieldOrder)
	return result
}

// each calls fn for every control in registration order without holding the lock.
func (f *Form) each(fn func(name string, c *Control)) {
	f.mu.RLock()
	names := make([]string, len(f.fieldOrder))
	copy(names, f.fieldOrder)
	controls := make([]*Control, len(names))
	for i, name := range names {
		controls[i] = f.controls[name]
	}
	f.mu.RUnlock()

	for i, name := range names {
		fn(name, controls[i])
	}
}

// ============================================================================
// Value Access
// ============================================================================

// Value returns the current value for a field, or nil if it is unknown.
func (f *Form) Value(name string) any {
	c, err := f.Control(name)
	if err != nil {
		return nil
	}
	return c.Value()
}

// Values returns all field values as a map.
func (f *Form) Values() map[string]any {
	values := make(map[string]any)
	f.each(func(name string, c *Control) {
		values[name] = c.Value()
	})
	return values
}

// SetValue sets a field's value as user input would, marking it dirty.
func (f *Form) SetValue(name string, value any) error {
	c, err := f.Control(name)
	if err != nil {
		return err
	}
	c.SetValue(value)
	return nil
}

// ============================================================================
// Validation State
// ============================================================================

// Valid reports whether every control is valid.
func (f *Form) Valid() bool {
	valid := true
	f.each(func(_ string, c *Control) {
		if !c.Valid() {
			valid = false
		}
	})
	return valid
}

// Errors returns the active failures of every invalid control.
func (f *Form) Errors() map[string][]*ValidationError {
	errs := make(map[string][]*ValidationError)
	f.each(func(name string, c *Control) {
		if e := c.Errors(); len(e) > 0 {
			errs[name] = e
		}
	})
	return errs
}

// MarkAllAsTouched marks every control touched in a single batch.
func (f *Form) MarkAllAsTouched() {
	f.rt.Batch(func() {
		f.each(func(_ string, c *Control) { c.MarkAsTouched() })
	})
}

// ============================================================================
// Submit and Reset
// ============================================================================

// OnSubmit sets the callback invoked when Submit() is called.
func (f *Form) OnSubmit(callback func(values map[string]any, valid bool)) *Form {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onSubmit = callback
	return f
}

// Submit reports whether the form is valid and invokes the OnSubmit callback.
// An invalid form has all of its controls marked touched so their errors show.
func (f *Form) Submit() bool {
	valid := f.Valid()
	if !valid {
		f.MarkAllAsTouched()
	}

	f.mu.RLock()
	callback := f.onSubmit
	f.mu.RUnlock()

	if callback != nil {
		callback(f.Values(), valid)
	}
	return valid
}

// Reset restores every control to its initial, untouched, pristine state.
func (f *Form) Reset() {
	f.rt.Batch(func() {
		f.each(func(_ string, c *Control) { c.Reset() })
	})
}

// ============================================================================
// Tab Navigation
// ============================================================================

// NextField returns the next field name after the given one (wraps around).
func (f *Form) NextField(current string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for i, name := range f.fieldOrder {
		if name == current {
			return f.fieldOrder[(i+1)%len(f.fieldOrder)]
		}
	}

	// Not found, return first field
	if len(f.fieldOrder) > 0 {
		return f.fieldOrder[0]
	}
	return ""
}

// PrevField returns the previous field name before the given one (wraps around).
func (f *Form) PrevField(current string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for i, name := range f.fieldOrder {
		if name == current {
			return f.fieldOrder[(i-1+len(f.fieldOrder))%len(f.fieldOrder)]
		}
	}

	// Not found, return last field
	if len(f.fieldOrder) > 0 {
		return f.fieldOrder[len(f.fieldOrder)-1]
	}
	return ""
}
