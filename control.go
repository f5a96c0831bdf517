package fieldkit

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/google/uuid"

	"github.com/agiangrant/fieldkit/reactive"
)

// ============================================================================
// ValidatableControl - the contract Field reads
// ============================================================================

// ValidatableControl is the read side of a form control. Field derives its
// display state from these methods and never writes back.
//
// Implementations should keep their state in reactive cells so that reads
// made inside a Computed or Effect are tracked.
type ValidatableControl interface {
	Value() any
	Valid() bool
	Touched() bool
	Dirty() bool
	// Errors returns the active validation failures, empty when valid.
	Errors() []*ValidationError
	// WouldRejectAsRequired reports whether the control's validators would
	// fail candidate with a required error. It must not change control state.
	// Field asks with a nil candidate, standing for an empty input.
	WouldRejectAsRequired(candidate any) bool
}

// ============================================================================
// Validation Errors
// ============================================================================

// ErrorKind identifies the rule a value failed.
type ErrorKind string

const (
	KindRequired  ErrorKind = "required"
	KindEmail     ErrorKind = "email"
	KindMinLength ErrorKind = "minlength"
	KindMaxLength ErrorKind = "maxlength"
	KindMin       ErrorKind = "min"
	KindMax       ErrorKind = "max"
	KindPattern   ErrorKind = "pattern"
	KindInvalid   ErrorKind = "invalid" // custom validators returning plain errors
)

// ValidationError describes one failed rule along with the metadata needed
// to explain it.
type ValidationError struct {
	Kind ErrorKind

	// RequiredLength is the bound for KindMinLength and KindMaxLength.
	RequiredLength int
	// Min and Max are the bounds for KindMin and KindMax.
	Min float64
	Max float64
	// Actual is the offending length (int) or value (float64), when known.
	Actual any

	// Message overrides the default text returned by Error.
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Kind {
	case KindRequired:
		return "value is required"
	case KindEmail:
		return "invalid email address"
	case KindMinLength:
		return fmt.Sprintf("must be at least %d characters", e.RequiredLength)
	case KindMaxLength:
		return fmt.Sprintf("must be at most %d characters", e.RequiredLength)
	case KindMin:
		return "must be at least " + formatNumber(e.Min)
	case KindMax:
		return "must be at most " + formatNumber(e.Max)
	case KindPattern:
		return "invalid format"
	}
	return "invalid value"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// runValidators collects the failures of every validator for value.
// Plain errors from custom validators are reported as KindInvalid.
func runValidators(validators []Validator, value any) []*ValidationError {
	var errs []*ValidationError
	for _, validate := range validators {
		err := validate(value)
		if err == nil {
			continue
		}
		var ve *ValidationError
		if !errors.As(err, &ve) {
			ve = &ValidationError{Kind: KindInvalid, Message: err.Error()}
		}
		errs = append(errs, ve)
	}
	return errs
}

// ============================================================================
// Control - reactive ValidatableControl
// ============================================================================

// Control holds one form value and its interaction state in reactive cells.
// Errors are derived from the value and the validators on demand.
// A Control belongs to the goroutine that owns its runtime.
type Control struct {
	rt      *reactive.Runtime
	id      string
	initial any

	value      *reactive.Signal[any]
	touched    *reactive.Signal[bool]
	dirty      *reactive.Signal[bool]
	validators *reactive.Signal[[]Validator]
	errors     *reactive.Computed[[]*ValidationError]
}

// NewControl creates a pristine, untouched control.
func NewControl(rt *reactive.Runtime, initial any, validators ...Validator) *Control {
	c := &Control{
		rt:         rt,
		id:         uuid.NewString(),
		initial:    initial,
		value:      reactive.NewSignalFunc(rt, initial, reflect.DeepEqual),
		touched:    reactive.NewSignal(rt, false),
		dirty:      reactive.NewSignal(rt, false),
		validators: reactive.NewSignalFunc[[]Validator](rt, validators, nil),
	}
	c.errors = reactive.NewComputed(rt, func() []*ValidationError {
		return runValidators(c.validators.Get(), c.value.Get())
	})
	return c
}

// ID returns the control's unique identifier.
func (c *Control) ID() string {
	return c.id
}

// Value returns the current value.
func (c *Control) Value() any {
	return c.value.Get()
}

// SetValue stores a new value and marks the control dirty, as user input does.
func (c *Control) SetValue(v any) {
	c.rt.Batch(func() {
		c.value.Set(v)
		c.dirty.Set(true)
	})
}

// Errors returns the active validation failures.
func (c *Control) Errors() []*ValidationError {
	return c.errors.Get()
}

// Error returns the failure of the given kind, or nil.
func (c *Control) Error(kind ErrorKind) *ValidationError {
	for _, e := range c.Errors() {
		if e.Kind == kind {
			return e
		}
	}
	return nil
}

// HasError reports whether the control fails the given rule.
func (c *Control) HasError(kind ErrorKind) bool {
	return c.Error(kind) != nil
}

// Valid reports whether every validator accepts the current value.
func (c *Control) Valid() bool {
	return len(c.Errors()) == 0
}

// Touched reports whether the control has been blurred or marked touched.
func (c *Control) Touched() bool {
	return c.touched.Get()
}

// Dirty reports whether the value was changed through SetValue.
func (c *Control) Dirty() bool {
	return c.dirty.Get()
}

// MarkAsTouched marks the control touched.
func (c *Control) MarkAsTouched() {
	c.touched.Set(true)
}

// MarkAsUntouched clears the touched flag.
func (c *Control) MarkAsUntouched() {
	c.touched.Set(false)
}

// MarkAsDirty marks the control dirty without changing its value.
func (c *Control) MarkAsDirty() {
	c.dirty.Set(true)
}

// MarkAsPristine clears the dirty flag.
func (c *Control) MarkAsPristine() {
	c.dirty.Set(false)
}

// Reset restores the initial value and clears the touched and dirty flags.
func (c *Control) Reset() {
	c.rt.Batch(func() {
		c.value.Set(c.initial)
		c.touched.Set(false)
		c.dirty.Set(false)
	})
}

// SetValidators replaces the validator list.
func (c *Control) SetValidators(validators ...Validator) {
	c.validators.Set(validators)
}

// WouldRejectAsRequired runs the validators against candidate.
// The validator list is read tracked, the control value is not involved.
func (c *Control) WouldRejectAsRequired(candidate any) bool {
	for _, e := range runValidators(c.validators.Get(), candidate) {
		if e.Kind == KindRequired {
			return true
		}
	}
	return false
}
