package fieldkit

import (
	"testing"

	"github.com/agiangrant/fieldkit/reactive"
)

func TestControlLifecycle(t *testing.T) {
	rt := reactive.NewRuntime()
	c := NewControl(rt, "", Required(), MinLength(2))

	if c.Valid() || c.Touched() || c.Dirty() {
		t.Fatalf("new control: valid %v touched %v dirty %v", c.Valid(), c.Touched(), c.Dirty())
	}
	if !c.HasError(KindRequired) {
		t.Error("empty value lacks a required error")
	}

	c.SetValue("a")
	if !c.Dirty() {
		t.Error("Dirty() = false after SetValue")
	}
	if e := c.Error(KindMinLength); e == nil || e.RequiredLength != 2 {
		t.Errorf("Error(minlength) = %v, want RequiredLength 2", e)
	}

	c.SetValue("ab")
	if !c.Valid() {
		t.Errorf("Valid() = false, errors %v", c.Errors())
	}

	c.MarkAsTouched()
	c.Reset()
	if c.Value() != "" || c.Touched() || c.Dirty() {
		t.Errorf("after Reset: value %q touched %v dirty %v", c.Value(), c.Touched(), c.Dirty())
	}
}

func TestControlSetValueRunsObserversOnce(t *testing.T) {
	rt := reactive.NewRuntime()
	c := NewControl(rt, "", Required())

	runs := 0
	rt.Effect(func() {
		c.Value()
		c.Dirty()
		runs++
	})

	c.SetValue("x")
	if runs != 2 {
		t.Errorf("effect runs = %d, want 2", runs)
	}

	c.SetValue("x")
	if runs != 2 {
		t.Errorf("effect reran on an unchanged value: runs = %d", runs)
	}
}

func TestControlWouldRejectAsRequired(t *testing.T) {
	rt := reactive.NewRuntime()

	tests := []struct {
		name       string
		validators []Validator
		want       bool
	}{
		{"none", nil, false},
		{"required", []Validator{Required()}, true},
		{"only length", []Validator{MinLength(3)}, false},
		{"required among others", []Validator{Email(), Required()}, true},
	}

	for _, tt := range tests {
		c := NewControl(rt, "filled", tt.validators...)
		if got := c.WouldRejectAsRequired(nil); got != tt.want {
			t.Errorf("%s: WouldRejectAsRequired() = %v, want %v", tt.name, got, tt.want)
		}
		if c.Value() != "filled" || c.Dirty() {
			t.Errorf("%s: probe changed control state", tt.name)
		}
	}
}

func TestControlFlags(t *testing.T) {
	rt := reactive.NewRuntime()
	c := NewControl(rt, 0)

	c.MarkAsDirty()
	c.MarkAsTouched()
	if !c.Dirty() || !c.Touched() {
		t.Fatal("flags not set")
	}
	c.MarkAsPristine()
	c.MarkAsUntouched()
	if c.Dirty() || c.Touched() {
		t.Error("flags not cleared")
	}
}

func TestControlIDsAreUnique(t *testing.T) {
	rt := reactive.NewRuntime()
	a, b := NewControl(rt, nil), NewControl(rt, nil)
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("IDs %q and %q", a.ID(), b.ID())
	}
}
