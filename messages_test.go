package fieldkit

import (
	"strings"
	"testing"

	"github.com/agiangrant/fieldkit/reactive"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want Category
	}{
		{KindRequired, CategoryRequired},
		{KindMinLength, CategoryMinLength},
		{KindMaxLength, CategoryMaxLength},
		{KindMin, CategoryMinValue},
		{KindMax, CategoryMaxValue},
		{KindPattern, CategoryPattern},
		{KindEmail, CategoryPattern},
		{KindInvalid, CategoryUnclassified},
		{"whatever", CategoryUnclassified},
	}

	for _, tt := range tests {
		if got := Classify(tt.kind); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestMessageShort(t *testing.T) {
	tests := []struct {
		err  *ValidationError
		want string
	}{
		{&ValidationError{Kind: KindRequired}, "This field is required"},
		{&ValidationError{Kind: KindEmail}, "Please enter a valid email address"},
		{&ValidationError{Kind: KindMinLength, RequiredLength: 8}, "Minimum length is 8 characters"},
		{&ValidationError{Kind: KindMaxLength, RequiredLength: 100}, "Maximum length is 100 characters"},
		{&ValidationError{Kind: KindMin, Min: 18}, "Minimum value is 18"},
		{&ValidationError{Kind: KindMax, Max: 120}, "Maximum value is 120"},
		{&ValidationError{Kind: KindPattern}, "Please enter a valid format"},
		{&ValidationError{Kind: KindInvalid}, "Invalid value"},
		{nil, ""},
	}

	for _, tt := range tests {
		if got := Message(tt.err, false); got != tt.want {
			t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestMessageLong(t *testing.T) {
	got := Message(&ValidationError{Kind: KindMinLength, RequiredLength: 50}, true)
	if !strings.HasPrefix(got, "This field requires a minimum of 50 characters.") {
		t.Errorf("long minlength = %q", got)
	}
	got = Message(&ValidationError{Kind: KindMin, Min: 0}, true)
	if !strings.Contains(got, "for this field is 0.") {
		t.Errorf("long min = %q", got)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name    string
		control ValidatableControl
		want    string
	}{
		{"nil control", nil, ""},
		{"untouched", &fakeControl{errs: []*ValidationError{{Kind: KindRequired}}}, ""},
		{"touched valid", &fakeControl{touched: true, valid: true}, ""},
		{
			"priority",
			&fakeControl{touched: true, errs: []*ValidationError{
				{Kind: KindPattern},
				{Kind: KindMinLength, RequiredLength: 2},
				{Kind: KindRequired},
			}},
			"This field is required",
		},
		{
			"email before length",
			&fakeControl{touched: true, errs: []*ValidationError{
				{Kind: KindMaxLength, RequiredLength: 5},
				{Kind: KindEmail},
			}},
			"Please enter a valid email address",
		},
		{
			"unclassified only",
			&fakeControl{touched: true, errs: []*ValidationError{{Kind: KindInvalid, Message: "nope"}}},
			"Invalid value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.control, false); got != tt.want {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorMessageTracksControl(t *testing.T) {
	rt := reactive.NewRuntime()
	c := NewControl(rt, "", Required(), MinLength(8))

	var msg string
	rt.Effect(func() { msg = ErrorMessage(c, false) })

	if msg != "" {
		t.Fatalf("message before touch = %q", msg)
	}
	c.MarkAsTouched()
	if msg != "This field is required" {
		t.Errorf("message = %q, want required", msg)
	}
	c.SetValue("short")
	if msg != "Minimum length is 8 characters" {
		t.Errorf("message = %q, want minlength", msg)
	}
	c.SetValue("long enough")
	if msg != "" {
		t.Errorf("message = %q, want empty", msg)
	}
}
