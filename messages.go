package fieldkit

import "fmt"

// Category groups error kinds for display. Email failures classify as
// CategoryPattern.
type Category int

const (
	CategoryNone Category = iota
	CategoryRequired
	CategoryMinLength
	CategoryMaxLength
	CategoryMinValue
	CategoryMaxValue
	CategoryPattern
	CategoryUnclassified
)

func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryRequired:
		return "required"
	case CategoryMinLength:
		return "min-length"
	case CategoryMaxLength:
		return "max-length"
	case CategoryMinValue:
		return "min-value"
	case CategoryMaxValue:
		return "max-value"
	case CategoryPattern:
		return "pattern-mismatch"
	}
	return "unclassified"
}

// Classify maps an error kind to its display category.
func Classify(kind ErrorKind) Category {
	switch kind {
	case KindRequired:
		return CategoryRequired
	case KindMinLength:
		return CategoryMinLength
	case KindMaxLength:
		return CategoryMaxLength
	case KindMin:
		return CategoryMinValue
	case KindMax:
		return CategoryMaxValue
	case KindPattern, KindEmail:
		return CategoryPattern
	}
	return CategoryUnclassified
}

// messagePriority is the order in which error kinds are reported when a
// control fails several rules at once.
var messagePriority = []ErrorKind{
	KindRequired,
	KindEmail,
	KindMinLength,
	KindMaxLength,
	KindMin,
	KindMax,
	KindPattern,
}

// ErrorMessage returns the user-facing message for a control's most
// important failure, or "" when the control is nil, untouched or valid.
// long selects the explanatory variant of each message.
func ErrorMessage(control ValidatableControl, long bool) string {
	if control == nil || !control.Touched() {
		return ""
	}
	errs := control.Errors()
	if len(errs) == 0 {
		return ""
	}

	byKind := make(map[ErrorKind]*ValidationError, len(errs))
	for _, e := range errs {
		if _, ok := byKind[e.Kind]; !ok {
			byKind[e.Kind] = e
		}
	}
	for _, kind := range messagePriority {
		if e, ok := byKind[kind]; ok {
			return Message(e, long)
		}
	}
	return Message(errs[0], long)
}

// Message returns the short or long text for a single failure.
func Message(e *ValidationError, long bool) string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindRequired:
		if long {
			return "This field is required and must be filled out completely. Please ensure all mandatory information is provided before submitting the form."
		}
		return "This field is required"
	case KindEmail:
		if long {
			return "Please enter a valid email address in the format: username@domain.com. The email must contain an @ symbol and a valid domain name with at least one dot."
		}
		return "Please enter a valid email address"
	case KindMinLength:
		if long {
			return fmt.Sprintf("This field requires a minimum of %d characters. Your current input is too short. Please provide more detailed information to meet the minimum length requirement.", e.RequiredLength)
		}
		return fmt.Sprintf("Minimum length is %d characters", e.RequiredLength)
	case KindMaxLength:
		if long {
			return fmt.Sprintf("This field has a maximum length of %d characters. Your current input exceeds this limit. Please shorten your text to comply with the maximum character count.", e.RequiredLength)
		}
		return fmt.Sprintf("Maximum length is %d characters", e.RequiredLength)
	case KindMin:
		if long {
			return fmt.Sprintf("The minimum allowed value for this field is %s. Please enter a value that is equal to or greater than this minimum requirement.", formatNumber(e.Min))
		}
		return "Minimum value is " + formatNumber(e.Min)
	case KindMax:
		if long {
			return fmt.Sprintf("The maximum allowed value for this field is %s. Please enter a value that is equal to or less than this maximum limit.", formatNumber(e.Max))
		}
		return "Maximum value is " + formatNumber(e.Max)
	case KindPattern:
		if long {
			return "Please enter a valid format that matches the required pattern. The input you provided does not conform to the expected format for this field."
		}
		return "Please enter a valid format"
	}
	if long {
		return "The value you entered is invalid. Please review the field requirements and enter a valid value that meets all specified criteria."
	}
	return "Invalid value"
}
