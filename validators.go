package fieldkit

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ============================================================================
// Common Validators
// ============================================================================

// Validator checks a value. It returns nil if the value is acceptable, or an
// error (normally a *ValidationError) describing the failure.
type Validator func(value any) error

// isEmpty reports whether value counts as "no input": nil, an empty string,
// or an empty slice or map.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	switch v := value.(type) {
	case string:
		return v == ""
	case bool:
		// Booleans are always "present"
		return false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func firstMessage(message []string) string {
	if len(message) > 0 {
		return message[0]
	}
	return ""
}

// Required returns a validator that rejects empty values.
func Required(message ...string) Validator {
	msg := firstMessage(message)
	return func(value any) error {
		if isEmpty(value) {
			return &ValidationError{Kind: KindRequired, Message: msg}
		}
		return nil
	}
}

// MinLength returns a validator that checks a string's minimum length in
// characters. Empty values pass so the rule does not shadow Required.
func MinLength(min int, message ...string) Validator {
	msg := firstMessage(message)
	return func(value any) error {
		n, ok := valueLength(value)
		if !ok || n == 0 || n >= min {
			return nil
		}
		return &ValidationError{Kind: KindMinLength, RequiredLength: min, Actual: n, Message: msg}
	}
}

// MaxLength returns a validator that checks a string's maximum length in characters.
func MaxLength(max int, message ...string) Validator {
	msg := firstMessage(message)
	return func(value any) error {
		n, ok := valueLength(value)
		if !ok || n <= max {
			return nil
		}
		return &ValidationError{Kind: KindMaxLength, RequiredLength: max, Actual: n, Message: msg}
	}
}

func valueLength(value any) (int, bool) {
	switch v := value.(type) {
	case string:
		return utf8.RuneCountInString(v), true
	case []string:
		return len(v), true
	case []any:
		return len(v), true
	}
	return 0, false
}

// Simple email regex - not RFC 5322 compliant but good enough for most cases
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email returns a validator that checks for a valid email format.
func Email(message ...string) Validator {
	msg := firstMessage(message)
	return func(value any) error {
		if s, ok := value.(string); ok {
			if s != "" && !emailRegex.MatchString(s) {
				return &ValidationError{Kind: KindEmail, Message: msg}
			}
		}
		return nil
	}
}

// Pattern returns a validator that checks strings against a regex pattern.
// The pattern must match the whole value; ^ and $ are added when missing.
// Pattern panics if the expression does not compile.
func Pattern(pattern string, message ...string) Validator {
	msg := firstMessage(message)
	if !strings.HasPrefix(pattern, "^") {
		pattern = "^" + pattern
	}
	if !strings.HasSuffix(pattern, "$") {
		pattern += "$"
	}
	re := regexp.MustCompile(pattern)

	return func(value any) error {
		if s, ok := value.(string); ok {
			if s != "" && !re.MatchString(s) {
				return &ValidationError{Kind: KindPattern, Actual: s, Message: msg}
			}
		}
		return nil
	}
}

// Min returns a validator that checks a numeric minimum value.
// Numeric strings are parsed; empty and non-numeric values pass.
func Min(min float64, message ...string) Validator {
	msg := firstMessage(message)
	return func(value any) error {
		v, ok := toFloat(value)
		if !ok || v >= min {
			return nil
		}
		return &ValidationError{Kind: KindMin, Min: min, Actual: v, Message: msg}
	}
}

// Max returns a validator that checks a numeric maximum value.
func Max(max float64, message ...string) Validator {
	msg := firstMessage(message)
	return func(value any) error {
		v, ok := toFloat(value)
		if !ok || v <= max {
			return nil
		}
		return &ValidationError{Kind: KindMax, Max: max, Actual: v, Message: msg}
	}
}

func toFloat(value any) (float64, bool) {
	switch val := value.(type) {
	case float32:
		return float64(val), true
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// CustomValidator returns a validator using a custom validation function.
// Plain errors it returns are classified as KindInvalid.
func CustomValidator(fn func(value any) error) Validator {
	return fn
}
