package tw

import (
	"fmt"
	"strconv"
	"strings"
)

// remSize is the pixel size of 1rem and 1em.
const remSize = 16.0

// Length is a parsed CSS length. Lengths written as var(--name) are kept
// symbolic and resolved against the element tree at layout time.
type Length struct {
	Value    float32 // pixels, or percentage when Percent is set
	Percent  bool
	Var      string // custom property name, e.g. "--field-width"
	Fallback string // raw fallback from var(--name, fallback)
}

// ParseLength parses "200px", "2.5rem", "50%", "12" (pixels) or
// "var(--name[, fallback])".
func ParseLength(value string) (Length, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Length{}, false
	}

	if strings.HasPrefix(value, "var(") && strings.HasSuffix(value, ")") {
		inner := strings.TrimSuffix(strings.TrimPrefix(value, "var("), ")")
		name, fallback, _ := strings.Cut(inner, ",")
		name = strings.TrimSpace(name)
		if !strings.HasPrefix(name, "--") {
			return Length{}, false
		}
		return Length{Var: name, Fallback: strings.TrimSpace(fallback)}, true
	}

	var numStr string
	var multiplier float32 = 1.0
	percent := false

	switch {
	case strings.HasSuffix(value, "px"):
		numStr = strings.TrimSuffix(value, "px")
	case strings.HasSuffix(value, "%"):
		numStr = strings.TrimSuffix(value, "%")
		percent = true
	case strings.HasSuffix(value, "rem"):
		numStr = strings.TrimSuffix(value, "rem")
		multiplier = remSize
	case strings.HasSuffix(value, "em"):
		numStr = strings.TrimSuffix(value, "em")
		multiplier = remSize
	default:
		numStr = value
	}

	num, err := strconv.ParseFloat(strings.TrimSpace(numStr), 32)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: float32(num) * multiplier, Percent: percent}, true
}

// IsVar reports whether the length references a custom property.
func (l Length) IsVar() bool {
	return l.Var != ""
}

// Resolve converts a concrete length to pixels against the available size.
// Var lengths resolve to 0; callers substitute the property value first.
func (l Length) Resolve(available float32) float32 {
	if l.IsVar() {
		return 0
	}
	if l.Percent {
		return available * l.Value / 100
	}
	return l.Value
}

func (l Length) String() string {
	switch {
	case l.IsVar() && l.Fallback != "":
		return fmt.Sprintf("var(%s, %s)", l.Var, l.Fallback)
	case l.IsVar():
		return fmt.Sprintf("var(%s)", l.Var)
	case l.Percent:
		return strconv.FormatFloat(float64(l.Value), 'f', -1, 32) + "%"
	default:
		return strconv.FormatFloat(float64(l.Value), 'f', -1, 32) + "px"
	}
}
