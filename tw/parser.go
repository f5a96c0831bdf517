// Package tw parses the Tailwind-style class strings used to style retained
// elements: named utilities from ClassMap plus arbitrary values such as
// w-[200px], h-[var(--helper-height)] or border-[#dc2626].
package tw

import (
	"fmt"
	"strings"
)

// State represents element interaction state
type State int

const (
	StateDefault State = iota
	StateHover
)

// ParsedClass represents a class with its variant modifiers
type ParsedClass struct {
	State          State
	BaseClass      string
	ArbitraryValue *ArbitraryValue // For arbitrary values like w-[33%]
}

// ArbitraryValue represents a runtime-parsed arbitrary value
type ArbitraryValue struct {
	Property string // e.g., "w", "bg", "text"
	Value    string // e.g., "33%", "#1da1f2", "var(--field-width)"
}

// ParseClasses parses a class string and returns computed styles.
// Unknown classes are ignored, which lets callers mix state marker classes
// (field-invalid, helper-text) with utilities.
// Example: "border border-gray-300 hover:text-gray-900 w-[var(--field-width)]"
func ParseClasses(classStr string) ComputedStyles {
	var computed ComputedStyles

	for _, class := range strings.Fields(classStr) {
		parsed := parseClass(class)

		var partial StyleProperties
		if parsed.ArbitraryValue != nil {
			partial = parseArbitraryValue(parsed.ArbitraryValue)
		} else {
			var ok bool
			partial, ok = lookupClass(parsed.BaseClass)
			if !ok {
				continue
			}
		}

		switch parsed.State {
		case StateHover:
			computed.Hover.Merge(partial)
		default:
			computed.Base.Merge(partial)
		}
	}

	return computed
}

// parseClass splits a class into variant modifiers and base utility
// "hover:text-gray-900" → ParsedClass{State: Hover, BaseClass: "text-gray-900"}
// "w-[33%]" → ParsedClass{ArbitraryValue: {Property: "w", Value: "33%"}}
func parseClass(class string) ParsedClass {
	pc := ParsedClass{State: StateDefault, BaseClass: class}

	// Variants are prefixes before the last colon outside brackets.
	if idx := strings.Index(class, "["); idx >= 0 {
		if colon := strings.LastIndex(class[:idx], ":"); colon >= 0 {
			pc.BaseClass = class[colon+1:]
			pc.State = parseVariants(class[:colon])
		}
	} else if colon := strings.LastIndex(class, ":"); colon >= 0 {
		pc.BaseClass = class[colon+1:]
		pc.State = parseVariants(class[:colon])
	}

	if strings.Contains(pc.BaseClass, "[") && strings.HasSuffix(pc.BaseClass, "]") {
		pc.ArbitraryValue = extractArbitraryValue(pc.BaseClass)
		pc.BaseClass = ""
	}

	return pc
}

func parseVariants(prefix string) State {
	state := StateDefault
	for _, v := range strings.Split(prefix, ":") {
		if v == "hover" {
			state = StateHover
		}
	}
	return state
}

// extractArbitraryValue parses arbitrary value syntax
// "w-[33%]" → ArbitraryValue{Property: "w", Value: "33%"}
func extractArbitraryValue(class string) *ArbitraryValue {
	bracketIdx := strings.Index(class, "[")
	if bracketIdx == -1 {
		return nil
	}

	return &ArbitraryValue{
		Property: strings.TrimSuffix(class[:bracketIdx], "-"),
		Value:    strings.ReplaceAll(strings.TrimSuffix(class[bracketIdx+1:], "]"), "_", " "),
	}
}

// parseArbitraryValue converts arbitrary value to StyleProperties at runtime
func parseArbitraryValue(arb *ArbitraryValue) StyleProperties {
	var partial StyleProperties

	switch arb.Property {
	case "w":
		if l, ok := ParseLength(arb.Value); ok {
			partial.Width = &l
		}
	case "h":
		if l, ok := ParseLength(arb.Value); ok {
			partial.Height = &l
		}
	case "gap":
		if l, ok := ParseLength(arb.Value); ok && !l.IsVar() && !l.Percent {
			partial.Gap = &l.Value
		}
	case "bg":
		partial.BackgroundColor = parseColor(arb.Value)
	case "text":
		partial.TextColor = parseColor(arb.Value)
	case "border":
		if c := parseColor(arb.Value); c != nil {
			partial.BorderColor = c
		} else if l, ok := ParseLength(arb.Value); ok && !l.IsVar() && !l.Percent {
			partial.BorderWidth = &l.Value
		}
	}

	return partial
}

// parseColor parses color values (#RRGGBB or #RGB)
func parseColor(value string) *uint32 {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "#") {
		return nil
	}
	hex := value[1:]

	// Expand shorthand: #RGB → #RRGGBB
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil
	}

	var r, g, b uint32
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return nil
	}
	color := (r << 24) | (g << 16) | (b << 8) | 0xFF // RGBA
	return &color
}

// ParseColor parses a #RRGGBB or #RGB color into 0xRRGGBBAA.
func ParseColor(value string) (uint32, bool) {
	c := parseColor(value)
	if c == nil {
		return 0, false
	}
	return *c, true
}
