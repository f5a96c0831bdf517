package tw

// StyleProperties represents concrete style values.
// A nil field means the class list did not set it.
type StyleProperties struct {
	// Colors (0xRRGGBBAA)
	TextColor       *uint32
	BackgroundColor *uint32
	BorderColor     *uint32

	// Borders
	BorderWidth *float32

	// Typography
	FontWeight *int
	WhiteSpace *string // "normal", "nowrap"

	// Sizing
	Width  *Length
	Height *Length

	// Layout
	Display  *string // "block", "flex", "none"
	Position *string // "static", "fixed"
	Gap      *float32

	// Overflow
	OverflowX    *string
	TextOverflow *string // "clip", "ellipsis"
}

// ComputedStyles groups style properties by interaction state.
type ComputedStyles struct {
	Base  StyleProperties
	Hover StyleProperties
}

// Merge copies every property set in p over s.
func (s *StyleProperties) Merge(p StyleProperties) {
	if p.TextColor != nil {
		s.TextColor = p.TextColor
	}
	if p.BackgroundColor != nil {
		s.BackgroundColor = p.BackgroundColor
	}
	if p.BorderColor != nil {
		s.BorderColor = p.BorderColor
	}
	if p.BorderWidth != nil {
		s.BorderWidth = p.BorderWidth
	}
	if p.FontWeight != nil {
		s.FontWeight = p.FontWeight
	}
	if p.WhiteSpace != nil {
		s.WhiteSpace = p.WhiteSpace
	}
	if p.Width != nil {
		s.Width = p.Width
	}
	if p.Height != nil {
		s.Height = p.Height
	}
	if p.Display != nil {
		s.Display = p.Display
	}
	if p.Position != nil {
		s.Position = p.Position
	}
	if p.Gap != nil {
		s.Gap = p.Gap
	}
	if p.OverflowX != nil {
		s.OverflowX = p.OverflowX
	}
	if p.TextOverflow != nil {
		s.TextOverflow = p.TextOverflow
	}
}

// Resolve returns the effective properties for the given hover state.
func (c ComputedStyles) Resolve(hovered bool) StyleProperties {
	s := c.Base
	if hovered {
		s.Merge(c.Hover)
	}
	return s
}

// Hidden reports whether the properties take the element out of rendering.
func (s StyleProperties) Hidden() bool {
	return s.Display != nil && *s.Display == "none"
}

// Fixed reports whether the element is positioned against the viewport.
func (s StyleProperties) Fixed() bool {
	return s.Position != nil && *s.Position == "fixed"
}

// registered holds classes added by the consumer on top of ClassMap.
var registered map[string]StyleProperties

// Register adds or overrides a named utility class.
func Register(class string, style StyleProperties) {
	if registered == nil {
		registered = make(map[string]StyleProperties)
	}
	registered[class] = style
}

// lookupClass returns the properties of a named utility class.
func lookupClass(class string) (StyleProperties, bool) {
	if s, ok := registered[class]; ok {
		return s, true
	}
	s, ok := ClassMap[class]
	return s, ok
}
