package tw

import "testing"

func TestArbitraryValues(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		validate func(*testing.T, ComputedStyles)
	}{
		{
			name:  "arbitrary width percentage",
			input: "w-[33%]",
			validate: func(t *testing.T, s ComputedStyles) {
				if s.Base.Width == nil || !s.Base.Width.Percent || s.Base.Width.Value != 33.0 {
					t.Errorf("w-[33%%] should be 33%%, got %v", s.Base.Width)
				}
			},
		},
		{
			name:  "arbitrary height pixels",
			input: "h-[250px]",
			validate: func(t *testing.T, s ComputedStyles) {
				if s.Base.Height == nil || s.Base.Height.Value != 250.0 {
					t.Errorf("h-[250px] should be 250, got %v", s.Base.Height)
				}
			},
		},
		{
			name:  "arbitrary rem width",
			input: "w-[2.5rem]",
			validate: func(t *testing.T, s ComputedStyles) {
				expected := float32(2.5 * 16) // 2.5rem = 40px
				if s.Base.Width == nil || s.Base.Width.Value != expected {
					t.Errorf("w-[2.5rem] should be 40px, got %v", s.Base.Width)
				}
			},
		},
		{
			name:  "arbitrary custom property height",
			input: "h-[var(--helper-height)]",
			validate: func(t *testing.T, s ComputedStyles) {
				if s.Base.Height == nil || s.Base.Height.Var != "--helper-height" {
					t.Errorf("expected var(--helper-height), got %v", s.Base.Height)
				}
			},
		},
		{
			name:  "arbitrary hex color",
			input: "bg-[#1da1f2]",
			validate: func(t *testing.T, s ComputedStyles) {
				if s.Base.BackgroundColor == nil || *s.Base.BackgroundColor != 0x1DA1F2FF {
					t.Errorf("bg-[#1da1f2] should set background color, got %v", s.Base.BackgroundColor)
				}
			},
		},
		{
			name:  "arbitrary shorthand hex color",
			input: "text-[#fff]",
			validate: func(t *testing.T, s ComputedStyles) {
				if s.Base.TextColor == nil || *s.Base.TextColor != 0xFFFFFFFF {
					t.Errorf("text-[#fff] should be white, got %v", s.Base.TextColor)
				}
			},
		},
		{
			name:  "arbitrary border width",
			input: "border-[3px]",
			validate: func(t *testing.T, s ComputedStyles) {
				if s.Base.BorderWidth == nil || *s.Base.BorderWidth != 3 {
					t.Errorf("border-[3px] should be 3, got %v", s.Base.BorderWidth)
				}
			},
		},
		{
			name:  "invalid arbitrary value is ignored",
			input: "w-[wide]",
			validate: func(t *testing.T, s ComputedStyles) {
				if s.Base.Width != nil {
					t.Errorf("w-[wide] should not set width, got %v", s.Base.Width)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, ParseClasses(tt.input))
		})
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		input   string
		want    Length
		wantOK  bool
		resolve float32 // against 400px available
	}{
		{"200px", Length{Value: 200}, true, 200},
		{"60", Length{Value: 60}, true, 60},
		{"1.5rem", Length{Value: 24}, true, 24},
		{"50%", Length{Value: 50, Percent: true}, true, 200},
		{" 20px ", Length{Value: 20}, true, 20},
		{"var(--field-width)", Length{Var: "--field-width"}, true, 0},
		{"var(--field-width, 200px)", Length{Var: "--field-width", Fallback: "200px"}, true, 0},
		{"var(field-width)", Length{}, false, 0},
		{"", Length{}, false, 0},
		{"auto", Length{}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseLength(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseLength(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseLength(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			if r := got.Resolve(400); r != tt.resolve {
				t.Errorf("Resolve(400) = %v, want %v", r, tt.resolve)
			}
		})
	}
}

func TestLengthString(t *testing.T) {
	tests := []struct {
		in   Length
		want string
	}{
		{Length{Value: 200}, "200px"},
		{Length{Value: 12.5, Percent: true}, "12.5%"},
		{Length{Var: "--helper-height"}, "var(--helper-height)"},
		{Length{Var: "--x", Fallback: "4px"}, "var(--x, 4px)"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
