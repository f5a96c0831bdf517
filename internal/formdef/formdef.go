// Package formdef loads declarative form definitions: an ordered list of
// fields, each with a label, hint text and validation rules.
//
// Definitions are read from TOML or YAML; the format follows the file
// extension.
package formdef

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/agiangrant/fieldkit"
)

var (
	// ErrUnknownValidator is returned for a rule whose type is not recognized.
	ErrUnknownValidator = errors.New("unknown validator")
	// ErrUnsupportedFormat is returned for files that are neither TOML nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported form definition format")
	// ErrInvalidDefinition is returned when a definition fails Validate.
	ErrInvalidDefinition = errors.New("invalid form definition")
)

// Format is a serialization format for definitions.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file name's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Definition describes a whole form.
type Definition struct {
	Name    string `toml:"name" yaml:"name"`
	Title   string `toml:"title,omitempty" yaml:"title,omitempty"`
	Columns int    `toml:"columns,omitempty" yaml:"columns,omitempty"` // fields per row, default 3

	// Default field size, any CSS length.
	FieldWidth  string `toml:"field_width,omitempty" yaml:"field_width,omitempty"`
	FieldHeight string `toml:"field_height,omitempty" yaml:"field_height,omitempty"`

	Fields []Field `toml:"fields" yaml:"fields"`
}

// Field describes one form field.
type Field struct {
	Name    string `toml:"name" yaml:"name"`
	Label   string `toml:"label,omitempty" yaml:"label,omitempty"`
	Hint    string `toml:"hint,omitempty" yaml:"hint,omitempty"`
	Initial string `toml:"initial,omitempty" yaml:"initial,omitempty"`

	// LongErrors selects the explanatory variant of error messages.
	LongErrors bool `toml:"long_errors,omitempty" yaml:"long_errors,omitempty"`
	// Required forces the required marker even without a required rule.
	Required bool `toml:"required,omitempty" yaml:"required,omitempty"`

	Width  string `toml:"width,omitempty" yaml:"width,omitempty"`
	Height string `toml:"height,omitempty" yaml:"height,omitempty"`

	Rules []Rule `toml:"rules,omitempty" yaml:"rules,omitempty"`
}

// Rule is one validation rule.
//
// Type is one of required, email, minlength, maxlength, min, max, pattern.
// Length bounds minlength and maxlength, Value bounds min and max, and
// Pattern holds the expression for pattern.
type Rule struct {
	Type    string  `toml:"type" yaml:"type"`
	Length  int     `toml:"length,omitempty" yaml:"length,omitempty"`
	Value   float64 `toml:"value,omitempty" yaml:"value,omitempty"`
	Pattern string  `toml:"pattern,omitempty" yaml:"pattern,omitempty"`
	Message string  `toml:"message,omitempty" yaml:"message,omitempty"`
}

// Load reads and validates the definition at path.
func Load(path string) (*Definition, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	def, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return def, nil
}

// Parse decodes and validates a definition.
func Parse(data []byte, format Format) (*Definition, error) {
	var def Definition
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &def); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Marshal encodes def in the given format.
func Marshal(def *Definition, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(def)
	case FormatYAML:
		return yaml.Marshal(def)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Validate checks field names and rules.
func (d *Definition) Validate() error {
	if len(d.Fields) == 0 {
		return fmt.Errorf("%w: no fields", ErrInvalidDefinition)
	}
	if d.Columns < 0 {
		return fmt.Errorf("%w: columns = %d", ErrInvalidDefinition, d.Columns)
	}
	seen := make(map[string]bool, len(d.Fields))
	for i, f := range d.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: field %d has no name", ErrInvalidDefinition, i)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidDefinition, f.Name)
		}
		seen[f.Name] = true
		if _, err := f.Validators(); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}
	return nil
}

// ColumnCount returns the number of fields per row.
func (d *Definition) ColumnCount() int {
	if d.Columns <= 0 {
		return 3
	}
	return d.Columns
}

// Field returns the field with the given name.
func (d *Definition) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validators builds the field's validators in rule order.
func (f Field) Validators() ([]fieldkit.Validator, error) {
	validators := make([]fieldkit.Validator, 0, len(f.Rules))
	for _, r := range f.Rules {
		v, err := r.Validator()
		if err != nil {
			return nil, err
		}
		validators = append(validators, v)
	}
	return validators, nil
}

// DisplayLabel returns the label, or the field name when no label is set.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Validator builds the rule's validator.
func (r Rule) Validator() (v fieldkit.Validator, err error) {
	switch fieldkit.ErrorKind(strings.ToLower(r.Type)) {
	case fieldkit.KindRequired:
		return fieldkit.Required(r.Message), nil
	case fieldkit.KindEmail:
		return fieldkit.Email(r.Message), nil
	case fieldkit.KindMinLength:
		return fieldkit.MinLength(r.Length, r.Message), nil
	case fieldkit.KindMaxLength:
		return fieldkit.MaxLength(r.Length, r.Message), nil
	case fieldkit.KindMin:
		return fieldkit.Min(r.Value, r.Message), nil
	case fieldkit.KindMax:
		return fieldkit.Max(r.Value, r.Message), nil
	case fieldkit.KindPattern:
		// Pattern panics on a bad expression.
		defer func() {
			if p := recover(); p != nil {
				v, err = nil, fmt.Errorf("invalid pattern %q: %v", r.Pattern, p)
			}
		}()
		return fieldkit.Pattern(r.Pattern, r.Message), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownValidator, r.Type)
}
