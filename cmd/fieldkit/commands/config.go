package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/pelletier/go-toml/v2"

	"github.com/agiangrant/fieldkit/retained"
	"github.com/agiangrant/fieldkit/tw"
)

// DefaultConfigFile is the project configuration file name.
const DefaultConfigFile = "fieldkit.toml"

// ProjectConfig represents the fieldkit.toml configuration file
type ProjectConfig struct {
	Form   FormConfig   `toml:"form"`
	Window WindowConfig `toml:"window"`
	Text   TextConfig   `toml:"text"`
	Theme  ThemeConfig  `toml:"theme"`
	Log    LogConfig    `toml:"log"`
}

type FormConfig struct {
	// Form definition (.toml, .yaml or .yml). Empty renders the built-in showcase.
	Path string `toml:"path"`
}

type WindowConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// Upper bound on frames per render before giving up
	MaxFrames int `toml:"max_frames"`
}

// TextConfig sets the monospace text metrics used for layout, in pixels.
type TextConfig struct {
	CellWidth  int `toml:"cell_width"`
	LineHeight int `toml:"line_height"`
}

type ThemeConfig struct {
	// Color of error text and borders (#RRGGBB)
	ErrorColor string `toml:"error_color"`
}

type LogConfig struct {
	// debug, info, warn or error
	Level string `toml:"level"`
}

// envOverrides are the FIELDKIT_* variables that take precedence over the file.
type envOverrides struct {
	Form       string `env:"FIELDKIT_FORM"`
	Width      int    `env:"FIELDKIT_WIDTH"`
	Height     int    `env:"FIELDKIT_HEIGHT"`
	CellWidth  int    `env:"FIELDKIT_CELL_WIDTH"`
	ErrorColor string `env:"FIELDKIT_ERROR_COLOR"`
	LogLevel   string `env:"FIELDKIT_LOG_LEVEL"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		Window: WindowConfig{
			Width:     800,
			Height:    600,
			MaxFrames: 64,
		},
		Text: TextConfig{
			CellWidth:  int(retained.DefaultCellWidth),
			LineHeight: int(retained.DefaultLineHeight),
		},
		Theme: ThemeConfig{
			ErrorColor: "#DC2626",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// LoadConfig loads the configuration from path and applies FIELDKIT_*
// environment overrides. A missing file yields the defaults.
func LoadConfig(path string) (ProjectConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := applyEnv(&config); err != nil {
		return config, err
	}
	return config, nil
}

func applyEnv(config *ProjectConfig) error {
	var env envOverrides
	if err := envdecode.Decode(&env); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return nil
		}
		return fmt.Errorf("failed to read environment: %w", err)
	}

	if env.Form != "" {
		config.Form.Path = env.Form
	}
	if env.Width > 0 {
		config.Window.Width = env.Width
	}
	if env.Height > 0 {
		config.Window.Height = env.Height
	}
	if env.CellWidth > 0 {
		config.Text.CellWidth = env.CellWidth
	}
	if env.ErrorColor != "" {
		config.Theme.ErrorColor = env.ErrorColor
	}
	if env.LogLevel != "" {
		config.Log.Level = env.LogLevel
	}
	return nil
}

// SaveConfig saves the configuration to path
func SaveConfig(path string, config ProjectConfig) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Logger builds a text logger at the configured level.
func (c ProjectConfig) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// Apply installs the text metrics and theme colors.
func (c ProjectConfig) Apply() error {
	retained.SetTextMetrics(float32(c.Text.CellWidth), float32(c.Text.LineHeight))

	if c.Theme.ErrorColor == "" {
		return nil
	}
	color, ok := tw.ParseColor(c.Theme.ErrorColor)
	if !ok {
		return fmt.Errorf("invalid theme error_color %q", c.Theme.ErrorColor)
	}
	tw.Register("text-error", tw.StyleProperties{TextColor: &color})
	tw.Register("border-error", tw.StyleProperties{BorderColor: &color})
	return nil
}
