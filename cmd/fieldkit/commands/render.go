package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/agiangrant/fieldkit/internal/formdef"
	"github.com/agiangrant/fieldkit/internal/showcase"
	"github.com/agiangrant/fieldkit/reactive"
	"github.com/agiangrant/fieldkit/retained"
)

// renderOptions are the simulated interactions applied before printing.
type renderOptions struct {
	Touch  bool
	Values []assignment
	Hover  string
	JSON   bool
	Tree   bool
}

type assignment struct {
	Name, Value string
}

// assignments collects repeated -set name=value flags.
type assignments []assignment

func (a *assignments) String() string {
	parts := make([]string, len(*a))
	for i, v := range *a {
		parts[i] = v.Name + "=" + v.Value
	}
	return strings.Join(parts, ",")
}

func (a *assignments) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	*a = append(*a, assignment{Name: name, Value: value})
	return nil
}

// HoverResult is the tooltip state after hovering a field's indicator.
type HoverResult struct {
	Field     string  `json:"field"`
	Indicator bool    `json:"indicator"`
	Visible   bool    `json:"visible"`
	Left      float32 `json:"left"`
	Top       float32 `json:"top"`
	Text      string  `json:"text"`
}

// RenderResult is the JSON output of the render command.
type RenderResult struct {
	Form   string                `json:"form"`
	Frames uint64                `json:"frames"`
	Fields []showcase.FieldState `json:"fields"`
	Hover  *HoverResult          `json:"hover,omitempty"`
	Tree   *retained.Snapshot    `json:"tree,omitempty"`
	Errors map[string][]string   `json:"errors,omitempty"`
}

// Render implements the 'fieldkit render' command
func Render(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	configPath := fs.String("config", DefaultConfigFile, "Path to fieldkit.toml")
	formPath := fs.String("form", "", "Form definition (default: from fieldkit.toml, else the showcase)")
	touch := fs.Bool("touch", false, "Mark every field touched, as a failed submit does")
	hover := fs.String("hover", "", "Hover the overflow indicator of the named field")
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")
	tree := fs.Bool("tree", false, "Also print the element tree")
	var values assignments
	fs.Var(&values, "set", "Set a field value, name=value (repeatable)")
	fs.Parse(args)

	config, err := LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if *formPath != "" {
		config.Form.Path = *formPath
	}

	return renderOnce(os.Stdout, config, renderOptions{
		Touch:  *touch,
		Values: values,
		Hover:  *hover,
		JSON:   *asJSON,
		Tree:   *tree,
	})
}

// loadDefinition returns the configured form definition or the showcase.
func loadDefinition(config ProjectConfig) (*formdef.Definition, error) {
	if config.Form.Path == "" {
		return showcase.Definition(), nil
	}
	return formdef.Load(config.Form.Path)
}

// renderOnce builds the form on a headless loop, applies opts, lets the loop
// settle and writes the result to w.
func renderOnce(w io.Writer, config ProjectConfig, opts renderOptions) error {
	if err := config.Apply(); err != nil {
		return err
	}
	logger, err := config.Logger(os.Stderr)
	if err != nil {
		return err
	}
	def, err := loadDefinition(config)
	if err != nil {
		return err
	}

	loop := retained.NewLoop(retained.LoopConfig{
		Width:     float32(config.Window.Width),
		Height:    float32(config.Window.Height),
		MaxFrames: config.Window.MaxFrames,
		Logger:    logger,
	})
	rt := reactive.NewRuntime(reactive.WithScheduler(loop), reactive.WithLogger(logger))

	view, err := showcase.Build(rt, loop, def)
	if err != nil {
		return err
	}
	defer view.Dispose()
	loop.SetRoot(view.Element())

	for _, a := range opts.Values {
		if err := view.SetValue(a.Name, a.Value); err != nil {
			return err
		}
	}
	if opts.Touch {
		view.Touch()
	}
	if err := loop.RunUntilIdle(); err != nil {
		return err
	}

	result := RenderResult{
		Form:   def.Name,
		Frames: loop.FrameCount(),
		Fields: view.States(),
	}
	if opts.Hover != "" {
		h, err := hoverField(loop, view, opts.Hover)
		if err != nil {
			return err
		}
		result.Hover = h
	}
	if errs := view.Form().Errors(); len(errs) > 0 && opts.Touch {
		result.Errors = make(map[string][]string, len(errs))
		for name, list := range errs {
			for _, e := range list {
				result.Errors[name] = append(result.Errors[name], e.Error())
			}
		}
	}

	if opts.JSON {
		if opts.Tree {
			snap := retained.TakeSnapshot(view.Element())
			result.Tree = &snap
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if err := writeTable(w, def, result); err != nil {
		return err
	}
	if opts.Tree {
		fmt.Fprintln(w)
		return retained.WriteTree(w, view.Element())
	}
	return nil
}

func hoverField(loop *retained.Loop, view *showcase.View, name string) (*HoverResult, error) {
	e, err := view.Entry(name)
	if err != nil {
		return nil, err
	}
	result := &HoverResult{Field: name, Indicator: e.Helper.ShowIndicator()}
	if !result.Indicator {
		return result, nil
	}

	loop.Hover(e.Helper.Affordance())
	if err := loop.RunUntilIdle(); err != nil {
		return nil, err
	}

	tooltip := e.Helper.Tooltip()
	result.Visible = tooltip.Visible()
	result.Left, result.Top, _, _ = tooltip.FixedPosition()
	result.Text = tooltip.Text()
	return result, nil
}

func writeTable(w io.Writer, def *formdef.Definition, result RenderResult) error {
	title := def.Title
	if title == "" {
		title = def.Name
	}
	fmt.Fprintf(w, "%s (%d fields, settled in %d frames)\n\n", title, len(result.Fields), result.Frames)

	tab := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tab, "FIELD\tSTATE\tVALUE\tHELPER")
	for _, s := range result.Fields {
		label := s.Label
		if s.Required {
			label += " *"
		}
		helper := s.Helper
		if s.Indicator {
			helper += " [!]"
		}
		fmt.Fprintf(tab, "%s\t%s\t%q\t%s\n", label, stateFlags(s), s.Value, helper)
	}
	if err := tab.Flush(); err != nil {
		return err
	}

	if h := result.Hover; h != nil {
		fmt.Fprintln(w)
		if !h.Indicator {
			fmt.Fprintf(w, "hover %s: no overflow indicator\n", h.Field)
		} else {
			fmt.Fprintf(w, "hover %s: tooltip visible=%v at (%g, %g) translate(-50%%, -100%%)\n", h.Field, h.Visible, h.Left, h.Top)
			fmt.Fprintf(w, "  %s\n", h.Text)
		}
	}
	return nil
}

func stateFlags(s showcase.FieldState) string {
	var flags []string
	if s.Invalid {
		flags = append(flags, "invalid")
	}
	if s.Touched {
		flags = append(flags, "touched")
	}
	if s.Dirty {
		flags = append(flags, "dirty")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}
