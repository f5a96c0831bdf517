package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/agiangrant/fieldkit/internal/formdef"
	"github.com/agiangrant/fieldkit/internal/showcase"
)

// Init implements the 'fieldkit init' command
func Init(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	configPath := fs.String("config", DefaultConfigFile, "Where to write the configuration")
	example := fs.String("example", "", "Also write the showcase form definition to this file (.toml or .yaml)")
	force := fs.Bool("force", false, "Overwrite existing files")
	fs.Parse(args)

	return initProject(*configPath, *example, *force)
}

func initProject(configPath, example string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", configPath)
	}

	config := DefaultConfig()
	config.Form.Path = example
	if err := SaveConfig(configPath, config); err != nil {
		return err
	}
	fmt.Printf("  ✓ Created %s\n", configPath)

	if example == "" {
		return nil
	}
	if _, err := os.Stat(example); err == nil && !force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", example)
	}
	format, err := formdef.FormatOf(example)
	if err != nil {
		return err
	}
	data, err := formdef.Marshal(showcase.Definition(), format)
	if err != nil {
		return fmt.Errorf("failed to marshal form definition: %w", err)
	}
	if err := os.WriteFile(example, data, 0644); err != nil {
		return fmt.Errorf("failed to create %s: %w", example, err)
	}
	fmt.Printf("  ✓ Created %s\n", example)
	return nil
}
