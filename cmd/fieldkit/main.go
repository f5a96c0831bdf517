package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/fieldkit/cmd/fieldkit/commands"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "render":
		err = commands.Render(args)
	case "watch":
		err = commands.Watch(args)
	case "init":
		err = commands.Init(args)
	case "version", "-v", "--version":
		fmt.Printf("fieldkit version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`fieldkit - headless form field renderer

Usage: fieldkit <command> [options]

Commands:
  render          Build a form, settle it and print every field's state
  watch           Re-render a form definition whenever it changes
  init            Write a default fieldkit.toml
  version         Print version information
  help            Show this help message

Examples:
  fieldkit render                              Render the built-in showcase form
  fieldkit render -touch                       Show every field's error message
  fieldkit render -touch -hover firstName      Hover a clipped error and place its tooltip
  fieldkit render -form signup.yaml -set age=17 -json
  fieldkit watch -form signup.toml
  fieldkit init -example signup.toml

Configuration:
  fieldkit.toml in the working directory sets the form, viewport, text
  metrics, theme and log level. FIELDKIT_FORM, FIELDKIT_WIDTH,
  FIELDKIT_HEIGHT, FIELDKIT_CELL_WIDTH, FIELDKIT_ERROR_COLOR and
  FIELDKIT_LOG_LEVEL override it.`)
}
