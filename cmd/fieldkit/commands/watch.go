package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// debounce coalesces the bursts of events editors produce on save.
const debounce = 100 * time.Millisecond

// Watch implements the 'fieldkit watch' command: render the form, then render
// again whenever its definition file changes.
func Watch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", DefaultConfigFile, "Path to fieldkit.toml")
	formPath := fs.String("form", "", "Form definition to watch (default: from fieldkit.toml)")
	touch := fs.Bool("touch", false, "Mark every field touched on each render")
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")
	fs.Parse(args)

	config, err := LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if *formPath != "" {
		config.Form.Path = *formPath
	}
	if config.Form.Path == "" {
		return errors.New("watch needs a form definition (-form or [form] path)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Watching %s (Ctrl+C to stop)\n", config.Form.Path)
	return watchForm(ctx, os.Stdout, config, renderOptions{Touch: *touch, JSON: *asJSON})
}

// watchForm renders once, then on every change to config.Form.Path until ctx
// is done. Render failures are reported to w and do not stop the watch.
func watchForm(ctx context.Context, w io.Writer, config ProjectConfig, opts renderOptions) error {
	path, err := filepath.Abs(config.Form.Path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()
	// Watch the directory: editors often replace the file rather than write it.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	changes := make(chan struct{}, 1)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != path {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				slog.Debug("fsnotify error", slog.String("err", err.Error()))
			}
		}
	})

	g.Go(func() error {
		render := func() {
			if err := renderOnce(w, config, opts); err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
			}
		}
		render()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-changes:
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(debounce):
			}
			fmt.Fprintf(w, "\n--- %s changed ---\n", filepath.Base(path))
			render()
		}
	})

	return g.Wait()
}
