package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agiangrant/fieldkit/internal/formdef"
)

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, buf *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(buf.String(), want) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("output never contained %q:\n%s", want, buf.String())
}

func TestWatchFormStopsWithContext(t *testing.T) {
	config := DefaultConfig()
	config.Form.Path = writeForm(t, "signup.yaml", signupYAML)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf syncBuffer
	if err := watchForm(ctx, &buf, config, renderOptions{}); err != nil {
		t.Fatalf("watchForm() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Signup (2 fields") {
		t.Errorf("initial render missing:\n%s", buf.String())
	}
}

func TestWatchFormRerendersOnChange(t *testing.T) {
	config := DefaultConfig()
	config.Form.Path = writeForm(t, "signup.yaml", signupYAML)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var buf syncBuffer
	done := make(chan error, 1)
	go func() { done <- watchForm(ctx, &buf, config, renderOptions{}) }()

	waitFor(t, &buf, "Signup (2 fields")

	updated := strings.Replace(signupYAML, "title: Signup", "title: Signup v2", 1)
	if err := os.WriteFile(config.Form.Path, []byte(updated), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, &buf, "Signup v2 (2 fields")

	if err := os.WriteFile(config.Form.Path, []byte("fields: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, &buf, "Error: ")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watchForm() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watchForm did not stop")
	}
}

func TestInitProject(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "fieldkit.toml")
	example := filepath.Join(dir, "showcase.yaml")

	if err := initProject(configPath, example, false); err != nil {
		t.Fatalf("initProject() error = %v", err)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if config.Form.Path != example {
		t.Errorf("Form.Path = %q, want %q", config.Form.Path, example)
	}
	def, err := formdef.Load(example)
	if err != nil {
		t.Fatalf("example definition does not load: %v", err)
	}
	if len(def.Fields) != 36 {
		t.Errorf("example fields = %d, want 36", len(def.Fields))
	}

	if err := initProject(configPath, "", false); err == nil {
		t.Error("initProject() overwrote an existing config without -force")
	}
	if err := initProject(configPath, "", true); err != nil {
		t.Errorf("initProject(force) error = %v", err)
	}
}
