package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fbscene/hal"
)

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte("grid: 100\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var logBuf bytes.Buffer
	ch, err := Watch(ctx, path, hal.NewLogger(&logBuf))
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.WriteFile(path, []byte("lines: sideways\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(path, []byte("grid: 64\nlines: aa\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case cfg := <-ch:
			if cfg.Grid == 64 && cfg.Lines == LinesAA {
				return
			}
		case <-deadline:
			t.Fatalf("no reload seen; log %q", logBuf.String())
		}
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte("grid: 100\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := Watch(ctx, path, nil)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("grid: 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case cfg := <-ch:
		t.Fatalf("unexpected reload %+v", cfg)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchMissingDir(t *testing.T) {
	_, err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "scene.yaml"), nil)
	if err == nil || !strings.Contains(err.Error(), "watch") {
		t.Fatalf("err = %v", err)
	}
}
