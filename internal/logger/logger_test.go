package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "taskdeck.log")
	if err := Init(path); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(Close)

	Info("loaded %d lists", 3)
	WithComponent("source").Warn("fetch failed", "source", "gmail")
	Debug("hidden at info level")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "loaded 3 lists") {
		t.Fatalf("expected info line, got %q", out)
	}
	if !strings.Contains(out, "component=source") || !strings.Contains(out, "source=gmail") {
		t.Fatalf("expected component attrs, got %q", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Fatalf("debug line written at info level: %q", out)
	}
	if Path() != path {
		t.Fatalf("expected path %q, got %q", path, Path())
	}
}

func TestSetDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	if err := Init(path); err != nil {
		t.Fatalf("init: %v", err)
	}
	SetDebug(true)
	t.Cleanup(func() {
		SetDebug(false)
		Close()
	})

	Debug("visible")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "visible") {
		t.Fatalf("expected debug line, got %q", string(data))
	}
}

func TestCloseDiscards(t *testing.T) {
	Close()
	if Path() != "" {
		t.Fatalf("expected empty path after close")
	}
	Error("dropped %s", "silently")
}
