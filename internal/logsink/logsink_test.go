package logsink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenCreatesDirectoryAndAppends(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app-data", "logs")

	handles, err := Open(dir)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if _, err := handles.Stdout.WriteString("from stdout\n"); err != nil {
		t.Fatalf("write stdout handle: %v", err)
	}
	if _, err := handles.Stderr.WriteString("from stderr\n"); err != nil {
		t.Fatalf("write stderr handle: %v", err)
	}
	if err := handles.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	// A second open must append, not truncate prior history.
	handles, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	if _, err := handles.Stdout.WriteString("after restart\n"); err != nil {
		t.Fatalf("write after reopen: %v", err)
	}
	if err := handles.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	for _, want := range []string{"from stdout", "from stderr", "after restart"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("log file missing %q, got:\n%s", want, data)
		}
	}
}

func TestOpenFailsWhenDirectoryBlocked(t *testing.T) {
	blocked := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(blocked, []byte("not a directory"), 0o644); err != nil {
		t.Fatalf("write blocking file: %v", err)
	}

	_, err := Open(filepath.Join(blocked, "logs"))
	if err == nil {
		t.Fatal("expected error when the log directory cannot be created")
	}
	if !strings.Contains(err.Error(), "create log directory") {
		t.Fatalf("expected descriptive directory error, got %v", err)
	}
}
