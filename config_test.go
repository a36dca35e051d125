package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.LoggingEnabled {
		t.Error("expected logging to default to disabled")
	}
	if !cfg.StrictVariableLookup {
		t.Error("expected strict variable lookup to default to enabled")
	}
}

func TestLoadGlobalsFromTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "globals.toml")
	contents := `
[globals.apikey]
value = "secret"
read_only = true

[globals.greeting]
value = "hello"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	globals, err := LoadGlobalsFromTOML(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	apikey, ok := globals["apikey"]
	if !ok {
		t.Fatal("expected 'apikey' entry")
	}
	if apikey.Value != "secret" || !apikey.ReadOnly {
		t.Errorf("got %+v, want value=secret read_only=true", apikey)
	}

	greeting, ok := globals["greeting"]
	if !ok {
		t.Fatal("expected 'greeting' entry")
	}
	if greeting.Value != "hello" || greeting.ReadOnly {
		t.Errorf("got %+v, want value=hello read_only=false", greeting)
	}
}
