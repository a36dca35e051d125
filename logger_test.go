package pipeline

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerSeverityGating(t *testing.T) {
	var out bytes.Buffer
	l := NewLogger(false)
	l.SetOutput(&out)

	l.Trace(CatExecutor, "should not appear")
	l.Debug(CatExecutor, "should not appear either")
	if out.Len() != 0 {
		t.Errorf("expected no output for low-severity messages while disabled, got %q", out.String())
	}

	l.Notice(CatExecutor, "always shown")
	if !strings.Contains(out.String(), "always shown") {
		t.Errorf("expected Notice to be emitted regardless of enabled state, got %q", out.String())
	}
}

func TestLoggerCategoryGating(t *testing.T) {
	var out bytes.Buffer
	l := NewLogger(true)
	l.SetOutput(&out)
	l.EnableCategory(CatExecutor)

	l.Trace(CatFactory, "factory message")
	if out.Len() != 0 {
		t.Errorf("expected CatFactory to stay silent until enabled, got %q", out.String())
	}

	l.Trace(CatExecutor, "executor message")
	if !strings.Contains(out.String(), "executor message") {
		t.Errorf("expected enabled category to log, got %q", out.String())
	}

	l.DisableCategory(CatExecutor)
	out.Reset()
	l.Trace(CatExecutor, "executor message again")
	if out.Len() != 0 {
		t.Errorf("expected disabled category to go silent, got %q", out.String())
	}
}

func TestPipelineWiresLoggerIntoRegistryAndExecutor(t *testing.T) {
	ResetGlobalHooks()

	var out bytes.Buffer
	cfg := DefaultConfig()
	cfg.LoggingEnabled = true

	r := NewFilterRegistry()
	p := NewWithRegistry(cfg, r)
	p.Logger().SetOutput(&out)

	r.AddFilter(func(input string, cmd *PipelineCommand, log *LogEntry) (string, error) {
		return input, nil
	}, "text", "noop", "", nil)
	if !strings.Contains(out.String(), "text.noop") {
		t.Errorf("expected AddFilter to log through the pipeline's wired registry logger, got %q", out.String())
	}

	out.Reset()
	p.AddCommand(NewPipelineCommand("text.noop"))
	if _, err := p.Execute("x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "text.noop") {
		t.Errorf("expected dispatch to log the executed command, got %q", out.String())
	}
}
