package pipeline

import "testing"

func TestRegistryOverridePrecedence(t *testing.T) {
	ResetGlobalHooks()
	r := NewFilterRegistry()

	r.AddFilter(func(input string, cmd *PipelineCommand, log *LogEntry) (string, error) {
		return input + "BAR", nil
	}, "Text", "Append", "", nil)

	h, err := r.Resolve("Text.Append", "Text.Append BAR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := h("FOO", NewPipelineCommand("text.append"), &LogEntry{})
	if err != nil || out != "FOOBAR" {
		t.Errorf("got (%q, %v), want (%q, nil)", out, err, "FOOBAR")
	}

	r.AddFilter(func(input string, cmd *PipelineCommand, log *LogEntry) (string, error) {
		return input + "BAZ", nil
	}, "Text", "Append", "", nil)

	h, err = r.Resolve("text.append", "text.append BAZ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, _ = h("FOO", NewPipelineCommand("text.append"), &LogEntry{})
	if out != "FOOBAZ" {
		t.Errorf("got %q, want %q", out, "FOOBAZ")
	}
}

func TestRegistryCustomCategory(t *testing.T) {
	ResetGlobalHooks()
	r := NewFilterRegistry()
	bundle := FilterBundle{
		Category: "customfilters",
		Methods: []FilterMethod{
			{
				Name: "MyMethod",
				Handler: func(input string, cmd *PipelineCommand, log *LogEntry) (string, error) {
					return "fixed output", nil
				},
			},
		},
	}
	r.RegisterType(bundle, "something")

	h, err := r.Resolve("something.MyMethod", "something.MyMethod")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, _ := h("", NewPipelineCommand("something.mymethod"), &LogEntry{})
	if out != "fixed output" {
		t.Errorf("got %q, want %q", out, "fixed output")
	}
}

func TestRegistryRemoveYieldsUnavailable(t *testing.T) {
	ResetGlobalHooks()
	r := NewFilterRegistry()
	r.AddFilter(func(input string, cmd *PipelineCommand, log *LogEntry) (string, error) {
		return input, nil
	}, "text", "append", "", nil)

	r.Remove("text.append", "manually disabled")

	_, err := r.Resolve("text.append", "text.append")
	unavailable, ok := err.(*CommandUnavailableError)
	if !ok {
		t.Fatalf("expected CommandUnavailableError, got %T (%v)", err, err)
	}
	if unavailable.Reason != "manually disabled" {
		t.Errorf("got reason %q, want %q", unavailable.Reason, "manually disabled")
	}
}

func TestRegistryMissingDependency(t *testing.T) {
	ResetGlobalHooks()
	r := NewFilterRegistry()
	r.SetDependencyResolver(func(typeName string) bool {
		return typeName != "SomeUnresolvedType"
	})

	r.AddFilter(func(input string, cmd *PipelineCommand, log *LogEntry) (string, error) {
		return input, nil
	}, "text", "needsdep", "", []string{"SomeUnresolvedType"})

	_, err := r.Resolve("text.needsdep", "text.needsdep")
	unavailable, ok := err.(*CommandUnavailableError)
	if !ok {
		t.Fatalf("expected CommandUnavailableError, got %T (%v)", err, err)
	}
	if unavailable.Reason == "" {
		t.Error("expected a non-empty reason naming the missing dependency")
	}
}

func TestRegistryCommandMissing(t *testing.T) {
	ResetGlobalHooks()
	r := NewFilterRegistry()
	_, err := r.Resolve("text.nonexistent", "text.nonexistent")
	if _, ok := err.(*CommandMissingError); !ok {
		t.Fatalf("expected CommandMissingError, got %T (%v)", err, err)
	}
}

func TestRegistryCommandLoadingHookCancellation(t *testing.T) {
	ResetGlobalHooks()
	globalHooks.OnCommandLoading(func(ev *CommandLoadingEvent) {
		if ev.QualifiedName == "text.append" {
			ev.Cancel = true
		}
	})
	defer ResetGlobalHooks()

	r := NewFilterRegistry()
	r.AddFilter(func(input string, cmd *PipelineCommand, log *LogEntry) (string, error) {
		return input, nil
	}, "text", "append", "", nil)

	_, err := r.Resolve("text.append", "text.append")
	if _, ok := err.(*CommandMissingError); !ok {
		t.Fatalf("expected CommandMissingError (cancelled load leaves no hidden entry), got %T (%v)", err, err)
	}
}

func TestNormalizeQualifiedName(t *testing.T) {
	cases := map[string]string{
		"Text.Append":  "text.append",
		"TEXT.APPEND":  "text.append",
		"text-append.x": "textappend.x",
	}
	for in, want := range cases {
		if got := normalizeQualifiedName(in); got != want {
			t.Errorf("normalizeQualifiedName(%q) = %q, want %q", in, got, want)
		}
	}
}
