package main

import "testing"

func TestParseScriptBasic(t *testing.T) {
	text := "text.append BAR => result\ntext.upper <= result #shout\n"
	commands, err := parseScript(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(commands) != 2 {
		t.Fatalf("got %d commands, want 2", len(commands))
	}

	first := commands[0]
	if first.QualifiedName != "text.append" {
		t.Errorf("got %q, want %q", first.QualifiedName, "text.append")
	}
	if first.Args["0"] != "BAR" {
		t.Errorf("got arg0 %q, want %q", first.Args["0"], "BAR")
	}
	if first.OutputVariable != "result" {
		t.Errorf("got output variable %q, want %q", first.OutputVariable, "result")
	}

	second := commands[1]
	if second.InputVariable != "result" {
		t.Errorf("got input variable %q, want %q", second.InputVariable, "result")
	}
	if second.Label != "shout" {
		t.Errorf("got label %q, want %q", second.Label, "shout")
	}
}

func TestParseScriptSkipsBlankAndCommentLines(t *testing.T) {
	text := "\n# a comment\n\ntext.upper\n"
	commands, err := parseScript(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(commands) != 1 {
		t.Fatalf("got %d commands, want 1", len(commands))
	}
}

func TestParseScriptAppendMarker(t *testing.T) {
	commands, err := parseScript("text.append X +>\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !commands[0].AppendToOutput {
		t.Error("expected AppendToOutput to be true")
	}
}
