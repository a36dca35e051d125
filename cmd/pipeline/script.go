package main

import (
	"fmt"
	"strconv"
	"strings"

	pipelineengine "github.com/flowctl/pipeline"
)

// parseScript turns plain-text script lines into PipelineCommand records
// using a minimal line-oriented grammar:
//
//	category.name arg1 arg2 ... [=> outVar] [<= inVar] [+>] [#label]
//
// This parser is a demo convenience for the CLI only — the core package
// treats surface syntax as an external collaborator's concern and never
// constructs a PipelineCommand from text itself.
func parseScript(text string) ([]*pipelineengine.PipelineCommand, error) {
	var commands []*pipelineengine.PipelineCommand

	for lineNo, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cmd, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
		}
		commands = append(commands, cmd)
	}

	return commands, nil
}

func parseLine(line string) (*pipelineengine.PipelineCommand, error) {
	label := ""
	if idx := strings.Index(line, "#"); idx >= 0 {
		label = strings.TrimSpace(line[idx+1:])
		line = strings.TrimSpace(line[:idx])
	}

	appendToOutput := false
	if strings.Contains(line, "+>") {
		appendToOutput = true
		line = strings.ReplaceAll(line, "+>", "")
	}

	outVar := ""
	inVar := ""
	cut := len(line)
	if idx := strings.Index(line, "=>"); idx >= 0 {
		outVar = firstWord(line[idx+2:])
		cut = idx
	}
	if idx := strings.Index(line, "<="); idx >= 0 {
		inVar = firstWord(line[idx+2:])
		if idx < cut {
			cut = idx
		}
	}
	line = strings.TrimSpace(line[:cut])

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	cmd := pipelineengine.NewPipelineCommand(fields[0])
	cmd.OriginalText = line
	cmd.Label = label
	for i, arg := range fields[1:] {
		key := strconv.Itoa(i)
		cmd.Args[key] = arg
		cmd.ArgOrder = append(cmd.ArgOrder, key)
	}
	if outVar != "" {
		cmd.OutputVariable = outVar
	}
	if inVar != "" {
		cmd.InputVariable = inVar
	}
	cmd.AppendToOutput = appendToOutput

	return cmd, nil
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
