package pipeline

import "strings"

// RegisterStdlib installs a small catalog of illustrative text filters
// into registry under the "text" category: Append, Upper, Lower, Trim,
// Replace. These exist so the package is usable out of the box and so
// tests/the CLI demo have something real to invoke — individual filter
// implementations are otherwise explicitly out of this package's core
// scope. Grounded on phroun-pawscript/src/lib_core.go's
// one-function-per-filter registration style.
func RegisterStdlib(registry *FilterRegistry) {
	registry.AddFilter(filterAppend, "text", "append", "Appends a fixed suffix to the input.", nil)
	registry.AddFilter(filterUpper, "text", "upper", "Uppercases the input.", nil)
	registry.AddFilter(filterLower, "text", "lower", "Lowercases the input.", nil)
	registry.AddFilter(filterTrim, "text", "trim", "Trims leading and trailing whitespace.", nil)
	registry.AddFilter(filterReplace, "text", "replace", "Replaces all occurrences of one substring with another.", nil)
}

func filterAppend(input string, cmd *PipelineCommand, log *LogEntry) (string, error) {
	suffix := cmd.Args["0"]
	return input + suffix, nil
}

func filterUpper(input string, cmd *PipelineCommand, log *LogEntry) (string, error) {
	return strings.ToUpper(input), nil
}

func filterLower(input string, cmd *PipelineCommand, log *LogEntry) (string, error) {
	return strings.ToLower(input), nil
}

func filterTrim(input string, cmd *PipelineCommand, log *LogEntry) (string, error) {
	return strings.TrimSpace(input), nil
}

func filterReplace(input string, cmd *PipelineCommand, log *LogEntry) (string, error) {
	old := cmd.Args["0"]
	replacement := cmd.Args["1"]
	if old == "" {
		return input, nil
	}
	return strings.ReplaceAll(input, old, replacement), nil
}
