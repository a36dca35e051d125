package pipeline

import "fmt"

// CommandMissingError is raised when an invoked name has no live
// registration and no hidden-command record.
type CommandMissingError struct {
	Name         string
	CommandText  string
}

func (e *CommandMissingError) Error() string {
	return fmt.Sprintf("command missing: %q (from %q)", e.Name, e.CommandText)
}

// CommandUnavailableError is raised when an invoked name matches a
// hidden-command record; Reason carries the recorded explanation.
type CommandUnavailableError struct {
	Name        string
	Reason      string
	CommandText string
}

func (e *CommandUnavailableError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("command unavailable: %q (from %q)", e.Name, e.CommandText)
	}
	return fmt.Sprintf("command unavailable: %q: %s (from %q)", e.Name, e.Reason, e.CommandText)
}

// UnknownLabelError is raised when the interpreter's nextLabel cursor
// names a label absent from the queue.
type UnknownLabelError struct {
	Label       string
	CommandText string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("unknown label: %q (from %q)", e.Label, e.CommandText)
}

// UnknownVariableError is raised by VariableStore.Get when a name is not
// present in the local (and, if requested, global) store.
type UnknownVariableError struct {
	Name string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown variable: %q", e.Name)
}

// ReadOnlyViolationError is raised by VariableStore.SafeSet against a
// variable previously marked read-only.
type ReadOnlyViolationError struct {
	Name string
}

func (e *ReadOnlyViolationError) Error() string {
	return fmt.Sprintf("read-only violation: %q", e.Name)
}

// FilterFailureError wraps an engine-typed error raised by a filter,
// annotated with the failing command's text and normalized name.
// Non-engine errors from filters are never wrapped — they propagate to
// the caller of Execute unchanged.
type FilterFailureError struct {
	Name        string
	CommandText string
	Cause       error
}

func (e *FilterFailureError) Error() string {
	return fmt.Sprintf("filter failure in %q (from %q): %v", e.Name, e.CommandText, e.Cause)
}

func (e *FilterFailureError) Unwrap() error {
	return e.Cause
}

// isEngineError reports whether err is one of this package's own typed
// errors, as opposed to an arbitrary error returned by filter code. Only
// engine-typed errors get wrapped in a FilterFailureError.
func isEngineError(err error) bool {
	switch err.(type) {
	case *CommandMissingError, *CommandUnavailableError, *UnknownLabelError,
		*UnknownVariableError, *ReadOnlyViolationError, *FilterFailureError:
		return true
	default:
		return false
	}
}
