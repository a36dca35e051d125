package pipeline

import (
	"strings"
	"time"
)

const (
	coreLabel    = "core.label"
	coreWriteTo  = "core.writeto"
	coreReadFrom = "core.readfrom"
	coreInclude  = "core.include" // reserved; not dispatched by this driver
)

// prepare runs the factory expander to fixed point, appends the
// synthetic end-sink command, lifts core.label arguments into their
// Label field, links every command's SendToLabel to its successor where
// unset, and indexes the result by lowercased label.
func prepare(registry *FilterRegistry, cmds []*PipelineCommand, logger *Logger) ([]*PipelineCommand, map[string]*PipelineCommand) {
	cmds = expandFactories(registry, cmds, logger)

	// Step 2: remove any existing command labeled "end", then append the
	// synthetic sink.
	kept := make([]*PipelineCommand, 0, len(cmds)+1)
	for _, c := range cmds {
		if strings.EqualFold(c.Label, EndLabel) {
			continue
		}
		kept = append(kept, c)
	}
	sink := NewPipelineCommand(coreLabel)
	sink.Args["0"] = EndLabel
	sink.ArgOrder = []string{"0"}
	sink.Label = EndLabel
	sink.Terminal = true
	kept = append(kept, sink)
	cmds = kept

	// Step 3: assign synthetic labels, lift core.label's argument, link
	// SendToLabel to the next command where unset, and index by label.
	for _, c := range cmds {
		if strings.EqualFold(normalizeQualifiedName(c.QualifiedName), coreLabel) && len(c.ArgOrder) > 0 {
			c.Label = c.Args[c.ArgOrder[0]]
		}
		if c.Label == "" {
			c.Label = newSyntheticLabel()
		}
	}
	for i, c := range cmds {
		if c.SendToLabel == "" && !c.Terminal && i+1 < len(cmds) {
			c.SendToLabel = cmds[i+1].Label
		}
	}

	index := make(map[string]*PipelineCommand, len(cmds))
	for _, c := range cmds {
		index[strings.ToLower(c.Label)] = c
	}
	return cmds, index
}

// run drives the label-indexed interpreter's main loop. p must already
// have its command list prepared (factory expansion, linking, indexing)
// and its global variable slot seeded.
func run(p *Pipeline) (string, error) {
	nextLabel := p.commands[0].Label
	for nextLabel != "" {
		cmd, ok := p.index[strings.ToLower(nextLabel)]
		if !ok {
			return "", &UnknownLabelError{Label: nextLabel, CommandText: nextLabel}
		}

		switch normalizeQualifiedName(cmd.QualifiedName) {
		case coreLabel:
			nextLabel = cmd.SendToLabel
		case coreWriteTo:
			current, err := p.local.Get(GlobalVariableSlot, false)
			if err != nil {
				return "", annotate(err, cmd)
			}
			if err := p.local.SafeSet(cmd.OutputVariable, current); err != nil {
				return "", annotate(err, cmd)
			}
			nextLabel = cmd.SendToLabel
		case coreReadFrom:
			value, err := p.local.Get(cmd.InputVariable, true)
			if err != nil {
				return "", annotate(err, cmd)
			}
			p.local.Set(GlobalVariableSlot, value, false)
			nextLabel = cmd.SendToLabel
		default:
			if err := dispatch(p, cmd); err != nil {
				return "", err
			}
			nextLabel = cmd.SendToLabel
		}
	}

	final, err := p.local.Get(GlobalVariableSlot, false)
	if err != nil {
		return "", err
	}

	complete := &PipelineCompleteEvent{Pipeline: p, Value: final}
	globalHooks.firePipelineComplete(complete)
	p.logger.Debug(CatExecutor, "execution complete")
	return complete.Value, nil
}

// dispatch performs full filter dispatch for a single non-pseudo command.
func dispatch(p *Pipeline, cmd *PipelineCommand) error {
	handler, err := p.registry.Resolve(cmd.QualifiedName, cmd.OriginalText)
	if err != nil {
		return err
	}

	resolveVariableArgs(p, cmd)

	input, err := p.local.Get(cmd.InputVariable, true)
	if err != nil {
		return annotate(err, cmd)
	}

	executing := &FilterExecutingEvent{Command: cmd, Input: input}
	p.hooks.fireFilterExecuting(executing)
	cmd = executing.Command
	input = executing.Input

	p.logger.Trace(CatExecutor, "dispatching %s (label %s)", cmd.QualifiedName, cmd.Label)

	started := time.Now()
	entry := &LogEntry{
		Command:      cmd.QualifiedName,
		Label:        cmd.Label,
		OriginalText: cmd.OriginalText,
		StartedAt:    started,
	}

	output, callErr := handler(input, cmd, entry)

	executed := &FilterExecutedEvent{Command: cmd, Output: output, Err: callErr}
	p.hooks.fireFilterExecuted(executed)
	output = executed.Output
	callErr = executed.Err

	entry.ElapsedTime = time.Since(started)

	if callErr != nil {
		entry.Success = false
		entry.Error = callErr.Error()
		p.log = append(p.log, *entry)
		p.logger.Debug(CatExecutor, "%s failed after %s: %v", cmd.QualifiedName, entry.ElapsedTime, callErr)
		if isEngineError(callErr) {
			return &FilterFailureError{Name: normalizeQualifiedName(cmd.QualifiedName), CommandText: cmd.OriginalText, Cause: callErr}
		}
		return callErr
	}

	if cmd.AppendToOutput {
		current, err := p.local.Get(cmd.OutputVariable, false)
		if err == nil {
			output = current + output
		}
	}

	if err := p.local.SafeSet(cmd.OutputVariable, output); err != nil {
		entry.Success = false
		entry.Error = err.Error()
		p.log = append(p.log, *entry)
		return annotate(err, cmd)
	}

	entry.Success = true
	p.log = append(p.log, *entry)
	p.logger.Trace(CatExecutor, "%s succeeded in %s", cmd.QualifiedName, entry.ElapsedTime)
	return nil
}

// resolveVariableArgs replaces every argument value beginning with "$"
// with the current value of the named variable, at dispatch time —
// argument variable references are resolved late, just before the
// filter runs, not when the command was parsed or constructed.
func resolveVariableArgs(p *Pipeline, cmd *PipelineCommand) {
	for key, value := range cmd.Args {
		if !strings.HasPrefix(value, "$") {
			continue
		}
		resolved, err := p.local.Get(value, true)
		if err != nil {
			continue // leave the $-prefixed literal in place on lookup failure
		}
		cmd.Args[key] = resolved
	}
}

// annotate wraps an already-engine-typed error with the current
// command's text and name at the point of observation, for error kinds
// that don't already carry that context. Errors raised with CommandText
// already populated by their call site are returned unchanged.
func annotate(err error, cmd *PipelineCommand) error {
	switch e := err.(type) {
	case *UnknownVariableError:
		return &FilterFailureError{Name: normalizeQualifiedName(cmd.QualifiedName), CommandText: cmd.OriginalText, Cause: e}
	case *ReadOnlyViolationError:
		return &FilterFailureError{Name: normalizeQualifiedName(cmd.QualifiedName), CommandText: cmd.OriginalText, Cause: e}
	default:
		return err
	}
}
