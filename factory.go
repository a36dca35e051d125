package pipeline

// expandFactories walks cmds with a mutable index, rewriting any command
// whose normalized name matches a registered factory pattern into that
// factory's emitted sequence, until a full pass makes no further changes.
//
// This implementation does NOT advance the index past a freshly inserted
// sequence — it re-scans the same position, so emitted commands are
// themselves subject to expansion on the very next iteration of the
// inner walk. Cycle detection is deliberately not performed; a
// self-referential factory recurses forever.
func expandFactories(registry *FilterRegistry, cmds []*PipelineCommand, logger *Logger) []*PipelineCommand {
	for {
		next, changed := expandOnePass(registry, cmds, logger)
		cmds = next
		if !changed {
			return cmds
		}
	}
}

// expandOnePass performs a single left-to-right walk, splicing in the
// first matched factory's emissions and restarting the walk from the
// same index (not advancing past the insertion).
func expandOnePass(registry *FilterRegistry, cmds []*PipelineCommand, logger *Logger) ([]*PipelineCommand, bool) {
	changed := false
	i := 0
	for i < len(cmds) {
		cmd := cmds[i]
		normalized := normalizeQualifiedName(cmd.QualifiedName)
		fn, ok := registry.matchFactory(normalized)
		if !ok {
			i++
			continue
		}

		emitted := fn(cmd)
		logger.Trace(CatFactory, "expanded %s into %d command(s)", normalized, len(emitted))
		for _, e := range emitted {
			if e.OriginalText == "" {
				e.OriginalText = cmd.OriginalText
			}
			e.CommandFactorySource = cmd.OriginalText
		}

		rest := append([]*PipelineCommand(nil), cmds[i+1:]...)
		cmds = append(cmds[:i], append(emitted, rest...)...)
		changed = true
		// Deliberately do not advance i: emitted commands occupying
		// position i are re-examined on the next loop iteration.
	}
	return cmds, changed
}
