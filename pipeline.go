package pipeline

// DefaultRegistry is the process-global filter registry shared by every
// Pipeline created with New. Hosts that want an isolated catalog can
// construct their own FilterRegistry and pass it to NewWithRegistry
// instead.
var DefaultRegistry = NewFilterRegistry()

// GlobalVariables is the process-global variable store every Pipeline's
// local store falls back to on lookup.
var GlobalVariables = NewVariableStore(nil, nil, true)

// Pipeline is an ordered list of commands plus a variable store, executed
// to produce a single string output. It owns its command list, a local
// variable store layered over the process-global one, an execution log,
// and its own per-instance hook subscriptions.
//
// A Pipeline must be used by one goroutine at a time; it carries no
// internal locking of its own.
type Pipeline struct {
	config   Config
	registry *FilterRegistry
	local    *VariableStore
	hooks    *pipelineHooks
	logger   *Logger
	commands []*PipelineCommand
	index    map[string]*PipelineCommand
	log      []LogEntry
	prepared bool
}

// New creates a Pipeline against the process-global DefaultRegistry and
// GlobalVariables, using cfg to control lookup strictness and logging.
// Firing order matches phroun-pawscript/src/pawscript.go's New: construct,
// then fire the creation hook so subscribers can seed state (e.g. local
// variables) before any command runs.
func New(cfg Config) *Pipeline {
	return NewWithRegistry(cfg, DefaultRegistry)
}

// NewWithRegistry creates a Pipeline against an explicit registry, for
// hosts that want catalog isolation between pipelines rather than sharing
// DefaultRegistry.
func NewWithRegistry(cfg Config, registry *FilterRegistry) *Pipeline {
	logger := NewLogger(cfg.LoggingEnabled)
	logger.EnableCategory(CatExecutor)
	logger.EnableCategory(CatRegistry)
	logger.EnableCategory(CatFactory)

	p := &Pipeline{
		config:   cfg,
		registry: registry,
		hooks:    &pipelineHooks{},
		logger:   logger,
	}
	p.local = NewVariableStore(GlobalVariables, p.hooks, cfg.StrictVariableLookup)
	registry.SetLogger(logger)
	globalHooks.firePipelineCreated(&PipelineCreatedEvent{Pipeline: p})
	return p
}

// AddCommand appends cmd to the pipeline's command list. Commands are
// executed in the order added, subject to the #label/sendToLabel
// adornments a parser attached to them.
func (p *Pipeline) AddCommand(cmd *PipelineCommand) {
	p.commands = append(p.commands, cmd)
	p.prepared = false
}

// Hooks exposes this pipeline's per-instance hook-subscription surface
// (filter-executing, filter-executed, variable-retrieving,
// variable-retrieved).
func (p *Pipeline) Hooks() *pipelineHooks { return p.hooks }

// LocalVariables exposes this pipeline's local variable store, e.g. for a
// pipeline-created hook to seed values before Execute runs.
func (p *Pipeline) LocalVariables() *VariableStore { return p.local }

// Logger exposes this pipeline's Logger, e.g. for a host that wants to
// redirect its output or enable additional categories.
func (p *Pipeline) Logger() *Logger { return p.logger }

// Execute runs the pipeline against input, returning the pipeline's
// final value or a typed error. Every call clears the execution
// log and re-seeds the global variable slot; factory expansion, once
// performed, is retained on the instance so repeat calls do not
// re-expand.
func (p *Pipeline) Execute(input string) (string, error) {
	p.log = p.log[:0]

	if !p.prepared {
		p.commands, p.index = prepare(p.registry, p.commands, p.logger)
		p.prepared = true
	}

	p.local.Set(GlobalVariableSlot, input, false)

	return run(p)
}

// Reset clears the pipeline's command list, local variables, and
// execution log, leaving it ready to be rebuilt with AddCommand. Hook
// subscriptions are preserved.
func (p *Pipeline) Reset() {
	p.commands = nil
	p.index = nil
	p.log = nil
	p.prepared = false
	p.local = NewVariableStore(GlobalVariables, p.hooks, p.config.StrictVariableLookup)
}

// ExecutionLog returns the log entries recorded by the most recent
// Execute call.
func (p *Pipeline) ExecutionLog() []LogEntry {
	return append([]LogEntry(nil), p.log...)
}

// Registry returns the FilterRegistry this pipeline resolves commands
// against.
func (p *Pipeline) Registry() *FilterRegistry { return p.registry }
