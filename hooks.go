package pipeline

import "sync"

// PipelineCreatedEvent fires once per Pipeline construction.
type PipelineCreatedEvent struct {
	Pipeline *Pipeline
}

// CommandLoadingEvent fires from addFilter before a registration takes
// effect; setting Cancel suppresses the registration entirely.
type CommandLoadingEvent struct {
	QualifiedName string
	Category      string
	Name          string
	Description   string
	Cancel        bool
}

// PipelineCompleteEvent fires once execution's main loop terminates;
// Value may be rewritten and becomes Execute's return value.
type PipelineCompleteEvent struct {
	Pipeline *Pipeline
	Value    string
}

// FilterDocLoadingEvent fires when a single filter's documentation would
// be recorded; Cancel suppresses the write.
type FilterDocLoadingEvent struct {
	QualifiedName string
	Description   string
	Cancel        bool
}

// CategoryDocLoadingEvent fires when a category's documentation would be
// recorded; Cancel suppresses the write.
type CategoryDocLoadingEvent struct {
	Category string
	Cancel   bool
}

// FilterExecutingEvent fires immediately before a filter callable runs;
// both Input and Command may be rewritten.
type FilterExecutingEvent struct {
	Command *PipelineCommand
	Input   string
}

// FilterExecutedEvent fires immediately after a filter callable returns,
// before the output is written to the variable store; Output may be
// rewritten.
type FilterExecutedEvent struct {
	Command *PipelineCommand
	Output  string
	Err     error
}

// VariableRetrievingEvent fires before a variable lookup; Key may be
// rewritten.
type VariableRetrievingEvent struct {
	Key string
}

// VariableRetrievedEvent fires after a variable lookup; Value may be
// rewritten.
type VariableRetrievedEvent struct {
	Key   string
	Value string
	Found bool
}

// processGlobalHooks is the shared subscriber-list registry for the five
// process-global hook kinds: a registry of subscriber lists keyed by
// event kind, protected for concurrent subscription.
type processGlobalHooks struct {
	mu                    sync.RWMutex
	pipelineCreated       []func(*PipelineCreatedEvent)
	commandLoading        []func(*CommandLoadingEvent)
	pipelineComplete      []func(*PipelineCompleteEvent)
	filterDocLoading      []func(*FilterDocLoadingEvent)
	categoryDocLoading    []func(*CategoryDocLoadingEvent)
}

var globalHooks = &processGlobalHooks{}

func (h *processGlobalHooks) OnPipelineCreated(fn func(*PipelineCreatedEvent)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pipelineCreated = append(h.pipelineCreated, fn)
}

func (h *processGlobalHooks) OnCommandLoading(fn func(*CommandLoadingEvent)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commandLoading = append(h.commandLoading, fn)
}

func (h *processGlobalHooks) OnPipelineComplete(fn func(*PipelineCompleteEvent)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pipelineComplete = append(h.pipelineComplete, fn)
}

func (h *processGlobalHooks) OnFilterDocLoading(fn func(*FilterDocLoadingEvent)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.filterDocLoading = append(h.filterDocLoading, fn)
}

func (h *processGlobalHooks) OnCategoryDocLoading(fn func(*CategoryDocLoadingEvent)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.categoryDocLoading = append(h.categoryDocLoading, fn)
}

func (h *processGlobalHooks) firePipelineCreated(ev *PipelineCreatedEvent) {
	h.mu.RLock()
	subs := append(([]func(*PipelineCreatedEvent))(nil), h.pipelineCreated...)
	h.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}

func (h *processGlobalHooks) fireCommandLoading(ev *CommandLoadingEvent) {
	h.mu.RLock()
	subs := append(([]func(*CommandLoadingEvent))(nil), h.commandLoading...)
	h.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
		if ev.Cancel {
			return
		}
	}
}

func (h *processGlobalHooks) firePipelineComplete(ev *PipelineCompleteEvent) {
	h.mu.RLock()
	subs := append(([]func(*PipelineCompleteEvent))(nil), h.pipelineComplete...)
	h.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}

func (h *processGlobalHooks) fireFilterDocLoading(ev *FilterDocLoadingEvent) {
	h.mu.RLock()
	subs := append(([]func(*FilterDocLoadingEvent))(nil), h.filterDocLoading...)
	h.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
		if ev.Cancel {
			return
		}
	}
}

func (h *processGlobalHooks) fireCategoryDocLoading(ev *CategoryDocLoadingEvent) {
	h.mu.RLock()
	subs := append(([]func(*CategoryDocLoadingEvent))(nil), h.categoryDocLoading...)
	h.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
		if ev.Cancel {
			return
		}
	}
}

// ResetGlobalHooks clears every process-global hook subscription. Exposed
// for tests that need isolation between scenarios sharing the package-level
// registry (see registry_test.go / factory_test.go).
func ResetGlobalHooks() {
	globalHooks.mu.Lock()
	defer globalHooks.mu.Unlock()
	globalHooks.pipelineCreated = nil
	globalHooks.commandLoading = nil
	globalHooks.pipelineComplete = nil
	globalHooks.filterDocLoading = nil
	globalHooks.categoryDocLoading = nil
}

// pipelineHooks is the per-instance subscriber-list set for the four
// per-pipeline hook kinds. Unlike processGlobalHooks, it carries no
// locking of its own — a Pipeline, and its hooks, are used by one
// goroutine at a time.
type pipelineHooks struct {
	filterExecuting    []func(*FilterExecutingEvent)
	filterExecuted     []func(*FilterExecutedEvent)
	variableRetrieving []func(*VariableRetrievingEvent)
	variableRetrieved  []func(*VariableRetrievedEvent)
}

func (h *pipelineHooks) OnFilterExecuting(fn func(*FilterExecutingEvent)) {
	h.filterExecuting = append(h.filterExecuting, fn)
}

func (h *pipelineHooks) OnFilterExecuted(fn func(*FilterExecutedEvent)) {
	h.filterExecuted = append(h.filterExecuted, fn)
}

func (h *pipelineHooks) OnVariableRetrieving(fn func(*VariableRetrievingEvent)) {
	h.variableRetrieving = append(h.variableRetrieving, fn)
}

func (h *pipelineHooks) OnVariableRetrieved(fn func(*VariableRetrievedEvent)) {
	h.variableRetrieved = append(h.variableRetrieved, fn)
}

func (h *pipelineHooks) fireFilterExecuting(ev *FilterExecutingEvent) {
	for _, fn := range h.filterExecuting {
		fn(ev)
	}
}

func (h *pipelineHooks) fireFilterExecuted(ev *FilterExecutedEvent) {
	for _, fn := range h.filterExecuted {
		fn(ev)
	}
}

func (h *pipelineHooks) fireVariableRetrieving(ev *VariableRetrievingEvent) {
	for _, fn := range h.variableRetrieving {
		fn(ev)
	}
}

func (h *pipelineHooks) fireVariableRetrieved(ev *VariableRetrievedEvent) {
	for _, fn := range h.variableRetrieved {
		fn(ev)
	}
}
