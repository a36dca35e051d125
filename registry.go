package pipeline

import (
	"regexp"
	"strings"
	"sync"
)

// normalizeQualifiedName lowercases name and strips non-alphanumerics
// from each dot-separated segment: registry keys are always lowercased
// and stripped of non-alphanumerics in each segment.
func normalizeQualifiedName(name string) string {
	segments := strings.Split(name, ".")
	for i, seg := range segments {
		var b strings.Builder
		for _, r := range strings.ToLower(seg) {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			}
		}
		segments[i] = b.String()
	}
	return strings.Join(segments, ".")
}

// FilterDoc is a recorded description for a single registered filter,
// kept in the documentation index.
type FilterDoc struct {
	QualifiedName string
	Description   string
}

// FilterBundle is the registerType input: a type-like collection of
// filter methods plus optional metadata, mirroring the "annotation-driven
// reflection becomes explicit registration" design note. Annotation
// data that would come from reflection in a richer host language is
// supplied directly as struct fields here.
type FilterBundle struct {
	// Category is this bundle's declared category; used for every
	// Method that doesn't specify its own.
	Category string
	Methods  []FilterMethod
}

// FilterMethod is one entry of a FilterBundle: a callable plus the
// metadata that would otherwise come from a method annotation.
type FilterMethod struct {
	Name          string
	Category      string // overrides the bundle's Category when non-empty
	Description   string
	Handler       Handler
	Dependencies  []string // type names that must be resolvable
}

// FilterRegistry is the process-global filter catalog: a map from
// lowercased qualified name to callable, a parallel hidden-commands map,
// and a category/documentation index. Grounded on
// phroun-pawscript/src/module.go's ModuleEnvironment locking discipline
// (sync.RWMutex over plain maps, last-write-wins), with the COW
// inherited/module layering dropped in favor of a single flat
// process-global registry, not a lexically-scoped import system.
type FilterRegistry struct {
	mu       sync.RWMutex
	filters  map[string]Handler
	hidden   map[string]string
	docs     map[string]FilterDoc
	categories map[string]bool
	factories  []compiledFactory
	// resolvable reports whether a named type/dependency can be
	// resolved at registration time. Hosts configure this to model
	// their own dependency-injection story; by default everything
	// resolves (no dependency ever fails).
	resolvable func(typeName string) bool
	logger     *Logger
}

// compiledFactory pairs a registered factory's compiled wildcard pattern
// with its emission function.
type compiledFactory struct {
	pattern *regexp.Regexp
	fn      FactoryFunc
}

// FactoryFunc takes a matched command and produces the sequence of
// commands that replaces it.
type FactoryFunc func(cmd *PipelineCommand) []*PipelineCommand

// NewFilterRegistry creates an empty registry. Every dependency name is
// considered resolvable until SetDependencyResolver overrides that.
// Logging is disabled until a Pipeline wires in an enabled Logger via
// SetLogger.
func NewFilterRegistry() *FilterRegistry {
	return &FilterRegistry{
		filters:    make(map[string]Handler),
		hidden:     make(map[string]string),
		docs:       make(map[string]FilterDoc),
		categories: make(map[string]bool),
		resolvable: func(string) bool { return true },
		logger:     NewLogger(false),
	}
}

// SetDependencyResolver installs the predicate addFilter consults for
// each of a method's declared Dependencies.
func (r *FilterRegistry) SetDependencyResolver(fn func(typeName string) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolvable = fn
}

// SetLogger installs the Logger registry operations report through.
// NewWithRegistry calls this with the constructing Pipeline's own
// logger, so registry activity shows up under the same enable/disable
// switch as that pipeline's execution logging.
func (r *FilterRegistry) SetLogger(logger *Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// compileWildcard turns a factory pattern using "*" (any run) and "?"
// (single character) into an anchored, case-insensitive regexp. See
// DESIGN.md for why this is the prescribed algorithm rather than a
// dependency-avoidance shortcut.
func compileWildcard(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("(?i)^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

// RegisterFactory compiles pattern and registers fn to run against any
// command whose normalized qualified name matches it.
func (r *FilterRegistry) RegisterFactory(pattern string, fn FactoryFunc) error {
	re, err := compileWildcard(pattern)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories = append(r.factories, compiledFactory{pattern: re, fn: fn})
	return nil
}

// matchFactory returns the first registered factory whose pattern
// matches normalizedName, and true if one was found.
func (r *FilterRegistry) matchFactory(normalizedName string) (FactoryFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.factories {
		if f.pattern.MatchString(normalizedName) {
			return f.fn, true
		}
	}
	return nil, false
}

// AddFilter registers handler under category.name, honoring dependency
// checks and the command-loading hook. description is recorded in
// the documentation index, subject to the filter-doc-loading hook.
func (r *FilterRegistry) AddFilter(handler Handler, category, name, description string, dependencies []string) {
	qualified := normalizeQualifiedName(category + "." + name)

	r.mu.RLock()
	resolver := r.resolvable
	logger := r.logger
	r.mu.RUnlock()

	for _, dep := range dependencies {
		if !resolver(dep) {
			logger.Debug(CatRegistry, "hiding %s: missing dependency %s", qualified, dep)
			r.mu.Lock()
			r.hidden[qualified] = "missing dependency: " + dep
			delete(r.filters, qualified)
			r.mu.Unlock()
			return
		}
	}

	loading := &CommandLoadingEvent{
		QualifiedName: qualified,
		Category:      normalizeQualifiedName(category),
		Name:          name,
		Description:   description,
	}
	globalHooks.fireCommandLoading(loading)
	if loading.Cancel {
		logger.Debug(CatRegistry, "registration of %s cancelled by command-loading hook", qualified)
		return
	}

	r.mu.Lock()
	r.filters[qualified] = handler
	delete(r.hidden, qualified)
	cat := loading.Category
	r.mu.Unlock()

	logger.Trace(CatRegistry, "registered %s", qualified)

	r.recordCategory(cat)
	r.recordDoc(qualified, description)
}

func (r *FilterRegistry) recordCategory(category string) {
	r.mu.RLock()
	known := r.categories[category]
	r.mu.RUnlock()
	if known {
		return
	}

	doc := &CategoryDocLoadingEvent{Category: category}
	globalHooks.fireCategoryDocLoading(doc)
	if doc.Cancel {
		return
	}

	r.mu.Lock()
	r.categories[category] = true
	r.mu.Unlock()
}

func (r *FilterRegistry) recordDoc(qualified, description string) {
	doc := &FilterDocLoadingEvent{QualifiedName: qualified, Description: description}
	globalHooks.fireFilterDocLoading(doc)
	if doc.Cancel {
		return
	}

	r.mu.Lock()
	r.docs[qualified] = FilterDoc{QualifiedName: qualified, Description: description}
	r.mu.Unlock()
}

// RegisterMethod registers a single callable under category.name. It is
// a thin convenience over AddFilter for callers that already have a
// concrete Handler rather than a FilterBundle.
func (r *FilterRegistry) RegisterMethod(handler Handler, category, name string) {
	r.AddFilter(handler, category, name, "", nil)
}

// RegisterType registers every method in bundle, applying
// categoryOverride (if non-empty) in place of the bundle's own Category,
// then each method's own Category in place of that.
func (r *FilterRegistry) RegisterType(bundle FilterBundle, categoryOverride string) {
	for _, m := range bundle.Methods {
		category := bundle.Category
		if categoryOverride != "" {
			category = categoryOverride
		}
		if m.Category != "" {
			category = m.Category
		}
		r.AddFilter(m.Handler, category, m.Name, m.Description, m.Dependencies)
	}
}

// Remove deletes the live entry for qualifiedName (if any) and records a
// hidden-command entry carrying reason.
func (r *FilterRegistry) Remove(qualifiedName, reason string) {
	qualified := normalizeQualifiedName(qualifiedName)
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.filters, qualified)
	r.hidden[qualified] = reason
	r.logger.Debug(CatRegistry, "removed %s: %s", qualified, reason)
}

// RemoveCategory deletes every live entry whose key begins with
// "category." and records a hidden-command entry for each, all carrying
// the same reason.
func (r *FilterRegistry) RemoveCategory(category, reason string) {
	prefix := normalizeQualifiedName(category) + "."
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.filters {
		if strings.HasPrefix(key, prefix) {
			delete(r.filters, key)
			r.hidden[key] = reason
			r.logger.Debug(CatRegistry, "removed %s: %s", key, reason)
		}
	}
}

// Resolve returns the handler registered under qualifiedName, or an
// appropriate CommandMissingError / CommandUnavailableError if none is
// live.
func (r *FilterRegistry) Resolve(qualifiedName, commandText string) (Handler, error) {
	qualified := normalizeQualifiedName(qualifiedName)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if h, ok := r.filters[qualified]; ok {
		return h, nil
	}
	if reason, ok := r.hidden[qualified]; ok {
		return nil, &CommandUnavailableError{Name: qualified, Reason: reason, CommandText: commandText}
	}
	return nil, &CommandMissingError{Name: qualified, CommandText: commandText}
}

// ListCategories returns every category with at least one recorded
// filter, sorted is not guaranteed — callers that need stable output
// should sort the result.
func (r *FilterRegistry) ListCategories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.categories))
	for c := range r.categories {
		out = append(out, c)
	}
	return out
}

// ListFilters returns the documented filters belonging to category (an
// empty category returns every documented filter).
func (r *FilterRegistry) ListFilters(category string) []FilterDoc {
	prefix := normalizeQualifiedName(category) + "."
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]FilterDoc, 0, len(r.docs))
	for key, doc := range r.docs {
		if category == "" || strings.HasPrefix(key, prefix) {
			out = append(out, doc)
		}
	}
	return out
}

// HiddenReason returns the recorded reason for qualifiedName, if any.
func (r *FilterRegistry) HiddenReason(qualifiedName string) (string, bool) {
	qualified := normalizeQualifiedName(qualifiedName)
	r.mu.RLock()
	defer r.mu.RUnlock()
	reason, ok := r.hidden[qualified]
	return reason, ok
}
