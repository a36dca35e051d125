package pipeline

import "github.com/BurntSushi/toml"

// Config toggles engine-wide behavior. Mirrors the shape of
// phroun-pawscript/src/types.go's Config/DefaultConfig pattern — a plain
// struct with a constructor that fills in sane defaults, rather than a
// functional-options builder.
type Config struct {
	// LoggingEnabled turns on the low-severity (trace/info/debug) log
	// output; notice/warn/error/fatal are always emitted regardless.
	LoggingEnabled bool

	// StrictVariableLookup, when true, makes VariableStore.Get return
	// UnknownVariableError for a name absent from both the local and
	// global stores. When false, Get instead returns "" with no error,
	// matching a permissive scripting-engine default.
	StrictVariableLookup bool
}

// DefaultConfig returns the engine's default configuration: logging off,
// strict variable lookup on — reading an unset variable is an error
// unless the caller has opted into permissive lookup.
func DefaultConfig() Config {
	return Config{
		LoggingEnabled:       false,
		StrictVariableLookup: true,
	}
}

// ConfiguredGlobal is one entry of an externally-supplied global variable
// seed, as loaded by LoadGlobalsFromTOML: a pipeline may be seeded with
// pre-populated global variables, some of which are read-only.
type ConfiguredGlobal struct {
	Value    string `toml:"value"`
	ReadOnly bool   `toml:"read_only"`
}

// globalsFile is the top-level shape LoadGlobalsFromTOML expects:
//
//	[globals.name]
//	value = "..."
//	read_only = true
type globalsFile struct {
	Globals map[string]ConfiguredGlobal `toml:"globals"`
}

// LoadGlobalsFromTOML reads a TOML file describing a set of global
// variables to seed a pipeline with before execution. This is an ambient
// convenience for host applications that keep their pipeline globals in a
// config file rather than setting them in code; it has no bearing on the
// core variable-store semantics in variables.go.
func LoadGlobalsFromTOML(path string) (map[string]ConfiguredGlobal, error) {
	var f globalsFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, err
	}
	if f.Globals == nil {
		f.Globals = make(map[string]ConfiguredGlobal)
	}
	return f.Globals, nil
}
