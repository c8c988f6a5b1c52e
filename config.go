package pcrex

import (
	"fmt"
	"sync"

	"github.com/coregx/pcrex/native"

	// Pure-Go engines are always available by name.
	_ "github.com/coregx/pcrex/native/backtrack"
	_ "github.com/coregx/pcrex/native/linear"
	_ "github.com/coregx/pcrex/native/literal"
)

// Config controls which engine compiles a pattern and how.
//
// Example:
//
//	cfg := pcrex.DefaultConfig()
//	cfg.Options |= pcrex.Caseless
//	cfg.Context.MaxPatternLength = 4096
//	re, err := pcrex.BuildWithConfig(pattern, cfg)
type Config struct {
	// Library is the engine that compiles and matches.
	// Default: the backtrack engine, or pcre2 when built with -tags pcre2.
	Library native.Library

	// Options are the compile flags.
	// Default: DefaultOptions (UTF | UCP)
	Options Options

	// Context limits applied at compile time. Zero fields leave the
	// engine's own limit in place.
	Context native.ContextSettings
}

// DefaultConfig returns a configuration using the default engine and
// DefaultOptions.
func DefaultConfig() Config {
	return Config{
		Library: DefaultLibrary(),
		Options: DefaultOptions,
	}
}

// Validate checks the configuration. Compile options are checked when the
// pattern is compiled, where they produce an *OptionError.
func (c Config) Validate() error {
	if c.Library == nil {
		return &ConfigError{
			Field:   "Library",
			Message: "must not be nil",
		}
	}
	if c.Context.MaxPatternLength < 0 {
		return &ConfigError{
			Field:   "Context.MaxPatternLength",
			Message: "must not be negative",
		}
	}
	if c.Context.ParensNestLimit < 0 {
		return &ConfigError{
			Field:   "Context.ParensNestLimit",
			Message: "must not be negative",
		}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "pcrex: invalid config: " + e.Field + ": " + e.Message
}

var defaultLibrary = sync.OnceValue(newDefaultLibrary)

// DefaultLibrary returns the shared instance of the default engine.
func DefaultLibrary() native.Library {
	return defaultLibrary()
}

// LibraryByName returns a new instance of the engine registered under name.
// See native.Names for the available engines.
func LibraryByName(name string) (native.Library, error) {
	lib, ok := native.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("pcrex: unknown engine %q (available: %v)", name, native.Names())
	}
	return lib, nil
}
